package definitionRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"dockplan/config"
	"dockplan/database"
	"dockplan/models"
	"dockplan/utils"
)

// MongoDefinitionRepo implements DefinitionRepository using MongoDB. Each
// collection holds one document per user with the definition list embedded,
// so a save is a single upsert and concurrent writers resolve last-write-wins
// at the document level.
type MongoDefinitionRepo struct {
	specific  *mongo.Collection
	recurring *mongo.Collection
}

// NewMongoDefinitionRepo creates a new instance of DefinitionRepository using MongoDB.
func NewMongoDefinitionRepo() DefinitionRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	repo := &MongoDefinitionRepo{
		specific:  db.Collection("specific_definitions"),
		recurring: db.Collection("recurring_definitions"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// ensureIndexes creates the per-user uniqueness indexes.
func (r *MongoDefinitionRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	model := mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	for _, coll := range []*mongo.Collection{r.specific, r.recurring} {
		if _, err := coll.Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("failed to create index on %s: %w", coll.Name(), err)
		}
	}
	return nil
}

// userDoc is the stored shape. Data stays raw until the caller-specific type
// is known, so a corrupt payload can be detected and tolerated instead of
// failing the whole read.
type userDoc struct {
	UserID    string        `bson:"user_id"`
	Data      bson.RawValue `bson:"data"`
	UpdatedAt time.Time     `bson:"updated_at"`
}

// loadDoc fetches the raw data value for the user, reporting found=false when
// the user has no document yet.
func loadDoc(ctx context.Context, coll *mongo.Collection, userID string) (bson.RawValue, bool, error) {
	var doc userDoc
	err := coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return bson.RawValue{}, false, nil
	}
	if err != nil {
		return bson.RawValue{}, false, fmt.Errorf("failed to fetch %s for user %s: %w", coll.Name(), userID, err)
	}
	return doc.Data, true, nil
}

// saveDoc upserts the user's document with the given data payload.
func saveDoc(ctx context.Context, coll *mongo.Collection, userID string, data interface{}) error {
	doc := bson.M{
		"user_id":    userID,
		"data":       data,
		"updated_at": time.Now(),
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := coll.ReplaceOne(ctx, bson.M{"user_id": userID}, doc, opts); err != nil {
		return fmt.Errorf("failed to save %s for user %s: %w", coll.Name(), userID, err)
	}
	return nil
}

// Specific returns the user's one-off appointment definitions. A document
// whose payload no longer decodes is treated as empty rather than blocking
// the user; the planner can re-upload to repair it.
func (r *MongoDefinitionRepo) Specific(ctx context.Context, userID string) ([]models.SpecificAppointment, error) {
	raw, found, err := loadDoc(ctx, r.specific, userID)
	if err != nil || !found {
		return []models.SpecificAppointment{}, err
	}

	var defs []models.SpecificAppointment
	if err := raw.Unmarshal(&defs); err != nil {
		utils.GetLogger().Warn("stored specific definitions are malformed, treating as empty",
			zap.String("userID", userID), zap.Error(err))
		return []models.SpecificAppointment{}, nil
	}
	return defs, nil
}

// SaveSpecific replaces the user's one-off appointment definitions.
func (r *MongoDefinitionRepo) SaveSpecific(ctx context.Context, userID string, defs []models.SpecificAppointment) error {
	if defs == nil {
		defs = []models.SpecificAppointment{}
	}
	return saveDoc(ctx, r.specific, userID, defs)
}

// Recurring returns the user's recurring appointment definitions, with the
// same tolerance for malformed payloads as Specific.
func (r *MongoDefinitionRepo) Recurring(ctx context.Context, userID string) ([]models.RecurringAppointment, error) {
	raw, found, err := loadDoc(ctx, r.recurring, userID)
	if err != nil || !found {
		return []models.RecurringAppointment{}, err
	}

	var defs []models.RecurringAppointment
	if err := raw.Unmarshal(&defs); err != nil {
		utils.GetLogger().Warn("stored recurring definitions are malformed, treating as empty",
			zap.String("userID", userID), zap.Error(err))
		return []models.RecurringAppointment{}, nil
	}
	return defs, nil
}

// SaveRecurring replaces the user's recurring appointment definitions.
func (r *MongoDefinitionRepo) SaveRecurring(ctx context.Context, userID string, defs []models.RecurringAppointment) error {
	if defs == nil {
		defs = []models.RecurringAppointment{}
	}
	return saveDoc(ctx, r.recurring, userID, defs)
}

// DeleteAll removes both definition documents for the user. Missing documents
// are not an error; account deletion calls this unconditionally.
func (r *MongoDefinitionRepo) DeleteAll(ctx context.Context, userID string) error {
	for _, coll := range []*mongo.Collection{r.specific, r.recurring} {
		if _, err := coll.DeleteOne(ctx, bson.M{"user_id": userID}); err != nil {
			return fmt.Errorf("failed to delete %s for user %s: %w", coll.Name(), userID, err)
		}
	}
	return nil
}
