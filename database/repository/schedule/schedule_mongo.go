package scheduleRepo

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

// MongoScheduleRepo implements ScheduleRepository using MongoDB.
type MongoScheduleRepo struct {
	specific  *mongo.Collection
	recurring *mongo.Collection
}

// NewMongoScheduleRepo creates a new instance of ScheduleRepository using MongoDB.
func NewMongoScheduleRepo() ScheduleRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	repo := &MongoScheduleRepo{
		specific:  db.Collection("specific_schedules"),
		recurring: db.Collection("recurring_schedules"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// ensureIndexes creates the per-user uniqueness indexes.
func (r *MongoScheduleRepo) ensureIndexes() error {
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

type scheduleDoc struct {
	UserID    string        `bson:"user_id"`
	Data      bson.RawValue `bson:"data"`
	UpdatedAt time.Time     `bson:"updated_at"`
}

func (r *MongoScheduleRepo) load(ctx context.Context, coll *mongo.Collection, userID string) (models.AssignmentMap, error) {
	var doc scheduleDoc
	err := coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return models.AssignmentMap{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s for user %s: %w", coll.Name(), userID, err)
	}

	var assignments models.AssignmentMap
	if err := doc.Data.Unmarshal(&assignments); err != nil {
		utils.GetLogger().Warn("stored assignments are malformed, treating as empty",
			zap.String("collection", coll.Name()), zap.String("userID", userID), zap.Error(err))
		return models.AssignmentMap{}, nil
	}
	if assignments == nil {
		assignments = models.AssignmentMap{}
	}
	return assignments, nil
}

func (r *MongoScheduleRepo) save(ctx context.Context, coll *mongo.Collection, userID string, assignments models.AssignmentMap) error {
	if assignments == nil {
		assignments = models.AssignmentMap{}
	}
	doc := bson.M{
		"user_id":    userID,
		"data":       assignments,
		"updated_at": time.Now(),
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := coll.ReplaceOne(ctx, bson.M{"user_id": userID}, doc, opts); err != nil {
		return fmt.Errorf("failed to save %s for user %s: %w", coll.Name(), userID, err)
	}
	return nil
}

// Specific returns the user's saved specific-date assignments.
func (r *MongoScheduleRepo) Specific(ctx context.Context, userID string) (models.AssignmentMap, error) {
	return r.load(ctx, r.specific, userID)
}

// SaveSpecific replaces the user's specific-date assignments.
func (r *MongoScheduleRepo) SaveSpecific(ctx context.Context, userID string, assignments models.AssignmentMap) error {
	return r.save(ctx, r.specific, userID, assignments)
}

// Recurring returns the user's saved recurring assignments.
func (r *MongoScheduleRepo) Recurring(ctx context.Context, userID string) (models.AssignmentMap, error) {
	return r.load(ctx, r.recurring, userID)
}

// SaveRecurring replaces the user's recurring assignments.
func (r *MongoScheduleRepo) SaveRecurring(ctx context.Context, userID string, assignments models.AssignmentMap) error {
	return r.save(ctx, r.recurring, userID, assignments)
}

// DeleteAll removes both schedule documents for the user.
func (r *MongoScheduleRepo) DeleteAll(ctx context.Context, userID string) error {
	for _, coll := range []*mongo.Collection{r.specific, r.recurring} {
		if _, err := coll.DeleteOne(ctx, bson.M{"user_id": userID}); err != nil {
			return fmt.Errorf("failed to delete %s for user %s: %w", coll.Name(), userID, err)
		}
	}
	return nil
}
