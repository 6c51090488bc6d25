package userRepo

import (
	"dockplan/models"

	"go.mongodb.org/mongo-driver/bson"
)

// UserRepository defines methods for planner account data access. Lookups
// report a missing user as a nil result rather than an error.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(id string) (*models.User, error)
	// GetByUsername retrieves a user by username.
	GetByUsername(username string) (*models.User, error)
	// Create inserts a new user record.
	Create(user *models.User) error
	// Delete removes a user record by its ID.
	Delete(id string) error
	// GetByIDWithProjection retrieves a user by its unique ID with a projection.
	GetByIDWithProjection(id string, projection bson.M) (*models.User, error)
}
