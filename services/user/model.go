package user

import (
	"context"
	"time"

	definitionRepo "dockplan/database/repository/definition"
	scheduleRepo "dockplan/database/repository/schedule"
	userRepo "dockplan/database/repository/user"
	"dockplan/models"
)

// UserService defines business logic for user accounts and sessions.
type UserService interface {
	// RegisterUser creates a new account and signs the user in.
	RegisterUser(username, password string) (*AuthResponse, error)
	// AuthenticateUser verifies credentials and returns a fresh session token.
	AuthenticateUser(username, password string) (*AuthResponse, error)
	// GetUserByID retrieves a user (safe view) by its unique ID.
	GetUserByID(userID string) (*models.User, error)
	// RevokeUserAuthToken revokes the user's session token (for logout).
	RevokeUserAuthToken(userID string) error
	// DeleteUser removes the account along with its definitions and schedules.
	DeleteUser(ctx context.Context, userID string) error
}

// TokenCache stores the active session token hash per user.
type TokenCache interface {
	Store(userID, tokenHash string, ttl time.Duration) error
	Drop(userID string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo        userRepo.UserRepository
	Definitions definitionRepo.DefinitionRepository
	Schedules   scheduleRepo.ScheduleRepository
	Tokens      TokenCache
}

// AuthResponse is returned on successful registration or sign-in.
type AuthResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}
