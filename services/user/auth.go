package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dockplan/models"
	"dockplan/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrUsernameTaken is returned when registering with an existing username.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrInvalidCredentials is returned when sign-in fails verification.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrMissingFields is returned when username or password is blank.
	ErrMissingFields = errors.New("username and password are required")
)

// RegisterUser creates a new user, stores the hashed password, and signs the user in.
func (s *DefaultUserService) RegisterUser(username, password string) (*AuthResponse, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrMissingFields
	}

	// Check for an existing user.
	existing, err := s.Repo.GetByUsername(username)
	if err != nil {
		utils.GetLogger().Error("Failed to check for existing user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	// Hash the provided password.
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	user := models.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hashedPassword),
	}

	// Persist the new user.
	if err := s.Repo.Create(&user); err != nil {
		utils.GetLogger().Error("Failed to create user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	return s.issueToken(&user)
}

// AuthenticateUser verifies credentials and issues a fresh session token,
// replacing any previously active session for the account.
func (s *DefaultUserService) AuthenticateUser(username, password string) (*AuthResponse, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrMissingFields
	}

	user, err := s.Repo.GetByUsername(username)
	if err != nil {
		utils.GetLogger().Error("Failed to fetch user for authentication", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	// Verify the provided password.
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueToken(user)
}

// issueToken generates a JWT for the user and caches its hash as the single
// active session. Storing overwrites any token issued earlier.
func (s *DefaultUserService) issueToken(user *models.User) (*AuthResponse, error) {
	token, err := utils.GenerateToken(user.ID, user.Username, utils.AuthTokenTTL)
	if err != nil {
		utils.GetLogger().Error("Failed to generate auth token", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}

	if err := s.Tokens.Store(user.ID, utils.HashToken(token), utils.AuthTokenTTL); err != nil {
		utils.GetLogger().Error("Failed to store session token", zap.String("userID", user.ID), zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}

	return &AuthResponse{
		ID:       user.ID,
		Username: user.Username,
		Token:    token,
	}, nil
}

// GetUserByID retrieves a user without the password hash.
func (s *DefaultUserService) GetUserByID(userID string) (*models.User, error) {
	user, err := s.Repo.GetByIDWithProjection(userID, bson.M{"password_hash": 0})
	if err != nil {
		utils.GetLogger().Error("Failed to fetch user", zap.String("userID", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch user, please try again")
	}
	if user == nil {
		return nil, fmt.Errorf("user not found")
	}
	return user, nil
}

// RevokeUserAuthToken removes the cached session so the token no longer authenticates.
func (s *DefaultUserService) RevokeUserAuthToken(userID string) error {
	if err := s.Tokens.Drop(userID); err != nil {
		utils.GetLogger().Error("Failed to revoke session token", zap.String("userID", userID), zap.Error(err))
		return fmt.Errorf("failed to logout, please try again")
	}
	return nil
}

// DeleteUser removes the account record, then clears the user's definitions,
// schedules, and session. Cleanup failures are logged but do not undo the delete.
func (s *DefaultUserService) DeleteUser(ctx context.Context, userID string) error {
	if err := s.Repo.Delete(userID); err != nil {
		utils.GetLogger().Error("Failed to delete user", zap.String("userID", userID), zap.Error(err))
		return fmt.Errorf("failed to delete account, please try again")
	}

	if err := s.Definitions.DeleteAll(ctx, userID); err != nil {
		utils.GetLogger().Warn("Failed to delete user definitions", zap.String("userID", userID), zap.Error(err))
	}
	if err := s.Schedules.DeleteAll(ctx, userID); err != nil {
		utils.GetLogger().Warn("Failed to delete user schedules", zap.String("userID", userID), zap.Error(err))
	}
	if err := s.Tokens.Drop(userID); err != nil {
		utils.GetLogger().Warn("Failed to clear session on account delete", zap.String("userID", userID), zap.Error(err))
	}
	return nil
}
