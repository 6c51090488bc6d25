package handlers

import (
	"errors"
	"net/http"

	"dockplan/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler exposes account and session endpoints.
type UserHandler struct {
	UserService user.UserService
}

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterUserHandler handles POST /api/users/register.
func (h *UserHandler) RegisterUserHandler(c *gin.Context) {
	logger := getLogger(c)

	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid registration request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.UserService.RegisterUser(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUsernameTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "Username already exists"})
		case errors.Is(err, user.ErrMissingFields):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
		default:
			logger.Error("User registration failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// AuthenticateUserHandler handles POST /api/users/login.
func (h *UserHandler) AuthenticateUserHandler(c *gin.Context) {
	logger := getLogger(c)

	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid login request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.UserService.AuthenticateUser(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidCredentials), errors.Is(err, user.ErrMissingFields):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		default:
			logger.Error("Login failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RevokeUserAuthTokenHandler handles POST /api/users/logout.
func (h *UserHandler) RevokeUserAuthTokenHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.UserService.RevokeUserAuthToken(userID); err != nil {
		getLogger(c).Error("Logout failed", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// GetUserByIDHandler handles GET /api/users/me.
func (h *UserHandler) GetUserByIDHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	usr, err := h.UserService.GetUserByID(userID)
	if err != nil {
		getLogger(c).Error("User not found", zap.String("id", userID), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, usr)
}

// DeleteUserHandler handles DELETE /api/users/me.
func (h *UserHandler) DeleteUserHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.UserService.DeleteUser(c.Request.Context(), userID); err != nil {
		getLogger(c).Error("Delete error", zap.String("id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}
