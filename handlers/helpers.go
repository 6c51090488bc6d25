package handlers

import (
	"errors"
	"net/http"

	"dockplan/services/scheduling"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// currentUserID returns the authenticated user's ID set by the auth middleware.
// On failure it writes the error response and returns false.
func currentUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	id, ok := v.(string)
	if !ok || id == "" {
		getLogger(c).Error("Invalid user ID type", zap.Any("userID", v))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID type"})
		return "", false
	}
	return id, true
}

// respondSchedulingError maps scheduling service errors onto HTTP responses.
// Validation problems carry the row messages; anything unexpected is logged
// and hidden behind a generic message.
func respondSchedulingError(c *gin.Context, err error) {
	if verrs, ok := scheduling.AsValidationErrors(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{"errors": verrs})
		return
	}
	switch {
	case errors.Is(err, scheduling.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
	case errors.Is(err, scheduling.ErrNothingToExport):
		c.JSON(http.StatusNotFound, gin.H{"error": "No scheduled appointments to export"})
	default:
		getLogger(c).Error("Scheduling operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong, please try again"})
	}
}
