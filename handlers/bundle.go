package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// User endpoints
	RegisterUserHandler        gin.HandlerFunc
	AuthenticateUserHandler    gin.HandlerFunc
	RevokeUserAuthTokenHandler gin.HandlerFunc
	GetUserByIDHandler         gin.HandlerFunc
	DeleteUserHandler          gin.HandlerFunc

	// Specific-date planning endpoints
	UploadSpecific          gin.HandlerFunc
	SpecificDefinitions     gin.HandlerFunc
	AddSpecific             gin.HandlerFunc
	UpdateSpecific          gin.HandlerFunc
	DeleteSpecific          gin.HandlerFunc
	SpecificBoard           gin.HandlerFunc
	SaveSpecificAssignments gin.HandlerFunc
	ExportSpecific          gin.HandlerFunc

	// Recurring planning endpoints
	UploadRecurring          gin.HandlerFunc
	MergeRecurringUpload     gin.HandlerFunc
	RecurringDefinitions     gin.HandlerFunc
	Patterns                 gin.HandlerFunc
	AddRecurring             gin.HandlerFunc
	UpdateRecurring          gin.HandlerFunc
	DeleteRecurring          gin.HandlerFunc
	RecurringBoard           gin.HandlerFunc
	SaveRecurringAssignments gin.HandlerFunc
	ExportRecurring          gin.HandlerFunc
}
