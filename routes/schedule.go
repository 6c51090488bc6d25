package routes

import (
	"dockplan/handlers"
	"dockplan/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterScheduleRoutes registers the planning endpoints for both flows.
// Everything here operates on the authenticated user's own data.
func RegisterScheduleRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	specific := r.Group("/api/schedule/specific")
	{
		specific.Use(middleware.JWTAuthMiddleware())
		specific.POST("/upload", hb.UploadSpecific)
		specific.GET("/definitions", hb.SpecificDefinitions)
		specific.POST("/appointments", hb.AddSpecific)
		specific.PUT("/appointments/:id", hb.UpdateSpecific)
		specific.DELETE("/appointments/:id", hb.DeleteSpecific)
		specific.GET("/board", hb.SpecificBoard)
		specific.PUT("/assignments", hb.SaveSpecificAssignments)
		specific.GET("/export", hb.ExportSpecific)
	}

	recurring := r.Group("/api/schedule/recurring")
	{
		recurring.Use(middleware.JWTAuthMiddleware())
		recurring.POST("/upload", hb.UploadRecurring)
		recurring.POST("/upload/merge", hb.MergeRecurringUpload)
		recurring.GET("/definitions", hb.RecurringDefinitions)
		recurring.GET("/patterns", hb.Patterns)
		recurring.POST("/appointments", hb.AddRecurring)
		recurring.PUT("/appointments/:id", hb.UpdateRecurring)
		recurring.DELETE("/appointments/:id", hb.DeleteRecurring)
		recurring.GET("/board", hb.RecurringBoard)
		recurring.PUT("/assignments", hb.SaveRecurringAssignments)
		recurring.GET("/export", hb.ExportRecurring)
	}
}
