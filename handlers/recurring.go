package handlers

import (
	"net/http"

	"dockplan/models"
	"dockplan/services/scheduling"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UploadRecurringHandler handles POST /api/schedule/recurring/upload.
// Unlike the specific flow, one bad row rejects the whole file.
func (h *ScheduleHandler) UploadRecurringHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file not provided", "detail": err.Error()})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		getLogger(c).Error("Failed to open uploaded file", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file", "detail": err.Error()})
		return
	}
	defer file.Close()

	imported, err := h.Service.UploadRecurring(c.Request.Context(), userID, file)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": imported})
}

// MergeRecurringUploadHandler handles POST /api/schedule/recurring/upload/merge.
// The CSV is reconciled against stored definitions instead of replacing them.
func (h *ScheduleHandler) MergeRecurringUploadHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file not provided", "detail": err.Error()})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		getLogger(c).Error("Failed to open uploaded file", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file", "detail": err.Error()})
		return
	}
	defer file.Close()

	summary, err := h.Service.MergeRecurringUpload(c.Request.Context(), userID, file)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// RecurringDefinitionsHandler handles GET /api/schedule/recurring/definitions.
func (h *ScheduleHandler) RecurringDefinitionsHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	defs, err := h.Service.RecurringDefinitions(c.Request.Context(), userID)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": defs})
}

// PatternsHandler handles GET /api/schedule/recurring/patterns.
func (h *ScheduleHandler) PatternsHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	patterns, err := h.Service.Patterns(c.Request.Context(), userID)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"patterns": patterns})
}

// AddRecurringHandler handles POST /api/schedule/recurring/appointments.
func (h *ScheduleHandler) AddRecurringHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var in scheduling.RecurringInput
	if err := c.ShouldBindJSON(&in); err != nil {
		getLogger(c).Error("Invalid appointment request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	appt, err := h.Service.AddRecurring(c.Request.Context(), userID, in)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appt)
}

// UpdateRecurringHandler handles PUT /api/schedule/recurring/appointments/:id.
func (h *ScheduleHandler) UpdateRecurringHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var in scheduling.RecurringInput
	if err := c.ShouldBindJSON(&in); err != nil {
		getLogger(c).Error("Invalid appointment request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	appt, err := h.Service.UpdateRecurring(c.Request.Context(), userID, c.Param("id"), in)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// DeleteRecurringHandler handles DELETE /api/schedule/recurring/appointments/:id.
func (h *ScheduleHandler) DeleteRecurringHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.Service.DeleteRecurring(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment deleted"})
}

// RecurringBoardHandler handles GET /api/schedule/recurring/board.
func (h *ScheduleHandler) RecurringBoardHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	board, err := h.Service.RecurringBoard(c.Request.Context(), userID)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

// SaveRecurringAssignmentsHandler handles PUT /api/schedule/recurring/assignments.
func (h *ScheduleHandler) SaveRecurringAssignmentsHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var assignments models.AssignmentMap
	if err := c.ShouldBindJSON(&assignments); err != nil {
		getLogger(c).Error("Invalid assignments payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.Service.SaveRecurringAssignments(c.Request.Context(), userID, assignments); err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Schedule saved"})
}

// ExportRecurringHandler handles GET /api/schedule/recurring/export.
func (h *ScheduleHandler) ExportRecurringHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	rows, err := h.Service.ExportRecurring(c.Request.Context(), userID)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="recurring_schedule.csv"`)
	c.Header("Content-Type", "text/csv")
	if err := scheduling.WriteRecurringCSV(c.Writer, rows); err != nil {
		getLogger(c).Error("Failed to stream CSV export", zap.Error(err))
	}
}
