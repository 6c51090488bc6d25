package handlers

import (
	"net/http"

	"dockplan/models"
	"dockplan/services/scheduling"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ScheduleHandler exposes the planning endpoints for both scheduling flows.
type ScheduleHandler struct {
	Service scheduling.Service
}

// UploadSpecificHandler handles POST /api/schedule/specific/upload.
// The CSV replaces the user's one-off definitions; invalid rows are skipped.
func (h *ScheduleHandler) UploadSpecificHandler(c *gin.Context) {
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

	imported, err := h.Service.UploadSpecific(c.Request.Context(), userID, file)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": imported})
}

// SpecificDefinitionsHandler handles GET /api/schedule/specific/definitions.
func (h *ScheduleHandler) SpecificDefinitionsHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	defs, err := h.Service.SpecificDefinitions(c.Request.Context(), userID)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": defs})
}

// AddSpecificHandler handles POST /api/schedule/specific/appointments.
func (h *ScheduleHandler) AddSpecificHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var in scheduling.SpecificInput
	if err := c.ShouldBindJSON(&in); err != nil {
		getLogger(c).Error("Invalid appointment request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	appt, err := h.Service.AddSpecific(c.Request.Context(), userID, in)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appt)
}

// UpdateSpecificHandler handles PUT /api/schedule/specific/appointments/:id.
func (h *ScheduleHandler) UpdateSpecificHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var in scheduling.SpecificInput
	if err := c.ShouldBindJSON(&in); err != nil {
		getLogger(c).Error("Invalid appointment request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	appt, err := h.Service.UpdateSpecific(c.Request.Context(), userID, c.Param("id"), in)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// DeleteSpecificHandler handles DELETE /api/schedule/specific/appointments/:id.
func (h *ScheduleHandler) DeleteSpecificHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.Service.DeleteSpecific(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment deleted"})
}

// SpecificBoardHandler handles GET /api/schedule/specific/board?start=&end=.
func (h *ScheduleHandler) SpecificBoardHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	board, err := h.Service.SpecificBoard(c.Request.Context(), userID, c.Query("start"), c.Query("end"))
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

// SaveSpecificAssignmentsHandler handles PUT /api/schedule/specific/assignments.
func (h *ScheduleHandler) SaveSpecificAssignmentsHandler(c *gin.Context) {
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

	if err := h.Service.SaveSpecificAssignments(c.Request.Context(), userID, assignments); err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Schedule saved"})
}

// ExportSpecificHandler handles GET /api/schedule/specific/export.
func (h *ScheduleHandler) ExportSpecificHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	rows, err := h.Service.ExportSpecific(c.Request.Context(), userID)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="scheduled_routes.csv"`)
	c.Header("Content-Type", "text/csv")
	if err := scheduling.WriteSpecificCSV(c.Writer, rows); err != nil {
		getLogger(c).Error("Failed to stream CSV export", zap.Error(err))
	}
}
