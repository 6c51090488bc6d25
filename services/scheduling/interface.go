package scheduling

import (
	"context"
	"io"

	definitionRepo "dockplan/database/repository/definition"
	scheduleRepo "dockplan/database/repository/schedule"
	"dockplan/models"
)

// Service defines the scheduling domain logic for both planning flows. All
// methods operate on the calling user's data only; userID always comes from
// the authenticated request, never from the payload.
type Service interface {
	// UploadSpecific replaces the user's one-off definitions with the valid
	// rows of an uploaded CSV and returns how many were imported.
	UploadSpecific(ctx context.Context, userID string, file io.Reader) (int, error)
	// SpecificDefinitions returns the user's one-off definitions.
	SpecificDefinitions(ctx context.Context, userID string) ([]models.SpecificAppointment, error)
	// AddSpecific validates and appends a one-off appointment.
	AddSpecific(ctx context.Context, userID string, in SpecificInput) (*models.SpecificAppointment, error)
	// UpdateSpecific rewrites an existing one-off appointment in place,
	// keeping its ID and any board placements.
	UpdateSpecific(ctx context.Context, userID, apptID string, in SpecificInput) (*models.SpecificAppointment, error)
	// DeleteSpecific removes a one-off appointment and scrubs it from the
	// saved board.
	DeleteSpecific(ctx context.Context, userID, apptID string) error
	// SpecificBoard assembles the drag-and-drop grid for an inclusive date
	// range.
	SpecificBoard(ctx context.Context, userID, startDate, endDate string) (*SpecificBoard, error)
	// SaveSpecificAssignments persists the user's specific board layout.
	SaveSpecificAssignments(ctx context.Context, userID string, assignments models.AssignmentMap) error
	// ExportSpecific flattens the saved specific board into download rows.
	ExportSpecific(ctx context.Context, userID string) ([]SpecificExportRow, error)

	// UploadRecurring replaces the user's recurring definitions with an
	// uploaded CSV. Any invalid row rejects the whole file.
	UploadRecurring(ctx context.Context, userID string, file io.Reader) (int, error)
	// MergeRecurringUpload reconciles an uploaded CSV with the stored
	// recurring definitions instead of overwriting them.
	MergeRecurringUpload(ctx context.Context, userID string, file io.Reader) (*MergeSummary, error)
	// RecurringDefinitions returns the user's recurring definitions.
	RecurringDefinitions(ctx context.Context, userID string) ([]models.RecurringAppointment, error)
	// Patterns returns the derived recurrence buckets in canonical order.
	Patterns(ctx context.Context, userID string) ([]models.Pattern, error)
	// AddRecurring validates and appends a recurring appointment.
	AddRecurring(ctx context.Context, userID string, in RecurringInput) (*models.RecurringAppointment, error)
	// UpdateRecurring rewrites an existing recurring appointment in place.
	UpdateRecurring(ctx context.Context, userID, apptID string, in RecurringInput) (*models.RecurringAppointment, error)
	// DeleteRecurring removes a recurring appointment and scrubs it from the
	// saved board.
	DeleteRecurring(ctx context.Context, userID, apptID string) error
	// RecurringBoard assembles the pattern-based grid.
	RecurringBoard(ctx context.Context, userID string) (*RecurringBoard, error)
	// SaveRecurringAssignments persists the user's recurring board layout.
	SaveRecurringAssignments(ctx context.Context, userID string, assignments models.AssignmentMap) error
	// ExportRecurring flattens the saved recurring board into download rows.
	ExportRecurring(ctx context.Context, userID string) ([]RecurringExportRow, error)

	// RetryPurge re-runs an assignment purge delivered by the task queue.
	RetryPurge(ctx context.Context, userID, kind string, ids []string) error
}

// PurgeEnqueuer hands failed assignment purges to the background queue.
type PurgeEnqueuer interface {
	EnqueuePurge(payload models.PurgePayload) error
}

// DefaultSchedulingService is the production implementation of Service.
type DefaultSchedulingService struct {
	Definitions definitionRepo.DefinitionRepository
	Schedules   scheduleRepo.ScheduleRepository
	// Queue is optional; with no queue a failed purge is only logged.
	Queue PurgeEnqueuer
}

// SpecificBoard is everything the specific-date grid needs to render.
type SpecificBoard struct {
	Dates        []string                     `json:"dates"`
	Trucks       []string                     `json:"trucks"`
	Slots        []models.SlotDefinition      `json:"slots"`
	Appointments []models.SpecificAppointment `json:"appointments"`
	Assignments  models.AssignmentMap         `json:"assignments"`
}

// RecurringBoard is everything the recurring grid needs to render.
type RecurringBoard struct {
	Patterns     []models.Pattern              `json:"patterns"`
	Trucks       []string                      `json:"trucks"`
	Slots        []models.SlotDefinition       `json:"slots"`
	Appointments []models.RecurringAppointment `json:"appointments"`
	Assignments  models.AssignmentMap          `json:"assignments"`
}

// MergeSummary reports the outcome of a merge upload.
type MergeSummary struct {
	Added    int              `json:"added"`
	Kept     int              `json:"kept"`
	Replaced int              `json:"replaced"`
	Total    int              `json:"total"`
	Patterns []models.Pattern `json:"patterns"`
}
