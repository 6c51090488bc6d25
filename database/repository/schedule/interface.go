package scheduleRepo

import (
	"context"

	"dockplan/models"
)

// ScheduleRepository persists each user's saved board assignments. Like the
// definition store, every user owns at most one specific and one recurring
// document; saves replace the whole assignment map.
type ScheduleRepository interface {
	// Specific returns the user's saved specific-date assignments.
	Specific(ctx context.Context, userID string) (models.AssignmentMap, error)
	// SaveSpecific replaces the user's specific-date assignments.
	SaveSpecific(ctx context.Context, userID string, assignments models.AssignmentMap) error
	// Recurring returns the user's saved recurring assignments.
	Recurring(ctx context.Context, userID string) (models.AssignmentMap, error)
	// SaveRecurring replaces the user's recurring assignments.
	SaveRecurring(ctx context.Context, userID string, assignments models.AssignmentMap) error
	// DeleteAll removes both schedule documents for the user.
	DeleteAll(ctx context.Context, userID string) error
}
