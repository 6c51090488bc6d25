package definitionRepo

import (
	"context"

	"dockplan/models"
)

// DefinitionRepository persists each user's appointment definitions. Every
// user owns at most one specific and one recurring document; a save replaces
// the whole document, and reading a missing one yields an empty list.
type DefinitionRepository interface {
	// Specific returns the user's one-off appointment definitions.
	Specific(ctx context.Context, userID string) ([]models.SpecificAppointment, error)
	// SaveSpecific replaces the user's one-off appointment definitions.
	SaveSpecific(ctx context.Context, userID string, defs []models.SpecificAppointment) error
	// Recurring returns the user's recurring appointment definitions.
	Recurring(ctx context.Context, userID string) ([]models.RecurringAppointment, error)
	// SaveRecurring replaces the user's recurring appointment definitions.
	SaveRecurring(ctx context.Context, userID string, defs []models.RecurringAppointment) error
	// DeleteAll removes both definition documents for the user.
	DeleteAll(ctx context.Context, userID string) error
}
