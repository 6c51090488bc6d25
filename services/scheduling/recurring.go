package scheduling

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"dockplan/config"
	"dockplan/models"
)

// validateRecurringRows validates a whole CSV batch, collecting every problem
// across all rows. Row numbers are reported as the planner sees them in a
// spreadsheet, where row 1 is the header.
func validateRecurringRows(rows []Row) ([]models.RecurringAppointment, ValidationErrors) {
	defs := make([]models.RecurringAppointment, 0, len(rows))
	var all ValidationErrors
	for i, row := range rows {
		appt, errs := ValidateRecurringRow(row)
		for _, e := range errs {
			all = append(all, fmt.Sprintf("Row %d: %s", i+2, e))
		}
		defs = append(defs, appt)
	}
	if len(all) > 0 {
		return nil, all
	}
	return defs, nil
}

// UploadRecurring replaces the user's recurring definitions with the uploaded
// CSV. Unlike the specific upload, a single invalid row rejects the whole
// file; overwriting standing schedules with a partial import is worse than
// making the planner fix the sheet.
func (s *DefaultSchedulingService) UploadRecurring(ctx context.Context, userID string, file io.Reader) (int, error) {
	rows, err := ReadRows(file, RecurringColumns)
	if err != nil {
		return 0, err
	}

	defs, verrs := validateRecurringRows(rows)
	if verrs != nil {
		return 0, verrs
	}
	if len(defs) == 0 {
		return 0, ValidationErrors{"No valid recurring definitions found in CSV."}
	}
	for i := range defs {
		defs[i].ID = uuid.New().String()
	}

	if err := s.Definitions.SaveRecurring(ctx, userID, defs); err != nil {
		return 0, fmt.Errorf("failed to save recurring definitions: %w", err)
	}
	return len(defs), nil
}

// MergeRecurringUpload reconciles the uploaded CSV with the stored recurring
// definitions instead of overwriting them: unchanged records keep their IDs
// and board placements, changed ones are replaced and scrubbed from the
// board, and records the file never mentions survive untouched.
func (s *DefaultSchedulingService) MergeRecurringUpload(ctx context.Context, userID string, file io.Reader) (*MergeSummary, error) {
	rows, err := ReadRows(file, RecurringColumns)
	if err != nil {
		return nil, err
	}

	incoming, verrs := validateRecurringRows(rows)
	if verrs != nil {
		return nil, verrs
	}
	if len(incoming) == 0 {
		return nil, ValidationErrors{"No valid recurring definitions found in CSV."}
	}

	existing, err := s.Definitions.Recurring(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := MergeRecurring(existing, incoming)
	if err := s.Definitions.SaveRecurring(ctx, userID, result.Merged); err != nil {
		return nil, fmt.Errorf("failed to save recurring definitions: %w", err)
	}

	// Definitions are saved; dangling board references to replaced IDs are
	// cleaned up best effort.
	s.purgeFromSchedule(ctx, userID, models.ScheduleKindRecurring, result.Replaced...)

	return &MergeSummary{
		Added:    result.Added,
		Kept:     result.Kept,
		Replaced: len(result.Replaced),
		Total:    len(result.Merged),
		Patterns: DerivePatterns(result.Merged),
	}, nil
}

// RecurringDefinitions returns the user's recurring definitions.
func (s *DefaultSchedulingService) RecurringDefinitions(ctx context.Context, userID string) ([]models.RecurringAppointment, error) {
	return s.Definitions.Recurring(ctx, userID)
}

// Patterns returns the derived recurrence buckets in canonical order.
func (s *DefaultSchedulingService) Patterns(ctx context.Context, userID string) ([]models.Pattern, error) {
	defs, err := s.Definitions.Recurring(ctx, userID)
	if err != nil {
		return nil, err
	}
	return DerivePatterns(defs), nil
}

// AddRecurring validates and appends a single recurring appointment.
func (s *DefaultSchedulingService) AddRecurring(ctx context.Context, userID string, in RecurringInput) (*models.RecurringAppointment, error) {
	appt, errs := ValidateRecurringRow(in.Row())
	if len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}
	appt.ID = uuid.New().String()

	defs, err := s.Definitions.Recurring(ctx, userID)
	if err != nil {
		return nil, err
	}
	defs = append(defs, appt)
	if err := s.Definitions.SaveRecurring(ctx, userID, defs); err != nil {
		return nil, fmt.Errorf("failed to save recurring definitions: %w", err)
	}
	return &appt, nil
}

// UpdateRecurring rewrites an existing recurring appointment in place,
// keeping its ID and board placements. Edits report only the first problem.
func (s *DefaultSchedulingService) UpdateRecurring(ctx context.Context, userID, apptID string, in RecurringInput) (*models.RecurringAppointment, error) {
	defs, err := s.Definitions.Recurring(ctx, userID)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range defs {
		if defs[i].ID == apptID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrNotFound
	}

	appt, errs := ValidateRecurringRow(in.Row())
	if len(errs) > 0 {
		return nil, ValidationErrors(errs[:1])
	}
	appt.ID = apptID
	defs[idx] = appt

	if err := s.Definitions.SaveRecurring(ctx, userID, defs); err != nil {
		return nil, fmt.Errorf("failed to save recurring definitions: %w", err)
	}
	return &defs[idx], nil
}

// DeleteRecurring removes a recurring appointment and scrubs it from the
// saved board best effort.
func (s *DefaultSchedulingService) DeleteRecurring(ctx context.Context, userID, apptID string) error {
	defs, err := s.Definitions.Recurring(ctx, userID)
	if err != nil {
		return err
	}

	kept := defs[:0]
	found := false
	for _, d := range defs {
		if d.ID == apptID {
			found = true
			continue
		}
		kept = append(kept, d)
	}
	if !found {
		return ErrNotFound
	}

	if err := s.Definitions.SaveRecurring(ctx, userID, kept); err != nil {
		return fmt.Errorf("failed to save recurring definitions: %w", err)
	}

	s.purgeFromSchedule(ctx, userID, models.ScheduleKindRecurring, apptID)
	return nil
}

// RecurringBoard assembles the pattern-based grid. Patterns are derived fresh
// from the definitions on every call.
func (s *DefaultSchedulingService) RecurringBoard(ctx context.Context, userID string) (*RecurringBoard, error) {
	defs, err := s.Definitions.Recurring(ctx, userID)
	if err != nil {
		return nil, err
	}
	assignments, err := s.Schedules.Recurring(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &RecurringBoard{
		Patterns:     DerivePatterns(defs),
		Trucks:       config.AppConfig.Trucks,
		Slots:        config.AppConfig.Slots,
		Appointments: defs,
		Assignments:  assignments,
	}, nil
}

// SaveRecurringAssignments persists the user's recurring board layout.
func (s *DefaultSchedulingService) SaveRecurringAssignments(ctx context.Context, userID string, assignments models.AssignmentMap) error {
	if err := s.Schedules.SaveRecurring(ctx, userID, assignments); err != nil {
		return fmt.Errorf("failed to save recurring schedule: %w", err)
	}
	return nil
}

// ExportRecurring flattens the saved recurring board into download rows.
// Patterns appear in canonical order; assignment keys that no longer match a
// derived pattern are dropped, as are IDs with no surviving definition.
func (s *DefaultSchedulingService) ExportRecurring(ctx context.Context, userID string) ([]RecurringExportRow, error) {
	defs, err := s.Definitions.Recurring(ctx, userID)
	if err != nil {
		return nil, err
	}
	assignments, err := s.Schedules.Recurring(ctx, userID)
	if err != nil {
		return nil, err
	}

	lookup := make(map[string]models.RecurringAppointment, len(defs))
	for _, d := range defs {
		lookup[d.ID] = d
	}

	var rows []RecurringExportRow
	for _, pat := range DerivePatterns(defs) {
		slots, ok := assignments[pat.Label]
		if !ok {
			continue
		}
		for _, slotKey := range sortedSlotKeys(slots) {
			truck, slotLabel := models.SplitSlotKey(slotKey)
			for _, id := range slots[slotKey] {
				appt, ok := lookup[id]
				if !ok {
					continue
				}
				rows = append(rows, RecurringExportRow{
					Pattern:      pat.Label,
					Frequency:    pat.Frequency,
					Day:          pat.Day,
					TruckName:    truck,
					Slot:         slotLabel,
					AgencyNumber: appt.AgencyNumber,
					AccountName:  appt.AccountName,
					Area:         appt.Area,
					MinWeight:    appt.MinWeight,
					MaxWeight:    appt.MaxWeight,
					StartTime:    appt.StartTimeStr,
					EndTime:      appt.EndTimeStr,
				})
			}
		}
	}
	if len(rows) == 0 {
		return nil, ErrNothingToExport
	}
	return rows, nil
}
