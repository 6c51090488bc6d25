package scheduling

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"dockplan/config"
	"dockplan/models"
	"dockplan/utils"
)

// boardDateLayout is the ISO day format used for board grouping keys.
const boardDateLayout = "2006-01-02"

// exportTimeLayout renders specific-date timestamps in downloads. It matches
// the layouts uploads accept, so an exported file can be re-imported.
const exportTimeLayout = "2006-01-02T15:04:05"

// UploadSpecific replaces the user's one-off definitions with the valid rows
// of the uploaded CSV. Rows that fail validation are skipped rather than
// rejecting the file; a file with no usable rows at all is an error.
func (s *DefaultSchedulingService) UploadSpecific(ctx context.Context, userID string, file io.Reader) (int, error) {
	rows, err := ReadRows(file, SpecificColumns)
	if err != nil {
		return 0, err
	}

	defs := make([]models.SpecificAppointment, 0, len(rows))
	for _, row := range rows {
		appt, errs := ValidateSpecificRow(row)
		if len(errs) > 0 {
			continue
		}
		appt.ID = uuid.New().String()
		defs = append(defs, appt)
	}
	if len(defs) == 0 {
		return 0, ValidationErrors{"No valid appointments found in CSV."}
	}

	if err := s.Definitions.SaveSpecific(ctx, userID, defs); err != nil {
		return 0, fmt.Errorf("failed to save specific definitions: %w", err)
	}
	return len(defs), nil
}

// SpecificDefinitions returns the user's one-off definitions.
func (s *DefaultSchedulingService) SpecificDefinitions(ctx context.Context, userID string) ([]models.SpecificAppointment, error) {
	return s.Definitions.Specific(ctx, userID)
}

// AddSpecific validates and appends a single one-off appointment.
func (s *DefaultSchedulingService) AddSpecific(ctx context.Context, userID string, in SpecificInput) (*models.SpecificAppointment, error) {
	appt, errs := ValidateSpecificRow(in.Row())
	if len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}
	appt.ID = uuid.New().String()

	defs, err := s.Definitions.Specific(ctx, userID)
	if err != nil {
		return nil, err
	}
	defs = append(defs, appt)
	if err := s.Definitions.SaveSpecific(ctx, userID, defs); err != nil {
		return nil, fmt.Errorf("failed to save specific definitions: %w", err)
	}
	return &appt, nil
}

// UpdateSpecific rewrites an existing one-off appointment in place. The ID is
// preserved, so saved board placements keep pointing at the updated record.
// Single-record edits report only the first validation problem.
func (s *DefaultSchedulingService) UpdateSpecific(ctx context.Context, userID, apptID string, in SpecificInput) (*models.SpecificAppointment, error) {
	defs, err := s.Definitions.Specific(ctx, userID)
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

	appt, errs := ValidateSpecificRow(in.Row())
	if len(errs) > 0 {
		return nil, ValidationErrors(errs[:1])
	}
	appt.ID = apptID
	defs[idx] = appt

	if err := s.Definitions.SaveSpecific(ctx, userID, defs); err != nil {
		return nil, fmt.Errorf("failed to save specific definitions: %w", err)
	}
	return &defs[idx], nil
}

// DeleteSpecific removes a one-off appointment. The definition delete is the
// primary mutation; scrubbing the saved board afterwards is best effort and
// falls back to the retry queue when it cannot be persisted.
func (s *DefaultSchedulingService) DeleteSpecific(ctx context.Context, userID, apptID string) error {
	defs, err := s.Definitions.Specific(ctx, userID)
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

	if err := s.Definitions.SaveSpecific(ctx, userID, kept); err != nil {
		return fmt.Errorf("failed to save specific definitions: %w", err)
	}

	s.purgeFromSchedule(ctx, userID, models.ScheduleKindSpecific, apptID)
	return nil
}

// SpecificBoard assembles the drag-and-drop grid for an inclusive date range.
func (s *DefaultSchedulingService) SpecificBoard(ctx context.Context, userID, startDate, endDate string) (*SpecificBoard, error) {
	if startDate == "" || endDate == "" {
		return nil, ValidationErrors{"Please fill both start date and end date."}
	}
	start, err := time.Parse(boardDateLayout, startDate)
	if err != nil {
		return nil, ValidationErrors{"Invalid date format: dates must be YYYY-MM-DD."}
	}
	end, err := time.Parse(boardDateLayout, endDate)
	if err != nil {
		return nil, ValidationErrors{"Invalid date format: dates must be YYYY-MM-DD."}
	}
	if end.Before(start) {
		return nil, ValidationErrors{"End date must be on or after start date."}
	}

	var dates []string
	for cur := start; !cur.After(end); cur = cur.AddDate(0, 0, 1) {
		dates = append(dates, cur.Format(boardDateLayout))
	}

	defs, err := s.Definitions.Specific(ctx, userID)
	if err != nil {
		return nil, err
	}
	assignments, err := s.Schedules.Specific(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &SpecificBoard{
		Dates:        dates,
		Trucks:       config.AppConfig.Trucks,
		Slots:        config.AppConfig.Slots,
		Appointments: defs,
		Assignments:  assignments,
	}, nil
}

// SaveSpecificAssignments persists the user's specific board layout. The
// saved map replaces whatever was stored before; concurrent editors resolve
// last-write-wins.
func (s *DefaultSchedulingService) SaveSpecificAssignments(ctx context.Context, userID string, assignments models.AssignmentMap) error {
	if err := s.Schedules.SaveSpecific(ctx, userID, assignments); err != nil {
		return fmt.Errorf("failed to save specific schedule: %w", err)
	}
	return nil
}

// ExportSpecific flattens the saved board into download rows: dates
// ascending, slot cells ascending within a date, appointments in the order
// the planner stacked them. Assignment IDs with no surviving definition are
// skipped.
func (s *DefaultSchedulingService) ExportSpecific(ctx context.Context, userID string) ([]SpecificExportRow, error) {
	defs, err := s.Definitions.Specific(ctx, userID)
	if err != nil {
		return nil, err
	}
	assignments, err := s.Schedules.Specific(ctx, userID)
	if err != nil {
		return nil, err
	}

	lookup := make(map[string]models.SpecificAppointment, len(defs))
	for _, d := range defs {
		lookup[d.ID] = d
	}

	var rows []SpecificExportRow
	for _, date := range sortedKeys(assignments) {
		slots := assignments[date]
		for _, slotKey := range sortedSlotKeys(slots) {
			truck, slotLabel := models.SplitSlotKey(slotKey)
			for _, id := range slots[slotKey] {
				appt, ok := lookup[id]
				if !ok {
					continue
				}
				rows = append(rows, SpecificExportRow{
					Date:         date,
					TruckName:    truck,
					Slot:         slotLabel,
					AgencyNumber: appt.AgencyNumber,
					AccountName:  appt.AccountName,
					Area:         appt.Area,
					MinWeight:    appt.MinWeight,
					MaxWeight:    appt.MaxWeight,
					StartTime:    appt.StartTime.Format(exportTimeLayout),
					EndTime:      appt.EndTime.Format(exportTimeLayout),
				})
			}
		}
	}
	if len(rows) == 0 {
		return nil, ErrNothingToExport
	}
	return rows, nil
}

func sortedKeys(m models.AssignmentMap) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedSlotKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// purgeFromSchedule strips appointment IDs from the user's saved board of the
// given kind. The caller's primary mutation has already succeeded, so
// failures here are logged and handed to the retry queue instead of being
// surfaced.
func (s *DefaultSchedulingService) purgeFromSchedule(ctx context.Context, userID, kind string, ids ...string) {
	if len(ids) == 0 {
		return
	}
	logger := utils.GetLogger()

	assignments, err := s.loadSchedule(ctx, userID, kind)
	if err != nil {
		logger.Warn("failed to load assignments for purge",
			zap.String("userID", userID), zap.String("kind", kind), zap.Error(err))
		s.enqueuePurge(userID, kind, ids)
		return
	}
	if !PurgeAssignments(assignments, ids...) {
		return
	}
	if err := s.saveSchedule(ctx, userID, kind, assignments); err != nil {
		logger.Warn("failed to persist purged assignments",
			zap.String("userID", userID), zap.String("kind", kind), zap.Error(err))
		s.enqueuePurge(userID, kind, ids)
	}
}

// RetryPurge re-runs a purge delivered by the task queue. Unlike the inline
// path it returns errors, so the queue can back off and try again.
func (s *DefaultSchedulingService) RetryPurge(ctx context.Context, userID, kind string, ids []string) error {
	assignments, err := s.loadSchedule(ctx, userID, kind)
	if err != nil {
		return err
	}
	if !PurgeAssignments(assignments, ids...) {
		return nil
	}
	return s.saveSchedule(ctx, userID, kind, assignments)
}

func (s *DefaultSchedulingService) loadSchedule(ctx context.Context, userID, kind string) (models.AssignmentMap, error) {
	if kind == models.ScheduleKindRecurring {
		return s.Schedules.Recurring(ctx, userID)
	}
	return s.Schedules.Specific(ctx, userID)
}

func (s *DefaultSchedulingService) saveSchedule(ctx context.Context, userID, kind string, assignments models.AssignmentMap) error {
	if kind == models.ScheduleKindRecurring {
		return s.Schedules.SaveRecurring(ctx, userID, assignments)
	}
	return s.Schedules.SaveSpecific(ctx, userID, assignments)
}

func (s *DefaultSchedulingService) enqueuePurge(userID, kind string, ids []string) {
	if s.Queue == nil {
		return
	}
	payload := models.PurgePayload{UserID: userID, Kind: kind, IDs: ids}
	if err := s.Queue.EnqueuePurge(payload); err != nil {
		utils.GetLogger().Error("failed to enqueue assignment purge",
			zap.String("userID", userID), zap.String("kind", kind), zap.Error(err))
	}
}
