package scheduling

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dockplan/config"
	"dockplan/models"
)

type fakeDefinitionRepo struct {
	specific  []models.SpecificAppointment
	recurring []models.RecurringAppointment

	specificSaves  int
	recurringSaves int
}

func (f *fakeDefinitionRepo) Specific(ctx context.Context, userID string) ([]models.SpecificAppointment, error) {
	return append([]models.SpecificAppointment{}, f.specific...), nil
}

func (f *fakeDefinitionRepo) SaveSpecific(ctx context.Context, userID string, defs []models.SpecificAppointment) error {
	f.specific = append([]models.SpecificAppointment{}, defs...)
	f.specificSaves++
	return nil
}

func (f *fakeDefinitionRepo) Recurring(ctx context.Context, userID string) ([]models.RecurringAppointment, error) {
	return append([]models.RecurringAppointment{}, f.recurring...), nil
}

func (f *fakeDefinitionRepo) SaveRecurring(ctx context.Context, userID string, defs []models.RecurringAppointment) error {
	f.recurring = append([]models.RecurringAppointment{}, defs...)
	f.recurringSaves++
	return nil
}

func (f *fakeDefinitionRepo) DeleteAll(ctx context.Context, userID string) error {
	f.specific = nil
	f.recurring = nil
	return nil
}

type fakeScheduleRepo struct {
	specific  models.AssignmentMap
	recurring models.AssignmentMap

	failSpecificSave  bool
	failRecurringSave bool
	loadErr           error

	specificSaves  int
	recurringSaves int
}

func (f *fakeScheduleRepo) Specific(ctx context.Context, userID string) (models.AssignmentMap, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if f.specific == nil {
		return models.AssignmentMap{}, nil
	}
	return f.specific, nil
}

func (f *fakeScheduleRepo) SaveSpecific(ctx context.Context, userID string, assignments models.AssignmentMap) error {
	if f.failSpecificSave {
		return errors.New("write refused")
	}
	f.specific = assignments
	f.specificSaves++
	return nil
}

func (f *fakeScheduleRepo) Recurring(ctx context.Context, userID string) (models.AssignmentMap, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if f.recurring == nil {
		return models.AssignmentMap{}, nil
	}
	return f.recurring, nil
}

func (f *fakeScheduleRepo) SaveRecurring(ctx context.Context, userID string, assignments models.AssignmentMap) error {
	if f.failRecurringSave {
		return errors.New("write refused")
	}
	f.recurring = assignments
	f.recurringSaves++
	return nil
}

func (f *fakeScheduleRepo) DeleteAll(ctx context.Context, userID string) error {
	f.specific = nil
	f.recurring = nil
	return nil
}

type fakeQueue struct {
	payloads []models.PurgePayload
}

func (f *fakeQueue) EnqueuePurge(p models.PurgePayload) error {
	f.payloads = append(f.payloads, p)
	return nil
}

func newTestService() (*DefaultSchedulingService, *fakeDefinitionRepo, *fakeScheduleRepo, *fakeQueue) {
	defs := &fakeDefinitionRepo{}
	scheds := &fakeScheduleRepo{}
	queue := &fakeQueue{}
	svc := &DefaultSchedulingService{Definitions: defs, Schedules: scheds, Queue: queue}
	return svc, defs, scheds, queue
}

const uploadSpecificCSV = `Agency Number,Account Name,Area,Minimum Weight,Maximum Weight,Start Time,End Time
100,Acme Foods,North,1000,2000,2025-03-03T07:00,2025-03-03T09:00
,,,,,bad,worse
200,Harbor Goods,South,500,750,2025-03-04T11:00,2025-03-04T13:30
`

func TestUploadSpecificSkipsInvalidRows(t *testing.T) {
	svc, defs, _, _ := newTestService()

	count, err := svc.UploadSpecific(context.Background(), "u1", strings.NewReader(uploadSpecificCSV))

	require.NoError(t, err)
	assert.Equal(t, 2, count)
	require.Len(t, defs.specific, 2)
	assert.Equal(t, "100", defs.specific[0].AgencyNumber)
	assert.Equal(t, "200", defs.specific[1].AgencyNumber)
	assert.NotEmpty(t, defs.specific[0].ID)
	assert.NotEqual(t, defs.specific[0].ID, defs.specific[1].ID)
}

func TestUploadSpecificNoValidRows(t *testing.T) {
	svc, defs, _, _ := newTestService()
	csv := "Agency Number,Account Name,Area,Minimum Weight,Maximum Weight,Start Time,End Time\n,,,,,,\n"

	_, err := svc.UploadSpecific(context.Background(), "u1", strings.NewReader(csv))

	verrs, ok := AsValidationErrors(err)
	require.True(t, ok)
	assert.Equal(t, ValidationErrors{"No valid appointments found in CSV."}, verrs)
	assert.Zero(t, defs.specificSaves)
}

func TestUploadSpecificReplacesPreviousDefinitions(t *testing.T) {
	svc, defs, _, _ := newTestService()
	defs.specific = []models.SpecificAppointment{{ID: "stale", AgencyNumber: "999"}}

	_, err := svc.UploadSpecific(context.Background(), "u1", strings.NewReader(uploadSpecificCSV))

	require.NoError(t, err)
	for _, d := range defs.specific {
		assert.NotEqual(t, "stale", d.ID)
	}
}

const uploadRecurringCSV = `Agency Number,Account Name,Area,Minimum Weight,Maximum Weight,Day,Frequency,Start Time,End Time
100,Acme Foods,North,10,20,Monday,First,07:00,09:00
200,Harbor Goods,South,5,15,Friday,Third,11:00,13:00
`

func TestUploadRecurringAssignsIDs(t *testing.T) {
	svc, defs, _, _ := newTestService()

	count, err := svc.UploadRecurring(context.Background(), "u1", strings.NewReader(uploadRecurringCSV))

	require.NoError(t, err)
	assert.Equal(t, 2, count)
	require.Len(t, defs.recurring, 2)
	assert.NotEmpty(t, defs.recurring[0].ID)
	assert.Equal(t, "07:00", defs.recurring[0].StartTimeStr)
}

func TestUploadRecurringRejectsWholeFileOnAnyBadRow(t *testing.T) {
	svc, defs, _, _ := newTestService()
	csv := `Agency Number,Account Name,Area,Minimum Weight,Maximum Weight,Day,Frequency,Start Time,End Time
100,Acme Foods,North,10,20,Monday,First,07:00,09:00
200,Harbor Goods,South,5,15,Noday,Sixth,11:00,13:00
300,Pier One,East,1,2,Tuesday,Second,09:00,08:00
`

	_, err := svc.UploadRecurring(context.Background(), "u1", strings.NewReader(csv))

	verrs, ok := AsValidationErrors(err)
	require.True(t, ok)
	assert.Contains(t, verrs, "Row 3: Day must be one of Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday.")
	assert.Contains(t, verrs, "Row 3: Frequency must be one of First, Second, Third, Fourth, Fifth.")
	assert.Contains(t, verrs, "Row 4: End Time must be after Start Time.")
	assert.Zero(t, defs.recurringSaves)
}

func TestMergeRecurringUploadEndToEnd(t *testing.T) {
	svc, defs, scheds, _ := newTestService()
	defs.recurring = []models.RecurringAppointment{
		{
			ID: "keep-1", AgencyNumber: "100", AccountName: "Acme Foods", Area: "North",
			MinWeight: 10, MaxWeight: 20, Day: "Monday", Frequency: "First",
			StartHour: 7, EndHour: 9, StartTimeStr: "07:00", EndTimeStr: "09:00",
		},
		{
			ID: "old-2", AgencyNumber: "200", AccountName: "Harbor Goods", Area: "South",
			MinWeight: 5, MaxWeight: 15, Day: "Friday", Frequency: "Third",
			StartHour: 11, EndHour: 13, StartTimeStr: "11:00", EndTimeStr: "13:00",
		},
	}
	scheds.recurring = models.AssignmentMap{
		"First Monday": {"Trailer 1_A": {"keep-1", "old-2"}},
	}

	csv := `Agency Number,Account Name,Area,Minimum Weight,Maximum Weight,Day,Frequency,Start Time,End Time
100,Acme Foods,North,10,20,Monday,First,07:00,09:00
200,Harbor Goods,South,5,99,Friday,Third,11:00,13:00
300,Pier One,East,1,2,Tuesday,Second,09:00,10:00
`

	summary, err := svc.MergeRecurringUpload(context.Background(), "u1", strings.NewReader(csv))

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Added)
	assert.Equal(t, 1, summary.Kept)
	assert.Equal(t, 1, summary.Replaced)
	assert.Equal(t, 3, summary.Total)

	require.Len(t, defs.recurring, 3)
	byAgency := make(map[string]models.RecurringAppointment)
	for _, d := range defs.recurring {
		byAgency[d.AgencyNumber] = d
	}
	assert.Equal(t, "keep-1", byAgency["100"].ID)
	assert.NotEqual(t, "old-2", byAgency["200"].ID)
	assert.Equal(t, 99.0, byAgency["200"].MaxWeight)

	// The replaced ID was scrubbed from the saved board, the kept one stayed.
	assert.Equal(t, []string{"keep-1"}, scheds.recurring["First Monday"]["Trailer 1_A"])

	labels := make([]string, 0, len(summary.Patterns))
	for _, p := range summary.Patterns {
		labels = append(labels, p.Label)
	}
	assert.Equal(t, []string{"First Monday", "Second Tuesday", "Third Friday"}, labels)
}

func TestAddSpecificAppends(t *testing.T) {
	svc, defs, _, _ := newTestService()
	defs.specific = []models.SpecificAppointment{{ID: "existing"}}

	minW, maxW := 100.0, 200.0
	appt, err := svc.AddSpecific(context.Background(), "u1", SpecificInput{
		AgencyNumber: "100", AccountName: "Acme Foods", Area: "North",
		MinWeight: &minW, MaxWeight: &maxW,
		StartTime: "2025-03-03T07:00", EndTime: "2025-03-03T09:00",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, appt.ID)
	require.Len(t, defs.specific, 2)
	assert.Equal(t, "existing", defs.specific[0].ID)
	assert.Equal(t, appt.ID, defs.specific[1].ID)
}

func TestAddSpecificValidationFailure(t *testing.T) {
	svc, defs, _, _ := newTestService()

	_, err := svc.AddSpecific(context.Background(), "u1", SpecificInput{})

	verrs, ok := AsValidationErrors(err)
	require.True(t, ok)
	assert.Contains(t, verrs, "Agency Number is required.")
	assert.Zero(t, defs.specificSaves)
}

func TestUpdateSpecificKeepsIDAndBoard(t *testing.T) {
	svc, defs, scheds, _ := newTestService()
	defs.specific = []models.SpecificAppointment{{ID: "appt-1", AgencyNumber: "100"}}
	scheds.specific = models.AssignmentMap{"2025-03-03": {"Trailer 1_A": {"appt-1"}}}

	minW, maxW := 1.0, 2.0
	updated, err := svc.UpdateSpecific(context.Background(), "u1", "appt-1", SpecificInput{
		AgencyNumber: "150", AccountName: "Renamed", Area: "West",
		MinWeight: &minW, MaxWeight: &maxW,
		StartTime: "2025-03-03T08:00", EndTime: "2025-03-03T10:00",
	})

	require.NoError(t, err)
	assert.Equal(t, "appt-1", updated.ID)
	assert.Equal(t, "150", updated.AgencyNumber)
	// Edits never touch the saved board.
	assert.Equal(t, []string{"appt-1"}, scheds.specific["2025-03-03"]["Trailer 1_A"])
	assert.Zero(t, scheds.specificSaves)
}

func TestUpdateSpecificUnknownID(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.UpdateSpecific(context.Background(), "u1", "ghost", SpecificInput{})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateSpecificReportsFirstErrorOnly(t *testing.T) {
	svc, defs, _, _ := newTestService()
	defs.specific = []models.SpecificAppointment{{ID: "appt-1"}}

	_, err := svc.UpdateSpecific(context.Background(), "u1", "appt-1", SpecificInput{})

	verrs, ok := AsValidationErrors(err)
	require.True(t, ok)
	assert.Equal(t, ValidationErrors{"Agency Number is required."}, verrs)
}

func TestDeleteSpecificPurgesBoard(t *testing.T) {
	svc, defs, scheds, _ := newTestService()
	defs.specific = []models.SpecificAppointment{{ID: "appt-1"}, {ID: "appt-2"}}
	scheds.specific = models.AssignmentMap{
		"2025-03-03": {"Trailer 1_A": {"appt-1", "appt-2"}},
	}

	err := svc.DeleteSpecific(context.Background(), "u1", "appt-1")

	require.NoError(t, err)
	require.Len(t, defs.specific, 1)
	assert.Equal(t, "appt-2", defs.specific[0].ID)
	assert.Equal(t, []string{"appt-2"}, scheds.specific["2025-03-03"]["Trailer 1_A"])
}

func TestDeleteSpecificUnknownID(t *testing.T) {
	svc, defs, _, _ := newTestService()
	defs.specific = []models.SpecificAppointment{{ID: "appt-1"}}

	err := svc.DeleteSpecific(context.Background(), "u1", "ghost")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, defs.specificSaves)
}

func TestDeleteSpecificEnqueuesPurgeWhenBoardSaveFails(t *testing.T) {
	svc, defs, scheds, queue := newTestService()
	defs.specific = []models.SpecificAppointment{{ID: "appt-1"}}
	scheds.specific = models.AssignmentMap{"2025-03-03": {"Trailer 1_A": {"appt-1"}}}
	scheds.failSpecificSave = true

	err := svc.DeleteSpecific(context.Background(), "u1", "appt-1")

	// The definition delete still succeeds.
	require.NoError(t, err)
	assert.Empty(t, defs.specific)

	require.Len(t, queue.payloads, 1)
	assert.Equal(t, models.PurgePayload{
		UserID: "u1",
		Kind:   models.ScheduleKindSpecific,
		IDs:    []string{"appt-1"},
	}, queue.payloads[0])
}

func TestSpecificBoardExpandsDates(t *testing.T) {
	svc, defs, scheds, _ := newTestService()
	config.AppConfig.Trucks = []string{"Trailer 1", "Straight 1"}
	config.AppConfig.Slots = []models.SlotDefinition{
		{Label: "A", StartHour: 7, EndHour: 11},
		{Label: "B", StartHour: 11, EndHour: 14},
	}
	defs.specific = []models.SpecificAppointment{{ID: "appt-1"}}
	scheds.specific = models.AssignmentMap{"2025-03-03": {"Trailer 1_A": {"appt-1"}}}

	board, err := svc.SpecificBoard(context.Background(), "u1", "2025-03-03", "2025-03-05")

	require.NoError(t, err)
	assert.Equal(t, []string{"2025-03-03", "2025-03-04", "2025-03-05"}, board.Dates)
	assert.Equal(t, []string{"Trailer 1", "Straight 1"}, board.Trucks)
	assert.Len(t, board.Slots, 2)
	assert.Len(t, board.Appointments, 1)
	assert.Equal(t, []string{"appt-1"}, board.Assignments["2025-03-03"]["Trailer 1_A"])
}

func TestSpecificBoardSingleDay(t *testing.T) {
	svc, _, _, _ := newTestService()

	board, err := svc.SpecificBoard(context.Background(), "u1", "2025-03-03", "2025-03-03")

	require.NoError(t, err)
	assert.Equal(t, []string{"2025-03-03"}, board.Dates)
}

func TestSpecificBoardRejectsBadRanges(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.SpecificBoard(ctx, "u1", "", "2025-03-05")
	verrs, ok := AsValidationErrors(err)
	require.True(t, ok)
	assert.Equal(t, ValidationErrors{"Please fill both start date and end date."}, verrs)

	_, err = svc.SpecificBoard(ctx, "u1", "03/03/2025", "2025-03-05")
	verrs, ok = AsValidationErrors(err)
	require.True(t, ok)
	assert.Contains(t, verrs[0], "Invalid date format")

	_, err = svc.SpecificBoard(ctx, "u1", "2025-03-05", "2025-03-03")
	verrs, ok = AsValidationErrors(err)
	require.True(t, ok)
	assert.Equal(t, ValidationErrors{"End date must be on or after start date."}, verrs)
}

func TestSaveSpecificAssignmentsPersists(t *testing.T) {
	svc, _, scheds, _ := newTestService()
	layout := models.AssignmentMap{"2025-03-03": {"Trailer 1_A": {"x"}}}

	err := svc.SaveSpecificAssignments(context.Background(), "u1", layout)

	require.NoError(t, err)
	assert.Equal(t, layout, scheds.specific)
	assert.Equal(t, 1, scheds.specificSaves)
}

func TestExportSpecificOrdering(t *testing.T) {
	svc, defs, scheds, _ := newTestService()
	mk := func(id, agency string) models.SpecificAppointment {
		return models.SpecificAppointment{ID: id, AgencyNumber: agency, AccountName: "N", Area: "A"}
	}
	defs.specific = []models.SpecificAppointment{mk("a", "1"), mk("b", "2"), mk("c", "3")}
	scheds.specific = models.AssignmentMap{
		"2025-03-04": {"Trailer 1_A": {"c"}},
		"2025-03-03": {
			"Trailer 2_B": {"b"},
			"Trailer 1_A": {"a", "c", "ghost"},
		},
	}

	rows, err := svc.ExportSpecific(context.Background(), "u1")

	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "2025-03-03", rows[0].Date)
	assert.Equal(t, "Trailer 1", rows[0].TruckName)
	assert.Equal(t, "A", rows[0].Slot)
	assert.Equal(t, "1", rows[0].AgencyNumber)
	assert.Equal(t, "3", rows[1].AgencyNumber) // stacked order within the cell
	assert.Equal(t, "2", rows[2].AgencyNumber) // next slot on the same date
	assert.Equal(t, "2025-03-04", rows[3].Date)
}

func TestExportSpecificNothingToExport(t *testing.T) {
	svc, defs, scheds, _ := newTestService()
	defs.specific = []models.SpecificAppointment{{ID: "a"}}

	_, err := svc.ExportSpecific(context.Background(), "u1")
	assert.ErrorIs(t, err, ErrNothingToExport)

	// Assignments referencing only vanished IDs export nothing either.
	scheds.specific = models.AssignmentMap{"2025-03-03": {"Trailer 1_A": {"ghost"}}}
	_, err = svc.ExportSpecific(context.Background(), "u1")
	assert.ErrorIs(t, err, ErrNothingToExport)
}

func TestExportRecurringCanonicalPatternOrder(t *testing.T) {
	svc, defs, scheds, _ := newTestService()
	defs.recurring = []models.RecurringAppointment{
		{ID: "r1", AgencyNumber: "100", Day: "Friday", Frequency: "Third", StartTimeStr: "11:00", EndTimeStr: "13:00"},
		{ID: "r2", AgencyNumber: "200", Day: "Monday", Frequency: "First", StartTimeStr: "07:00", EndTimeStr: "09:00"},
	}
	scheds.recurring = models.AssignmentMap{
		"Third Friday":  {"Trailer 1_A": {"r1"}},
		"First Monday":  {"Straight 1_B": {"r2"}},
		"Stale Pattern": {"Trailer 1_A": {"r1"}},
	}

	rows, err := svc.ExportRecurring(context.Background(), "u1")

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "First Monday", rows[0].Pattern)
	assert.Equal(t, "Monday", rows[0].Day)
	assert.Equal(t, "First", rows[0].Frequency)
	assert.Equal(t, "Straight 1", rows[0].TruckName)
	assert.Equal(t, "07:00", rows[0].StartTime)
	assert.Equal(t, "Third Friday", rows[1].Pattern)
}

func TestRecurringBoardDerivesPatterns(t *testing.T) {
	svc, defs, _, _ := newTestService()
	config.AppConfig.Trucks = []string{"Trailer 1"}
	defs.recurring = []models.RecurringAppointment{
		{ID: "r1", Day: "Friday", Frequency: "Third"},
		{ID: "r2", Day: "Monday", Frequency: "First"},
		{ID: "r3", Day: "Monday", Frequency: "First"},
	}

	board, err := svc.RecurringBoard(context.Background(), "u1")

	require.NoError(t, err)
	require.Len(t, board.Patterns, 2)
	assert.Equal(t, "First Monday", board.Patterns[0].Label)
	assert.Equal(t, "Third Friday", board.Patterns[1].Label)
	assert.Len(t, board.Appointments, 3)
}

func TestRetryPurge(t *testing.T) {
	svc, _, scheds, _ := newTestService()
	scheds.recurring = models.AssignmentMap{"First Monday": {"Trailer 1_A": {"gone", "stay"}}}

	err := svc.RetryPurge(context.Background(), "u1", models.ScheduleKindRecurring, []string{"gone"})

	require.NoError(t, err)
	assert.Equal(t, []string{"stay"}, scheds.recurring["First Monday"]["Trailer 1_A"])
	assert.Equal(t, 1, scheds.recurringSaves)
}

func TestRetryPurgeNoopSkipsSave(t *testing.T) {
	svc, _, scheds, _ := newTestService()
	scheds.recurring = models.AssignmentMap{"First Monday": {"Trailer 1_A": {"stay"}}}

	err := svc.RetryPurge(context.Background(), "u1", models.ScheduleKindRecurring, []string{"ghost"})

	require.NoError(t, err)
	assert.Zero(t, scheds.recurringSaves)
}

func TestRetryPurgeSurfacesLoadError(t *testing.T) {
	svc, _, scheds, _ := newTestService()
	scheds.loadErr = errors.New("mongo down")

	err := svc.RetryPurge(context.Background(), "u1", models.ScheduleKindSpecific, []string{"x"})

	assert.Error(t, err)
}
