package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSpecificRow() Row {
	return Row{
		ColAgencyNumber: "100",
		ColAccountName:  "Acme Foods",
		ColArea:         "North",
		ColMinWeight:    "1000",
		ColMaxWeight:    "2000",
		ColStartTime:    "2025-03-03T07:00",
		ColEndTime:      "2025-03-03T09:30",
	}
}

func TestValidateSpecificRowHappyPath(t *testing.T) {
	appt, errs := ValidateSpecificRow(validSpecificRow())

	require.Empty(t, errs)
	assert.Equal(t, "100", appt.AgencyNumber)
	assert.Equal(t, "Acme Foods", appt.AccountName)
	assert.Equal(t, "North", appt.Area)
	assert.Equal(t, 1000.0, appt.MinWeight)
	assert.Equal(t, 2000.0, appt.MaxWeight)
	assert.Equal(t, time.Date(2025, 3, 3, 7, 0, 0, 0, time.UTC), appt.StartTime)
	assert.Equal(t, 7.0, appt.StartHour)
	assert.Empty(t, appt.ID)
}

func TestValidateSpecificRowFractionalStartHour(t *testing.T) {
	row := validSpecificRow()
	row[ColStartTime] = "2025-03-03 07:30:00"

	appt, errs := ValidateSpecificRow(row)

	require.Empty(t, errs)
	assert.Equal(t, 7.5, appt.StartHour)
}

func TestValidateSpecificRowBlankWeightsAreZero(t *testing.T) {
	row := validSpecificRow()
	row[ColMinWeight] = ""
	row[ColMaxWeight] = "  "

	appt, errs := ValidateSpecificRow(row)

	require.Empty(t, errs)
	assert.Equal(t, 0.0, appt.MinWeight)
	assert.Equal(t, 0.0, appt.MaxWeight)
}

func TestValidateSpecificRowCollectsAllErrors(t *testing.T) {
	row := Row{
		ColAgencyNumber: "",
		ColAccountName:  "",
		ColArea:         "",
		ColMinWeight:    "heavy",
		ColMaxWeight:    "light",
		ColStartTime:    "not a time",
		ColEndTime:      "",
	}

	_, errs := ValidateSpecificRow(row)

	assert.Contains(t, errs, "Agency Number is required.")
	assert.Contains(t, errs, "Account Name is required.")
	assert.Contains(t, errs, "Area is required.")
	assert.Contains(t, errs, "Minimum Weight must be a number.")
	assert.Contains(t, errs, "Maximum Weight must be a number.")
	assert.Contains(t, errs, "Start Time is required and must be in correct format.")
	assert.Contains(t, errs, "End Time is required and must be in correct format.")
	assert.Len(t, errs, 7)
}

func TestValidateSpecificRowEndNotAfterStart(t *testing.T) {
	row := validSpecificRow()
	row[ColEndTime] = row[ColStartTime]

	_, errs := ValidateSpecificRow(row)

	assert.Equal(t, []string{"End Time must be after Start Time."}, errs)
}

func validRecurringRow() Row {
	return Row{
		ColAgencyNumber: "200",
		ColAccountName:  "Harbor Goods",
		ColArea:         "South",
		ColMinWeight:    "500",
		ColMaxWeight:    "750",
		ColDay:          "Monday",
		ColFrequency:    "First",
		ColStartTime:    "7:30",
		ColEndTime:      "10:00",
	}
}

func TestValidateRecurringRowHappyPath(t *testing.T) {
	appt, errs := ValidateRecurringRow(validRecurringRow())

	require.Empty(t, errs)
	assert.Equal(t, "Monday", appt.Day)
	assert.Equal(t, "First", appt.Frequency)
	assert.Equal(t, 7.5, appt.StartHour)
	assert.Equal(t, 10.0, appt.EndHour)
	// Clock strings come back normalized to HH:MM.
	assert.Equal(t, "07:30", appt.StartTimeStr)
	assert.Equal(t, "10:00", appt.EndTimeStr)
}

func TestValidateRecurringRowAcceptsTimestampTimes(t *testing.T) {
	row := validRecurringRow()
	row[ColStartTime] = "2025-01-01 08:15"
	row[ColEndTime] = "2025-01-01 11:00"

	appt, errs := ValidateRecurringRow(row)

	require.Empty(t, errs)
	assert.Equal(t, "08:15", appt.StartTimeStr)
	assert.Equal(t, "11:00", appt.EndTimeStr)
}

func TestValidateRecurringRowRejectsBadEnums(t *testing.T) {
	row := validRecurringRow()
	row[ColDay] = "Someday"
	row[ColFrequency] = "Always"

	_, errs := ValidateRecurringRow(row)

	assert.Contains(t, errs, "Day must be one of Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday.")
	assert.Contains(t, errs, "Frequency must be one of First, Second, Third, Fourth, Fifth.")
}

func TestValidateRecurringRowRejectsBadClock(t *testing.T) {
	row := validRecurringRow()
	row[ColStartTime] = "25:99"

	_, errs := ValidateRecurringRow(row)

	assert.Contains(t, errs, "Start Time is required and must be HH:MM.")
}

func TestValidateRecurringRowEndNotAfterStart(t *testing.T) {
	row := validRecurringRow()
	row[ColStartTime] = "10:00"
	row[ColEndTime] = "10:00"

	_, errs := ValidateRecurringRow(row)

	assert.Equal(t, []string{"End Time must be after Start Time."}, errs)
}

func TestSpecificInputRowRunsSameValidator(t *testing.T) {
	minW, maxW := 100.0, 200.0
	in := SpecificInput{
		AgencyNumber: "300",
		AccountName:  "Pier One",
		Area:         "East",
		MinWeight:    &minW,
		MaxWeight:    &maxW,
		StartTime:    "2025-04-01T06:00",
		EndTime:      "2025-04-01T08:00",
	}

	appt, errs := ValidateSpecificRow(in.Row())

	require.Empty(t, errs)
	assert.Equal(t, 100.0, appt.MinWeight)
	assert.Equal(t, 6.0, appt.StartHour)
}

func TestSpecificInputNilWeightsMeanZero(t *testing.T) {
	in := SpecificInput{
		AgencyNumber: "300",
		AccountName:  "Pier One",
		Area:         "East",
		StartTime:    "2025-04-01T06:00",
		EndTime:      "2025-04-01T08:00",
	}

	appt, errs := ValidateSpecificRow(in.Row())

	require.Empty(t, errs)
	assert.Equal(t, 0.0, appt.MinWeight)
	assert.Equal(t, 0.0, appt.MaxWeight)
}
