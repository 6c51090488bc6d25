package scheduling

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const specificCSV = `Agency Number,Account Name,Area,Minimum Weight,Maximum Weight,Start Time,End Time
100,Acme Foods,North,1000,2000,2025-03-03T07:00,2025-03-03T09:00
200,Harbor Goods,South,,,2025-03-04T11:00,2025-03-04T13:30
`

func TestReadRowsParsesByHeader(t *testing.T) {
	rows, err := ReadRows(strings.NewReader(specificCSV), SpecificColumns)

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "100", rows[0][ColAgencyNumber])
	assert.Equal(t, "Harbor Goods", rows[1][ColAccountName])
	assert.Equal(t, "", rows[1][ColMinWeight])
}

func TestReadRowsStripsBOM(t *testing.T) {
	rows, err := ReadRows(strings.NewReader("\uFEFF"+specificCSV), SpecificColumns)

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "100", rows[0][ColAgencyNumber])
}

func TestReadRowsMissingColumns(t *testing.T) {
	csv := "Agency Number,Account Name\n100,Acme\n"

	_, err := ReadRows(strings.NewReader(csv), SpecificColumns)

	verrs, ok := AsValidationErrors(err)
	require.True(t, ok)
	require.Len(t, verrs, 1)
	assert.Contains(t, verrs[0], "missing required columns")
	assert.Contains(t, verrs[0], ColStartTime)
}

func TestReadRowsEmptyFile(t *testing.T) {
	_, err := ReadRows(strings.NewReader(""), SpecificColumns)

	verrs, ok := AsValidationErrors(err)
	require.True(t, ok)
	assert.Equal(t, ValidationErrors{"CSV file is empty."}, verrs)
}

func TestReadRowsRaggedRecord(t *testing.T) {
	csv := specificCSV + "300,Short Row\n"

	_, err := ReadRows(strings.NewReader(csv), SpecificColumns)

	verrs, ok := AsValidationErrors(err)
	require.True(t, ok)
	assert.Contains(t, verrs[0], "Failed to read CSV")
}

func TestWriteSpecificCSV(t *testing.T) {
	rows := []SpecificExportRow{
		{
			Date:         "2025-03-03",
			TruckName:    "Trailer 1",
			Slot:         "A",
			AgencyNumber: "100",
			AccountName:  "Acme Foods",
			Area:         "North",
			MinWeight:    1000,
			MaxWeight:    2000,
			StartTime:    "2025-03-03T07:00:00",
			EndTime:      "2025-03-03T09:00:00",
		},
	}

	var sb strings.Builder
	require.NoError(t, WriteSpecificCSV(&sb, rows))

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Date,Truck Name,Slot,Agency Number,Account Name,Area,Minimum Weight,Maximum Weight,Start Time,End Time", lines[0])
	assert.Equal(t, "2025-03-03,Trailer 1,A,100,Acme Foods,North,1000,2000,2025-03-03T07:00:00,2025-03-03T09:00:00", lines[1])
}

func TestWriteRecurringCSV(t *testing.T) {
	rows := []RecurringExportRow{
		{
			Pattern:      "First Monday",
			Frequency:    "First",
			Day:          "Monday",
			TruckName:    "Straight 2",
			Slot:         "B",
			AgencyNumber: "200",
			AccountName:  "Harbor Goods",
			Area:         "South",
			MinWeight:    500,
			MaxWeight:    750.5,
			StartTime:    "11:00",
			EndTime:      "13:30",
		},
	}

	var sb strings.Builder
	require.NoError(t, WriteRecurringCSV(&sb, rows))

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Pattern,Frequency,Day,Truck Name,Slot,Agency Number,Account Name,Area,Minimum Weight,Maximum Weight,Start Time,End Time", lines[0])
	assert.Equal(t, "First Monday,First,Monday,Straight 2,B,200,Harbor Goods,South,500,750.5,11:00,13:30", lines[1])
}

func TestReadRowsRoundTripsExport(t *testing.T) {
	// A download must be uploadable again: the export carries extra placement
	// columns, which imports ignore.
	rows := []SpecificExportRow{
		{
			Date:         "2025-03-03",
			TruckName:    "Trailer 1",
			Slot:         "A",
			AgencyNumber: "100",
			AccountName:  "Acme Foods",
			Area:         "North",
			MinWeight:    1000,
			MaxWeight:    2000,
			StartTime:    "2025-03-03T07:00:00",
			EndTime:      "2025-03-03T09:00:00",
		},
	}
	var sb strings.Builder
	require.NoError(t, WriteSpecificCSV(&sb, rows))

	parsed, err := ReadRows(strings.NewReader(sb.String()), SpecificColumns)
	require.NoError(t, err)
	require.Len(t, parsed, 1)

	appt, errs := ValidateSpecificRow(parsed[0])
	require.Empty(t, errs)
	assert.Equal(t, "100", appt.AgencyNumber)
	assert.Equal(t, 7.0, appt.StartHour)
}
