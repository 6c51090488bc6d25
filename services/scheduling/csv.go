package scheduling

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadRows parses an uploaded CSV into ordered rows keyed by column name.
// Every column in required must appear in the header; extra columns ride
// along untouched. Ragged records are a hard error, matching what planners
// see when a spreadsheet export went wrong.
func ReadRows(r io.Reader, required []string) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ValidationErrors{"CSV file is empty."}
	}
	if err != nil {
		return nil, ValidationErrors{fmt.Sprintf("Failed to read CSV: %v", err)}
	}
	// Spreadsheet tools often prepend a UTF-8 BOM to the first header cell.
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	present := make(map[string]struct{}, len(header))
	for _, name := range header {
		present[name] = struct{}{}
	}
	var missing []string
	for _, name := range required {
		if _, ok := present[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, ValidationErrors{"CSV is missing required columns: " + strings.Join(missing, ", ") + "."}
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, ValidationErrors{fmt.Sprintf("Failed to read CSV: %v", err)}
		}
		row := make(Row, len(header))
		for i, name := range header {
			if i < len(record) {
				row[name] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// SpecificExportRow is one line of the specific-date schedule download.
type SpecificExportRow struct {
	Date         string
	TruckName    string
	Slot         string
	AgencyNumber string
	AccountName  string
	Area         string
	MinWeight    float64
	MaxWeight    float64
	StartTime    string
	EndTime      string
}

// RecurringExportRow is one line of the recurring schedule download.
type RecurringExportRow struct {
	Pattern      string
	Frequency    string
	Day          string
	TruckName    string
	Slot         string
	AgencyNumber string
	AccountName  string
	Area         string
	MinWeight    float64
	MaxWeight    float64
	StartTime    string
	EndTime      string
}

// specificExportHeader matches the columns uploads expect back, prefixed by
// the placement columns, so a download can be edited and re-imported.
var specificExportHeader = []string{
	ColDate, ColTruckName, ColSlot,
	ColAgencyNumber, ColAccountName, ColArea,
	ColMinWeight, ColMaxWeight, ColStartTime, ColEndTime,
}

var recurringExportHeader = []string{
	ColPattern, ColFrequency, ColDay, ColTruckName, ColSlot,
	ColAgencyNumber, ColAccountName, ColArea,
	ColMinWeight, ColMaxWeight, ColStartTime, ColEndTime,
}

// WriteSpecificCSV renders the specific-date export.
func WriteSpecificCSV(w io.Writer, rows []SpecificExportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(specificExportHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			r.Date, r.TruckName, r.Slot,
			r.AgencyNumber, r.AccountName, r.Area,
			formatFloat(r.MinWeight), formatFloat(r.MaxWeight),
			r.StartTime, r.EndTime,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteRecurringCSV renders the recurring schedule export.
func WriteRecurringCSV(w io.Writer, rows []RecurringExportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(recurringExportHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			r.Pattern, r.Frequency, r.Day, r.TruckName, r.Slot,
			r.AgencyNumber, r.AccountName, r.Area,
			formatFloat(r.MinWeight), formatFloat(r.MaxWeight),
			r.StartTime, r.EndTime,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
