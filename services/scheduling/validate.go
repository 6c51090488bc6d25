package scheduling

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"dockplan/models"
)

// Row is one parsed CSV record or form payload, keyed by column name.
type Row map[string]string

// Canonical column names shared by uploads and exports.
const (
	ColAgencyNumber = "Agency Number"
	ColAccountName  = "Account Name"
	ColArea         = "Area"
	ColMinWeight    = "Minimum Weight"
	ColMaxWeight    = "Maximum Weight"
	ColStartTime    = "Start Time"
	ColEndTime      = "End Time"
	ColDay          = "Day"
	ColFrequency    = "Frequency"
	ColDate         = "Date"
	ColTruckName    = "Truck Name"
	ColSlot         = "Slot"
	ColPattern      = "Pattern"
)

// SpecificColumns are the required upload columns for one-off appointments.
var SpecificColumns = []string{
	ColAgencyNumber, ColAccountName, ColArea,
	ColMinWeight, ColMaxWeight, ColStartTime, ColEndTime,
}

// RecurringColumns are the required upload columns for recurring appointments.
var RecurringColumns = []string{
	ColAgencyNumber, ColAccountName, ColArea,
	ColMinWeight, ColMaxWeight, ColDay, ColFrequency, ColStartTime, ColEndTime,
}

// timestampLayouts are tried in order when parsing specific-date times.
// Spreadsheet exports arrive in several shapes.
var timestampLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
	"1/2/2006 15:04",
	"1/2/2006 3:04 PM",
}

func parseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", raw)
}

// parseClock parses a clock-of-day value such as "7:30", "07:30" or
// "07:30:00". Full timestamps are accepted too, keeping only the time of
// day. It returns the fractional hour and the canonical HH:MM form.
func parseClock(raw string) (float64, string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, "", fmt.Errorf("empty time")
	}
	for _, layout := range []string{"15:04", "15:04:05", "3:04 PM"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return fractionalHour(t), t.Format("15:04"), nil
		}
	}
	if t, err := parseTimestamp(raw); err == nil {
		return fractionalHour(t), t.Format("15:04"), nil
	}
	return 0, "", fmt.Errorf("unrecognized time %q", raw)
}

func fractionalHour(t time.Time) float64 {
	return float64(t.Hour()) + float64(t.Minute())/60.0
}

// parseWeight parses a weight cell. Blank means zero; anything else must be
// numeric.
func parseWeight(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseFloat(raw, 64)
}

// ValidateSpecificRow checks one one-off appointment row and returns the
// validated appointment together with every problem found. The appointment is
// only meaningful when the error list is empty; no ID is assigned here.
func ValidateSpecificRow(row Row) (models.SpecificAppointment, []string) {
	var errs []string
	appt := models.SpecificAppointment{
		AgencyNumber: strings.TrimSpace(row[ColAgencyNumber]),
		AccountName:  strings.TrimSpace(row[ColAccountName]),
		Area:         strings.TrimSpace(row[ColArea]),
	}
	if appt.AgencyNumber == "" {
		errs = append(errs, "Agency Number is required.")
	}
	if appt.AccountName == "" {
		errs = append(errs, "Account Name is required.")
	}
	if appt.Area == "" {
		errs = append(errs, "Area is required.")
	}

	var err error
	if appt.MinWeight, err = parseWeight(row[ColMinWeight]); err != nil {
		errs = append(errs, "Minimum Weight must be a number.")
	}
	if appt.MaxWeight, err = parseWeight(row[ColMaxWeight]); err != nil {
		errs = append(errs, "Maximum Weight must be a number.")
	}

	start, startErr := parseTimestamp(row[ColStartTime])
	if startErr != nil {
		errs = append(errs, "Start Time is required and must be in correct format.")
	}
	end, endErr := parseTimestamp(row[ColEndTime])
	if endErr != nil {
		errs = append(errs, "End Time is required and must be in correct format.")
	}
	if startErr == nil && endErr == nil && !end.After(start) {
		errs = append(errs, "End Time must be after Start Time.")
	}

	appt.StartTime = start
	appt.EndTime = end
	appt.StartHour = fractionalHour(start)
	return appt, errs
}

// ValidateRecurringRow checks one recurring appointment row with the same
// contract as ValidateSpecificRow. Clock strings are normalized to HH:MM so
// the natural key never depends on how a planner typed the time.
func ValidateRecurringRow(row Row) (models.RecurringAppointment, []string) {
	var errs []string
	appt := models.RecurringAppointment{
		AgencyNumber: strings.TrimSpace(row[ColAgencyNumber]),
		AccountName:  strings.TrimSpace(row[ColAccountName]),
		Area:         strings.TrimSpace(row[ColArea]),
		Day:          strings.TrimSpace(row[ColDay]),
		Frequency:    strings.TrimSpace(row[ColFrequency]),
	}
	if appt.AgencyNumber == "" {
		errs = append(errs, "Agency Number is required.")
	}
	if appt.AccountName == "" {
		errs = append(errs, "Account Name is required.")
	}
	if appt.Area == "" {
		errs = append(errs, "Area is required.")
	}

	var err error
	if appt.MinWeight, err = parseWeight(row[ColMinWeight]); err != nil {
		errs = append(errs, "Minimum Weight must be a number.")
	}
	if appt.MaxWeight, err = parseWeight(row[ColMaxWeight]); err != nil {
		errs = append(errs, "Maximum Weight must be a number.")
	}

	if !models.IsWeekday(appt.Day) {
		errs = append(errs, "Day must be one of "+strings.Join(models.Weekdays, ", ")+".")
	}
	if !models.IsOrdinal(appt.Frequency) {
		errs = append(errs, "Frequency must be one of "+strings.Join(models.Ordinals, ", ")+".")
	}

	var startErr, endErr error
	appt.StartHour, appt.StartTimeStr, startErr = parseClock(row[ColStartTime])
	if startErr != nil {
		errs = append(errs, "Start Time is required and must be HH:MM.")
	}
	appt.EndHour, appt.EndTimeStr, endErr = parseClock(row[ColEndTime])
	if endErr != nil {
		errs = append(errs, "End Time is required and must be HH:MM.")
	}
	if startErr == nil && endErr == nil && appt.EndHour <= appt.StartHour {
		errs = append(errs, "End Time must be after Start Time.")
	}

	return appt, errs
}

// SpecificInput is the JSON payload for creating or editing a one-off
// appointment. Weights are pointers so a missing field and an explicit zero
// both mean zero weight.
type SpecificInput struct {
	AgencyNumber string   `json:"agency_number"`
	AccountName  string   `json:"account_name"`
	Area         string   `json:"area"`
	MinWeight    *float64 `json:"min_weight"`
	MaxWeight    *float64 `json:"max_weight"`
	StartTime    string   `json:"start_time"`
	EndTime      string   `json:"end_time"`
}

// Row converts the payload to the row form shared with CSV imports, so both
// paths run the identical validator.
func (in SpecificInput) Row() Row {
	return Row{
		ColAgencyNumber: in.AgencyNumber,
		ColAccountName:  in.AccountName,
		ColArea:         in.Area,
		ColMinWeight:    formatWeight(in.MinWeight),
		ColMaxWeight:    formatWeight(in.MaxWeight),
		ColStartTime:    in.StartTime,
		ColEndTime:      in.EndTime,
	}
}

// RecurringInput is the JSON payload for creating or editing a recurring
// appointment.
type RecurringInput struct {
	AgencyNumber string   `json:"agency_number"`
	AccountName  string   `json:"account_name"`
	Area         string   `json:"area"`
	MinWeight    *float64 `json:"min_weight"`
	MaxWeight    *float64 `json:"max_weight"`
	Day          string   `json:"day"`
	Frequency    string   `json:"frequency"`
	StartTime    string   `json:"start_time_str"`
	EndTime      string   `json:"end_time_str"`
}

// Row converts the payload to the row form shared with CSV imports.
func (in RecurringInput) Row() Row {
	return Row{
		ColAgencyNumber: in.AgencyNumber,
		ColAccountName:  in.AccountName,
		ColArea:         in.Area,
		ColMinWeight:    formatWeight(in.MinWeight),
		ColMaxWeight:    formatWeight(in.MaxWeight),
		ColDay:          in.Day,
		ColFrequency:    in.Frequency,
		ColStartTime:    in.StartTime,
		ColEndTime:      in.EndTime,
	}
}

func formatWeight(w *float64) string {
	if w == nil {
		return ""
	}
	return strconv.FormatFloat(*w, 'f', -1, 64)
}
