package models

// Pattern is a recurrence bucket such as "First Monday". Patterns are always
// derived from the recurring definitions on demand and never persisted, so
// they cannot drift from the definitions they summarize.
type Pattern struct {
	Label     string `json:"label"`
	Frequency string `json:"frequency"`
	Day       string `json:"day"`
}

// PatternLabel builds the display label for an ordinal/weekday pair.
func PatternLabel(frequency, day string) string {
	return frequency + " " + day
}
