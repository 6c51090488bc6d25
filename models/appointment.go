package models

import "time"

// Weekdays lists the accepted day values for recurring appointments, in
// canonical order. The order drives pattern sorting, not validation.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Ordinals lists the accepted week-of-month values ("First Monday",
// "Third Friday", ...), in canonical order.
var Ordinals = []string{"First", "Second", "Third", "Fourth", "Fifth"}

// WeekdayIndex returns the position of day within Weekdays, or -1 when day
// is not a recognized weekday.
func WeekdayIndex(day string) int {
	for i, d := range Weekdays {
		if d == day {
			return i
		}
	}
	return -1
}

// OrdinalIndex returns the position of freq within Ordinals, or -1 when freq
// is not a recognized ordinal.
func OrdinalIndex(freq string) int {
	for i, f := range Ordinals {
		if f == freq {
			return i
		}
	}
	return -1
}

// IsWeekday reports whether day is one of the canonical weekday names.
func IsWeekday(day string) bool { return WeekdayIndex(day) >= 0 }

// IsOrdinal reports whether freq is one of the canonical ordinal names.
func IsOrdinal(freq string) bool { return OrdinalIndex(freq) >= 0 }

// SpecificAppointment is a one-off dock loading appointment pinned to exact
// timestamps. StartHour is the fractional clock hour of StartTime (7:30 is
// 7.5) and is kept denormalized so the board can place cards without
// re-parsing timestamps.
type SpecificAppointment struct {
	ID           string    `bson:"id" json:"id"`
	AgencyNumber string    `bson:"agency_number" json:"agency_number"`
	AccountName  string    `bson:"account_name" json:"account_name"`
	Area         string    `bson:"area" json:"area"`
	MinWeight    float64   `bson:"min_weight" json:"min_weight"`
	MaxWeight    float64   `bson:"max_weight" json:"max_weight"`
	StartTime    time.Time `bson:"start_time" json:"start_time"`
	EndTime      time.Time `bson:"end_time" json:"end_time"`
	StartHour    float64   `bson:"start_hour" json:"start_hour"`
}

// RecurringAppointment repeats on an ordinal weekday of every month, such as
// "First Monday". Times are clock-of-day only; StartTimeStr and EndTimeStr
// hold the canonical HH:MM form shown to planners and written to exports.
type RecurringAppointment struct {
	ID           string  `bson:"id" json:"id"`
	AgencyNumber string  `bson:"agency_number" json:"agency_number"`
	AccountName  string  `bson:"account_name" json:"account_name"`
	Area         string  `bson:"area" json:"area"`
	MinWeight    float64 `bson:"min_weight" json:"min_weight"`
	MaxWeight    float64 `bson:"max_weight" json:"max_weight"`
	Day          string  `bson:"day" json:"day"`
	Frequency    string  `bson:"frequency" json:"frequency"`
	StartHour    float64 `bson:"start_hour" json:"start_hour"`
	EndHour      float64 `bson:"end_hour" json:"end_hour"`
	StartTimeStr string  `bson:"start_time_str" json:"start_time_str"`
	EndTimeStr   string  `bson:"end_time_str" json:"end_time_str"`
}

// RecurringKey identifies a recurring appointment independent of its ID.
// Two records with the same key describe the same real-world standing
// appointment even when they were imported separately; only the weight
// range may differ between them.
type RecurringKey struct {
	AgencyNumber string
	AccountName  string
	Area         string
	Day          string
	Frequency    string
	StartTimeStr string
	EndTimeStr   string
}

// Key returns the natural identity of the appointment.
func (a RecurringAppointment) Key() RecurringKey {
	return RecurringKey{
		AgencyNumber: a.AgencyNumber,
		AccountName:  a.AccountName,
		Area:         a.Area,
		Day:          a.Day,
		Frequency:    a.Frequency,
		StartTimeStr: a.StartTimeStr,
		EndTimeStr:   a.EndTimeStr,
	}
}

// SameWeights reports whether the only fields not covered by the natural key
// match as well, meaning an import carrying b brings nothing new over a.
func (a RecurringAppointment) SameWeights(b RecurringAppointment) bool {
	return a.MinWeight == b.MinWeight && a.MaxWeight == b.MaxWeight
}
