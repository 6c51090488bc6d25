package scheduling

import (
	"sort"

	"dockplan/models"
)

// DerivePatterns computes the deduplicated pattern list for a set of
// recurring definitions, ordered by ordinal then weekday ("First Monday"
// before "First Friday" before "Second Monday"). Patterns are recomputed
// from the definitions after every mutation and never stored, so the two
// cannot drift apart.
func DerivePatterns(defs []models.RecurringAppointment) []models.Pattern {
	seen := make(map[string]struct{}, len(defs))
	patterns := make([]models.Pattern, 0, len(defs))
	for _, d := range defs {
		label := models.PatternLabel(d.Frequency, d.Day)
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		patterns = append(patterns, models.Pattern{
			Label:     label,
			Frequency: d.Frequency,
			Day:       d.Day,
		})
	}

	sort.Slice(patterns, func(i, j int) bool {
		oi, oj := models.OrdinalIndex(patterns[i].Frequency), models.OrdinalIndex(patterns[j].Frequency)
		if oi != oj {
			return oi < oj
		}
		return models.WeekdayIndex(patterns[i].Day) < models.WeekdayIndex(patterns[j].Day)
	})
	return patterns
}
