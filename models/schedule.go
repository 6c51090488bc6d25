package models

import "strings"

// Schedule kinds name the two independent planning boards.
const (
	ScheduleKindSpecific  = "specific"
	ScheduleKindRecurring = "recurring"
)

// AssignmentMap records which appointments are parked where on a board.
// The outer key is a grouping key (an ISO date for specific boards, a
// pattern label for recurring boards), the inner key is a truck/slot cell,
// and the slice holds appointment IDs in the order the planner stacked them.
type AssignmentMap map[string]map[string][]string

// SlotDefinition describes one bookable window on every truck, such as
// slot "A" covering 07:00 to 11:00. Hours are fractional clock hours.
type SlotDefinition struct {
	Label     string  `mapstructure:"label" json:"label"`
	StartHour float64 `mapstructure:"start_hour" json:"start_hour"`
	EndHour   float64 `mapstructure:"end_hour" json:"end_hour"`
}

// SlotKey builds the composite key for a truck/slot cell, e.g. "Trailer 1_A".
func SlotKey(truck, slotLabel string) string {
	return truck + "_" + slotLabel
}

// SplitSlotKey splits a composite cell key back into its truck name and slot
// label. Truck names may contain underscores themselves, so the split is on
// the last underscore; a key without one is treated as a bare truck name.
func SplitSlotKey(key string) (truck, slotLabel string) {
	idx := strings.LastIndex(key, "_")
	if idx < 0 {
		return key, ""
	}
	return key[:idx], key[idx+1:]
}
