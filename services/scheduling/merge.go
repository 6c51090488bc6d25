package scheduling

import (
	"github.com/google/uuid"

	"dockplan/models"
)

// MergeResult describes what a recurring reconciliation did. Merged is the
// complete new definition list; Replaced holds the old IDs of definitions
// whose weights changed, which the caller must strip from saved assignments.
type MergeResult struct {
	Merged   []models.RecurringAppointment
	Replaced []string
	Added    int
	Kept     int
}

// MergeRecurring reconciles a validated import batch (rows without IDs)
// against the stored definitions, keyed by natural identity:
//
//   - an identical record keeps its stored ID, so board assignments survive,
//   - a record whose weights changed gets a fresh ID and the old one is
//     reported in Replaced,
//   - a brand-new record gets a fresh ID,
//   - stored records the batch never mentions are carried over unchanged.
//
// When the batch repeats a natural key, the first occurrence wins and later
// duplicates are dropped, so the merged list holds at most one record per key
// from the batch.
func MergeRecurring(existing, incoming []models.RecurringAppointment) MergeResult {
	byKey := make(map[models.RecurringKey]models.RecurringAppointment, len(existing))
	for _, ex := range existing {
		byKey[ex.Key()] = ex
	}

	processed := make(map[models.RecurringKey]struct{}, len(incoming))
	merged := make([]models.RecurringAppointment, 0, len(existing)+len(incoming))
	var result MergeResult

	for _, in := range incoming {
		key := in.Key()
		if _, dup := processed[key]; dup {
			continue
		}
		processed[key] = struct{}{}

		ex, known := byKey[key]
		switch {
		case !known:
			in.ID = uuid.New().String()
			result.Added++
		case ex.SameWeights(in):
			in.ID = ex.ID
			result.Kept++
		default:
			in.ID = uuid.New().String()
			result.Replaced = append(result.Replaced, ex.ID)
		}
		merged = append(merged, in)
	}

	for _, ex := range existing {
		if _, touched := processed[ex.Key()]; !touched {
			merged = append(merged, ex)
		}
	}

	result.Merged = merged
	return result
}
