package scheduling

import "dockplan/models"

// PurgeAssignments removes the given appointment IDs from every slot sequence
// in the assignment map, keeping the surviving IDs in their original order.
// It reports whether anything was actually removed. A nil map, an empty ID
// list, or IDs that appear nowhere simply leave the map untouched.
func PurgeAssignments(assignments models.AssignmentMap, ids ...string) bool {
	if len(assignments) == 0 || len(ids) == 0 {
		return false
	}

	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	modified := false
	for _, slots := range assignments {
		for slotKey, idList := range slots {
			kept := idList[:0]
			for _, id := range idList {
				if _, gone := drop[id]; !gone {
					kept = append(kept, id)
				}
			}
			if len(kept) != len(idList) {
				slots[slotKey] = kept
				modified = true
			}
		}
	}
	return modified
}
