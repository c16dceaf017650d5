package slots

import "sort"

// AllSlots returns the slots defined in ws sorted by name.
// Definition blocks that are not configured yet are skipped. Equal names keep
// the workspace's block order.
func AllSlots(ws Workspace) []Slot {
	var result []Slot
	for _, b := range ws.AllBlocks() {
		if slot, ok := definedSlot(b); ok {
			result = append(result, slot)
		}
	}

	c := newCollator()
	sort.SliceStable(result, func(i, j int) bool {
		return c.CompareString(result[i].Name, result[j].Name) < 0
	})
	return result
}
