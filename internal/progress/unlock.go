package progress

import "github.com/abhisek/adaptly/internal/catalog"

// DeriveUnlocks returns the unlock state of every catalog level. The first
// level is always unlocked; any other level is unlocked iff its prerequisite
// has a completed record.
func DeriveUnlocks(cat *catalog.Catalog, records map[int]LevelProgress) map[int]bool {
	out := make(map[int]bool, cat.Len())
	for _, l := range cat.All() {
		prev, ok := cat.Prerequisite(l.ID)
		if !ok {
			out[l.ID] = true
			continue
		}
		out[l.ID] = records[prev].Completed
	}
	return out
}
