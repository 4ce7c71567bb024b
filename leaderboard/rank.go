package leaderboard

import (
	"cmp"
	"slices"
)

// Rank returns the 1-based position of id in list ordered by MaxPoints
// descending, or 0 when id is absent. Ties keep server order.
func Rank(list []Stats, id int64) int {
	sorted := Sorted(list)
	for i, s := range sorted {
		if s.ID == id {
			return i + 1
		}
	}
	return 0
}

// Sorted returns a copy of list ordered by MaxPoints descending.
func Sorted(list []Stats) []Stats {
	out := slices.Clone(list)
	slices.SortStableFunc(out, func(a, b Stats) int {
		return cmp.Compare(b.MaxPoints, a.MaxPoints)
	})
	return out
}
