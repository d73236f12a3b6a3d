package shift

import (
	"cmp"
	"slices"
)

// SortChronologically は日付、開始時刻、ID の順に並べ替えます。
func SortChronologically(shifts []*Shift) {
	slices.SortStableFunc(shifts, func(a, b *Shift) int {
		if c := cmp.Compare(a.Date, b.Date); c != 0 {
			return c
		}
		if c := cmp.Compare(a.StartTime, b.StartTime); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
