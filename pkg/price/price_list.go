package price

import (
	"sort"
	"strings"
)

// PriceList is an ordered list of prices. Entries may be nil.
type PriceList []*Price

// SortAscending sorts the prices by amount, smallest first. Nil entries move
// to the end.
func (l PriceList) SortAscending() {
	sort.SliceStable(l, func(i, j int) bool {
		return lessNilsLast(l[i], l[j], func(a, b *Price) bool { return a.Compare(b) < 0 })
	})
}

// SortDescending sorts the prices by amount, largest first. Nil entries
// still move to the end.
func (l PriceList) SortDescending() {
	sort.SliceStable(l, func(i, j int) bool {
		return lessNilsLast(l[i], l[j], func(a, b *Price) bool { return a.Compare(b) > 0 })
	})
}

func lessNilsLast(a, b *Price, less func(a, b *Price) bool) bool {
	if a == nil || b == nil {
		return a != nil && b == nil
	}
	return less(a, b)
}

// String renders the list as "[1, null, 3]".
func (l PriceList) String() string {
	parts := make([]string, len(l))
	for i, p := range l {
		parts[i] = p.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
