package column

import "github.com/dshills/deckforge/internal/document"

// Append requests plain append-at-end placement instead of column
// distribution.
const Append = -1

// Of returns the notional column occupied by the child at index i in a
// flat container with the given variant.
func Of(i int, variant document.Variant) int {
	return i % variant.Columns()
}

// Occupancy counts the children occupying each notional column of a flat
// container.
func Occupancy(variant document.Variant, children []document.Node) []int {
	counts := make([]int, variant.Columns())
	for i := range children {
		counts[i%len(counts)]++
	}
	return counts
}

// Resolve computes the absolute insertion index for a new child targeting
// columnIndex in a flat container.
//
// A negative columnIndex means no distribution: the child appends at the
// end. When the target column is empty the child is placed at the absolute
// position columnIndex, clamped to the container length, so it lands in
// that column under round-robin assignment. Otherwise it is placed
// directly after the last existing child of that column, keeping arrival
// order within the column.
func Resolve(variant document.Variant, children []document.Node, columnIndex int) int {
	if columnIndex < 0 {
		return len(children)
	}
	cols := variant.Columns()
	if columnIndex >= cols {
		columnIndex = cols - 1
	}

	last := -1
	for i := range children {
		if i%cols == columnIndex {
			last = i
		}
	}
	if last < 0 {
		if columnIndex > len(children) {
			return len(children)
		}
		return columnIndex
	}
	return last + 1
}

// PerColumnLayouts reports whether children follow the nested topology:
// a non-empty sequence consisting entirely of layouts, one per column.
func PerColumnLayouts(children []document.Node) bool {
	if len(children) == 0 {
		return false
	}
	for _, ch := range children {
		if !document.IsLayout(ch) {
			return false
		}
	}
	return true
}

// ColumnLayout returns the child layout serving the given column in a
// nested-topology container, or false when that column has no child
// layout.
func ColumnLayout(children []document.Node, columnIndex int) (*document.Layout, bool) {
	if columnIndex < 0 || columnIndex >= len(children) {
		return nil, false
	}
	l, ok := children[columnIndex].(*document.Layout)
	return l, ok
}
