// Package column computes insertion positions for content dropped into a
// specific column of a multi-column layout.
//
// Two container topologies exist and must not be conflated. In the flat
// topology a layout holds blocks directly and each child occupies the
// notional column childIndex % columnCount; the resolver turns a target
// column into an absolute insertion index. In the nested topology a layout
// holds one child layout per column; insertion appends to the child layout
// at the column position, and no index arithmetic applies.
//
// Resolution is pure and deterministic: identical inputs always produce
// the identical index.
package column
