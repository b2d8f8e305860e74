// Package tree implements pure query and mutation functions over a card
// snapshot (the ordered sequence of a document's cards).
//
// Every mutation returns a new snapshot, rebuilding only the path from the
// root to the touched node and sharing untouched subtrees with the input.
// Lookups that miss return a false ok value; mutations with a stale id or
// an out-of-range index return the input unchanged. Nothing here panics or
// returns an error: the caller may race selection state against tree state
// and must be able to call speculatively.
package tree
