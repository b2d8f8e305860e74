// Package engine is the document tree engine: a thread-safe facade over
// the immutable card tree, the column distribution resolver, and the
// snapshot history that provides undo/redo.
//
// Every mutation computes a complete new snapshot through the pure
// functions in the tree subpackage, then commits it to history. Stale ids
// and out-of-range indices degrade to "no state change" rather than
// failing, so the engine is safe to call speculatively from UI event
// handlers. Reads hand out deep copies; the engine's own tree is never
// aliased by callers.
package engine
