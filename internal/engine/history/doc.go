// Package history provides linear undo/redo over document snapshots.
//
// The log holds complete immutable snapshots with a cursor marking the
// current one. Committing a new snapshot truncates any redo branch (linear
// history, not a tree of edits), suppresses commits that change nothing,
// and evicts the oldest entries once the capacity is reached. Undo and
// redo move the cursor and return the snapshot it lands on.
package history
