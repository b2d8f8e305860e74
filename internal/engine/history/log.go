package history

import (
	"errors"
	"sync"

	"github.com/dshills/deckforge/internal/document"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultMaxEntries bounds the snapshot log when no capacity is given.
const DefaultMaxEntries = 100

// Log is a bounded linear history of document snapshots with a cursor.
type Log struct {
	mu sync.Mutex

	snapshots []*document.Document
	cursor    int

	maxEntries int
}

// NewLog creates a history log holding at most maxEntries snapshots.
func NewLog(maxEntries int) *Log {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Log{maxEntries: maxEntries}
}

// Reset discards all history and seeds the log with a single snapshot.
func (l *Log) Reset(doc *document.Document) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.snapshots = []*document.Document{doc.Clone()}
	l.cursor = 0
}

// Commit records next as the new current snapshot. Commits identical to
// the current snapshot are suppressed so no-change operations do not
// pollute history. Any redo branch beyond the cursor is discarded, and the
// oldest entries are evicted past capacity. Reports whether the commit was
// recorded.
func (l *Log) Commit(next *document.Document) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.snapshots) == 0 {
		l.snapshots = []*document.Document{next.Clone()}
		l.cursor = 0
		return true
	}
	if l.snapshots[l.cursor].Equal(next) {
		return false
	}

	l.snapshots = append(l.snapshots[:l.cursor+1], next.Clone())
	l.cursor++

	if len(l.snapshots) > l.maxEntries {
		excess := len(l.snapshots) - l.maxEntries
		l.snapshots = l.snapshots[excess:]
		l.cursor -= excess
	}
	return true
}

// Undo moves the cursor back one snapshot and returns a copy of it.
func (l *Log) Undo() (*document.Document, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cursor <= 0 {
		return nil, ErrNothingToUndo
	}
	l.cursor--
	return l.snapshots[l.cursor].Clone(), nil
}

// Redo moves the cursor forward one snapshot and returns a copy of it.
func (l *Log) Redo() (*document.Document, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cursor >= len(l.snapshots)-1 {
		return nil, ErrNothingToRedo
	}
	l.cursor++
	return l.snapshots[l.cursor].Clone(), nil
}

// CanUndo reports whether an earlier snapshot exists.
func (l *Log) CanUndo() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cursor > 0
}

// CanRedo reports whether a later snapshot exists.
func (l *Log) CanRedo() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cursor < len(l.snapshots)-1
}

// Depth returns the number of snapshots currently held.
func (l *Log) Depth() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.snapshots)
}

// UndoCount returns the number of undo steps available.
func (l *Log) UndoCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cursor
}

// RedoCount returns the number of redo steps available.
func (l *Log) RedoCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.snapshots) - 1 - l.cursor
}

// Clear removes all snapshots.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.snapshots = nil
	l.cursor = 0
}

// MaxEntries returns the log capacity.
func (l *Log) MaxEntries() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.maxEntries
}
