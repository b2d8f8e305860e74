package history

import (
	"errors"
	"fmt"
	"testing"

	"github.com/dshills/deckforge/internal/document"
)

func docWithTitle(title string) *document.Document {
	d := document.New(title)
	// Deterministic ids and timestamps so Equal compares structure only.
	d.ID = "doc"
	d.Cards[0].ID = "card"
	d.ActiveCardID = "card"
	d.CreatedAt = d.CreatedAt.Truncate(0)
	d.UpdatedAt = d.CreatedAt
	return d
}

func TestCommitUndoRedoRoundTrip(t *testing.T) {
	l := NewLog(10)
	l.Reset(docWithTitle("v0"))

	versions := []*document.Document{docWithTitle("v1"), docWithTitle("v2"), docWithTitle("v3")}
	for _, v := range versions {
		if !l.Commit(v) {
			t.Fatalf("commit %s suppressed", v.Title)
		}
	}

	if got := l.UndoCount(); got != 3 {
		t.Fatalf("undo count = %d, want 3", got)
	}

	// Walk all the way back, then all the way forward; every snapshot
	// must come out structurally identical to what went in.
	for i := 2; i >= 0; i-- {
		want := "v0"
		if i > 0 {
			want = fmt.Sprintf("v%d", i)
		}
		d, err := l.Undo()
		if err != nil {
			t.Fatalf("undo: %v", err)
		}
		if d.Title != want {
			t.Errorf("undo landed on %q, want %q", d.Title, want)
		}
	}
	if _, err := l.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("undo past start = %v", err)
	}

	for i := 1; i <= 3; i++ {
		d, err := l.Redo()
		if err != nil {
			t.Fatalf("redo: %v", err)
		}
		if want := fmt.Sprintf("v%d", i); d.Title != want {
			t.Errorf("redo landed on %q, want %q", d.Title, want)
		}
		if !d.Equal(versions[i-1]) {
			t.Errorf("redo snapshot %d differs from the committed document", i)
		}
	}
	if _, err := l.Redo(); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("redo past end = %v", err)
	}
}

func TestCommitSuppressesIdentical(t *testing.T) {
	l := NewLog(10)
	d := docWithTitle("same")
	l.Reset(d)

	if l.Commit(d.Clone()) {
		t.Error("identical commit should be suppressed")
	}
	if l.CanUndo() {
		t.Error("suppressed commit should leave no undo step")
	}
}

func TestCommitTruncatesRedoBranch(t *testing.T) {
	l := NewLog(10)
	l.Reset(docWithTitle("v0"))
	l.Commit(docWithTitle("v1"))
	l.Commit(docWithTitle("v2"))

	if _, err := l.Undo(); err != nil {
		t.Fatal(err)
	}
	if !l.CanRedo() {
		t.Fatal("expected a redo branch")
	}

	l.Commit(docWithTitle("v1b"))
	if l.CanRedo() {
		t.Error("commit should discard the redo branch")
	}
	d, err := l.Undo()
	if err != nil {
		t.Fatal(err)
	}
	if d.Title != "v1" {
		t.Errorf("undo after branch = %q, want v1", d.Title)
	}
}

func TestCommitEvictsOldest(t *testing.T) {
	l := NewLog(3)
	l.Reset(docWithTitle("v0"))
	for i := 1; i <= 5; i++ {
		l.Commit(docWithTitle(fmt.Sprintf("v%d", i)))
	}

	if got := l.Depth(); got != 3 {
		t.Fatalf("depth = %d, want 3", got)
	}
	// Only the two most recent predecessors survive.
	if got := l.UndoCount(); got != 2 {
		t.Errorf("undo count = %d, want 2", got)
	}
	d, err := l.Undo()
	if err != nil {
		t.Fatal(err)
	}
	if d.Title != "v4" {
		t.Errorf("first undo = %q, want v4", d.Title)
	}
	d, err = l.Undo()
	if err != nil {
		t.Fatal(err)
	}
	if d.Title != "v3" {
		t.Errorf("second undo = %q, want v3", d.Title)
	}
	if _, err := l.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("evicted snapshots should be unreachable: %v", err)
	}
}

func TestResetDiscardsHistory(t *testing.T) {
	l := NewLog(10)
	l.Reset(docWithTitle("a"))
	l.Commit(docWithTitle("b"))

	l.Reset(docWithTitle("fresh"))
	if l.CanUndo() || l.CanRedo() {
		t.Error("reset should discard undo and redo")
	}
	if got := l.Depth(); got != 1 {
		t.Errorf("depth = %d, want 1", got)
	}
}

func TestSnapshotsAreIsolated(t *testing.T) {
	l := NewLog(10)
	src := docWithTitle("v0")
	l.Reset(src)
	src.Title = "mutated"

	l.Commit(docWithTitle("v1"))
	d, err := l.Undo()
	if err != nil {
		t.Fatal(err)
	}
	if d.Title != "v0" {
		t.Errorf("log aliased the caller's document: %q", d.Title)
	}

	// Mutating the returned snapshot must not corrupt the log.
	d.Title = "scribbled"
	r, err := l.Redo()
	if err != nil {
		t.Fatal(err)
	}
	if r.Title != "v1" {
		t.Errorf("redo = %q, want v1", r.Title)
	}
}

func TestNewLogDefaultsCapacity(t *testing.T) {
	l := NewLog(0)
	if got := l.MaxEntries(); got != DefaultMaxEntries {
		t.Errorf("max entries = %d, want %d", got, DefaultMaxEntries)
	}
}

func TestClear(t *testing.T) {
	l := NewLog(10)
	l.Reset(docWithTitle("v0"))
	l.Commit(docWithTitle("v1"))
	l.Clear()
	if l.Depth() != 0 || l.CanUndo() {
		t.Error("clear should empty the log")
	}
}
