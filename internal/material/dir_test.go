package material

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const catalogJSON = `[
  {"id": "text-note", "widgetType": "text", "defaultContent": {"type": "text", "text": "Note"}},
  {"id": "quiz-basic", "widgetType": "quiz", "category": "interactive",
   "defaultContent": {"type": "quiz", "question": "?", "options": ["a", "b"], "answer": 0}}
]`

func writeCatalog(t *testing.T, dir, name, data string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestOpenDirLoadsCatalog(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, dir, "basic.json", catalogJSON)
	writeCatalog(t, dir, "ignored.txt", "not a catalog")

	lib, err := OpenDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer lib.Close()

	if lib.Len() != 2 {
		t.Fatalf("loaded %d materials, want 2", lib.Len())
	}
	m, ok := lib.Get("quiz-basic")
	if !ok {
		t.Fatal("quiz-basic missing")
	}
	if m.Category != "interactive" {
		t.Errorf("category = %q", m.Category)
	}
}

func TestOpenDirRejectsBadCatalog(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, dir, "bad.json", `{"not": "an array"}`)
	if _, err := OpenDir(dir); err == nil {
		t.Error("expected parse error")
	}

	dir2 := t.TempDir()
	writeCatalog(t, dir2, "noid.json", `[{"widgetType": "text"}]`)
	if _, err := OpenDir(dir2); err == nil {
		t.Error("expected missing-id error")
	}
}

func TestReloadSwapsWholesale(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, dir, "a.json", catalogJSON)

	lib, err := OpenDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer lib.Close()

	// Replace the catalog file with a single entry and reload: removed
	// materials must disappear, not linger.
	writeCatalog(t, dir, "a.json", `[{"id": "solo", "widgetType": "text", "defaultContent": {"type": "text", "text": "s"}}]`)
	if err := lib.reload(); err != nil {
		t.Fatal(err)
	}
	if lib.Len() != 1 {
		t.Fatalf("after reload: %d materials, want 1", lib.Len())
	}
	if _, ok := lib.Get("quiz-basic"); ok {
		t.Error("removed material should be gone")
	}
}

func TestWatchPicksUpNewFile(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, dir, "a.json", catalogJSON)

	lib, err := OpenDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer lib.Close()

	writeCatalog(t, dir, "b.json", `[{"id": "extra", "widgetType": "text", "defaultContent": {"type": "text", "text": "x"}}]`)

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if _, ok := lib.Get("extra"); ok {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Error("watcher did not pick up the new catalog file")
}

func TestCloseIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	lib, err := OpenDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := lib.Close(); err != nil {
		t.Errorf("close: %v", err)
	}
	if err := lib.Close(); err != nil {
		t.Errorf("second close: %v", err)
	}
	// The catalog stays readable after close.
	_ = lib.Len()
}
