package script

import (
	"strings"
	"testing"

	"github.com/dshills/deckforge/internal/document"
	"github.com/dshills/deckforge/internal/material"
	"github.com/dshills/deckforge/internal/store"
)

func TestRunStringBuildsDocument(t *testing.T) {
	s := store.New()
	r := NewRunner(s)

	err := r.RunString(`
deck.set_title("Scripted Deck")
local cards = deck.card_ids()
local layout = deck.add_layout(cards[1], "two-column", 8)
deck.add_block(layout, {type = "heading", text = "Welcome", level = 1})
deck.add_block(layout, {type = "text", text = "Body copy"})
local extra = deck.add_card("Extras")
deck.add_block(extra, {type = "quiz", question = "Pick", options = {"a", "b"}, answer = 1})
`)
	if err != nil {
		t.Fatal(err)
	}

	d := s.Document()
	if d.Title != "Scripted Deck" {
		t.Errorf("title = %q", d.Title)
	}
	if len(d.Cards) != 2 {
		t.Fatalf("cards = %d", len(d.Cards))
	}

	layout, ok := d.Cards[0].Children[0].(*document.Layout)
	if !ok {
		t.Fatal("first card should hold a layout")
	}
	if layout.Variant != document.VariantTwoColumn || layout.Gap != 8 {
		t.Errorf("layout = %+v", layout)
	}
	if len(layout.Children) != 2 {
		t.Fatalf("layout children = %d", len(layout.Children))
	}
	h := layout.Children[0].(*document.Block).Content.(*document.HeadingContent)
	if h.Text != "Welcome" || h.Level != 1 {
		t.Errorf("heading = %+v", h)
	}

	q := d.Cards[1].Children[0].(*document.Block).Content.(*document.QuizContent)
	if q.Question != "Pick" || len(q.Options) != 2 || q.Answer != 1 {
		t.Errorf("quiz = %+v", q)
	}
}

func TestRunStringUndoRedo(t *testing.T) {
	s := store.New()
	r := NewRunner(s)

	err := r.RunString(`
local cards = deck.card_ids()
deck.add_block(cards[1], {type = "text", text = "one"})
deck.add_block(cards[1], {type = "text", text = "two"})
assert(deck.undo())
assert(deck.redo())
`)
	if err != nil {
		t.Fatal(err)
	}
	d := s.Document()
	if len(d.Cards[0].Children) != 2 {
		t.Errorf("children = %d, want 2", len(d.Cards[0].Children))
	}
}

func TestRunStringColumnTargeting(t *testing.T) {
	s := store.New()
	r := NewRunner(s)

	// Lua columns are 1-based; column 2 here is the second column.
	err := r.RunString(`
local cards = deck.card_ids()
local outer = deck.add_layout(cards[1], "two-column", 0)
deck.add_layout(outer, "single-column", 0)
local right = deck.add_layout(outer, "single-column", 0)
deck.add_block(outer, {type = "text", text = "in right"}, 2)
`)
	if err != nil {
		t.Fatal(err)
	}

	d := s.Document()
	outer := d.Cards[0].Children[0].(*document.Layout)
	right := outer.Children[1].(*document.Layout)
	if len(right.Children) != 1 {
		t.Fatalf("right column children = %d, want 1", len(right.Children))
	}
	b := right.Children[0].(*document.Block).Content.(*document.TextContent)
	if b.Text != "in right" {
		t.Errorf("content = %q", b.Text)
	}
}

func TestRunStringDropMaterial(t *testing.T) {
	lib := material.NewLibrary()
	if err := lib.Register(&document.Material{
		ID:             "flash",
		WidgetType:     "flashcard",
		DefaultContent: &document.FlashcardContent{Front: "F", Back: "B"},
	}); err != nil {
		t.Fatal(err)
	}
	s := store.New(store.WithMaterials(lib))
	r := NewRunner(s)

	err := r.RunString(`
local cards = deck.card_ids()
local id = deck.drop_material("flash", cards[1], nil, {front = "Override"})
assert(id ~= nil, "drop should return a block id")
assert(deck.drop_material("missing", cards[1]) == nil, "unknown material drops nothing")
`)
	if err != nil {
		t.Fatal(err)
	}

	d := s.Document()
	fc := d.Cards[0].Children[0].(*document.Block).Content.(*document.FlashcardContent)
	if fc.Front != "Override" || fc.Back != "B" {
		t.Errorf("flashcard = %+v", fc)
	}
}

func TestRunStringSandbox(t *testing.T) {
	r := NewRunner(store.New())
	err := r.RunString(`
assert(io == nil, "io must not be available")
assert(os == nil, "os must not be available")
assert(debug == nil, "debug must not be available")
assert(string.upper("ok") == "OK")
assert(math.floor(1.5) == 1)
`)
	if err != nil {
		t.Fatal(err)
	}
}

func TestRunStringCompileError(t *testing.T) {
	r := NewRunner(store.New())
	err := r.RunString(`this is not lua`)
	if err == nil {
		t.Fatal("expected compile error")
	}
	if !strings.Contains(err.Error(), "compiling") {
		t.Errorf("err = %v", err)
	}
}

func TestRunStringRuntimeError(t *testing.T) {
	r := NewRunner(store.New())
	err := r.RunString(`error("boom")`)
	if err == nil {
		t.Fatal("expected runtime error")
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("err = %v", err)
	}
}

func TestRunFileMissing(t *testing.T) {
	r := NewRunner(store.New())
	if err := r.RunFile("/nonexistent/script.lua"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestContentFromTableRejectsBadTable(t *testing.T) {
	r := NewRunner(store.New())
	// An array table is not a content object.
	err := r.RunString(`
local cards = deck.card_ids()
deck.add_block(cards[1], {1, 2, 3})
`)
	if err == nil {
		t.Error("array content table should be rejected")
	}
}
