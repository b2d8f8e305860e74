package store

import (
	"errors"
	"testing"

	"github.com/dshills/deckforge/internal/document"
	"github.com/dshills/deckforge/internal/material"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	s := New()
	d := s.Document()
	if len(d.Cards) != 1 {
		t.Fatalf("fresh store has %d cards", len(d.Cards))
	}
	return s, d.Cards[0].ID
}

func TestBuildAndUndoRedo(t *testing.T) {
	s, cardID := newTestStore(t)

	layoutID, ok := s.AddLayout(cardID, document.VariantTwoColumn, 4, -1)
	if !ok {
		t.Fatal("add layout failed")
	}
	textID, ok := s.AddBlock(layoutID, &document.TextContent{Text: "body"}, -1)
	if !ok {
		t.Fatal("add text failed")
	}
	if _, ok := s.AddBlock(layoutID, &document.HeadingContent{Text: "h", Level: 2}, -1); !ok {
		t.Fatal("add heading failed")
	}

	if err := s.Undo(); err != nil {
		t.Fatal(err)
	}
	d := s.Document()
	layout := d.Cards[0].Children[0].(*document.Layout)
	if len(layout.Children) != 1 || layout.Children[0].NodeID() != textID {
		t.Error("undo should remove only the heading")
	}

	if err := s.Redo(); err != nil {
		t.Fatal(err)
	}
	d = s.Document()
	layout = d.Cards[0].Children[0].(*document.Layout)
	if len(layout.Children) != 2 {
		t.Error("redo should restore the heading")
	}
	if !s.CanUndo() {
		t.Error("undo should remain available")
	}
}

func TestAddCardFocusesNewCard(t *testing.T) {
	s, _ := newTestStore(t)
	id := s.AddCard("Second")
	card, ok := s.ActiveCard()
	if !ok || card.ID != id {
		t.Errorf("active card = %v, want %s", card, id)
	}
}

func TestDeleteCardClearsSelection(t *testing.T) {
	s, _ := newTestStore(t)
	second := s.AddCard("Second")
	s.SelectNode(second)

	if !s.DeleteCard(second) {
		t.Fatal("delete failed")
	}
	if _, ok := s.SelectedNode(); ok {
		t.Error("selection should be cleared when its node is deleted")
	}
}

func TestSelectionSurvivesUnrelatedChanges(t *testing.T) {
	s, cardID := newTestStore(t)
	blockID, _ := s.AddBlock(cardID, &document.TextContent{Text: "x"}, -1)
	s.SelectNode(blockID)

	s.SetDocumentTitle("Renamed")
	n, ok := s.SelectedNode()
	if !ok || n.NodeID() != blockID {
		t.Error("selection should survive unrelated mutations")
	}
}

func TestSelectionDoesNotEnterHistory(t *testing.T) {
	s, cardID := newTestStore(t)
	blockID, _ := s.AddBlock(cardID, &document.TextContent{Text: "x"}, -1)

	if !s.CanUndo() {
		t.Fatal("expected undo after AddBlock")
	}
	s.SelectNode(blockID)
	s.ClearSelection()
	s.SelectNode(cardID)

	if err := s.Undo(); err != nil {
		t.Fatal(err)
	}
	if s.CanUndo() {
		t.Error("selection changes must not create history entries")
	}
}

func TestSelectNodeUnknownID(t *testing.T) {
	s, cardID := newTestStore(t)
	s.SelectNode(cardID)
	if s.SelectNode("missing") {
		t.Error("unknown id should not select")
	}
	if _, ok := s.SelectedNode(); ok {
		t.Error("failed select should clear the selection")
	}
}

func TestUndoRevalidatesSelection(t *testing.T) {
	s, cardID := newTestStore(t)
	blockID, _ := s.AddBlock(cardID, &document.TextContent{Text: "x"}, -1)
	s.SelectNode(blockID)

	if err := s.Undo(); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.SelectedNode(); ok {
		t.Error("undo removed the node; selection should clear")
	}
}

func TestLoadClearsSelection(t *testing.T) {
	s, cardID := newTestStore(t)
	s.SelectNode(cardID)

	if err := s.Load(document.New("Fresh")); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.SelectedNode(); ok {
		t.Error("load should clear the selection")
	}
	if s.CanUndo() {
		t.Error("load should reset history")
	}
}

func TestDropMaterial(t *testing.T) {
	lib := material.NewLibrary()
	if err := lib.Register(&document.Material{
		ID:             "quiz-basic",
		WidgetType:     "quiz",
		DefaultContent: &document.QuizContent{Question: "?", Options: []string{"a", "b"}, Answer: 0},
		Category:       "interactive",
	}); err != nil {
		t.Fatal(err)
	}

	s := New(WithMaterials(lib))
	cardID := s.Document().Cards[0].ID

	id, err := s.DropMaterial("quiz-basic", cardID, -1, map[string]any{"question": "Which one?"})
	if err != nil {
		t.Fatal(err)
	}
	if id == "" {
		t.Fatal("drop reported no block id")
	}

	d := s.Document()
	block := d.Cards[0].Children[0].(*document.Block)
	q := block.Content.(*document.QuizContent)
	if q.Question != "Which one?" {
		t.Errorf("override not applied: %q", q.Question)
	}
	if q.Options[0] != "a" {
		t.Error("template defaults lost")
	}

	// A second drop gets its own id and its own content value.
	id2, err := s.DropMaterial("quiz-basic", cardID, -1, nil)
	if err != nil {
		t.Fatal(err)
	}
	if id2 == id {
		t.Error("drops must mint fresh block ids")
	}
}

func TestDropMaterialUnknownID(t *testing.T) {
	s, cardID := newTestStore(t)
	if _, err := s.DropMaterial("missing", cardID, -1, nil); !errors.Is(err, material.ErrMaterialNotFound) {
		t.Errorf("err = %v", err)
	}
}

func TestDropMaterialBadParent(t *testing.T) {
	lib := material.NewLibrary()
	lib.Register(&document.Material{ID: "m", WidgetType: "text", DefaultContent: &document.TextContent{Text: "t"}})
	s := New(WithMaterials(lib))

	id, err := s.DropMaterial("m", "missing-parent", -1, nil)
	if err != nil {
		t.Fatalf("stale parent should degrade to a no-op, got %v", err)
	}
	if id != "" {
		t.Error("no block should be created for a stale parent")
	}
}

func TestMoveChildAndCardCommands(t *testing.T) {
	s, cardID := newTestStore(t)
	a, _ := s.AddBlock(cardID, &document.TextContent{Text: "a"}, -1)
	b, _ := s.AddBlock(cardID, &document.TextContent{Text: "b"}, -1)

	if !s.MoveChild(cardID, 0, 1) {
		t.Fatal("move child failed")
	}
	d := s.Document()
	if d.Cards[0].Children[0].NodeID() != b || d.Cards[0].Children[1].NodeID() != a {
		t.Error("children out of order")
	}

	s.AddCard("Second")
	if !s.MoveCard(1, 0) {
		t.Fatal("move card failed")
	}
	if !s.SetCardTitle(cardID, "Renamed") {
		t.Fatal("rename failed")
	}
	if s.CardCount() != 2 {
		t.Errorf("card count = %d", s.CardCount())
	}
}

func TestUpdateBlockContentCommand(t *testing.T) {
	s, cardID := newTestStore(t)
	id, _ := s.AddBlock(cardID, &document.TextContent{Text: "old"}, -1)

	if !s.UpdateBlockContent(id, &document.FlashcardContent{Front: "f", Back: "b"}) {
		t.Fatal("update failed")
	}
	d := s.Document()
	if _, ok := d.Cards[0].Children[0].(*document.Block).Content.(*document.FlashcardContent); !ok {
		t.Error("content type not replaced")
	}
}
