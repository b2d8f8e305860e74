package store

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/dshills/deckforge/internal/document"
	"github.com/dshills/deckforge/internal/engine"
	"github.com/dshills/deckforge/internal/material"
)

// Store coordinates the engine, the material catalog, and session state.
type Store struct {
	mu sync.RWMutex

	eng *engine.Engine
	lib *material.Library
	log zerolog.Logger

	selectedID string
}

// Option configures a Store during creation.
type Option func(*Store)

// WithLogger sets the structured logger for command logging.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Store) { s.log = log }
}

// WithMaterials attaches a material catalog for drop instantiation.
func WithMaterials(lib *material.Library) Option {
	return func(s *Store) { s.lib = lib }
}

// WithEngine replaces the default engine.
func WithEngine(eng *engine.Engine) Option {
	return func(s *Store) {
		if eng != nil {
			s.eng = eng
		}
	}
}

// New creates a store over a fresh single-card document.
func New(opts ...Option) *Store {
	s := &Store{
		eng: engine.New(),
		lib: material.NewLibrary(),
		log: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ============================================================================
// Document lifecycle
// ============================================================================

// Load replaces the current document wholesale, resets history, and
// clears the selection. A document failing validation leaves all state
// untouched.
func (s *Store) Load(doc *document.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.eng.Load(doc); err != nil {
		s.log.Error().Err(err).Str("op", "load").Msg("document rejected")
		return err
	}
	s.selectedID = ""
	s.log.Info().Str("op", "load").Str("doc", doc.ID).Int("cards", len(doc.Cards)).Msg("document loaded")
	return nil
}

// Document returns a deep copy of the current document.
func (s *Store) Document() *document.Document {
	return s.eng.Document()
}

// ============================================================================
// Card commands
// ============================================================================

// AddCard appends a new card, focuses it, and returns its id.
func (s *Store) AddCard(title string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.eng.AddCard(title)
	s.eng.SetActiveCard(id)
	s.log.Debug().Str("op", "addCard").Str("card", id).Msg("card added")
	return id
}

// DeleteCard removes a card and its subtree. Deleting the last remaining
// card changes nothing.
func (s *Store) DeleteCard(id string) bool {
	return s.delete("deleteCard", id)
}

// MoveCard reorders the card sequence.
func (s *Store) MoveCard(from, to int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := s.eng.MoveCard(from, to)
	s.logOutcome("moveCard", changed, func(ev *zerolog.Event) {
		ev.Int("from", from).Int("to", to)
	})
	return changed
}

// SetCardTitle renames a card.
func (s *Store) SetCardTitle(id, title string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := s.eng.SetCardTitle(id, title)
	s.logOutcome("setCardTitle", changed, func(ev *zerolog.Event) {
		ev.Str("card", id)
	})
	return changed
}

// SetDocumentTitle renames the document.
func (s *Store) SetDocumentTitle(title string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := s.eng.SetDocumentTitle(title)
	s.logOutcome("setDocumentTitle", changed, nil)
	return changed
}

// ============================================================================
// Node commands
// ============================================================================

// AddLayout inserts a new layout under a card or layout and returns its
// id. A column index targets a column of a layout parent; pass a negative
// value to append.
func (s *Store) AddLayout(parentID string, variant document.Variant, gap float64, columnIndex int) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	layout := document.NewLayout(variant)
	layout.Gap = gap
	ok := s.eng.InsertNode(parentID, layout, columnIndex)
	s.logOutcome("addLayout", ok, func(ev *zerolog.Event) {
		ev.Str("parent", parentID).Str("variant", string(variant)).Int("column", columnIndex)
	})
	if !ok {
		return "", false
	}
	return layout.ID, true
}

// AddBlock inserts a new block with the given content and returns its id.
func (s *Store) AddBlock(parentID string, content document.Content, columnIndex int) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	block := document.NewBlock(content)
	ok := s.eng.InsertNode(parentID, block, columnIndex)
	s.logOutcome("addBlock", ok, func(ev *zerolog.Event) {
		ev.Str("parent", parentID).Int("column", columnIndex)
	})
	if !ok {
		return "", false
	}
	return block.ID, true
}

// UpdateBlockContent replaces a block's content.
func (s *Store) UpdateBlockContent(blockID string, content document.Content) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := s.eng.UpdateBlockContent(blockID, content)
	s.logOutcome("updateBlockContent", changed, func(ev *zerolog.Event) {
		ev.Str("block", blockID)
	})
	return changed
}

// DeleteNode removes any node and its subtree.
func (s *Store) DeleteNode(id string) bool {
	return s.delete("deleteNode", id)
}

// MoveChild reorders a child within a card or layout.
func (s *Store) MoveChild(containerID string, from, to int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := s.eng.MoveChild(containerID, from, to)
	s.logOutcome("moveChild", changed, func(ev *zerolog.Event) {
		ev.Str("container", containerID).Int("from", from).Int("to", to)
	})
	return changed
}

// DropMaterial instantiates a block from the material catalog and inserts
// it at the resolved drop position. Overrides are content-field paths
// merged into the template payload.
func (s *Store) DropMaterial(materialID, parentID string, columnIndex int, overrides map[string]any) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	block, err := s.lib.Instantiate(materialID, overrides)
	if err != nil {
		s.log.Warn().Err(err).Str("op", "dropMaterial").Str("material", materialID).Msg("drop rejected")
		return "", err
	}
	ok := s.eng.InsertNode(parentID, block, columnIndex)
	s.logOutcome("dropMaterial", ok, func(ev *zerolog.Event) {
		ev.Str("material", materialID).Str("parent", parentID).Int("column", columnIndex)
	})
	if !ok {
		return "", nil
	}
	return block.ID, nil
}

// ============================================================================
// Undo/Redo
// ============================================================================

// Undo restores the previous snapshot and re-validates the selection.
func (s *Store) Undo() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.eng.Undo(); err != nil {
		return err
	}
	s.revalidateSelection()
	s.log.Debug().Str("op", "undo").Msg("snapshot restored")
	return nil
}

// Redo restores the next snapshot and re-validates the selection.
func (s *Store) Redo() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.eng.Redo(); err != nil {
		return err
	}
	s.revalidateSelection()
	s.log.Debug().Str("op", "redo").Msg("snapshot restored")
	return nil
}

// CanUndo reports whether undo is available.
func (s *Store) CanUndo() bool { return s.eng.CanUndo() }

// CanRedo reports whether redo is available.
func (s *Store) CanRedo() bool { return s.eng.CanRedo() }

// ============================================================================
// Selection and navigation (read-only state, never enters history)
// ============================================================================

// SelectNode marks a node as selected. Unknown ids clear the selection.
func (s *Store) SelectNode(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.eng.FindNode(id); !ok {
		s.selectedID = ""
		return false
	}
	s.selectedID = id
	return true
}

// ClearSelection drops the current selection.
func (s *Store) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedID = ""
}

// SelectedNode returns a copy of the selected node, if any.
func (s *Store) SelectedNode() (document.Node, bool) {
	s.mu.RLock()
	id := s.selectedID
	s.mu.RUnlock()

	if id == "" {
		return nil, false
	}
	return s.eng.FindNode(id)
}

// SetActiveCard focuses a card for navigation.
func (s *Store) SetActiveCard(id string) bool {
	return s.eng.SetActiveCard(id)
}

// ActiveCard returns a copy of the focused card, if any.
func (s *Store) ActiveCard() (*document.Card, bool) {
	id := s.eng.ActiveCardID()
	if id == "" {
		return nil, false
	}
	n, ok := s.eng.FindNode(id)
	if !ok {
		return nil, false
	}
	card, ok := n.(*document.Card)
	return card, ok
}

// CardCount returns the number of cards.
func (s *Store) CardCount() int { return s.eng.CardCount() }

// Materials returns the attached material catalog.
func (s *Store) Materials() *material.Library { return s.lib }

// ============================================================================
// Internal
// ============================================================================

func (s *Store) delete(op, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := s.eng.DeleteNode(id)
	if changed {
		s.revalidateSelection()
	}
	s.logOutcome(op, changed, func(ev *zerolog.Event) {
		ev.Str("node", id)
	})
	return changed
}

// revalidateSelection clears a selection whose node left the tree.
func (s *Store) revalidateSelection() {
	if s.selectedID == "" {
		return
	}
	if _, ok := s.eng.FindNode(s.selectedID); !ok {
		s.selectedID = ""
	}
}

// logOutcome records a command result. No-ops log at debug so stale-id
// races from the UI stay visible without being noisy.
func (s *Store) logOutcome(op string, changed bool, fields func(*zerolog.Event)) {
	ev := s.log.Debug()
	if fields != nil {
		fields(ev)
	}
	if changed {
		ev.Str("op", op).Msg("applied")
	} else {
		ev.Str("op", op).Msg("no-op")
	}
}
