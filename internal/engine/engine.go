package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/dshills/deckforge/internal/document"
	"github.com/dshills/deckforge/internal/engine/column"
	"github.com/dshills/deckforge/internal/engine/history"
	"github.com/dshills/deckforge/internal/engine/tree"
)

// Engine combines the current document tree, the column distribution
// resolver, and snapshot history behind a single mutex.
//
// All operations are thread-safe. Mutations report whether they changed
// state; misuse (stale ids, bad indices, deleting the last card) reports
// false instead of failing.
type Engine struct {
	mu sync.RWMutex

	doc     *document.Document
	history *history.Log

	// Configuration
	maxUndoEntries int

	// Initialization
	initDoc   *document.Document
	initTitle string
}

// New creates an Engine with the given options. Without options it holds
// a fresh single-card document.
func New(opts ...Option) *Engine {
	e := &Engine{
		maxUndoEntries: DefaultMaxUndoEntries,
		initTitle:      DefaultTitle,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.initDoc != nil {
		e.doc = e.initDoc
		e.initDoc = nil
	} else {
		e.doc = document.New(e.initTitle)
	}

	e.history = history.NewLog(e.maxUndoEntries)
	e.history.Reset(e.doc)
	return e
}

// Load replaces the current document wholesale and resets history to a
// single-entry log. A document that fails validation leaves existing
// state untouched.
func (e *Engine) Load(doc *document.Document) error {
	if doc == nil {
		return ErrNilDocument
	}
	if err := document.Validate(doc); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.doc = doc.Clone()
	e.history.Reset(e.doc)
	return nil
}

// ============================================================================
// Read Operations
// ============================================================================

// Document returns a deep copy of the current document.
func (e *Engine) Document() *document.Document {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.doc.Clone()
}

// Title returns the document title.
func (e *Engine) Title() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.doc.Title
}

// CardCount returns the number of cards.
func (e *Engine) CardCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.doc.Cards)
}

// ActiveCardID returns the id of the card the session is focused on.
func (e *Engine) ActiveCardID() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.doc.ActiveCardID
}

// FindNode returns a deep copy of the node with the given id.
func (e *Engine) FindNode(id string) (document.Node, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	n, ok := tree.FindNode(e.doc.Cards, id)
	if !ok {
		return nil, false
	}
	return n.CloneNode(), true
}

// FindParent returns the immediate container of the node with the given
// id. The returned container is a deep copy.
func (e *Engine) FindParent(id string) (tree.Parent, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	p, ok := tree.FindParent(e.doc.Cards, id)
	if !ok {
		return tree.Parent{}, false
	}
	if p.Container != nil {
		p.Container = p.Container.CloneNode()
	}
	return p, true
}

// ============================================================================
// Mutations
// ============================================================================

// AddCard appends a new card and returns its id.
func (e *Engine) AddCard(title string) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	card := document.NewCard(title)
	cards := append(append([]*document.Card(nil), e.doc.Cards...), card)
	e.applyCards(cards)
	return card.ID
}

// MoveCard reorders the card sequence. Equal or out-of-range indices
// change nothing.
func (e *Engine) MoveCard(from, to int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.applyCards(tree.Move(e.doc.Cards, from, to))
}

// MoveChild reorders a child within the Card or Layout identified by
// containerID.
func (e *Engine) MoveChild(containerID string, from, to int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.applyCards(tree.MoveChild(e.doc.Cards, containerID, from, to))
}

// DeleteNode removes the node and its subtree. Deleting the last card or
// a missing id changes nothing.
func (e *Engine) DeleteNode(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.applyCards(tree.DeleteNode(e.doc.Cards, id))
}

// Update applies the updater to the node with the given id, rebuilding
// the path from the root. The updater receives a deep copy.
func (e *Engine) Update(id string, fn func(document.Node) document.Node) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.applyCards(tree.UpdateNode(e.doc.Cards, id, fn))
}

// SetDocumentTitle renames the document.
func (e *Engine) SetDocumentTitle(title string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	next := *e.doc
	next.Title = title
	return e.apply(&next)
}

// SetCardTitle renames a card.
func (e *Engine) SetCardTitle(cardID, title string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.applyCards(tree.UpdateNode(e.doc.Cards, cardID, func(n document.Node) document.Node {
		c, ok := n.(*document.Card)
		if !ok {
			return nil
		}
		c.Title = title
		return c
	}))
}

// UpdateBlockContent replaces a block's content union.
func (e *Engine) UpdateBlockContent(blockID string, content document.Content) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.applyCards(tree.UpdateNode(e.doc.Cards, blockID, func(n document.Node) document.Node {
		b, ok := n.(*document.Block)
		if !ok {
			return nil
		}
		if content != nil {
			b.Content = content.CloneContent()
		} else {
			b.Content = nil
		}
		return b
	}))
}

// InsertNode places node under the parent identified by parentID.
//
// When the parent is a layout and columnIndex is non-negative, the
// insertion position is resolved per topology: nested per-column layouts
// receive the node appended to the column's child layout, flat containers
// get the round-robin index from the column resolver. A negative
// columnIndex, or a card parent, appends at the end. Duplicate node ids
// change nothing, preserving id uniqueness across the tree.
func (e *Engine) InsertNode(parentID string, node document.Node, columnIndex int) bool {
	if node == nil || document.IsCard(node) {
		return false
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if tree.ContainsID(e.doc.Cards, node.NodeID()) {
		return false
	}
	parent, ok := tree.FindNode(e.doc.Cards, parentID)
	if !ok {
		return false
	}

	var cards []*document.Card
	if l, isLayout := parent.(*document.Layout); isLayout && columnIndex >= 0 {
		if column.PerColumnLayouts(l.Children) {
			target, ok := column.ColumnLayout(l.Children, columnIndex)
			if !ok {
				return false
			}
			cards = tree.InsertChild(e.doc.Cards, target.ID, node, -1)
		} else {
			idx := column.Resolve(l.Variant, l.Children, columnIndex)
			cards = tree.InsertChild(e.doc.Cards, l.ID, node, idx)
		}
	} else {
		cards = tree.InsertChild(e.doc.Cards, parentID, node, -1)
	}
	return e.applyCards(cards)
}

// ============================================================================
// Navigation
// ============================================================================

// SetActiveCard focuses a card. Navigation does not enter history.
func (e *Engine) SetActiveCard(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, c := range e.doc.Cards {
		if c.ID == id {
			e.doc.ActiveCardID = id
			return true
		}
	}
	return false
}

// ============================================================================
// Undo/Redo
// ============================================================================

// Undo restores the previous snapshot.
func (e *Engine) Undo() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap, err := e.history.Undo()
	if err != nil {
		return err
	}
	e.doc = snap
	e.fixActiveCard()
	return nil
}

// Redo restores the next snapshot.
func (e *Engine) Redo() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap, err := e.history.Redo()
	if err != nil {
		return err
	}
	e.doc = snap
	e.fixActiveCard()
	return nil
}

// CanUndo reports whether undo is available.
func (e *Engine) CanUndo() bool { return e.history.CanUndo() }

// CanRedo reports whether redo is available.
func (e *Engine) CanRedo() bool { return e.history.CanRedo() }

// UndoCount returns the number of undo steps available.
func (e *Engine) UndoCount() int { return e.history.UndoCount() }

// RedoCount returns the number of redo steps available.
func (e *Engine) RedoCount() int { return e.history.RedoCount() }

// ============================================================================
// Internal
// ============================================================================

// applyCards commits a snapshot built from a new card sequence.
func (e *Engine) applyCards(cards []*document.Card) bool {
	next := *e.doc
	next.Cards = cards
	return e.apply(&next)
}

// apply commits next if it differs from the current document, stamping
// UpdatedAt only on real changes so no-op mutations leave no trace.
func (e *Engine) apply(next *document.Document) bool {
	probe := *next
	probe.UpdatedAt = e.doc.UpdatedAt
	if e.doc.Equal(&probe) {
		return false
	}

	next.UpdatedAt = time.Now().UTC()
	if active := next.ActiveCardID; active != "" && !hasCard(next.Cards, active) {
		next.ActiveCardID = next.Cards[0].ID
	}
	e.history.Commit(next)
	e.doc = next
	return true
}

// fixActiveCard re-validates the active card after a snapshot restore.
func (e *Engine) fixActiveCard() {
	if e.doc.ActiveCardID != "" && !hasCard(e.doc.Cards, e.doc.ActiveCardID) && len(e.doc.Cards) > 0 {
		e.doc.ActiveCardID = e.doc.Cards[0].ID
	}
}

func hasCard(cards []*document.Card, id string) bool {
	for _, c := range cards {
		if c.ID == id {
			return true
		}
	}
	return false
}
