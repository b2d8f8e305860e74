package tree

import (
	"slices"

	"github.com/dshills/deckforge/internal/document"
)

// Parent identifies a node's immediate container.
type Parent struct {
	// Container is the Card or Layout holding the node. It is nil when
	// the node is itself a top-level Card.
	Container document.Node

	// Index is the node's position within its container's children, or
	// within the card sequence for top-level Cards.
	Index int
}

// FindNode locates a node by id. Card ids are checked before descending
// into card children.
func FindNode(cards []*document.Card, id string) (document.Node, bool) {
	for _, c := range cards {
		if c.ID == id {
			return c, true
		}
	}
	for _, c := range cards {
		if n, ok := findIn(c.Children, id); ok {
			return n, true
		}
	}
	return nil, false
}

func findIn(children []document.Node, id string) (document.Node, bool) {
	for _, ch := range children {
		if ch.NodeID() == id {
			return ch, true
		}
		if l, ok := ch.(*document.Layout); ok {
			if n, ok := findIn(l.Children, id); ok {
				return n, true
			}
		}
	}
	return nil, false
}

// FindParent locates a node's immediate container and index within it.
func FindParent(cards []*document.Card, id string) (Parent, bool) {
	for i, c := range cards {
		if c.ID == id {
			return Parent{Index: i}, true
		}
	}
	for _, c := range cards {
		if p, ok := parentIn(c, c.Children, id); ok {
			return p, true
		}
	}
	return Parent{}, false
}

func parentIn(container document.Node, children []document.Node, id string) (Parent, bool) {
	for i, ch := range children {
		if ch.NodeID() == id {
			return Parent{Container: container, Index: i}, true
		}
		if l, ok := ch.(*document.Layout); ok {
			if p, ok := parentIn(l, l.Children, id); ok {
				return p, true
			}
		}
	}
	return Parent{}, false
}

// UpdateNode replaces the node with the given id by the updater's result,
// rebuilding every ancestor along the path. The updater receives a deep
// copy and may mutate it freely. A missing id, or an updater returning nil
// or a node of a different kind, leaves the snapshot unchanged.
func UpdateNode(cards []*document.Card, id string, fn func(document.Node) document.Node) []*document.Card {
	for i, c := range cards {
		if c.ID == id {
			updated, ok := fn(c.Clone()).(*document.Card)
			if !ok || updated == nil {
				return cards
			}
			out := slices.Clone(cards)
			out[i] = updated
			return out
		}
	}
	for i, c := range cards {
		if children, changed := updateIn(c.Children, id, fn); changed {
			out := slices.Clone(cards)
			cc := *c
			cc.Children = children
			out[i] = &cc
			return out
		}
	}
	return cards
}

func updateIn(children []document.Node, id string, fn func(document.Node) document.Node) ([]document.Node, bool) {
	for i, ch := range children {
		if ch.NodeID() == id {
			updated := fn(ch.CloneNode())
			if updated == nil || updated.Kind() != ch.Kind() {
				return nil, false
			}
			out := slices.Clone(children)
			out[i] = updated
			return out, true
		}
		if l, ok := ch.(*document.Layout); ok {
			if sub, changed := updateIn(l.Children, id, fn); changed {
				out := slices.Clone(children)
				ll := *l
				ll.Children = sub
				out[i] = &ll
				return out, true
			}
		}
	}
	return nil, false
}

// DeleteNode removes the node and its entire subtree. Deleting the last
// remaining card is a no-op: the document must always keep at least one.
func DeleteNode(cards []*document.Card, id string) []*document.Card {
	for i, c := range cards {
		if c.ID == id {
			if len(cards) == 1 {
				return cards
			}
			return slices.Delete(slices.Clone(cards), i, i+1)
		}
	}
	for i, c := range cards {
		if children, changed := deleteIn(c.Children, id); changed {
			out := slices.Clone(cards)
			cc := *c
			cc.Children = children
			out[i] = &cc
			return out
		}
	}
	return cards
}

func deleteIn(children []document.Node, id string) ([]document.Node, bool) {
	for i, ch := range children {
		if ch.NodeID() == id {
			return slices.Delete(slices.Clone(children), i, i+1), true
		}
		if l, ok := ch.(*document.Layout); ok {
			if sub, changed := deleteIn(l.Children, id); changed {
				out := slices.Clone(children)
				ll := *l
				ll.Children = sub
				out[i] = &ll
				return out, true
			}
		}
	}
	return nil, false
}

// Move extracts the element at from and reinserts it at to within the same
// sequence, returning a new slice. Equal or out-of-range indices return
// the input unchanged.
func Move[T any](s []T, from, to int) []T {
	if from == to || from < 0 || to < 0 || from >= len(s) || to >= len(s) {
		return s
	}
	out := slices.Clone(s)
	v := out[from]
	out = slices.Delete(out, from, from+1)
	return slices.Insert(out, to, v)
}

// MoveChild reorders a child within the container identified by
// containerID. The container may be a Card or a Layout.
func MoveChild(cards []*document.Card, containerID string, from, to int) []*document.Card {
	return UpdateNode(cards, containerID, func(n document.Node) document.Node {
		switch t := n.(type) {
		case *document.Card:
			t.Children = Move(t.Children, from, to)
			return t
		case *document.Layout:
			t.Children = Move(t.Children, from, to)
			return t
		}
		return nil
	})
}

// InsertChild inserts node into the children of the container identified
// by parentID at the given index, clamped to the valid range. A negative
// index appends. Blocks cannot contain children, so a block parent id
// leaves the snapshot unchanged, as does inserting a Card below the root.
func InsertChild(cards []*document.Card, parentID string, node document.Node, index int) []*document.Card {
	if node == nil || document.IsCard(node) {
		return cards
	}
	return UpdateNode(cards, parentID, func(n document.Node) document.Node {
		switch t := n.(type) {
		case *document.Card:
			t.Children = insertAt(t.Children, node, index)
			return t
		case *document.Layout:
			t.Children = insertAt(t.Children, node, index)
			return t
		}
		return nil
	})
}

func insertAt(children []document.Node, node document.Node, index int) []document.Node {
	if index < 0 || index > len(children) {
		index = len(children)
	}
	return slices.Insert(slices.Clone(children), index, node)
}

// Walk visits every node depth-first, cards included. Returning false from
// visit stops the walk.
func Walk(cards []*document.Card, visit func(document.Node) bool) {
	for _, c := range cards {
		if !visit(c) {
			return
		}
		if !walkChildren(c.Children, visit) {
			return
		}
	}
}

func walkChildren(children []document.Node, visit func(document.Node) bool) bool {
	for _, ch := range children {
		if !visit(ch) {
			return false
		}
		if l, ok := ch.(*document.Layout); ok {
			if !walkChildren(l.Children, visit) {
				return false
			}
		}
	}
	return true
}

// ContainsID reports whether any node in the snapshot carries the id.
func ContainsID(cards []*document.Card, id string) bool {
	_, ok := FindNode(cards, id)
	return ok
}
