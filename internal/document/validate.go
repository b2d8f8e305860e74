package document

import (
	"errors"
	"fmt"
)

// Validation errors.
var (
	// ErrNoCards indicates a document with an empty card sequence.
	ErrNoCards = errors.New("document must contain at least one card")

	// ErrDuplicateID indicates two nodes sharing an id.
	ErrDuplicateID = errors.New("duplicate node id")

	// ErrActiveCardMissing indicates activeCardId references no card.
	ErrActiveCardMissing = errors.New("active card id references no card")
)

// Validate checks the structural invariants of a complete document: at
// least one card, unique ids across the whole tree, and an activeCardId
// that references an existing card when present.
func Validate(d *Document) error {
	if d == nil {
		return errors.New("nil document")
	}
	if len(d.Cards) == 0 {
		return ErrNoCards
	}

	seen := make(map[string]bool)
	var walk func(n Node) error
	walk = func(n Node) error {
		id := n.NodeID()
		if id == "" {
			return fmt.Errorf("%s node missing id", n.Kind())
		}
		if seen[id] {
			return fmt.Errorf("%w: %s", ErrDuplicateID, id)
		}
		seen[id] = true
		if l, ok := n.(*Layout); ok {
			for _, ch := range l.Children {
				if err := walk(ch); err != nil {
					return err
				}
			}
		}
		return nil
	}

	activeFound := d.ActiveCardID == ""
	for _, c := range d.Cards {
		if c.ID == d.ActiveCardID {
			activeFound = true
		}
		if err := walk(c); err != nil {
			return err
		}
		for _, ch := range c.Children {
			if IsCard(ch) {
				return fmt.Errorf("card %s: cards cannot nest", c.ID)
			}
			if err := walk(ch); err != nil {
				return err
			}
		}
	}
	if !activeFound {
		return fmt.Errorf("%w: %s", ErrActiveCardMissing, d.ActiveCardID)
	}
	return nil
}
