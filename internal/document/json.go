package document

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// MarshalJSON emits the card with its "kind" discriminator so child nodes
// can be decoded polymorphically.
func (c *Card) MarshalJSON() ([]byte, error) {
	type alias Card
	return json.Marshal(struct {
		Kind NodeKind `json:"kind"`
		*alias
	}{KindCard, (*alias)(c)})
}

// UnmarshalJSON decodes a card, dispatching children on their "kind" tag.
func (c *Card) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID         string            `json:"id"`
		Title      string            `json:"title"`
		Children   []json.RawMessage `json:"children"`
		Background *Background       `json:"background"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	children, err := unmarshalChildren(aux.Children)
	if err != nil {
		return err
	}
	c.ID = aux.ID
	c.Title = aux.Title
	c.Children = children
	c.Background = aux.Background
	return nil
}

// MarshalJSON emits the layout with its "kind" discriminator.
func (l *Layout) MarshalJSON() ([]byte, error) {
	type alias Layout
	return json.Marshal(struct {
		Kind NodeKind `json:"kind"`
		*alias
	}{KindLayout, (*alias)(l)})
}

// UnmarshalJSON decodes a layout, dispatching children on their "kind" tag.
func (l *Layout) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID       string            `json:"id"`
		Variant  Variant           `json:"variant"`
		Gap      float64           `json:"gap"`
		Children []json.RawMessage `json:"children"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	children, err := unmarshalChildren(aux.Children)
	if err != nil {
		return err
	}
	l.ID = aux.ID
	l.Variant = aux.Variant
	l.Gap = aux.Gap
	l.Children = children
	return nil
}

// MarshalJSON emits the block with its "kind" discriminator and the
// content union inlined as a self-describing object.
func (b *Block) MarshalJSON() ([]byte, error) {
	content, err := MarshalContent(b.Content)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		Kind      NodeKind        `json:"kind"`
		ID        string          `json:"id"`
		Content   json.RawMessage `json:"content"`
		Styles    *Styles         `json:"styles,omitempty"`
		Resizable bool            `json:"resizable,omitempty"`
	}{KindBlock, b.ID, content, b.Styles, b.Resizable})
}

// UnmarshalJSON decodes a block and its content union.
func (b *Block) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID        string          `json:"id"`
		Content   json.RawMessage `json:"content"`
		Styles    *Styles         `json:"styles"`
		Resizable bool            `json:"resizable"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	var content Content
	if len(aux.Content) > 0 && string(aux.Content) != "null" {
		var err error
		content, err = UnmarshalContent(aux.Content)
		if err != nil {
			return err
		}
	}
	b.ID = aux.ID
	b.Content = content
	b.Styles = aux.Styles
	b.Resizable = aux.Resizable
	return nil
}

// UnmarshalNode decodes a single node of any kind from its JSON form.
func UnmarshalNode(data []byte) (Node, error) {
	kind := gjson.GetBytes(data, "kind").String()
	switch NodeKind(kind) {
	case KindCard:
		c := &Card{}
		if err := json.Unmarshal(data, c); err != nil {
			return nil, err
		}
		return c, nil
	case KindLayout:
		l := &Layout{}
		if err := json.Unmarshal(data, l); err != nil {
			return nil, err
		}
		return l, nil
	case KindBlock:
		b := &Block{}
		if err := json.Unmarshal(data, b); err != nil {
			return nil, err
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unknown node kind %q", kind)
	}
}

func unmarshalChildren(raw []json.RawMessage) ([]Node, error) {
	if raw == nil {
		return nil, nil
	}
	children := make([]Node, len(raw))
	for i, r := range raw {
		n, err := UnmarshalNode(r)
		if err != nil {
			return nil, fmt.Errorf("child %d: %w", i, err)
		}
		if IsCard(n) {
			return nil, fmt.Errorf("child %d: cards cannot nest", i)
		}
		children[i] = n
	}
	return children, nil
}
