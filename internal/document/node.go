package document

import (
	"reflect"
	"time"

	"github.com/google/uuid"
)

// NodeKind discriminates the three structural node kinds.
type NodeKind string

// Node kinds.
const (
	KindCard   NodeKind = "card"
	KindLayout NodeKind = "layout"
	KindBlock  NodeKind = "block"
)

// Node is the closed union of tree node kinds. Only Card, Layout, and
// Block implement it.
type Node interface {
	// NodeID returns the node's unique identifier.
	NodeID() string

	// Kind returns the structural kind discriminator.
	Kind() NodeKind

	// CloneNode returns a deep copy of the node and its entire subtree.
	CloneNode() Node
}

// NewID returns a fresh opaque node identifier.
func NewID() string {
	return uuid.NewString()
}

// Document is the root aggregate. It owns its Cards exclusively; callers
// receive deep copies, never aliases into a live tree.
type Document struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Cards        []*Card   `json:"cards"`
	ActiveCardID string    `json:"activeCardId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// New creates an empty Document with a single blank card, so the
// at-least-one-card invariant holds from the start.
func New(title string) *Document {
	now := time.Now().UTC()
	card := NewCard("")
	return &Document{
		ID:           NewID(),
		Title:        title,
		Cards:        []*Card{card},
		ActiveCardID: card.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := *d
	out.Cards = make([]*Card, len(d.Cards))
	for i, c := range d.Cards {
		out.Cards[i] = c.Clone()
	}
	return &out
}

// Equal reports whether two documents are structurally identical,
// including ids, ordering, content, and timestamps.
func (d *Document) Equal(other *Document) bool {
	return reflect.DeepEqual(d, other)
}

// Background is optional card-level styling.
type Background struct {
	Color string `json:"color,omitempty"`
	Image string `json:"image,omitempty"`
}

// Card is one slide. Cards appear only at the document root.
type Card struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	Children   []Node      `json:"children"`
	Background *Background `json:"background,omitempty"`
}

// NewCard creates an empty card with a fresh id.
func NewCard(title string) *Card {
	return &Card{ID: NewID(), Title: title}
}

// NodeID implements Node.
func (c *Card) NodeID() string { return c.ID }

// Kind implements Node.
func (c *Card) Kind() NodeKind { return KindCard }

// CloneNode implements Node.
func (c *Card) CloneNode() Node { return c.Clone() }

// Clone returns a deep copy of the card and its subtree.
func (c *Card) Clone() *Card {
	if c == nil {
		return nil
	}
	out := *c
	out.Children = cloneChildren(c.Children)
	if c.Background != nil {
		bg := *c.Background
		out.Background = &bg
	}
	return &out
}

// Variant is the enumerated arrangement pattern of a Layout. Each variant
// implies a fixed column count.
type Variant string

// Layout variants.
const (
	VariantSingleColumn Variant = "single-column"
	VariantTwoColumn    Variant = "two-column"
	VariantThreeColumn  Variant = "three-column"
	VariantSidebarLeft  Variant = "sidebar-left"
	VariantSidebarRight Variant = "sidebar-right"
	VariantMasonry      Variant = "masonry"
)

// Columns returns the column count implied by the variant. Unknown
// variants report a single column.
func (v Variant) Columns() int {
	switch v {
	case VariantTwoColumn, VariantSidebarLeft, VariantSidebarRight:
		return 2
	case VariantThreeColumn:
		return 3
	default:
		return 1
	}
}

// Valid reports whether v is a known variant.
func (v Variant) Valid() bool {
	switch v {
	case VariantSingleColumn, VariantTwoColumn, VariantThreeColumn,
		VariantSidebarLeft, VariantSidebarRight, VariantMasonry:
		return true
	}
	return false
}

// Layout is a structural container. Children may be Layouts or Blocks.
type Layout struct {
	ID       string  `json:"id"`
	Variant  Variant `json:"variant"`
	Gap      float64 `json:"gap,omitempty"`
	Children []Node  `json:"children"`
}

// NewLayout creates an empty layout with a fresh id.
func NewLayout(variant Variant) *Layout {
	return &Layout{ID: NewID(), Variant: variant}
}

// NodeID implements Node.
func (l *Layout) NodeID() string { return l.ID }

// Kind implements Node.
func (l *Layout) Kind() NodeKind { return KindLayout }

// CloneNode implements Node.
func (l *Layout) CloneNode() Node { return l.Clone() }

// Clone returns a deep copy of the layout and its subtree.
func (l *Layout) Clone() *Layout {
	if l == nil {
		return nil
	}
	out := *l
	out.Children = cloneChildren(l.Children)
	return &out
}

// Styles are optional size and aspect constraints on a Block.
type Styles struct {
	Width       string `json:"width,omitempty"`
	Height      string `json:"height,omitempty"`
	AspectRatio string `json:"aspectRatio,omitempty"`
}

// Block is the leaf content node. Blocks never have children.
type Block struct {
	ID        string  `json:"id"`
	Content   Content `json:"content"`
	Styles    *Styles `json:"styles,omitempty"`
	Resizable bool    `json:"resizable,omitempty"`
}

// NewBlock creates a block with a fresh id holding the given content.
func NewBlock(content Content) *Block {
	return &Block{ID: NewID(), Content: content}
}

// NodeID implements Node.
func (b *Block) NodeID() string { return b.ID }

// Kind implements Node.
func (b *Block) Kind() NodeKind { return KindBlock }

// CloneNode implements Node.
func (b *Block) CloneNode() Node { return b.Clone() }

// Clone returns a deep copy of the block.
func (b *Block) Clone() *Block {
	if b == nil {
		return nil
	}
	out := *b
	if b.Content != nil {
		out.Content = b.Content.CloneContent()
	}
	if b.Styles != nil {
		st := *b.Styles
		out.Styles = &st
	}
	return &out
}

// IsCard reports whether n is a Card.
func IsCard(n Node) bool {
	_, ok := n.(*Card)
	return ok
}

// IsLayout reports whether n is a Layout.
func IsLayout(n Node) bool {
	_, ok := n.(*Layout)
	return ok
}

// IsBlock reports whether n is a Block.
func IsBlock(n Node) bool {
	_, ok := n.(*Block)
	return ok
}

func cloneChildren(children []Node) []Node {
	if children == nil {
		return nil
	}
	out := make([]Node, len(children))
	for i, ch := range children {
		out[i] = ch.CloneNode()
	}
	return out
}
