package export

import (
	"encoding/json"
	"time"

	"github.com/dshills/deckforge/internal/document"
)

// DefaultVersion is the interchange schema version this build produces.
const DefaultVersion = "1.0.0"

// Export is the top-level interchange object.
type Export struct {
	Version    string    `json:"version"`
	ExportedAt time.Time `json:"exportedAt"`
	Metadata   Metadata  `json:"metadata"`
	Cards      []Card    `json:"cards"`
}

// Metadata carries document-level fields.
type Metadata struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Card is one exported slide.
type Card struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Order   int      `json:"order"`
	Layouts []Layout `json:"layouts"`
}

// Layout is one exported container.
type Layout struct {
	ID      string  `json:"id"`
	Variant string  `json:"variant"`
	Order   int     `json:"order"`
	Blocks  []Block `json:"blocks"`
}

// Block is one exported content leaf. Content is the self-describing
// content union, tag included.
type Block struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	ColumnIndex int             `json:"columnIndex"`
	Order       int             `json:"order"`
	Content     json.RawMessage `json:"content"`
}

// Option configures a transform.
type Option func(*transformConfig)

type transformConfig struct {
	version    string
	exportedAt time.Time
}

// WithVersion overrides the schema version stamped on the export.
func WithVersion(version string) Option {
	return func(c *transformConfig) {
		if version != "" {
			c.version = version
		}
	}
}

// WithExportedAt overrides the export timestamp. Useful for reproducible
// output.
func WithExportedAt(t time.Time) Option {
	return func(c *transformConfig) { c.exportedAt = t }
}

// Transform walks the document and produces the interchange object. The
// input is never mutated.
//
// Standalone blocks at card level are gathered into one implicit
// single-column layout per card, created at the position of the first
// loose block so card ordering survives. Nested layouts flatten into
// additional layout entries in depth-first order, since the interchange
// does not nest.
func Transform(doc *document.Document, opts ...Option) *Export {
	cfg := transformConfig{
		version:    DefaultVersion,
		exportedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	out := &Export{
		Version:    cfg.version,
		ExportedAt: cfg.exportedAt,
		Metadata: Metadata{
			Title:       doc.Title,
			Description: doc.Description,
			CreatedAt:   doc.CreatedAt,
			UpdatedAt:   doc.UpdatedAt,
		},
		Cards: make([]Card, len(doc.Cards)),
	}

	for i, card := range doc.Cards {
		out.Cards[i] = Card{
			ID:      card.ID,
			Title:   card.Title,
			Order:   i,
			Layouts: transformCardChildren(card),
		}
	}
	return out
}

// transformCardChildren emits one layout entry per layout reachable from
// the card, plus at most one implicit layout holding the card's loose
// blocks.
func transformCardChildren(card *document.Card) []Layout {
	layouts := []Layout{}
	implicit := -1

	for _, child := range card.Children {
		switch n := child.(type) {
		case *document.Layout:
			layouts = appendLayoutTree(layouts, n)
		case *document.Block:
			if implicit < 0 {
				implicit = len(layouts)
				layouts = append(layouts, Layout{
					ID:      card.ID + "-implicit",
					Variant: string(document.VariantSingleColumn),
					Blocks:  []Block{},
				})
			}
			lay := &layouts[implicit]
			lay.Blocks = append(lay.Blocks, transformBlock(n, len(lay.Blocks), document.VariantSingleColumn))
		}
	}

	for i := range layouts {
		layouts[i].Order = i
	}
	return layouts
}

// appendLayoutTree emits the layout and, depth-first, any layouts nested
// inside it.
func appendLayoutTree(layouts []Layout, l *document.Layout) []Layout {
	entry := Layout{
		ID:      l.ID,
		Variant: string(l.Variant),
		Blocks:  []Block{},
	}
	var nested []*document.Layout
	for pos, child := range l.Children {
		switch n := child.(type) {
		case *document.Block:
			b := transformBlock(n, pos, l.Variant)
			b.Order = len(entry.Blocks)
			entry.Blocks = append(entry.Blocks, b)
		case *document.Layout:
			nested = append(nested, n)
		}
	}
	layouts = append(layouts, entry)
	for _, n := range nested {
		layouts = appendLayoutTree(layouts, n)
	}
	return layouts
}

// transformBlock emits one block entry. The column index is the block's
// position in its parent modulo the parent's column count; content is the
// self-describing union, passed through opaquely when the tag is unknown.
func transformBlock(b *document.Block, pos int, variant document.Variant) Block {
	content, err := document.MarshalContent(b.Content)
	if err != nil {
		// The transform must be total; an unmarshalable payload is
		// replaced by an empty object rather than failing the export.
		content = json.RawMessage(`{}`)
	}
	var tag string
	if b.Content != nil {
		tag = string(b.Content.ContentType())
	}
	return Block{
		ID:          b.ID,
		Type:        tag,
		ColumnIndex: pos % variant.Columns(),
		Order:       pos,
		Content:     content,
	}
}
