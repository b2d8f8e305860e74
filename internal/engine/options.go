package engine

import "github.com/dshills/deckforge/internal/document"

// Default configuration values.
const (
	DefaultTitle          = "Untitled"
	DefaultMaxUndoEntries = 100
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithDocument seeds the engine with an existing document instead of a
// fresh single-card one. The document is cloned in.
func WithDocument(doc *document.Document) Option {
	return func(e *Engine) {
		if doc != nil {
			e.initDoc = doc.Clone()
		}
	}
}

// WithTitle sets the title of the initial document.
func WithTitle(title string) Option {
	return func(e *Engine) {
		e.initTitle = title
	}
}

// WithMaxUndoEntries bounds the undo history depth.
func WithMaxUndoEntries(maxEntries int) Option {
	return func(e *Engine) {
		if maxEntries > 0 {
			e.maxUndoEntries = maxEntries
		}
	}
}
