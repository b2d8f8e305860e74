package material

import (
	"errors"
	"sort"
	"sync"

	"github.com/tidwall/sjson"

	"github.com/dshills/deckforge/internal/document"
)

// Errors returned by library operations.
var (
	// ErrMaterialNotFound indicates an unknown material id.
	ErrMaterialNotFound = errors.New("material not found")

	// ErrInvalidMaterial indicates a material without an id.
	ErrInvalidMaterial = errors.New("material missing id")
)

// Library is an in-memory material catalog.
type Library struct {
	mu        sync.RWMutex
	materials map[string]*document.Material
}

// NewLibrary creates an empty catalog.
func NewLibrary() *Library {
	return &Library{materials: make(map[string]*document.Material)}
}

// Register adds or replaces a catalog entry. The material is cloned in.
func (l *Library) Register(m *document.Material) error {
	if m == nil || m.ID == "" {
		return ErrInvalidMaterial
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.materials[m.ID] = m.Clone()
	return nil
}

// Get returns a copy of the material with the given id.
func (l *Library) Get(id string) (*document.Material, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	m, ok := l.materials[id]
	if !ok {
		return nil, false
	}
	return m.Clone(), true
}

// All returns copies of every entry, ordered by id.
func (l *Library) All() []*document.Material {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]*document.Material, 0, len(l.materials))
	for _, m := range l.materials {
		out = append(out, m.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ByCategory returns copies of the entries in a category, ordered by id.
func (l *Library) ByCategory(category string) []*document.Material {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []*document.Material
	for _, m := range l.materials {
		if m.Category == category {
			out = append(out, m.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of catalog entries.
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.materials)
}

// replaceAll swaps the whole catalog. Used by directory reloads.
func (l *Library) replaceAll(materials map[string]*document.Material) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.materials = materials
}

// Instantiate creates a fresh Block from a material template. The block
// gets a new id; default content and styles are deep copies, so repeated
// drops never alias. Overrides are content-field paths (sjson syntax)
// merged into the template's content, applied in sorted key order so the
// result is deterministic.
func (l *Library) Instantiate(id string, overrides map[string]any) (*document.Block, error) {
	m, ok := l.Get(id)
	if !ok {
		return nil, ErrMaterialNotFound
	}

	content := m.DefaultContent
	if len(overrides) > 0 && content != nil {
		raw, err := document.MarshalContent(content)
		if err != nil {
			return nil, err
		}
		keys := make([]string, 0, len(overrides))
		for k := range overrides {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			raw, err = sjson.SetBytes(raw, k, overrides[k])
			if err != nil {
				return nil, err
			}
		}
		content, err = document.UnmarshalContent(raw)
		if err != nil {
			return nil, err
		}
	}

	block := document.NewBlock(content)
	if m.DefaultStyles != nil {
		st := *m.DefaultStyles
		block.Styles = &st
	}
	return block, nil
}
