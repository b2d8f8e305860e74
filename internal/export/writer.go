package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dshills/deckforge/internal/document"
)

// Write transforms the document and writes the interchange file into dir,
// named by the filename convention. It returns the path written.
func Write(dir string, doc *document.Document, opts ...Option) (string, error) {
	ex := Transform(doc, opts...)

	data, err := json.MarshalIndent(ex, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding export: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export dir %s: %w", dir, err)
	}

	path := filepath.Join(dir, Filename(doc.Title, ex.ExportedAt))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing export %s: %w", path, err)
	}
	return path, nil
}
