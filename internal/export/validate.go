package export

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/dshills/deckforge/internal/document"
)

// ErrInvalidExport indicates interchange bytes that violate the schema's
// mandatory-field contract.
var ErrInvalidExport = errors.New("invalid export")

// Validate checks interchange bytes against the consumer contract:
// version, metadata.title, and a cards array are mandatory; every block
// needs an id and a content object. Unknown content tags are accepted as
// opaque records, so a newer producer's file still validates.
func Validate(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("%w: not valid JSON", ErrInvalidExport)
	}
	root := gjson.ParseBytes(data)

	if v := root.Get("version"); !v.Exists() || v.String() == "" {
		return fmt.Errorf("%w: missing version", ErrInvalidExport)
	}
	if t := root.Get("metadata.title"); !t.Exists() {
		return fmt.Errorf("%w: missing metadata.title", ErrInvalidExport)
	}
	cards := root.Get("cards")
	if !cards.IsArray() {
		return fmt.Errorf("%w: cards must be an array", ErrInvalidExport)
	}

	var err error
	cards.ForEach(func(ci, card gjson.Result) bool {
		if !card.Get("id").Exists() {
			err = fmt.Errorf("%w: cards.%d missing id", ErrInvalidExport, int(ci.Int()))
			return false
		}
		card.Get("layouts").ForEach(func(li, layout gjson.Result) bool {
			layout.Get("blocks").ForEach(func(bi, block gjson.Result) bool {
				path := fmt.Sprintf("cards.%d.layouts.%d.blocks.%d", int(ci.Int()), int(li.Int()), int(bi.Int()))
				if !block.Get("id").Exists() {
					err = fmt.Errorf("%w: %s missing id", ErrInvalidExport, path)
					return false
				}
				content := block.Get("content")
				if !content.IsObject() {
					err = fmt.Errorf("%w: %s content must be an object", ErrInvalidExport, path)
					return false
				}
				// Unknown tags are fine; the consumer treats them as
				// opaque. Only a non-string tag is malformed.
				if tag := content.Get("type"); tag.Exists() && tag.Type != gjson.String {
					err = fmt.Errorf("%w: %s content.type must be a string", ErrInvalidExport, path)
					return false
				}
				return true
			})
			return err == nil
		})
		return err == nil
	})
	return err
}

// KnownContentTag reports whether a consumer should decode the tag with a
// built-in variant or keep the record opaque.
func KnownContentTag(tag string) bool {
	return document.KnownContentType(tag)
}
