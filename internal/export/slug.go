package export

import (
	"strings"
	"time"
)

// fileExt is the extension for produced interchange files.
const fileExt = "json"

// Slugify lower-cases the title and collapses every run of
// non-alphanumeric characters into a single hyphen, trimming hyphens at
// both ends. An empty result falls back to "untitled".
func Slugify(title string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		} else {
			pendingHyphen = true
		}
	}
	if b.Len() == 0 {
		return "untitled"
	}
	return b.String()
}

// Filename returns the interchange filename for a document title and
// export date: <slug>-<YYYY-MM-DD>.json.
func Filename(title string, t time.Time) string {
	return Slugify(title) + "-" + t.Format("2006-01-02") + "." + fileExt
}
