package pipeline

import (
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// containsFold reports whether needle (already lowercased) is a substring of
// s, case-insensitively. A record missing a field simply fails the match on
// that field; it never errors.
func containsFold(s, needle string) bool {
	return strings.Contains(strings.ToLower(s), needle)
}

// searchNeedle lowercases and trims a raw search query once, up front.
func searchNeedle(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// newNameCollator builds the collator used for name ordering. Collators
// carry an internal buffer and are not safe for concurrent use, so each
// sort gets its own.
func newNameCollator() *collate.Collator {
	return collate.New(language.English, collate.IgnoreCase)
}
