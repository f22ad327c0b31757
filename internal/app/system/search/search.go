// internal/app/system/search/search.go
package search

import (
	"strings"
	"unicode/utf8"

	"github.com/dalemusser/waffle/pantry/text"
)

// MaxQueryRunes caps the free-text query accepted from a search box.
const MaxQueryRunes = 200

// Normalize trims a raw search box value, collapses runs of whitespace to a
// single space and truncates it to MaxQueryRunes runes.
func Normalize(q string) string {
	q = strings.Join(strings.Fields(q), " ")
	if utf8.RuneCountInString(q) <= MaxQueryRunes {
		return q
	}
	runes := []rune(q)
	return strings.TrimSpace(string(runes[:MaxQueryRunes]))
}

// Terms splits a query into case- and accent-folded words.
// An empty or blank query yields no terms.
func Terms(q string) []string {
	return strings.Fields(text.Fold(q))
}

// MatchAll reports whether every term occurs in folded. The haystack must
// already be folded with the same folding as Terms; no terms matches all.
func MatchAll(folded string, terms []string) bool {
	for _, t := range terms {
		if !strings.Contains(folded, t) {
			return false
		}
	}
	return true
}
