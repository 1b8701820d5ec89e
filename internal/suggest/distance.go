package suggest

import (
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Distance returns the Levenshtein edit distance between a and b,
// counting insertions, deletions and substitutions of single runes.
// Comparison is case-insensitive.
func Distance(a, b string) int {
	return fuzzy.LevenshteinDistance(fold(a), fold(b))
}

func fold(s string) string {
	return strings.Map(unicode.ToLower, s)
}
