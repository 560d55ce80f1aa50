// Package score holds the display-only rewrite heuristics. Nothing here
// feeds back into processing decisions; the numbers exist purely for the
// end-of-run report.
package score

import (
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Similarity returns how close two texts are on a 0..1 scale, 1 meaning
// identical, based on Levenshtein distance over runes. A rewrite that
// barely moved the text scores close to 1.
func Similarity(a, b string) float64 {
	if a == "" && b == "" {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}

	distance := fuzzy.LevenshteinDistance(a, b)
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	return 1.0 - float64(distance)/float64(maxLen)
}

// ChangeRatio is the complement of Similarity: how much of the text moved.
func ChangeRatio(original, rewritten string) float64 {
	return 1.0 - Similarity(original, rewritten)
}
