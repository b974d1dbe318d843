package core

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Closest returns the catalog entry nearest to query by edit distance, for a
// "did you mean" hint when nothing matched. Entries further than half their own
// length away are not offered.
func (w *SelectionWidget) Closest(query string) (string, bool) {
	if w == nil {
		return "", false
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return "", false
	}
	best, bestDist := "", -1
	for _, option := range w.catalog {
		dist := levenshtein.ComputeDistance(q, strings.ToLower(option))
		if dist*2 > utf8.RuneCountInString(option) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = option, dist
		}
	}
	return best, bestDist >= 0
}
