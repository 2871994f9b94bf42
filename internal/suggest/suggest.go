// Package suggest computes "did you mean '<name>'?" hints for
// undefined-reference diagnostics, grounded on the teacher's
// findClosestMatch (runtime/planner/planner.go), which ranks
// candidates with fuzzy.RankFindFold.
package suggest

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// maxDistance bounds how different a candidate may be from target
// before it's considered unrelated rather than a likely typo.
const maxDistance = 3

// Closest returns the best fuzzy match for target among candidates,
// or "" if candidates is empty or nothing is within maxDistance (spec_full
// §8 property 8: never suggest an unrelated name).
func Closest(target string, candidates []string) string {
	best, bestDist := "", maxDistance+1
	for _, c := range candidates {
		d := fuzzy.LevenshteinDistance(strings.ToLower(target), strings.ToLower(c))
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	if best == target {
		return ""
	}
	return best
}
