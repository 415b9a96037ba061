package linter

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Suggest returns the candidate closest to input by case-insensitive edit
// distance. Ties go to the earlier candidate.
func Suggest(input string, candidates []string) (string, bool) {
	if len(candidates) == 0 {
		return "", false
	}
	needle := strings.ToLower(input)
	best, bestScore := "", -1
	for _, c := range candidates {
		score := levenshtein.ComputeDistance(needle, strings.ToLower(c))
		if bestScore < 0 || score < bestScore {
			best, bestScore = c, score
		}
	}
	return best, true
}
