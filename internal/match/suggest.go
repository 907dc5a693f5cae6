package match

import "strings"

// Closest returns the candidate nearest to input, compared case-insensitively.
// Candidates further than a third of their length away are not offered.
func Closest(input string, candidates []string) (string, bool) {
	input = strings.ToLower(input)

	best, bestDist := "", -1

	for _, c := range candidates {
		d := Levenshtein(input, strings.ToLower(c))
		if d > max(len(c)/3, 1) {
			continue
		}

		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}

	return best, bestDist >= 0
}

// Hint returns " (did you mean X?)" for the closest candidate, or "".
func Hint(input string, candidates []string) string {
	if c, ok := Closest(input, candidates); ok {
		return " (did you mean " + c + "?)"
	}

	return ""
}
