// ABOUTME: "Did you mean" suggestions over sahilm/fuzzy for config names (actions, colors, keys)
// ABOUTME: Matches either way round so both dropped and extra characters find a candidate

package fuzzy

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// Match is a ranked candidate.
type Match struct {
	Str   string
	Index int
	Score int
}

// Find returns candidates containing pattern's characters in order, best
// first.
func Find(pattern string, candidates []string) []Match {
	if pattern == "" {
		return nil
	}
	results := fuzzy.Find(pattern, candidates)
	matches := make([]Match, len(results))
	for i, r := range results {
		matches[i] = Match{Str: r.Str, Index: r.Index, Score: r.Score}
	}
	return matches
}

// Closest returns the candidate most likely meant by input. It first looks
// for candidates that contain input as a subsequence ("pase" -> "pause"),
// then for candidates that are a subsequence of input ("reed" -> "red").
func Closest(input string, candidates []string) (string, bool) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" || len(candidates) == 0 {
		return "", false
	}

	lowered := make([]string, len(candidates))
	for i, c := range candidates {
		lowered[i] = strings.ToLower(c)
	}
	if m := Find(input, lowered); len(m) > 0 {
		return candidates[m[0].Index], true
	}

	best, bestScore := -1, 0
	for i, c := range lowered {
		m := Find(c, []string{input})
		if len(m) == 0 {
			continue
		}
		if best < 0 || m[0].Score > bestScore {
			best, bestScore = i, m[0].Score
		}
	}
	if best < 0 {
		return "", false
	}
	return candidates[best], true
}
