package ui

import (
	"sort"
	"strings"
)

// MaxSuggestions caps the number of "Did you mean" candidates.
const MaxSuggestions = 3

// FindSimilar returns up to MaxSuggestions candidates within a case
// insensitive edit distance of a third of target's length (at least 2),
// closest first. Candidates sharing target as a prefix always qualify.
func FindSimilar(target string, candidates []string) []string {
	type match struct {
		value    string
		distance int
	}

	lower := strings.ToLower(target)
	limit := max(2, len([]rune(target))/3)

	var matches []match
	for _, candidate := range candidates {
		c := strings.ToLower(candidate)
		if c == lower {
			continue
		}
		d := LevenshteinDistance(lower, c)
		if d <= limit || (lower != "" && strings.HasPrefix(c, lower)) {
			matches = append(matches, match{candidate, d})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].distance < matches[j].distance
	})

	out := make([]string, 0, MaxSuggestions)
	for i := 0; i < len(matches) && i < MaxSuggestions; i++ {
		out = append(out, matches[i].value)
	}
	return out
}

// LevenshteinDistance counts the single-rune insertions, deletions and
// substitutions between a and b.
func LevenshteinDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}
