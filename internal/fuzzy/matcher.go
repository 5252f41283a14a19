package fuzzy

import (
	"slices"
	"strings"
)

// Result is one ranked candidate.
type Result struct {
	// Text is the candidate as given.
	Text string

	// Score is the match score (higher is better).
	Score int

	// Matches holds the rune indices of the matched characters.
	Matches []int
}

// Matcher ranks candidates against a query.
type Matcher struct {
	weights Weights
}

// NewMatcher creates a matcher with the given weights.
func NewMatcher(w Weights) *Matcher {
	return &Matcher{weights: w}
}

var defaultMatcher = NewMatcher(DefaultWeights())

// Match returns the candidates containing query as a case-insensitive
// subsequence, best first. A limit of zero or less returns them all.
func (m *Matcher) Match(query string, candidates []string, limit int) []Result {
	q := []rune(strings.ToLower(strings.TrimSpace(query)))
	if len(q) == 0 {
		return nil
	}

	var results []Result
	for _, c := range candidates {
		if r, ok := m.matchOne(q, c); ok {
			results = append(results, r)
		}
	}
	slices.SortFunc(results, func(a, b Result) int {
		if a.Score != b.Score {
			return b.Score - a.Score
		}
		return strings.Compare(a.Text, b.Text)
	})
	if limit > 0 && limit < len(results) {
		results = results[:limit]
	}
	return results
}

func (m *Matcher) matchOne(query []rune, candidate string) (Result, bool) {
	original := []rune(candidate)
	text := []rune(strings.ToLower(candidate))

	matches := make([]int, 0, len(query))
	qi := 0
	for i := 0; i < len(text) && qi < len(query); i++ {
		if text[i] == query[qi] {
			matches = append(matches, i)
			qi++
		}
	}
	if qi != len(query) {
		return Result{}, false
	}
	return Result{
		Text:    candidate,
		Score:   m.weights.score(query, original, text, matches),
		Matches: matches,
	}, true
}

// Suggest returns the candidate query most likely meant to name. A
// case-insensitive exact match wins, then the closest candidate within
// a third of the query's length in edits, then the best subsequence
// match for queries of three or more runes.
func (m *Matcher) Suggest(query string, candidates []string) (string, bool) {
	query = strings.TrimSpace(query)
	if query == "" || len(candidates) == 0 {
		return "", false
	}

	for _, c := range candidates {
		if strings.EqualFold(c, query) {
			return c, true
		}
	}

	limit := max(1, len([]rune(query))/3)
	best, bestDist := "", limit+1
	for _, c := range candidates {
		d := Distance(query, c)
		if d < bestDist || (d == bestDist && c < best) {
			best, bestDist = c, d
		}
	}
	if bestDist <= limit {
		return best, true
	}

	if len([]rune(query)) >= 3 {
		if results := m.Match(query, candidates, 1); len(results) > 0 {
			return results[0].Text, true
		}
	}
	return "", false
}

// Suggest is Matcher.Suggest with the default weights.
func Suggest(query string, candidates []string) (string, bool) {
	return defaultMatcher.Suggest(query, candidates)
}

// Distance returns the case-insensitive Levenshtein distance between a
// and b.
func Distance(a, b string) int {
	ra := []rune(strings.ToLower(a))
	rb := []rune(strings.ToLower(b))

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
