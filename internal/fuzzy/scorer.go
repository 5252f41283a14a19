package fuzzy

import "unicode"

// Weights tunes the subsequence scorer.
type Weights struct {
	// Base is the starting score for any match.
	Base int

	// Consecutive is added for each matched rune directly following
	// the previous one.
	Consecutive int

	// WordBoundary is added for each match at a word boundary.
	WordBoundary int

	// Prefix is added when the first match is at position 0.
	Prefix int

	// ExactPrefix is added when the query is a prefix of the text.
	ExactPrefix int

	// Gap is subtracted for each unmatched rune between matches.
	Gap int

	// Leading is subtracted for each rune before the first match.
	Leading int

	// ShortText rewards texts shorter than this many runes.
	ShortText int
}

// DefaultWeights returns the default scoring weights.
func DefaultWeights() Weights {
	return Weights{
		Base:         100,
		Consecutive:  20,
		WordBoundary: 15,
		Prefix:       25,
		ExactPrefix:  50,
		Gap:          2,
		Leading:      1,
		ShortText:    20,
	}
}

// score rates a subsequence match. matches holds the rune indices of
// the matched characters in text.
func (w Weights) score(query, original, text []rune, matches []int) int {
	if len(matches) == 0 {
		return 0
	}

	score := w.Base
	for i := 1; i < len(matches); i++ {
		if matches[i] == matches[i-1]+1 {
			score += w.Consecutive
		}
	}
	for _, idx := range matches {
		if isWordBoundary(original, idx) {
			score += w.WordBoundary
		}
	}
	if matches[0] == 0 {
		score += w.Prefix
	}
	if len(matches) > 1 {
		if gap := matches[len(matches)-1] - matches[0] - len(matches) + 1; gap > 0 {
			score -= gap * w.Gap
		}
	}
	score -= matches[0] * w.Leading
	if len(text) < w.ShortText {
		score += w.ShortText - len(text)
	}
	if hasPrefix(text, query) {
		score += w.ExactPrefix
	}

	return max(score, 1)
}

func hasPrefix(text, prefix []rune) bool {
	if len(text) < len(prefix) {
		return false
	}
	for i, r := range prefix {
		if text[i] != r {
			return false
		}
	}
	return true
}

// isWordBoundary reports whether the rune at idx starts a word: the
// first rune, a rune after a separator, or a camelCase hump.
func isWordBoundary(runes []rune, idx int) bool {
	if idx == 0 {
		return true
	}
	if idx >= len(runes) {
		return false
	}
	prev, curr := runes[idx-1], runes[idx]
	if unicode.IsSpace(prev) || unicode.IsPunct(prev) {
		return true
	}
	return unicode.IsLower(prev) && unicode.IsUpper(curr)
}
