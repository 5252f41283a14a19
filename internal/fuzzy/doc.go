// Package fuzzy ranks names against a mistyped query.
//
// Configuration keys, action names and profile names are matched
// case-insensitively. Match scores candidates that contain the query as
// a subsequence, favoring consecutive runs, word boundaries and
// prefixes. Suggest picks the single best correction for an error
// message, preferring small edit distances and falling back to
// subsequence matches.
//
//	if s, ok := fuzzy.Suggest("ToggleFulscreen", action.Names()); ok {
//	    fmt.Printf("did you mean %q?\n", s)
//	}
package fuzzy
