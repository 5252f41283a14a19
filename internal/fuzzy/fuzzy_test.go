package fuzzy

import (
	"testing"
)

func TestMatchBasic(t *testing.T) {
	candidates := []string{"main.go", "handler.go", "config.go", "utils.go"}

	tests := []struct {
		query       string
		wantFirst   string
		wantMatches int
	}{
		{"main", "main.go", 1},
		{"go", "main.go", 4}, // all contain "go"; the shortest scores highest
		{"han", "handler.go", 1},
		{"xyz", "", 0},
		{"", "", 0},
	}

	m := NewMatcher(DefaultWeights())
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			results := m.Match(tt.query, candidates, 0)
			if len(results) != tt.wantMatches {
				t.Fatalf("query %q: got %d matches, want %d", tt.query, len(results), tt.wantMatches)
			}
			if tt.wantMatches > 0 && results[0].Text != tt.wantFirst {
				t.Errorf("query %q: got first %q, want %q", tt.query, results[0].Text, tt.wantFirst)
			}
		})
	}
}

func TestMatchCaseInsensitive(t *testing.T) {
	m := NewMatcher(DefaultWeights())
	results := m.Match("MAIN", []string{"MainController", "main"}, 0)
	if len(results) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(results))
	}
	if results[0].Text != "main" {
		t.Errorf("expected shorter exact prefix first, got %q", results[0].Text)
	}
}

func TestMatchLimit(t *testing.T) {
	m := NewMatcher(DefaultWeights())
	results := m.Match("o", []string{"one", "two", "four", "zero"}, 2)
	if len(results) != 2 {
		t.Errorf("expected 2 results, got %d", len(results))
	}
}

func TestMatchPositions(t *testing.T) {
	m := NewMatcher(DefaultWeights())
	results := m.Match("tf", []string{"ToggleFullscreen"}, 0)
	if len(results) != 1 {
		t.Fatalf("expected 1 match, got %d", len(results))
	}
	want := []int{0, 6}
	got := results[0].Matches
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("matches = %v, want %v", got, want)
	}
}

func TestWordBoundaryScoresHigher(t *testing.T) {
	m := NewMatcher(DefaultWeights())
	results := m.Match("sb", []string{"scrollbar_visible", "ScrollBar"}, 0)
	if len(results) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(results))
	}
	if results[0].Text != "ScrollBar" {
		t.Errorf("expected camelCase boundary match first, got %q", results[0].Text)
	}
}

func TestSuggest(t *testing.T) {
	actions := []string{"ToggleFullscreen", "ToggleTitleBar", "ScrollUp", "ScrollDown", "Quit"}
	keys := []string{"shell", "history", "scrollbar", "font", "colors"}

	tests := []struct {
		name       string
		query      string
		candidates []string
		want       string
		ok         bool
	}{
		{"typo", "ToggleFulscreen", actions, "ToggleFullscreen", true},
		{"case only", "quit", actions, "Quit", true},
		{"transposed", "hsitory", keys, "history", true},
		{"missing letter", "shel", keys, "shell", true},
		{"subsequence", "fullscreen", actions, "ToggleFullscreen", true},
		{"nothing close", "xyzzy", keys, "", false},
		{"empty query", "", keys, "", false},
		{"no candidates", "shell", nil, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Suggest(tt.query, tt.candidates)
			if ok != tt.ok || got != tt.want {
				t.Errorf("Suggest(%q) = %q, %v; want %q, %v", tt.query, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"Shell", "shell", 0},
		{"flaw", "lawn", 2},
	}
	for _, tt := range tests {
		if got := Distance(tt.a, tt.b); got != tt.want {
			t.Errorf("Distance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
