// Package matchmode implements the terminal-mode filter attached to every
// input binding.
//
// A terminal reports a small set of boolean mode flags (alternate screen,
// application cursor keys, ...). A Filter gives each flag one of three
// states, Enabled, Disabled or Any, and a binding only applies when every
// flag in the filter agrees with the terminal.
package matchmode

import (
	"fmt"
	"strings"
)

// Flag identifies one terminal mode flag.
type Flag uint8

const (
	// AlternateScreen is set while the alternate screen buffer is active.
	AlternateScreen Flag = iota
	// AppCursor is set while application cursor keys mode is active.
	AppCursor
	// AppKeypad is set while application keypad mode is active.
	AppKeypad
	// Select is set while a text selection is active.
	Select
	// Insert is set while insert (edit) mode is active.
	Insert
	// Search is set while the search prompt is active.
	Search
	// Trace is set while trace mode is active.
	Trace

	flagCount
)

// FlagCount is the number of mode flags.
const FlagCount = int(flagCount)

var flagNames = [flagCount]string{
	AlternateScreen: "Alt",
	AppCursor:       "AppCursor",
	AppKeypad:       "AppKeypad",
	Select:          "Select",
	Insert:          "Insert",
	Search:          "Search",
	Trace:           "Trace",
}

// String returns the name used for the flag in mode expressions.
func (f Flag) String() string {
	if f < flagCount {
		return flagNames[f]
	}
	return fmt.Sprintf("Flag(%d)", f)
}

// FlagFromName returns the flag with the given name (case-insensitive).
func FlagFromName(name string) (Flag, bool) {
	name = strings.TrimSpace(name)
	if strings.EqualFold(name, "AlternateScreen") {
		return AlternateScreen, true
	}
	for f := Flag(0); f < flagCount; f++ {
		if strings.EqualFold(flagNames[f], name) {
			return f, true
		}
	}
	return 0, false
}

// Flags is the set of mode flags currently active in a terminal.
type Flags uint8

// Has returns true if the flag is set.
func (fl Flags) Has(f Flag) bool {
	return fl&(1<<f) != 0
}

// With returns a copy with the flag set.
func (fl Flags) With(f Flag) Flags {
	return fl | 1<<f
}

// Without returns a copy with the flag cleared.
func (fl Flags) Without(f Flag) Flags {
	return fl &^ (1 << f)
}

// String lists the active flags joined by "|".
func (fl Flags) String() string {
	var parts []string
	for f := Flag(0); f < flagCount; f++ {
		if fl.Has(f) {
			parts = append(parts, f.String())
		}
	}
	return strings.Join(parts, "|")
}

// State is the requirement a Filter places on one flag.
type State uint8

const (
	// Any accepts the flag in either state.
	Any State = iota
	// Enabled requires the flag to be set.
	Enabled
	// Disabled requires the flag to be clear.
	Disabled
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Any:
		return "any"
	case Enabled:
		return "enabled"
	case Disabled:
		return "disabled"
	default:
		return fmt.Sprintf("State(%d)", s)
	}
}

// Filter holds one State per flag. The zero Filter accepts everything.
type Filter [flagCount]State

// AnyFilter returns a filter that matches every flag combination.
func AnyFilter() Filter {
	return Filter{}
}

// With returns a copy of the filter with the flag set to state.
func (f Filter) With(flag Flag, state State) Filter {
	f[flag] = state
	return f
}

// Enable returns a copy requiring flag to be set.
func (f Filter) Enable(flag Flag) Filter {
	return f.With(flag, Enabled)
}

// Disable returns a copy requiring flag to be clear.
func (f Filter) Disable(flag Flag) Filter {
	return f.With(flag, Disabled)
}

// State returns the requirement for flag.
func (f Filter) State(flag Flag) State {
	return f[flag]
}

// IsAny reports whether the filter leaves every flag at Any.
func (f Filter) IsAny() bool {
	return f == Filter{}
}

// String renders the filter as a mode expression, e.g. "Alt|~Select".
// A filter that accepts everything renders as "".
func (f Filter) String() string {
	var parts []string
	for flag := Flag(0); flag < flagCount; flag++ {
		switch f[flag] {
		case Enabled:
			parts = append(parts, flag.String())
		case Disabled:
			parts = append(parts, "~"+flag.String())
		}
	}
	return strings.Join(parts, "|")
}

// Matches reports whether the active flags satisfy the filter.
func Matches(actual Flags, filter Filter) bool {
	for flag := Flag(0); flag < flagCount; flag++ {
		switch filter[flag] {
		case Enabled:
			if !actual.Has(flag) {
				return false
			}
		case Disabled:
			if actual.Has(flag) {
				return false
			}
		}
	}
	return true
}

// Matches reports whether the active flags satisfy the filter.
func (f Filter) Matches(actual Flags) bool {
	return Matches(actual, f)
}

// ParseFilter parses a mode expression: flag names separated by "|",
// each optionally prefixed with "~" to require the flag to be clear.
// Flags not mentioned stay at Any. The empty expression is the Any filter.
func ParseFilter(expr string) (Filter, error) {
	var filter Filter
	for _, part := range strings.Split(expr, "|") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		state := Enabled
		if strings.HasPrefix(part, "~") {
			state = Disabled
			part = strings.TrimSpace(part[1:])
		}
		flag, ok := FlagFromName(part)
		if !ok {
			return Filter{}, fmt.Errorf("unknown mode flag %q", part)
		}
		if filter[flag] != Any && filter[flag] != state {
			return Filter{}, fmt.Errorf("mode flag %q is both required and excluded", part)
		}
		filter[flag] = state
	}
	return filter, nil
}
