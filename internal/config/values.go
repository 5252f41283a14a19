package config

import (
	"slices"
	"strconv"
)

// HistoryLimit bounds the scrollback buffer. The zero value is a finite
// limit of zero lines, which is distinct from Unbounded.
type HistoryLimit struct {
	lines     int
	unbounded bool
}

// LimitLines returns a finite limit.
func LimitLines(n int) HistoryLimit {
	return HistoryLimit{lines: n}
}

// Unbounded returns the infinite limit.
func Unbounded() HistoryLimit {
	return HistoryLimit{unbounded: true}
}

// IsUnbounded reports whether the limit is infinite.
func (h HistoryLimit) IsUnbounded() bool {
	return h.unbounded
}

// Lines returns the line count of a finite limit, -1 if unbounded.
func (h HistoryLimit) Lines() int {
	if h.unbounded {
		return -1
	}
	return h.lines
}

// String renders the limit as it appears in documents.
func (h HistoryLimit) String() string {
	return strconv.Itoa(h.Lines())
}

// FontDescription selects a font face.
type FontDescription struct {
	Family   string
	Weight   FontWeight
	Slant    FontSlant
	Features []string
}

// Clone returns a deep copy.
func (f FontDescription) Clone() FontDescription {
	f.Features = slices.Clone(f.Features)
	return f
}
