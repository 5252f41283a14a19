package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrUnknownProfile indicates a profile name that the document does not define.
	ErrUnknownProfile = errors.New("unknown profile")

	// ErrUnknownScheme indicates a color scheme name that the document does not define.
	ErrUnknownScheme = errors.New("unknown color scheme")

	// ErrInvalidValue indicates a value that cannot be decoded into its field type.
	ErrInvalidValue = errors.New("invalid value")

	// ErrOutOfRange indicates a numeric value outside the allowed range.
	ErrOutOfRange = errors.New("value out of range")

	// ErrInvalidBinding indicates an input_mapping entry that cannot be used.
	ErrInvalidBinding = errors.New("invalid binding")
)

// FieldError describes a field that failed to load. The field keeps the
// value it had before.
type FieldError struct {
	// Path is the dot-separated field path, e.g. "profiles.main.history.limit".
	Path string
	// Line is the source line of the offending node, 0 if unknown.
	Line int
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s (line %d): %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *FieldError) Unwrap() error {
	return e.Err
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidValue, fmt.Sprintf(format, args...))
}
