package key

import (
	"fmt"
	"strings"
)

// Modifier represents a set of active modifier keys.
// The bit values follow the VT modifier parameter encoding (value+1).
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModShift indicates the Shift key.
	ModShift Modifier = 1 << (iota - 1)

	// ModAlt indicates the Alt key (Option on macOS).
	ModAlt

	// ModControl indicates the Control key.
	ModControl

	// ModSuper indicates the Super key (Cmd on macOS, Win on Windows).
	ModSuper
)

// modifierOrder is the fixed order used whenever modifiers are printed.
var modifierOrder = [...]struct {
	mod  Modifier
	name string
}{
	{ModShift, "Shift"},
	{ModAlt, "Alt"},
	{ModControl, "Control"},
	{ModSuper, "Super"},
}

// Has returns true if m contains the specified modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// HasShift returns true if Shift is pressed.
func (m Modifier) HasShift() bool {
	return m.Has(ModShift)
}

// HasAlt returns true if Alt is pressed.
func (m Modifier) HasAlt() bool {
	return m.Has(ModAlt)
}

// HasControl returns true if Control is pressed.
func (m Modifier) HasControl() bool {
	return m.Has(ModControl)
}

// HasSuper returns true if Super is pressed.
func (m Modifier) HasSuper() bool {
	return m.Has(ModSuper)
}

// With returns a new Modifier with the specified modifier added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns a new Modifier with the specified modifier removed.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// IsEmpty returns true if no modifiers are set.
func (m Modifier) IsEmpty() bool {
	return m == ModNone
}

// Names returns the canonical names of the active modifiers in the fixed
// order Shift, Alt, Control, Super.
func (m Modifier) Names() []string {
	names := make([]string, 0, len(modifierOrder))
	for _, o := range modifierOrder {
		if m.Has(o.mod) {
			names = append(names, o.name)
		}
	}
	return names
}

// String returns the active modifiers joined by ", ", e.g. "Shift, Control".
func (m Modifier) String() string {
	return strings.Join(m.Names(), ", ")
}

// modifierNameMap maps modifier names (lowercase) to Modifier values.
var modifierNameMap = map[string]Modifier{
	"shift":   ModShift,
	"alt":     ModAlt,
	"option":  ModAlt,
	"opt":     ModAlt,
	"control": ModControl,
	"ctrl":    ModControl,
	"super":   ModSuper,
	"meta":    ModSuper,
	"cmd":     ModSuper,
	"command": ModSuper,
	"win":     ModSuper,
}

// ModifierFromName returns the Modifier for a given name (case-insensitive).
// Returns ModNone if the name is not recognized.
func ModifierFromName(name string) Modifier {
	if m, ok := modifierNameMap[strings.ToLower(strings.TrimSpace(name))]; ok {
		return m
	}
	return ModNone
}

// ParseModifiers combines a list of modifier names. Each element may itself
// hold several names separated by ",", "+" or "|". "None" and empty elements
// contribute nothing; any other unknown name is an error.
func ParseModifiers(names ...string) (Modifier, error) {
	var result Modifier
	for _, name := range names {
		parts := strings.FieldsFunc(name, func(r rune) bool {
			return r == ',' || r == '+' || r == '|'
		})
		for _, part := range parts {
			part = strings.TrimSpace(part)
			if part == "" || strings.EqualFold(part, "none") {
				continue
			}
			mod := ModifierFromName(part)
			if mod == ModNone {
				return ModNone, fmt.Errorf("unknown modifier %q", part)
			}
			result = result.With(mod)
		}
	}
	return result, nil
}
