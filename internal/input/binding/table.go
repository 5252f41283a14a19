package binding

import (
	"github.com/dshills/termcore/internal/input/action"
	"github.com/dshills/termcore/internal/input/key"
	"github.com/dshills/termcore/internal/input/matchmode"
	"github.com/dshills/termcore/internal/input/mouse"
)

// Table holds the binding lists of a configuration document.
type Table struct {
	Keys  List[key.Key]
	Chars List[rune]
	Mouse List[mouse.Button]
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{}
}

// AddKey records a named-key binding.
func (t *Table) AddKey(modes matchmode.Filter, mods key.Modifier, k key.Key, a action.Action) {
	t.Keys.Add(modes, mods, k, a, false)
}

// AddChar records a character binding.
func (t *Table) AddChar(modes matchmode.Filter, mods key.Modifier, r rune, a action.Action) {
	t.Chars.Add(modes, mods, r, a, false)
}

// AddMouse records a mouse-button binding.
func (t *Table) AddMouse(modes matchmode.Filter, mods key.Modifier, b mouse.Button, a action.Action) {
	t.Mouse.Add(modes, mods, b, a, false)
}

// ResolveKey resolves a named-key event.
func (t *Table) ResolveKey(mods key.Modifier, k key.Key, flags matchmode.Flags) ([]action.Action, bool) {
	return Resolve(t.Keys, mods, k, flags)
}

// ResolveChar resolves a character event.
func (t *Table) ResolveChar(mods key.Modifier, r rune, flags matchmode.Flags) ([]action.Action, bool) {
	return Resolve(t.Chars, mods, r, flags)
}

// ResolveMouse resolves a mouse-button event.
func (t *Table) ResolveMouse(mods key.Modifier, b mouse.Button, flags matchmode.Flags) ([]action.Action, bool) {
	return Resolve(t.Mouse, mods, b, flags)
}

// Len returns the total number of bindings.
func (t *Table) Len() int {
	return len(t.Keys) + len(t.Chars) + len(t.Mouse)
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	return &Table{
		Keys:  t.Keys.Clone(),
		Chars: t.Chars.Clone(),
		Mouse: t.Mouse.Clone(),
	}
}
