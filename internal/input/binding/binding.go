package binding

import (
	"slices"

	"github.com/dshills/termcore/internal/input/action"
	"github.com/dshills/termcore/internal/input/key"
	"github.com/dshills/termcore/internal/input/matchmode"
	"github.com/dshills/termcore/internal/input/mouse"
)

// Trigger is the set of input identities a binding can be keyed on.
type Trigger interface {
	key.Key | rune | mouse.Button
}

// Binding maps an input event to the actions it triggers.
type Binding[T Trigger] struct {
	// Modes is the terminal mode filter the binding applies under.
	Modes matchmode.Filter

	// Modifiers must equal the active modifiers exactly.
	Modifiers key.Modifier

	// Input is the key, character or mouse button.
	Input T

	// Actions are executed in order when the binding matches.
	Actions []action.Action

	// builtin counts the leading actions that came from the default table.
	builtin int
}

// Matches returns true if the binding applies to the given event.
func (b *Binding[T]) Matches(mods key.Modifier, input T, flags matchmode.Flags) bool {
	return b.Modifiers == mods && b.Input == input && matchmode.Matches(flags, b.Modes)
}

// SameTrigger returns true if the binding is keyed on the given triple.
func (b *Binding[T]) SameTrigger(modes matchmode.Filter, mods key.Modifier, input T) bool {
	return b.Modes == modes && b.Modifiers == mods && b.Input == input
}

// BuiltinActions returns the actions contributed by the default table.
func (b *Binding[T]) BuiltinActions() []action.Action {
	return b.Actions[:b.builtin]
}

// UserActions returns the actions contributed by configuration documents.
func (b *Binding[T]) UserActions() []action.Action {
	return b.Actions[b.builtin:]
}

func (b Binding[T]) clone() Binding[T] {
	b.Actions = append([]action.Action(nil), b.Actions...)
	return b
}

// List is an ordered binding list. Order is resolution priority.
type List[T Trigger] []Binding[T]

// Add records an action for the (modes, mods, input) triple. If a binding
// for the triple exists the action is appended to it, otherwise a new
// binding is appended to the list. builtin marks actions from the default
// table; they must be added before any user action for the same triple.
func (l *List[T]) Add(modes matchmode.Filter, mods key.Modifier, input T, a action.Action, builtin bool) {
	for i := range *l {
		b := &(*l)[i]
		if b.SameTrigger(modes, mods, input) {
			b.Actions = append(b.Actions, a)
			if builtin && b.builtin == len(b.Actions)-1 {
				b.builtin++
			}
			return
		}
	}
	nb := Binding[T]{
		Modes:     modes,
		Modifiers: mods,
		Input:     input,
		Actions:   []action.Action{a},
	}
	if builtin {
		nb.builtin = 1
	}
	*l = append(*l, nb)
}

// Find returns the binding keyed on the exact triple, or nil.
func (l List[T]) Find(modes matchmode.Filter, mods key.Modifier, input T) *Binding[T] {
	for i := range l {
		if l[i].SameTrigger(modes, mods, input) {
			return &l[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the list.
func (l List[T]) Clone() List[T] {
	if l == nil {
		return nil
	}
	out := make(List[T], len(l))
	for i := range l {
		out[i] = l[i].clone()
	}
	return out
}

// Resolve returns the actions of the first binding in list order that
// matches the event. It never blocks and never mutates the list; the
// returned slice is a copy the caller owns.
func Resolve[T Trigger](list List[T], mods key.Modifier, input T, flags matchmode.Flags) ([]action.Action, bool) {
	for i := range list {
		if list[i].Matches(mods, input, flags) {
			return slices.Clone(list[i].Actions), true
		}
	}
	return nil, false
}
