package input

import (
	"fmt"

	"github.com/dshills/termcore/internal/input/key"
	"github.com/dshills/termcore/internal/input/mouse"
)

// Kind identifies which trigger an Event carries.
type Kind uint8

const (
	// KindKey is a named key press.
	KindKey Kind = iota
	// KindChar is a character key press.
	KindChar
	// KindMouse is a mouse button or wheel event.
	KindMouse
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindKey:
		return "key"
	case KindChar:
		return "char"
	case KindMouse:
		return "mouse"
	default:
		return "unknown"
	}
}

// Event is one input event.
type Event struct {
	Kind      Kind
	Modifiers key.Modifier
	Key       key.Key
	Char      rune
	Button    mouse.Button
}

// KeyEvent returns a named key event.
func KeyEvent(mods key.Modifier, k key.Key) Event {
	return Event{Kind: KindKey, Modifiers: mods, Key: k}
}

// CharEvent returns a character event.
func CharEvent(mods key.Modifier, r rune) Event {
	return Event{Kind: KindChar, Modifiers: mods, Char: r}
}

// MouseEvent returns a mouse event.
func MouseEvent(mods key.Modifier, b mouse.Button) Event {
	return Event{Kind: KindMouse, Modifiers: mods, Button: b}
}

// String returns a readable form such as "Shift, Control+F3".
func (e Event) String() string {
	var trigger string
	switch e.Kind {
	case KindKey:
		trigger = e.Key.String()
	case KindChar:
		trigger = key.CharName(e.Char)
	case KindMouse:
		trigger = e.Button.String()
	default:
		return fmt.Sprintf("Event(%d)", e.Kind)
	}
	if e.Modifiers == key.ModNone {
		return trigger
	}
	return e.Modifiers.String() + "+" + trigger
}
