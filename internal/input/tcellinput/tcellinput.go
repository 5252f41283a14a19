// Package tcellinput translates tcell terminal events into input events
// so that a tcell front end can feed a Dispatcher.
package tcellinput

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/termcore/internal/input"
	"github.com/dshills/termcore/internal/input/action"
	"github.com/dshills/termcore/internal/input/key"
	"github.com/dshills/termcore/internal/input/mouse"
)

const pressMask = tcell.ButtonPrimary | tcell.ButtonSecondary | tcell.ButtonMiddle

// Translator converts tcell events. It remembers which mouse buttons
// are held so that drags are not reported as repeated presses and the
// final release is reported as mouse.ButtonRelease.
type Translator struct {
	pressed tcell.ButtonMask
}

// New returns a Translator with no buttons held.
func New() *Translator {
	return &Translator{}
}

// Translate converts ev. The second result is false for events that
// carry no binding trigger (resize, focus, paste markers, pure motion).
func (t *Translator) Translate(ev tcell.Event) (input.Event, bool) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return TranslateKey(e)
	case *tcell.EventMouse:
		return t.translateMouse(e)
	default:
		return input.Event{}, false
	}
}

// Dispatch translates ev and hands it to d.
func (t *Translator) Dispatch(d *input.Dispatcher, ev tcell.Event) ([]action.Action, bool) {
	in, ok := t.Translate(ev)
	if !ok {
		return nil, false
	}
	return d.Handle(in)
}

func (t *Translator) translateMouse(e *tcell.EventMouse) (input.Event, bool) {
	buttons := e.Buttons()
	mods := convertMod(e.Modifiers())

	if wheel := convertWheel(buttons); wheel != mouse.ButtonNone {
		return input.MouseEvent(mods, wheel), true
	}

	held := buttons & pressMask
	pressed := held &^ t.pressed
	released := held == 0 && t.pressed != 0
	t.pressed = held

	switch {
	case pressed&tcell.ButtonPrimary != 0:
		return input.MouseEvent(mods, mouse.ButtonLeft), true
	case pressed&tcell.ButtonMiddle != 0:
		return input.MouseEvent(mods, mouse.ButtonMiddle), true
	case pressed&tcell.ButtonSecondary != 0:
		return input.MouseEvent(mods, mouse.ButtonRight), true
	case released:
		return input.MouseEvent(mods, mouse.ButtonRelease), true
	default:
		return input.Event{}, false
	}
}

func convertWheel(b tcell.ButtonMask) mouse.Button {
	switch {
	case b&tcell.WheelUp != 0:
		return mouse.ButtonWheelUp
	case b&tcell.WheelDown != 0:
		return mouse.ButtonWheelDown
	case b&tcell.WheelLeft != 0:
		return mouse.ButtonWheelLeft
	case b&tcell.WheelRight != 0:
		return mouse.ButtonWheelRight
	default:
		return mouse.ButtonNone
	}
}

// TranslateKey converts a tcell key event. Printable input and control
// letters become character events; everything else a named key event.
func TranslateKey(e *tcell.EventKey) (input.Event, bool) {
	mods := convertMod(e.Modifiers())

	switch k := e.Key(); k {
	case tcell.KeyRune:
		return input.CharEvent(mods, e.Rune()), true
	case tcell.KeyBacktab:
		return input.KeyEvent(mods.With(key.ModShift), key.KeyTab), true
	default:
		if named := convertKey(k); named != key.KeyNone {
			return input.KeyEvent(mods, named), true
		}
		if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
			r := rune('a' + (k - tcell.KeyCtrlA))
			if mods.HasShift() {
				r = unicode.ToUpper(r)
			}
			return input.CharEvent(mods.With(key.ModControl), r), true
		}
		if k == tcell.KeyCtrlSpace {
			return input.CharEvent(mods.With(key.ModControl), ' '), true
		}
		return input.Event{}, false
	}
}

func convertKey(k tcell.Key) key.Key {
	if k >= tcell.KeyF1 && k <= tcell.KeyF20 {
		return key.KeyF1 + key.Key(k-tcell.KeyF1)
	}
	switch k {
	case tcell.KeyEscape:
		return key.KeyEscape
	case tcell.KeyEnter:
		return key.KeyEnter
	case tcell.KeyTab:
		return key.KeyTab
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return key.KeyBackspace
	case tcell.KeyInsert:
		return key.KeyInsert
	case tcell.KeyDelete:
		return key.KeyDelete
	case tcell.KeyHome:
		return key.KeyHome
	case tcell.KeyEnd:
		return key.KeyEnd
	case tcell.KeyPgUp:
		return key.KeyPageUp
	case tcell.KeyPgDn:
		return key.KeyPageDown
	case tcell.KeyUp:
		return key.KeyUpArrow
	case tcell.KeyDown:
		return key.KeyDownArrow
	case tcell.KeyLeft:
		return key.KeyLeftArrow
	case tcell.KeyRight:
		return key.KeyRightArrow
	case tcell.KeyPrint:
		return key.KeyPrintScreen
	case tcell.KeyPause:
		return key.KeyPause
	default:
		return key.KeyNone
	}
}

func convertMod(m tcell.ModMask) key.Modifier {
	var result key.Modifier
	if m&tcell.ModShift != 0 {
		result |= key.ModShift
	}
	if m&tcell.ModAlt != 0 {
		result |= key.ModAlt
	}
	if m&tcell.ModCtrl != 0 {
		result |= key.ModControl
	}
	if m&tcell.ModMeta != 0 {
		result |= key.ModSuper
	}
	return result
}
