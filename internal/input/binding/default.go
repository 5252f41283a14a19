package binding

import (
	"fmt"

	"github.com/dshills/termcore/internal/input/action"
	"github.com/dshills/termcore/internal/input/key"
	"github.com/dshills/termcore/internal/input/matchmode"
	"github.com/dshills/termcore/internal/input/mouse"
)

const (
	ctrl      = key.ModControl
	shift     = key.ModShift
	alt       = key.ModAlt
	ctrlShift = key.ModControl | key.ModShift
)

type keyDef struct {
	Mode   string
	Mods   key.Modifier
	Key    key.Key
	Action action.Action
}

type charDef struct {
	Mode   string
	Mods   key.Modifier
	Char   rune
	Action action.Action
}

type mouseDef struct {
	Mode   string
	Mods   key.Modifier
	Button mouse.Button
	Action action.Action
}

var defaultKeys = []keyDef{
	{Mods: alt, Key: key.KeyEnter, Action: action.ToggleFullscreen},
	{Mods: shift, Key: key.KeyPageUp, Action: action.ScrollPageUp},
	{Mods: shift, Key: key.KeyPageDown, Action: action.ScrollPageDown},
	{Mods: ctrl, Key: key.KeyHome, Action: action.ScrollToTop},
	{Mods: ctrl, Key: key.KeyEnd, Action: action.ScrollToBottom},
	{Mode: "~Alt", Mods: shift, Key: key.KeyUpArrow, Action: action.ScrollMarkUp},
	{Mode: "~Alt", Mods: shift, Key: key.KeyDownArrow, Action: action.ScrollMarkDown},
	{Mode: "Select", Key: key.KeyEscape, Action: action.CancelSelection},
	{Mods: ctrlShift, Key: key.KeyF3, Action: action.SearchReverse},
}

var defaultChars = []charDef{
	{Mods: ctrl, Char: '=', Action: action.IncreaseFontSize},
	{Mods: ctrlShift, Char: '+', Action: action.IncreaseFontSize},
	{Mods: ctrl, Char: '-', Action: action.DecreaseFontSize},
	{Mods: ctrlShift, Char: '_', Action: action.DecreaseFontSize},
	{Mods: ctrl, Char: '0', Action: action.ResetFontSize},
	{Mode: "Select", Mods: ctrlShift, Char: 'C', Action: action.CopySelection},
	{Mode: "Select", Mods: ctrlShift, Char: 'C', Action: action.CancelSelection},
	{Mods: ctrlShift, Char: 'V', Action: action.PasteClipboard},
	{Mods: ctrlShift, Char: 'N', Action: action.NewTerminal{}},
	{Mods: ctrlShift, Char: 'T', Action: action.CreateNewTab},
	{Mods: ctrlShift, Char: 'W', Action: action.CloseTab},
	{Mods: ctrlShift, Char: 'Q', Action: action.Quit},
	{Mods: ctrlShift, Char: 'F', Action: action.SearchReverse},
	{Mods: ctrlShift, Char: 'K', Mode: "~Alt", Action: action.ClearHistoryAndReset},
	{Mods: ctrlShift, Char: ',', Action: action.OpenConfiguration},
	{Mods: ctrlShift, Char: ' ', Action: action.ViNormalMode},
	{Mods: ctrlShift, Char: 'O', Action: action.FollowHyperlink},
}

var defaultMouse = []mouseDef{
	{Mods: ctrl, Button: mouse.ButtonWheelUp, Action: action.IncreaseFontSize},
	{Mods: ctrl, Button: mouse.ButtonWheelDown, Action: action.DecreaseFontSize},
	{Mods: alt, Button: mouse.ButtonWheelUp, Action: action.IncreaseOpacity},
	{Mods: alt, Button: mouse.ButtonWheelDown, Action: action.DecreaseOpacity},
	{Mode: "~Alt", Button: mouse.ButtonWheelUp, Action: action.ScrollUp},
	{Mode: "~Alt", Button: mouse.ButtonWheelDown, Action: action.ScrollDown},
	{Mode: "~Alt", Mods: shift, Button: mouse.ButtonWheelUp, Action: action.ScrollPageUp},
	{Mode: "~Alt", Mods: shift, Button: mouse.ButtonWheelDown, Action: action.ScrollPageDown},
	{Mode: "~Alt", Button: mouse.ButtonMiddle, Action: action.PasteSelection},
	{Mods: ctrl, Button: mouse.ButtonLeft, Action: action.FollowHyperlink},
}

// Default returns a new table holding the built-in bindings. The actions
// are marked built-in so that writers can tell them from user additions.
func Default() *Table {
	t := NewTable()
	for _, d := range defaultKeys {
		t.Keys.Add(mustFilter(d.Mode), d.Mods, d.Key, d.Action, true)
	}
	for _, d := range defaultChars {
		t.Chars.Add(mustFilter(d.Mode), d.Mods, d.Char, d.Action, true)
	}
	for _, d := range defaultMouse {
		t.Mouse.Add(mustFilter(d.Mode), d.Mods, d.Button, d.Action, true)
	}
	return t
}

func mustFilter(expr string) matchmode.Filter {
	f, err := matchmode.ParseFilter(expr)
	if err != nil {
		panic(fmt.Sprintf("binding: invalid built-in mode %q: %v", expr, err))
	}
	return f
}
