package key

import (
	"fmt"
	"strings"
)

// Key represents a named keyboard key.
// Character keys are not Keys; they are bound and resolved by rune.
type Key uint16

const (
	// KeyNone represents no key.
	KeyNone Key = iota

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyF13
	KeyF14
	KeyF15
	KeyF16
	KeyF17
	KeyF18
	KeyF19
	KeyF20

	// Cursor keys
	KeyUpArrow
	KeyDownArrow
	KeyLeftArrow
	KeyRightArrow

	// Editing and navigation
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyInsert
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown

	// Keypad keys
	KeyNumpad0
	KeyNumpad1
	KeyNumpad2
	KeyNumpad3
	KeyNumpad4
	KeyNumpad5
	KeyNumpad6
	KeyNumpad7
	KeyNumpad8
	KeyNumpad9
	KeyNumpadAdd
	KeyNumpadSubtract
	KeyNumpadMultiply
	KeyNumpadDivide
	KeyNumpadDecimal
	KeyNumpadEnter
	KeyNumpadEqual

	// Lock and system keys
	KeyCapsLock
	KeyNumLock
	KeyScrollLock
	KeyPrintScreen
	KeyPause
	KeyMenu

	keyCount
)

// keyNames holds the canonical configuration spelling of each key.
var keyNames = [keyCount]string{
	KeyNone:           "None",
	KeyF1:             "F1",
	KeyF2:             "F2",
	KeyF3:             "F3",
	KeyF4:             "F4",
	KeyF5:             "F5",
	KeyF6:             "F6",
	KeyF7:             "F7",
	KeyF8:             "F8",
	KeyF9:             "F9",
	KeyF10:            "F10",
	KeyF11:            "F11",
	KeyF12:            "F12",
	KeyF13:            "F13",
	KeyF14:            "F14",
	KeyF15:            "F15",
	KeyF16:            "F16",
	KeyF17:            "F17",
	KeyF18:            "F18",
	KeyF19:            "F19",
	KeyF20:            "F20",
	KeyUpArrow:        "UpArrow",
	KeyDownArrow:      "DownArrow",
	KeyLeftArrow:      "LeftArrow",
	KeyRightArrow:     "RightArrow",
	KeyEscape:         "Escape",
	KeyEnter:          "Enter",
	KeyTab:            "Tab",
	KeyBackspace:      "Backspace",
	KeyInsert:         "Insert",
	KeyDelete:         "Delete",
	KeyHome:           "Home",
	KeyEnd:            "End",
	KeyPageUp:         "PageUp",
	KeyPageDown:       "PageDown",
	KeyNumpad0:        "Numpad_0",
	KeyNumpad1:        "Numpad_1",
	KeyNumpad2:        "Numpad_2",
	KeyNumpad3:        "Numpad_3",
	KeyNumpad4:        "Numpad_4",
	KeyNumpad5:        "Numpad_5",
	KeyNumpad6:        "Numpad_6",
	KeyNumpad7:        "Numpad_7",
	KeyNumpad8:        "Numpad_8",
	KeyNumpad9:        "Numpad_9",
	KeyNumpadAdd:      "Numpad_Add",
	KeyNumpadSubtract: "Numpad_Subtract",
	KeyNumpadMultiply: "Numpad_Multiply",
	KeyNumpadDivide:   "Numpad_Divide",
	KeyNumpadDecimal:  "Numpad_Decimal",
	KeyNumpadEnter:    "Numpad_Enter",
	KeyNumpadEqual:    "Numpad_Equal",
	KeyCapsLock:       "CapsLock",
	KeyNumLock:        "NumLock",
	KeyScrollLock:     "ScrollLock",
	KeyPrintScreen:    "PrintScreen",
	KeyPause:          "Pause",
	KeyMenu:           "Menu",
}

// String returns the canonical name for the key.
func (k Key) String() string {
	if k < keyCount {
		return keyNames[k]
	}
	return fmt.Sprintf("Key(%d)", k)
}

// IsFunctionKey returns true if this is a function key (F1-F20).
func (k Key) IsFunctionKey() bool {
	return k >= KeyF1 && k <= KeyF20
}

// IsArrowKey returns true if this is an arrow key.
func (k Key) IsArrowKey() bool {
	return k >= KeyUpArrow && k <= KeyRightArrow
}

// IsNavigationKey returns true if this is a navigation key.
func (k Key) IsNavigationKey() bool {
	return k.IsArrowKey() || k == KeyHome || k == KeyEnd || k == KeyPageUp || k == KeyPageDown
}

// IsKeypadKey returns true if this is a keypad key.
func (k Key) IsKeypadKey() bool {
	return k >= KeyNumpad0 && k <= KeyNumpadEqual
}

// keyNameMap maps key names (lowercase) to Key values.
var keyNameMap = func() map[string]Key {
	m := make(map[string]Key, int(keyCount)+16)
	for k := KeyNone; k < keyCount; k++ {
		m[strings.ToLower(keyNames[k])] = k
	}
	// Aliases
	m["esc"] = KeyEscape
	m["return"] = KeyEnter
	m["up"] = KeyUpArrow
	m["down"] = KeyDownArrow
	m["left"] = KeyLeftArrow
	m["right"] = KeyRightArrow
	m["ins"] = KeyInsert
	m["del"] = KeyDelete
	m["pgup"] = KeyPageUp
	m["pgdn"] = KeyPageDown
	m["pagedn"] = KeyPageDown
	return m
}()

// KeyFromName returns the Key for a given name (case-insensitive).
// Returns KeyNone if the name is not recognized.
func KeyFromName(name string) Key {
	name = strings.ToLower(strings.TrimSpace(name))
	if k, ok := keyNameMap[name]; ok {
		return k
	}
	return KeyNone
}

// charAliases maps spelled-out names to the characters they stand for.
// Binding definitions use them where the literal character would need
// quoting.
var charAliases = map[string]rune{
	"space":        ' ',
	"plus":         '+',
	"minus":        '-',
	"equal":        '=',
	"comma":        ',',
	"period":       '.',
	"slash":        '/',
	"backslash":    '\\',
	"semicolon":    ';',
	"apostrophe":   '\'',
	"quote":        '"',
	"leftbracket":  '[',
	"rightbracket": ']',
	"graveaccent":  '`',
	"hash":         '#',
	"colon":        ':',
	"pipe":         '|',
}

// charNames is the reverse of charAliases, used when printing.
var charNames = map[rune]string{
	' ':  "Space",
	'+':  "Plus",
	'-':  "Minus",
	'=':  "Equal",
	',':  "Comma",
	'.':  "Period",
	'/':  "Slash",
	'\\': "Backslash",
	';':  "Semicolon",
	'\'': "Apostrophe",
	'"':  "Quote",
	'[':  "LeftBracket",
	']':  "RightBracket",
	'`':  "GraveAccent",
	'#':  "Hash",
	':':  "Colon",
	'|':  "Pipe",
}

// CharName returns the name used for a character in binding definitions:
// an alias for punctuation that is awkward to write unquoted, otherwise the
// character itself.
func CharName(r rune) string {
	if name, ok := charNames[r]; ok {
		return name
	}
	return string(r)
}

// ParseTrigger interprets a binding trigger name. A single character, or a
// character alias, yields a character trigger (isChar is true). Anything
// else must name a Key.
func ParseTrigger(s string) (k Key, r rune, isChar bool, err error) {
	if runes := []rune(s); len(runes) == 1 {
		return KeyNone, runes[0], true, nil
	}

	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return KeyNone, 0, false, fmt.Errorf("empty key name")
	}
	if alias, ok := charAliases[strings.ToLower(trimmed)]; ok {
		return KeyNone, alias, true, nil
	}
	if k := KeyFromName(trimmed); k != KeyNone {
		return k, 0, false, nil
	}
	return KeyNone, 0, false, fmt.Errorf("unknown key %q", s)
}
