// Package key defines the keyboard vocabulary shared by configuration and
// input handling:
//
//   - Key: a named, non-character key (function keys, arrows, keypad)
//   - Modifier: the set of active modifier keys
//   - Trigger parsing for binding definitions, where a single character
//     (or a character alias such as "Plus") selects a character binding and
//     a longer name selects a named key
//
// # Names
//
// Names are matched case-insensitively. Modifiers accept the usual
// aliases ("Ctrl", "Meta", "Cmd" and so on) but always print with their
// canonical names in the fixed order Shift, Alt, Control, Super.
package key
