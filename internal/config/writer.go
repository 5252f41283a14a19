package config

import (
	"regexp"
	"strings"

	"github.com/dshills/termcore/internal/input/action"
	"github.com/dshills/termcore/internal/input/binding"
	"github.com/dshills/termcore/internal/input/key"
	"github.com/dshills/termcore/internal/input/mouse"
)

const indentWidth = 4

const header = `termcore configuration

Every setting below shows its current value. Lines starting with "# - {"
in input_mapping are built-in bindings; entries added to input_mapping
extend them.`

// writer accumulates rendered lines. Its indentation level lives only as
// long as one Render call.
type writer struct {
	b      strings.Builder
	indent int
}

func (w *writer) enter() { w.indent++ }

func (w *writer) leave() {
	if w.indent > 0 {
		w.indent--
	}
}

func (w *writer) line(s string) {
	w.b.WriteString(strings.Repeat(" ", w.indent*indentWidth))
	w.b.WriteString(s)
	w.b.WriteByte('\n')
}

func (w *writer) blank() {
	w.b.WriteByte('\n')
}

func (w *writer) comment(doc string) {
	for _, l := range docLines(doc) {
		if l == "" {
			w.line("#")
			continue
		}
		w.line("# " + l)
	}
}

func (w *writer) String() string {
	return w.b.String()
}

// Render returns the document as a fully commented YAML text that the
// Reader loads back into an equal document.
func Render(d *Document) string {
	w := &writer{}
	w.comment(header)
	w.blank()
	renderFields(w, d, documentFields)
	return w.String()
}

// RenderDefault renders the built-in default document.
func RenderDefault() string {
	return Render(New())
}

var plainKey = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// mapKey returns k unquoted when YAML reads it back as the same string.
func mapKey(k string) string {
	switch strings.ToLower(k) {
	case "true", "false", "yes", "no", "on", "off", "null", "y", "n":
		return quote(k)
	}
	if plainKey.MatchString(k) {
		return k
	}
	return quote(k)
}

func renderProfiles(w *writer, d *Document) {
	w.comment("Profiles. Every profile starts from the default profile and overrides what it lists.")
	w.line("profiles:")
	w.enter()
	for i, name := range d.ProfileNames() {
		if i > 0 {
			w.blank()
		}
		w.line(mapKey(name) + ":")
		w.enter()
		renderFields(w, d.profiles[name], profileFields)
		w.leave()
	}
	w.leave()
}

func renderColorSchemes(w *writer, d *Document) {
	w.comment("Color schemes, referenced by name from a profile's colors.")
	w.line("color_schemes:")
	w.enter()
	for _, name := range d.ColorSchemeNames() {
		p := d.colorSchemes[name]
		w.line(mapKey(name) + ":")
		w.enter()
		renderFields(w, &p, paletteFields)
		w.leave()
	}
	w.leave()
}

const bindingDoc = `Input bindings. Each entry binds a key, a character or a mouse button:

  - { mods: [Control, Shift], key: Enter, mode: "Alt|~Select", action: Name, param: "value" }
  - { mods: [Alt], mouse: WheelUp, action: Name }

mode restricts the binding to terminal modes (Alt, AppCursor, AppKeypad,
Select, Insert, Search, Trace); a leading ~ requires the mode to be off.
Entries with the same mods, key and mode run their actions in file order.`

func renderBindings(w *writer, d *Document) {
	w.comment(bindingDoc)
	w.line("input_mapping:")
	w.enter()
	t := d.bindings
	renderList(w, t.Keys, func(k key.Key) string { return "key: " + k.String() })
	renderList(w, t.Chars, func(r rune) string { return "key: " + quote(key.CharName(r)) })
	renderList(w, t.Mouse, func(b mouse.Button) string { return "mouse: " + b.String() })
	w.leave()
}

func renderList[T binding.Trigger](w *writer, list binding.List[T], trigger func(T) string) {
	for i := range list {
		b := &list[i]
		for _, a := range b.BuiltinActions() {
			w.line("# - " + bindingEntry(b.Modes.String(), b.Modifiers, trigger(b.Input), a))
		}
		for _, a := range b.UserActions() {
			w.line("- " + bindingEntry(b.Modes.String(), b.Modifiers, trigger(b.Input), a))
		}
	}
}

func bindingEntry(modes string, mods key.Modifier, trigger string, a action.Action) string {
	parts := make([]string, 0, 4)
	if mods != key.ModNone {
		parts = append(parts, "mods: "+formatModifiers(mods))
	}
	parts = append(parts, trigger)
	if modes != "" {
		parts = append(parts, "mode: "+quote(modes))
	}
	parts = append(parts, "action: "+a.Name())
	for _, p := range a.Params() {
		parts = append(parts, p.Key+": "+quote(p.Value))
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}
