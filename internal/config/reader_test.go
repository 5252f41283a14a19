package config

import (
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/termcore/internal/config/loader"
	"github.com/dshills/termcore/internal/input/action"
	"github.com/dshills/termcore/internal/input/binding"
	"github.com/dshills/termcore/internal/input/key"
	"github.com/dshills/termcore/internal/input/matchmode"
	"github.com/dshills/termcore/internal/input/mouse"
	"github.com/dshills/termcore/internal/logging"
)

var testHost = hostDefaults{fontFamily: "monospace", shell: "/bin/sh"}

func newTestReader(opts ...Option) *Reader {
	return NewReader(append([]Option{withHost(testHost)}, opts...)...)
}

func readYAML(t *testing.T, src string) (*Document, *Reader) {
	t.Helper()
	r := newTestReader()
	return r.Read([]byte(src), loader.FormatYAML), r
}

func issuePaths(issues []*FieldError) []string {
	paths := make([]string, len(issues))
	for i, fe := range issues {
		paths[i] = fe.Path
	}
	return paths
}

func findIssue(t *testing.T, issues []*FieldError, path string) *FieldError {
	t.Helper()
	for _, fe := range issues {
		if fe.Path == path {
			return fe
		}
	}
	t.Fatalf("no issue for %s in %v", path, issuePaths(issues))
	return nil
}

func TestDefaultRoundTrip(t *testing.T) {
	want := newDocument(testHost)
	text := Render(want)

	got, r := readYAML(t, text)
	require.NoError(t, r.Err())
	assert.Empty(t, r.Issues())
	assert.Equal(t, want, got)
	assert.Equal(t, text, Render(got))
}

func TestRoundTripWithUserContent(t *testing.T) {
	src := `
default_profile: work
live_config: true
word_delimiters: " ,;"
experimental:
  sixel_ng: true
color_schemes:
  solar:
    default:
      background: "#002b36"
    bright:
      red: "#ff5555"
profiles:
  work:
    shell:
      program: /usr/bin/zsh
      arguments: [-l, -i]
      environment:
        TERM: xterm-256color
        LANG: en_US.UTF-8
    history:
      limit: unbounded
    font:
      regular:
        family: Fira Code
        features: [ss01, zero]
    colors:
      light: default
      dark: solar
    frozen_dec_modes:
      2026: true
      1: false
  "my profile":
    fullscreen: true
input_mapping:
  - { mods: [Alt], key: Enter, action: ToggleTitleBar }
  - { mods: [Control], key: "a", mode: "Alt|~Select", action: SendChars, chars: "\x01" }
  - { mouse: Right, action: PasteClipboard }
  - { mods: [Control, Shift], key: Plus, action: SwitchToTab, position: 2 }
`
	first, r := readYAML(t, src)
	require.Empty(t, r.Issues())

	second, r := readYAML(t, Render(first))
	require.NoError(t, r.Err())
	require.Empty(t, r.Issues())
	assert.Equal(t, first, second)
}

func TestProfileInheritance(t *testing.T) {
	for _, src := range []string{
		`
profiles:
  main:
    terminal_size: {columns: 120}
    font: {size: 14}
  work:
    history: {limit: unbounded}
    shell: {program: /usr/bin/zsh}
`,
		`
profiles:
  work:
    history: {limit: unbounded}
    shell: {program: /usr/bin/zsh}
  main:
    terminal_size: {columns: 120}
    font: {size: 14}
`,
	} {
		doc, r := readYAML(t, src)
		require.Empty(t, r.Issues())

		main := doc.Profile("main")
		assert.Equal(t, 120, main.TerminalSize.Columns.Value())
		assert.Equal(t, 14.0, main.Font.Size.Value())
		assert.Equal(t, LimitLines(1000), main.History.Limit.Value())

		want := main.Clone()
		want.History.Limit.Set(Unbounded())
		want.Shell.Program.Set("/usr/bin/zsh")
		assert.Equal(t, want, doc.Profile("work"))
	}
}

func TestEmptyProfileEqualsDefaultProfile(t *testing.T) {
	doc, _ := readYAML(t, `
profiles:
  main:
    maximized: true
  empty: {}
  null_entry:
`)
	assert.Equal(t, doc.Profile("main"), doc.Profile("empty"))
	assert.Equal(t, doc.Profile("main"), doc.Profile("null_entry"))
	assert.True(t, doc.Profile("empty").Maximized.Value())
}

func TestDefaultProfileWithoutProfiles(t *testing.T) {
	doc, r := readYAML(t, "default_profile: main\n")
	require.Empty(t, r.Issues())
	assert.Equal(t, newProfile(testHost), doc.Profile("main"))
	assert.Equal(t, []string{"main"}, doc.ProfileNames())
}

func TestMissingDefaultProfileIsCreated(t *testing.T) {
	doc, r := readYAML(t, `
default_profile: work
profiles:
  other:
    terminal_size: {lines: 50}
`)
	require.Empty(t, r.Issues())
	assert.Equal(t, newProfile(testHost), doc.Profile("work"))
	assert.Equal(t, 50, doc.Profile("other").TerminalSize.Lines.Value())
	assert.Equal(t, []string{"work", "other"}, doc.ProfileNames())

	_, err := doc.LookupProfile("main")
	assert.ErrorIs(t, err, ErrUnknownProfile)
}

func TestBindingAccumulation(t *testing.T) {
	doc, r := readYAML(t, `
input_mapping:
  - { mods: [Control], key: F5, action: SendChars, chars: "a" }
  - { mods: [Control], key: F5, action: ScrollToTop }
`)
	require.Empty(t, r.Issues())

	got, ok := doc.Bindings().ResolveKey(key.ModControl, key.KeyF5, 0)
	require.True(t, ok)
	assert.Equal(t, []action.Action{action.SendChars{Chars: "a"}, action.ScrollToTop}, got)
}

func TestUserBindingExtendsBuiltin(t *testing.T) {
	doc, r := readYAML(t, `
input_mapping:
  - { mods: [Alt], key: Enter, action: ToggleTitleBar }
`)
	require.Empty(t, r.Issues())

	got, ok := doc.Bindings().ResolveKey(key.ModAlt, key.KeyEnter, 0)
	require.True(t, ok)
	assert.Equal(t, []action.Action{action.ToggleFullscreen, action.ToggleTitleBar}, got)

	b := doc.Bindings().Keys.Find(matchmode.AnyFilter(), key.ModAlt, key.KeyEnter)
	require.NotNil(t, b)
	assert.Equal(t, []action.Action{action.ToggleFullscreen}, b.BuiltinActions())
	assert.Equal(t, []action.Action{action.ToggleTitleBar}, b.UserActions())
	assert.Equal(t, binding.Default().Len(), doc.Bindings().Len())
}

func TestAltEnterTogglesFullscreen(t *testing.T) {
	table := New().Bindings()
	for f := 0; f < 1<<matchmode.FlagCount; f++ {
		got, ok := table.ResolveKey(key.ModAlt, key.KeyEnter, matchmode.Flags(f))
		require.True(t, ok)
		assert.Equal(t, []action.Action{action.ToggleFullscreen}, got)
	}
}

func TestExactModifierMatching(t *testing.T) {
	doc, r := readYAML(t, `
input_mapping:
  - { mods: [Control], key: "x", action: Quit }
  - { mods: [Control, Shift], key: "y", action: Quit }
`)
	require.Empty(t, r.Issues())
	table := doc.Bindings()

	_, ok := table.ResolveChar(key.ModControl|key.ModShift, 'x', 0)
	assert.False(t, ok)
	_, ok = table.ResolveChar(key.ModControl, 'y', 0)
	assert.False(t, ok)

	got, ok := table.ResolveChar(key.ModControl, 'x', 0)
	require.True(t, ok)
	assert.Equal(t, []action.Action{action.Quit}, got)
}

func TestBindingSyntax(t *testing.T) {
	doc, r := readYAML(t, `
input_mapping:
  - { mods: [Alt], mouse: Right, mode: "~Select", action: PasteClipboard }
  - { mods: Control, key: Plus, action: SwitchToTab, position: 3 }
  - { key: F9, mode: Alt, action: changeprofile, name: work }
  - { mods: [Super], key: "1", action: NewTerminal }
`)
	require.Empty(t, r.Issues())
	table := doc.Bindings()

	got, ok := table.ResolveMouse(key.ModAlt, mouse.ButtonRight, 0)
	require.True(t, ok)
	assert.Equal(t, []action.Action{action.PasteClipboard}, got)
	_, ok = table.ResolveMouse(key.ModAlt, mouse.ButtonRight, matchmode.Flags(0).With(matchmode.Select))
	assert.False(t, ok)

	got, ok = table.ResolveChar(key.ModControl, '+', 0)
	require.True(t, ok)
	assert.Equal(t, []action.Action{action.SwitchToTab{Position: 3}}, got)

	_, ok = table.ResolveKey(key.ModNone, key.KeyF9, 0)
	assert.False(t, ok)
	got, ok = table.ResolveKey(key.ModNone, key.KeyF9, matchmode.Flags(0).With(matchmode.AlternateScreen))
	require.True(t, ok)
	assert.Equal(t, []action.Action{action.ChangeProfile{Profile: "work"}}, got)

	got, ok = table.ResolveChar(key.ModSuper, '1', 0)
	require.True(t, ok)
	assert.Equal(t, []action.Action{action.NewTerminal{}}, got)
}

func TestInvalidBindings(t *testing.T) {
	doc, r := readYAML(t, `
input_mapping:
  - { key: F1, action: NoSuchAction }
  - { key: Hyper, action: Quit }
  - { key: F1, mouse: Left, action: Quit }
  - { key: F1 }
  - { key: F1, mode: "Alt|~Alt", action: Quit }
  - { mods: [Hyper], key: F1, action: Quit }
  - { key: F1, action: SendChars }
  - just a string
  - { mouse: Left, action: Quit }
`)
	require.Len(t, r.Issues(), 8)
	for i, fe := range r.Issues() {
		assert.ErrorIs(t, fe, ErrInvalidBinding, "issue %d: %v", i, fe)
		assert.Positive(t, fe.Line)
	}
	assert.ErrorIs(t, r.Issues()[0], action.ErrUnknownAction)
	assert.ErrorIs(t, r.Issues()[6], action.ErrMissingParam)
	assert.Equal(t, "input_mapping[7]", r.Issues()[7].Path)

	want := binding.Default()
	want.AddMouse(matchmode.AnyFilter(), key.ModNone, mouse.ButtonLeft, action.Quit)
	assert.Equal(t, want, doc.Bindings())
}

func TestNullBindingValuesAreMissing(t *testing.T) {
	doc, r := readYAML(t, `
input_mapping:
  - { mods: [Control], key: F1, action: SendChars, chars: ~ }
  - { mods: ~, key: F2, mode: ~, action: NewTerminal, profile: null }
  - { key: ~, action: Quit }
`)
	require.Len(t, r.Issues(), 2)
	assert.ErrorIs(t, r.Issues()[0], action.ErrMissingParam)
	assert.Equal(t, "input_mapping[2]", r.Issues()[1].Path)

	_, ok := doc.Bindings().ResolveKey(key.ModControl, key.KeyF1, 0)
	assert.False(t, ok)
	got, ok := doc.Bindings().ResolveKey(key.ModNone, key.KeyF2, 0)
	require.True(t, ok)
	assert.Equal(t, []action.Action{action.NewTerminal{}}, got)
	_, ok = doc.Bindings().ResolveChar(key.ModNone, '~', 0)
	assert.False(t, ok)
}

func TestInputMappingNotAList(t *testing.T) {
	doc, r := readYAML(t, "input_mapping: {key: F1}\n")
	require.Len(t, r.Issues(), 1)
	assert.ErrorIs(t, r.Issues()[0], ErrInvalidBinding)
	assert.Equal(t, binding.Default(), doc.Bindings())
}

func TestMalformedDocument(t *testing.T) {
	for name, src := range map[string]string{
		"syntax":   "profiles:\n  main: [unclosed\n    - {\n",
		"tabs":     "profiles:\n\tmain: {}\n",
		"sequence": "- a\n- b\n",
		"scalar":   "just text\n",
	} {
		t.Run(name, func(t *testing.T) {
			doc, r := readYAML(t, src)
			assert.Equal(t, newDocument(testHost), doc)
			assert.Empty(t, r.Issues())

			var pe *loader.ParseError
			require.ErrorAs(t, r.Err(), &pe)
		})
	}
}

func TestEmptyDocument(t *testing.T) {
	for _, src := range []string{"", "\n", "# only a comment\n", "~\n"} {
		doc, r := readYAML(t, src)
		require.NoError(t, r.Err())
		assert.Equal(t, newDocument(testHost), doc)
	}
}

func TestFieldErrorsKeepPriorValue(t *testing.T) {
	src := `live_config: maybe
profiles:
  main:
    terminal_size: {columns: wide, lines: 40}
    history: {scroll_multiplier: 0}
    terminal_id: VT999
    bell: {volume: 2}
    margins: 7
  work:
    terminal_size: {columns: -5}
`
	doc, r := readYAML(t, src)
	require.NoError(t, r.Err())
	assert.ElementsMatch(t, []string{
		"live_config",
		"profiles.main.terminal_size.columns",
		"profiles.main.history.scroll_multiplier",
		"profiles.main.terminal_id",
		"profiles.main.bell.volume",
		"profiles.main.margins",
		"profiles.work.terminal_size.columns",
	}, issuePaths(r.Issues()))

	main := doc.Profile("main")
	assert.False(t, doc.LiveConfig.Value())
	assert.Equal(t, 80, main.TerminalSize.Columns.Value())
	assert.Equal(t, 40, main.TerminalSize.Lines.Value())
	assert.Equal(t, 3, main.History.ScrollMultiplier.Value())
	assert.Equal(t, VT525, main.TerminalID.Value())
	assert.Equal(t, 1.0, main.Bell.Volume.Value())
	assert.Equal(t, 40, doc.Profile("work").TerminalSize.Lines.Value())
	assert.Equal(t, 80, doc.Profile("work").TerminalSize.Columns.Value())

	columns := findIssue(t, r.Issues(), "profiles.main.terminal_size.columns")
	assert.ErrorIs(t, columns, ErrInvalidValue)
	assert.Equal(t, 4, columns.Line)
	assert.ErrorIs(t, findIssue(t, r.Issues(), "profiles.main.history.scroll_multiplier"), ErrOutOfRange)
	assert.ErrorIs(t, findIssue(t, r.Issues(), "profiles.main.bell.volume"), ErrOutOfRange)
}

func TestDurationOutOfRange(t *testing.T) {
	doc, r := readYAML(t, `
early_exit_threshold: 9223372036855
profiles:
  main:
    highlight_timeout: 9999999999999
    input_modes:
      insert:
        cursor: {blinking_interval: -1}
`)
	assert.ElementsMatch(t, []string{
		"early_exit_threshold",
		"profiles.main.highlight_timeout",
		"profiles.main.input_modes.insert.cursor.blinking_interval",
	}, issuePaths(r.Issues()))
	for _, fe := range r.Issues() {
		assert.ErrorIs(t, fe, ErrOutOfRange)
	}

	main := doc.Profile("main")
	assert.Equal(t, 6*time.Second, doc.EarlyExitThreshold.Value())
	assert.Equal(t, 300*time.Millisecond, main.HighlightTimeout.Value())
	assert.Equal(t, 500*time.Millisecond, main.InputModes.Insert.Cursor.BlinkingInterval.Value())
}

func TestBackgroundAndTabWidth(t *testing.T) {
	doc, r := readYAML(t, `
profiles:
  main:
    tab_width: 4
    background: {opacity: 0.9, blur: true}
  glass:
    background: {opacity: 0.5}
  broken:
    tab_width: -1
    background: {opacity: 1.5}
`)
	assert.ElementsMatch(t, []string{
		"profiles.broken.tab_width",
		"profiles.broken.background.opacity",
	}, issuePaths(r.Issues()))

	main := doc.Profile("main")
	assert.Equal(t, 4, main.TabWidth.Value())
	assert.Equal(t, 0.9, main.Background.Opacity.Value())
	assert.True(t, main.Background.Blur.Value())

	glass := doc.Profile("glass")
	assert.Equal(t, 0.5, glass.Background.Opacity.Value())
	assert.True(t, glass.Background.Blur.Value())
	assert.Equal(t, 4, glass.TabWidth.Value())
	assert.Equal(t, main, doc.Profile("broken"))

	again, r := readYAML(t, Render(doc))
	require.Empty(t, r.Issues())
	assert.Equal(t, doc, again)
}

func TestUnknownKeysIgnored(t *testing.T) {
	doc, r := readYAML(t, `
no_such_key: 1
profiles:
  main:
    bogus: true
    font:
      regular: {family: monospace, ligatures: on}
`)
	assert.Empty(t, r.Issues())
	assert.Equal(t, newDocument(testHost), doc)
}

func TestUnknownKeySuggestion(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: slog.LevelDebug, Format: logging.FormatJSON, Output: &buf})
	r := newTestReader(WithLogger(logger))
	r.Read([]byte("profiles:\n  main:\n    shel: /bin/zsh\n    font:\n      regular: {famly: mono}\n"), loader.FormatYAML)
	require.Empty(t, r.Issues())

	out := buf.String()
	assert.Contains(t, out, `"path":"profiles.main.shel"`)
	assert.Contains(t, out, `"suggestion":"shell"`)
	assert.Contains(t, out, `"suggestion":"family"`)
}

func TestHistoryLimit(t *testing.T) {
	tests := []struct {
		value string
		want  HistoryLimit
	}{
		{"-1", Unbounded()},
		{"unbounded", Unbounded()},
		{"Infinite", Unbounded()},
		{"0", LimitLines(0)},
		{"5000", LimitLines(5000)},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			doc, r := readYAML(t, "profiles:\n  main:\n    history:\n      limit: "+tt.value+"\n")
			require.Empty(t, r.Issues())
			assert.Equal(t, tt.want, doc.Profile("main").History.Limit.Value())
		})
	}

	assert.NotEqual(t, LimitLines(0), Unbounded())
	assert.Equal(t, -1, Unbounded().Lines())

	_, r := readYAML(t, "profiles:\n  main:\n    history:\n      limit: -7\n")
	require.Len(t, r.Issues(), 1)
	assert.ErrorIs(t, r.Issues()[0], ErrOutOfRange)
}

func TestFontDescription(t *testing.T) {
	doc, r := readYAML(t, `
profiles:
  main:
    font:
      regular: Fira Code
      bold:
        weight: extra_bold
        features: [ss01, zero]
      italic:
        weight: heavy
`)
	require.Len(t, r.Issues(), 1)
	assert.Equal(t, "profiles.main.font.italic", r.Issues()[0].Path)

	fonts := doc.Profile("main").Font
	assert.Equal(t, FontDescription{Family: "Fira Code", Weight: WeightNormal}, fonts.Regular.Value())
	assert.Equal(t, FontDescription{
		Family:   "monospace",
		Weight:   WeightExtraBold,
		Features: []string{"ss01", "zero"},
	}, fonts.Bold.Value())
	assert.Equal(t, FontDescription{Family: "monospace", Weight: WeightNormal, Slant: SlantItalic}, fonts.Italic.Value())
}

func TestColorConfig(t *testing.T) {
	doc, r := readYAML(t, `
color_schemes:
  solar:
    default:
      background: "#002b36"
profiles:
  main:
    colors:
      light: default
      dark: solar
  work:
    colors: solar
  broken:
    colors: nope
`)
	require.Len(t, r.Issues(), 1)
	assert.Equal(t, "profiles.broken.colors", r.Issues()[0].Path)
	assert.ErrorIs(t, r.Issues()[0], ErrUnknownScheme)

	dual, ok := doc.Profile("main").Colors.Value().(DualColorConfig)
	require.True(t, ok)
	assert.Equal(t, DefaultSchemeName, dual.For(PreferLight).Name)
	dark := dual.For(PreferDark)
	assert.Equal(t, "solar", dark.Name)
	assert.Equal(t, "#002b36", dark.Palette.DefaultBackground.Hex())
	assert.Equal(t, "#d0d0d0", dark.Palette.DefaultForeground.Hex())

	simple, ok := doc.Profile("work").Colors.Value().(SimpleColorConfig)
	require.True(t, ok)
	assert.Equal(t, "solar", simple.For(PreferLight).Name)

	assert.Equal(t, doc.Profile("main").Colors.Value(), doc.Profile("broken").Colors.Value())
	assert.Equal(t, []string{"default", "solar"}, doc.ColorSchemeNames())
}

func TestNullColorsKeepDefault(t *testing.T) {
	doc, r := readYAML(t, `
profiles:
  main:
    colors: ~
`)
	require.Empty(t, r.Issues())
	assert.Equal(t, NewProfile().Colors.Value(), doc.Profile("main").Colors.Value())
}

func TestRedefinedDefaultSchemeRelinksProfiles(t *testing.T) {
	doc, r := readYAML(t, `
color_schemes:
  default:
    default: {foreground: "#ffffff"}
    normal: {red: "#aa0000"}
`)
	require.Empty(t, r.Issues())
	ref := doc.Profile("main").Colors.Value().For(PreferDark)
	assert.Equal(t, "#ffffff", ref.Palette.DefaultForeground.Hex())
	assert.Equal(t, "#aa0000", ref.Palette.Normal[1].Hex())

	pal, ok := doc.ColorScheme(DefaultSchemeName)
	require.True(t, ok)
	assert.Equal(t, pal, ref.Palette)
}

func TestInvalidColor(t *testing.T) {
	doc, r := readYAML(t, `
color_schemes:
  mono:
    cursor: {default: "not-a-color"}
`)
	require.Len(t, r.Issues(), 1)
	assert.Equal(t, "color_schemes.mono.cursor.default", r.Issues()[0].Path)
	pal, _ := doc.ColorScheme("mono")
	assert.Equal(t, DefaultPalette(), pal)
}

func TestGlobalSettings(t *testing.T) {
	doc, r := readYAML(t, `
read_buffer_size: 8192
early_exit_threshold: 1500
bypass_mouse_protocol_modifier: [Control, Alt]
mouse_block_selection_modifier: Alt
on_mouse_select: CopyToClipboard
images: {max_width: 1920}
renderer: {backend: software}
`)
	require.Empty(t, r.Issues())
	assert.Equal(t, uint(8192), doc.ReadBufferSize.Value())
	assert.Equal(t, 1500*time.Millisecond, doc.EarlyExitThreshold.Value())
	assert.Equal(t, key.ModAlt|key.ModControl, doc.BypassMouseProtocolModifier.Value())
	assert.Equal(t, key.ModAlt, doc.MouseBlockSelectionModifier.Value())
	assert.Equal(t, CopyToClipboard, doc.OnMouseSelect.Value())
	assert.Equal(t, 1920, doc.Images.MaxWidth.Value())
	assert.Equal(t, 4096, doc.Images.SixelRegisterCount.Value())
	assert.Equal(t, BackendSoftware, doc.Renderer.Backend.Value())

	_, r = readYAML(t, "read_buffer_size: -1\ndefault_profile: \"\"\n")
	assert.ElementsMatch(t, []string{"read_buffer_size", "default_profile"}, issuePaths(r.Issues()))
}

func TestTOMLDocument(t *testing.T) {
	src := `
default_profile = "work"
live_config = true

[profiles.work.terminal_size]
columns = 132

[profiles.work.font]
size = 10.5

[[input_mapping]]
mods = ["Control"]
key = "F6"
action = "NewTerminal"
profile = "work"
`
	r := newTestReader()
	doc := r.Read([]byte(src), loader.FormatTOML)
	require.NoError(t, r.Err())
	require.Empty(t, r.Issues())

	assert.Equal(t, "work", doc.DefaultProfileName.Value())
	assert.True(t, doc.LiveConfig.Value())
	assert.Equal(t, 132, doc.Profile("work").TerminalSize.Columns.Value())
	assert.Equal(t, 10.5, doc.DefaultProfile().Font.Size.Value())

	got, ok := doc.Bindings().ResolveKey(key.ModControl, key.KeyF6, 0)
	require.True(t, ok)
	assert.Equal(t, []action.Action{action.NewTerminal{Profile: "work"}}, got)

	doc = r.Read([]byte("columns = = 3"), loader.FormatTOML)
	var pe *loader.ParseError
	require.ErrorAs(t, r.Err(), &pe)
	assert.Equal(t, newDocument(testHost), doc)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	r := newTestReader()
	doc := r.LoadFile(filepath.Join(dir, "missing.yml"))
	assert.ErrorIs(t, r.Err(), fs.ErrNotExist)
	assert.Equal(t, newDocument(testHost), doc)

	yml := filepath.Join(dir, "termcore.yml")
	require.NoError(t, os.WriteFile(yml, []byte("profiles:\n  main:\n    fullscreen: true\n"), 0o644))
	doc = r.LoadFile(yml)
	require.NoError(t, r.Err())
	assert.True(t, doc.Profile("main").Fullscreen.Value())

	tml := filepath.Join(dir, "termcore.toml")
	require.NoError(t, os.WriteFile(tml, []byte("[profiles.main]\nmaximized = true\n"), 0o644))
	doc = r.LoadFile(tml)
	require.NoError(t, r.Err())
	assert.True(t, doc.Profile("main").Maximized.Value())
	assert.False(t, doc.Profile("main").Fullscreen.Value())
}

func TestEnvOverrides(t *testing.T) {
	environ := []string{
		"TERMCORE_LIVE_CONFIG=true",
		"TERMCORE_PROFILES__MAIN__TAB_WIDTH=4",
		"TERMCORE_PROFILES__WORK__BACKGROUND__OPACITY=0.5",
		"TERMCORE_PROFILES__MAIN__TERMINAL_SIZE__COLUMNS=wide",
		"TERMCORE_REFLOW_ON_RESIZE__X=1",
		"TERMCORE_LOG_LEVEL=debug",
	}
	r := newTestReader(WithEnv(environ))
	doc := r.Read([]byte("live_config: false\nreflow_on_resize: true\nprofiles:\n  main:\n    tab_width: 2\n"), loader.FormatYAML)
	require.NoError(t, r.Err())

	assert.ElementsMatch(t, []string{
		"profiles.main.terminal_size.columns",
		"reflow_on_resize.x",
	}, issuePaths(r.Issues()))
	assert.ErrorIs(t, findIssue(t, r.Issues(), "reflow_on_resize.x"), loader.ErrOverridePath)
	assert.Zero(t, findIssue(t, r.Issues(), "reflow_on_resize.x").Line)
	assert.Zero(t, findIssue(t, r.Issues(), "profiles.main.terminal_size.columns").Line)

	assert.True(t, doc.LiveConfig.Value())
	assert.True(t, doc.ReflowOnResize.Value())
	assert.Equal(t, 4, doc.Profile("main").TabWidth.Value())
	assert.Equal(t, 80, doc.Profile("main").TerminalSize.Columns.Value())
	work := doc.Profile("work")
	assert.Equal(t, 4, work.TabWidth.Value())
	assert.Equal(t, 0.5, work.Background.Opacity.Value())

	missing := r.LoadFile(filepath.Join(t.TempDir(), "missing.yml"))
	assert.ErrorIs(t, r.Err(), fs.ErrNotExist)
	assert.True(t, missing.LiveConfig.Value())
	assert.Equal(t, 4, missing.Profile("main").TabWidth.Value())
}

func counterValue(t *testing.T, reg *prometheus.Registry, name, label, value string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			matched := label == ""
			for _, lp := range m.GetLabel() {
				if lp.GetName() == label && lp.GetValue() == value {
					matched = true
				}
			}
			if matched {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestReaderMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := newTestReader(WithMetrics(NewMetrics(reg)))

	r.Read([]byte("live_config: true\n"), loader.FormatYAML)
	r.Read([]byte("live_config: 3\nreflow_on_resize: no way\n"), loader.FormatYAML)
	r.Read([]byte("{"), loader.FormatYAML)

	assert.Equal(t, 1.0, counterValue(t, reg, "termcore_config_loads_total", "result", "ok"))
	assert.Equal(t, 1.0, counterValue(t, reg, "termcore_config_loads_total", "result", "partial"))
	assert.Equal(t, 1.0, counterValue(t, reg, "termcore_config_loads_total", "result", "defaults"))
	assert.Equal(t, 2.0, counterValue(t, reg, "termcore_config_field_errors_total", "", ""))
}

func TestFieldErrorFormatting(t *testing.T) {
	fe := &FieldError{Path: "profiles.main.bell.volume", Line: 3, Err: ErrOutOfRange}
	assert.Equal(t, "profiles.main.bell.volume (line 3): value out of range", fe.Error())
	assert.True(t, errors.Is(fe, ErrOutOfRange))

	fe.Line = 0
	assert.Equal(t, "profiles.main.bell.volume: value out of range", fe.Error())
}
