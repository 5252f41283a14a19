package config

import (
	"maps"
	"math"
	"slices"
	"time"
)

// Profile is a named bundle of terminal session settings. Every field has
// a default, so a Profile is always fully populated.
type Profile struct {
	Shell Shell

	ShowTitleBar          Entry[bool]
	Fullscreen            Entry[bool]
	Maximized             Entry[bool]
	SizeIndicatorOnResize Entry[bool]
	MouseHideWhileTyping  Entry[bool]

	TerminalID   Entry[TerminalID]
	TerminalSize TerminalSize
	Margins      Margins
	History      History
	TabWidth     Entry[int]
	Scrollbar    Scrollbar
	Permissions  Permissions

	HighlightDoubleClick    Entry[bool]
	HighlightTimeout        Entry[time.Duration]
	ViModeScrollOff         Entry[int]
	CopyLastMarkRangeOffset Entry[int]

	Font       Fonts
	Bell       Bell
	InputModes InputModes
	StatusLine StatusLine

	Colors                       Entry[ColorConfig]
	Background                   Background
	DrawBoldTextWithBrightColors Entry[bool]
	FrozenDECModes               Entry[map[int]bool]
}

// Shell configures the process started in the terminal.
type Shell struct {
	Program          Entry[string]
	Arguments        Entry[[]string]
	WorkingDirectory Entry[string]
	Environment      Entry[map[string]string]
	EscapeSandbox    Entry[bool]
}

// TerminalSize is the initial grid size.
type TerminalSize struct {
	Columns Entry[int]
	Lines   Entry[int]
}

// Margins are the pixel margins around the grid.
type Margins struct {
	Horizontal Entry[int]
	Vertical   Entry[int]
}

// History configures the scrollback buffer.
type History struct {
	Limit              Entry[HistoryLimit]
	AutoScrollOnUpdate Entry[bool]
	ScrollMultiplier   Entry[int]
}

// Background configures the window background behind the grid.
type Background struct {
	Opacity Entry[float64]
	Blur    Entry[bool]
}

// Scrollbar configures the scrollbar.
type Scrollbar struct {
	Position        Entry[ScrollbarPosition]
	HideInAltScreen Entry[bool]
}

// Permissions decides how capability requests from applications are handled.
type Permissions struct {
	ChangeFont                    Entry[Permission]
	CaptureBuffer                 Entry[Permission]
	DisplayHostWritableStatusLine Entry[Permission]
}

// Fonts selects the text fonts.
type Fonts struct {
	Size              Entry[float64]
	DPIScale          Entry[float64]
	BuiltinBoxDrawing Entry[bool]
	RenderMode        Entry[RenderMode]
	Regular           Entry[FontDescription]
	Bold              Entry[FontDescription]
	Italic            Entry[FontDescription]
	BoldItalic        Entry[FontDescription]
	Emoji             Entry[FontDescription]
}

// Bell configures the terminal bell.
type Bell struct {
	Sound  Entry[string]
	Alert  Entry[bool]
	Volume Entry[float64]
}

// InputModes holds the per input mode settings.
type InputModes struct {
	Insert InputMode
	Normal InputMode
	Visual InputMode
}

// InputMode holds the settings of one input mode.
type InputMode struct {
	Cursor Cursor
}

// Cursor configures the text cursor.
type Cursor struct {
	Shape            Entry[CursorShape]
	Blinking         Entry[bool]
	BlinkingInterval Entry[time.Duration]
}

// StatusLine configures the status line.
type StatusLine struct {
	Display           Entry[StatusDisplay]
	Position          Entry[StatusPosition]
	SyncToWindowTitle Entry[bool]
	Indicator         IndicatorLayout
}

// IndicatorLayout holds the format strings of the indicator status line.
type IndicatorLayout struct {
	Left   Entry[string]
	Middle Entry[string]
	Right  Entry[string]
}

// Default status line layout.
const (
	DefaultIndicatorLeft   = " {Command:Bold,Color=#FFFF00}{VTType} │ {InputMode:Bold,Color=#C0C030}{SearchPrompt:Left= │ }{TraceMode:Bold,Color=#FFFF00,Left= │ }"
	DefaultIndicatorMiddle = " {Title:Left= « ,Right= » ,Color=#20c0c0} "
	DefaultIndicatorRight  = " {HistoryLineCount:Color=#C0C0C0} │ {Clock:Bold} "
)

// newProfile returns a profile holding the built-in defaults.
func newProfile(host hostDefaults) *Profile {
	p := &Profile{}
	initFields(p, host, profileFields)
	return p
}

// NewProfile returns a profile holding the built-in defaults for the
// current host.
func NewProfile() *Profile {
	return newProfile(currentHost())
}

// Clone returns a deep copy of the profile.
func (p *Profile) Clone() *Profile {
	c := *p
	c.Shell.Arguments.Set(slices.Clone(p.Shell.Arguments.Value()))
	c.Shell.Environment.Set(maps.Clone(p.Shell.Environment.Value()))
	c.FrozenDECModes.Set(maps.Clone(p.FrozenDECModes.Value()))
	for _, f := range []*Entry[FontDescription]{
		&c.Font.Regular, &c.Font.Bold, &c.Font.Italic, &c.Font.BoldItalic, &c.Font.Emoji,
	} {
		f.Set(f.Value().Clone())
	}
	return &c
}

func fontDefault(family func(hostDefaults) string, weight FontWeight, slant FontSlant) func(hostDefaults) FontDescription {
	return func(host hostDefaults) FontDescription {
		return FontDescription{Family: family(host), Weight: weight, Slant: slant}
	}
}

func hostFont(host hostDefaults) string { return host.fontFamily }

func cursorFields(shape CursorShape, blinking bool) []field[Cursor] {
	return []field[Cursor]{
		entryField("shape", fixed(shape),
			"Cursor shape: block, rectangle, underscore or bar.",
			enumCodec[CursorShape](cursorShapeNames),
			func(c *Cursor) *Entry[CursorShape] { return &c.Shape }),
		entryField("blinking", fixed(blinking),
			"Whether the cursor blinks.",
			boolCodec,
			func(c *Cursor) *Entry[bool] { return &c.Blinking }),
		entryField("blinking_interval", fixed(500*time.Millisecond),
			"Blink interval in milliseconds.",
			durationCodec,
			func(c *Cursor) *Entry[time.Duration] { return &c.BlinkingInterval }),
	}
}

func inputModeFields(shape CursorShape, blinking bool) []field[InputMode] {
	return []field[InputMode]{
		section("cursor", "", func(m *InputMode) *Cursor { return &m.Cursor }, cursorFields(shape, blinking)),
	}
}

func permissionField(key, doc string, get func(*Permissions) *Entry[Permission]) field[Permissions] {
	return entryField(key, fixed(PermissionAsk), doc, enumCodec[Permission](permissionNames), get)
}

var shellFields = []field[Shell]{
	entryField("program", func(h hostDefaults) string { return h.shell },
		"Program to run. Defaults to the login shell.",
		stringCodec,
		func(s *Shell) *Entry[string] { return &s.Program }),
	entryField("arguments", fixed[[]string](nil),
		"Arguments passed to the program.",
		stringListCodec,
		func(s *Shell) *Entry[[]string] { return &s.Arguments }),
	entryField("initial_working_directory", fixed("~"),
		"Directory the program starts in.",
		stringCodec,
		func(s *Shell) *Entry[string] { return &s.WorkingDirectory }),
	entryField("environment", fixed[map[string]string](nil),
		"Environment variables added to the program's environment.",
		stringMapCodec,
		func(s *Shell) *Entry[map[string]string] { return &s.Environment }),
	entryField("escape_sandbox", fixed(true),
		"Run the program outside the application sandbox when one is active.",
		boolCodec,
		func(s *Shell) *Entry[bool] { return &s.EscapeSandbox }),
}

var terminalSizeFields = []field[TerminalSize]{
	entryField("columns", fixed(80), "Number of columns.", intCodec(1, math.MaxInt16),
		func(t *TerminalSize) *Entry[int] { return &t.Columns }),
	entryField("lines", fixed(25), "Number of lines.", intCodec(1, math.MaxInt16),
		func(t *TerminalSize) *Entry[int] { return &t.Lines }),
}

var marginsFields = []field[Margins]{
	entryField("horizontal", fixed(0), "Left and right margin in pixels.", intCodec(0, math.MaxInt16),
		func(m *Margins) *Entry[int] { return &m.Horizontal }),
	entryField("vertical", fixed(0), "Top and bottom margin in pixels.", intCodec(0, math.MaxInt16),
		func(m *Margins) *Entry[int] { return &m.Vertical }),
}

var historyFields = []field[History]{
	entryField("limit", fixed(LimitLines(1000)),
		"Number of lines kept in scrollback. -1 keeps everything.",
		historyLimitCodec,
		func(h *History) *Entry[HistoryLimit] { return &h.Limit }),
	entryField("auto_scroll_on_update", fixed(true),
		"Scroll to the bottom when new output arrives.",
		boolCodec,
		func(h *History) *Entry[bool] { return &h.AutoScrollOnUpdate }),
	entryField("scroll_multiplier", fixed(3),
		"Lines scrolled per wheel step.",
		intCodec(1, 1000),
		func(h *History) *Entry[int] { return &h.ScrollMultiplier }),
}

var backgroundFields = []field[Background]{
	entryField("opacity", fixed(1.0),
		"Background opacity between 0 (transparent) and 1 (opaque).",
		floatCodec(0, 1),
		func(b *Background) *Entry[float64] { return &b.Opacity }),
	entryField("blur", fixed(false),
		"Blur what is behind a translucent background, where the window system supports it.",
		boolCodec,
		func(b *Background) *Entry[bool] { return &b.Blur }),
}

var scrollbarFields = []field[Scrollbar]{
	entryField("position", fixed(ScrollbarRight),
		"Scrollbar position: Hidden, Left or Right.",
		enumCodec[ScrollbarPosition](scrollbarPositionNames),
		func(s *Scrollbar) *Entry[ScrollbarPosition] { return &s.Position }),
	entryField("hide_in_alt_screen", fixed(true),
		"Hide the scrollbar while the alternate screen is active.",
		boolCodec,
		func(s *Scrollbar) *Entry[bool] { return &s.HideInAltScreen }),
}

var permissionsFields = []field[Permissions]{
	permissionField("change_font", "Applications changing the font.",
		func(p *Permissions) *Entry[Permission] { return &p.ChangeFont }),
	permissionField("capture_buffer", "Applications capturing the screen buffer.",
		func(p *Permissions) *Entry[Permission] { return &p.CaptureBuffer }),
	permissionField("display_host_writable_statusline", "Applications displaying the host writable status line.",
		func(p *Permissions) *Entry[Permission] { return &p.DisplayHostWritableStatusLine }),
}

var fontFields = []field[Fonts]{
	entryField("size", fixed(12.0), "Font size in points.", floatCodec(1, 512),
		func(f *Fonts) *Entry[float64] { return &f.Size }),
	entryField("dpi_scale", fixed(1.0), "Multiplier applied to the display DPI.", floatCodec(0.1, 16),
		func(f *Fonts) *Entry[float64] { return &f.DPIScale }),
	entryField("builtin_box_drawing", fixed(true),
		"Draw box drawing characters without the font.",
		boolCodec,
		func(f *Fonts) *Entry[bool] { return &f.BuiltinBoxDrawing }),
	entryField("render_mode", fixed(RenderGray),
		"Glyph rendering: lcd, light, gray or monochrome.",
		enumCodec[RenderMode](renderModeNames),
		func(f *Fonts) *Entry[RenderMode] { return &f.RenderMode }),
	entryField("regular", fontDefault(hostFont, WeightNormal, SlantNormal), "Regular text.", fontCodec,
		func(f *Fonts) *Entry[FontDescription] { return &f.Regular }),
	entryField("bold", fontDefault(hostFont, WeightBold, SlantNormal), "Bold text.", fontCodec,
		func(f *Fonts) *Entry[FontDescription] { return &f.Bold }),
	entryField("italic", fontDefault(hostFont, WeightNormal, SlantItalic), "Italic text.", fontCodec,
		func(f *Fonts) *Entry[FontDescription] { return &f.Italic }),
	entryField("bold_italic", fontDefault(hostFont, WeightBold, SlantItalic), "Bold italic text.", fontCodec,
		func(f *Fonts) *Entry[FontDescription] { return &f.BoldItalic }),
	entryField("emoji", fontDefault(fixed("emoji"), WeightNormal, SlantNormal), "Emoji.", fontCodec,
		func(f *Fonts) *Entry[FontDescription] { return &f.Emoji }),
}

var bellFields = []field[Bell]{
	entryField("sound", fixed("default"),
		"Bell sound: default, off, or a path to a sound file.",
		stringCodec,
		func(b *Bell) *Entry[string] { return &b.Sound }),
	entryField("alert", fixed(true), "Request attention from the window system on bell.", boolCodec,
		func(b *Bell) *Entry[bool] { return &b.Alert }),
	entryField("volume", fixed(1.0), "Bell volume between 0 and 1.", floatCodec(0, 1),
		func(b *Bell) *Entry[float64] { return &b.Volume }),
}

var inputModesFields = []field[InputModes]{
	section("insert", "Insert mode.", func(m *InputModes) *InputMode { return &m.Insert },
		inputModeFields(CursorBar, true)),
	section("normal", "Normal (vi) mode.", func(m *InputModes) *InputMode { return &m.Normal },
		inputModeFields(CursorBlock, false)),
	section("visual", "Visual (vi) mode.", func(m *InputModes) *InputMode { return &m.Visual },
		inputModeFields(CursorBlock, false)),
}

var indicatorFields = []field[IndicatorLayout]{
	entryField("left", fixed(DefaultIndicatorLeft), "Left aligned segment.", stringCodec,
		func(s *IndicatorLayout) *Entry[string] { return &s.Left }),
	entryField("middle", fixed(DefaultIndicatorMiddle), "Centered segment.", stringCodec,
		func(s *IndicatorLayout) *Entry[string] { return &s.Middle }),
	entryField("right", fixed(DefaultIndicatorRight), "Right aligned segment.", stringCodec,
		func(s *IndicatorLayout) *Entry[string] { return &s.Right }),
}

var statusLineFields = []field[StatusLine]{
	entryField("display", fixed(StatusNone), "Status line kind: none or indicator.",
		enumCodec[StatusDisplay](statusDisplayNames),
		func(s *StatusLine) *Entry[StatusDisplay] { return &s.Display }),
	entryField("position", fixed(StatusBottom), "Status line position: top or bottom.",
		enumCodec[StatusPosition](statusPositionNames),
		func(s *StatusLine) *Entry[StatusPosition] { return &s.Position }),
	entryField("sync_to_window_title", fixed(false),
		"Show the host writable status line text as window title.",
		boolCodec,
		func(s *StatusLine) *Entry[bool] { return &s.SyncToWindowTitle }),
	section("indicator", "Layout of the indicator status line.",
		func(s *StatusLine) *IndicatorLayout { return &s.Indicator }, indicatorFields),
}

// profileFields is the profile schema in declaration order.
var profileFields = []field[Profile]{
	section("shell", "Program started in new terminals.",
		func(p *Profile) *Shell { return &p.Shell }, shellFields),
	entryField("show_title_bar", fixed(true), "Show the window title bar.", boolCodec,
		func(p *Profile) *Entry[bool] { return &p.ShowTitleBar }),
	entryField("fullscreen", fixed(false), "Start in fullscreen.", boolCodec,
		func(p *Profile) *Entry[bool] { return &p.Fullscreen }),
	entryField("maximized", fixed(false), "Start maximized.", boolCodec,
		func(p *Profile) *Entry[bool] { return &p.Maximized }),
	entryField("size_indicator_on_resize", fixed(true), "Show the grid size while resizing.", boolCodec,
		func(p *Profile) *Entry[bool] { return &p.SizeIndicatorOnResize }),
	entryField("mouse_hide_while_typing", fixed(true), "Hide the mouse cursor while typing.", boolCodec,
		func(p *Profile) *Entry[bool] { return &p.MouseHideWhileTyping }),
	entryField("terminal_id", fixed(VT525),
		"Terminal model reported to applications, VT100 to VT525.",
		enumCodec[TerminalID](terminalIDNames),
		func(p *Profile) *Entry[TerminalID] { return &p.TerminalID }),
	section("terminal_size", "Initial terminal size.",
		func(p *Profile) *TerminalSize { return &p.TerminalSize }, terminalSizeFields),
	section("margins", "Window margins.",
		func(p *Profile) *Margins { return &p.Margins }, marginsFields),
	section("history", "Scrollback.",
		func(p *Profile) *History { return &p.History }, historyFields),
	entryField("tab_width", fixed(8),
		"Columns between default tab stops, 0 for no default tab stops.",
		intCodec(0, math.MaxInt16),
		func(p *Profile) *Entry[int] { return &p.TabWidth }),
	section("scrollbar", "Scrollbar.",
		func(p *Profile) *Scrollbar { return &p.Scrollbar }, scrollbarFields),
	section("permissions", "Answers to capability requests: allow, deny or ask.",
		func(p *Profile) *Permissions { return &p.Permissions }, permissionsFields),
	entryField("highlight_word_and_matches_on_double_click", fixed(true),
		"Highlight the word under the mouse and its matches on double click.",
		boolCodec,
		func(p *Profile) *Entry[bool] { return &p.HighlightDoubleClick }),
	entryField("highlight_timeout", fixed(300*time.Millisecond),
		"How long a search highlight stays visible, in milliseconds.",
		durationCodec,
		func(p *Profile) *Entry[time.Duration] { return &p.HighlightTimeout }),
	entryField("vi_mode_scrolloff", fixed(8),
		"Lines kept visible above and below the cursor in vi mode.",
		intCodec(0, math.MaxInt16),
		func(p *Profile) *Entry[int] { return &p.ViModeScrollOff }),
	entryField("copy_last_mark_range_offset", fixed(0),
		"Line offset applied when copying the last marked range.",
		intCodec(math.MinInt16, math.MaxInt16),
		func(p *Profile) *Entry[int] { return &p.CopyLastMarkRangeOffset }),
	section("font", "Fonts.", func(p *Profile) *Fonts { return &p.Font }, fontFields),
	section("bell", "Bell.", func(p *Profile) *Bell { return &p.Bell }, bellFields),
	section("input_modes", "Per input mode settings.",
		func(p *Profile) *InputModes { return &p.InputModes }, inputModesFields),
	section("status_line", "Status line.",
		func(p *Profile) *StatusLine { return &p.StatusLine }, statusLineFields),
	entryField[Profile, ColorConfig]("colors",
		fixed[ColorConfig](SimpleColorConfig{Scheme: SchemeRef{Name: DefaultSchemeName, Palette: DefaultPalette()}}),
		"Color scheme name, or a mapping with light and dark scheme names.",
		colorConfigCodec,
		func(p *Profile) *Entry[ColorConfig] { return &p.Colors }),
	section("background", "Window background.",
		func(p *Profile) *Background { return &p.Background }, backgroundFields),
	entryField("draw_bold_text_with_bright_colors", fixed(false),
		"Draw bold text in the bright variant of its color.",
		boolCodec,
		func(p *Profile) *Entry[bool] { return &p.DrawBoldTextWithBrightColors }),
	entryField("frozen_dec_modes", fixed[map[int]bool](nil),
		"DEC modes forced on (true) or off (false) regardless of application requests.",
		intBoolMapCodec,
		func(p *Profile) *Entry[map[int]bool] { return &p.FrozenDECModes }),
}
