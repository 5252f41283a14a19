package config

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/termcore/internal/fuzzy"
	"github.com/dshills/termcore/internal/input/binding"
	"github.com/dshills/termcore/internal/input/key"
)

// DefaultProfileName names the profile a new document starts with.
const DefaultProfileName = "main"

// DefaultWordDelimiters separate words for double click selection.
const DefaultWordDelimiters = " /\\()\"'-.,:;<>~!@#$%^&*+=[]{}~?|│"

// Document is the root configuration object. A published Document is
// never modified; reloading builds a new one.
type Document struct {
	DefaultProfileName Entry[string]

	LiveConfig      Entry[bool]
	SpawnNewProcess Entry[bool]
	ReflowOnResize  Entry[bool]

	WordDelimiters         Entry[string]
	ExtendedWordDelimiters Entry[string]

	ReadBufferSize      Entry[uint]
	PTYBufferObjectSize Entry[uint]
	EarlyExitThreshold  Entry[time.Duration]

	BypassMouseProtocolModifier Entry[key.Modifier]
	MouseBlockSelectionModifier Entry[key.Modifier]
	OnMouseSelect               Entry[SelectionAction]

	Images       Images
	Renderer     Renderer
	Experimental Entry[map[string]bool]

	profiles     map[string]*Profile
	colorSchemes map[string]Palette
	bindings     *binding.Table
}

// Images configures inline image support.
type Images struct {
	SixelScrolling     Entry[bool]
	SixelRegisterCount Entry[int]
	MaxWidth           Entry[int]
	MaxHeight          Entry[int]
}

// Renderer configures the render backend.
type Renderer struct {
	Backend            Entry[RenderBackend]
	TileHashtableSlots Entry[int]
	TileCacheCount     Entry[int]
	TileDirectMapping  Entry[bool]
}

// New returns a document holding the built-in defaults: one profile named
// "main", the "default" color scheme and the built-in bindings.
func New() *Document {
	return newDocument(currentHost())
}

func newDocument(host hostDefaults) *Document {
	d := &Document{
		profiles:     map[string]*Profile{DefaultProfileName: newProfile(host)},
		colorSchemes: map[string]Palette{DefaultSchemeName: DefaultPalette()},
		bindings:     binding.Default(),
	}
	initFields(d, host, documentFields)
	return d
}

// Profile returns the named profile. Asking for a profile the document
// does not define is a programming error and panics; use LookupProfile
// for names that come from users.
func (d *Document) Profile(name string) *Profile {
	p, ok := d.profiles[name]
	if !ok {
		panic(fmt.Sprintf("config: %v: %q", ErrUnknownProfile, name))
	}
	return p
}

// LookupProfile returns the named profile or ErrUnknownProfile.
func (d *Document) LookupProfile(name string) (*Profile, error) {
	p, ok := d.profiles[name]
	if !ok {
		if s, found := fuzzy.Suggest(name, d.ProfileNames()); found {
			return nil, fmt.Errorf("%w: %q (did you mean %q?)", ErrUnknownProfile, name, s)
		}
		return nil, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
	}
	return p, nil
}

// DefaultProfile returns the profile named by default_profile.
func (d *Document) DefaultProfile() *Profile {
	return d.Profile(d.DefaultProfileName.Value())
}

// ProfileNames returns the profile names, default profile first and the
// rest sorted.
func (d *Document) ProfileNames() []string {
	def := d.DefaultProfileName.Value()
	names := make([]string, 0, len(d.profiles))
	for name := range d.profiles {
		if name != def {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return append([]string{def}, names...)
}

// ColorScheme returns the named palette.
func (d *Document) ColorScheme(name string) (Palette, bool) {
	p, ok := d.colorSchemes[name]
	return p, ok
}

// ColorSchemeNames returns the sorted color scheme names.
func (d *Document) ColorSchemeNames() []string {
	return slices.Sorted(maps.Keys(d.colorSchemes))
}

// Bindings returns the input binding table. Callers must not modify it.
func (d *Document) Bindings() *binding.Table {
	return d.bindings
}

var imagesFields = []field[Images]{
	entryField("sixel_scrolling", fixed(true), "Scroll the screen when a sixel image reaches the bottom.", boolCodec,
		func(i *Images) *Entry[bool] { return &i.SixelScrolling }),
	entryField("sixel_register_count", fixed(4096), "Number of sixel color registers.", intCodec(1, 65536),
		func(i *Images) *Entry[int] { return &i.SixelRegisterCount }),
	entryField("max_width", fixed(0), "Maximum image width in pixels, 0 for no limit.", intCodec(0, 65536),
		func(i *Images) *Entry[int] { return &i.MaxWidth }),
	entryField("max_height", fixed(0), "Maximum image height in pixels, 0 for no limit.", intCodec(0, 65536),
		func(i *Images) *Entry[int] { return &i.MaxHeight }),
}

var rendererFields = []field[Renderer]{
	entryField("backend", fixed(BackendDefault), "Render backend: default, OpenGL or software.",
		enumCodec[RenderBackend](renderBackendNames),
		func(r *Renderer) *Entry[RenderBackend] { return &r.Backend }),
	entryField("tile_hashtable_slots", fixed(4096), "Number of slots in the glyph tile hash table.", intCodec(1, 1<<24),
		func(r *Renderer) *Entry[int] { return &r.TileHashtableSlots }),
	entryField("tile_cache_count", fixed(4000), "Number of glyph tiles cached on the GPU.", intCodec(1, 1<<24),
		func(r *Renderer) *Entry[int] { return &r.TileCacheCount }),
	entryField("tile_direct_mapping", fixed(true), "Map ASCII glyphs to fixed tiles.", boolCodec,
		func(r *Renderer) *Entry[bool] { return &r.TileDirectMapping }),
}

func colorField(key string, get func(*Palette) *colorful.Color) field[Palette] {
	return valueField(key, colorCodec, get)
}

func pairFields(first, second string, a, b func(*Palette) *colorful.Color) []field[Palette] {
	return []field[Palette]{colorField(first, a), colorField(second, b)}
}

// colorRow nests the eight named colors of a palette row.
type colorRow [8]colorful.Color

func colorRowFields() []field[colorRow] {
	fields := make([]field[colorRow], len(ColorNames))
	for i, name := range ColorNames {
		fields[i] = valueField(name, colorCodec, func(r *colorRow) *colorful.Color { return &r[i] })
	}
	return fields
}

func rowSection(key string, get func(*Palette) *[8]colorful.Color) field[Palette] {
	return section(key, "", func(p *Palette) *colorRow { return (*colorRow)(get(p)) }, colorRowFields())
}

// paletteFields is the color scheme schema.
var paletteFields = []field[Palette]{
	section("default", "", func(p *Palette) *Palette { return p }, pairFields("foreground", "background",
		func(p *Palette) *colorful.Color { return &p.DefaultForeground },
		func(p *Palette) *colorful.Color { return &p.DefaultBackground })),
	section("cursor", "", func(p *Palette) *Palette { return p }, pairFields("default", "text",
		func(p *Palette) *colorful.Color { return &p.CursorDefault },
		func(p *Palette) *colorful.Color { return &p.CursorText })),
	section("selection", "", func(p *Palette) *Palette { return p }, pairFields("foreground", "background",
		func(p *Palette) *colorful.Color { return &p.SelectionForeground },
		func(p *Palette) *colorful.Color { return &p.SelectionBackground })),
	rowSection("normal", func(p *Palette) *[8]colorful.Color { return &p.Normal }),
	rowSection("bright", func(p *Palette) *[8]colorful.Color { return &p.Bright }),
	rowSection("dim", func(p *Palette) *[8]colorful.Color { return &p.Dim }),
}

// documentFields is the document schema in declaration order. profiles,
// color_schemes and input_mapping have no loader here; the Reader handles
// them in their own phases.
var documentFields = []field[Document]{
	entryField("default_profile", fixed(DefaultProfileName),
		"Profile used for new terminals.",
		nonEmptyStringCodec,
		func(d *Document) *Entry[string] { return &d.DefaultProfileName }),
	entryField("live_config", fixed(false),
		"Reload this file when it changes.",
		boolCodec,
		func(d *Document) *Entry[bool] { return &d.LiveConfig }),
	entryField("spawn_new_process", fixed(false),
		"Open new windows in a new process.",
		boolCodec,
		func(d *Document) *Entry[bool] { return &d.SpawnNewProcess }),
	entryField("reflow_on_resize", fixed(true),
		"Rewrap lines when the terminal is resized.",
		boolCodec,
		func(d *Document) *Entry[bool] { return &d.ReflowOnResize }),
	entryField("word_delimiters", fixed(DefaultWordDelimiters),
		"Characters that end a word for double click selection.",
		stringCodec,
		func(d *Document) *Entry[string] { return &d.WordDelimiters }),
	entryField("extended_word_delimiters", fixed(" "),
		"Characters that end a word for extended (Control) double click selection.",
		stringCodec,
		func(d *Document) *Entry[string] { return &d.ExtendedWordDelimiters }),
	entryField("read_buffer_size", fixed[uint](16384),
		"Bytes read from the PTY per call.",
		uintCodec(256),
		func(d *Document) *Entry[uint] { return &d.ReadBufferSize }),
	entryField("pty_buffer_object_size", fixed[uint](1024*1024),
		"Size of a PTY buffer object in bytes.",
		uintCodec(4096),
		func(d *Document) *Entry[uint] { return &d.PTYBufferObjectSize }),
	entryField("early_exit_threshold", fixed(6000*time.Millisecond),
		"Keep the window open if the program exits within this many milliseconds.",
		durationCodec,
		func(d *Document) *Entry[time.Duration] { return &d.EarlyExitThreshold }),
	entryField("bypass_mouse_protocol_modifier", fixed(key.ModShift),
		"Modifiers that bypass application mouse tracking.",
		modifiersCodec,
		func(d *Document) *Entry[key.Modifier] { return &d.BypassMouseProtocolModifier }),
	entryField("mouse_block_selection_modifier", fixed(key.ModControl),
		"Modifiers that start a block selection.",
		modifiersCodec,
		func(d *Document) *Entry[key.Modifier] { return &d.MouseBlockSelectionModifier }),
	entryField("on_mouse_select", fixed(CopyToSelectionClipboard),
		"What to do with a completed mouse selection: CopyToSelectionClipboard, CopyToClipboard or Nothing.",
		enumCodec[SelectionAction](selectionActionNames),
		func(d *Document) *Entry[SelectionAction] { return &d.OnMouseSelect }),
	section("images", "Inline images.", func(d *Document) *Images { return &d.Images }, imagesFields),
	section("renderer", "Renderer.", func(d *Document) *Renderer { return &d.Renderer }, rendererFields),
	entryField("experimental", fixed[map[string]bool](nil),
		"Experimental features to enable by name.",
		stringBoolMapCodec,
		func(d *Document) *Entry[map[string]bool] { return &d.Experimental }),
	{key: "profiles", render: renderProfiles},
	{key: "color_schemes", render: renderColorSchemes},
	{key: "input_mapping", render: renderBindings},
}
