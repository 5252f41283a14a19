package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dshills/termcore/internal/config/loader"
	"github.com/dshills/termcore/internal/input/action"
	"github.com/dshills/termcore/internal/input/binding"
	"github.com/dshills/termcore/internal/input/key"
	"github.com/dshills/termcore/internal/input/matchmode"
	"github.com/dshills/termcore/internal/input/mouse"
)

// Reader loads documents. Loading never fails: a document that cannot be
// parsed yields the defaults, and a field that cannot be decoded keeps
// its previous value. Both are logged and can be inspected afterwards
// with Err and Issues.
//
// A Reader is not safe for concurrent use.
type Reader struct {
	opts   options
	host   hostDefaults
	issues []*FieldError
	err    error
}

// NewReader creates a reader.
func NewReader(opts ...Option) *Reader {
	o := applyOptions(opts)
	host := currentHost()
	if o.host != nil {
		host = *o.host
	}
	return &Reader{opts: o, host: host}
}

// Issues returns the field errors of the last load, in document order.
func (r *Reader) Issues() []*FieldError {
	return r.issues
}

// Err returns the error that made the last load fall back to defaults,
// or nil.
func (r *Reader) Err() error {
	return r.err
}

// LoadFile reads the document at path. The format is chosen by extension.
// A missing or unreadable file yields the defaults, with environment
// overrides applied.
func (r *Reader) LoadFile(path string) *Document {
	data, format, err := loader.ReadFile(r.opts.fsys, path)
	if err != nil {
		r.issues = nil
		r.err = err
		logger := r.opts.logger.With(slog.String("source", path))
		logger.Error("cannot read configuration, using defaults", slog.Any("error", err))
		r.opts.metrics.observeLoad(resultDefaults, 0)
		return r.defaults(logger)
	}
	return r.read(path, data, format)
}

// Read loads a document from data.
func (r *Reader) Read(data []byte, format loader.Format) *Document {
	return r.read("<input>", data, format)
}

func (r *Reader) read(source string, data []byte, format loader.Format) *Document {
	r.issues = nil
	r.err = nil
	logger := r.opts.logger.With(slog.String("source", source))

	root, err := loader.Parse(source, data, format)
	if err != nil {
		r.err = err
		logger.Error("cannot parse configuration, using defaults", slog.Any("error", err))
		r.opts.metrics.observeLoad(resultDefaults, 0)
		return r.defaults(logger)
	}

	ctx := &readContext{logger: logger}
	doc := r.populate(ctx, r.applyEnv(ctx, root))
	r.issues = ctx.issues

	result := resultOK
	if len(ctx.issues) > 0 {
		result = resultPartial
	}
	r.opts.metrics.observeLoad(result, len(ctx.issues))
	logger.Debug("configuration loaded",
		slog.Int("profiles", len(doc.profiles)),
		slog.Int("bindings", doc.bindings.Len()),
		slog.Int("issues", len(ctx.issues)),
	)
	return doc
}

// defaults returns the built-in document with environment overrides.
func (r *Reader) defaults(logger *slog.Logger) *Document {
	if len(r.opts.env) == 0 {
		return newDocument(r.host)
	}
	ctx := &readContext{logger: logger}
	doc := r.populate(ctx, r.applyEnv(ctx, &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}))
	r.issues = ctx.issues
	return doc
}

// applyEnv writes the environment overrides into root. An override that
// cannot be applied is a field error.
func (r *Reader) applyEnv(ctx *readContext, root *yaml.Node) *yaml.Node {
	for _, o := range r.opts.env {
		if err := o.Apply(root); err != nil {
			ctx.fail(o.Key(), nil, fmt.Errorf("%w: %w", ErrInvalidValue, err))
			continue
		}
		ctx.logger.Debug("environment override", slog.String("env", o.Env), slog.String("path", o.Key()))
	}
	return root
}

func (r *Reader) populate(ctx *readContext, root *yaml.Node) *Document {
	doc := newDocument(r.host)
	ctx.schemes = doc.colorSchemes

	if n := mappingValue(root, "color_schemes"); n != nil {
		r.readSchemes(ctx, doc, n)
	}
	applyFields(ctx, "", doc, root, documentFields)
	r.readProfiles(ctx, doc, mappingValue(root, "profiles"))
	if n := mappingValue(root, "input_mapping"); n != nil {
		r.readBindings(ctx, doc.bindings, n)
	}
	return doc
}

func (r *Reader) readSchemes(ctx *readContext, doc *Document, n *yaml.Node) {
	err := mappingPairs(n, func(k, v *yaml.Node) error {
		name := k.Value
		p := DefaultPalette()
		if prev, ok := doc.colorSchemes[name]; ok && name != DefaultSchemeName {
			ctx.fail(joinPath("color_schemes", name), k, invalid("duplicate color scheme"))
			p = prev
		}
		applyFields(ctx, joinPath("color_schemes", name), &p, v, paletteFields)
		doc.colorSchemes[name] = p
		return nil
	})
	if err != nil {
		ctx.fail("color_schemes", n, err)
	}
}

// readProfiles populates the default profile first, then builds every
// other profile from a copy of it.
func (r *Reader) readProfiles(ctx *readContext, doc *Document, n *yaml.Node) {
	defName := doc.DefaultProfileName.Value()
	baseline := newProfile(r.host)
	if def := mappingValue(n, defName); def != nil {
		applyFields(ctx, joinPath("profiles", defName), baseline, def, profileFields)
	}
	doc.profiles = map[string]*Profile{defName: baseline}

	err := mappingPairs(n, func(k, v *yaml.Node) error {
		name := k.Value
		if name == defName {
			return nil
		}
		path := joinPath("profiles", name)
		if _, ok := doc.profiles[name]; ok {
			ctx.fail(path, k, invalid("duplicate profile"))
			return nil
		}
		p := baseline.Clone()
		applyFields(ctx, path, p, v, profileFields)
		doc.profiles[name] = p
		return nil
	})
	if err != nil {
		ctx.fail("profiles", n, err)
	}

	for _, p := range doc.profiles {
		p.Colors.Set(relinkColors(p.Colors.Value(), doc.colorSchemes))
	}
}

// relinkColors refreshes the palettes of c from schemes. Profiles take
// their default colors before the document's schemes are known.
func relinkColors(c ColorConfig, schemes map[string]Palette) ColorConfig {
	relink := func(ref SchemeRef) SchemeRef {
		if p, ok := schemes[ref.Name]; ok {
			ref.Palette = p
		}
		return ref
	}
	switch c := c.(type) {
	case SimpleColorConfig:
		return SimpleColorConfig{Scheme: relink(c.Scheme)}
	case DualColorConfig:
		return DualColorConfig{Light: relink(c.Light), Dark: relink(c.Dark)}
	default:
		panic(fmt.Sprintf("config: unhandled color config %T", c))
	}
}

// readBindings adds the entries of input_mapping to t in file order.
func (r *Reader) readBindings(ctx *readContext, t *binding.Table, n *yaml.Node) {
	if isNull(n) {
		return
	}
	if n.Kind != yaml.SequenceNode {
		ctx.fail("input_mapping", n, fmt.Errorf("%w: expected a list, got %s", ErrInvalidBinding, kindName(n)))
		return
	}
	for i, item := range n.Content {
		path := fmt.Sprintf("input_mapping[%d]", i)
		if err := addBinding(ctx, t, resolve(item)); err != nil {
			if !errors.Is(err, ErrInvalidBinding) {
				err = fmt.Errorf("%w: %w", ErrInvalidBinding, err)
			}
			ctx.fail(path, item, err)
		}
	}
}

// bindingEntryDef is one decoded input_mapping entry.
type bindingEntryDef struct {
	mods   key.Modifier
	modes  matchmode.Filter
	key    string
	mouse  string
	action string
	params map[string]string
}

func addBinding(ctx *readContext, t *binding.Table, n *yaml.Node) error {
	def, err := decodeBindingEntry(ctx, n)
	if err != nil {
		return err
	}
	a, err := action.New(def.action, def.params)
	if err != nil {
		return err
	}

	switch {
	case def.key != "" && def.mouse != "":
		return fmt.Errorf("%w: key and mouse are mutually exclusive", ErrInvalidBinding)
	case def.mouse != "":
		b, err := mouse.ButtonFromName(def.mouse)
		if err != nil {
			return err
		}
		t.AddMouse(def.modes, def.mods, b, a)
	case def.key != "":
		k, ch, isChar, err := key.ParseTrigger(def.key)
		if err != nil {
			return err
		}
		if isChar {
			t.AddChar(def.modes, def.mods, ch, a)
		} else {
			t.AddKey(def.modes, def.mods, k, a)
		}
	default:
		return fmt.Errorf("%w: one of key or mouse is required", ErrInvalidBinding)
	}
	return nil
}

func decodeBindingEntry(ctx *readContext, n *yaml.Node) (bindingEntryDef, error) {
	def := bindingEntryDef{modes: matchmode.AnyFilter()}
	if n.Kind != yaml.MappingNode {
		return def, fmt.Errorf("%w: expected a mapping, got %s", ErrInvalidBinding, kindName(n))
	}
	err := mappingPairs(n, func(k, v *yaml.Node) error {
		// A null value is the same as leaving the key out.
		if isNull(v) {
			return nil
		}
		var err error
		switch k.Value {
		case "mods":
			def.mods, err = modifiersCodec.decode(ctx, v, 0)
		case "mode":
			var expr string
			if expr, err = stringCodec.decode(ctx, v, ""); err == nil {
				def.modes, err = matchmode.ParseFilter(expr)
			}
		case "key":
			def.key, err = scalar(v)
		case "mouse":
			def.mouse, err = scalar(v)
		case "action":
			def.action, err = scalar(v)
		default:
			var value string
			if value, err = scalar(v); err == nil {
				if def.params == nil {
					def.params = make(map[string]string)
				}
				def.params[strings.ToLower(k.Value)] = value
			}
		}
		if err != nil {
			return fmt.Errorf("%s: %w", k.Value, err)
		}
		return nil
	})
	if err != nil {
		return def, err
	}
	if def.action == "" {
		return def, fmt.Errorf("%w: action is required", ErrInvalidBinding)
	}
	return def, nil
}
