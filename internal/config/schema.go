package config

import (
	"fmt"
	"log/slog"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dshills/termcore/internal/fuzzy"
)

// field is one row of a schema table: how a struct member of S is
// initialized, loaded from a document node and rendered.
type field[S any] struct {
	key    string
	init   func(s *S, host hostDefaults)
	load   func(ctx *readContext, path string, s *S, n *yaml.Node)
	render func(w *writer, s *S)
}

// fixed returns a default that does not depend on the host.
func fixed[T any](v T) func(hostDefaults) T {
	return func(hostDefaults) T { return v }
}

// entryField binds a documented Entry member to its codec.
func entryField[S, T any](key string, def func(hostDefaults) T, doc string, c codec[T], get func(*S) *Entry[T]) field[S] {
	return field[S]{
		key: key,
		init: func(s *S, host hostDefaults) {
			*get(s) = NewEntry(def(host), doc)
		},
		load: func(ctx *readContext, path string, s *S, n *yaml.Node) {
			e := get(s)
			v, err := c.decode(ctx, n, e.Value())
			if err != nil {
				ctx.fail(path, n, err)
				return
			}
			e.Set(v)
		},
		render: func(w *writer, s *S) {
			e := get(s)
			w.comment(e.Doc())
			c.render(w, key, e.Value())
		},
	}
}

// valueField binds a plain member whose default is set by its container.
func valueField[S, T any](key string, c codec[T], get func(*S) *T) field[S] {
	return field[S]{
		key: key,
		load: func(ctx *readContext, path string, s *S, n *yaml.Node) {
			v, err := c.decode(ctx, n, *get(s))
			if err != nil {
				ctx.fail(path, n, err)
				return
			}
			*get(s) = v
		},
		render: func(w *writer, s *S) {
			c.render(w, key, *get(s))
		},
	}
}

// section nests the fields of N under key.
func section[S, N any](key, doc string, get func(*S) *N, fields []field[N]) field[S] {
	return field[S]{
		key: key,
		init: func(s *S, host hostDefaults) {
			initFields(get(s), host, fields)
		},
		load: func(ctx *readContext, path string, s *S, n *yaml.Node) {
			applyFields(ctx, path, get(s), n, fields)
		},
		render: func(w *writer, s *S) {
			w.comment(doc)
			w.line(key + ":")
			w.enter()
			renderFields(w, get(s), fields)
			w.leave()
		},
	}
}

func initFields[S any](s *S, host hostDefaults, fields []field[S]) {
	for _, f := range fields {
		if f.init != nil {
			f.init(s, host)
		}
	}
}

func renderFields[S any](w *writer, s *S, fields []field[S]) {
	for i, f := range fields {
		if i > 0 && w.indent == 0 {
			w.blank()
		}
		f.render(w, s)
	}
}

// applyFields loads every key of mapping n into s. Unknown keys are
// logged and skipped; fields without a loader are handled by the caller.
func applyFields[S any](ctx *readContext, path string, s *S, n *yaml.Node, fields []field[S]) {
	n = resolve(n)
	if isNull(n) {
		return
	}
	if n.Kind != yaml.MappingNode {
		ctx.fail(path, n, invalid("expected a mapping, got %s", kindName(n)))
		return
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		f, ok := lookupField(fields, k.Value)
		if !ok {
			ctx.unknown(joinPath(path, k.Value), k, fieldKeys(fields))
			continue
		}
		if f.load != nil {
			f.load(ctx, joinPath(path, k.Value), s, v)
		}
	}
}

func lookupField[S any](fields []field[S], key string) (field[S], bool) {
	for _, f := range fields {
		if f.key == key {
			return f, true
		}
	}
	return field[S]{}, false
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

// mappingValue returns the value stored under key in mapping n, or nil.
func mappingValue(n *yaml.Node, key string) *yaml.Node {
	n = resolve(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return resolve(n.Content[i+1])
		}
	}
	return nil
}

// readContext carries the state of one Read call.
type readContext struct {
	logger  *slog.Logger
	issues  []*FieldError
	schemes map[string]Palette
}

// fail records a field error. n may be nil for values that have no
// source line.
func (c *readContext) fail(path string, n *yaml.Node, err error) {
	fe := &FieldError{Path: path, Err: err}
	if n != nil {
		fe.Line = n.Line
	}
	c.issues = append(c.issues, fe)
	c.logger.Warn("invalid configuration value",
		slog.String("path", path),
		slog.Int("line", fe.Line),
		slog.Any("error", err),
	)
}

func (c *readContext) unknown(path string, n *yaml.Node, known []string) {
	attrs := []any{
		slog.String("path", path),
		slog.Int("line", n.Line),
	}
	if s, ok := fuzzy.Suggest(n.Value, known); ok {
		attrs = append(attrs, slog.String("suggestion", s))
	}
	c.logger.Debug("ignoring unknown key", attrs...)
}

func fieldKeys[S any](fields []field[S]) []string {
	keys := make([]string, 0, len(fields))
	for _, f := range fields {
		keys = append(keys, f.key)
	}
	return keys
}

func (c *readContext) scheme(name string) (SchemeRef, error) {
	p, ok := c.schemes[name]
	if !ok {
		return SchemeRef{}, fmt.Errorf("%w: %q", ErrUnknownScheme, name)
	}
	return SchemeRef{Name: name, Palette: p}, nil
}

// docLines splits documentation text into comment lines.
func docLines(doc string) []string {
	doc = strings.TrimSpace(doc)
	if doc == "" {
		return nil
	}
	return strings.Split(doc, "\n")
}
