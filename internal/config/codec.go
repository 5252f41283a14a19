package config

import (
	"cmp"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/dshills/termcore/internal/input/key"
)

// codec decodes one value type from a document node and formats it back.
// decode receives the previous value so partial mappings can update it.
// Values with a multi-line form set block; all others are written inline
// with format.
type codec[T any] struct {
	decode func(ctx *readContext, n *yaml.Node, prev T) (T, error)
	format func(v T) string
	block  func(w *writer, key string, v T)
}

func (c codec[T]) render(w *writer, key string, v T) {
	if c.block != nil {
		c.block(w, key, v)
		return
	}
	w.line(key + ": " + c.format(v))
}

func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	return n == nil || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}

func scalar(n *yaml.Node) (string, error) {
	n = resolve(n)
	if n.Kind != yaml.ScalarNode {
		return "", invalid("expected a scalar, got %s", kindName(n))
	}
	return n.Value, nil
}

func kindName(n *yaml.Node) string {
	switch n.Kind {
	case yaml.MappingNode:
		return "a mapping"
	case yaml.SequenceNode:
		return "a sequence"
	case yaml.ScalarNode:
		return fmt.Sprintf("%q", n.Value)
	default:
		return "an unsupported node"
	}
}

func decodeScalar[T any](n *yaml.Node, what string) (T, error) {
	var v T
	n = resolve(n)
	if n.Kind != yaml.ScalarNode || isNull(n) {
		return v, invalid("expected %s, got %s", what, kindName(n))
	}
	if err := n.Decode(&v); err != nil {
		return v, invalid("expected %s, got %q", what, n.Value)
	}
	return v, nil
}

// quote renders a string as a YAML double-quoted scalar.
func quote(s string) string {
	return strconv.Quote(s)
}

var boolCodec = codec[bool]{
	decode: func(_ *readContext, n *yaml.Node, _ bool) (bool, error) {
		return decodeScalar[bool](n, "a boolean")
	},
	format: strconv.FormatBool,
}

func intCodec(lo, hi int) codec[int] {
	return codec[int]{
		decode: func(_ *readContext, n *yaml.Node, _ int) (int, error) {
			v, err := decodeScalar[int](n, "an integer")
			if err != nil {
				return 0, err
			}
			if v < lo || v > hi {
				return 0, fmt.Errorf("%w: %d not in [%d, %d]", ErrOutOfRange, v, lo, hi)
			}
			return v, nil
		},
		format: strconv.Itoa,
	}
}

func uintCodec(lo uint) codec[uint] {
	return codec[uint]{
		decode: func(_ *readContext, n *yaml.Node, _ uint) (uint, error) {
			v, err := decodeScalar[uint](n, "a non-negative integer")
			if err != nil {
				return 0, err
			}
			if v < lo {
				return 0, fmt.Errorf("%w: %d is less than %d", ErrOutOfRange, v, lo)
			}
			return v, nil
		},
		format: func(v uint) string { return strconv.FormatUint(uint64(v), 10) },
	}
}

func floatCodec(lo, hi float64) codec[float64] {
	return codec[float64]{
		decode: func(_ *readContext, n *yaml.Node, _ float64) (float64, error) {
			v, err := decodeScalar[float64](n, "a number")
			if err != nil {
				return 0, err
			}
			if math.IsNaN(v) || v < lo || v > hi {
				return 0, fmt.Errorf("%w: %g not in [%g, %g]", ErrOutOfRange, v, lo, hi)
			}
			return v, nil
		},
		format: func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) },
	}
}

var stringCodec = codec[string]{
	decode: func(_ *readContext, n *yaml.Node, _ string) (string, error) {
		n = resolve(n)
		if isNull(n) {
			return "", nil
		}
		return scalar(n)
	},
	format: quote,
}

var nonEmptyStringCodec = codec[string]{
	decode: func(ctx *readContext, n *yaml.Node, prev string) (string, error) {
		s, err := scalar(n)
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(s) == "" {
			return "", invalid("empty name")
		}
		return s, nil
	},
	format: quote,
}

const maxDurationMillis = math.MaxInt64 / int64(time.Millisecond)

// durationCodec reads and writes durations as whole milliseconds.
var durationCodec = codec[time.Duration]{
	decode: func(_ *readContext, n *yaml.Node, _ time.Duration) (time.Duration, error) {
		ms, err := decodeScalar[int64](n, "a millisecond count")
		if err != nil {
			return 0, err
		}
		if ms < 0 {
			return 0, fmt.Errorf("%w: negative duration %d", ErrOutOfRange, ms)
		}
		if ms > maxDurationMillis {
			return 0, fmt.Errorf("%w: %d exceeds %d", ErrOutOfRange, ms, maxDurationMillis)
		}
		return time.Duration(ms) * time.Millisecond, nil
	},
	format: func(d time.Duration) string { return strconv.FormatInt(d.Milliseconds(), 10) },
}

func enumCodec[E enum](names []string) codec[E] {
	return codec[E]{
		decode: func(_ *readContext, n *yaml.Node, _ E) (E, error) {
			s, err := scalar(n)
			if err != nil {
				return 0, err
			}
			return parseEnum[E](names, s)
		},
		format: func(v E) string { return enumString(names, v) },
	}
}

// modifiersCodec accepts a list of names or a single name and writes the
// list form in the fixed order Shift, Alt, Control, Super.
var modifiersCodec = codec[key.Modifier]{
	decode: func(_ *readContext, n *yaml.Node, _ key.Modifier) (key.Modifier, error) {
		names, err := scalarList(n)
		if err != nil {
			return 0, err
		}
		mods, err := key.ParseModifiers(names...)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidValue, err)
		}
		return mods, nil
	},
	format: formatModifiers,
}

func formatModifiers(m key.Modifier) string {
	return "[" + strings.Join(m.Names(), ", ") + "]"
}

var colorCodec = codec[colorful.Color]{
	decode: func(_ *readContext, n *yaml.Node, _ colorful.Color) (colorful.Color, error) {
		s, err := scalar(n)
		if err != nil {
			return colorful.Color{}, err
		}
		c, err := colorful.Hex(strings.TrimSpace(s))
		if err != nil {
			return colorful.Color{}, invalid("%q is not a #rrggbb color", s)
		}
		return c, nil
	},
	format: func(c colorful.Color) string { return quote(c.Hex()) },
}

// historyLimitCodec writes -1 for an unbounded limit and accepts -1,
// "unbounded" or "infinite" back.
var historyLimitCodec = codec[HistoryLimit]{
	decode: func(_ *readContext, n *yaml.Node, _ HistoryLimit) (HistoryLimit, error) {
		s, err := scalar(n)
		if err != nil {
			return HistoryLimit{}, err
		}
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "unbounded", "infinite", "-1":
			return Unbounded(), nil
		}
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return HistoryLimit{}, invalid("expected a line count, -1 or unbounded, got %q", s)
		}
		if v < 0 {
			return HistoryLimit{}, fmt.Errorf("%w: negative line count %d", ErrOutOfRange, v)
		}
		return LimitLines(v), nil
	},
	format: HistoryLimit.String,
}

// scalarList returns the values of a sequence of scalars. A lone scalar
// is a one-element list and null is the empty list.
func scalarList(n *yaml.Node) ([]string, error) {
	n = resolve(n)
	switch {
	case isNull(n):
		return nil, nil
	case n.Kind == yaml.ScalarNode:
		return []string{n.Value}, nil
	case n.Kind != yaml.SequenceNode:
		return nil, invalid("expected a list, got %s", kindName(n))
	}
	var out []string
	for _, item := range n.Content {
		s, err := scalar(item)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

var stringListCodec = codec[[]string]{
	decode: func(_ *readContext, n *yaml.Node, _ []string) ([]string, error) {
		return scalarList(n)
	},
	format: formatStringList,
}

func formatStringList(list []string) string {
	quoted := make([]string, len(list))
	for i, s := range list {
		quoted[i] = quote(s)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// mappingPairs calls fn for every key/value pair of a mapping node.
func mappingPairs(n *yaml.Node, fn func(k, v *yaml.Node) error) error {
	n = resolve(n)
	if isNull(n) {
		return nil
	}
	if n.Kind != yaml.MappingNode {
		return invalid("expected a mapping, got %s", kindName(n))
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if err := fn(n.Content[i], resolve(n.Content[i+1])); err != nil {
			return err
		}
	}
	return nil
}

func mapCodec[K cmp.Ordered, V any](
	decodeKey func(string) (K, error), formatKey func(K) string,
	value codec[V],
) codec[map[K]V] {
	return codec[map[K]V]{
		decode: func(ctx *readContext, n *yaml.Node, _ map[K]V) (map[K]V, error) {
			var out map[K]V
			err := mappingPairs(n, func(kn, vn *yaml.Node) error {
				k, err := decodeKey(kn.Value)
				if err != nil {
					return err
				}
				var zero V
				v, err := value.decode(ctx, vn, zero)
				if err != nil {
					return fmt.Errorf("%s: %w", kn.Value, err)
				}
				if out == nil {
					out = make(map[K]V)
				}
				out[k] = v
				return nil
			})
			return out, err
		},
		block: func(w *writer, key string, m map[K]V) {
			if len(m) == 0 {
				w.line(key + ": {}")
				return
			}
			w.line(key + ":")
			w.enter()
			for _, k := range slices.Sorted(maps.Keys(m)) {
				value.render(w, formatKey(k), m[k])
			}
			w.leave()
		},
	}
}

var stringMapCodec = mapCodec(
	func(s string) (string, error) { return s, nil }, quote,
	stringCodec,
)

var stringBoolMapCodec = mapCodec(
	func(s string) (string, error) { return s, nil }, quote,
	boolCodec,
)

var intBoolMapCodec = mapCodec(
	func(s string) (int, error) {
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return 0, invalid("expected a mode number, got %q", s)
		}
		return v, nil
	},
	strconv.Itoa,
	boolCodec,
)

var (
	fontWeightCodec = enumCodec[FontWeight](fontWeightNames)
	fontSlantCodec  = enumCodec[FontSlant](fontSlantNames)
)

// fontCodec accepts a bare family name or a mapping of family, weight,
// slant and features. Keys missing from the mapping keep their previous
// value.
var fontCodec = codec[FontDescription]{
	decode: func(ctx *readContext, n *yaml.Node, prev FontDescription) (FontDescription, error) {
		n = resolve(n)
		font := prev.Clone()
		if n.Kind == yaml.ScalarNode && !isNull(n) {
			font.Family = n.Value
			return font, nil
		}
		err := mappingPairs(n, func(k, v *yaml.Node) error {
			var err error
			switch k.Value {
			case "family":
				font.Family, err = stringCodec.decode(ctx, v, font.Family)
			case "weight":
				font.Weight, err = fontWeightCodec.decode(ctx, v, font.Weight)
			case "slant":
				font.Slant, err = fontSlantCodec.decode(ctx, v, font.Slant)
			case "features":
				font.Features, err = scalarList(v)
			default:
				ctx.unknown(k.Value, k, fontKeys)
			}
			if err != nil {
				return fmt.Errorf("%s: %w", k.Value, err)
			}
			return nil
		})
		if err != nil {
			return prev, err
		}
		return font, nil
	},
	block: func(w *writer, key string, f FontDescription) {
		w.line(key + ":")
		w.enter()
		w.line("family: " + quote(f.Family))
		w.line("weight: " + f.Weight.String())
		w.line("slant: " + f.Slant.String())
		w.line("features: " + formatStringList(f.Features))
		w.leave()
	},
}

var (
	fontKeys      = []string{"family", "weight", "slant", "features"}
	dualColorKeys = []string{"light", "dark"}
)

// colorConfigCodec accepts a scheme name or a {light, dark} mapping and
// resolves names against the document's color schemes.
var colorConfigCodec = codec[ColorConfig]{
	decode: func(ctx *readContext, n *yaml.Node, prev ColorConfig) (ColorConfig, error) {
		n = resolve(n)
		if isNull(n) {
			return prev, nil
		}
		if n.Kind == yaml.ScalarNode {
			ref, err := ctx.scheme(n.Value)
			if err != nil {
				return prev, err
			}
			return SimpleColorConfig{Scheme: ref}, nil
		}

		dual := DualColorConfig{
			Light: SchemeRef{Name: DefaultSchemeName},
			Dark:  SchemeRef{Name: DefaultSchemeName},
		}
		err := mappingPairs(n, func(k, v *yaml.Node) error {
			name, err := scalar(v)
			if err != nil {
				return fmt.Errorf("%s: %w", k.Value, err)
			}
			switch k.Value {
			case "light":
				dual.Light.Name = name
			case "dark":
				dual.Dark.Name = name
			default:
				ctx.unknown(k.Value, k, dualColorKeys)
			}
			return nil
		})
		if err != nil {
			return prev, err
		}
		if dual.Light, err = ctx.scheme(dual.Light.Name); err != nil {
			return prev, err
		}
		if dual.Dark, err = ctx.scheme(dual.Dark.Name); err != nil {
			return prev, err
		}
		return dual, nil
	},
	block: func(w *writer, key string, c ColorConfig) {
		switch c := c.(type) {
		case SimpleColorConfig:
			w.line(key + ": " + quote(c.Scheme.Name))
		case DualColorConfig:
			w.line(key + ":")
			w.enter()
			w.line("light: " + quote(c.Light.Name))
			w.line("dark: " + quote(c.Dark.Name))
			w.leave()
		default:
			panic(fmt.Sprintf("config: unhandled color config %T", c))
		}
	},
}
