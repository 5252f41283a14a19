package loader

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvPrefix starts every environment variable termcore reads.
const EnvPrefix = "TERMCORE_"

// Variables read by the command line tool. They never override document
// fields.
const (
	EnvConfig    = EnvPrefix + "CONFIG"
	EnvLogLevel  = EnvPrefix + "LOG_LEVEL"
	EnvLogFormat = EnvPrefix + "LOG_FORMAT"
)

// envPathSeparator separates path elements in a variable name. Document
// keys contain single underscores, so a double one is needed.
const envPathSeparator = "__"

// ErrOverridePath is returned when an override path runs through a value
// that is not a mapping.
var ErrOverridePath = errors.New("override path is not a mapping")

// Override sets one document value from an environment variable.
type Override struct {
	// Env is the variable name.
	Env string
	// Path holds the document keys leading to the value.
	Path []string
	// Value is the raw variable value.
	Value string
}

// Key returns the dot-separated document path.
func (o Override) Key() string {
	return strings.Join(o.Path, ".")
}

// EnvLoader collects document overrides from environment variables.
//
// TERMCORE_LIVE_CONFIG=true sets live_config and
// TERMCORE_PROFILES__MAIN__FONT__SIZE=14 sets profiles.main.font.size.
// Names are lower-cased.
type EnvLoader struct {
	prefix   string
	reserved map[string]struct{}
}

// NewEnvLoader creates a loader for variables starting with prefix. The
// prefix should include the trailing underscore. The command line
// variables are reserved.
func NewEnvLoader(prefix string) *EnvLoader {
	l := &EnvLoader{prefix: prefix, reserved: make(map[string]struct{})}
	l.Reserve(EnvConfig, EnvLogLevel, EnvLogFormat)
	return l
}

// Reserve excludes variables from the overrides.
func (l *EnvLoader) Reserve(names ...string) {
	for _, name := range names {
		l.reserved[name] = struct{}{}
	}
}

// Load returns the overrides found in environ, a list of "NAME=value"
// entries as returned by os.Environ, sorted by variable name.
// Empty values are valid values, not unset variables.
func (l *EnvLoader) Load(environ []string) []Override {
	var out []Override
	for _, env := range environ {
		name, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}
		if _, skip := l.reserved[name]; skip {
			continue
		}
		path := l.envToPath(name)
		if path == nil {
			continue
		}
		out = append(out, Override{Env: name, Path: path, Value: value})
	}
	slices.SortFunc(out, func(a, b Override) int { return strings.Compare(a.Env, b.Env) })
	return out
}

// envToPath converts TERMCORE_PROFILES__MAIN__TAB_WIDTH to
// [profiles main tab_width]. It returns nil when an element is empty.
func (l *EnvLoader) envToPath(env string) []string {
	name := strings.TrimPrefix(env, l.prefix)
	parts := strings.Split(name, envPathSeparator)
	for i, p := range parts {
		if p == "" {
			return nil
		}
		parts[i] = strings.ToLower(p)
	}
	return parts
}

// Apply writes o into the root mapping, creating intermediate mappings.
// The value is read as a YAML flow value so "true", "14" and "[a, b]"
// keep their types; text that does not parse is taken as a string.
func (o Override) Apply(root *yaml.Node) error {
	n := root
	for i, key := range o.Path {
		if n.Kind != yaml.MappingNode {
			return fmt.Errorf("%s: %w at %q", o.Env, ErrOverridePath, strings.Join(o.Path[:i], "."))
		}
		last := i == len(o.Path)-1
		idx := mappingIndex(n, key)
		switch {
		case idx >= 0 && last:
			n.Content[idx+1] = parseValue(o.Value)
			return nil
		case idx >= 0:
			n = n.Content[idx+1]
			for n.Kind == yaml.AliasNode {
				n = n.Alias
			}
			if isNullNode(n) {
				*n = yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
			}
		case last:
			n.Content = append(n.Content, keyNode(key), parseValue(o.Value))
			return nil
		default:
			child := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
			n.Content = append(n.Content, keyNode(key), child)
			n = child
		}
	}
	return nil
}

// mappingIndex returns the content index of key in mapping n, or -1.
func mappingIndex(n *yaml.Node, key string) int {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return i
		}
	}
	return -1
}

func keyNode(key string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
}

func isNullNode(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}

// parseValue reads s as a YAML value. The nodes carry no source position.
func parseValue(s string) *yaml.Node {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(s), &doc); err == nil && len(doc.Content) == 1 {
		clearPosition(doc.Content[0])
		return doc.Content[0]
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func clearPosition(n *yaml.Node) {
	n.Line, n.Column = 0, 0
	for _, c := range n.Content {
		clearPosition(c)
	}
}

// GetEnvOrDefault returns the environment variable value or a default.
func GetEnvOrDefault(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}
