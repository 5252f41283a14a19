package loader

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrNotMapping is returned when a document's root is not a mapping.
var ErrNotMapping = errors.New("document root is not a mapping")

var yamlLine = regexp.MustCompile(`line (\d+)`)

// Parse parses data in the given format and returns the root mapping node.
// An empty document yields an empty mapping.
func Parse(source string, data []byte, format Format) (*yaml.Node, error) {
	switch format {
	case FormatTOML:
		return parseTOML(source, data)
	default:
		return parseYAML(source, data)
	}
}

func parseYAML(source string, data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		pe := &ParseError{
			Path:    source,
			Message: strings.TrimPrefix(err.Error(), "yaml: "),
			Err:     err,
		}
		if m := yamlLine.FindStringSubmatch(err.Error()); m != nil {
			pe.Line, _ = strconv.Atoi(m[1])
		}
		return nil, pe
	}
	return rootMapping(source, &doc)
}

func parseTOML(source string, data []byte) (*yaml.Node, error) {
	var tree map[string]any
	if err := toml.Unmarshal(data, &tree); err != nil {
		pe := &ParseError{
			Path:    source,
			Message: err.Error(),
			Err:     err,
		}
		var de *toml.DecodeError
		if errors.As(err, &de) {
			pe.Line, pe.Column = de.Position()
		}
		return nil, pe
	}
	if tree == nil {
		tree = map[string]any{}
	}

	var doc yaml.Node
	if err := doc.Encode(tree); err != nil {
		return nil, &ParseError{Path: source, Message: err.Error(), Err: err}
	}
	return rootMapping(source, &doc)
}

func rootMapping(source string, doc *yaml.Node) (*yaml.Node, error) {
	n := doc
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return emptyMapping(), nil
		}
		n = n.Content[0]
	}
	switch n.Kind {
	case 0:
		return emptyMapping(), nil
	case yaml.MappingNode:
		return n, nil
	case yaml.ScalarNode:
		if n.Tag == "!!null" || n.Value == "" {
			return emptyMapping(), nil
		}
	}
	return nil, &ParseError{
		Path:    source,
		Line:    n.Line,
		Column:  n.Column,
		Message: fmt.Sprintf("%v, got %s", ErrNotMapping, kindName(n.Kind)),
		Err:     ErrNotMapping,
	}
}

func emptyMapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	case yaml.MappingNode:
		return "mapping"
	default:
		return "document"
	}
}
