// Package yaml provides an order-preserving YAML parser for
// file-backed layers.
//
// Decoding into map[string]any would lose the document's key order,
// so the parser walks the yaml.Node tree instead and records the
// top-level mapping pairs in document order.
package yaml

import (
	"bytes"
	"encoding/json"
	"fmt"

	goyaml "gopkg.in/yaml.v3"

	"github.com/yacchi/kasane/format"
	"github.com/yacchi/kasane/layer/ordered"
)

// Parser implements format.Parser for YAML documents.
type Parser struct{}

// Ensure Parser implements the format.Parser interface.
var _ format.Parser = (*Parser)(nil)

// New creates a YAML parser.
func New() *Parser {
	return &Parser{}
}

// Format returns "yaml".
func (*Parser) Format() string {
	return "yaml"
}

// Parse decodes data into an ordered map, preserving the document's
// top-level key order. Empty input and empty documents yield an empty
// map. Nested mappings decode to plain map[string]any.
func (*Parser) Parse(data []byte) (*ordered.Map[string, any], error) {
	m := ordered.New[string, any]()
	if len(bytes.TrimSpace(data)) == 0 {
		return m, nil
	}

	var root goyaml.Node
	if err := goyaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return m, nil
	}

	doc := root.Content[0]
	if doc.Kind != goyaml.MappingNode {
		return nil, &format.NotMappingError{Format: "yaml", Actual: kindName(doc.Kind)}
	}

	for i := 0; i+1 < len(doc.Content); i += 2 {
		keyNode, valNode := doc.Content[i], doc.Content[i+1]

		var key string
		if err := keyNode.Decode(&key); err != nil {
			return nil, fmt.Errorf("parse yaml: decode key at line %d: %w", keyNode.Line, err)
		}
		var val any
		if err := valNode.Decode(&val); err != nil {
			return nil, fmt.Errorf("parse yaml: decode value for %q: %w", key, err)
		}
		m.Set(key, val)
	}
	return m, nil
}

// Marshal serializes the map as a YAML mapping with keys in iteration
// order.
func (*Parser) Marshal(m *ordered.Map[string, any]) ([]byte, error) {
	doc := &goyaml.Node{Kind: goyaml.MappingNode, Tag: "!!map"}
	for _, k := range m.Keys() {
		v, _ := m.Get(k)

		keyNode := &goyaml.Node{Kind: goyaml.ScalarNode, Tag: "!!str", Value: k}
		valNode := &goyaml.Node{}
		if err := valNode.Encode(normalize(v)); err != nil {
			return nil, fmt.Errorf("marshal yaml: encode value for %q: %w", k, err)
		}
		doc.Content = append(doc.Content, keyNode, valNode)
	}

	out, err := goyaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}
	return out, nil
}

// normalize converts json.Number values (produced by the JSON parser)
// into native numbers so they emit as YAML numbers, not strings.
func normalize(v any) any {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}

// kindName names a yaml node kind for error messages.
func kindName(k goyaml.Kind) string {
	switch k {
	case goyaml.DocumentNode:
		return "document"
	case goyaml.SequenceNode:
		return "sequence"
	case goyaml.MappingNode:
		return "mapping"
	case goyaml.ScalarNode:
		return "scalar"
	case goyaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
