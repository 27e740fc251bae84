// Package format defines the document parser interface used by
// file-backed layers. Parsers read a document's top-level mapping into
// an insertion-ordered map and serialize it back, preserving key
// order both ways.
package format

import (
	"fmt"

	"github.com/yacchi/kasane/layer/ordered"
)

// Parser parses and serializes a document's top-level mapping.
//
// Only the top level is order-preserving; nested mappings decode to
// plain map[string]any, since the chain only ranks top-level keys.
type Parser interface {
	// Format returns the format name (e.g. "json", "yaml").
	Format() string

	// Parse decodes data into an ordered map. Empty input yields an
	// empty map. A top-level value that is not a mapping is an error.
	Parse(data []byte) (*ordered.Map[string, any], error)

	// Marshal serializes the map with keys in iteration order.
	Marshal(m *ordered.Map[string, any]) ([]byte, error)
}

// NotMappingError is returned by Parse when the document's top-level
// value is not a mapping.
type NotMappingError struct {
	Format string
	Actual string
}

func (e *NotMappingError) Error() string {
	return fmt.Sprintf("%s: top-level value is %s, want mapping", e.Format, e.Actual)
}
