// Package json provides an order-preserving JSON parser for
// file-backed layers.
//
// The standard library decodes JSON objects into Go maps, losing the
// document's key order. This parser walks the document with the
// json-iterator streaming API instead, so the top-level keys come out
// in the order they appear in the file. Numbers decode as json.Number
// to avoid float64 rounding before the caller decides what to do with
// them.
package json

import (
	"bytes"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/yacchi/kasane/format"
	"github.com/yacchi/kasane/layer/ordered"
)

// config keeps numbers as json.Number so values survive exact
// comparison in package calc.
var config = jsoniter.Config{UseNumber: true}.Froze()

// Parser implements format.Parser for JSON documents.
type Parser struct{}

// Ensure Parser implements the format.Parser interface.
var _ format.Parser = (*Parser)(nil)

// New creates a JSON parser.
func New() *Parser {
	return &Parser{}
}

// Format returns "json".
func (*Parser) Format() string {
	return "json"
}

// Parse decodes data into an ordered map, preserving the document's
// top-level key order. Empty or whitespace-only input yields an empty
// map.
func (*Parser) Parse(data []byte) (*ordered.Map[string, any], error) {
	m := ordered.New[string, any]()
	if len(bytes.TrimSpace(data)) == 0 {
		return m, nil
	}

	iter := config.BorrowIterator(data)
	defer config.ReturnIterator(iter)

	if next := iter.WhatIsNext(); next != jsoniter.ObjectValue {
		return nil, &format.NotMappingError{Format: "json", Actual: valueTypeName(next)}
	}

	iter.ReadObjectCB(func(it *jsoniter.Iterator, field string) bool {
		m.Set(field, it.Read())
		return true
	})
	if err := iter.Error; err != nil && err != io.EOF {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return m, nil
}

// Marshal serializes the map as a JSON object with keys in iteration
// order, followed by a trailing newline.
func (*Parser) Marshal(m *ordered.Map[string, any]) ([]byte, error) {
	stream := config.BorrowStream(nil)
	defer config.ReturnStream(stream)

	stream.WriteObjectStart()
	for i, k := range m.Keys() {
		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteObjectField(k)
		v, _ := m.Get(k)
		stream.WriteVal(v)
	}
	stream.WriteObjectEnd()
	if err := stream.Error; err != nil {
		return nil, fmt.Errorf("marshal json: %w", err)
	}

	// The stream's buffer is pooled; copy it out.
	out := make([]byte, 0, len(stream.Buffer())+1)
	out = append(out, stream.Buffer()...)
	out = append(out, '\n')
	return out, nil
}

// valueTypeName names a jsoniter value type for error messages.
func valueTypeName(t jsoniter.ValueType) string {
	switch t {
	case jsoniter.StringValue:
		return "string"
	case jsoniter.NumberValue:
		return "number"
	case jsoniter.NilValue:
		return "null"
	case jsoniter.BoolValue:
		return "bool"
	case jsoniter.ArrayValue:
		return "array"
	case jsoniter.ObjectValue:
		return "object"
	default:
		return "invalid"
	}
}
