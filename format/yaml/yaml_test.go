package yaml_test

import (
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/yacchi/kasane/format"
	"github.com/yacchi/kasane/format/yaml"
	"github.com/yacchi/kasane/layer/ordered"
)

func TestParser_Format(t *testing.T) {
	if got := yaml.New().Format(); got != "yaml" {
		t.Errorf("Format() = %q, want %q", got, "yaml")
	}
}

func TestParse_PreservesKeyOrder(t *testing.T) {
	data := []byte("zebra: 1\napple: 2\nmango: 3\n")

	m, err := yaml.New().Parse(data)
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}

	want := []string{"zebra", "apple", "mango"}
	if got := m.Keys(); !slices.Equal(got, want) {
		t.Errorf("Keys() = %v, want document order %v", got, want)
	}
}

func TestParse_ValueTypes(t *testing.T) {
	data := []byte(strings.Join([]string{
		"name: api",
		"port: 8080",
		"ratio: 0.5",
		"debug: true",
		"empty: null",
		"tags:",
		"  - a",
		"  - b",
		"nested:",
		"  inner: v",
	}, "\n"))

	m, err := yaml.New().Parse(data)
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}

	if v, _ := m.Get("name"); v != "api" {
		t.Errorf("name = %v, want api", v)
	}
	if v, _ := m.Get("port"); v != 8080 {
		t.Errorf("port = %v (%T), want int 8080", v, v)
	}
	if v, _ := m.Get("ratio"); v != 0.5 {
		t.Errorf("ratio = %v, want 0.5", v)
	}
	if v, _ := m.Get("debug"); v != true {
		t.Errorf("debug = %v, want true", v)
	}
	if v, _ := m.Get("empty"); v != nil {
		t.Errorf("empty = %v, want nil", v)
	}
	if v, _ := m.Get("tags"); len(v.([]any)) != 2 {
		t.Errorf("tags = %v, want 2 elements", v)
	}
	nested, _ := m.Get("nested")
	if nm, ok := nested.(map[string]any); !ok || nm["inner"] != "v" {
		t.Errorf("nested = %v (%T), want map with inner=v", nested, nested)
	}
}

func TestParse_EmptyInput(t *testing.T) {
	for _, data := range [][]byte{nil, []byte(""), []byte("  \n"), []byte("---\n")} {
		m, err := yaml.New().Parse(data)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", data, err)
		}
		if m.Len() != 0 {
			t.Errorf("Parse(%q) returned %d keys, want 0", data, m.Len())
		}
	}
}

func TestParse_NotMapping(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "sequence", data: "- a\n- b\n"},
		{name: "scalar", data: "just a string\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := yaml.New().Parse([]byte(tt.data))
			var nme *format.NotMappingError
			if !errors.As(err, &nme) {
				t.Fatalf("Parse error = %v, want NotMappingError", err)
			}
			if nme.Format != "yaml" {
				t.Errorf("Format = %q, want yaml", nme.Format)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := yaml.New().Parse([]byte("key: [unterminated\n")); err == nil {
		t.Error("Parse of malformed document returned nil error")
	}
}

func TestMarshal_KeyOrder(t *testing.T) {
	m := ordered.New[string, any]()
	m.Set("zebra", 1)
	m.Set("apple", "two")
	m.Set("mango", true)

	out, err := yaml.New().Marshal(m)
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}

	want := "zebra: 1\napple: two\nmango: true\n"
	if string(out) != want {
		t.Errorf("Marshal = %q, want %q", out, want)
	}
}

func TestMarshal_NormalizesJSONNumbers(t *testing.T) {
	// Values that crossed over from the JSON parser must come out as
	// YAML numbers, not quoted strings.
	m := ordered.New[string, any]()
	m.Set("count", json.Number("42"))
	m.Set("ratio", json.Number("0.25"))

	out, err := yaml.New().Marshal(m)
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}

	want := "count: 42\nratio: 0.25\n"
	if string(out) != want {
		t.Errorf("Marshal = %q, want %q", out, want)
	}
}

func TestMarshal_RoundTrip(t *testing.T) {
	src := []byte("host: localhost\nport: 8080\ndebug: false\n")
	p := yaml.New()

	m, err := p.Parse(src)
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}
	out, err := p.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}
	m2, err := p.Parse(out)
	if err != nil {
		t.Fatalf("Parse of marshaled output error = %v", err)
	}

	if !slices.Equal(m2.Keys(), []string{"host", "port", "debug"}) {
		t.Errorf("round-trip keys = %v, want [host port debug]", m2.Keys())
	}
	if v, _ := m2.Get("port"); v != 8080 {
		t.Errorf("round-trip port = %v, want 8080", v)
	}
}
