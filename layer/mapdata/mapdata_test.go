package mapdata_test

import (
	"slices"
	"testing"

	"github.com/yacchi/kasane/kstest"
	"github.com/yacchi/kasane/layer"
	"github.com/yacchi/kasane/layer/mapdata"
)

func TestLayer_Compliance(t *testing.T) {
	factory := func(entries []kstest.KV) layer.Layer[string, any] {
		data := make(map[string]any, len(entries))
		for _, e := range entries {
			data[e.Key] = e.Value
		}
		return mapdata.Wrap("test", data)
	}
	kstest.NewLayerTester(t, factory,
		kstest.SkipOrderTest("plain maps have no insertion order; keys are sorted"),
	).TestAll()
}

func TestWrap_AliasesMap(t *testing.T) {
	data := map[string]int{"x": 1}
	l := mapdata.Wrap("shared", data)

	// External mutation is visible through the layer.
	data["x"] = 13
	if v, _ := l.Get("x"); v != 13 {
		t.Errorf("Get(x) = %d after external mutation, want 13", v)
	}

	// Layer writes land in the original map.
	l.Set("y", 2)
	if data["y"] != 2 {
		t.Errorf("data[y] = %d after layer Set, want 2", data["y"])
	}
	l.Delete("x")
	if _, ok := data["x"]; ok {
		t.Error("data still contains x after layer Delete")
	}

	if l.Map()["y"] != 2 {
		t.Error("Map() does not return the shared map")
	}
}

func TestWrap_NilMap(t *testing.T) {
	l := mapdata.Wrap[string, int]("empty", nil)

	if l.Len() != 0 {
		t.Errorf("Len() = %d for nil map, want 0", l.Len())
	}
	l.Set("x", 1)
	if v, _ := l.Get("x"); v != 1 {
		t.Errorf("Get(x) = %d, want 1", v)
	}
}

func TestLayer_KeysSorted(t *testing.T) {
	l := mapdata.Wrap("cfg", map[string]int{"zebra": 1, "apple": 2, "mango": 3})

	want := []string{"apple", "mango", "zebra"}
	if got := l.Keys(); !slices.Equal(got, want) {
		t.Errorf("Keys() = %v, want sorted %v", got, want)
	}
}

func TestLayer_Name(t *testing.T) {
	l := mapdata.Wrap("defaults", map[string]int{})
	if got := l.Name(); got != layer.Name("defaults") {
		t.Errorf("Name() = %q, want %q", got, "defaults")
	}
}
