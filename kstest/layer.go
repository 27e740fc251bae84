// Package kstest provides testing utilities for kasane layer
// implementations.
//
// Example usage with an ordered layer:
//
//	import "github.com/yacchi/kasane/kstest"
//	import "github.com/yacchi/kasane/layer/ordered"
//
//	func TestOrderedLayer_Compliance(t *testing.T) {
//	    factory := func(entries []kstest.KV) layer.Layer[string, any] {
//	        m := ordered.New[string, any]()
//	        for _, e := range entries {
//	            m.Set(e.Key, e.Value)
//	        }
//	        return m
//	    }
//	    kstest.NewLayerTester(t, factory).TestAll()
//	}
package kstest

import (
	"slices"
	"testing"

	"github.com/yacchi/kasane/layer"
)

// KV is a seed entry for a layer under test. Seeds are applied in
// slice order so order-preserving layers can be verified.
type KV struct {
	Key   string
	Value any
}

// LayerFactory creates a layer initialized with the given seed
// entries. The factory is called for each test case to ensure test
// isolation.
type LayerFactory func(entries []KV) layer.Layer[string, any]

// LayerTesterOption configures LayerTester behavior.
type LayerTesterOption func(*LayerTester)

// SkipOrderTest skips the key-order test. Use this for layers that do
// not preserve insertion order (e.g. plain-map adapters, which sort).
// The reason parameter is required to document why the test is
// skipped.
func SkipOrderTest(reason string) LayerTesterOption {
	return func(lt *LayerTester) {
		lt.skipOrderReason = reason
	}
}

// LayerTester verifies layer.Layer implementations against the
// behavior chains rely on.
type LayerTester struct {
	t               *testing.T
	factory         LayerFactory
	skipOrderReason string
}

// NewLayerTester creates a LayerTester for the given LayerFactory.
func NewLayerTester(t *testing.T, factory LayerFactory, opts ...LayerTesterOption) *LayerTester {
	lt := &LayerTester{
		t:       t,
		factory: factory,
	}
	for _, opt := range opts {
		opt(lt)
	}
	return lt
}

// seed is the standard fixture applied by most tests. The keys are
// deliberately not in sorted order so the order test can tell
// insertion order apart from sorted order.
var seed = []KV{
	{Key: "gamma", Value: 3},
	{Key: "alpha", Value: 1},
	{Key: "beta", Value: 2},
}

// TestAll runs all standard compliance tests.
func (lt *LayerTester) TestAll() {
	lt.t.Run("Get", lt.testGet)
	lt.t.Run("Missing", lt.testMissing)
	lt.t.Run("Set", lt.testSet)
	lt.t.Run("Overwrite", lt.testOverwrite)
	lt.t.Run("Delete", lt.testDelete)
	lt.t.Run("Len", lt.testLen)
	lt.t.Run("KeysUnique", lt.testKeysUnique)
	lt.t.Run("KeysOrder", lt.testKeysOrder)
}

// testGet verifies seeded entries are readable.
func (lt *LayerTester) testGet(t *testing.T) {
	l := lt.factory(seed)

	for _, e := range seed {
		got, ok := l.Get(e.Key)
		require(t, ok, "Get(%q) returned ok=false", e.Key)
		if diff := Diff(e.Value, got); diff != "" {
			t.Errorf("Get(%q) mismatch (-want +got):\n%s", e.Key, diff)
		}
	}
}

// testMissing verifies absent keys miss cleanly.
func (lt *LayerTester) testMissing(t *testing.T) {
	l := lt.factory(seed)

	_, ok := l.Get("nonexistent")
	check(t, !ok, "Get(nonexistent) returned ok=true, want false")

	check(t, !l.Delete("nonexistent"), "Delete(nonexistent) returned true, want false")
}

// testSet verifies new keys are created.
func (lt *LayerTester) testSet(t *testing.T) {
	l := lt.factory(seed)

	l.Set("delta", 4)
	got, ok := l.Get("delta")
	require(t, ok, "Get(delta) after Set returned ok=false")
	check(t, ValuesEqual(got, 4), "Get(delta) = %v, want 4", got)
	check(t, l.Len() == len(seed)+1, "Len() = %d after Set, want %d", l.Len(), len(seed)+1)
}

// testOverwrite verifies updating an existing key replaces the value
// without duplicating the key.
func (lt *LayerTester) testOverwrite(t *testing.T) {
	l := lt.factory(seed)

	l.Set("beta", 20)
	got, ok := l.Get("beta")
	require(t, ok, "Get(beta) after overwrite returned ok=false")
	check(t, ValuesEqual(got, 20), "Get(beta) = %v, want 20", got)
	check(t, l.Len() == len(seed), "Len() = %d after overwrite, want %d", l.Len(), len(seed))

	occurrences := 0
	for _, k := range l.Keys() {
		if k == "beta" {
			occurrences++
		}
	}
	check(t, occurrences == 1, "Keys() contains beta %d times, want 1", occurrences)
}

// testDelete verifies deletion removes the key.
func (lt *LayerTester) testDelete(t *testing.T) {
	l := lt.factory(seed)

	require(t, l.Delete("beta"), "Delete(beta) returned false")
	_, ok := l.Get("beta")
	check(t, !ok, "Get(beta) after Delete returned ok=true")
	check(t, l.Len() == len(seed)-1, "Len() = %d after Delete, want %d", l.Len(), len(seed)-1)
	check(t, !slices.Contains(l.Keys(), "beta"), "Keys() still contains beta after Delete")
}

// testLen verifies Len matches the seed count.
func (lt *LayerTester) testLen(t *testing.T) {
	l := lt.factory(seed)
	check(t, l.Len() == len(seed), "Len() = %d, want %d", l.Len(), len(seed))

	empty := lt.factory(nil)
	check(t, empty.Len() == 0, "Len() = %d for empty layer, want 0", empty.Len())
}

// testKeysUnique verifies Keys reports each key exactly once.
func (lt *LayerTester) testKeysUnique(t *testing.T) {
	l := lt.factory(seed)

	keys := l.Keys()
	require(t, len(keys) == len(seed), "Keys() returned %d keys, want %d", len(keys), len(seed))

	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		check(t, !seen[k], "Keys() contains duplicate key %q", k)
		seen[k] = true
	}
	for _, e := range seed {
		check(t, seen[e.Key], "Keys() missing seeded key %q", e.Key)
	}
}

// testKeysOrder verifies insertion order is preserved.
func (lt *LayerTester) testKeysOrder(t *testing.T) {
	if lt.skipOrderReason != "" {
		t.Skip(lt.skipOrderReason)
	}

	l := lt.factory(seed)

	want := make([]string, len(seed))
	for i, e := range seed {
		want[i] = e.Key
	}
	got := l.Keys()
	check(t, slices.Equal(got, want), "Keys() = %v, want insertion order %v", got, want)
}
