package kasane

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/yacchi/kasane/layer"
	"github.com/yacchi/kasane/layer/mapdata"
	"github.com/yacchi/kasane/layer/ordered"
)

// Chain composes zero or more layers into one logical mapping.
//
// Lookups scan the layers in order; the first layer containing a key
// wins. Writes and deletes always target the first layer, regardless
// of what lower layers contain. The chain holds non-owning references:
// the layers are never copied, so mutating an underlying layer (or the
// map it wraps) is immediately visible through the chain.
//
// A Chain value is cheap to copy. NewChild and Parents return new
// Chain values that reference the same underlying layers, so pushing
// a scope, writing into it, and popping it restores the original view
// exactly.
//
// A Chain performs no locking and assumes callers do not mutate its
// layers from multiple goroutines. Layers that reload themselves (see
// source/fs) synchronize internally.
type Chain[K comparable, V any] struct {
	layers []layer.Layer[K, V]
}

// New creates a chain over the given layers. The first layer has the
// highest priority and is the sole target of Set and Delete.
//
// A chain over zero layers is valid: every lookup misses and every
// mutation fails with EmptyChainError.
func New[K comparable, V any](layers ...layer.Layer[K, V]) Chain[K, V] {
	return Chain[K, V]{layers: layers}
}

// Over creates a chain over plain Go maps. Each map is aliased, not
// copied, so external mutations remain visible through the chain:
//
//	a := map[string]int{"x": 1, "z": 3}
//	b := map[string]int{"y": 2, "z": 4}
//	c := kasane.Over(a, b)
//	c.Get("z") // 3, from a
//	a["x"] = 13
//	c.Get("x") // 13, no reconstruction needed
func Over[K cmp.Ordered, V any](maps ...map[K]V) Chain[K, V] {
	layers := make([]layer.Layer[K, V], len(maps))
	for i, m := range maps {
		layers[i] = mapdata.Wrap("", m)
	}
	return Chain[K, V]{layers: layers}
}

// Get returns the value for key from the first layer that contains it.
// Returns a KeyNotFoundError if no layer contains the key.
func (c Chain[K, V]) Get(key K) (V, error) {
	for _, l := range c.layers {
		if v, ok := l.Get(key); ok {
			return v, nil
		}
	}
	var zero V
	return zero, &KeyNotFoundError{Key: key}
}

// Lookup is the comma-ok form of Get.
func (c Chain[K, V]) Lookup(key K) (V, bool) {
	for _, l := range c.layers {
		if v, ok := l.Get(key); ok {
			return v, true
		}
	}
	var zero V
	return zero, false
}

// Has reports whether any layer contains key.
func (c Chain[K, V]) Has(key K) bool {
	_, ok := c.Lookup(key)
	return ok
}

// Set writes key into the first layer, creating it there if absent.
// Lower layers are never written, even if they already contain key.
// Returns an EmptyChainError on a chain with no layers.
func (c Chain[K, V]) Set(key K, value V) error {
	if len(c.layers) == 0 {
		return &EmptyChainError{Op: "set"}
	}
	c.layers[0].Set(key, value)
	return nil
}

// Delete removes key from the first layer only. Returns a
// KeyNotFoundError if the first layer does not contain key, even when
// a lower layer does - lower-layer entries are never deleted through
// the chain. Returns an EmptyChainError on a chain with no layers.
func (c Chain[K, V]) Delete(key K) error {
	if len(c.layers) == 0 {
		return &EmptyChainError{Op: "delete"}
	}
	if !c.layers[0].Delete(key) {
		return &KeyNotFoundError{Key: key, FrontOnly: true}
	}
	return nil
}

// Len returns the number of distinct keys across all layers.
// Duplicate keys in lower layers count once.
func (c Chain[K, V]) Len() int {
	if len(c.layers) == 1 {
		return c.layers[0].Len()
	}
	seen := make(map[K]struct{})
	for _, l := range c.layers {
		for _, k := range l.Keys() {
			seen[k] = struct{}{}
		}
	}
	return len(seen)
}

// Keys returns the union of keys across all layers, each key once.
// Iteration order is layer priority order, then each layer's own key
// order, with duplicates suppressed after their first occurrence.
func (c Chain[K, V]) Keys() []K {
	var keys []K
	seen := make(map[K]struct{})
	for _, l := range c.layers {
		for _, k := range l.Keys() {
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	return keys
}

// Values returns the effective value for every distinct key, in the
// same order as Keys. Each value comes from the highest-priority layer
// that owns its key.
func (c Chain[K, V]) Values() []V {
	keys := c.Keys()
	values := make([]V, 0, len(keys))
	for _, k := range keys {
		v, _ := c.Lookup(k)
		values = append(values, v)
	}
	return values
}

// Entries returns the effective (key, value) pairs in Keys order.
func (c Chain[K, V]) Entries() []Entry[K, V] {
	keys := c.Keys()
	entries := make([]Entry[K, V], 0, len(keys))
	for _, k := range keys {
		v, _ := c.Lookup(k)
		entries = append(entries, Entry[K, V]{Key: k, Value: v})
	}
	return entries
}

// NewChild returns a new chain with a fresh empty ordered layer
// prepended as the highest-priority layer. The existing layers are
// shared, not copied. This is the scope-push operation: writes made
// through the child land in the new layer and shadow the parents.
func (c Chain[K, V]) NewChild() Chain[K, V] {
	layers := make([]layer.Layer[K, V], 0, len(c.layers)+1)
	layers = append(layers, ordered.New[K, V]())
	layers = append(layers, c.layers...)
	return Chain[K, V]{layers: layers}
}

// Parents returns a new chain without the current first layer,
// restoring the view that existed before the last NewChild. Returns
// an EmptyChainError if at most one layer remains.
func (c Chain[K, V]) Parents() (Chain[K, V], error) {
	if len(c.layers) <= 1 {
		return Chain[K, V]{}, &EmptyChainError{Op: "parents"}
	}
	return Chain[K, V]{layers: c.layers[1:]}, nil
}

// Origin returns the layer that supplies the effective value for key,
// along with its position in the chain (0 = highest priority).
// Returns false if no layer contains the key.
func (c Chain[K, V]) Origin(key K) (layer.Layer[K, V], int, bool) {
	for i, l := range c.layers {
		if _, ok := l.Get(key); ok {
			return l, i, true
		}
	}
	return nil, 0, false
}

// Depth returns the number of layers in the chain.
func (c Chain[K, V]) Depth() int {
	return len(c.layers)
}

// Layers returns the chain's layers in priority order. The slice is a
// copy, but the layers themselves are the live references.
func (c Chain[K, V]) Layers() []layer.Layer[K, V] {
	out := make([]layer.Layer[K, V], len(c.layers))
	copy(out, c.layers)
	return out
}

// Flatten merges all layers into a single detached map, each key
// taking its effective value. Unlike the chain itself, the result is a
// snapshot: later mutations of the layers do not show through it.
func (c Chain[K, V]) Flatten() map[K]V {
	out := make(map[K]V)
	for i := len(c.layers) - 1; i >= 0; i-- {
		l := c.layers[i]
		for _, k := range l.Keys() {
			if v, ok := l.Get(k); ok {
				out[k] = v
			}
		}
	}
	return out
}

// String returns the human display form: the flattened view as a
// single mapping literal, in Keys order.
//
//	kasane.Over(a, b).String() // "{x: 1, z: 3, y: 2}"
func (c Chain[K, V]) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, e := range c.Entries() {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%v: %v", e.Key, e.Value)
	}
	b.WriteByte('}')
	return b.String()
}

// GoString returns the diagnostic form used by %#v: one mapping
// literal per layer in priority order, so shadowed entries remain
// visible.
//
//	fmt.Sprintf("%#v", c) // `kasane.Chain({"x": 1, "z": 3}, {"y": 2, "z": 4})`
func (c Chain[K, V]) GoString() string {
	var b strings.Builder
	b.WriteString("kasane.Chain(")
	for i, l := range c.layers {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('{')
		for j, k := range l.Keys() {
			if j > 0 {
				b.WriteString(", ")
			}
			v, _ := l.Get(k)
			fmt.Fprintf(&b, "%#v: %#v", k, v)
		}
		b.WriteByte('}')
	}
	b.WriteByte(')')
	return b.String()
}
