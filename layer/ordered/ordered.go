// Package ordered provides an insertion-ordered mutable map layer.
// It is the canonical layer type for chains: keys iterate in the order
// they were first set, so a chain composed of ordered layers has a
// fully deterministic iteration order.
package ordered

import (
	"cmp"
	"slices"

	"github.com/yacchi/kasane/layer"
)

// Map is a mutable key-value mapping that remembers insertion order.
// Updating an existing key keeps its original position; deleting and
// re-adding a key moves it to the end.
//
// A Map is used by reference. Chains hold the pointer, so mutations
// made here are visible through every chain that includes the map.
type Map[K comparable, V any] struct {
	keys   []K
	values map[K]V
}

// Ensure Map implements the layer.Layer interface.
var _ layer.Layer[string, int] = (*Map[string, int])(nil)

// New creates an empty ordered map.
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{
		values: make(map[K]V),
	}
}

// FromMap creates an ordered map seeded from a plain Go map.
// The source map is copied, not aliased; its keys are inserted in
// sorted order since Go maps have no iteration order of their own.
// Use layer/mapdata to share a plain map with a chain instead.
func FromMap[K cmp.Ordered, V any](src map[K]V) *Map[K, V] {
	m := New[K, V]()
	keys := make([]K, 0, len(src))
	for k := range src {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		m.Set(k, src[k])
	}
	return m
}

// Get returns the value for key and whether the key is present.
func (m *Map[K, V]) Get(key K) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Set stores value under key. New keys are appended to the iteration
// order; existing keys keep their position.
func (m *Map[K, V]) Set(key K, value V) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Delete removes key and reports whether it was present.
// The relative order of the remaining keys is preserved.
func (m *Map[K, V]) Delete(key K) bool {
	if _, ok := m.values[key]; !ok {
		return false
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = slices.Delete(m.keys, i, i+1)
			break
		}
	}
	return true
}

// Len returns the number of keys.
func (m *Map[K, V]) Len() int {
	return len(m.values)
}

// Keys returns all keys in insertion order.
// The returned slice is a copy; mutating it does not affect the map.
func (m *Map[K, V]) Keys() []K {
	return slices.Clone(m.keys)
}

// Values returns all values in key insertion order.
func (m *Map[K, V]) Values() []V {
	out := make([]V, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, m.values[k])
	}
	return out
}
