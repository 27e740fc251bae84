// Package mapdata adapts plain Go maps as chain layers.
//
// Unlike layer/ordered, the adapter aliases the caller's map rather
// than copying it: mutations made on the original map are visible
// through any chain that includes the layer, and writes made through
// the chain land in the original map. This is the defining property of
// a chained mapping - the underlying mappings stay owned by their
// creators.
package mapdata

import (
	"cmp"
	"slices"

	"github.com/yacchi/kasane/layer"
)

// Layer wraps a plain map[K]V as a chain layer.
//
// Go maps have no insertion order, so Keys returns keys in sorted
// order to keep iteration deterministic. Use layer/ordered when the
// original insertion order matters.
type Layer[K cmp.Ordered, V any] struct {
	name layer.Name
	data map[K]V
}

// Ensure Layer implements the layer.Layer and layer.Named interfaces.
var (
	_ layer.Layer[string, int] = (*Layer[string, int])(nil)
	_ layer.Named              = (*Layer[string, int])(nil)
)

// Wrap creates a layer sharing the given map. The map is not copied;
// the caller may keep mutating it and the changes show through the
// layer. A nil map is replaced with a fresh empty one.
//
// Example:
//
//	defaults := map[string]int{"x": 1, "z": 3}
//	l := mapdata.Wrap("defaults", defaults)
//	defaults["x"] = 13 // visible via l.Get("x")
func Wrap[K cmp.Ordered, V any](name layer.Name, data map[K]V) *Layer[K, V] {
	if data == nil {
		data = make(map[K]V)
	}
	return &Layer[K, V]{
		name: name,
		data: data,
	}
}

// Name returns the layer's name.
func (l *Layer[K, V]) Name() layer.Name {
	return l.name
}

// Get returns the value for key and whether the key is present.
func (l *Layer[K, V]) Get(key K) (V, bool) {
	v, ok := l.data[key]
	return v, ok
}

// Set stores value under key in the shared map.
func (l *Layer[K, V]) Set(key K, value V) {
	l.data[key] = value
}

// Delete removes key from the shared map and reports whether it was
// present.
func (l *Layer[K, V]) Delete(key K) bool {
	if _, ok := l.data[key]; !ok {
		return false
	}
	delete(l.data, key)
	return true
}

// Len returns the number of keys.
func (l *Layer[K, V]) Len() int {
	return len(l.data)
}

// Keys returns all keys in sorted order.
func (l *Layer[K, V]) Keys() []K {
	keys := make([]K, 0, len(l.data))
	for k := range l.data {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Map returns the underlying map. It is the same map the layer was
// created with, not a copy.
func (l *Layer[K, V]) Map() map[K]V {
	return l.data
}
