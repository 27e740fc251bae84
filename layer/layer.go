// Package layer defines the mapping interface that chains compose.
// A layer is a single mutable key-value mapping; chains rank layers by
// position, with the first layer taking priority during lookups and
// receiving all writes.
package layer

// Name is an identifier for a layer, used in diagnostics and by the
// CLI to report which layer supplied a value.
type Name string

// Layer is one mapping participating in a chain.
//
// Implementations own their storage; a chain never copies layer
// contents, so mutations made directly on a layer are visible through
// every chain that references it.
//
// Keys must report each key exactly once. Implementations that
// preserve insertion order (see layer/ordered) return keys in that
// order; others document their own ordering.
type Layer[K comparable, V any] interface {
	// Get returns the value for key and whether the key is present.
	Get(key K) (V, bool)

	// Set stores value under key, creating the key if absent.
	Set(key K, value V)

	// Delete removes key and reports whether it was present.
	Delete(key K) bool

	// Len returns the number of keys in this layer.
	Len() int

	// Keys returns all keys in this layer.
	Keys() []K
}

// Named is an optional interface for layers that carry an identifier.
type Named interface {
	// Name returns the identifier for this layer.
	Name() Name
}

// NameOf returns the layer's name if it implements Named, or the
// empty name otherwise.
func NameOf(l any) Name {
	if n, ok := l.(Named); ok {
		return n.Name()
	}
	return ""
}
