package kasane

import "fmt"

// Entry is a named (key, value) pair produced by Entries and by the
// reduction helpers in package calc. Accessing the fields by name
// keeps calling code independent of pair position.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// String returns the human display form: "(key, value)".
func (e Entry[K, V]) String() string {
	return fmt.Sprintf("(%v, %v)", e.Key, e.Value)
}

// GoString returns the diagnostic form used by %#v, with both fields
// rendered in their own diagnostic forms.
func (e Entry[K, V]) GoString() string {
	return fmt.Sprintf("kasane.Entry{Key: %#v, Value: %#v}", e.Key, e.Value)
}
