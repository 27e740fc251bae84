package kasane

import (
	"errors"
	"fmt"
)

// KeyNotFoundError is returned when a lookup or delete misses.
type KeyNotFoundError struct {
	// Key is the key that was not found.
	Key any

	// FrontOnly is true when the search was restricted to the first
	// layer (deletes never look past it, even if a lower layer holds
	// the key).
	FrontOnly bool
}

func (e *KeyNotFoundError) Error() string {
	if e.FrontOnly {
		return fmt.Sprintf("key not found in the first layer: %v", e.Key)
	}
	return fmt.Sprintf("key not found: %v", e.Key)
}

// EmptyChainError is returned when an operation needs a layer the
// chain does not have: writing or deleting on a chain with no layers,
// or discarding the front layer when it is the only one.
type EmptyChainError struct {
	// Op is the operation that failed: "set", "delete", or "parents".
	Op string
}

func (e *EmptyChainError) Error() string {
	if e.Op == "parents" {
		return "parents: cannot discard the only layer"
	}
	return fmt.Sprintf("%s: chain has no layers", e.Op)
}

// IsKeyNotFound reports whether err is (or wraps) a KeyNotFoundError.
func IsKeyNotFound(err error) bool {
	var e *KeyNotFoundError
	return errors.As(err, &e)
}

// IsEmptyChain reports whether err is (or wraps) an EmptyChainError.
func IsEmptyChain(err error) bool {
	var e *EmptyChainError
	return errors.As(err, &e)
}
