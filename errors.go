package slab

import (
	"errors"
	"fmt"

	"github.com/hupe1980/slab/resource"
)

var (
	// ErrInvalidKey is returned (or carried by a panic) when a key does not
	// address an occupied slot.
	ErrInvalidKey = errors.New("invalid key")

	// ErrMemoryLimitExceeded is returned when growing the pool by a chunk
	// would exceed the configured memory budget.
	ErrMemoryLimitExceeded = resource.ErrMemoryLimitExceeded

	// ErrCorrupted is returned by Validate when an internal invariant is broken.
	ErrCorrupted = errors.New("slab corrupted")
)

// KeyError reports an operation on a key that is not associated with a value.
//
// Remove and At panic with a *KeyError; TryRemove returns one.
type KeyError struct {
	Op  string
	Key Key
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("slab: %s: %v %d", e.Op, ErrInvalidKey, e.Key)
}

func (e *KeyError) Unwrap() error { return ErrInvalidKey }

// CorruptionError describes the first broken invariant found by Validate.
// Key is -1 when the violation is not tied to a slot.
type CorruptionError struct {
	Reason string
	Key    Key
}

func (e *CorruptionError) Error() string {
	if e.Key < 0 {
		return fmt.Sprintf("slab: %v: %s", ErrCorrupted, e.Reason)
	}
	return fmt.Sprintf("slab: %v at key %d: %s", ErrCorrupted, e.Key, e.Reason)
}

func (e *CorruptionError) Unwrap() error { return ErrCorrupted }
