package services

import (
	"errors"
	"fmt"
)

// ErrExternalUnavailable marks an external catalog that is unreachable,
// rate-limited or misconfigured. The resolver recovers from it locally;
// callers never see it as a hard failure.
var ErrExternalUnavailable = errors.New("external catalog unavailable")

// ErrImplausible marks nutrition values that fail the plausibility check
// and must not be persisted.
var ErrImplausible = errors.New("implausible nutrition values")

// StorageError wraps a local catalog read/write failure. It propagates to
// the caller; the engine does not retry on its own.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("catalog %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
