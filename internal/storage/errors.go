package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation is returned when caller-supplied input violates a
	// precondition. The caller can recover by correcting the input.
	ErrValidation = errors.New("invalid input")
)

// StorageError wraps a failure of the underlying persistence engine.
// Callers treat it as a generic, non-retryable fault.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
