package analysis

import "fmt"

// NotFoundError indicates a record does not exist in storage.
type NotFoundError struct {
	ID string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("analysis record %q not found", e.ID)
}

// StorageError wraps a backend failure with the backend name and operation.
type StorageError struct {
	Backend string
	Op      string
	Err     error
}

// NewStorageError creates a storage error.
func NewStorageError(backend, op string, err error) *StorageError {
	return &StorageError{Backend: backend, Op: op, Err: err}
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("%s storage %s failed: %v", e.Backend, e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *StorageError) Unwrap() error {
	return e.Err
}
