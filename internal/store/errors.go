package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no equipment row matches the requested id.
var ErrNotFound = errors.New("equipment not found")

// StorageError wraps a failure reported by the database: lost connectivity,
// a rejected constraint, a malformed statement.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s equipment: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
