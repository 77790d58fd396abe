package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no live row matches the lookup.
var ErrNotFound = errors.New("record not found")

// StorageError reports a failed local persistence call. Callers treat it as
// "local write failed, do not mark anything synced".
type StorageError struct {
	Op    string
	Table string
	Err   error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Table, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (t *Table[T]) fail(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.Is(err, ErrNotFound) || errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Table: t.schema.Table, Err: err}
}
