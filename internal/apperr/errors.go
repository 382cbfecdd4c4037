package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrAlreadyExists = errors.New("already exists")

	// ErrLastView is returned when deleting the only remaining view.
	ErrLastView = errors.New("cannot delete the last view")

	// ErrSaveInFlight is returned when a save or delete is attempted while
	// another write to the same code is still pending.
	ErrSaveInFlight = errors.New("save already in flight")
)

// IndexError reports a view index outside [0, length).
type IndexError struct {
	Index  int
	Length int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range [0, %d)", e.Index, e.Length)
}

// IndexOutOfRange builds an IndexError for the given index and list length.
func IndexOutOfRange(index, length int) error {
	return &IndexError{Index: index, Length: length}
}

// IsIndexOutOfRange reports whether err is an IndexError.
func IsIndexOutOfRange(err error) bool {
	var ie *IndexError
	return errors.As(err, &ie)
}

// StoreError wraps a backend failure. Callers preserve in-memory state so
// the user can retry without re-entering data.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Store wraps err as a StoreError. Sentinel errors pass through unchanged
// so handlers can map them to statuses directly.
func Store(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) || errors.Is(err, ErrAlreadyExists) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

// IsStoreError reports whether err is a StoreError.
func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
