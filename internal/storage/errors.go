package storage

import "fmt"

// PersistenceError wraps a storage-layer I/O failure. Callers are expected
// to log it and keep running rather than crash; a dropped write is the
// accepted worst case for a single local user.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func persistErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}
