package repositories

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a lookup matches no document.
var ErrNotFound = errors.New("document not found")

// PersistenceError reports a write that the store accepted but that had no
// effect when one was expected. It is never swallowed: the caller cannot
// guarantee durability and must surface it.
type PersistenceError struct {
	Op  string
	Key string
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence error: %s had no effect (key=%s)", e.Op, e.Key)
}
