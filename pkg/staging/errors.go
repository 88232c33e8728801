package staging

import (
	"errors"
	"fmt"
)

// Session operation errors.
var (
	ErrNotFound     = errors.New("entity not in working collection")
	ErrInvalidStage = errors.New("operation not legal for entity stage")
	ErrDuplicateID  = errors.New("id already in working collection")
	ErrValidation   = errors.New("payload rejected by validation")
	ErrInFlight     = errors.New("entity has a commit call in flight")
)

// CommitItemError wraps the failure of one item's create, update, or
// delete call inside a commit report. The item keeps its staged stage so
// the caller can retry or discard.
type CommitItemError struct {
	ID  string
	Op  Op
	Err error
}

func (e *CommitItemError) Error() string {
	return fmt.Sprintf("commit %s %s: %v", e.Op, e.ID, e.Err)
}

func (e *CommitItemError) Unwrap() error {
	return e.Err
}
