package process_list

import (
	"errors"
	"fmt"

	"proclist/process"
)

// ErrEndOfList is returned when the current entry of a cursor that is
// positioned past the last process is requested.
var ErrEndOfList = errors.New("cursor is at the end of the process list")

// AcquireError reports that a process table snapshot could not be created,
// after the single retry allowed for ErrnoBadLength.
type AcquireError struct {
	Kind   process.SnapshotKind
	Status process.Errno
	Err    error
}

func (e *AcquireError) Error() string {
	return fmt.Sprintf("create %s snapshot failed (status %d): %v", e.Kind, uint32(e.Status), e.Err)
}

func (e *AcquireError) Unwrap() error {
	return e.Err
}

// EnumerationError reports that fetching a record from an open snapshot
// failed for a reason other than exhaustion.
type EnumerationError struct {
	Op     string // "first" or "next"
	Status process.Errno
	Err    error
}

func (e *EnumerationError) Error() string {
	return fmt.Sprintf("fetch %s process entry failed (status %d): %v", e.Op, uint32(e.Status), e.Err)
}

func (e *EnumerationError) Unwrap() error {
	return e.Err
}
