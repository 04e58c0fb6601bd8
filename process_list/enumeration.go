package process_list

import (
	"errors"

	"proclist/process"
)

// enumeration is the position shared by every cursor derived from one Begin
// call. current is set iff the last fetch succeeded and did not report
// exhaustion. It is not safe for concurrent use.
type enumeration struct {
	snap    *snapshot
	current *process.ProcessEntry
	err     error
	refs    int
}

func newEnumeration(snap *snapshot) *enumeration {
	return &enumeration{snap: snap, refs: 1}
}

// fetchFirst loads the first record. It returns false when the snapshot is empty.
func (e *enumeration) fetchFirst() (bool, error) {
	return e.store("first", e.snap.first)
}

// advance replaces the current record with the next one. It returns false
// once the snapshot is exhausted.
func (e *enumeration) advance() (bool, error) {
	if e.err != nil {
		return false, e.err
	}
	if e.current == nil {
		return false, nil
	}
	return e.store("next", e.snap.next)
}

func (e *enumeration) store(op string, fetch func() (process.ProcessEntry, error)) (bool, error) {
	entry, err := fetch()
	switch {
	case err == nil:
		e.current = &entry
		return true, nil
	case errors.Is(err, process.ErrnoNoMoreFiles):
		e.current = nil
		e.snap.Close()
		return false, nil
	default:
		e.current = nil
		e.err = &EnumerationError{Op: op, Status: process.FailureStatus(err), Err: err}
		e.snap.Close()
		return false, e.err
	}
}

func (e *enumeration) retain() {
	e.refs++
}

// release drops one reference and closes the snapshot with the last one.
func (e *enumeration) release() {
	e.refs--
	if e.refs <= 0 {
		e.current = nil
		e.snap.Close()
	}
}
