// Package process provides the types shared by the process table backends
// and the snapshot based process list.
package process

import "errors"

var (
	// ErrProcessNotFound is returned when no process in the snapshot matches a lookup.
	ErrProcessNotFound = errors.New("process not found")

	// ErrEmptyName is returned when a name lookup is attempted with an empty name.
	ErrEmptyName = errors.New("empty name")

	// ErrSnapshotClosed is returned when a fetch is attempted on a snapshot
	// handle that has already been released.
	ErrSnapshotClosed = errors.New("snapshot closed")
)
