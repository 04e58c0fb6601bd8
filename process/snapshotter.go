package process

import (
	"errors"
	"fmt"
)

// SnapshotKind selects what a snapshot captures. Values follow the
// Toolhelp32 TH32CS_* flags.
type SnapshotKind uint32

const (
	SnapshotHeapList  SnapshotKind = 0x00000001
	SnapshotProcesses SnapshotKind = 0x00000002
	SnapshotThreads   SnapshotKind = 0x00000004
	SnapshotModules   SnapshotKind = 0x00000008
)

func (k SnapshotKind) String() string {
	switch k {
	case SnapshotHeapList:
		return "heaplist"
	case SnapshotProcesses:
		return "processes"
	case SnapshotThreads:
		return "threads"
	case SnapshotModules:
		return "modules"
	}
	return fmt.Sprintf("kind(0x%X)", uint32(k))
}

// SnapshotHandle identifies an open snapshot owned by a Snapshotter.
type SnapshotHandle uintptr

// InvalidSnapshotHandle is the "no handle" value (INVALID_HANDLE_VALUE).
const InvalidSnapshotHandle = ^SnapshotHandle(0)

// Errno is a platform status code reported by a Snapshotter.
type Errno uint32

const (
	ErrnoFileNotFound   Errno = 2
	ErrnoAccessDenied   Errno = 5
	ErrnoInvalidHandle  Errno = 6
	ErrnoNoMoreFiles    Errno = 18 // the snapshot has no further records
	ErrnoBadLength      Errno = 24 // the table changed size while it was being captured
	ErrnoGenFailure     Errno = 31 // failure with no more specific code
	ErrnoNotSupported   Errno = 50
	ErrnoInvalidParam   Errno = 87
	ErrnoNotEnoughQuota Errno = 1816
)

// ErrnoCustomer marks a code carried over from a host errno that has no
// Toolhelp32 equivalent. The low bits hold the errno; the bit keeps it
// apart from the system codes above (EMFILE and ErrnoBadLength are both 24).
const ErrnoCustomer Errno = 0x20000000

// HostErrno wraps a host errno number as a customer status code.
func HostErrno(errno uint32) Errno {
	return ErrnoCustomer | Errno(errno)
}

var errnoText = map[Errno]string{
	ErrnoFileNotFound:   "the system cannot find the file specified",
	ErrnoAccessDenied:   "access is denied",
	ErrnoInvalidHandle:  "the handle is invalid",
	ErrnoNoMoreFiles:    "there are no more files",
	ErrnoBadLength:      "the program issued a command but the command length is incorrect",
	ErrnoGenFailure:     "a device attached to the system is not functioning",
	ErrnoNotSupported:   "the request is not supported",
	ErrnoInvalidParam:   "the parameter is incorrect",
	ErrnoNotEnoughQuota: "not enough quota is available to process this command",
}

func (e Errno) Error() string {
	if s, ok := errnoText[e]; ok {
		return s
	}
	if e&ErrnoCustomer != 0 {
		return fmt.Sprintf("errno %d", uint32(e&^ErrnoCustomer))
	}
	return fmt.Sprintf("status %d", uint32(e))
}

// StatusOf extracts the platform status code from err, or 0 when err carries none.
func StatusOf(err error) Errno {
	var errno Errno
	if errors.As(err, &errno) {
		return errno
	}
	return 0
}

// FailureStatus is StatusOf for an error known to be a failure: when err
// carries no status code it reports ErrnoGenFailure, never 0.
func FailureStatus(err error) Errno {
	if errno := StatusOf(err); errno != 0 {
		return errno
	}
	return ErrnoGenFailure
}

// Snapshotter exposes the OS primitives used to walk a process table snapshot.
//
// CreateSnapshot returns a valid handle or an error; it never returns
// InvalidSnapshotHandle with a nil error. First and Next report exhaustion
// with ErrnoNoMoreFiles. Every handle returned by CreateSnapshot must be
// passed to CloseSnapshot exactly once.
type Snapshotter interface {
	// CreateSnapshot captures the process table. pid is only meaningful
	// for module and heap snapshots and is zero otherwise.
	CreateSnapshot(kind SnapshotKind, pid ProcessID) (SnapshotHandle, error)

	// First returns the first record of the snapshot
	First(h SnapshotHandle) (ProcessEntry, error)

	// Next returns the record following the previously returned one
	Next(h SnapshotHandle) (ProcessEntry, error)

	// CloseSnapshot releases the snapshot handle
	CloseSnapshot(h SnapshotHandle) error
}
