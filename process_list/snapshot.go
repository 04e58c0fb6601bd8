package process_list

import (
	"errors"
	"runtime"

	"proclist/process"

	"github.com/Moonlight-Companies/gologger/logger"
)

// snapshot exclusively owns one snapshot handle. The handle is either open
// or InvalidSnapshotHandle, and it is released at most once.
type snapshot struct {
	sys    process.Snapshotter
	handle process.SnapshotHandle
	log    *logger.Logger
}

// acquireSnapshot creates a snapshot of the given kind. A creation that fails
// with ErrnoBadLength (the table grew between the size query and the read)
// is retried once with the same parameters; nothing else is retried.
func acquireSnapshot(sys process.Snapshotter, kind process.SnapshotKind, log *logger.Logger) (*snapshot, error) {
	h, err := sys.CreateSnapshot(kind, 0)
	if err != nil && errors.Is(err, process.ErrnoBadLength) {
		log.Debugln("snapshot creation reported bad length, retrying once")
		h, err = sys.CreateSnapshot(kind, 0)
	}
	if err == nil && h == process.InvalidSnapshotHandle {
		err = process.ErrnoInvalidHandle
	}
	if err != nil {
		return nil, &AcquireError{Kind: kind, Status: process.FailureStatus(err), Err: err}
	}

	s := &snapshot{sys: sys, handle: h, log: log}
	// Backstop for cursors that are dropped without reaching the end or being closed.
	runtime.SetFinalizer(s, (*snapshot).Close)
	return s, nil
}

// IsValid reports whether the snapshot still holds an open handle.
func (s *snapshot) IsValid() bool {
	return s != nil && s.handle != process.InvalidSnapshotHandle
}

// Close releases the handle. Calling it again is a no-op.
func (s *snapshot) Close() error {
	if !s.IsValid() {
		return nil
	}
	h := s.handle
	s.handle = process.InvalidSnapshotHandle
	runtime.SetFinalizer(s, nil)

	if err := s.sys.CloseSnapshot(h); err != nil {
		s.log.Warn("failed to release snapshot handle: ", err)
		return err
	}
	return nil
}

func (s *snapshot) first() (process.ProcessEntry, error) {
	if !s.IsValid() {
		return process.ProcessEntry{}, process.ErrSnapshotClosed
	}
	return s.sys.First(s.handle)
}

func (s *snapshot) next() (process.ProcessEntry, error) {
	if !s.IsValid() {
		return process.ProcessEntry{}, process.ErrSnapshotClosed
	}
	return s.sys.Next(s.handle)
}
