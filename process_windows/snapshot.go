//go:build windows

package process_windows

import (
	"errors"
	"fmt"
	"unsafe"

	"proclist/process"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
	"golang.org/x/sys/windows"
)

// Snapshotter implements process.Snapshotter with the Toolhelp32 API
type Snapshotter struct {
	log *logger.Logger
}

// NewSnapshotter creates a Toolhelp32 backed Snapshotter
func NewSnapshotter() *Snapshotter {
	return &Snapshotter{
		log: logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, "toolhelp32")),
	}
}

func (s *Snapshotter) CreateSnapshot(kind process.SnapshotKind, pid process.ProcessID) (process.SnapshotHandle, error) {
	handle, err := windows.CreateToolhelp32Snapshot(uint32(kind), uint32(pid))
	if err != nil {
		return process.InvalidSnapshotHandle, fmt.Errorf("CreateToolhelp32Snapshot failed: %w", toErrno(err))
	}

	s.log.Debugln("snapshot opened", fmt.Sprintf("%x", uintptr(handle)))
	return process.SnapshotHandle(handle), nil
}

func (s *Snapshotter) First(h process.SnapshotHandle) (process.ProcessEntry, error) {
	entry := newEntry()
	if err := windows.Process32First(windows.Handle(h), &entry); err != nil {
		return process.ProcessEntry{}, fmt.Errorf("Process32First failed: %w", toErrno(err))
	}
	return decodeEntry(&entry), nil
}

func (s *Snapshotter) Next(h process.SnapshotHandle) (process.ProcessEntry, error) {
	entry := newEntry()
	if err := windows.Process32Next(windows.Handle(h), &entry); err != nil {
		return process.ProcessEntry{}, fmt.Errorf("Process32Next failed: %w", toErrno(err))
	}
	return decodeEntry(&entry), nil
}

func (s *Snapshotter) CloseSnapshot(h process.SnapshotHandle) error {
	if err := windows.CloseHandle(windows.Handle(h)); err != nil {
		return fmt.Errorf("CloseHandle failed: %w", toErrno(err))
	}
	s.log.Debugln("snapshot closed", fmt.Sprintf("%x", uintptr(h)))
	return nil
}

func newEntry() windows.ProcessEntry32 {
	var entry windows.ProcessEntry32
	entry.Size = uint32(unsafe.Sizeof(entry))
	return entry
}

func decodeEntry(entry *windows.ProcessEntry32) process.ProcessEntry {
	return process.ProcessEntry{
		PID:          process.ProcessID(entry.ProcessID),
		PPID:         process.ProcessID(entry.ParentProcessID),
		Name:         windows.UTF16ToString(entry.ExeFile[:]),
		Threads:      int(entry.Threads),
		PriorityBase: int(entry.PriClassBase),
	}
}

// toErrno converts the last-error value returned by kernel32 into a process.Errno
func toErrno(err error) error {
	var errno windows.Errno
	if errors.As(err, &errno) {
		return process.Errno(errno)
	}
	return err
}
