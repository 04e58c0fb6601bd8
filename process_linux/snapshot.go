//go:build linux

package process_linux

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"syscall"

	"proclist/process"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
)

// Snapshotter implements process.Snapshotter over procfs. Creating a snapshot
// reads every /proc/<pid>/stat once; later fetches never touch procfs again.
type Snapshotter struct {
	root  string
	log   *logger.Logger
	table process.SnapshotTable
}

// NewSnapshotter creates a Snapshotter reading /proc
func NewSnapshotter() *Snapshotter {
	return NewSnapshotterAt("/proc")
}

// NewSnapshotterAt creates a Snapshotter reading a procfs mounted at root
func NewSnapshotterAt(root string) *Snapshotter {
	return &Snapshotter{
		root: root,
		log:  logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, "procfs")),
	}
}

func (s *Snapshotter) CreateSnapshot(kind process.SnapshotKind, pid process.ProcessID) (process.SnapshotHandle, error) {
	if kind != process.SnapshotProcesses {
		return process.InvalidSnapshotHandle, fmt.Errorf("%s snapshots are not supported on procfs: %w", kind, process.ErrnoNotSupported)
	}

	entries, err := s.readProcessTable()
	if err != nil {
		return process.InvalidSnapshotHandle, err
	}

	h := s.table.Open(entries)
	s.log.Debugln("snapshot", uintptr(h), "captured", len(entries), "processes")
	return h, nil
}

func (s *Snapshotter) First(h process.SnapshotHandle) (process.ProcessEntry, error) {
	return s.table.First(h)
}

func (s *Snapshotter) Next(h process.SnapshotHandle) (process.ProcessEntry, error) {
	return s.table.Next(h)
}

func (s *Snapshotter) CloseSnapshot(h process.SnapshotHandle) error {
	return s.table.Close(h)
}

// readProcessTable decodes every PID directory under root, ordered by PID.
// Processes that exit while the table is being read are skipped.
func (s *Snapshotter) readProcessTable() ([]process.ProcessEntry, error) {
	dirs, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.root, toErrno(err))
	}

	var entries []process.ProcessEntry
	for _, d := range dirs {
		if !d.IsDir() {
			continue
		}
		pid, err := strconv.Atoi(d.Name())
		if err != nil || pid <= 0 {
			continue // not a PID dir
		}

		entry, err := readStat(filepath.Join(s.root, d.Name(), "stat"))
		if err != nil {
			s.log.Debugln("skipping pid", pid, err)
			continue
		}
		entry.PID = process.ProcessID(pid)
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].PID < entries[j].PID
	})
	return entries, nil
}

// readStat decodes /proc/<pid>/stat. The comm field is parenthesised and may
// itself contain spaces or parentheses, so fields are split after the last ')'.
func readStat(path string) (process.ProcessEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return process.ProcessEntry{}, err
	}
	data = bytesTrimNL(data)

	open := bytes.IndexByte(data, '(')
	end := bytes.LastIndexByte(data, ')')
	if open < 0 || end < open {
		return process.ProcessEntry{}, fmt.Errorf("malformed stat %s", path)
	}

	// fields[0] is field 3 (state) in proc(5) numbering
	fields := strings.Fields(string(data[end+1:]))
	if len(fields) < 18 {
		return process.ProcessEntry{}, fmt.Errorf("short stat %s: %d fields", path, len(fields))
	}

	ppid, err := strconv.Atoi(fields[1])
	if err != nil {
		return process.ProcessEntry{}, fmt.Errorf("ppid in %s: %w", path, err)
	}
	priority, err := strconv.Atoi(fields[15])
	if err != nil {
		return process.ProcessEntry{}, fmt.Errorf("priority in %s: %w", path, err)
	}
	threads, err := strconv.Atoi(fields[17])
	if err != nil {
		return process.ProcessEntry{}, fmt.Errorf("num_threads in %s: %w", path, err)
	}

	return process.ProcessEntry{
		PPID:         process.ProcessID(ppid),
		Name:         string(data[open+1 : end]),
		Threads:      threads,
		PriorityBase: priority,
	}, nil
}

func bytesTrimNL(b []byte) []byte {
	for len(b) > 0 {
		switch b[len(b)-1] {
		case '\n', '\r', ' ', '\t':
			b = b[:len(b)-1]
		default:
			return b
		}
	}
	return b
}

// toErrno maps filesystem errnos onto the status codes the Toolhelp32 API
// reports for the same condition. Other errnos keep their number behind
// process.ErrnoCustomer; errors without an errno become ErrnoGenFailure.
func toErrno(err error) error {
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return fmt.Errorf("%w: %w", process.ErrnoGenFailure, err)
	}
	switch errno {
	case syscall.ENOENT:
		return process.ErrnoFileNotFound
	case syscall.EACCES, syscall.EPERM:
		return process.ErrnoAccessDenied
	case syscall.EMFILE, syscall.ENFILE, syscall.ENOMEM:
		return process.ErrnoNotEnoughQuota
	}
	return fmt.Errorf("%w: %w", process.HostErrno(uint32(errno)), err)
}
