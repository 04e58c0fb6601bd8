// Package process_portable captures process table snapshots through gopsutil,
// for platforms without a native backend.
package process_portable

import (
	"errors"
	"fmt"
	"sort"

	"proclist/process"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
	ps "github.com/shirou/gopsutil/v4/process"
)

// Snapshotter implements process.Snapshotter with gopsutil
type Snapshotter struct {
	log   *logger.Logger
	table process.SnapshotTable
}

// NewSnapshotter creates a gopsutil backed Snapshotter
func NewSnapshotter() *Snapshotter {
	return &Snapshotter{
		log: logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, "gopsutil")),
	}
}

func (s *Snapshotter) CreateSnapshot(kind process.SnapshotKind, pid process.ProcessID) (process.SnapshotHandle, error) {
	if kind != process.SnapshotProcesses {
		return process.InvalidSnapshotHandle, fmt.Errorf("%s snapshots are not supported: %w", kind, process.ErrnoNotSupported)
	}

	procs, err := ps.Processes()
	if err != nil {
		return process.InvalidSnapshotHandle, fmt.Errorf("list processes: %w: %w", process.ErrnoGenFailure, err)
	}

	entries := make([]process.ProcessEntry, 0, len(procs))
	for _, p := range procs {
		entry, err := decode(p)
		if err != nil {
			s.log.Debugln("skipping pid", p.Pid, err)
			continue
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].PID < entries[j].PID
	})

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

// decode reads the fields of one process. Only a process that has already
// exited is an error; fields the caller may not read are left zero.
func decode(p *ps.Process) (process.ProcessEntry, error) {
	entry := process.ProcessEntry{PID: process.ProcessID(p.Pid)}

	name, err := p.Name()
	if errors.Is(err, ps.ErrorProcessNotRunning) {
		return entry, err
	}
	entry.Name = name

	if ppid, err := p.Ppid(); err == nil {
		entry.PPID = process.ProcessID(ppid)
	}
	if threads, err := p.NumThreads(); err == nil {
		entry.Threads = int(threads)
	}
	if nice, err := p.Nice(); err == nil {
		entry.PriorityBase = int(nice)
	}
	return entry, nil
}
