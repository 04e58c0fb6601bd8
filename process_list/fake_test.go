package process_list

import (
	"sync"
	"testing"

	"proclist/process"

	"github.com/Moonlight-Companies/gologger/logger"
)

// fakeSnapshotter replays a fixed process table. createErrs are consumed one
// per CreateSnapshot call; failAt makes the fetch of that record index
// (0 is First) return failErr.
type fakeSnapshotter struct {
	entries    []process.ProcessEntry
	createErrs []error
	failAt     int
	failErr    error

	creates  int
	kinds    []process.SnapshotKind
	last     process.SnapshotHandle
	pos      map[process.SnapshotHandle]int
	closeErr error

	// closed is also written by the snapshot finalizer
	mu     sync.Mutex
	closed map[process.SnapshotHandle]int
}

func newFake(entries ...process.ProcessEntry) *fakeSnapshotter {
	return &fakeSnapshotter{
		entries: entries,
		failAt:  -1,
		pos:     make(map[process.SnapshotHandle]int),
		closed:  make(map[process.SnapshotHandle]int),
	}
}

func (f *fakeSnapshotter) CreateSnapshot(kind process.SnapshotKind, pid process.ProcessID) (process.SnapshotHandle, error) {
	f.creates++
	f.kinds = append(f.kinds, kind)
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		if err != nil {
			return process.InvalidSnapshotHandle, err
		}
	}
	f.last++
	f.pos[f.last] = 0
	return f.last, nil
}

func (f *fakeSnapshotter) First(h process.SnapshotHandle) (process.ProcessEntry, error) {
	f.pos[h] = 0
	return f.fetch(h)
}

func (f *fakeSnapshotter) Next(h process.SnapshotHandle) (process.ProcessEntry, error) {
	return f.fetch(h)
}

func (f *fakeSnapshotter) fetch(h process.SnapshotHandle) (process.ProcessEntry, error) {
	f.mu.Lock()
	closed := f.closed[h] > 0
	f.mu.Unlock()
	if closed {
		return process.ProcessEntry{}, process.ErrnoInvalidHandle
	}
	i := f.pos[h]
	if i == f.failAt {
		return process.ProcessEntry{}, f.failErr
	}
	if i >= len(f.entries) {
		return process.ProcessEntry{}, process.ErrnoNoMoreFiles
	}
	f.pos[h] = i + 1
	return f.entries[i], nil
}

func (f *fakeSnapshotter) CloseSnapshot(h process.SnapshotHandle) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed[h]++
	return f.closeErr
}

// openHandles counts handles created but not yet closed
func (f *fakeSnapshotter) openHandles() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	open := 0
	for h := process.SnapshotHandle(1); h <= f.last; h++ {
		if f.closed[h] == 0 {
			open++
		}
	}
	return open
}

func entry(pid int, name string) process.ProcessEntry {
	return process.ProcessEntry{PID: process.ProcessID(pid), PPID: 1, Name: name, Threads: 1}
}

func newTestList(t *testing.T, sys process.Snapshotter, opts ...Option) *List {
	t.Helper()
	opts = append([]Option{WithSnapshotter(sys), WithLogger(logger.NewLogger("test"))}, opts...)
	return New(opts...)
}
