package process

import "sync"

// SnapshotTable keeps frozen process tables for backends that capture the
// whole table up front instead of holding a kernel snapshot handle.
// It is safe for concurrent use.
type SnapshotTable struct {
	mu     sync.Mutex
	last   SnapshotHandle
	frozen map[SnapshotHandle]*frozenTable
}

type frozenTable struct {
	entries []ProcessEntry
	pos     int
}

// Open stores entries and returns a handle to them.
func (t *SnapshotTable) Open(entries []ProcessEntry) SnapshotHandle {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.frozen == nil {
		t.frozen = make(map[SnapshotHandle]*frozenTable)
	}
	t.last++
	t.frozen[t.last] = &frozenTable{entries: entries}
	return t.last
}

// First rewinds h and returns its first entry.
func (t *SnapshotTable) First(h SnapshotHandle) (ProcessEntry, error) {
	return t.fetch(h, true)
}

// Next returns the entry after the last one returned for h.
func (t *SnapshotTable) Next(h SnapshotHandle) (ProcessEntry, error) {
	return t.fetch(h, false)
}

func (t *SnapshotTable) fetch(h SnapshotHandle, rewind bool) (ProcessEntry, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	ft, ok := t.frozen[h]
	if !ok {
		return ProcessEntry{}, ErrnoInvalidHandle
	}
	if rewind {
		ft.pos = 0
	}
	if ft.pos >= len(ft.entries) {
		return ProcessEntry{}, ErrnoNoMoreFiles
	}

	entry := ft.entries[ft.pos]
	ft.pos++
	return entry, nil
}

// Close forgets h.
func (t *SnapshotTable) Close(h SnapshotHandle) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.frozen[h]; !ok {
		return ErrnoInvalidHandle
	}
	delete(t.frozen, h)
	return nil
}

// Len returns the number of open handles.
func (t *SnapshotTable) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.frozen)
}
