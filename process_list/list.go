// Package process_list enumerates the live process table lazily, one
// point-in-time snapshot per enumeration.
//
//	list := process_list.New()
//	for entry, err := range list.All() {
//		if err != nil {
//			return err
//		}
//		fmt.Println(entry.PID, entry.Name)
//	}
package process_list

import (
	"iter"

	"proclist/process"
)

// List produces cursors over the process table. It holds only configuration,
// so it may be reused; each Begin call opens its own snapshot.
type List struct {
	cfg config
}

// New creates a List backed by the platform snapshotter unless overridden.
func New(opts ...Option) *List {
	return &List{cfg: newConfig(opts)}
}

// Begin opens a new snapshot and returns a cursor at its first entry, or the
// sentinel if the snapshot is empty. Snapshot creation failures are returned
// as *AcquireError, failures of the first fetch as *EnumerationError.
func (l *List) Begin() (*Cursor, error) {
	return newCursor(l.cfg)
}

// End returns the sentinel cursor. It performs no OS calls.
func (l *List) End() *Cursor {
	return &Cursor{}
}

// All yields every entry of one new snapshot in OS order. A failure is
// yielded once with a zero entry and ends the sequence. Breaking out of the
// loop releases the snapshot.
func (l *List) All() iter.Seq2[process.ProcessEntry, error] {
	return func(yield func(process.ProcessEntry, error) bool) {
		it, err := l.Begin()
		if err != nil {
			yield(process.ProcessEntry{}, err)
			return
		}
		defer it.Close()

		for !it.IsEnd() {
			entry, err := it.Current()
			if err != nil {
				yield(process.ProcessEntry{}, err)
				return
			}
			if !yield(entry, nil) {
				return
			}
			if err := it.Advance(); err != nil {
				yield(process.ProcessEntry{}, err)
				return
			}
		}
	}
}

// Collect returns every entry of one new snapshot.
func (l *List) Collect() ([]process.ProcessEntry, error) {
	var entries []process.ProcessEntry
	for entry, err := range l.All() {
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
