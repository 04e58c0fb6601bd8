package process_list

import (
	"proclist/process"
)

// Cursor is a forward-only position in one process table snapshot.
//
// A cursor with no enumeration is the end sentinel; all sentinels compare
// equal. Copy returns a cursor that shares the enumeration, so advancing
// either one moves both. A cursor is not restartable: call List.Begin again
// to enumerate a new snapshot.
type Cursor struct {
	state *enumeration
}

// newCursor opens a snapshot and fetches its first record. An empty
// snapshot yields the sentinel.
func newCursor(cfg config) (*Cursor, error) {
	snap, err := acquireSnapshot(cfg.sys, cfg.kind, cfg.log)
	if err != nil {
		return nil, err
	}

	state := newEnumeration(snap)
	ok, err := state.fetchFirst()
	if err != nil {
		return nil, err
	}
	if !ok {
		cfg.log.Debugln("snapshot is empty")
		return &Cursor{}, nil
	}
	return &Cursor{state: state}, nil
}

// IsEnd reports whether c is the end sentinel.
func (c *Cursor) IsEnd() bool {
	return c == nil || c.state == nil
}

// Current returns the entry at the cursor. It returns ErrEndOfList on the
// sentinel, and the fetch error if the shared enumeration has failed.
func (c *Cursor) Current() (process.ProcessEntry, error) {
	if c.IsEnd() {
		return process.ProcessEntry{}, ErrEndOfList
	}
	if c.state.err != nil {
		return process.ProcessEntry{}, c.state.err
	}
	if c.state.current == nil {
		return process.ProcessEntry{}, ErrEndOfList
	}
	return *c.state.current, nil
}

// Advance moves to the next entry. When the snapshot is exhausted the cursor
// becomes the sentinel. After an error the cursor must only be closed.
func (c *Cursor) Advance() error {
	if c.IsEnd() {
		return ErrEndOfList
	}

	ok, err := c.state.advance()
	if err != nil {
		return err
	}
	if !ok {
		c.drop()
	}
	return nil
}

// Copy returns a cursor that shares c's enumeration.
func (c *Cursor) Copy() *Cursor {
	if c.IsEnd() {
		return &Cursor{}
	}
	c.state.retain()
	return &Cursor{state: c.state}
}

// Equal reports whether both cursors are sentinels or both share the same enumeration.
func (c *Cursor) Equal(other *Cursor) bool {
	if c.IsEnd() || other.IsEnd() {
		return c.IsEnd() && other.IsEnd()
	}
	return c.state == other.state
}

// Close turns c into the sentinel, releasing the snapshot if no other copy
// still references it. Closing a sentinel is a no-op.
func (c *Cursor) Close() error {
	if !c.IsEnd() {
		c.drop()
	}
	return nil
}

func (c *Cursor) drop() {
	c.state.release()
	c.state = nil
}
