package state

import (
	"github.com/atomicstack/navmenu/internal/content"
)

const defaultRecentLimit = 50

// ContentStore holds the latest directory snapshots and the launch history
// for the running session.
type ContentStore interface {
	Snapshot(dir string) (content.Snapshot, bool)
	SetSnapshot(content.Snapshot)
	Forget(dir string)
	Recent() []content.Entry
	AddRecent(content.Entry)
}

type contentStore struct {
	snapshots map[string]content.Snapshot
	recent    []content.Entry
	limit     int
}

func NewContentStore() ContentStore {
	return &contentStore{
		snapshots: make(map[string]content.Snapshot),
		limit:     defaultRecentLimit,
	}
}

func (c *contentStore) Snapshot(dir string) (content.Snapshot, bool) {
	snap, ok := c.snapshots[dir]
	if !ok {
		return content.Snapshot{}, false
	}
	snap.Entries = cloneEntries(snap.Entries)
	return snap, true
}

func (c *contentStore) SetSnapshot(snap content.Snapshot) {
	snap.Entries = cloneEntries(snap.Entries)
	c.snapshots[snap.Dir] = snap
}

func (c *contentStore) Forget(dir string) {
	delete(c.snapshots, dir)
}

// Recent returns launched entries, most recent first.
func (c *contentStore) Recent() []content.Entry {
	return cloneEntries(c.recent)
}

// AddRecent moves entry to the front of the history, dropping any earlier
// launch of the same path.
func (c *contentStore) AddRecent(entry content.Entry) {
	next := make([]content.Entry, 0, len(c.recent)+1)
	next = append(next, entry)
	for _, existing := range c.recent {
		if existing.Path == entry.Path {
			continue
		}
		next = append(next, existing)
	}
	if c.limit > 0 && len(next) > c.limit {
		next = next[:c.limit]
	}
	c.recent = next
}

func cloneEntries(entries []content.Entry) []content.Entry {
	if len(entries) == 0 {
		return nil
	}
	dup := make([]content.Entry, len(entries))
	copy(dup, entries)
	return dup
}
