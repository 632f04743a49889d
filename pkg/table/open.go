package table

import (
	"fmt"
	"math/bits"
)

// Open is a linear-probing hash table over a power-of-two slot array.
// It holds at most half as many stations as it has slots.
type Open struct {
	slots      []slot
	mask       uint64
	entries    []Entry
	maxEntries int
}

type slot struct {
	hash uint64
	idx  int32 // 1-based index into entries, 0 = empty
}

// NewOpen creates a table with at least capacity slots.
func NewOpen(capacity int) *Open {
	if capacity < 2 {
		capacity = 2
	}
	n := 1 << bits.Len(uint(capacity-1))
	return &Open{
		slots:      make([]slot, n),
		mask:       uint64(n - 1),
		entries:    make([]Entry, 0, min(n/2, 1024)),
		maxEntries: n / 2,
	}
}

// Observe implements Table.
func (t *Open) Observe(key []byte, hash uint64, tenths int) error {
	i := hash & t.mask
	for {
		s := &t.slots[i]
		if s.idx == 0 {
			if len(t.entries) >= t.maxEntries {
				return fmt.Errorf("more than %d distinct stations at %q: %w", t.maxEntries, key, ErrOverflow)
			}
			t.entries = append(t.entries, Entry{})
			t.entries[len(t.entries)-1].init(string(key), tenths)
			s.hash = hash
			s.idx = int32(len(t.entries))
			return nil
		}
		if s.hash == hash {
			e := &t.entries[s.idx-1]
			if e.Key == string(key) {
				e.add(tenths)
				return nil
			}
		}
		i = (i + 1) & t.mask
	}
}

// Len implements Table.
func (t *Open) Len() int {
	return len(t.entries)
}

// Entries implements Table.
func (t *Open) Entries() []Entry {
	return t.entries
}

// Capacity returns the number of slots.
func (t *Open) Capacity() int {
	return len(t.slots)
}
