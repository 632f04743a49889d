package table

import (
	"fmt"

	"github.com/eunmann/brc/pkg/vocab"
)

// Perfect is a dense table indexed by a vocabulary's minimal perfect hash.
// A station outside the vocabulary is rejected with ErrOverflow.
//
// Name bytes are compared against the vocabulary once, when a slot is first
// filled. Later hits only compare lengths.
type Perfect struct {
	vocab   *vocab.Vocabulary
	entries []Entry
	n       int
}

// NewPerfect creates an empty table over v.
func NewPerfect(v *vocab.Vocabulary) *Perfect {
	return &Perfect{
		vocab:   v,
		entries: make([]Entry, v.Len()),
	}
}

// Observe implements Table.
func (t *Perfect) Observe(key []byte, hash uint64, tenths int) error {
	i, ok := t.vocab.Index(hash)
	if !ok {
		return fmt.Errorf("station %q not in vocabulary: %w", key, ErrOverflow)
	}
	e := &t.entries[i]
	if e.Count == 0 {
		name := t.vocab.Key(i)
		if name != string(key) {
			return fmt.Errorf("station %q collides with %q: %w", key, name, ErrOverflow)
		}
		e.init(name, tenths)
		t.n++
		return nil
	}
	if len(key) != len(e.Key) {
		return fmt.Errorf("station %q collides with %q: %w", key, e.Key, ErrOverflow)
	}
	e.add(tenths)
	return nil
}

// Len implements Table.
func (t *Perfect) Len() int {
	return t.n
}

// Entries implements Table.
func (t *Perfect) Entries() []Entry {
	out := make([]Entry, 0, t.n)
	for i := range t.entries {
		if t.entries[i].Count > 0 {
			out = append(out, t.entries[i])
		}
	}
	return out
}
