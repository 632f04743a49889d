// Package table implements the per-worker aggregation tables.
//
// Two implementations share the Table interface. Perfect addresses a dense
// array through a minimal perfect hash over a known vocabulary and never
// compares name bytes. Open is a general open-addressing table that makes no
// assumption about the names it sees.
//
// Tables are NOT safe for concurrent use. Each worker owns its own table.
package table

import "github.com/eunmann/brc/pkg/vocab"

// DefaultCapacity is the default slot count of an Open table.
const DefaultCapacity = 1 << 17

// Entry holds the running statistics of one station. Values are in tenths.
type Entry struct {
	Key   string
	Count int64
	Sum   int64
	Min   int
	Max   int
}

func (e *Entry) init(key string, v int) {
	e.Key = key
	e.Count = 1
	e.Sum = int64(v)
	e.Min = v
	e.Max = v
}

func (e *Entry) add(v int) {
	e.Count++
	e.Sum += int64(v)
	if v < e.Min {
		e.Min = v
	}
	if v > e.Max {
		e.Max = v
	}
}

// Merge folds other into e. The keys are assumed equal.
func (e *Entry) Merge(other Entry) {
	e.Count += other.Count
	e.Sum += other.Sum
	if other.Min < e.Min {
		e.Min = other.Min
	}
	if other.Max > e.Max {
		e.Max = other.Max
	}
}

// Table accumulates statistics per station name.
type Table interface {
	// Observe records one measurement. key may alias the input buffer; it is
	// copied only when the station is seen for the first time. hash must be
	// record.Hash(key), as produced by record.Next.
	Observe(key []byte, hash uint64, tenths int) error

	// Len returns the number of distinct stations.
	Len() int

	// Entries returns the populated entries in unspecified order.
	// The slice must not be modified.
	Entries() []Entry
}

// Factory creates an empty table for one worker.
type Factory func() Table

// NewFactory returns a factory for Perfect tables over v, or for Open tables
// with the given capacity when v is nil.
func NewFactory(v *vocab.Vocabulary, capacity int) Factory {
	if v != nil {
		return func() Table { return NewPerfect(v) }
	}
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return func() Table { return NewOpen(capacity) }
}
