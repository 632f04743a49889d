// Package merge folds per-worker aggregation tables into one final table.
package merge

import (
	"slices"
	"strings"

	"github.com/dolthub/swiss"
	"github.com/eunmann/brc/pkg/table"
)

// Row is one station's combined statistics.
type Row = table.Entry

// Final is the merged, read-only result. Rows are kept sorted by the byte
// order of the station name.
type Final struct {
	index *swiss.Map[string, int]
	rows  []Row
}

// Merge combines tables by station name. Counts and sums add, min and max
// take the extremes, so the result is independent of table order.
// Nil tables are skipped.
func Merge(tables []table.Table) *Final {
	hint := 0
	for _, t := range tables {
		if t != nil {
			hint = max(hint, t.Len())
		}
	}

	index := swiss.NewMap[string, int](uint32(max(hint, 8)))
	rows := make([]Row, 0, hint)
	for _, t := range tables {
		if t == nil {
			continue
		}
		for _, e := range t.Entries() {
			if i, ok := index.Get(e.Key); ok {
				rows[i].Merge(e)
				continue
			}
			index.Put(e.Key, len(rows))
			rows = append(rows, e)
		}
	}

	slices.SortFunc(rows, func(a, b Row) int { return strings.Compare(a.Key, b.Key) })
	for i := range rows {
		index.Put(rows[i].Key, i)
	}
	return &Final{index: index, rows: rows}
}

// Len returns the number of distinct stations.
func (f *Final) Len() int {
	return len(f.rows)
}

// Rows returns all rows in ascending name order. The slice must not be
// modified.
func (f *Final) Rows() []Row {
	return f.rows
}

// Get returns the row for name.
func (f *Final) Get(name string) (Row, bool) {
	i, ok := f.index.Get(name)
	if !ok {
		return Row{}, false
	}
	return f.rows[i], true
}

// Totals returns the number of measurements across all stations.
func (f *Final) Totals() int64 {
	var n int64
	for i := range f.rows {
		n += f.rows[i].Count
	}
	return n
}
