package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/eunmann/brc/pkg/record"
	"github.com/eunmann/brc/pkg/source"
	"github.com/eunmann/brc/pkg/table"
)

// cancelCheckMask sets how often Scan polls the context (every 64Ki records).
const cancelCheckMask = 1<<16 - 1

// ScanStats describes one worker's pass over its range.
type ScanStats struct {
	Bytes   int64
	Records int64
	Elapsed time.Duration
}

// Scan parses every record in buf[r.Start:r.End] and feeds it to t.
// r.Start must be a line start. Records are parsed against buf[:r.End], so
// the parser never reads past the range, and error offsets are absolute.
func Scan(ctx context.Context, buf []byte, r Range, t table.Table) (ScanStats, error) {
	start := time.Now()
	if r.Start < 0 || r.End > len(buf) || r.Start > r.End {
		return ScanStats{}, fmt.Errorf("scan [%d, %d) of %d bytes: %w", r.Start, r.End, len(buf), source.ErrRange)
	}

	data := buf[:r.End]
	var records int64
	off := r.Start
	for off < r.End {
		rec, next, err := record.Next(data, off)
		if err != nil {
			return ScanStats{}, err
		}
		if err := t.Observe(rec.Key, rec.Hash, rec.Tenths); err != nil {
			return ScanStats{}, fmt.Errorf("offset %d: %w", off, err)
		}
		off = next
		records++
		if records&cancelCheckMask == 0 {
			if err := ctx.Err(); err != nil {
				return ScanStats{}, err
			}
		}
	}

	return ScanStats{
		Bytes:   int64(r.Len()),
		Records: records,
		Elapsed: time.Since(start),
	}, nil
}
