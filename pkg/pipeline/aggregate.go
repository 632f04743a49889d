package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/eunmann/brc/internal/logctx"
	"github.com/eunmann/brc/pkg/merge"
	"github.com/eunmann/brc/pkg/report"
	"github.com/eunmann/brc/pkg/source"
)

// Result is the outcome of Aggregate.
type Result struct {
	// Final is the merged table. Rows holds Final.Rows().
	Final *merge.Final
	Rows  []merge.Row

	Bytes    int64
	Records  int64
	Workers  int
	Chunks   []ScanStats
	Open     time.Duration
	Scan     time.Duration
	Merge    time.Duration
	Duration time.Duration
}

// Lines returns the report, one "name=min/mean/max" line per station in
// byte order of the name.
func (r *Result) Lines() []string {
	return report.Lines(r.Rows)
}

// Aggregate computes per-station statistics for the file at path. The input
// is mapped for the duration of the scan and released before returning; the
// result owns all of its data.
func Aggregate(ctx context.Context, path string, cfg Config) (*Result, error) {
	start := time.Now()
	cfg = cfg.withDefaults()
	ctx = logctx.WithStr(ctx, "input", path)
	ctx = logctx.WithInt(ctx, "max_workers", cfg.Workers)

	p := startPhase("open")
	src, err := source.Open(ctx, path, cfg.Source)
	if err != nil {
		return nil, err
	}
	defer src.Close()
	buf := src.Bytes()
	ev, openDur := p.done(ctx)
	ev.Bytes("input_bytes", int64(len(buf))).LogDebug("input mapped")

	p = startPhase("scan")
	tables, chunks, err := run(ctx, buf, cfg)
	if err != nil {
		return nil, fmt.Errorf("aggregate %s: %w", path, err)
	}
	var records int64
	for _, c := range chunks {
		records += c.Records
	}
	ev, scanDur := p.done(ctx)
	ev.Bytes("input_bytes", int64(len(buf))).
		Count("records", records).
		Int("workers", len(chunks)).
		Throughput(int64(len(buf))).
		Rate("records_per_sec", records).
		Log("scan complete")

	p = startPhase("merge")
	final := merge.Merge(tables)
	ev, mergeDur := p.done(ctx)
	ev.Int("tables", len(tables)).
		Count("stations", int64(final.Len())).
		Count("measurements", final.Totals()).
		Log("merge complete")

	return &Result{
		Final:    final,
		Rows:     final.Rows(),
		Bytes:    int64(len(buf)),
		Records:  records,
		Workers:  len(chunks),
		Chunks:   chunks,
		Open:     openDur,
		Scan:     scanDur,
		Merge:    mergeDur,
		Duration: time.Since(start),
	}, nil
}
