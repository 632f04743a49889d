// Package pipeline runs the parallel aggregation: it partitions the input on
// line boundaries, scans each partition in its own goroutine into a private
// table, and joins the tables once every worker is done.
package pipeline

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/eunmann/brc/internal/logctx"
	"github.com/eunmann/brc/pkg/logging"
	"github.com/eunmann/brc/pkg/source"
	"github.com/eunmann/brc/pkg/table"
	"github.com/eunmann/brc/pkg/vocab"
	"golang.org/x/sync/errgroup"
)

// Config holds the aggregation settings.
type Config struct {
	// Workers is the number of partitions, each scanned by one goroutine.
	Workers int

	// Capacity is the slot count of open tables. Ignored with a Vocabulary.
	Capacity int

	// Vocabulary, when set, selects perfect-hash tables. A station outside
	// the vocabulary fails the run with table.ErrOverflow.
	Vocabulary *vocab.Vocabulary

	// Source controls how the input is opened.
	Source source.Options
}

// DefaultConfig returns one worker per CPU, open tables of
// table.DefaultCapacity slots and kernel read-ahead advice for the input.
func DefaultConfig() Config {
	return Config{
		Workers:  runtime.NumCPU(),
		Capacity: table.DefaultCapacity,
		Source:   source.Options{Advise: true},
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Workers <= 0 {
		c.Workers = d.Workers
	}
	if c.Capacity <= 0 {
		c.Capacity = d.Capacity
	}
	return c
}

// Run aggregates buf with cfg.Workers concurrent workers and returns one
// table per non-empty partition. The first worker error cancels the others
// and is returned without any tables.
func Run(ctx context.Context, buf []byte, cfg Config) ([]table.Table, error) {
	tables, _, err := run(ctx, buf, cfg)
	return tables, err
}

func run(ctx context.Context, buf []byte, cfg Config) ([]table.Table, []ScanStats, error) {
	cfg = cfg.withDefaults()
	ranges := Partition(buf, cfg.Workers)
	newTable := table.NewFactory(cfg.Vocabulary, cfg.Capacity)

	tables := make([]table.Table, len(ranges))
	stats := make([]ScanStats, len(ranges))

	g, gctx := errgroup.WithContext(ctx)
	for i, r := range ranges {
		if r.Empty() {
			continue
		}
		g.Go(func() error {
			wctx := logctx.WithChunk(gctx, i, r.Start, r.End)
			t := newTable()
			s, err := Scan(wctx, buf, r, t)
			if err != nil {
				return fmt.Errorf("chunk %d [%d, %d): %w", i, r.Start, r.End, err)
			}
			tables[i], stats[i] = t, s

			logging.ChunkComplete(logctx.FromContext(wctx), "scan", s.Elapsed).
				Bytes("chunk_bytes", s.Bytes).
				Count("records", s.Records).
				Int("stations", t.Len()).
				LogDebug("chunk scanned")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	out := tables[:0]
	outStats := stats[:0]
	for i, t := range tables {
		if t != nil {
			out = append(out, t)
			outStats = append(outStats, stats[i])
		}
	}
	return out, outStats, nil
}

// phaseTimer measures a named phase.
type phaseTimer struct {
	phase string
	start time.Time
}

func startPhase(phase string) phaseTimer {
	return phaseTimer{phase: phase, start: time.Now()}
}

func (p phaseTimer) done(ctx context.Context) (*logging.CompletionEvent, time.Duration) {
	elapsed := time.Since(p.start)
	return logging.PhaseComplete(logctx.FromContext(ctx), p.phase, elapsed), elapsed
}
