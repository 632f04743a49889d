package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/eunmann/brc/pkg/benchutil"
	"github.com/eunmann/brc/pkg/fileutil"
	"github.com/eunmann/brc/pkg/logging"
)

func runGenerate(_ context.Context, args []string) error {
	def := benchutil.DefaultConfig(0)

	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	lines := fs.Int("lines", 1_000_000, "number of measurements")
	stations := fs.Int("stations", def.Stations, "number of distinct stations")
	seed := fs.Int64("seed", def.Seed, "random seed")
	outPath := fs.String("out", "", "file to write")
	debug := fs.Bool("debug", false, "enable debug logging")
	human := fs.Bool("human", false, "human-friendly console logs")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *outPath == "" {
		return errors.New("--out is required")
	}
	if *lines < 0 || *stations < 1 {
		return errors.New("--lines must be >= 0 and --stations >= 1")
	}

	initLogging(*debug, *human)

	cfg := def
	cfg.Lines = *lines
	cfg.Stations = *stations
	cfg.Seed = *seed

	if err := fileutil.CleanupTmpFiles("", *outPath); err != nil {
		return err
	}

	start := time.Now()
	var written int64
	err := fileutil.WriteTmpThenMove("", *outPath, func(tmpPath string) error {
		n, err := benchutil.NewGenerator(cfg).WriteFile(tmpPath)
		written = n
		return err
	})
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	elapsed := time.Since(start)
	logging.PhaseComplete(logging.WithPhase("generate"), "generate", elapsed).
		Str("path", *outPath).
		Count("lines", int64(*lines)).
		Bytes("bytes", written).
		Throughput(written).
		Log("input generated")
	return nil
}
