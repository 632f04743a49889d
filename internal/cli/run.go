package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/eunmann/brc/internal/logctx"
	"github.com/eunmann/brc/pkg/fileutil"
	"github.com/eunmann/brc/pkg/logging"
	"github.com/eunmann/brc/pkg/pipeline"
	"github.com/eunmann/brc/pkg/report"
	"github.com/eunmann/brc/pkg/s3fetch"
	"github.com/eunmann/brc/pkg/vocab"
)

func runAggregate(ctx context.Context, args []string, stdout io.Writer) error {
	def := pipeline.DefaultConfig()

	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	workers := fs.Int("workers", def.Workers, "number of parallel workers")
	capacity := fs.Int("capacity", def.Capacity, "slots per open-addressing table")
	vocabPath := fs.String("vocab", "", "station vocabulary (binary or one name per line) enabling perfect-hash tables")
	formatName := fs.String("format", string(report.FormatLines), "output format: lines, braces or parquet")
	outPath := fs.String("out", "", "output file (default stdout)")
	tmpDir := fs.String("tmp", "", "directory for downloaded or decompressed input")
	debug := fs.Bool("debug", false, "enable debug logging")
	human := fs.Bool("human", false, "human-friendly console logs")
	profileKind := fs.String("profile", "", "write a profile: cpu, mem, block or trace")
	profileDir := fs.String("profile-dir", ".", "directory for profile output")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("exactly one input file is required")
	}
	format, err := report.ParseFormat(*formatName)
	if err != nil {
		return fmt.Errorf("--format: %w", err)
	}
	if format == report.FormatParquet && *outPath == "" {
		return errors.New("--out is required for parquet output")
	}

	initLogging(*debug, *human)
	log := logging.WithPhase("run")
	ctx = logctx.WithLogger(ctx, log)

	stop, err := startProfiling(*profileKind, *profileDir)
	if err != nil {
		return err
	}
	defer stop()

	cfg := def
	cfg.Workers = *workers
	cfg.Capacity = *capacity
	cfg.Source.TempDir = *tmpDir
	if *vocabPath != "" {
		v, err := vocab.Open(*vocabPath)
		if err != nil {
			return fmt.Errorf("load vocabulary: %w", err)
		}
		cfg.Vocabulary = v
		log.Info().Int("stations", v.Len()).Str("path", *vocabPath).Msg("using perfect-hash tables")
	}

	input, cleanup, err := resolveInput(ctx, fs.Arg(0), *tmpDir)
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := pipeline.Aggregate(ctx, input, cfg)
	if err != nil {
		return err
	}

	if *outPath == "" {
		return report.Write(stdout, format, res.Rows)
	}
	if err := fileutil.CleanupTmpFiles("", *outPath); err != nil {
		return err
	}
	if err := report.WriteFile(*outPath, format, res.Rows); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	log.Info().Str("path", *outPath).Str("format", string(format)).Int("stations", len(res.Rows)).Msg("report written")
	return nil
}

// resolveInput returns a local path for input, downloading s3:// URIs first.
// cleanup removes anything that was downloaded.
func resolveInput(ctx context.Context, input, tmpDir string) (string, func(), error) {
	if !s3fetch.IsS3URI(input) {
		return input, func() {}, nil
	}

	cfg := s3fetch.DefaultDownloaderConfig()
	cfg.TempDir = tmpDir
	dl, err := s3fetch.Fetch(ctx, input, cfg)
	if err != nil {
		return "", nil, err
	}
	cleanup := func() {
		if err := dl.Remove(); err != nil {
			logger := logctx.FromContext(ctx)
			logger.Warn().Err(err).Msg("failed to remove downloaded input")
		}
	}
	return dl.Path, cleanup, nil
}
