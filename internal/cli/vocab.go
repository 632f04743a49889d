package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/eunmann/brc/internal/logctx"
	"github.com/eunmann/brc/pkg/fileutil"
	"github.com/eunmann/brc/pkg/logging"
	"github.com/eunmann/brc/pkg/pipeline"
	"github.com/eunmann/brc/pkg/vocab"
)

// runVocab discovers the station set of an input (or reads a name list) and
// saves it as a binary vocabulary.
func runVocab(ctx context.Context, args []string) error {
	def := pipeline.DefaultConfig()

	fs := flag.NewFlagSet("vocab", flag.ContinueOnError)
	outPath := fs.String("out", "", "vocabulary file to write")
	fromList := fs.Bool("list", false, "treat the input as one station name per line")
	workers := fs.Int("workers", def.Workers, "number of parallel workers")
	capacity := fs.Int("capacity", def.Capacity, "slots per open-addressing table")
	tmpDir := fs.String("tmp", "", "directory for downloaded or decompressed input")
	debug := fs.Bool("debug", false, "enable debug logging")
	human := fs.Bool("human", false, "human-friendly console logs")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *outPath == "" {
		return errors.New("--out is required")
	}
	if fs.NArg() != 1 {
		return errors.New("exactly one input file is required")
	}

	initLogging(*debug, *human)
	log := logging.WithPhase("vocab")
	ctx = logctx.WithLogger(ctx, log)

	var v *vocab.Vocabulary
	if *fromList {
		var err error
		if v, err = vocab.LoadText(fs.Arg(0)); err != nil {
			return err
		}
	} else {
		input, cleanup, err := resolveInput(ctx, fs.Arg(0), *tmpDir)
		if err != nil {
			return err
		}
		defer cleanup()

		cfg := def
		cfg.Workers = *workers
		cfg.Capacity = *capacity
		cfg.Source.TempDir = *tmpDir
		res, err := pipeline.Aggregate(ctx, input, cfg)
		if err != nil {
			return err
		}

		names := make([]string, len(res.Rows))
		for i, r := range res.Rows {
			names[i] = r.Key
		}
		if v, err = vocab.Build(names); err != nil {
			return fmt.Errorf("build vocabulary: %w", err)
		}
	}

	if err := fileutil.CleanupTmpFiles("", *outPath); err != nil {
		return err
	}
	if err := v.Save(*outPath); err != nil {
		return fmt.Errorf("save vocabulary: %w", err)
	}
	log.Info().Int("stations", v.Len()).Str("path", *outPath).Msg("vocabulary written")
	return nil
}
