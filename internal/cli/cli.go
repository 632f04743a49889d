// Package cli implements the command-line interface for brc.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/eunmann/brc/pkg/logging"
	"github.com/pkg/profile"
)

const usage = `usage: brc <command> [options]
commands:
  run       aggregate a measurements file (local path or s3://bucket/key)
  vocab     build a station vocabulary for perfect-hash tables
  generate  write a synthetic measurements file`

// Env switches for diagnostics, honored in addition to -debug and -human.
const (
	EnvDebug    = "BRC_DEBUG"
	EnvLogHuman = "BRC_LOG_HUMAN"
)

// Run executes the CLI with the given arguments, writing reports to stdout.
func Run(args []string) error {
	return RunContext(context.Background(), args, os.Stdout)
}

// RunContext is Run with an explicit context and report destination.
func RunContext(ctx context.Context, args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return errors.New(usage)
	}

	switch args[0] {
	case "run":
		return runAggregate(ctx, args[1:], stdout)
	case "vocab":
		return runVocab(ctx, args[1:])
	case "generate":
		return runGenerate(ctx, args[1:])
	case "help", "-h", "--help":
		fmt.Fprintln(stdout, usage)
		return nil
	default:
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func envBool(name string) bool {
	switch strings.ToLower(os.Getenv(name)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func initLogging(debug, human bool) {
	logging.Init(debug || envBool(EnvDebug), human || envBool(EnvLogHuman))
}

// startProfiling starts the requested profile and returns its stop function.
func startProfiling(kind, dir string) (func(), error) {
	opts := []func(*profile.Profile){profile.ProfilePath(dir), profile.Quiet, profile.NoShutdownHook}
	switch kind {
	case "":
		return func() {}, nil
	case "cpu":
		opts = append(opts, profile.CPUProfile)
	case "mem":
		opts = append(opts, profile.MemProfile)
	case "block":
		opts = append(opts, profile.BlockProfile)
	case "trace":
		opts = append(opts, profile.TraceProfile)
	default:
		return nil, fmt.Errorf("--profile: unknown profile %q (want cpu, mem, block or trace)", kind)
	}
	logging.L().Info().Str("profile", kind).Str("dir", dir).Msg("profiling enabled")
	return profile.Start(opts...).Stop, nil
}
