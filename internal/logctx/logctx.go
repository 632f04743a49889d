// Package logctx carries a zerolog logger through context.Context so workers
// can log with their chunk fields attached:
//
//	ctx = logctx.WithChunk(ctx, i, r.Start, r.End)
//	log := logctx.FromContext(ctx)
package logctx

import (
	"context"
	"os"
	"sync/atomic"

	"github.com/rs/zerolog"
)

type loggerKey struct{}

var defaultLogger atomic.Pointer[zerolog.Logger]

func init() {
	l := zerolog.New(os.Stderr).With().Timestamp().Logger()
	defaultLogger.Store(&l)
}

// DefaultLogger returns the logger used when a context carries none.
func DefaultLogger() zerolog.Logger {
	return *defaultLogger.Load()
}

// SetDefaultLogger replaces the fallback logger.
func SetDefaultLogger(l zerolog.Logger) {
	defaultLogger.Store(&l)
}

// WithLogger returns a context carrying logger. A nil ctx is treated as
// context.Background().
func WithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the context's logger, or DefaultLogger.
func FromContext(ctx context.Context) zerolog.Logger {
	if ctx == nil {
		return DefaultLogger()
	}
	if logger, ok := ctx.Value(loggerKey{}).(zerolog.Logger); ok {
		return logger
	}
	return DefaultLogger()
}

// WithStr adds a string field to the context's logger.
func WithStr(ctx context.Context, key, value string) context.Context {
	return WithLogger(ctx, FromContext(ctx).With().Str(key, value).Logger())
}

// WithInt adds an int field to the context's logger.
func WithInt(ctx context.Context, key string, value int) context.Context {
	return WithLogger(ctx, FromContext(ctx).With().Int(key, value).Logger())
}

// WithChunk tags the context's logger with a partition's index and byte range.
func WithChunk(ctx context.Context, index, start, end int) context.Context {
	l := FromContext(ctx).With().
		Int("chunk_index", index).
		Int("chunk_start", start).
		Int("chunk_end", end).
		Logger()
	return WithLogger(ctx, l)
}
