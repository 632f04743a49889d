package logctx

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestFromContext_NilContext(t *testing.T) {
	logger := FromContext(nil)

	// Verify it works by logging something
	var buf bytes.Buffer
	testLogger := logger.Output(&buf)
	testLogger.Info().Msg("test")

	if buf.Len() == 0 {
		t.Error("expected logger to produce output")
	}
}

func TestFromContext_ContextWithoutLogger(t *testing.T) {
	ctx := context.Background()
	logger := FromContext(ctx)

	var buf bytes.Buffer
	testLogger := logger.Output(&buf)
	testLogger.Info().Msg("test")

	if buf.Len() == 0 {
		t.Error("expected logger to produce output")
	}
}

func TestWithLogger_AndFromContext(t *testing.T) {
	var buf bytes.Buffer
	customLogger := zerolog.New(&buf).With().Str("custom", "field").Logger()

	ctx := WithLogger(context.Background(), customLogger)
	logger := FromContext(ctx)

	logger.Info().Msg("test")

	output := buf.String()
	if !strings.Contains(output, `"custom":"field"`) {
		t.Errorf("expected custom field in output, got: %s", output)
	}
}

func TestWithLogger_NilContext(t *testing.T) {
	var buf bytes.Buffer
	customLogger := zerolog.New(&buf)

	ctx := WithLogger(nil, customLogger)
	if ctx == nil {
		t.Error("expected non-nil context")
	}

	logger := FromContext(ctx)
	logger.Info().Msg("test")

	if buf.Len() == 0 {
		t.Error("expected logger to produce output")
	}
}

func TestWithStr(t *testing.T) {
	var buf bytes.Buffer
	baseLogger := zerolog.New(&buf)
	ctx := WithLogger(context.Background(), baseLogger)

	ctx = WithStr(ctx, "phase", "scan")
	logger := FromContext(ctx)
	logger.Info().Msg("test")

	output := buf.String()
	if !strings.Contains(output, `"phase":"scan"`) {
		t.Errorf("expected phase field in output, got: %s", output)
	}
}

func TestWithInt(t *testing.T) {
	var buf bytes.Buffer
	baseLogger := zerolog.New(&buf)
	ctx := WithLogger(context.Background(), baseLogger)

	ctx = WithInt(ctx, "chunk_index", 42)
	logger := FromContext(ctx)
	logger.Info().Msg("test")

	output := buf.String()
	if !strings.Contains(output, `"chunk_index":42`) {
		t.Errorf("expected chunk_index field in output, got: %s", output)
	}
}

func TestDefaultLogger(t *testing.T) {
	logger := DefaultLogger()

	var buf bytes.Buffer
	testLogger := logger.Output(&buf)
	testLogger.Info().Msg("test")

	if buf.Len() == 0 {
		t.Error("expected default logger to produce output")
	}
}

func TestSetDefaultLogger(t *testing.T) {
	prev := DefaultLogger()
	defer SetDefaultLogger(prev)

	var buf bytes.Buffer
	SetDefaultLogger(zerolog.New(&buf).With().Str("origin", "default").Logger())

	logger := FromContext(context.Background())
	logger.Info().Msg("test")

	if !strings.Contains(buf.String(), `"origin":"default"`) {
		t.Errorf("expected default logger fields, got: %s", buf.String())
	}
}

func TestWithChunk(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithLogger(context.Background(), zerolog.New(&buf))

	ctx = WithChunk(ctx, 3, 1024, 2048)
	logger := FromContext(ctx)
	logger.Info().Msg("scan")

	output := buf.String()
	for _, want := range []string{`"chunk_index":3`, `"chunk_start":1024`, `"chunk_end":2048`} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %s in output, got: %s", want, output)
		}
	}
}

func TestChainedContexts(t *testing.T) {
	var buf bytes.Buffer
	baseLogger := zerolog.New(&buf)

	ctx := WithLogger(context.Background(), baseLogger)
	ctx = WithStr(ctx, "phase", "scan")
	ctx = WithInt(ctx, "chunk_index", 5)

	logger := FromContext(ctx)
	logger.Info().Msg("test")

	output := buf.String()
	if !strings.Contains(output, `"phase":"scan"`) {
		t.Errorf("expected phase field, got: %s", output)
	}
	if !strings.Contains(output, `"chunk_index":5`) {
		t.Errorf("expected chunk_index field, got: %s", output)
	}
}
