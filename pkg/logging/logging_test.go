package logging

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/eunmann/brc/internal/logctx"
	"github.com/rs/zerolog"
)

func TestInit_DoesNotPanic(t *testing.T) {
	for _, tc := range []struct{ debug, human bool }{
		{false, false}, {true, false}, {false, true}, {true, true},
	} {
		Init(tc.debug, tc.human)
		L().Info().Msg("init test")
		if IsPrettyMode() != tc.human {
			t.Errorf("Init(%v, %v): IsPrettyMode() = %v", tc.debug, tc.human, IsPrettyMode())
		}
	}
	Init(false, false)
}

func TestWithPhase(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf))
	defer Init(false, false)

	log := WithPhase("scan")
	log.Info().Msg("test message")

	if !bytes.Contains(buf.Bytes(), []byte(`"phase":"scan"`)) {
		t.Errorf("expected phase field in output, got: %s", buf.String())
	}
}

func TestSetLoggerUpdatesContextDefault(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf).With().Str("custom", "field").Logger())
	defer Init(false, false)

	log := logctx.FromContext(nil)
	log.Info().Msg("via context")

	if !bytes.Contains(buf.Bytes(), []byte(`"custom":"field"`)) {
		t.Errorf("expected custom field in context logger output, got: %s", buf.String())
	}
}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	return m
}

func TestPhaseComplete(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	SetPrettyMode(false)

	PhaseComplete(log, "scan", 2*time.Second).
		Bytes("input_bytes", 4096).
		Count("records", 1000).
		Throughput(4096).
		Rate("records_per_sec", 1000).
		Log("scan complete")

	m := decode(t, &buf)
	if m["event"] != "phase_completed" || m["phase"] != "scan" {
		t.Errorf("unexpected event/phase: %v", m)
	}
	if m["duration_ms"] != float64(2000) {
		t.Errorf("duration_ms = %v, want 2000", m["duration_ms"])
	}
	if m["throughput_bps"] != float64(2048) {
		t.Errorf("throughput_bps = %v, want 2048", m["throughput_bps"])
	}
	if m["records_per_sec"] != float64(500) {
		t.Errorf("records_per_sec = %v, want 500", m["records_per_sec"])
	}
	if _, ok := m["input_bytes_h"]; ok {
		t.Error("human field present outside pretty mode")
	}
}

func TestChunkCompletePretty(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	SetPrettyMode(true)
	defer SetPrettyMode(false)

	ChunkComplete(log, "scan", 1500*time.Millisecond).
		Int("chunk_index", 3).
		Bytes("chunk_bytes", 2048).
		Count("records", 1500).
		Log("chunk done")

	m := decode(t, &buf)
	if m["event"] != "chunk_completed" {
		t.Errorf("event = %v", m["event"])
	}
	if m["chunk_bytes_h"] != "2.00 KiB" {
		t.Errorf("chunk_bytes_h = %v", m["chunk_bytes_h"])
	}
	if m["records_h"] != "1.50K" {
		t.Errorf("records_h = %v", m["records_h"])
	}
	if m["duration_h"] != "1.50s" {
		t.Errorf("duration_h = %v", m["duration_h"])
	}
}

func TestLogDebugFiltered(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.InfoLevel)

	PhaseComplete(log, "merge", time.Millisecond).LogDebug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug event written at info level: %s", buf.String())
	}
}
