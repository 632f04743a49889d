package benchutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SkipIfNoLongBench skips the benchmark unless LongBenchEnv is set.
func SkipIfNoLongBench(b *testing.B) {
	if os.Getenv(LongBenchEnv) == "" {
		b.Skipf("set %s=1 to run scaling benchmark", LongBenchEnv)
	}
}

// WriteTempInput writes a synthetic file of the given config into a test
// temp dir and returns its path.
func WriteTempInput(tb testing.TB, cfg GeneratorConfig) string {
	tb.Helper()
	path := filepath.Join(tb.TempDir(), "measurements.txt")
	if _, err := NewGenerator(cfg).WriteFile(path); err != nil {
		tb.Fatalf("generate input: %v", err)
	}
	return path
}
