package source

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

func isZstd(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".zst")
}

// expandZstd decompresses path into a new temporary file and returns its path.
func expandZstd(path, tempDir string) (string, error) {
	in, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w: %w", path, ErrIO, err)
	}
	defer in.Close()

	dec, err := zstd.NewReader(in)
	if err != nil {
		return "", fmt.Errorf("create zstd reader: %w: %w", ErrIO, err)
	}
	defer dec.Close()

	if tempDir == "" {
		tempDir = os.TempDir()
	}
	out, err := os.CreateTemp(tempDir, "brc-input-*.txt")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w: %w", ErrIO, err)
	}

	if _, err := io.Copy(out, dec); err != nil {
		out.Close()
		os.Remove(out.Name())
		return "", fmt.Errorf("decompress %s: %w: %w", path, ErrIO, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(out.Name())
		return "", fmt.Errorf("close temp file: %w: %w", ErrIO, err)
	}
	return out.Name(), nil
}
