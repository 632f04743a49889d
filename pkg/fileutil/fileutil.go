// Package fileutil provides atomic file writes with tmp+mv semantics.
package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/eunmann/brc/pkg/logging"
)

// WriteTmpThenMove writes to a temporary file then atomically moves it to the final path.
// The writeFunc receives the temporary path and should write the complete file.
// On success, the file is moved to outPath atomically. tmpDir should be on the
// same filesystem as outPath; an empty tmpDir means the directory of outPath.
func WriteTmpThenMove(tmpDir, outPath string, writeFunc func(tmpPath string) error) error {
	outDir := filepath.Dir(outPath)
	if tmpDir == "" {
		tmpDir = outDir
	}

	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return fmt.Errorf("create tmp dir: %w", err)
	}

	tmpPath := tmpPathFor(tmpDir, outPath)

	if err := writeFunc(tmpPath); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := syncFile(tmpPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("sync temp file: %w", err)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("create output dir: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp to final: %w", err)
	}

	return nil
}

// syncFile opens, syncs, and closes a file.
func syncFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	err = f.Sync()
	f.Close()
	return err
}

// tmpPathFor returns the temporary path WriteTmpThenMove uses for outPath.
func tmpPathFor(tmpDir, outPath string) string {
	if tmpDir == "" {
		tmpDir = filepath.Dir(outPath)
	}
	return filepath.Join(tmpDir, filepath.Base(outPath)+".tmp")
}

// CleanupTmpFiles removes the temporary files that interrupted
// WriteTmpThenMove calls for outPaths would have left behind. Other files in
// the directory are never touched.
func CleanupTmpFiles(tmpDir string, outPaths ...string) error {
	var removed int
	for _, out := range outPaths {
		path := tmpPathFor(tmpDir, out)
		err := os.Remove(path)
		switch {
		case err == nil:
			removed++
		case errors.Is(err, fs.ErrNotExist):
		default:
			return fmt.Errorf("remove %s: %w", path, err)
		}
	}

	if removed > 0 {
		logging.L().Debug().Int("files_removed", removed).Msg("cleaned up tmp files")
	}
	return nil
}
