package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func TestWriteTmpThenMove(t *testing.T) {
	tmpDir := t.TempDir()
	outPath := filepath.Join(t.TempDir(), "report.txt")

	content := []byte("Osaka=-3.2/-3.2/-3.2\n")
	err := WriteTmpThenMove(tmpDir, outPath, func(tmpPath string) error {
		return os.WriteFile(tmpPath, content, 0o644)
	})
	if err != nil {
		t.Fatalf("WriteTmpThenMove failed: %v", err)
	}

	got, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("Failed to read output file: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("Content mismatch: got %q, want %q", got, content)
	}

	if exists(filepath.Join(tmpDir, "report.txt.tmp")) {
		t.Error("Tmp file still exists after successful write")
	}
}

func TestWriteTmpThenMoveDefaultsToOutputDir(t *testing.T) {
	outDir := t.TempDir()
	outPath := filepath.Join(outDir, "nested", "report.txt")

	var seenTmp string
	err := WriteTmpThenMove("", outPath, func(tmpPath string) error {
		seenTmp = tmpPath
		return os.WriteFile(tmpPath, []byte("x"), 0o644)
	})
	if err != nil {
		t.Fatalf("WriteTmpThenMove failed: %v", err)
	}
	if filepath.Dir(seenTmp) != filepath.Dir(outPath) {
		t.Errorf("tmp path %q not next to output %q", seenTmp, outPath)
	}
	if !exists(outPath) {
		t.Error("output file missing")
	}
}

func TestWriteTmpThenMoveError(t *testing.T) {
	tmpDir := t.TempDir()
	outPath := filepath.Join(t.TempDir(), "output.txt")

	err := WriteTmpThenMove(tmpDir, outPath, func(tmpPath string) error {
		if err := os.WriteFile(tmpPath, []byte("partial"), 0o644); err != nil {
			return err
		}
		return os.ErrPermission
	})
	if err == nil {
		t.Error("WriteTmpThenMove should have failed")
	}

	if exists(filepath.Join(tmpDir, "output.txt.tmp")) {
		t.Error("Tmp file exists after failed write")
	}
	if exists(outPath) {
		t.Error("Output file exists after failed write")
	}
}

func TestCleanupTmpFiles(t *testing.T) {
	outDir := t.TempDir()
	outPath := filepath.Join(outDir, "report.txt")

	leftover := filepath.Join(outDir, "report.txt.tmp")
	unrelated := filepath.Join(outDir, "other.tmp")
	for _, path := range []string{leftover, unrelated, outPath} {
		if err := os.WriteFile(path, []byte("content"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	if err := CleanupTmpFiles("", outPath); err != nil {
		t.Fatalf("CleanupTmpFiles failed: %v", err)
	}

	if exists(leftover) {
		t.Error("leftover tmp file still exists")
	}
	if !exists(unrelated) {
		t.Error("unrelated tmp file was removed")
	}
	if !exists(outPath) {
		t.Error("output file was removed")
	}
}

func TestCleanupTmpFilesSeparateTmpDir(t *testing.T) {
	tmpDir := t.TempDir()
	outPath := filepath.Join(t.TempDir(), "stations.vocab")

	leftover := filepath.Join(tmpDir, "stations.vocab.tmp")
	if err := os.WriteFile(leftover, []byte("partial"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := CleanupTmpFiles(tmpDir, outPath); err != nil {
		t.Fatalf("CleanupTmpFiles failed: %v", err)
	}
	if exists(leftover) {
		t.Error("leftover tmp file still exists")
	}

	// Nothing left to remove.
	if err := CleanupTmpFiles(tmpDir, outPath); err != nil {
		t.Errorf("second CleanupTmpFiles failed: %v", err)
	}
}
