package benchutil

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
)

var lineRE = regexp.MustCompile(`^[^;\n]{1,100};-?\d{1,2}\.\d$`)

func TestGeneratorGrammar(t *testing.T) {
	cfg := DefaultConfig(2000)
	cfg.Stations = 60
	var buf bytes.Buffer
	if _, err := NewGenerator(cfg).WriteTo(&buf); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 2000 {
		t.Fatalf("got %d lines, want 2000", len(lines))
	}
	for i, l := range lines {
		if !lineRE.MatchString(l) {
			t.Fatalf("line %d %q does not match grammar", i, l)
		}
	}
}

func TestGeneratorDeterministic(t *testing.T) {
	var a, b bytes.Buffer
	if _, err := NewGenerator(DefaultConfig(500)).WriteTo(&a); err != nil {
		t.Fatal(err)
	}
	if _, err := NewGenerator(DefaultConfig(500)).WriteTo(&b); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("same seed produced different output")
	}
}

func TestGeneratorStationNamesUnique(t *testing.T) {
	cfg := DefaultConfig(0)
	cfg.Stations = 1000
	names := NewGenerator(cfg).StationNames()

	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			t.Fatalf("duplicate station %q", n)
		}
		seen[n] = true
	}
	if len(seen) != 1000 {
		t.Errorf("got %d names, want 1000", len(seen))
	}
}

func TestGeneratorOmitFinalNewline(t *testing.T) {
	cfg := DefaultConfig(3)
	cfg.OmitFinalNewline = true
	var buf bytes.Buffer
	n, err := NewGenerator(cfg).WriteTo(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if int(n) != buf.Len() {
		t.Errorf("reported %d bytes, wrote %d", n, buf.Len())
	}
	if bytes.HasSuffix(buf.Bytes(), []byte("\n")) {
		t.Error("output ends with newline")
	}
	if c := bytes.Count(buf.Bytes(), []byte("\n")); c != 2 {
		t.Errorf("got %d newlines, want 2", c)
	}
}
