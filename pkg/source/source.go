// Package source exposes an input file as one contiguous, read-only byte
// buffer backed by a memory mapping.
//
// Thread Safety: the buffer returned by Bytes and Range may be read from any
// number of goroutines. Close must only be called once every reader is done.
package source

import (
	"context"
	"fmt"
	"os"

	"github.com/eunmann/brc/internal/logctx"
	"github.com/eunmann/brc/pkg/sysmem"
	"golang.org/x/sys/unix"
)

// Options configures how a Source is opened.
type Options struct {
	// TempDir is where compressed inputs are expanded before mapping.
	// If empty, os.TempDir() is used.
	TempDir string

	// Advise passes an access-pattern hint for the mapping to the kernel.
	Advise bool
}

// Source is a memory-mapped input file.
type Source struct {
	path    string
	data    []byte
	mapped  bool
	tmpPath string // expanded copy of a compressed input, removed on Close
	closed  bool
}

// Open maps the file at path. Paths ending in ".zst" are first expanded into
// a temporary file, which is removed again on Close.
func Open(ctx context.Context, path string, opts Options) (*Source, error) {
	log := logctx.FromContext(ctx)

	mapPath := path
	var tmpPath string
	if isZstd(path) {
		expanded, err := expandZstd(path, opts.TempDir)
		if err != nil {
			return nil, err
		}
		mapPath = expanded
		tmpPath = expanded
		log.Debug().Str("input", path).Str("expanded", expanded).Msg("expanded compressed input")
	}

	s, err := mapFile(mapPath)
	if err != nil {
		if tmpPath != "" {
			os.Remove(tmpPath)
		}
		return nil, err
	}
	s.path = path
	s.tmpPath = tmpPath

	if opts.Advise {
		s.advise(ctx)
	}
	return s, nil
}

func mapFile(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w: %w", path, ErrIO, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w: %w", path, ErrIO, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("open %s: %w: is a directory", path, ErrIO)
	}

	size := info.Size()
	if size == 0 {
		return &Source{}, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmap %s: %w: %w", path, ErrIO, err)
	}
	return &Source{data: data, mapped: true}, nil
}

// advise tells the kernel how the mapping will be read. Inputs that fit
// comfortably in RAM are prefetched; larger ones are marked sequential.
func (s *Source) advise(ctx context.Context) {
	if !s.mapped {
		return
	}
	log := logctx.FromContext(ctx)

	advice := unix.MADV_SEQUENTIAL
	name := "sequential"
	if sysmem.Total().Fits(uint64(len(s.data)), 2) {
		advice = unix.MADV_WILLNEED
		name = "willneed"
	}

	if err := unix.Madvise(s.data, advice); err != nil {
		log.Debug().Err(err).Str("advice", name).Msg("madvise failed")
		return
	}
	log.Debug().Str("advice", name).Int("size_bytes", len(s.data)).Msg("madvise applied")
}

// Path returns the path the source was opened with.
func (s *Source) Path() string {
	return s.path
}

// Len returns the number of bytes in the buffer.
func (s *Source) Len() int {
	return len(s.data)
}

// Bytes returns the whole buffer. It must not be modified.
func (s *Source) Bytes() []byte {
	return s.data
}

// Range returns data[start:end] without copying.
func (s *Source) Range(start, end int) ([]byte, error) {
	if s.closed {
		return nil, ErrClosed
	}
	if start < 0 || end < start || end > len(s.data) {
		return nil, fmt.Errorf("[%d, %d) of %d bytes: %w", start, end, len(s.data), ErrRange)
	}
	return s.data[start:end:end], nil
}

// Close unmaps the buffer and removes any expanded temporary file.
// Calling Close more than once is a no-op.
func (s *Source) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var firstErr error
	if s.mapped {
		if err := unix.Munmap(s.data); err != nil {
			firstErr = fmt.Errorf("munmap: %w", err)
		}
	}
	s.data = nil
	s.mapped = false

	if s.tmpPath != "" {
		if err := os.Remove(s.tmpPath); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("remove expanded input: %w", err)
		}
	}
	return firstErr
}
