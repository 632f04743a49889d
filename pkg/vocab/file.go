package vocab

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/eunmann/brc/pkg/fileutil"
	"github.com/eunmann/brc/pkg/record"
	"github.com/relab/bbhash"
	"github.com/zeebo/xxh3"
)

// Vocabulary file format:
//
// Header (24 bytes):
//   Magic:    4 bytes, big-endian (0x42524356 = "BRCV")
//   Version:  4 bytes
//   Count:    8 bytes (number of names)
//   MPHFSize: 8 bytes (length of the marshaled MPHF)
//
// Body:
//   MPHF:     MPHFSize bytes (bbhash binary encoding, absent when Count is 0)
//   Names:    Count entries of [len u16][bytes], in index order
//
// Trailer (8 bytes):
//   Checksum: xxh3 of header and body

const (
	// MagicNumber identifies vocabulary files.
	MagicNumber uint32 = 0x42524356 // "BRCV"
	// Version is the current vocabulary file version.
	Version uint32 = 1

	headerSize  = 4 + 4 + 8 + 8
	trailerSize = 8
)

type header struct {
	Magic    uint32
	Version  uint32
	Count    uint64
	MPHFSize uint64
}

func encodeHeader(h header) []byte {
	buf := make([]byte, headerSize)
	binary.BigEndian.PutUint32(buf[0:4], h.Magic)
	binary.LittleEndian.PutUint32(buf[4:8], h.Version)
	binary.LittleEndian.PutUint64(buf[8:16], h.Count)
	binary.LittleEndian.PutUint64(buf[16:24], h.MPHFSize)
	return buf
}

func decodeHeader(buf []byte) (header, error) {
	if len(buf) < headerSize {
		return header{}, ErrInvalidHeader
	}
	return header{
		Magic:    binary.BigEndian.Uint32(buf[0:4]),
		Version:  binary.LittleEndian.Uint32(buf[4:8]),
		Count:    binary.LittleEndian.Uint64(buf[8:16]),
		MPHFSize: binary.LittleEndian.Uint64(buf[16:24]),
	}, nil
}

// MarshalBinary encodes the vocabulary in the vocabulary file format.
func (v *Vocabulary) MarshalBinary() ([]byte, error) {
	var mphData []byte
	if v.mph != nil {
		var err error
		mphData, err = v.mph.MarshalBinary()
		if err != nil {
			return nil, fmt.Errorf("marshal MPHF: %w", err)
		}
	}

	buf := encodeHeader(header{
		Magic:    MagicNumber,
		Version:  Version,
		Count:    uint64(len(v.keys)),
		MPHFSize: uint64(len(mphData)),
	})
	buf = append(buf, mphData...)
	for _, k := range v.keys {
		buf = binary.LittleEndian.AppendUint16(buf, uint16(len(k)))
		buf = append(buf, k...)
	}
	return binary.LittleEndian.AppendUint64(buf, xxh3.Hash(buf)), nil
}

// Unmarshal decodes a vocabulary produced by MarshalBinary.
func Unmarshal(data []byte) (*Vocabulary, error) {
	if len(data) < headerSize+trailerSize {
		return nil, ErrInvalidHeader
	}

	body := data[:len(data)-trailerSize]
	want := binary.LittleEndian.Uint64(data[len(data)-trailerSize:])
	if xxh3.Hash(body) != want {
		return nil, ErrChecksum
	}

	h, err := decodeHeader(body)
	if err != nil {
		return nil, err
	}
	if h.Magic != MagicNumber {
		return nil, ErrMagicMismatch
	}
	if h.Version != Version {
		return nil, ErrVersionMismatch
	}

	rest := body[headerSize:]
	if h.MPHFSize > uint64(len(rest)) {
		return nil, fmt.Errorf("MPHF size %d exceeds file: %w", h.MPHFSize, ErrInvalidHeader)
	}
	mphData := rest[:h.MPHFSize]
	rest = rest[h.MPHFSize:]

	names := make([]string, 0, min(h.Count, uint64(len(rest))/2))
	for i := uint64(0); i < h.Count; i++ {
		if len(rest) < 2 {
			return nil, fmt.Errorf("truncated name %d: %w", i, ErrCorrupt)
		}
		n := int(binary.LittleEndian.Uint16(rest))
		rest = rest[2:]
		if len(rest) < n {
			return nil, fmt.Errorf("truncated name %d: %w", i, ErrCorrupt)
		}
		names = append(names, string(rest[:n]))
		rest = rest[n:]
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("%d trailing bytes: %w", len(rest), ErrCorrupt)
	}

	if h.Count == 0 {
		return &Vocabulary{}, nil
	}

	mph := &bbhash.BBHash2{}
	if err := mph.UnmarshalBinary(mphData); err != nil {
		return nil, fmt.Errorf("unmarshal MPHF: %w", err)
	}

	v := &Vocabulary{
		mph:    mph,
		keys:   names,
		hashes: make([]uint64, len(names)),
	}
	for i, name := range names {
		if err := validateKey(name); err != nil {
			return nil, fmt.Errorf("name %d: %w", i, err)
		}
		v.hashes[i] = record.HashString(name)
	}
	if err := v.Verify(); err != nil {
		return nil, err
	}
	return v, nil
}

// Save writes the vocabulary to path atomically.
func (v *Vocabulary) Save(path string) error {
	data, err := v.MarshalBinary()
	if err != nil {
		return err
	}
	return fileutil.WriteTmpThenMove("", path, func(tmpPath string) error {
		if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
			return fmt.Errorf("write vocabulary: %w", err)
		}
		return nil
	})
}

// Load reads a vocabulary file written by Save.
func Load(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary: %w", err)
	}
	v, err := Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return v, nil
}

// LoadText builds a vocabulary from a text file with one station name per
// line. Blank lines are skipped.
func LoadText(path string) (*Vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vocabulary: %w", err)
	}
	defer f.Close()

	var names []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		name := strings.TrimSuffix(sc.Text(), "\r")
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read vocabulary: %w", err)
	}
	return Build(names)
}

// Open loads a binary vocabulary file, or a text file when the file does
// not start with the vocabulary magic number.
func Open(path string) (*Vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vocabulary: %w", err)
	}
	var magic [4]byte
	_, err = io.ReadFull(f, magic[:])
	f.Close()
	switch {
	case err == nil:
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return LoadText(path)
	default:
		return nil, fmt.Errorf("read vocabulary: %w", err)
	}

	if binary.BigEndian.Uint32(magic[:]) == MagicNumber {
		return Load(path)
	}
	return LoadText(path)
}
