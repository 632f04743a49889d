// Package vocab builds minimal perfect hash functions over a known set of
// station names.
//
// The MPHF is keyed by the same 64-bit hash the record parser computes while
// scanning a name, so a lookup never touches the name bytes again. Each index
// also stores that hash, which lets a lookup reject names outside the set
// without a byte comparison.
package vocab

import (
	"fmt"
	"slices"
	"strings"

	"github.com/eunmann/brc/pkg/record"
	"github.com/relab/bbhash"
)

// Vocabulary maps every known station name to a dense index in [0, Len()).
//
// Thread Safety: a Vocabulary is immutable after Build or Load and safe for
// concurrent use.
type Vocabulary struct {
	mph    *bbhash.BBHash2
	keys   []string // keys[i] is the name with index i
	hashes []uint64 // hashes[i] == record.HashString(keys[i])
}

// Build constructs a Vocabulary from station names. Duplicates are ignored.
func Build(names []string) (*Vocabulary, error) {
	uniq := slices.Clone(names)
	slices.Sort(uniq)
	uniq = slices.Compact(uniq)

	seen := make(map[uint64]string, len(uniq))
	hashes := make([]uint64, len(uniq))
	for i, name := range uniq {
		if err := validateKey(name); err != nil {
			return nil, err
		}
		h := record.HashString(name)
		if other, ok := seen[h]; ok {
			return nil, fmt.Errorf("%q and %q: %w", other, name, ErrHashCollision)
		}
		seen[h] = name
		hashes[i] = h
	}

	if len(uniq) == 0 {
		return &Vocabulary{}, nil
	}

	mph, err := bbhash.New(hashes, bbhash.Gamma(2.0))
	if err != nil {
		return nil, fmt.Errorf("build MPHF: %w", err)
	}

	return fromMPHF(mph, uniq)
}

// fromMPHF lays keys out in MPHF order.
func fromMPHF(mph *bbhash.BBHash2, names []string) (*Vocabulary, error) {
	v := &Vocabulary{
		mph:    mph,
		keys:   make([]string, len(names)),
		hashes: make([]uint64, len(names)),
	}

	// BBHash returns 1-indexed values, 0 means not found
	for _, name := range names {
		h := record.HashString(name)
		pos := mph.Find(h)
		if pos == 0 || pos > uint64(len(names)) {
			return nil, fmt.Errorf("MPHF lookup failed for %q: %w", name, ErrCorrupt)
		}
		i := pos - 1
		if v.keys[i] != "" {
			return nil, fmt.Errorf("%q and %q share index %d: %w", v.keys[i], name, i, ErrCorrupt)
		}
		v.keys[i] = name
		v.hashes[i] = h
	}
	return v, nil
}

func validateKey(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("empty name: %w", ErrInvalidKey)
	case len(name) > record.MaxKeyLen:
		return fmt.Errorf("%q longer than %d bytes: %w", name, record.MaxKeyLen, ErrInvalidKey)
	case strings.ContainsAny(name, ";\n"):
		return fmt.Errorf("%q contains a delimiter: %w", name, ErrInvalidKey)
	}
	return nil
}

// Len returns the number of names.
func (v *Vocabulary) Len() int {
	return len(v.keys)
}

// Index returns the index for a record hash, or ok=false if the hash does not
// belong to any name in the vocabulary.
func (v *Vocabulary) Index(hash uint64) (int, bool) {
	if v.mph == nil {
		return 0, false
	}
	pos := v.mph.Find(hash)
	if pos == 0 || pos > uint64(len(v.hashes)) {
		return 0, false
	}
	i := int(pos - 1)
	if v.hashes[i] != hash {
		return 0, false
	}
	return i, true
}

// Key returns the name with index i.
func (v *Vocabulary) Key(i int) string {
	return v.keys[i]
}

// Keys returns all names sorted by byte value.
func (v *Vocabulary) Keys() []string {
	out := slices.Clone(v.keys)
	slices.Sort(out)
	return out
}

// Verify checks that every name maps back to its own index.
func (v *Vocabulary) Verify() error {
	for i, name := range v.keys {
		got, ok := v.Index(record.HashString(name))
		if !ok {
			return fmt.Errorf("lookup failed for %q at index %d: %w", name, i, ErrCorrupt)
		}
		if got != i {
			return fmt.Errorf("lookup returned wrong index for %q: got %d, want %d: %w", name, got, i, ErrCorrupt)
		}
	}
	return nil
}
