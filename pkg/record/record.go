// Package record parses `<station>;<temperature>` lines straight out of a
// byte buffer.
//
// A single forward scan per record extracts the station name, folds every
// name byte into a 64-bit FNV-1a hash and accumulates the temperature as an
// integer number of tenths. Nothing is copied and no generic number parsing
// is involved.
package record

// MaxKeyLen is the longest station name accepted, in bytes.
const MaxKeyLen = 100

const (
	fnvOffset64 = 14695981039346656037
	fnvPrime64  = 1099511628211
)

// Record is one parsed line.
//
// Key aliases the buffer passed to Next and is only valid as long as that
// buffer is. Callers that keep the name must copy it.
type Record struct {
	Key    []byte
	Hash   uint64
	Tenths int
}

// Next parses the record starting at buf[off] and returns it together with
// the offset of the following record. For a final line without a trailing
// newline the returned offset is len(buf).
//
// Next never reads beyond len(buf). Any deviation from the expected grammar
// is reported as an *Error wrapping ErrMalformed.
func Next(buf []byte, off int) (Record, int, error) {
	if off < 0 || off >= len(buf) {
		return Record{}, off, malformed(off, "offset outside buffer")
	}

	h := uint64(fnvOffset64)
	i := off
	for ; i < len(buf); i++ {
		c := buf[i]
		if c == ';' {
			break
		}
		if c == '\n' {
			return Record{}, off, malformed(off, "missing ';' delimiter")
		}
		h ^= uint64(c)
		h *= fnvPrime64
	}
	if i == len(buf) {
		return Record{}, off, malformed(off, "missing ';' delimiter")
	}

	keyLen := i - off
	if keyLen == 0 {
		return Record{}, off, malformed(off, "empty station name")
	}
	if keyLen > MaxKeyLen {
		return Record{}, off, malformed(off, "station name too long")
	}
	key := buf[off:i:i]
	i++ // ';'

	neg := false
	if i < len(buf) && buf[i] == '-' {
		neg = true
		i++
	}

	v := 0
	digits := 0
	for i < len(buf) {
		d := buf[i] - '0'
		if d > 9 {
			break
		}
		digits++
		if digits > 3 {
			return Record{}, off, malformed(off, "too many integer digits")
		}
		v = v*10 + int(d)
		i++
	}
	if digits == 0 {
		return Record{}, off, malformed(off, "missing integer digits")
	}

	if i >= len(buf) || buf[i] != '.' {
		return Record{}, off, malformed(off, "missing decimal point")
	}
	i++

	if i >= len(buf) || buf[i]-'0' > 9 {
		return Record{}, off, malformed(off, "missing fractional digit")
	}
	v = v*10 + int(buf[i]-'0')
	i++

	if i < len(buf) {
		if buf[i] != '\n' {
			return Record{}, off, malformed(off, "unexpected bytes after temperature")
		}
		i++
	}

	if neg {
		v = -v
	}
	return Record{Key: key, Hash: h, Tenths: v}, i, nil
}

// Hash returns the hash Next computes for a station name.
func Hash(key []byte) uint64 {
	h := uint64(fnvOffset64)
	for _, c := range key {
		h ^= uint64(c)
		h *= fnvPrime64
	}
	return h
}

// HashString is Hash for a string key.
func HashString(key string) uint64 {
	h := uint64(fnvOffset64)
	for i := 0; i < len(key); i++ {
		h ^= uint64(key[i])
		h *= fnvPrime64
	}
	return h
}
