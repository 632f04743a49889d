package vocab

import "errors"

var (
	// ErrInvalidKey indicates a station name that can never appear in valid input.
	ErrInvalidKey = errors.New("invalid station name")
	// ErrHashCollision indicates two distinct names with the same record hash.
	// Such a vocabulary cannot back a perfect-hash table.
	ErrHashCollision = errors.New("station hash collision")
	// ErrInvalidHeader indicates an invalid or truncated vocabulary file header.
	ErrInvalidHeader = errors.New("invalid vocabulary header")
	// ErrMagicMismatch indicates the file is not a vocabulary file.
	ErrMagicMismatch = errors.New("magic number mismatch")
	// ErrVersionMismatch indicates an unsupported vocabulary file version.
	ErrVersionMismatch = errors.New("unsupported vocabulary version")
	// ErrChecksum indicates the vocabulary file content does not match its checksum.
	ErrChecksum = errors.New("vocabulary checksum mismatch")
	// ErrCorrupt indicates a well-formed file whose hash does not map its own keys.
	ErrCorrupt = errors.New("vocabulary corrupt")
)
