package source

import "errors"

var (
	// ErrIO indicates the input could not be opened, read, expanded or mapped.
	ErrIO = errors.New("input i/o error")
	// ErrRange indicates a sub-range outside the mapped buffer.
	ErrRange = errors.New("range out of bounds")
	// ErrClosed indicates use of a source after Close.
	ErrClosed = errors.New("source closed")
)
