package record

import (
	"errors"
	"fmt"
)

// ErrMalformed indicates a line that does not match `<name>;-?\d{1,3}\.\d`.
var ErrMalformed = errors.New("malformed record")

// Error describes a grammar violation at a byte offset of the input.
// It unwraps to ErrMalformed.
type Error struct {
	// Offset is the offset of the first byte of the offending record.
	Offset int
	// Reason is a short description of the violation.
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("malformed record at offset %d: %s", e.Offset, e.Reason)
}

func (e *Error) Unwrap() error {
	return ErrMalformed
}

func malformed(off int, reason string) error {
	return &Error{Offset: off, Reason: reason}
}
