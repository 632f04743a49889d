package report

import "errors"

// ErrUnknownFormat indicates an output format name that is not supported.
var ErrUnknownFormat = errors.New("unknown output format")
