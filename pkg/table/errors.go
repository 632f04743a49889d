package table

import "errors"

// ErrOverflow indicates a station the table cannot hold: either the open
// table is full, or the name is not part of a perfect table's vocabulary.
var ErrOverflow = errors.New("aggregation table overflow")
