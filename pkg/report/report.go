// Package report renders merged station statistics.
//
// All values are carried as integer tenths. The mean is rounded half up
// (toward positive infinity) using exact integer arithmetic, and a value
// that rounds to zero is never printed as "-0.0".
package report

import (
	"strconv"

	"github.com/eunmann/brc/pkg/merge"
)

// Mean returns sum/count in tenths, rounded half toward +∞:
// floor((2*sum + count) / (2*count)). count must be positive.
func Mean(sum, count int64) int {
	return int(floorDiv(2*sum+count, 2*count))
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// FormatTenths renders v/10 with exactly one fractional digit.
func FormatTenths(v int) string {
	return string(appendTenths(nil, v))
}

func appendTenths(dst []byte, v int) []byte {
	if v < 0 {
		dst = append(dst, '-')
		v = -v
	}
	dst = strconv.AppendInt(dst, int64(v/10), 10)
	dst = append(dst, '.')
	return append(dst, byte('0'+v%10))
}

// Line renders a row as "name=min/mean/max".
func Line(r merge.Row) string {
	return string(appendLine(nil, r))
}

func appendLine(dst []byte, r merge.Row) []byte {
	dst = append(dst, r.Key...)
	dst = append(dst, '=')
	dst = appendTenths(dst, r.Min)
	dst = append(dst, '/')
	dst = appendTenths(dst, Mean(r.Sum, r.Count))
	dst = append(dst, '/')
	return appendTenths(dst, r.Max)
}

// Lines renders every row in order.
func Lines(rows []merge.Row) []string {
	out := make([]string, len(rows))
	for i := range rows {
		out[i] = Line(rows[i])
	}
	return out
}
