package pipeline

import "bytes"

// Range is a half-open byte range [Start, End) of the input.
type Range struct {
	Start int
	End   int
}

// Len returns the number of bytes in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Empty reports whether the range holds no bytes.
func (r Range) Empty() bool {
	return r.End <= r.Start
}

// Partition splits buf into exactly n contiguous ranges covering [0, len(buf)).
// Each interior cut starts at i*len/n and moves forward to the next line
// start, so no record straddles two ranges. Ranges may be empty when n
// exceeds the number of lines. n < 1 is treated as 1.
func Partition(buf []byte, n int) []Range {
	if n < 1 {
		n = 1
	}
	size := len(buf)
	ranges := make([]Range, n)

	prev := 0
	for i := 0; i < n; i++ {
		end := size
		if i < n-1 {
			end = lineStartAtOrAfter(buf, max(prev, int(int64(i+1)*int64(size)/int64(n))))
		}
		ranges[i] = Range{Start: prev, End: end}
		prev = end
	}
	return ranges
}

// lineStartAtOrAfter returns the first offset >= off that begins a line,
// or len(buf).
func lineStartAtOrAfter(buf []byte, off int) int {
	if off <= 0 {
		return 0
	}
	if off >= len(buf) {
		return len(buf)
	}
	if buf[off-1] == '\n' {
		return off
	}
	idx := bytes.IndexByte(buf[off:], '\n')
	if idx < 0 {
		return len(buf)
	}
	return off + idx + 1
}
