// Package sysmem reports total physical memory so the input mapping can be
// advised as prefetchable or streaming.
package sysmem

// DefaultMemoryBytes is assumed when detection fails (4 GiB).
const DefaultMemoryBytes uint64 = 4 << 30

// Result is a memory reading.
type Result struct {
	TotalBytes uint64

	// Reliable is false when TotalBytes is DefaultMemoryBytes because the
	// platform could not be queried.
	Reliable bool
}

// Total returns the total system memory.
func Total() Result {
	n, ok := totalSystemMemory()
	if !ok || n == 0 {
		return Result{TotalBytes: DefaultMemoryBytes}
	}
	return Result{TotalBytes: n, Reliable: true}
}

// Fits reports whether size bytes take at most 1/divisor of a reliably
// detected total. An unreliable reading never fits.
func (r Result) Fits(size uint64, divisor uint64) bool {
	if !r.Reliable || divisor == 0 {
		return false
	}
	return size <= r.TotalBytes/divisor
}
