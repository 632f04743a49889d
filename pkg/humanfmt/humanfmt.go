// Package humanfmt renders byte counts, durations, and rates for log output.
package humanfmt

import (
	"fmt"
	"strconv"
	"time"
)

// Binary (IEC) units for bytes.
const (
	KiB = 1024
	MiB = 1024 * KiB
	GiB = 1024 * MiB
	TiB = 1024 * GiB
)

// Bytes formats a byte count using IEC binary units, e.g. "13.80 GiB".
func Bytes(b int64) string {
	if b < KiB {
		return fmt.Sprintf("%d B", b)
	}
	return scaleBytes(float64(b), "")
}

// Duration formats d compactly: "1.23s", "45.6ms", "1m30s", "2h15m".
func Duration(d time.Duration) string {
	if d < 0 {
		return d.String()
	}

	switch {
	case d >= time.Hour:
		h, m := d/time.Hour, (d%time.Hour)/time.Minute
		if m == 0 {
			return fmt.Sprintf("%dh", h)
		}
		return fmt.Sprintf("%dh%dm", h, m)
	case d >= time.Minute:
		m, s := d/time.Minute, (d%time.Minute)/time.Second
		if s == 0 {
			return fmt.Sprintf("%dm", m)
		}
		return fmt.Sprintf("%dm%ds", m, s)
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d)/float64(time.Millisecond))
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fµs", float64(d)/float64(time.Microsecond))
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}

// Throughput formats bytes over d as a rate, e.g. "2.31 GiB/s".
func Throughput(bytes int64, d time.Duration) string {
	if d <= 0 {
		return "∞"
	}
	bps := float64(bytes) / d.Seconds()
	if bps < KiB {
		return fmt.Sprintf("%.0f B/s", bps)
	}
	return scaleBytes(bps, "/s")
}

func scaleBytes(v float64, suffix string) string {
	switch {
	case v >= TiB:
		return fmt.Sprintf("%.2f TiB%s", v/TiB, suffix)
	case v >= GiB:
		return fmt.Sprintf("%.2f GiB%s", v/GiB, suffix)
	case v >= MiB:
		return fmt.Sprintf("%.2f MiB%s", v/MiB, suffix)
	default:
		return fmt.Sprintf("%.2f KiB%s", v/KiB, suffix)
	}
}

// Count formats a count with SI suffixes: "1.23M", "456.00K", "789".
func Count(n int64) string {
	if n < 1000 {
		return strconv.FormatInt(n, 10)
	}
	return scaleCount(float64(n), "")
}

// Rate formats n events over d, e.g. "812.40M/s".
func Rate(n int64, d time.Duration) string {
	if d <= 0 {
		return "∞"
	}
	r := float64(n) / d.Seconds()
	if r < 1000 {
		return fmt.Sprintf("%.0f/s", r)
	}
	return scaleCount(r, "/s")
}

func scaleCount(v float64, suffix string) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("%.2fB%s", v/1e9, suffix)
	case v >= 1e6:
		return fmt.Sprintf("%.2fM%s", v/1e6, suffix)
	default:
		return fmt.Sprintf("%.2fK%s", v/1e3, suffix)
	}
}
