// Package benchutil generates synthetic measurement files for tests and
// benchmarks.
package benchutil

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"strconv"
)

// GeneratorConfig configures synthetic data generation.
type GeneratorConfig struct {
	// Lines is the number of measurements to emit.
	Lines int
	// Stations is the number of distinct station names. Values beyond the
	// built-in list get numeric suffixes.
	Stations int
	// Spread is the standard deviation of readings around a station's mean,
	// in tenths.
	Spread float64
	// Seed for reproducible generation. 0 = BenchmarkSeed.
	Seed int64
	// OmitFinalNewline drops the terminator after the last line.
	OmitFinalNewline bool
}

// DefaultConfig returns a configuration for the given line count.
func DefaultConfig(lines int) GeneratorConfig {
	return GeneratorConfig{
		Lines:    lines,
		Stations: len(baseStations),
		Spread:   100,
		Seed:     BenchmarkSeed,
	}
}

type station struct {
	name string
	mean int
}

// Generator produces `<station>;<temperature>` lines.
type Generator struct {
	cfg      GeneratorConfig
	rng      *rand.Rand
	stations []station
}

// NewGenerator creates a generator.
func NewGenerator(cfg GeneratorConfig) *Generator {
	seed := cfg.Seed
	if seed == 0 {
		seed = BenchmarkSeed
	}
	if cfg.Stations <= 0 {
		cfg.Stations = len(baseStations)
	}
	rng := rand.New(rand.NewSource(seed))
	return &Generator{
		cfg:      cfg,
		rng:      rng,
		stations: makeStations(cfg.Stations, rng),
	}
}

func makeStations(n int, rng *rand.Rand) []station {
	out := make([]station, n)
	for i := range out {
		base := baseStations[i%len(baseStations)]
		name := base.name
		if i >= len(baseStations) {
			name = base.name + "-" + strconv.Itoa(i/len(baseStations))
		}
		out[i] = station{name: name, mean: base.mean + rng.Intn(41) - 20}
	}
	return out
}

// StationNames returns the names the generator draws from.
func (g *Generator) StationNames() []string {
	names := make([]string, len(g.stations))
	for i, s := range g.stations {
		names[i] = s.name
	}
	return names
}

// WriteTo writes all lines to w.
func (g *Generator) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriterSize(w, 1<<16)
	var written int64
	var buf []byte
	for i := 0; i < g.cfg.Lines; i++ {
		s := g.stations[g.rng.Intn(len(g.stations))]
		buf = append(buf[:0], s.name...)
		buf = append(buf, ';')
		buf = appendTenths(buf, g.reading(s.mean))
		if i < g.cfg.Lines-1 || !g.cfg.OmitFinalNewline {
			buf = append(buf, '\n')
		}
		n, err := bw.Write(buf)
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, bw.Flush()
}

// WriteFile writes all lines to path.
func (g *Generator) WriteFile(path string) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", path, err)
	}
	n, err := g.WriteTo(f)
	if err != nil {
		f.Close()
		return n, fmt.Errorf("write %s: %w", path, err)
	}
	return n, f.Close()
}

func (g *Generator) reading(mean int) int {
	v := int(math.Round(float64(mean) + g.rng.NormFloat64()*g.cfg.Spread))
	return max(-999, min(999, v))
}

func appendTenths(dst []byte, v int) []byte {
	if v < 0 {
		dst = append(dst, '-')
		v = -v
	}
	dst = strconv.AppendInt(dst, int64(v/10), 10)
	return append(dst, '.', byte('0'+v%10))
}
