package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/eunmann/brc/pkg/fileutil"
	"github.com/eunmann/brc/pkg/merge"
	"github.com/parquet-go/parquet-go"
)

// Format selects the output encoding.
type Format string

const (
	// FormatLines writes one "name=min/mean/max" line per station.
	FormatLines Format = "lines"
	// FormatBraces writes the classic single line "{a=..., b=...}".
	FormatBraces Format = "braces"
	// FormatParquet writes a parquet file of ParquetRow.
	FormatParquet Format = "parquet"
)

// ParseFormat resolves a format name. An empty name selects FormatLines.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case "":
		return FormatLines, nil
	case FormatLines, FormatBraces, FormatParquet:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// ParquetRow is the parquet schema. Temperatures are integer tenths.
type ParquetRow struct {
	Station    string `parquet:"station"`
	MinTenths  int32  `parquet:"min_tenths"`
	MeanTenths int32  `parquet:"mean_tenths"`
	MaxTenths  int32  `parquet:"max_tenths"`
	Count      int64  `parquet:"count"`
	SumTenths  int64  `parquet:"sum_tenths"`
}

// NewParquetRow converts a merged row.
func NewParquetRow(r merge.Row) ParquetRow {
	return ParquetRow{
		Station:    r.Key,
		MinTenths:  int32(r.Min),
		MeanTenths: int32(Mean(r.Sum, r.Count)),
		MaxTenths:  int32(r.Max),
		Count:      r.Count,
		SumTenths:  r.Sum,
	}
}

// Write encodes rows to w.
func Write(w io.Writer, format Format, rows []merge.Row) error {
	switch format {
	case FormatLines, "":
		return writeLines(w, rows)
	case FormatBraces:
		return writeBraces(w, rows)
	case FormatParquet:
		return writeParquet(w, rows)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

func writeLines(w io.Writer, rows []merge.Row) error {
	bw := bufio.NewWriter(w)
	var buf []byte
	for i := range rows {
		buf = appendLine(buf[:0], rows[i])
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return fmt.Errorf("write line: %w", err)
		}
	}
	return bw.Flush()
}

func writeBraces(w io.Writer, rows []merge.Row) error {
	buf := make([]byte, 0, 64*len(rows)+3)
	buf = append(buf, '{')
	for i := range rows {
		if i > 0 {
			buf = append(buf, ", "...)
		}
		buf = appendLine(buf, rows[i])
	}
	buf = append(buf, "}\n"...)
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("write braces: %w", err)
	}
	return nil
}

func writeParquet(w io.Writer, rows []merge.Row) error {
	out := make([]ParquetRow, len(rows))
	for i := range rows {
		out[i] = NewParquetRow(rows[i])
	}

	pw := parquet.NewGenericWriter[ParquetRow](w)
	if _, err := pw.Write(out); err != nil {
		return fmt.Errorf("write parquet rows: %w", err)
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return nil
}

// WriteFile writes rows to path atomically.
func WriteFile(path string, format Format, rows []merge.Row) error {
	return fileutil.WriteTmpThenMove("", path, func(tmpPath string) error {
		f, err := os.Create(tmpPath)
		if err != nil {
			return fmt.Errorf("create %s: %w", tmpPath, err)
		}
		if err := Write(f, format, rows); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	})
}
