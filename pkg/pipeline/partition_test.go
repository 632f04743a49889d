package pipeline

import (
	"bytes"
	"testing"
)

func checkPartition(t *testing.T, buf []byte, n int, ranges []Range) {
	t.Helper()
	want := max(n, 1)
	if len(ranges) != want {
		t.Fatalf("Partition(n=%d) returned %d ranges, want %d", n, len(ranges), want)
	}
	if ranges[0].Start != 0 {
		t.Errorf("first range starts at %d", ranges[0].Start)
	}
	if ranges[len(ranges)-1].End != len(buf) {
		t.Errorf("last range ends at %d, want %d", ranges[len(ranges)-1].End, len(buf))
	}
	for i, r := range ranges {
		if r.Start > r.End {
			t.Errorf("range %d inverted: %+v", i, r)
		}
		if i > 0 && r.Start != ranges[i-1].End {
			t.Errorf("range %d starts at %d, previous ended at %d", i, r.Start, ranges[i-1].End)
		}
		if r.Start > 0 && r.Start < len(buf) && buf[r.Start-1] != '\n' {
			t.Errorf("range %d starts mid-line at %d", i, r.Start)
		}
	}
}

func TestPartition(t *testing.T) {
	buf := []byte("Tokyo;25.0\nTokyo;26.0\nOsaka;-3.2\nX;0.0\nLongerStationName;12.3\n")
	for _, n := range []int{1, 2, 3, 4, 5, 8, 64} {
		checkPartition(t, buf, n, Partition(buf, n))
	}
}

func TestPartitionRecordsCoveredOnce(t *testing.T) {
	buf := []byte("a;1.0\nbb;2.0\nccc;3.0\ndddd;4.0\neeeee;5.0\n")
	for _, n := range []int{1, 2, 3, 7, 20} {
		var joined []byte
		lines := 0
		for _, r := range Partition(buf, n) {
			chunk := buf[r.Start:r.End]
			lines += bytes.Count(chunk, []byte("\n"))
			joined = append(joined, chunk...)
		}
		if !bytes.Equal(joined, buf) {
			t.Errorf("n=%d: ranges do not reassemble the input", n)
		}
		if lines != 5 {
			t.Errorf("n=%d: counted %d lines, want 5", n, lines)
		}
	}
}

func TestPartitionMoreWorkersThanLines(t *testing.T) {
	buf := []byte("a;1.0\nb;2.0\n")
	ranges := Partition(buf, 8)
	checkPartition(t, buf, 8, ranges)

	nonEmpty := 0
	for _, r := range ranges {
		if !r.Empty() {
			nonEmpty++
		}
	}
	if nonEmpty > 2 {
		t.Errorf("%d non-empty ranges for 2 lines", nonEmpty)
	}
}

func TestPartitionNoTrailingNewline(t *testing.T) {
	buf := []byte("a;1.0\nb;2.0\nc;3.0")
	for _, n := range []int{1, 2, 3, 4} {
		checkPartition(t, buf, n, Partition(buf, n))
	}
}

func TestPartitionEdgeCases(t *testing.T) {
	if got := Partition(nil, 4); len(got) != 4 {
		t.Errorf("empty input: %d ranges, want 4", len(got))
	} else {
		for _, r := range got {
			if !r.Empty() {
				t.Errorf("empty input produced non-empty range %+v", r)
			}
		}
	}

	buf := []byte("a;1.0\n")
	for _, n := range []int{0, -3} {
		got := Partition(buf, n)
		if len(got) != 1 || got[0] != (Range{0, len(buf)}) {
			t.Errorf("Partition(n=%d) = %+v", n, got)
		}
	}
}

func TestPartitionDeterministic(t *testing.T) {
	buf := bytes.Repeat([]byte("Station;12.3\nS;-1.0\n"), 1000)
	a := Partition(buf, 7)
	b := Partition(buf, 7)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("range %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}
