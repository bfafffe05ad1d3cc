package analysis

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"
)

func TestLoadSeries_OrderedByLoadLevel(t *testing.T) {
	dir := t.TempDir()
	for _, rps := range []int{5, 50, 20} {
		writeResultCSV(t, filepath.Join(dir, seriesFileName("mix", rps)), []float64{1, 2, 3})
	}
	s, err := LoadSeries(dir, "mix", "latency_ms")
	if err != nil {
		t.Fatalf("load series: %v", err)
	}
	got := make([]int, len(s))
	for i, pt := range s {
		got[i] = pt.RPS
	}
	want := []int{5, 20, 50}
	if len(got) != len(want) {
		t.Fatalf("want %v got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("want %v got %v", want, got)
		}
	}
}

func TestLoadSeries_NoMatchesIsEmptyNotError(t *testing.T) {
	s, err := LoadSeries(t.TempDir(), "hash", "latency_ms")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s) != 0 {
		t.Fatalf("want empty series, got %d point(s)", len(s))
	}
}

func TestLoadSeries_BadFilenameIsFatal(t *testing.T) {
	dir := t.TempDir()
	writeResultCSV(t, filepath.Join(dir, "mix_rps_10.csv"), []float64{1})
	// matches the glob but not the strict numeric pattern
	writeResultCSV(t, filepath.Join(dir, "mix_rps_10_old.csv"), []float64{1})
	_, err := LoadSeries(dir, "mix", "latency_ms")
	if !errors.Is(err, ErrBadFilename) {
		t.Fatalf("want ErrBadFilename, got %v", err)
	}
}

func TestLoadSeries_DuplicateLoadLevelsKept(t *testing.T) {
	dir := t.TempDir()
	// Distinct files, same numeric load level: both are kept, never merged.
	writeResultCSV(t, filepath.Join(dir, "mix_rps_007.csv"), []float64{1})
	writeResultCSV(t, filepath.Join(dir, "mix_rps_7.csv"), []float64{2})
	s, err := LoadSeries(dir, "mix", "latency_ms")
	if err != nil {
		t.Fatalf("load series: %v", err)
	}
	if len(s) != 2 || s[0].RPS != 7 || s[1].RPS != 7 {
		t.Fatalf("duplicate load levels not preserved: %+v", s)
	}
}

func TestLoadSeries_PrefixIsolation(t *testing.T) {
	dir := t.TempDir()
	writeResultCSV(t, filepath.Join(dir, "mix_rps_10.csv"), []float64{1})
	writeResultCSV(t, filepath.Join(dir, "hash_rps_10.csv"), []float64{2})
	s, err := LoadSeries(dir, "mix", "latency_ms")
	if err != nil {
		t.Fatalf("load series: %v", err)
	}
	if len(s) != 1 {
		t.Fatalf("hash files leaked into mix series: %+v", s)
	}
}

func TestSeries_Accessors(t *testing.T) {
	s := Series{
		{RPS: 100, Summary: Summary{AvgMs: 1, P50Ms: 2, P95Ms: 3}},
		{RPS: 200, Summary: Summary{AvgMs: 4, P50Ms: 5, P95Ms: 6}},
	}
	if xs := s.Loads(); xs[0] != 100 || xs[1] != 200 {
		t.Fatalf("loads: %v", xs)
	}
	if ys := s.Avgs(); ys[0] != 1 || ys[1] != 4 {
		t.Fatalf("avgs: %v", ys)
	}
	if ys := s.P50s(); ys[0] != 2 || ys[1] != 5 {
		t.Fatalf("p50s: %v", ys)
	}
	if ys := s.P95s(); ys[0] != 3 || ys[1] != 6 {
		t.Fatalf("p95s: %v", ys)
	}
}

func seriesFileName(prefix string, rps int) string {
	return fmt.Sprintf("%s_rps_%d.csv", prefix, rps)
}
