package analysis

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/WillK13/rpc-server/src/logging"
)

// Point pairs an offered load level (RPS) with the summary of its result file.
type Point struct {
	RPS     int
	Summary Summary
}

// Series is a list of points ordered by ascending load level. Duplicate load
// levels are kept as-is (stable order), never merged.
type Series []Point

// LoadSeries discovers <prefix>_rps_<n>.csv files under dir, loads each one
// and returns the points sorted by ascending load level. No matching files
// yields an empty series, not an error. A file matching the glob but not the
// numeric pattern is ErrBadFilename and aborts the whole series.
func LoadSeries(dir, prefix, column string) (Series, error) {
	pattern := filepath.Join(dir, prefix+"_rps_*.csv")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	re, err := regexp.Compile("^" + regexp.QuoteMeta(prefix) + `_rps_(\d+)\.csv$`)
	if err != nil {
		return nil, fmt.Errorf("series pattern for %q: %w", prefix, err)
	}

	var out Series
	for _, fn := range matches {
		m := re.FindStringSubmatch(filepath.Base(fn))
		if m == nil {
			return nil, fmt.Errorf("%s: %w", fn, ErrBadFilename)
		}
		rps, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, fmt.Errorf("%s: load level: %w", fn, err)
		}
		sum, err := LoadCSV(fn, column)
		if err != nil {
			return nil, err
		}
		out = append(out, Point{RPS: rps, Summary: sum})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].RPS < out[j].RPS })
	logging.Debugf("[series] %s: %d result file(s) under %s", prefix, len(out), dir)
	return out, nil
}

// Loads returns the load levels as floats, in series order.
func (s Series) Loads() []float64 {
	out := make([]float64, len(s))
	for i, pt := range s {
		out[i] = float64(pt.RPS)
	}
	return out
}

// Avgs returns the per-point mean latencies, in series order.
func (s Series) Avgs() []float64 {
	out := make([]float64, len(s))
	for i, pt := range s {
		out[i] = pt.Summary.AvgMs
	}
	return out
}

// P50s returns the per-point p50 latencies, in series order.
func (s Series) P50s() []float64 {
	out := make([]float64, len(s))
	for i, pt := range s {
		out[i] = pt.Summary.P50Ms
	}
	return out
}

// P95s returns the per-point p95 latencies, in series order.
func (s Series) P95s() []float64 {
	out := make([]float64, len(s))
	for i, pt := range s {
		out[i] = pt.Summary.P95Ms
	}
	return out
}
