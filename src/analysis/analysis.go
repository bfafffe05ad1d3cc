// Package analysis loads loadgen latency CSVs and aggregates them into
// per-load summaries for report rendering.
//
// Input files are header-delimited CSVs with one latency sample (milliseconds,
// float) per row under a named column (default "latency_ms"). A summary is the
// sample count, arithmetic mean and the nearest-rank p50/p95/p99.
package analysis

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	hdrhistogram "github.com/HdrHistogram/hdrhistogram-go"

	"github.com/WillK13/rpc-server/src/logging"
)

// Tagged failure classes. Callers distinguish these with errors.Is; the run
// policy is still abort-on-first-error.
var (
	// ErrNoSamples: the file parsed but contained zero data rows.
	ErrNoSamples = errors.New("no latency samples")
	// ErrMissingColumn: the header row lacks the configured latency column.
	ErrMissingColumn = errors.New("latency column not found")
	// ErrBadFilename: a file matched the result glob but not the stricter
	// <prefix>_rps_<integer>.csv pattern.
	ErrBadFilename = errors.New("result filename does not match pattern")
)

// Histogram bounds: 1µs .. 60s in microseconds, 3 significant figures.
const (
	histMinUs   = 1
	histMaxUs   = 60_000_000
	histSigFigs = 3
)

// Summary aggregates the latency samples of one result file.
type Summary struct {
	Count int     `json:"count"`
	AvgMs float64 `json:"avg_ms"`
	P50Ms float64 `json:"p50_ms"`
	P95Ms float64 `json:"p95_ms"`
	P99Ms float64 `json:"p99_ms"`

	// Supplementary HDR histogram of the same samples (µs resolution). The
	// chart and knee values always come from the exact nearest-rank fields
	// above; the histogram only feeds the JSON report's quantile map.
	Hist *hdrhistogram.Histogram `json:"-"`
}

// QuantileMap returns HDR-estimated latency quantiles in milliseconds keyed
// q0/q50/q95/q99/q999/q100, or nil for an empty summary.
func (s Summary) QuantileMap() map[string]float64 {
	if s.Hist == nil || s.Hist.TotalCount() == 0 {
		return nil
	}
	q := func(p float64) float64 { return float64(s.Hist.ValueAtQuantile(p)) / 1000.0 }
	return map[string]float64{
		"q0":   q(0),
		"q50":  q(50),
		"q95":  q(95),
		"q99":  q(99),
		"q999": q(99.9),
		"q100": q(100),
	}
}

// LoadCSV reads one result file and summarizes the named latency column.
// The file must have a header row; every data row must parse as a float in
// that column. Zero data rows is ErrNoSamples.
func LoadCSV(path, column string) (Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return Summary{}, fmt.Errorf("open result file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Summary{}, fmt.Errorf("%s: %w", path, ErrNoSamples)
		}
		return Summary{}, fmt.Errorf("read header of %s: %w", path, err)
	}
	col := -1
	for i, name := range header {
		if strings.TrimSpace(name) == column {
			col = i
			break
		}
	}
	if col < 0 {
		return Summary{}, fmt.Errorf("%s: column %q: %w", path, column, ErrMissingColumn)
	}

	var samples []float64
	for row := 2; ; row++ {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Summary{}, fmt.Errorf("read %s: %w", path, err)
		}
		if col >= len(rec) {
			return Summary{}, fmt.Errorf("%s row %d: %d field(s), latency column is #%d", path, row, len(rec), col+1)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(rec[col]), 64)
		if err != nil {
			return Summary{}, fmt.Errorf("%s row %d: parse %q: %w", path, row, rec[col], err)
		}
		samples = append(samples, v)
	}

	sum, err := Summarize(samples)
	if err != nil {
		return Summary{}, fmt.Errorf("%s: %w", path, err)
	}
	logging.Debugf("[loader] %s: n=%d avg=%.2fms p50=%.2fms p95=%.2fms p99=%.2fms",
		path, sum.Count, sum.AvgMs, sum.P50Ms, sum.P95Ms, sum.P99Ms)
	return sum, nil
}

// Summarize computes a Summary over raw latency samples (milliseconds).
// The input slice is not modified.
func Summarize(samples []float64) (Summary, error) {
	n := len(samples)
	if n == 0 {
		return Summary{}, ErrNoSamples
	}
	sorted := append([]float64(nil), samples...)
	sort.Float64s(sorted)

	var total float64
	hist := hdrhistogram.New(histMinUs, histMaxUs, histSigFigs)
	for _, v := range sorted {
		total += v
		us := int64(math.Round(v * 1000))
		if us < histMinUs {
			us = histMinUs
		}
		if us > histMaxUs {
			us = histMaxUs
		}
		_ = hist.RecordValue(us)
	}

	return Summary{
		Count: n,
		AvgMs: total / float64(n),
		P50Ms: nearestRank(sorted, 50),
		P95Ms: nearestRank(sorted, 95),
		P99Ms: nearestRank(sorted, 99),
		Hist:  hist,
	}, nil
}

// nearestRank picks the sample at index round((p/100)*(n-1)) of the
// ascending-sorted slice. Ties round half to even so that symmetric datasets
// produce stable values.
func nearestRank(sorted []float64, p float64) float64 {
	idx := int(math.RoundToEven(p / 100 * float64(len(sorted)-1)))
	if idx < 0 {
		idx = 0
	}
	if idx > len(sorted)-1 {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
