// Package config holds the report generator's runtime settings. Values come
// from BENCHREPORT_* environment variables (with defaults) and may be
// overridden by flags in the entrypoint, so tests can inject everything.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the namespace for environment overrides, e.g.
// BENCHREPORT_RESULTS_DIR or BENCHREPORT_KNEE_FACTOR.
const EnvPrefix = "benchreport"

// Config carries every path, name and threshold the report run uses.
type Config struct {
	// ResultsDir is where loadgen wrote <prefix>_rps_<n>.csv files and where
	// report artifacts land.
	ResultsDir string `split_words:"true" default:"results"`
	// LatencyColumn is the CSV header name of the latency values (ms).
	LatencyColumn string `split_words:"true" default:"latency_ms"`
	// MixPrefix names the mixed-workload series used for the load-latency
	// chart and the knee heuristic.
	MixPrefix string `split_words:"true" default:"mix"`
	// Operations are the per-operation series overlaid in the comparison
	// chart. Missing series are skipped, not errors.
	Operations []string `split_words:"true" default:"hash,sort,matmul,compress"`
	// KneeFactor: degradation onset is the first load where p95 exceeds
	// KneeFactor * min(p50) of the mixed series.
	KneeFactor float64 `split_words:"true" default:"2.0"`

	ChartWidth  int `split_words:"true" default:"1024"`
	ChartHeight int `split_words:"true" default:"768"`

	LoadLatencyFile  string `split_words:"true" default:"load_latency_mix.png"`
	OpComparisonFile string `split_words:"true" default:"op_comparison_p95.png"`
	// SummaryFile is the JSON report artifact; empty disables it.
	SummaryFile string `split_words:"true" default:"report_summary.json"`

	LogLevel string `split_words:"true" default:"info"`
}

// Load populates a Config from the environment, applying defaults.
func Load() (Config, error) {
	var c Config
	if err := envconfig.Process(EnvPrefix, &c); err != nil {
		return Config{}, fmt.Errorf("process env config: %w", err)
	}
	return c, nil
}

// LoadLatencyPath is the load-latency chart artifact path.
func (c Config) LoadLatencyPath() string {
	return filepath.Join(c.ResultsDir, c.LoadLatencyFile)
}

// OpComparisonPath is the operation-comparison chart artifact path.
func (c Config) OpComparisonPath() string {
	return filepath.Join(c.ResultsDir, c.OpComparisonFile)
}

// SummaryPath is the JSON summary artifact path, or "" when disabled.
func (c Config) SummaryPath() string {
	if c.SummaryFile == "" {
		return ""
	}
	return filepath.Join(c.ResultsDir, c.SummaryFile)
}
