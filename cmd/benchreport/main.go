// benchreport renders the load-test report for the rpc-server benchmark rig.
//
// Pipeline (one pass, abort on first error):
//  1. Aggregate <mix>_rps_<n>.csv result files into a load-ordered series and
//     render the mixed-workload load-latency chart (avg/p50/p95 vs offered RPS).
//  2. Print the knee heuristic: the first load level where p95 exceeds
//     knee-factor times the series-wide minimum p50. Silent when never crossed.
//  3. Aggregate each per-operation series and render the p95 comparison chart,
//     skipping operations with no result files.
//  4. Write the JSON summary artifact (exact nearest-rank percentiles plus
//     HDR-estimated quantiles per point), unless disabled.
//
// Design notes:
//   - Configuration comes from BENCHREPORT_* env vars with flag overrides; a
//     zero-flag run uses the fixed paths the loadgen tooling writes to.
//   - Charts and the knee use exact nearest-rank percentiles; the HDR
//     histogram quantiles in the JSON artifact are estimates.
//   - An empty series still produces its chart artifact (blank), so a rerun
//     always writes both images and the confirmation line stays truthful.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"code.cloudfoundry.org/bytefmt"

	"github.com/WillK13/rpc-server/src/analysis"
	"github.com/WillK13/rpc-server/src/config"
	"github.com/WillK13/rpc-server/src/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("config: %v\n", err)
		os.Exit(1)
	}

	flag.StringVar(&cfg.ResultsDir, "results-dir", cfg.ResultsDir, "Directory holding <prefix>_rps_<n>.csv result files; report artifacts land here too")
	flag.StringVar(&cfg.LatencyColumn, "latency-column", cfg.LatencyColumn, "CSV header name of the latency column (milliseconds)")
	flag.StringVar(&cfg.MixPrefix, "mix-prefix", cfg.MixPrefix, "Series prefix for the mixed workload (load-latency chart + knee heuristic)")
	ops := flag.String("ops", strings.Join(cfg.Operations, ","), "Comma-separated operation prefixes for the p95 comparison chart")
	flag.Float64Var(&cfg.KneeFactor, "knee-factor", cfg.KneeFactor, "Knee threshold: first load where p95 > factor * min(p50)")
	flag.IntVar(&cfg.ChartWidth, "chart-width", cfg.ChartWidth, "Chart width in pixels")
	flag.IntVar(&cfg.ChartHeight, "chart-height", cfg.ChartHeight, "Chart height in pixels")
	flag.StringVar(&cfg.LoadLatencyFile, "out-load-latency", cfg.LoadLatencyFile, "Load-latency chart file name (within results dir)")
	flag.StringVar(&cfg.OpComparisonFile, "out-op-comparison", cfg.OpComparisonFile, "Operation comparison chart file name (within results dir)")
	flag.StringVar(&cfg.SummaryFile, "summary-json", cfg.SummaryFile, "JSON summary artifact file name (within results dir); empty disables")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")
	flag.Parse()
	cfg.Operations = splitOps(*ops)

	logging.SetLevel(cfg.LogLevel)

	if err := run(cfg, os.Stdout); err != nil {
		fmt.Printf("benchreport: %v\n", err)
		os.Exit(1)
	}
}

// splitOps parses the --ops flag value, trimming spaces and dropping empties.
func splitOps(s string) []string {
	var out []string
	for _, op := range strings.Split(s, ",") {
		op = strings.TrimSpace(op)
		if op != "" {
			out = append(out, op)
		}
	}
	return out
}

// run executes the whole report pass. Knee and confirmation lines go to out;
// progress goes through the logger. First error aborts the run.
func run(cfg config.Config, out io.Writer) error {
	defer logging.TimeTrack(time.Now(), "report generation")

	mix, err := analysis.LoadSeries(cfg.ResultsDir, cfg.MixPrefix, cfg.LatencyColumn)
	if err != nil {
		return err
	}
	if len(mix) == 0 {
		logging.Warnf("[report] no %s_rps_*.csv files under %s; load-latency chart will be blank", cfg.MixPrefix, cfg.ResultsDir)
	}

	loadLatencyPath := cfg.LoadLatencyPath()
	data, err := renderLoadLatencyChart(mix, cfg.ChartWidth, cfg.ChartHeight)
	if err != nil {
		return err
	}
	if err := writeArtifact(loadLatencyPath, data, cfg.ChartWidth, cfg.ChartHeight); err != nil {
		return err
	}

	var kneePtr *analysis.KneePoint
	if knee, ok := analysis.Knee(mix, cfg.KneeFactor); ok {
		kneePtr = &knee
		fmt.Fprintf(out, "Knee (heuristic): ~%d RPS where p95 ~ %.2fms\n", knee.RPS, knee.P95Ms)
	}

	byOp := make(map[string]analysis.Series, len(cfg.Operations))
	for _, op := range cfg.Operations {
		s, err := analysis.LoadSeries(cfg.ResultsDir, op, cfg.LatencyColumn)
		if err != nil {
			return err
		}
		byOp[op] = s
	}

	opComparisonPath := cfg.OpComparisonPath()
	data, err = renderOpComparisonChart(cfg.Operations, byOp, cfg.ChartWidth, cfg.ChartHeight)
	if err != nil {
		return err
	}
	if err := writeArtifact(opComparisonPath, data, cfg.ChartWidth, cfg.ChartHeight); err != nil {
		return err
	}

	if path := cfg.SummaryPath(); path != "" {
		if err := writeSummaryJSON(path, buildSummary(cfg, mix, byOp, kneePtr)); err != nil {
			return err
		}
		logging.Infof("[report] wrote %s", path)
	}

	fmt.Fprintf(out, "Wrote %s and %s\n", loadLatencyPath, opComparisonPath)
	return nil
}

// writeArtifact persists one chart PNG, substituting a blank image when the
// renderer had nothing to plot.
func writeArtifact(path string, data []byte, width, height int) error {
	if data == nil {
		var err error
		data, err = blankPNG(width, height)
		if err != nil {
			return err
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write chart %s: %w", path, err)
	}
	logging.Infof("[report] wrote %s (%s)", path, bytefmt.ByteSize(uint64(len(data))))
	return nil
}
