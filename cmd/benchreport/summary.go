package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/WillK13/rpc-server/src/analysis"
	"github.com/WillK13/rpc-server/src/config"
)

// PointSummary is one (load level, summary) pair in the JSON artifact. The
// exact nearest-rank fields mirror the chart inputs; HdrQuantilesMs carries
// the supplementary histogram estimates.
type PointSummary struct {
	RPS            int                `json:"rps"`
	Count          int                `json:"count"`
	AvgMs          float64            `json:"avg_ms"`
	P50Ms          float64            `json:"p50_ms"`
	P95Ms          float64            `json:"p95_ms"`
	P99Ms          float64            `json:"p99_ms"`
	HdrQuantilesMs map[string]float64 `json:"hdr_quantiles_ms,omitempty"`
}

// ReportSummary is the machine-readable companion to the chart artifacts.
type ReportSummary struct {
	GeneratedAt   time.Time                 `json:"generated_at"`
	ResultsDir    string                    `json:"results_dir"`
	LatencyColumn string                    `json:"latency_column"`
	KneeFactor    float64                   `json:"knee_factor"`
	Mix           []PointSummary            `json:"mix"`
	Operations    map[string][]PointSummary `json:"operations"`
	Knee          *analysis.KneePoint       `json:"knee,omitempty"`
}

func pointSummaries(s analysis.Series) []PointSummary {
	out := make([]PointSummary, 0, len(s))
	for _, pt := range s {
		out = append(out, PointSummary{
			RPS:            pt.RPS,
			Count:          pt.Summary.Count,
			AvgMs:          pt.Summary.AvgMs,
			P50Ms:          pt.Summary.P50Ms,
			P95Ms:          pt.Summary.P95Ms,
			P99Ms:          pt.Summary.P99Ms,
			HdrQuantilesMs: pt.Summary.QuantileMap(),
		})
	}
	return out
}

func buildSummary(cfg config.Config, mix analysis.Series, byOp map[string]analysis.Series, knee *analysis.KneePoint) *ReportSummary {
	rs := &ReportSummary{
		GeneratedAt:   time.Now().UTC(),
		ResultsDir:    cfg.ResultsDir,
		LatencyColumn: cfg.LatencyColumn,
		KneeFactor:    cfg.KneeFactor,
		Mix:           pointSummaries(mix),
		Operations:    map[string][]PointSummary{},
		Knee:          knee,
	}
	for _, op := range cfg.Operations {
		rs.Operations[op] = pointSummaries(byOp[op])
	}
	return rs
}

func writeSummaryJSON(path string, rs *ReportSummary) error {
	b, err := json.MarshalIndent(rs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	b = append(b, '\n')
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write summary %s: %w", path, err)
	}
	return nil
}
