package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/WillK13/rpc-server/src/analysis"
	"github.com/WillK13/rpc-server/src/logging"
)

// opPalette cycles line colors for the operation comparison overlay.
var opPalette = []drawing.Color{
	chart.ColorBlue,
	chart.ColorGreen,
	chart.ColorRed,
	chart.ColorOrange,
	chart.ColorCyan,
}

func gridStyle() chart.Style {
	return chart.Style{StrokeColor: chart.ColorAlternateGray.WithAlpha(100), StrokeWidth: 1.0}
}

// lineSeries builds one chart line. go-chart rejects single-X series, so a
// lone point is padded to a flat two-point segment.
func lineSeries(name string, xs, ys []float64, c drawing.Color) chart.Series {
	st := chart.Style{StrokeColor: c, StrokeWidth: 2.0}
	if len(xs) == 1 {
		return chart.ContinuousSeries{
			Name:    name,
			XValues: []float64{xs[0], xs[0] + 1},
			YValues: []float64{ys[0], ys[0]},
			Style:   st,
		}
	}
	return chart.ContinuousSeries{Name: name, XValues: xs, YValues: ys, Style: st}
}

func renderLineChart(title, yName string, series []chart.Series, width, height int) ([]byte, error) {
	ch := chart.Chart{
		Title:      title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 28}},
		XAxis: chart.XAxis{
			Name:           "Offered load (RPS)",
			GridMajorStyle: gridStyle(),
		},
		YAxis: chart.YAxis{
			Name:           yName,
			GridMajorStyle: gridStyle(),
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render %q: %w", title, err)
	}
	return buf.Bytes(), nil
}

// renderLoadLatencyChart draws avg/p50/p95 latency against offered load for
// the mixed-workload series. An empty series yields (nil, nil); the caller
// decides whether to fall back to a blank artifact.
func renderLoadLatencyChart(s analysis.Series, width, height int) ([]byte, error) {
	if len(s) == 0 {
		return nil, nil
	}
	xs := s.Loads()
	series := []chart.Series{
		lineSeries("avg", xs, s.Avgs(), chart.ColorAlternateGray),
		lineSeries("p50", xs, s.P50s(), chart.ColorBlue),
		lineSeries("p95", xs, s.P95s(), chart.ColorRed),
	}
	return renderLineChart("Load-Latency (mixed workload)", "Latency (ms)", series, width, height)
}

// renderOpComparisonChart overlays each operation's p95-vs-load line.
// Operations with no result files are skipped; if nothing is left to plot the
// function returns (nil, nil).
func renderOpComparisonChart(ops []string, byOp map[string]analysis.Series, width, height int) ([]byte, error) {
	var series []chart.Series
	for i, op := range ops {
		s := byOp[op]
		if len(s) == 0 {
			logging.Debugf("[report] %s: no result files, skipping series", op)
			continue
		}
		series = append(series, lineSeries(op, s.Loads(), s.P95s(), opPalette[i%len(opPalette)]))
	}
	if len(series) == 0 {
		return nil, nil
	}
	return renderLineChart("Operation Comparison (p95 vs RPS)", "p95 latency (ms)", series, width, height)
}

// blankPNG is the fallback artifact for an empty series, so reruns always
// produce both images.
func blankPNG(width, height int) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode blank chart: %w", err)
	}
	return buf.Bytes(), nil
}
