package analysis

import "testing"

func mkSeries(loads []int, p50s, p95s []float64) Series {
	s := make(Series, len(loads))
	for i := range loads {
		s[i] = Point{RPS: loads[i], Summary: Summary{P50Ms: p50s[i], P95Ms: p95s[i]}}
	}
	return s
}

func TestKnee_ReportsFirstCrossing(t *testing.T) {
	// min p50 is 10, threshold 20; first p95 above it is at load 300
	s := mkSeries([]int{100, 200, 300}, []float64{10, 10, 10}, []float64{12, 15, 25})
	knee, ok := Knee(s, 2.0)
	if !ok {
		t.Fatalf("expected a knee")
	}
	if knee.RPS != 300 || knee.P95Ms != 25 {
		t.Fatalf("want knee at 300/25, got %+v", knee)
	}
}

func TestKnee_FirstPointCanBeTheKnee(t *testing.T) {
	s := mkSeries([]int{100, 200, 300}, []float64{10, 10, 10}, []float64{30, 12, 25})
	knee, ok := Knee(s, 2.0)
	if !ok || knee.RPS != 100 {
		t.Fatalf("want knee at first load level, got %+v ok=%v", knee, ok)
	}
}

func TestKnee_MinP50IsSeriesWide(t *testing.T) {
	// The minimum p50 (5, at the last point) sets the threshold for every point.
	s := mkSeries([]int{100, 200, 300}, []float64{20, 20, 5}, []float64{11, 12, 13})
	knee, ok := Knee(s, 2.0)
	if !ok || knee.RPS != 100 {
		t.Fatalf("threshold must use series-wide min p50: %+v ok=%v", knee, ok)
	}
}

func TestKnee_NeverCrossed(t *testing.T) {
	s := mkSeries([]int{100, 200}, []float64{10, 10}, []float64{12, 15})
	if _, ok := Knee(s, 2.0); ok {
		t.Fatalf("no point exceeds threshold; knee must be absent")
	}
}

func TestKnee_EmptySeries(t *testing.T) {
	if _, ok := Knee(nil, 2.0); ok {
		t.Fatalf("empty series must not report a knee")
	}
}

func TestKnee_ThresholdIsExclusive(t *testing.T) {
	// p95 exactly equal to factor*min(p50) is not a crossing
	s := mkSeries([]int{100}, []float64{10}, []float64{20})
	if _, ok := Knee(s, 2.0); ok {
		t.Fatalf("p95 == threshold must not trigger")
	}
}
