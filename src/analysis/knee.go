package analysis

// KneePoint is the first load level at which tail latency degrades past the
// configured multiple of the best-case median.
type KneePoint struct {
	RPS   int     `json:"rps"`
	P95Ms float64 `json:"p95_ms"`
}

// Knee scans the series in ascending load order and returns the first point
// where p95 exceeds factor times the minimum p50 across the whole series.
// ok is false when the series is empty or the threshold is never crossed;
// callers treat that as "no degradation detected" and stay silent.
func Knee(s Series, factor float64) (KneePoint, bool) {
	if len(s) == 0 {
		return KneePoint{}, false
	}
	minP50 := s[0].Summary.P50Ms
	for _, pt := range s[1:] {
		if pt.Summary.P50Ms < minP50 {
			minP50 = pt.Summary.P50Ms
		}
	}
	for _, pt := range s {
		if pt.Summary.P95Ms > factor*minP50 {
			return KneePoint{RPS: pt.RPS, P95Ms: pt.Summary.P95Ms}, true
		}
	}
	return KneePoint{}, false
}
