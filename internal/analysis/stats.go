package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Summary is a scalar-distribution digest used across the uncertainty
// surfaces (replay bands, Monte Carlo outcomes, fleet dust levels).
type Summary struct {
	Count  int
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
	P10    float64
	P50    float64
	P90    float64
}

// Summarize computes the digest for a sample. Empty input yields a zero
// Summary rather than NaNs.
func Summarize(values []float64) Summary {
	s := Summary{Count: len(values)}
	if len(values) == 0 {
		return s
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	s.Mean = stat.Mean(sorted, nil)
	if len(sorted) > 1 {
		s.StdDev = stat.StdDev(sorted, nil)
	}
	s.P10 = PercentileSorted(sorted, 0.10)
	s.P50 = PercentileSorted(sorted, 0.50)
	s.P90 = PercentileSorted(sorted, 0.90)
	return s
}

// PercentileSorted returns the q-th quantile of an already-sorted sample
// using linear interpolation between order statistics. This matches the
// convention of the fleet's historical reporting, so percentiles stay
// comparable across tools.
func PercentileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ZScores returns each sample's distance from the sample mean in standard
// deviations. Samples with near-zero variance return all zeros.
func ZScores(values []float64) []float64 {
	out := make([]float64, len(values))
	if len(values) < 2 {
		return out
	}
	mean := stat.Mean(values, nil)
	sd := stat.StdDev(values, nil)
	if sd < 1e-12 {
		return out
	}
	for i, v := range values {
		out[i] = (v - mean) / sd
	}
	return out
}
