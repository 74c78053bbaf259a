package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Median returns the middle value of values, averaging the two middle
// values for an even count. Empty input yields NaN.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Mean returns the arithmetic mean of values. Empty input yields NaN.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return stat.Mean(values, nil)
}

// safeDiv returns num/den, or ok=false when den is zero
func safeDiv(num, den float64) (float64, bool) {
	if den == 0 {
		return 0, false
	}
	return num / den, true
}
