package admission

import "math"

// Compare measures the probe against every reference vector and keeps the
// smallest Euclidean distance. A probe matches when that minimum is at or
// under the threshold, so any reference tied at the threshold counts as a
// match. Input order never affects the result beyond true-minimum selection.
func Compare(references [][]float64, probe []float64, threshold float64) (matched bool, distance float64, err error) {
	distance = math.MaxFloat64
	for _, reference := range references {
		if len(reference) != len(probe) {
			return false, 0, ErrDimensionMismatch
		}
		if d := euclideanDistance(reference, probe); d < distance {
			distance = d
		}
	}
	return distance <= threshold, distance, nil
}

func euclideanDistance(a []float64, b []float64) float64 {
	var sum float64
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return math.Sqrt(sum)
}
