package admission

import (
	"errors"
	"math"
	"testing"
)

func TestCompareSingleReference(t *testing.T) {
	reference := []float64{1, 2, 3}

	table := []struct {
		name      string
		probe     []float64
		threshold float64
		matched   bool
		distance  float64
	}{
		{"identical probe matches at distance zero", []float64{1, 2, 3}, 0.6, true, 0},
		{"close probe matches", []float64{1, 2, 3.5}, 0.6, true, 0.5},
		{"distance exactly at threshold matches", []float64{1, 2, 3.5}, 0.5, true, 0.5},
		{"distance past threshold does not match", []float64{1, 2, 4}, 0.6, false, 1},
	}

	for _, row := range table {
		t.Run(row.name, func(t *testing.T) {
			matched, distance, err := Compare([][]float64{reference}, row.probe, row.threshold)
			if err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if matched != row.matched {
				t.Errorf("expected matched %v but got %v", row.matched, matched)
			}
			if math.Abs(distance-row.distance) > 1e-9 {
				t.Errorf("expected distance %v but got %v", row.distance, distance)
			}
		})
	}
}

func TestCompareKeepsMinimumDistance(t *testing.T) {
	references := [][]float64{
		{10, 10, 10},
		{1, 2, 3},
		{5, 5, 5},
	}
	probe := []float64{1, 2, 3.2}

	matched, distance, err := Compare(references, probe, 0.6)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if !matched {
		t.Error("expected a match against the closest reference")
	}
	if math.Abs(distance-0.2) > 1e-9 {
		t.Errorf("expected the minimum distance 0.2 but got %v", distance)
	}
}

func TestCompareIsOrderIndependent(t *testing.T) {
	forward := [][]float64{{0, 0}, {3, 4}, {1, 1}}
	backward := [][]float64{{1, 1}, {3, 4}, {0, 0}}
	probe := []float64{0.1, 0.1}

	_, d1, err := Compare(forward, probe, 0.6)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	_, d2, err := Compare(backward, probe, 0.6)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if d1 != d2 {
		t.Errorf("reference order changed the result: %v vs %v", d1, d2)
	}
}

func TestCompareDimensionMismatch(t *testing.T) {
	_, _, err := Compare([][]float64{{1, 2, 3}}, []float64{1, 2}, 0.6)
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch but got %v", err)
	}
}
