// Package testutil provides shared test infrastructure for the simulator.
// It consolidates assertion helpers used across sim/ and sim/dump/ test packages.
package testutil

import (
	"math"
	"testing"
)

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}

// AssertStrictlyIncreasing fails if xs is not strictly increasing.
func AssertStrictlyIncreasing(t *testing.T, name string, xs []float64) {
	t.Helper()
	for i := 1; i < len(xs); i++ {
		if !(xs[i-1] < xs[i]) {
			t.Errorf("%s: not strictly increasing at %d: %v then %v", name, i, xs[i-1], xs[i])
			return
		}
	}
}

// AssertNonDecreasing fails if xs decreases anywhere.
func AssertNonDecreasing(t *testing.T, name string, xs []float64) {
	t.Helper()
	for i := 1; i < len(xs); i++ {
		if xs[i] < xs[i-1] {
			t.Errorf("%s: decreases at %d: %v then %v", name, i, xs[i-1], xs[i])
			return
		}
	}
}

// CountOnes returns the number of non-zero cells in a grid.
func CountOnes(rows [][]uint8) int {
	n := 0
	for _, row := range rows {
		for _, v := range row {
			if v != 0 {
				n++
			}
		}
	}
	return n
}
