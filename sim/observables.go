package sim

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// HeightFunction returns h(x) for one layer: the number of particles at
// sites >= x, for x = 0..n. h(n) is always 0.
func HeightFunction(l *Lattice, layer int) []int {
	h := make([]int, l.Sites+1)
	for x := l.Sites - 1; x >= 0; x-- {
		h[x] = h[x+1]
		if l.Occupied(layer, x) {
			h[x]++
		}
	}
	return h
}

// LayerCounts returns the number of particles on each layer.
func LayerCounts(l *Lattice) []int {
	counts := make([]int, l.Layers)
	for layer := range counts {
		for site := 0; site < l.Sites; site++ {
			if l.Occupied(layer, site) {
				counts[layer]++
			}
		}
	}
	return counts
}

// ContinuousHeight returns the number of positions >= x. positions must be
// sorted in increasing order.
func ContinuousHeight(positions []float64, x float64) int {
	return len(positions) - sort.SearchFloat64s(positions, x)
}

// PositionSummary describes a continuous-space configuration.
type PositionSummary struct {
	Count  int
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
}

// Summarize computes summary statistics of particle positions.
func Summarize(positions []float64) PositionSummary {
	s := PositionSummary{Count: len(positions)}
	if len(positions) == 0 {
		return s
	}
	s.Min = floats.Min(positions)
	s.Max = floats.Max(positions)
	if len(positions) == 1 {
		s.Mean = positions[0]
		return s
	}
	s.Mean, s.StdDev = stat.MeanStdDev(positions, nil)
	return s
}
