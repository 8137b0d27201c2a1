package sim

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
)

// SwapConfig parametrizes the random swap process on permutations of
// 1..N. At every step a fixed set of adjacent pairs is active; an active
// ascending pair swaps with probability Prob and a descending one with
// probability Prob·Q. Coarse is the bin width of the count matrices.
type SwapConfig struct {
	N      int
	Tries  int
	Coarse int
	Prob   float64
	Q      float64
}

// Validate checks the sizes and probabilities.
func (c SwapConfig) Validate() error {
	if c.N < 2 {
		return fmt.Errorf("%w: swap process needs n >= 2, got %d", ErrInvalidConfig, c.N)
	}
	if c.Tries < 1 {
		return fmt.Errorf("%w: tries must be positive, got %d", ErrInvalidConfig, c.Tries)
	}
	if c.Coarse < 1 || c.N%c.Coarse != 0 {
		return fmt.Errorf("%w: coarse must divide n=%d, got %d", ErrInvalidConfig, c.N, c.Coarse)
	}
	if !(c.Prob >= 0 && c.Prob <= 1) {
		return fmt.Errorf("%w: need 0 <= prob <= 1, got %v", ErrInvalidConfig, c.Prob)
	}
	if !(c.Q >= 0 && c.Prob*c.Q <= 1) || math.IsInf(c.Q, 0) {
		return fmt.Errorf("%w: need q >= 0 and prob*q <= 1, got q=%v", ErrInvalidConfig, c.Q)
	}
	return nil
}

// Steps returns the number of time steps of one try, 2N-3.
func (c SwapConfig) Steps() int { return 2*c.N - 3 }

// Bins returns the side of the coarse count matrices.
func (c SwapConfig) Bins() int { return c.N / c.Coarse }

// ActivePairs lists the pairs (p, p+1), by their left index p, that may
// swap at step t of a process on n elements. Over t = 1..2n-3 the active
// pairs form a reduced word of the longest permutation, so a process that
// always swaps ascending pairs ends at the reversal.
func ActivePairs(n, t int) []int {
	return appendActivePairs(nil, n, t)
}

func appendActivePairs(dst []int, n, t int) []int {
	// 1-based pair i is active when i >= n-t, i >= t-n+2 and i has the
	// parity of t+n.
	lo := max(n-t, t-n+2, 1)
	if (t-lo+n)%2 != 0 {
		lo++
	}
	for i := lo; i <= n-1; i += 2 {
		dst = append(dst, i-1)
	}
	return dst
}

// SwapSample is the outcome of SampleSwaps: the final permutation of every
// try, its coarse count matrix, and the sum of those matrices.
type SwapSample struct {
	Perms  [][]int
	Coarse [][][]int
	Sum    [][]int
}

// SampleSwaps runs cfg.Tries independent tries of the swap process, each
// starting from the identity permutation.
func SampleSwaps(cfg SwapConfig, rng *PartitionedRNG) (*SwapSample, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	src := rng.ForSubsystem(SubsystemSwaps)
	bins := cfg.Bins()

	out := &SwapSample{
		Perms:  make([][]int, cfg.Tries),
		Coarse: make([][][]int, cfg.Tries),
		Sum:    newCountMatrix(bins),
	}
	pairs := make([]int, 0, cfg.N/2+1)
	for try := 0; try < cfg.Tries; try++ {
		if try%50 == 0 {
			logrus.Infof("swaps: %d/%d", try, cfg.Tries)
		}
		perm := make([]int, cfg.N)
		for i := range perm {
			perm[i] = i + 1
		}
		for t := 1; t <= cfg.Steps(); t++ {
			pairs = appendActivePairs(pairs[:0], cfg.N, t)
			for _, p := range pairs {
				threshold := cfg.Prob
				if perm[p] > perm[p+1] {
					threshold *= cfg.Q
				}
				if src.Float64() < threshold {
					perm[p], perm[p+1] = perm[p+1], perm[p]
				}
			}
		}
		out.Perms[try] = perm

		counts := CoarseCounts(perm, cfg.Coarse)
		out.Coarse[try] = counts
		for i, row := range counts {
			for j, v := range row {
				out.Sum[i][j] += v
			}
		}
	}
	return out, nil
}

// CoarseCounts bins a permutation of 1..n: entry [a][b] counts positions i
// in bin a whose value perm[i] lies in bin b.
func CoarseCounts(perm []int, coarse int) [][]int {
	m := newCountMatrix(len(perm) / coarse)
	for i, v := range perm {
		m[i/coarse][(v-1)/coarse]++
	}
	return m
}

func newCountMatrix(n int) [][]int {
	m := make([][]int, n)
	for i := range m {
		m[i] = make([]int, n)
	}
	return m
}

// MeanDisplacement returns the mean of |perm[i] - (i+1)|.
func MeanDisplacement(perm []int) float64 {
	if len(perm) == 0 {
		return 0
	}
	d := make([]float64, len(perm))
	for i, v := range perm {
		d[i] = math.Abs(float64(v - i - 1))
	}
	return stat.Mean(d, nil)
}
