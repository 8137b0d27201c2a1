package sim

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// Cell holds the four edge occupations around one vertex of the
// six-vertex model: lines enter from the bottom and left and leave through
// the top and right. Each value is 0 or 1.
type Cell struct {
	Bottom uint8
	Left   uint8
	Top    uint8
	Right  uint8
}

// VertexWeights parametrizes the dynamic stochastic six-vertex model:
// spectral parameters U < V, quantization T and dynamic parameter S.
type VertexWeights struct {
	U float64
	V float64
	T float64
	S float64
}

// Validate checks the parameter ranges.
func (w VertexWeights) Validate() error {
	if !(w.U > 0 && w.U < w.V) || math.IsInf(w.V, 0) {
		return fmt.Errorf("%w: need 0 < u < v, got u=%v v=%v", ErrInvalidConfig, w.U, w.V)
	}
	if !(w.T > 0 && w.T <= 1) {
		return fmt.Errorf("%w: need 0 < t <= 1, got %v", ErrInvalidConfig, w.T)
	}
	if !(w.S >= 0) || math.IsInf(w.S, 0) {
		return fmt.Errorf("%w: need s >= 0, got %v", ErrInvalidConfig, w.S)
	}
	return nil
}

// StraightRight is the probability that a line entering from the left keeps
// going right, given height h at the vertex.
func (w VertexWeights) StraightRight(h int) float64 {
	p := (w.V - w.U) / (w.V - w.T*w.U)
	p *= (w.V - w.S*math.Pow(w.T, float64(h+1))) / (w.V - w.S*math.Pow(w.T, float64(h)))
	return clamp01(p)
}

// StraightUp is the probability that a line entering from the bottom keeps
// going up, given height h at the vertex.
func (w VertexWeights) StraightUp(h int) float64 {
	p := w.T * (w.V - w.U) / (w.V - w.T*w.U)
	p *= (w.U - w.S*math.Pow(w.T, float64(h-1))) / (w.U - w.S*math.Pow(w.T, float64(h)))
	return clamp01(p)
}

func clamp01(p float64) float64 {
	if math.IsNaN(p) || p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Transition fills in the outgoing edges of a vertex from its incoming
// edges, the height h at its lower-left corner and a uniform draw in [0, 1).
// Equal inputs pass straight through; a single line keeps its direction
// with the weight's probability and turns otherwise.
func (w VertexWeights) Transition(in Cell, h int, draw float64) Cell {
	out := Cell{Bottom: in.Bottom, Left: in.Left}
	switch {
	case in.Left > in.Bottom:
		if draw < w.StraightRight(h) {
			out.Top, out.Right = 0, 1
		} else {
			out.Top, out.Right = 1, 0
		}
	case in.Bottom > in.Left:
		if draw < w.StraightUp(h) {
			out.Top, out.Right = 1, 0
		} else {
			out.Top, out.Right = 0, 1
		}
	default:
		out.Top, out.Right = in.Bottom, in.Left
	}
	return out
}

// VertexGrid is a sampled six-vertex configuration. Cells are indexed
// [row][col] with row 0 at the bottom; Height is indexed [row][col] over the
// (rows+1) × (cols+1) corners.
type VertexGrid struct {
	Rows   int
	Cols   int
	Cells  [][]Cell
	Height [][]int
}

// SampleSixVertex samples the model on a rows × cols grid in raster order
// (row by row from the bottom, left to right), with a line entering every
// left boundary edge and none entering from the bottom.
func SampleSixVertex(rows, cols int, w VertexWeights, rng *PartitionedRNG) (*VertexGrid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: grid must be positive, got %d × %d", ErrInvalidConfig, rows, cols)
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	src := rng.ForSubsystem(SubsystemVertex)

	g := &VertexGrid{Rows: rows, Cols: cols, Cells: make([][]Cell, rows), Height: make([][]int, rows+1)}
	for r := range g.Cells {
		g.Cells[r] = make([]Cell, cols)
	}
	for r := range g.Height {
		g.Height[r] = make([]int, cols+1)
		g.Height[r][0] = r
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			in := Cell{Left: 1}
			if c > 0 {
				in.Left = g.Cells[r][c-1].Right
			}
			if r > 0 {
				in.Bottom = g.Cells[r-1][c].Top
			}
			h := g.Height[r][c]
			var draw float64
			if in.Left != in.Bottom {
				draw = src.Float64()
			}
			out := w.Transition(in, h, draw)
			g.Cells[r][c] = out

			// heights count lines crossed: up across left edges, down across bottom edges
			g.Height[r+1][c] = h + int(out.Left)
			g.Height[r][c+1] = h - int(out.Bottom)
			g.Height[r+1][c+1] = h + int(out.Left) - int(out.Top)
		}
		if (r+1)%100 == 0 {
			logrus.Infof("six-vertex: %d/%d rows", r+1, rows)
		}
	}
	return g, nil
}

// Conserves reports whether every vertex has as many lines out as in.
func (g *VertexGrid) Conserves() bool {
	for _, row := range g.Cells {
		for _, c := range row {
			if c.Bottom+c.Left != c.Top+c.Right {
				return false
			}
		}
	}
	return true
}
