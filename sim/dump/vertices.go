package dump

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/tasep-sim/tasep-sim/sim"
)

// WriteVertices writes a six-vertex configuration as {{{b,l,t,r},...},...},
// one outer group per row from the bottom.
func WriteVertices(w io.Writer, cells [][]sim.Cell) error {
	bw := bufio.NewWriter(w)
	bw.WriteByte('{')
	for r, row := range cells {
		if r > 0 {
			bw.WriteByte(',')
		}
		bw.WriteByte('{')
		for c, cell := range row {
			if c > 0 {
				bw.WriteByte(',')
			}
			fmt.Fprintf(bw, "{%d,%d,%d,%d}", cell.Bottom, cell.Left, cell.Top, cell.Right)
		}
		bw.WriteByte('}')
	}
	bw.WriteByte('}')
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing vertices: %w", err)
	}
	return nil
}

// ParseVertices reads the format produced by WriteVertices.
func ParseVertices(r io.Reader) ([][]sim.Cell, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading vertices: %w", err)
	}
	root, err := parseNested(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing vertices: %w", err)
	}
	if !root.isList {
		return nil, fmt.Errorf("parsing vertices: expected a list of rows")
	}

	cells := make([][]sim.Cell, len(root.list))
	for r, rowNode := range root.list {
		if !rowNode.isList {
			return nil, fmt.Errorf("parsing vertices: row %d is not a list", r)
		}
		row := make([]sim.Cell, len(rowNode.list))
		for c, cellNode := range rowNode.list {
			if !cellNode.isList || len(cellNode.list) != 4 {
				return nil, fmt.Errorf("parsing vertices: cell (%d,%d) must hold 4 edges", r, c)
			}
			var edges [4]uint8
			for i, e := range cellNode.list {
				v, err := strconv.ParseUint(e.scalar, 10, 8)
				if err != nil || v > 1 {
					return nil, fmt.Errorf("parsing vertices: cell (%d,%d) edge %d: bad value %q", r, c, i, e.scalar)
				}
				edges[i] = uint8(v)
			}
			row[c] = sim.Cell{Bottom: edges[0], Left: edges[1], Top: edges[2], Right: edges[3]}
		}
		cells[r] = row
	}
	return cells, nil
}
