package dump

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// WritePositions writes particle positions as {x1, x2, ...}. Values use the
// shortest decimal form that reads back to the same float64.
func WritePositions(w io.Writer, positions []float64) error {
	bw := bufio.NewWriter(w)
	bw.WriteByte('{')
	for i, x := range positions {
		if i > 0 {
			bw.WriteString(", ")
		}
		bw.WriteString(strconv.FormatFloat(x, 'f', -1, 64))
	}
	bw.WriteByte('}')
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing positions: %w", err)
	}
	return nil
}

// ParsePositions reads a flat {x1, x2, ...} list. A trailing comma is accepted.
func ParsePositions(r io.Reader) ([]float64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading positions: %w", err)
	}
	root, err := parseNested(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing positions: %w", err)
	}
	if !root.isList {
		return nil, fmt.Errorf("parsing positions: expected a list")
	}
	positions := make([]float64, len(root.list))
	for i, n := range root.list {
		if n.isList {
			return nil, fmt.Errorf("parsing positions: entry %d is a list", i)
		}
		x, err := strconv.ParseFloat(n.scalar, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing positions: entry %d: %w", i, err)
		}
		positions[i] = x
	}
	return positions, nil
}
