package dump

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// WriteOccupancy writes rows of 0/1 values as {{1,0,...},{...}}, one brace
// group per layer.
func WriteOccupancy(w io.Writer, rows [][]uint8) error {
	bw := bufio.NewWriter(w)
	bw.WriteByte('{')
	for i, row := range rows {
		if i > 0 {
			bw.WriteByte(',')
		}
		bw.WriteByte('{')
		for x, v := range row {
			if x > 0 {
				bw.WriteByte(',')
			}
			bw.WriteString(strconv.Itoa(int(v)))
		}
		bw.WriteByte('}')
	}
	bw.WriteByte('}')
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing occupancy: %w", err)
	}
	return nil
}

// ParseOccupancy reads the format produced by WriteOccupancy. Every row must
// have the same length and every value must be 0 or 1.
func ParseOccupancy(r io.Reader) ([][]uint8, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading occupancy: %w", err)
	}
	root, err := parseNested(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing occupancy: %w", err)
	}
	if !root.isList {
		return nil, fmt.Errorf("parsing occupancy: expected a list of rows")
	}

	rows := make([][]uint8, len(root.list))
	for i, rowNode := range root.list {
		if !rowNode.isList {
			return nil, fmt.Errorf("parsing occupancy: row %d is not a list", i)
		}
		if i > 0 && len(rowNode.list) != len(rows[0]) {
			return nil, fmt.Errorf("parsing occupancy: row %d has %d sites, want %d", i, len(rowNode.list), len(rows[0]))
		}
		row := make([]uint8, len(rowNode.list))
		for x, cell := range rowNode.list {
			switch strings.TrimSpace(cell.scalar) {
			case "0":
			case "1":
				row[x] = 1
			default:
				return nil, fmt.Errorf("parsing occupancy: row %d site %d: bad value %q", i, x, cell.scalar)
			}
		}
		rows[i] = row
	}
	return rows, nil
}

// WriteFile creates path and hands it to write, closing it afterwards.
func WriteFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	logrus.Debugf("Successfully wrote to '%s'", path)
	return nil
}
