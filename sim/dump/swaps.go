package dump

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/tasep-sim/tasep-sim/sim"
)

// WriteSwaps writes a swap-process sample as a three-element list:
// {{perm, ...},{coarse matrix, ...},sum matrix}, with ", " between entries.
func WriteSwaps(w io.Writer, s *sim.SwapSample) error {
	bw := bufio.NewWriter(w)
	bw.WriteByte('{')
	writeIntList(bw, len(s.Perms), func(i int) { writeInts(bw, s.Perms[i]) })
	bw.WriteByte(',')
	writeIntList(bw, len(s.Coarse), func(i int) { writeMatrix(bw, s.Coarse[i]) })
	bw.WriteByte(',')
	writeMatrix(bw, s.Sum)
	bw.WriteByte('}')
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing swaps: %w", err)
	}
	return nil
}

func writeIntList(bw *bufio.Writer, n int, item func(int)) {
	bw.WriteByte('{')
	for i := 0; i < n; i++ {
		if i > 0 {
			bw.WriteString(", ")
		}
		item(i)
	}
	bw.WriteByte('}')
}

func writeInts(bw *bufio.Writer, xs []int) {
	writeIntList(bw, len(xs), func(i int) { bw.WriteString(strconv.Itoa(xs[i])) })
}

func writeMatrix(bw *bufio.Writer, m [][]int) {
	writeIntList(bw, len(m), func(i int) { writeInts(bw, m[i]) })
}

// ParseSwaps reads the format produced by WriteSwaps. It checks the shape
// only; the values are not required to form permutations.
func ParseSwaps(r io.Reader) (*sim.SwapSample, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading swaps: %w", err)
	}
	root, err := parseNested(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing swaps: %w", err)
	}
	if !root.isList || len(root.list) != 3 {
		return nil, fmt.Errorf("parsing swaps: expected {perms, coarse, sum}")
	}
	permsNode, coarseNode, sumNode := root.list[0], root.list[1], root.list[2]
	if !permsNode.isList || !coarseNode.isList {
		return nil, fmt.Errorf("parsing swaps: perms and coarse must be lists")
	}

	s := &sim.SwapSample{
		Perms:  make([][]int, len(permsNode.list)),
		Coarse: make([][][]int, len(coarseNode.list)),
	}
	for i, n := range permsNode.list {
		if s.Perms[i], err = parseInts(n); err != nil {
			return nil, fmt.Errorf("parsing swaps: perm %d: %w", i, err)
		}
	}
	for i, n := range coarseNode.list {
		if s.Coarse[i], err = parseMatrix(n); err != nil {
			return nil, fmt.Errorf("parsing swaps: coarse %d: %w", i, err)
		}
	}
	if s.Sum, err = parseMatrix(sumNode); err != nil {
		return nil, fmt.Errorf("parsing swaps: sum: %w", err)
	}
	return s, nil
}

func parseInts(n node) ([]int, error) {
	if !n.isList {
		return nil, fmt.Errorf("expected a list")
	}
	xs := make([]int, len(n.list))
	for i, e := range n.list {
		if e.isList {
			return nil, fmt.Errorf("entry %d is a list", i)
		}
		v, err := strconv.Atoi(e.scalar)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		xs[i] = v
	}
	return xs, nil
}

func parseMatrix(n node) ([][]int, error) {
	if !n.isList {
		return nil, fmt.Errorf("expected a list of rows")
	}
	m := make([][]int, len(n.list))
	for i, row := range n.list {
		xs, err := parseInts(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		if len(xs) != len(n.list) {
			return nil, fmt.Errorf("row %d has %d entries, want %d", i, len(xs), len(n.list))
		}
		m[i] = xs
	}
	return m, nil
}
