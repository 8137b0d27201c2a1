package sim

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestLattice_FromRowsRoundTrip(t *testing.T) {
	rows := [][]uint8{
		{1, 0, 1, 1},
		{0, 0, 1, 0},
	}
	l := NewLatticeFromRows(rows)

	assert.Equal(t, 4, l.Sites)
	assert.Equal(t, 2, l.Layers)
	assert.Equal(t, 4, l.Count())
	if diff := cmp.Diff(rows, l.Rows()); diff != "" {
		t.Errorf("Rows() mismatch (-want +got):\n%s", diff)
	}
}

func TestLattice_FillClear(t *testing.T) {
	l := NewLattice(5, 3)
	assert.Equal(t, 0, l.Count())
	l.Fill()
	assert.Equal(t, 15, l.Count())
	l.Clear()
	assert.Equal(t, 0, l.Count())
}

func TestLattice_LowestOccupied(t *testing.T) {
	l := NewLatticeFromRows([][]uint8{
		{0, 1},
		{1, 0},
		{1, 1},
	})
	assert.Equal(t, 1, l.LowestOccupied(0, 0))
	assert.Equal(t, 2, l.LowestOccupied(0, 2))
	assert.Equal(t, 0, l.LowestOccupied(1, 0))
	assert.Equal(t, 2, l.LowestOccupied(1, 1))
	assert.Equal(t, -1, l.LowestOccupied(1, 3))
}

func TestLattice_FirstEmpty(t *testing.T) {
	l := NewLatticeFromRows([][]uint8{{1, 1, 0, 1, 1}})
	assert.Equal(t, 2, l.FirstEmpty(0, 0))
	assert.Equal(t, 2, l.FirstEmpty(0, 1))
	assert.Equal(t, -1, l.FirstEmpty(0, 2))
	assert.Equal(t, -1, l.FirstEmpty(0, 4))
}

func TestLattice_CloneIsIndependent(t *testing.T) {
	l := NewLattice(3, 1)
	c := l.Clone()
	c.Set(0, 1, true)
	assert.False(t, l.Occupied(0, 1))
	assert.True(t, c.Occupied(0, 1))
}

func TestLattice_RowIsCopy(t *testing.T) {
	l := NewLattice(3, 2)
	row := l.Row(1)
	row[0] = 1
	assert.False(t, l.Occupied(1, 0))
}
