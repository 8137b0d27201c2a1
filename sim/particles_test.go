package sim

import (
	"math"
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestParticles() *Particles {
	return NewParticles(rand.New(rand.NewPCG(1, 2)))
}

// checkTreap verifies ordering, heap priorities and subtree aggregates.
func checkTreap(t *testing.T, n *particleNode, lo, hi float64) (size, count int, sum float64) {
	t.Helper()
	if n == nil {
		return 0, 0, 0
	}
	require.True(t, n.pos > lo && n.pos < hi, "position %v outside (%v, %v)", n.pos, lo, hi)
	require.GreaterOrEqual(t, n.mult, 1)
	if n.left != nil {
		require.LessOrEqual(t, n.left.prio, n.prio)
	}
	if n.right != nil {
		require.LessOrEqual(t, n.right.prio, n.prio)
	}
	ls, lc, lsum := checkTreap(t, n.left, lo, n.pos)
	rs, rc, rsum := checkTreap(t, n.right, n.pos, hi)
	require.Equal(t, 1+ls+rs, n.size)
	require.Equal(t, n.mult+lc+rc, n.count)
	require.InDelta(t, n.rate+lsum+rsum, n.sum, 1e-9)
	return n.size, n.count, n.sum
}

func TestParticles_AddMergesCoincident(t *testing.T) {
	p := newTestParticles()
	p.Add(1.5, 2)
	p.Add(0.5, 1)
	p.Add(1.5, 7) // existing entry keeps its rate

	assert.Equal(t, 2, p.Len())
	assert.Equal(t, 3, p.Count())
	assert.Equal(t, 3.0, p.TotalRate())
	assert.Equal(t, []Entry{{0.5, 1}, {1.5, 2}}, p.Entries())
	assert.Equal(t, []float64{0.5, 1.5, 1.5}, p.Positions())
}

func TestParticles_RemoveDecrementsThenDeletes(t *testing.T) {
	p := newTestParticles()
	p.Add(2, 1)
	p.Add(2, 1)

	assert.True(t, p.Remove(2))
	e, ok := p.Get(2)
	require.True(t, ok)
	assert.Equal(t, 1, e.Multiplicity)

	assert.True(t, p.Remove(2))
	_, ok = p.Get(2)
	assert.False(t, ok)
	assert.Equal(t, 0, p.Len())
	assert.False(t, p.Remove(2))
}

func TestParticles_MinNextRank(t *testing.T) {
	p := newTestParticles()
	for _, x := range []float64{3, 1, 2, 5} {
		p.Add(x, 1)
	}

	minE, ok := p.Min()
	require.True(t, ok)
	assert.Equal(t, 1.0, minE.Position)

	next, ok := p.Next(2)
	require.True(t, ok)
	assert.Equal(t, 3.0, next.Position)

	next, ok = p.Next(3.5)
	require.True(t, ok)
	assert.Equal(t, 5.0, next.Position)

	_, ok = p.Next(5)
	assert.False(t, ok)

	assert.Equal(t, 0, p.Rank(1))
	assert.Equal(t, 2, p.Rank(2.5))
	assert.Equal(t, 4, p.Rank(10))
}

func TestParticles_EmptyQueries(t *testing.T) {
	p := newTestParticles()
	_, ok := p.Min()
	assert.False(t, ok)
	_, ok = p.SelectByRate(0)
	assert.False(t, ok)
	assert.Equal(t, 0, p.Count())
	assert.Equal(t, 0.0, p.TotalRate())
}

func TestParticles_SelectByRate(t *testing.T) {
	// GIVEN entries with rates 1, 2 and 3 in position order
	p := newTestParticles()
	p.Add(10, 3)
	p.Add(0, 1)
	p.Add(5, 2)

	tests := []struct {
		u    float64
		want float64
	}{
		{0, 0},
		{0.99, 0},
		{1, 5},
		{2.99, 5},
		{3, 10},
		{5.99, 10},
		{100, 10}, // clamped to the last entry
	}
	for _, tt := range tests {
		e, ok := p.SelectByRate(tt.u)
		require.True(t, ok)
		assert.Equal(t, tt.want, e.Position, "u=%v", tt.u)
	}
}

func TestParticles_RandomOperationsKeepInvariants(t *testing.T) {
	// GIVEN a reference multiset and a treap fed the same random operations
	p := newTestParticles()
	ops := rand.New(rand.NewPCG(7, 7))
	ref := map[float64]int{}
	rates := map[float64]float64{}

	for i := 0; i < 3000; i++ {
		x := float64(ops.IntN(200)) / 4
		if ops.IntN(3) == 0 {
			removed := p.Remove(x)
			assert.Equal(t, ref[x] > 0, removed)
			if ref[x] > 0 {
				ref[x]--
				if ref[x] == 0 {
					delete(ref, x)
					delete(rates, x)
				}
			}
			continue
		}
		r := 0.5 + ops.Float64()
		p.Add(x, r)
		if ref[x] == 0 {
			rates[x] = r
		}
		ref[x]++
	}

	// THEN structure and contents agree
	checkTreap(t, p.root, math.Inf(-1), math.Inf(1))

	keys := make([]float64, 0, len(ref))
	total, wantRate := 0, 0.0
	for x, m := range ref {
		keys = append(keys, x)
		total += m
		wantRate += rates[x]
	}
	sort.Float64s(keys)

	entries := p.Entries()
	require.Len(t, entries, len(keys))
	for i, e := range entries {
		assert.Equal(t, keys[i], e.Position)
		assert.Equal(t, ref[keys[i]], e.Multiplicity)
	}
	assert.Equal(t, total, p.Count())
	assert.InDelta(t, wantRate, p.TotalRate(), 1e-9)
}
