package sim

import "math/rand/v2"

// Entry is one occupied location in continuous space.
type Entry struct {
	Position     float64
	Multiplicity int
}

// particleNode is a treap node augmented with subtree totals.
type particleNode struct {
	pos   float64
	mult  int
	rate  float64
	prio  uint64
	left  *particleNode
	right *particleNode

	size  int     // entries in subtree
	count int     // particles in subtree (sum of multiplicities)
	sum   float64 // sum of entry rates in subtree
}

func (n *particleNode) update() {
	n.size, n.count, n.sum = 1, n.mult, n.rate
	if n.left != nil {
		n.size += n.left.size
		n.count += n.left.count
		n.sum += n.left.sum
	}
	if n.right != nil {
		n.size += n.right.size
		n.count += n.right.count
		n.sum += n.right.sum
	}
}

// Particles is an ordered multiset of particle positions. Coincident particles
// share one entry; positions are strictly increasing and multiplicities are
// at least one. Each entry also carries a rate, and the structure answers
// "which entry owns this point of the cumulative rate" in O(log n).
type Particles struct {
	root *particleNode
	prio *rand.Rand
}

// NewParticles creates an empty multiset. prio feeds the treap priorities.
func NewParticles(prio *rand.Rand) *Particles {
	return &Particles{prio: prio}
}

// Len returns the number of distinct positions.
func (p *Particles) Len() int {
	if p.root == nil {
		return 0
	}
	return p.root.size
}

// Count returns the number of particles, multiplicities included.
func (p *Particles) Count() int {
	if p.root == nil {
		return 0
	}
	return p.root.count
}

// TotalRate returns the sum of entry rates.
func (p *Particles) TotalRate() float64 {
	if p.root == nil {
		return 0
	}
	return p.root.sum
}

// Get returns the entry at exactly x.
func (p *Particles) Get(x float64) (Entry, bool) {
	n := p.root
	for n != nil {
		switch {
		case x < n.pos:
			n = n.left
		case x > n.pos:
			n = n.right
		default:
			return Entry{Position: n.pos, Multiplicity: n.mult}, true
		}
	}
	return Entry{}, false
}

// Min returns the leftmost entry.
func (p *Particles) Min() (Entry, bool) {
	n := p.root
	if n == nil {
		return Entry{}, false
	}
	for n.left != nil {
		n = n.left
	}
	return Entry{Position: n.pos, Multiplicity: n.mult}, true
}

// Next returns the first entry strictly to the right of x.
func (p *Particles) Next(x float64) (Entry, bool) {
	var best *particleNode
	n := p.root
	for n != nil {
		if n.pos > x {
			best = n
			n = n.left
		} else {
			n = n.right
		}
	}
	if best == nil {
		return Entry{}, false
	}
	return Entry{Position: best.pos, Multiplicity: best.mult}, true
}

// Rank returns the number of entries strictly left of x.
func (p *Particles) Rank(x float64) int {
	rank := 0
	n := p.root
	for n != nil {
		if x <= n.pos {
			n = n.left
			continue
		}
		rank++
		if n.left != nil {
			rank += n.left.size
		}
		n = n.right
	}
	return rank
}

// Add puts one particle at x with the given rate. If x is already occupied
// its multiplicity grows and the stored rate is kept.
func (p *Particles) Add(x, rate float64) {
	if p.bump(p.root, x, 1) {
		return
	}
	p.root = p.insert(p.root, &particleNode{pos: x, mult: 1, rate: rate, prio: p.prio.Uint64()})
}

// Remove takes one particle off x, deleting the entry when it empties.
// Returns false if x is not occupied.
func (p *Particles) Remove(x float64) bool {
	e, ok := p.Get(x)
	if !ok {
		return false
	}
	if e.Multiplicity > 1 {
		p.bump(p.root, x, -1)
		return true
	}
	p.root = p.delete(p.root, x)
	return true
}

// SelectByRate returns the entry owning point u of the cumulative rate,
// taken over entries in increasing position. u is clamped into range.
func (p *Particles) SelectByRate(u float64) (Entry, bool) {
	n := p.root
	if n == nil {
		return Entry{}, false
	}
	for {
		if n.left != nil {
			if u < n.left.sum {
				n = n.left
				continue
			}
			u -= n.left.sum
		}
		if u < n.rate || n.right == nil {
			return Entry{Position: n.pos, Multiplicity: n.mult}, true
		}
		u -= n.rate
		n = n.right
	}
}

// Entries returns all entries in increasing position.
func (p *Particles) Entries() []Entry {
	out := make([]Entry, 0, p.Len())
	var walk func(n *particleNode)
	walk = func(n *particleNode) {
		if n == nil {
			return
		}
		walk(n.left)
		out = append(out, Entry{Position: n.pos, Multiplicity: n.mult})
		walk(n.right)
	}
	walk(p.root)
	return out
}

// Positions expands Entries by multiplicity.
func (p *Particles) Positions() []float64 {
	out := make([]float64, 0, p.Count())
	for _, e := range p.Entries() {
		for i := 0; i < e.Multiplicity; i++ {
			out = append(out, e.Position)
		}
	}
	return out
}

// bump adds delta to the multiplicity at x, fixing counts on the way back up.
func (p *Particles) bump(n *particleNode, x float64, delta int) bool {
	if n == nil {
		return false
	}
	var found bool
	switch {
	case x < n.pos:
		found = p.bump(n.left, x, delta)
	case x > n.pos:
		found = p.bump(n.right, x, delta)
	default:
		n.mult += delta
		found = true
	}
	if found {
		n.update()
	}
	return found
}

func (p *Particles) insert(n, nn *particleNode) *particleNode {
	if n == nil {
		nn.update()
		return nn
	}
	if nn.pos < n.pos {
		n.left = p.insert(n.left, nn)
		if n.left.prio > n.prio {
			n = rotateRight(n)
		}
	} else {
		n.right = p.insert(n.right, nn)
		if n.right.prio > n.prio {
			n = rotateLeft(n)
		}
	}
	n.update()
	return n
}

func (p *Particles) delete(n *particleNode, x float64) *particleNode {
	if n == nil {
		return nil
	}
	switch {
	case x < n.pos:
		n.left = p.delete(n.left, x)
	case x > n.pos:
		n.right = p.delete(n.right, x)
	default:
		return merge(n.left, n.right)
	}
	n.update()
	return n
}

// merge joins two treaps where every key in a precedes every key in b.
func merge(a, b *particleNode) *particleNode {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if a.prio > b.prio {
		a.right = merge(a.right, b)
		a.update()
		return a
	}
	b.left = merge(a, b.left)
	b.update()
	return b
}

func rotateRight(n *particleNode) *particleNode {
	l := n.left
	n.left = l.right
	n.update()
	l.right = n
	l.update()
	return l
}

func rotateLeft(n *particleNode) *particleNode {
	r := n.right
	n.right = r.left
	n.update()
	r.left = n
	r.update()
	return r
}
