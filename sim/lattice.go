package sim

// Lattice stores a layers × sites occupancy grid in row-major order,
// one row per layer. A cell holds 1 when occupied and 0 otherwise.
type Lattice struct {
	Sites  int
	Layers int
	cells  []uint8
}

// NewLattice allocates an empty lattice.
func NewLattice(sites, layers int) *Lattice {
	return &Lattice{Sites: sites, Layers: layers, cells: make([]uint8, sites*layers)}
}

// NewLatticeFromRows builds a lattice from per-layer rows of 0/1 values.
// All rows must have the same length; any non-zero value counts as occupied.
func NewLatticeFromRows(rows [][]uint8) *Lattice {
	layers := len(rows)
	sites := 0
	if layers > 0 {
		sites = len(rows[0])
	}
	l := NewLattice(sites, layers)
	for layer, row := range rows {
		for site := 0; site < sites && site < len(row); site++ {
			if row[site] != 0 {
				l.cells[l.index(layer, site)] = 1
			}
		}
	}
	return l
}

func (l *Lattice) index(layer, site int) int { return layer*l.Sites + site }

// Occupied reports whether (layer, site) holds a particle.
func (l *Lattice) Occupied(layer, site int) bool {
	return l.cells[l.index(layer, site)] == 1
}

// Set occupies or vacates (layer, site).
func (l *Lattice) Set(layer, site int, occupied bool) {
	var v uint8
	if occupied {
		v = 1
	}
	l.cells[l.index(layer, site)] = v
}

// Fill occupies every cell.
func (l *Lattice) Fill() {
	for i := range l.cells {
		l.cells[i] = 1
	}
}

// Clear vacates every cell.
func (l *Lattice) Clear() {
	for i := range l.cells {
		l.cells[i] = 0
	}
}

// Count returns the total number of particles.
func (l *Lattice) Count() int {
	n := 0
	for _, c := range l.cells {
		n += int(c)
	}
	return n
}

// LowestOccupied returns the lowest layer >= from holding a particle at site,
// or -1 if there is none.
func (l *Lattice) LowestOccupied(site, from int) int {
	for layer := from; layer < l.Layers; layer++ {
		if l.Occupied(layer, site) {
			return layer
		}
	}
	return -1
}

// FirstEmpty returns the first site > after on the given layer that is empty,
// or -1 if the rest of the layer is full.
func (l *Lattice) FirstEmpty(layer, after int) int {
	for site := after + 1; site < l.Sites; site++ {
		if !l.Occupied(layer, site) {
			return site
		}
	}
	return -1
}

// Row returns a copy of one layer.
func (l *Lattice) Row(layer int) []uint8 {
	row := make([]uint8, l.Sites)
	copy(row, l.cells[l.index(layer, 0):l.index(layer, 0)+l.Sites])
	return row
}

// Rows returns a copy of the whole grid, one slice per layer.
func (l *Lattice) Rows() [][]uint8 {
	rows := make([][]uint8, l.Layers)
	for layer := range rows {
		rows[layer] = l.Row(layer)
	}
	return rows
}

// Clone returns an independent copy.
func (l *Lattice) Clone() *Lattice {
	c := &Lattice{Sites: l.Sites, Layers: l.Layers, cells: make([]uint8, len(l.cells))}
	copy(c.cells, l.cells)
	return c
}
