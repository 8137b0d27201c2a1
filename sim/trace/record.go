// Package trace provides jump-trace recording for lattice simulations.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// Outcome labels, mirroring the simulator's jump outcomes.
const (
	OutcomeNoop      = "noop"
	OutcomeMoved     = "moved"
	OutcomeExited    = "exited"
	OutcomeReflected = "reflected"
	OutcomeRejected  = "rejected"
)

// Hop is one particle displacement inside a jump. To is -1 for an exit.
type Hop struct {
	Layer int
	From  int
	To    int
}

// JumpRecord captures a single resolved jump.
type JumpRecord struct {
	Clock   float64
	Site    int
	Outcome string
	Hops    []Hop // empty for no-ops and rejected steps
}

// Distance returns the total number of sites travelled by particles that
// stayed on the lattice.
func (r JumpRecord) Distance() int {
	d := 0
	for _, h := range r.Hops {
		if h.To >= 0 {
			d += h.To - h.From
		}
	}
	return d
}
