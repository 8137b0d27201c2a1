package sim

import (
	"fmt"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat/distuv"
)

// Exit marks a Displacement whose particle left the lattice.
const Exit = -1

// Displacement moves one particle along a layer. To is Exit when the particle
// leaves through the right edge.
type Displacement struct {
	Layer int
	From  int
	To    int
}

// JumpOutcome classifies a resolved jump.
type JumpOutcome string

const (
	// OutcomeNoop means the site was empty on every layer.
	OutcomeNoop JumpOutcome = "noop"
	// OutcomeMoved means every displaced particle found room inside the lattice.
	OutcomeMoved JumpOutcome = "moved"
	// OutcomeExited means one particle left the system.
	OutcomeExited JumpOutcome = "exited"
	// OutcomeReflected means the exiting particle was kept in place and the
	// rest of the cascade, if any, was applied.
	OutcomeReflected JumpOutcome = "reflected"
	// OutcomeRejected means the step was refused under BoundaryError.
	OutcomeRejected JumpOutcome = "rejected"
)

// Jump describes one resolved event of the push process.
type Jump struct {
	Time          float64
	Site          int
	Outcome       JumpOutcome
	Displacements []Displacement // as applied to the lattice
}

// PushSimulator runs the multilayer PushTASEP on a finite lattice.
// Each site carries an exponential clock; when it rings, the particle on the
// lowest occupied layer at that site jumps and pushes right.
type PushSimulator struct {
	cfg     PushConfig
	rate    RateFunc
	lattice *Lattice
	clocks  *ClockQueue
	src     *rand.Rand
	clock   float64
	events  int64
	exited  int64

	observer func(Jump)
}

// NewPushSimulator builds the initial lattice and draws one waiting time per site.
func NewPushSimulator(cfg PushConfig, rate RateFunc, rng *PartitionedRNG) (*PushSimulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rate == nil {
		return nil, fmt.Errorf("%w: nil rate function", ErrInvalidConfig)
	}

	l := NewLattice(cfg.Sites, cfg.Layers)
	if cfg.Initial == InitialFull {
		l.Fill()
	}

	s := &PushSimulator{
		cfg:     cfg,
		rate:    rate,
		lattice: l,
		src:     rng.ForSubsystem(SubsystemClocks),
	}

	deadlines := make([]float64, cfg.Sites)
	for site := range deadlines {
		wait, err := s.drawWait(site)
		if err != nil {
			return nil, err
		}
		deadlines[site] = wait
	}
	s.clocks = NewClockQueue(deadlines)

	logrus.Debugf("push simulator: %d sites × %d layers, boundary=%s, overflow=%s, cascade=%s, %d particles",
		cfg.Sites, cfg.Layers, cfg.Boundary, cfg.Overflow, cfg.Cascade, l.Count())
	return s, nil
}

// drawWait samples Exp(rate(site)) against the current lattice.
func (s *PushSimulator) drawWait(site int) (float64, error) {
	r := s.rate(site, s.lattice)
	if err := checkRate(r, fmt.Sprintf("rate(%d)", site)); err != nil {
		return 0, err
	}
	return distuv.Exponential{Rate: r, Src: s.src}.Rand(), nil
}

// SelectNextEvent returns the site whose clock rings next (lowest index on
// ties) and advances the global clock to that moment.
func (s *PushSimulator) SelectNextEvent() int {
	site, deadline := s.clocks.Peek()
	if site < 0 {
		panic("sim: SelectNextEvent on an empty lattice")
	}
	s.clock = deadline
	return site
}

// ResolveJump applies the push rule at site j and redraws j's clock.
// A plan ending off the lattice is settled by the boundary policy when the
// exiting particle sits on the last site and by the overflow policy when a
// cascade ran out of room. Under BoundaryError the step returns
// ErrBoundaryOverflow and leaves the lattice unchanged. If the redrawn rate
// at j is invalid the step is undone: the lattice, the exit count and the
// event count are restored and ErrInvalidRate is returned.
func (s *PushSimulator) ResolveJump(j int) (Jump, error) {
	jump := Jump{Time: s.clock, Site: j}

	plan := s.plan(j)
	var stepErr error
	switch {
	case len(plan) == 0:
		jump.Outcome = OutcomeNoop
	case plan[len(plan)-1].To != Exit:
		jump.Outcome = OutcomeMoved
	default:
		last := plan[len(plan)-1]
		policy := s.cfg.Boundary
		if last.From < s.lattice.Sites-1 {
			policy = s.cfg.Overflow
		}
		switch policy {
		case BoundaryReflect:
			jump.Outcome = OutcomeReflected
			plan = plan[:len(plan)-1]
		case BoundaryError:
			jump.Outcome = OutcomeRejected
			stepErr = fmt.Errorf("%w: layer %d site %d at t=%g", ErrBoundaryOverflow, last.Layer, last.From, s.clock)
			plan = nil
		default:
			jump.Outcome = OutcomeExited
			s.exited++
		}
	}

	for _, d := range plan {
		s.lattice.Set(d.Layer, d.From, false)
		if d.To != Exit {
			s.lattice.Set(d.Layer, d.To, true)
		}
	}
	jump.Displacements = plan

	wait, err := s.drawWait(j)
	if err != nil {
		s.undo(plan)
		if jump.Outcome == OutcomeExited {
			s.exited--
		}
		jump.Displacements = nil
		return jump, err
	}
	s.clocks.Reschedule(j, s.clock+wait)
	s.events++

	logrus.Debugf("[t=%.6f] site %d: %s %v", s.clock, j, jump.Outcome, plan)
	return jump, stepErr
}

// undo reverts displacements applied by ResolveJump, last one first.
func (s *PushSimulator) undo(plan []Displacement) {
	for i := len(plan) - 1; i >= 0; i-- {
		d := plan[i]
		if d.To != Exit {
			s.lattice.Set(d.Layer, d.To, false)
		}
		s.lattice.Set(d.Layer, d.From, true)
	}
}

// Step performs one (SelectNextEvent, ResolveJump) pair.
func (s *PushSimulator) Step() (Jump, error) {
	return s.ResolveJump(s.SelectNextEvent())
}

// plan computes the displacements a jump at j would cause, without touching
// the lattice. Only the final displacement can be an Exit.
func (s *PushSimulator) plan(j int) []Displacement {
	l := s.lattice
	last := l.Sites - 1

	if s.cfg.Cascade != CascadeColumn {
		layer := l.LowestOccupied(j, 0)
		if layer < 0 {
			return nil
		}
		if j == last {
			return []Displacement{{Layer: layer, From: j, To: Exit}}
		}
		return []Displacement{{Layer: layer, From: j, To: l.FirstEmpty(layer, j)}}
	}

	var plan []Displacement
	site, layer := j, 0
	for layer < l.Layers {
		layer = l.LowestOccupied(site, layer)
		if layer < 0 {
			break
		}
		if site == last {
			plan = append(plan, Displacement{Layer: layer, From: site, To: Exit})
			break
		}
		to := l.FirstEmpty(layer, site)
		plan = append(plan, Displacement{Layer: layer, From: site, To: to})
		if to == Exit {
			break
		}
		site, layer = to, layer+1
	}
	return plan
}

// Clock returns the current simulation time.
func (s *PushSimulator) Clock() float64 { return s.clock }

// Events returns the number of resolved jumps, no-ops included.
func (s *PushSimulator) Events() int64 { return s.events }

// Exited returns the number of particles discarded at the boundary.
func (s *PushSimulator) Exited() int64 { return s.exited }

// Lattice exposes the live occupancy grid. Callers must not mutate it.
func (s *PushSimulator) Lattice() *Lattice { return s.lattice }

// Config returns the validated configuration.
func (s *PushSimulator) Config() PushConfig { return s.cfg }

// Remaining returns the time left until site's clock rings.
func (s *PushSimulator) Remaining(site int) float64 {
	return s.clocks.Deadline(site) - s.clock
}
