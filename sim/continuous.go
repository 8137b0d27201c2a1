package sim

import (
	"fmt"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat/distuv"
)

// Choice names the clock that rang in the continuous-space race: the source
// at the origin, or the occupied location at Position.
type Choice struct {
	Source   bool
	Position float64
}

// Move describes one resolved event in continuous space.
type Move struct {
	Time   float64
	Source bool    // a new particle entered at the origin
	From   float64 // origin of the jump (0 for the source)
	Target float64 // From plus the exponential jump length
	To     float64 // where the particle ended up
	Merged bool    // the particle was blocked and joined an existing entry
}

// ContinuousSimulator runs continuous-space TASEP on the half line with a
// particle source at the origin. Every occupied location jumps at rate a(x);
// the top particle of that location moves an Exp(ν) distance right but
// cannot pass the next occupied location, where it stacks instead.
type ContinuousSimulator struct {
	cfg       ContinuousConfig
	rate      SpaceRate
	particles *Particles
	clockSrc  *rand.Rand
	raceSrc   *rand.Rand
	jumpSrc   *rand.Rand
	clock     float64
	events    int64
	merges    int64

	observer func(Move)
}

// NewContinuousSimulator creates an empty system.
func NewContinuousSimulator(cfg ContinuousConfig, rate SpaceRate, rng *PartitionedRNG) (*ContinuousSimulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rate == nil {
		return nil, fmt.Errorf("%w: nil rate function", ErrInvalidConfig)
	}
	return &ContinuousSimulator{
		cfg:       cfg,
		rate:      rate,
		particles: NewParticles(rng.ForSubsystem(SubsystemTreap)),
		clockSrc:  rng.ForSubsystem(SubsystemClocks),
		raceSrc:   rng.ForSubsystem(SubsystemRace),
		jumpSrc:   rng.ForSubsystem(SubsystemJumps),
	}, nil
}

// TotalRate returns a0 plus the rates of all occupied locations.
func (s *ContinuousSimulator) TotalRate() float64 {
	return s.cfg.SourceRate + s.particles.TotalRate()
}

// SelectNext runs the exponential race: it advances the clock by an
// Exp(total rate) holding time and picks the clock that rang.
func (s *ContinuousSimulator) SelectNext() Choice {
	total := s.TotalRate()
	s.clock += distuv.Exponential{Rate: total, Src: s.clockSrc}.Rand()

	u := distuv.Uniform{Min: 0, Max: total, Src: s.raceSrc}.Rand()
	if u < s.cfg.SourceRate || s.particles.Len() == 0 {
		return Choice{Source: true}
	}
	e, _ := s.particles.SelectByRate(u - s.cfg.SourceRate)
	return Choice{Position: e.Position}
}

// Apply moves one particle according to the choice. A rejected choice or an
// invalid rate at the landing point leaves the system and its counters as
// they were.
func (s *ContinuousSimulator) Apply(c Choice) (Move, error) {
	mv := Move{Time: s.clock, Source: c.Source}
	if !c.Source {
		if _, ok := s.particles.Get(c.Position); !ok {
			return mv, fmt.Errorf("%w: no particle at %v", ErrInvalidConfig, c.Position)
		}
		mv.From = c.Position
	}

	mv.Target = mv.From + distuv.Exponential{Rate: s.cfg.JumpRate, Src: s.jumpSrc}.Rand()

	var next Entry
	var blocked bool
	if c.Source {
		next, blocked = s.particles.Min()
	} else {
		next, blocked = s.particles.Next(mv.From)
	}
	blocked = blocked && next.Position <= mv.Target

	mv.To = mv.Target
	if blocked {
		mv.To = next.Position
		mv.Merged = true
	}

	rate := s.rate(mv.To)
	if _, exists := s.particles.Get(mv.To); !exists {
		if err := checkRate(rate, fmt.Sprintf("rate(%v)", mv.To)); err != nil {
			return mv, err
		}
	}
	s.events++
	if mv.Merged {
		s.merges++
	}
	if !c.Source {
		s.particles.Remove(mv.From)
	}
	s.particles.Add(mv.To, rate)

	logrus.Debugf("[t=%.6f] %s %.6f -> %.6f (merged=%v)", s.clock, originName(c), mv.From, mv.To, mv.Merged)
	return mv, nil
}

// Step runs one race and applies its winner.
func (s *ContinuousSimulator) Step() (Move, error) {
	return s.Apply(s.SelectNext())
}

// Inject forces a source event without advancing the clock.
func (s *ContinuousSimulator) Inject() (Move, error) {
	return s.Apply(Choice{Source: true})
}

func originName(c Choice) string {
	if c.Source {
		return "source"
	}
	return "jump"
}

// Particles exposes the live multiset. Callers must not mutate it.
func (s *ContinuousSimulator) Particles() *Particles { return s.particles }

// Positions returns every particle position in increasing order.
func (s *ContinuousSimulator) Positions() []float64 { return s.particles.Positions() }

// Entries returns the distinct occupied locations in increasing order.
func (s *ContinuousSimulator) Entries() []Entry { return s.particles.Entries() }

// Len returns the number of distinct occupied locations.
func (s *ContinuousSimulator) Len() int { return s.particles.Len() }

// Count returns the number of particles.
func (s *ContinuousSimulator) Count() int { return s.particles.Count() }

// Clock returns the current simulation time.
func (s *ContinuousSimulator) Clock() float64 { return s.clock }

// Events returns the number of applied moves.
func (s *ContinuousSimulator) Events() int64 { return s.events }

// Merges returns how many moves ended on an existing location.
func (s *ContinuousSimulator) Merges() int64 { return s.merges }
