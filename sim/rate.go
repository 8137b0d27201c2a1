package sim

import (
	"fmt"
	"math"
)

// RateFunc gives the jump rate of a lattice site. It is evaluated when the
// site's clock is drawn, with the lattice as it stands at that moment, so
// rates may depend on the local configuration as well as on position.
type RateFunc func(site int, l *Lattice) float64

// SpaceRate gives the jump rate of an occupied location in continuous space.
type SpaceRate func(x float64) float64

// ConstantRate returns a homogeneous RateFunc.
func ConstantRate(rate float64) RateFunc {
	return func(int, *Lattice) float64 { return rate }
}

// ConstantSpaceRate returns a homogeneous SpaceRate.
func ConstantSpaceRate(rate float64) SpaceRate {
	return func(float64) float64 { return rate }
}

// RateSegment assigns Rate to positions in [From, To).
type RateSegment struct {
	From float64 `yaml:"from"`
	To   float64 `yaml:"to"`
	Rate float64 `yaml:"rate"`
}

// RateOverride assigns Rate to the single lattice site At.
type RateOverride struct {
	At   int     `yaml:"at"`
	Rate float64 `yaml:"rate"`
}

// RateProfile is a piecewise-constant inhomogeneity, loadable from YAML.
// Lookup order: point overrides (lattice only), then the last matching
// segment, then Default.
type RateProfile struct {
	Default   float64        `yaml:"default"`
	Segments  []RateSegment  `yaml:"segments"`
	Overrides []RateOverride `yaml:"overrides"`
}

// Validate checks that every rate in the profile is positive and every segment is ordered.
func (p RateProfile) Validate() error {
	if !positiveFinite(p.Default) {
		return fmt.Errorf("%w: default rate must be positive, got %v", ErrInvalidRate, p.Default)
	}
	for i, seg := range p.Segments {
		if !positiveFinite(seg.Rate) {
			return fmt.Errorf("%w: segment %d rate must be positive, got %v", ErrInvalidRate, i, seg.Rate)
		}
		if math.IsNaN(seg.From) || math.IsNaN(seg.To) || seg.To <= seg.From {
			return fmt.Errorf("%w: segment %d has empty range [%v, %v)", ErrInvalidConfig, i, seg.From, seg.To)
		}
	}
	for i, o := range p.Overrides {
		if !positiveFinite(o.Rate) {
			return fmt.Errorf("%w: override %d rate must be positive, got %v", ErrInvalidRate, i, o.Rate)
		}
	}
	return nil
}

// At returns the profile's rate at position x, ignoring point overrides.
func (p RateProfile) At(x float64) float64 {
	rate := p.Default
	for _, seg := range p.Segments {
		if x >= seg.From && x < seg.To {
			rate = seg.Rate
		}
	}
	return rate
}

// Discrete adapts the profile to a lattice RateFunc.
func (p RateProfile) Discrete() RateFunc {
	overrides := make(map[int]float64, len(p.Overrides))
	for _, o := range p.Overrides {
		overrides[o.At] = o.Rate
	}
	return func(site int, _ *Lattice) float64 {
		if r, ok := overrides[site]; ok {
			return r
		}
		return p.At(float64(site))
	}
}

// Continuous adapts the profile to a SpaceRate.
func (p RateProfile) Continuous() SpaceRate {
	return p.At
}

// checkRate wraps an invalid rate value into an ErrInvalidRate error.
func checkRate(rate float64, where string) error {
	if !positiveFinite(rate) {
		return fmt.Errorf("%w: %s returned %v", ErrInvalidRate, where, rate)
	}
	return nil
}
