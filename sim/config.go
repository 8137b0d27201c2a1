package sim

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidConfig marks a configuration rejected before a run starts.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrInvalidRate marks a rate function that returned a non-positive or non-finite value.
	ErrInvalidRate = errors.New("invalid rate")
	// ErrBoundaryOverflow is returned by a step under BoundaryError when a particle
	// would leave the lattice.
	ErrBoundaryOverflow = errors.New("particle crossed the right boundary")
)

// BoundaryPolicy decides what happens to a particle that would leave the
// lattice. PushConfig applies one policy to jumps off the last site and
// another to push cascades that find no empty cell before the edge.
type BoundaryPolicy string

const (
	// BoundaryDiscard removes the particle from the system.
	BoundaryDiscard BoundaryPolicy = "discard"
	// BoundaryReflect keeps the particle where it was; the exit is suppressed.
	BoundaryReflect BoundaryPolicy = "reflect"
	// BoundaryError rejects the step with ErrBoundaryOverflow.
	BoundaryError BoundaryPolicy = "error"
)

// CascadeMode selects how a displaced particle propagates.
type CascadeMode string

const (
	// CascadeRow pushes the displaced particle along its own layer (multilayer PushTASEP).
	CascadeRow CascadeMode = "row"
	// CascadeColumn lets each landing particle displace the next layer down at the
	// landing site (column-insertion PushTASEP).
	CascadeColumn CascadeMode = "column"
)

// InitialCondition names the starting occupancy of the lattice.
type InitialCondition string

const (
	// InitialFull occupies every cell (step initial condition).
	InitialFull InitialCondition = "full"
	// InitialEmpty starts with no particles.
	InitialEmpty InitialCondition = "empty"
)

// ValidBoundaryPolicies is the set of recognized boundary policy names.
var ValidBoundaryPolicies = map[BoundaryPolicy]bool{"": true, BoundaryDiscard: true, BoundaryReflect: true, BoundaryError: true}

// ValidCascadeModes is the set of recognized cascade modes.
var ValidCascadeModes = map[CascadeMode]bool{"": true, CascadeRow: true, CascadeColumn: true}

// ValidInitialConditions is the set of recognized initial conditions.
var ValidInitialConditions = map[InitialCondition]bool{"": true, InitialFull: true, InitialEmpty: true}

// PushConfig groups the lattice parameters of the push process.
// Empty string fields take the defaults: boundary discard, overflow reflect,
// row cascade, full initial condition.
type PushConfig struct {
	Sites    int              // lattice size n (must be > 0)
	Layers   int              // depth k (must be > 0)
	Boundary BoundaryPolicy   // jumps off the last site
	Overflow BoundaryPolicy   // cascades that run out of room
	Cascade  CascadeMode      // row (default) or column insertion
	Initial  InitialCondition // full (default) or empty
}

// NewPushConfig creates a PushConfig. All fields are set explicitly; empty
// strings keep their zero value and resolve to defaults in Validate.
func NewPushConfig(sites, layers int, boundary, overflow BoundaryPolicy, cascade CascadeMode, initial InitialCondition) PushConfig {
	return PushConfig{
		Sites:    sites,
		Layers:   layers,
		Boundary: boundary,
		Overflow: overflow,
		Cascade:  cascade,
		Initial:  initial,
	}
}

// Validate checks sizes and names, filling defaults for empty names.
func (c *PushConfig) Validate() error {
	if c.Sites <= 0 {
		return fmt.Errorf("%w: sites must be positive, got %d", ErrInvalidConfig, c.Sites)
	}
	if c.Layers <= 0 {
		return fmt.Errorf("%w: layers must be positive, got %d", ErrInvalidConfig, c.Layers)
	}
	if !ValidBoundaryPolicies[c.Boundary] {
		return fmt.Errorf("%w: unknown boundary policy %q", ErrInvalidConfig, c.Boundary)
	}
	if !ValidBoundaryPolicies[c.Overflow] {
		return fmt.Errorf("%w: unknown overflow policy %q", ErrInvalidConfig, c.Overflow)
	}
	if !ValidCascadeModes[c.Cascade] {
		return fmt.Errorf("%w: unknown cascade mode %q", ErrInvalidConfig, c.Cascade)
	}
	if !ValidInitialConditions[c.Initial] {
		return fmt.Errorf("%w: unknown initial condition %q", ErrInvalidConfig, c.Initial)
	}
	if c.Boundary == "" {
		c.Boundary = BoundaryDiscard
	}
	if c.Overflow == "" {
		c.Overflow = BoundaryReflect
	}
	if c.Cascade == "" {
		c.Cascade = CascadeRow
	}
	if c.Initial == "" {
		c.Initial = InitialFull
	}
	return nil
}

// ContinuousConfig groups the parameters of continuous-space TASEP.
type ContinuousConfig struct {
	SourceRate float64 // rate a0 at which new particles enter at the origin (must be > 0)
	JumpRate   float64 // rate ν of the exponential jump length, mean 1/ν (must be > 0)
}

// Validate checks that both rates are positive and finite.
func (c ContinuousConfig) Validate() error {
	if !positiveFinite(c.SourceRate) {
		return fmt.Errorf("%w: source rate must be positive, got %v", ErrInvalidConfig, c.SourceRate)
	}
	if !positiveFinite(c.JumpRate) {
		return fmt.Errorf("%w: jump rate must be positive, got %v", ErrInvalidConfig, c.JumpRate)
	}
	return nil
}

// StopCondition bounds a run. Zero fields are unbounded; at least one must be set.
type StopCondition struct {
	Horizon   float64 // stop once the clock reaches this time
	MaxEvents int64   // stop after this many events
}

// Validate rejects negative bounds and fully unbounded runs.
func (c StopCondition) Validate() error {
	if c.Horizon < 0 || math.IsNaN(c.Horizon) {
		return fmt.Errorf("%w: horizon must be non-negative, got %v", ErrInvalidConfig, c.Horizon)
	}
	if c.MaxEvents < 0 {
		return fmt.Errorf("%w: max events must be non-negative, got %d", ErrInvalidConfig, c.MaxEvents)
	}
	if c.Horizon == 0 && c.MaxEvents == 0 {
		return fmt.Errorf("%w: need a horizon or an event limit", ErrInvalidConfig)
	}
	return nil
}

// Done reports whether a run at the given clock and event count should stop.
func (c StopCondition) Done(clock float64, events int64) bool {
	if c.Horizon > 0 && clock >= c.Horizon {
		return true
	}
	return c.MaxEvents > 0 && events >= c.MaxEvents
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
