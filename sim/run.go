package sim

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Stepper is a simulation that advances one event at a time.
type Stepper interface {
	Advance() error
	Clock() float64
	Events() int64
}

// RunStats summarizes a finished run.
type RunStats struct {
	Events  int64
	Clock   float64
	Elapsed time.Duration
}

// DefaultProgressInterval returns the progress logging interval for a
// system of the given size: every 10n events, at most every 5000.
func DefaultProgressInterval(size int) int64 {
	return int64(min(10*size, 5000))
}

// Run advances s until stop is met or a step fails. progress <= 0 disables
// progress logging.
func Run(s Stepper, stop StopCondition, progress int64) (RunStats, error) {
	if err := stop.Validate(); err != nil {
		return RunStats{}, err
	}
	start := time.Now()
	for !stop.Done(s.Clock(), s.Events()) {
		if err := s.Advance(); err != nil {
			return RunStats{Events: s.Events(), Clock: s.Clock(), Elapsed: time.Since(start)}, err
		}
		if progress > 0 && s.Events()%progress == 0 {
			if stop.Horizon > 0 {
				logrus.Infof("%d/%d", int64(s.Clock()), int64(stop.Horizon))
			} else {
				logrus.Infof("events %d/%d, t=%.3f", s.Events(), stop.MaxEvents, s.Clock())
			}
		}
	}
	stats := RunStats{Events: s.Events(), Clock: s.Clock(), Elapsed: time.Since(start)}
	logrus.Infof("run finished: %d events, t=%.6f, %v", stats.Events, stats.Clock, stats.Elapsed)
	return stats, nil
}

// Advance implements Stepper. Every step that counts as an event reaches the
// observer, including one rejected under BoundaryError; a step that was
// undone does not.
func (s *PushSimulator) Advance() error {
	before := s.events
	jump, err := s.Step()
	if s.observer != nil && s.events > before {
		s.observer(jump)
	}
	return err
}

// Observe registers fn to receive every jump made through Advance.
func (s *PushSimulator) Observe(fn func(Jump)) { s.observer = fn }

// Advance implements Stepper with the same observer rule as the push
// process: only steps that count as events are forwarded.
func (s *ContinuousSimulator) Advance() error {
	before := s.events
	mv, err := s.Step()
	if s.observer != nil && s.events > before {
		s.observer(mv)
	}
	return err
}

// Observe registers fn to receive every move made through Advance.
func (s *ContinuousSimulator) Observe(fn func(Move)) { s.observer = fn }
