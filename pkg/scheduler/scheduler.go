// Package scheduler implements the MCTS driver's time budget: a parabolic
// stop-scheduler (the canonical variant) and a simpler even scheduler that
// divides the remaining wall clock evenly across expected remaining moves.
//
// Grounded on original_source's stopscheduler.h/evenscheduler.h.
package scheduler

import (
	"time"

	"github.com/aenteas/omega/pkg/tt"
)

// ScoredVisitable is the capability the parabolic scheduler needs from a
// node payload beyond tt.Visitable: a scalar state score (the node's mean)
// used for the hopeless/won early-exit check.
type ScoredVisitable interface {
	tt.Visitable
	StateScore() float64
}

// Scheduler decides when a search round should stop. Schedule is called
// once at the start of run() with the wall-clock time budget remaining;
// Finish is polled once per playout.
type Scheduler interface {
	Schedule(timeLeft time.Duration)
	Finish() bool
}

// ConfigError indicates an invalid construction argument.
type ConfigError struct {
	Reason string
}

func (e ConfigError) Error() string {
	return "invalid configuration: " + e.Reason
}
