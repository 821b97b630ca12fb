// Package mcts implements the MCTS driver: the playout loop that ties a
// Game, a transposition table, an exploration node variant, a simulation
// policy and a scheduler into one time-budgeted search, plus the AI
// worker's UI-facing surface (updateByOpponent/run/stop/setTimeLeft).
//
// Grounded on original_source's mcts.h driver loop and the teacher's
// pkg/search/iterative.go start/finished handshake (go.uber.org/atomic
// flags, a quit channel, a process goroutine).
package mcts

import "errors"

// ConfigError indicates an invalid construction argument, raised at setup
// and never during search.
type ConfigError struct {
	Reason string
}

func (e ConfigError) Error() string {
	return "invalid configuration: " + e.Reason
}

// ErrInvalidOperation is returned when the UI surface is misused: calling
// UpdateByOpponent while a search is active, or Run before a SetTimeLeft
// call has supplied a deadline.
var ErrInvalidOperation = errors.New("invalid operation")

// ErrInterrupted is not a genuine failure: it reports that Run returned
// because Stop was observed before a best move was selected. The game and
// transposition table are left at the search root, untouched.
var ErrInterrupted = errors.New("search interrupted")
