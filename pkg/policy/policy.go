// Package policy implements the simulation (rollout) policies used once
// search descends past the transposition table's frontier: a uniform random
// policy and a MAST (move-average sampling technique) policy that learns a
// per-depth, per-player, per-move score table across playouts.
//
// Grounded on spec.md §4.6 and original_source's randompolicy.h/mastpolicy.h.
package policy

import "github.com/aenteas/omega/pkg/game"

// Policy drives the simulation phase of a playout: Select draws one legal
// move at the current game state *and applies it* (g.Update), both as a
// single simulation step and to seed a freshly expanded leaf's statistics
// against the move that was actually played next. Simulate runs a full
// rollout to termination, by repeated Select calls, and returns its
// outcome. Reset advances any per-search-root bookkeeping (MAST's learning
// cursor) when the tree is rerooted.
type Policy interface {
	Select(g game.Game) (moveIdx, childIdx int)
	Simulate(g game.Game) float64
	Reset()
}
