package mcts

import (
	"sync"
	"time"

	"github.com/aenteas/omega/pkg/game"
	"github.com/aenteas/omega/pkg/node"
	"github.com/aenteas/omega/pkg/policy"
	"github.com/aenteas/omega/pkg/scheduler"
	"github.com/aenteas/omega/pkg/tt"
	"go.uber.org/atomic"
)

// NodePtr is the pointer-receiver method set both node.UCT and node.RAVE
// expose: selection/expansion/backpropagation driven through a shared
// Context. N is pinned to the node payload type (tt.Visitable); PN is
// pinned to *N by the embedded `*N` element, so Driver can call these
// methods generically without N itself needing pointer-receiver methods
// in its own constraint (it only needs VisitCount, a value receiver - see
// pkg/node's rationale for mixing receivers).
type NodePtr[N any] interface {
	*N
	Select(ctx *node.Context[N]) (*N, bool)
	Expand(ctx *node.Context[N]) *N
	Backprop(ctx *node.Context[N], outcome float64, leafDepth int)
}

// Driver runs the playout loop for one exploration node variant N
// (node.UCT or node.RAVE) and implements the AI worker surface consumed by
// the UI: SetTimeLeft, UpdateByOpponent, Run, Stop.
//
// Grounded on original_source's MCTS driver (selection/simulation/
// backpropagation split, root re-election by most-visited child) and the
// teacher's pkg/search/iterative.go handle (atomic running/stop flags
// guarding a single in-flight search).
type Driver[N tt.Visitable, PN NodePtr[N]] struct {
	ctx   *node.Context[N]
	sched scheduler.Scheduler
	reset func(*N, game.Game)

	mu          sync.Mutex
	root        *N
	timeLeft    time.Duration
	hasTimeLeft bool

	running atomic.Bool
	stop    atomic.Bool
}

// New builds a driver over an already-constructed game, table and policy.
// reset must be the same per-node initialisation function (node.ResetUCT
// or node.ResetRAVE) used to build table's root.
func New[N tt.Visitable, PN NodePtr[N]](g game.Game, table tt.Table[N], pol policy.Policy, sched scheduler.Scheduler, reset func(*N, game.Game)) *Driver[N, PN] {
	return &Driver[N, PN]{
		ctx:   &node.Context[N]{Game: g, Table: table, Policy: pol},
		sched: sched,
		reset: reset,
		root:  table.Root(),
	}
}

// SetTimeLeft supplies the remaining wall clock the next Run may spend.
func (d *Driver[N, PN]) SetTimeLeft(timeLeft time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.timeLeft, d.hasTimeLeft = timeLeft, true
}

// UpdateByOpponent re-roots the transposition table and the simulation
// policy by move m. The external game object is assumed already updated by
// the caller. Must be called only while the search is idle.
func (d *Driver[N, PN]) UpdateByOpponent(m int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.running.Load() {
		return ErrInvalidOperation
	}

	d.root = d.ctx.Table.UpdateRoot(m, func(n *N) { d.reset(n, d.ctx.Game) })
	d.ctx.Policy.Reset()
	return nil
}

// Stop sets the atomic interrupt flag observed at the top of each playout
// iteration. Idempotent.
func (d *Driver[N, PN]) Stop() {
	d.stop.Store(true)
}

// Run executes one timed search. On normal completion it plays one whole
// player-turn worth of moves into the game (Omega allows a player two
// consecutive placements) and returns (true, nil). On interruption it
// returns (false, ErrInterrupted) with the game and table left at the
// search root, per the cancellation semantics: a stopped search never
// publishes a best move.
func (d *Driver[N, PN]) Run() (played bool, err error) {
	d.mu.Lock()
	if d.running.Load() {
		d.mu.Unlock()
		return false, ErrInvalidOperation
	}
	if !d.hasTimeLeft {
		d.mu.Unlock()
		return false, ErrInvalidOperation
	}
	timeLeft := d.timeLeft
	d.hasTimeLeft = false
	d.running.Store(true)
	d.stop.Store(false)
	d.mu.Unlock()

	defer d.running.Store(false)

	g := d.ctx.Game
	d.sched.Schedule(timeLeft)

	for {
		if d.stop.Load() {
			g.SelectRoot()
			return false, ErrInterrupted
		}
		if d.sched.Finish() {
			break
		}

		g.SelectRoot()
		d.playout(g)
	}

	g.SelectRoot()
	return d.advanceRoot(g), nil
}

// playout runs one selection/expansion/simulation/backpropagation cycle
// from the current root.
func (d *Driver[N, PN]) playout(g game.Game) {
	current := PN(d.root)
	found := true

	for {
		var child *N
		child, found = current.Select(d.ctx)
		if !found {
			break
		}
		current = PN(child)
		if g.End() {
			break
		}
	}

	leafDepth := g.CurrentDepth()

	leaf := current
	if !found {
		leaf = PN(current.Expand(d.ctx))
	}

	outcome := d.ctx.Policy.Simulate(g)
	leaf.Backprop(d.ctx, outcome, leafDepth)
}

// advanceRoot plays one whole player-turn worth of moves by repeatedly
// selecting the most-visited root child, since Omega allows a player two
// consecutive placements.
func (d *Driver[N, PN]) advanceRoot(g game.Game) bool {
	rootPlayer := g.NextPlayer()
	played := false

	for {
		bestChild := d.selectMostVisited(g)
		d.ctx.Policy.Reset()
		if bestChild != nil {
			d.root = bestChild
			played = true
		} else {
			// No root child was ever explored; expand the just-played move
			// under the current root instead.
			d.root = PN(d.root).Expand(d.ctx)
		}
		if g.NextPlayer() != rootPlayer {
			break
		}
	}
	return played
}

// selectMostVisited scans the legal moves at the root, finds the one whose
// child has the highest visit count (0 for a move never explored), commits
// it to both the game and the table, and returns the child (nil if none of
// the legal moves was ever explored).
func (d *Driver[N, PN]) selectMostVisited(g game.Game) *N {
	var bestChild *N
	var bestMoveIdx int
	maxVisit := -1.0

	for _, mv := range g.ValidMoves() {
		moveIdx := g.ToMoveIdx(mv.Piece, mv.Pos)
		child, found := d.ctx.Table.Select(moveIdx)

		visit := 0.0
		if found {
			visit = child.VisitCount()
		}
		if visit > maxVisit {
			maxVisit, bestChild, bestMoveIdx = visit, child, moveIdx
		}
	}

	g.Update(bestMoveIdx)
	d.ctx.Table.Update(bestMoveIdx)
	return bestChild
}
