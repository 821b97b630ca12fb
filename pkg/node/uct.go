// Package node implements the two exploration-node variants that drive
// MCTS selection, expansion, and backpropagation: UCT-group (Childs,
// Brodeur & Kocsis' second UCT-with-transpositions variant) and RAVE.
//
// Neither variant keeps a parent pointer: backpropagation walks the tree by
// repeatedly calling the transposition table's Backward, which already
// tracks the selection path and hands back each ancestor in turn (spec.md
// §9's "no raw pointer graphs" note). Game and policy are threaded through
// explicitly via a per-call Context rather than held as package or
// type-level state.
//
// Grounded on original_source's uctnode.h/ravenode.h; statistics are kept
// in float32 (as the teacher and Elvenson-alphabeth's mcts.Node both do for
// hot per-node arithmetic), using chewxy/math32 for the transcendental
// functions.
package node

import (
	"github.com/aenteas/omega/pkg/game"
	"github.com/chewxy/math32"
)

const exploreC float32 = 2.0

// UCT is the UCT-group exploration node: children are moves rediscovered
// from the game's legal-move iterator each visit (so transposing states
// share statistics), with per-child visit counts sized to the number of
// legal moves at the state.
type UCT struct {
	mean    float32
	vCount  float32
	vCounts []float32
}

// VisitCount and StateScore use value receivers (unlike Select/Expand/
// Backprop) so the bare UCT type, not just *UCT, satisfies tt.Visitable and
// scheduler.ScoredVisitable - both are read-only accessors of per-node
// statistics addressed through a table's internal storage.
func (n UCT) VisitCount() float64 { return float64(n.vCount) }
func (n UCT) StateScore() float64 { return float64(n.mean) }

// ResetUCT (re)initialises a node for the current game state; passed as
// the init callback to Table.Store/UpdateRoot/constructors.
func ResetUCT(n *UCT, g game.Game) {
	moves := g.ValidMoves()
	n.mean = 0.5
	n.vCount = float32(len(moves))
	n.vCounts = make([]float32, len(moves))
	for i := range n.vCounts {
		n.vCounts[i] = 1
	}
}

func actionScoreUCT(child *UCT, found bool, childVisits, logc float32) float32 {
	mean := float32(0.5)
	if found {
		mean = child.mean
	}
	return mean + math32.Sqrt(logc/childVisits)
}

// Select descends one ply: it scores every legal move, applies the
// maximiser to the game (and, if the child already exists, to the table),
// and returns the child node or (nil, false) when the maximiser is an
// unexplored leaf.
func (n *UCT) Select(ctx *Context[UCT]) (*UCT, bool) {
	moves := ctx.Game.ValidMoves()
	logc := exploreC * math32.Log(n.vCount+1)

	var bestChild *UCT
	var bestFound bool
	var bestMoveIdx, bestIdx int
	maxScore := float32(-1)

	for idx, mv := range moves {
		moveIdx := ctx.Game.ToMoveIdx(mv.Piece, mv.Pos)
		child, found := ctx.Table.Select(moveIdx)
		score := actionScoreUCT(child, found, n.vCounts[idx], logc)
		if score > maxScore {
			maxScore = score
			bestChild, bestFound = child, found
			bestMoveIdx, bestIdx = moveIdx, idx
		}
	}

	if bestFound {
		ctx.Table.Update(bestMoveIdx)
	}
	ctx.Game.Update(bestMoveIdx)

	n.vCount++
	n.vCounts[bestIdx]++
	return bestChild, bestFound
}

// Expand stores a new child for the move just played and, if the resulting
// state isn't terminal, runs one policy step to seed the leaf's child
// visit counts. Policy.Select both picks and applies that seeding move, so
// the game is left one ply further advanced on return; the caller's
// subsequent Policy.Simulate call continues the rollout from there instead
// of resampling the first ply.
func (n *UCT) Expand(ctx *Context[UCT]) *UCT {
	moveIdx := ctx.Game.LastMoveIdx()
	leaf := ctx.Table.Store(moveIdx, func(nn *UCT) { ResetUCT(nn, ctx.Game) })

	if !ctx.Game.End() {
		_, childIdx := ctx.Policy.Select(ctx.Game)
		leaf.vCount++
		leaf.vCounts[childIdx]++
	}
	return leaf
}

// Backprop walks from the leaf back to the search root: first undoing any
// simulation moves down to leafDepth, then alternating Table.Backward
// (which also restores the table's zobrist state) with a matching
// game.Undo, updating each ancestor's mean with the next-player-perspective
// value. The root's own mean is left untouched, matching the reference.
func (n *UCT) Backprop(ctx *Context[UCT], outcome float64, leafDepth int) {
	g := ctx.Game
	for g.CurrentDepth() != leafDepth {
		g.Undo()
	}

	current := n
	for {
		parent, ok := ctx.Table.Backward()
		if !ok {
			break
		}
		g.Undo()

		val := playerValue(outcome, g.NextPlayer())
		current.mean = (current.mean*(current.vCount-1) + val) / current.vCount
		current = parent
	}
}

func playerValue(outcome float64, player int) float32 {
	o := float32(outcome)
	return o + float32(player)*(1-2*o)
}
