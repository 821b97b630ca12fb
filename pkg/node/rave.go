package node

import (
	"github.com/aenteas/omega/pkg/game"
	"github.com/chewxy/math32"
)

const raveK float32 = 1000

// RAVE blends Monte Carlo statistics (mcMean/mcCount, kept at the child)
// with AMAF statistics (rMean/rCount, indexed by piece/pos and kept at the
// parent) via a schedule-independent weighting. Grounded on
// original_source's ravenode.h.
type RAVE struct {
	mcMean  float32
	mcCount float32

	rMean  map[int][]float32 // [piece][pos]
	rCount map[int][]float32
}

// VisitCount and StateScore use value receivers so the bare RAVE type
// satisfies tt.Visitable / scheduler.ScoredVisitable; see node.UCT's
// identical rationale.
func (n RAVE) VisitCount() float64 { return float64(n.mcCount) }
func (n RAVE) StateScore() float64 { return float64(n.mcMean) }

// ResetRAVE (re)initialises a node for the current game state's available
// pieces, sizing the AMAF tables to each piece's position count.
func ResetRAVE(n *RAVE, g game.Game) {
	n.mcMean = 0.5
	n.mcCount = 1
	n.rMean = make(map[int][]float32)
	n.rCount = make(map[int][]float32)
	for _, piece := range g.AvailablePieces() {
		size := g.PieceMaxMoveNum(piece)
		rm := make([]float32, size)
		rc := make([]float32, size)
		for i := range rm {
			rm[i] = 0.5
			rc[i] = 1
		}
		n.rMean[piece] = rm
		n.rCount[piece] = rc
	}
}

func actionScoreRAVE(n *RAVE, child *RAVE, found bool, piece, pos int) float32 {
	beta := math32.Sqrt(raveK / (3*n.mcCount + raveK))
	mc := float32(0.5)
	if found {
		mc = child.mcMean
	}
	return (1-beta)*mc + beta*n.rMean[piece][pos]
}

func (n *RAVE) Select(ctx *Context[RAVE]) (*RAVE, bool) {
	moves := ctx.Game.ValidMoves()

	var bestChild *RAVE
	var bestFound bool
	var bestMoveIdx int
	maxScore := float32(-1)

	for _, mv := range moves {
		moveIdx := ctx.Game.ToMoveIdx(mv.Piece, mv.Pos)
		child, found := ctx.Table.Select(moveIdx)
		score := actionScoreRAVE(n, child, found, mv.Piece, mv.Pos)
		if score > maxScore {
			maxScore = score
			bestChild, bestFound = child, found
			bestMoveIdx = moveIdx
		}
	}

	if bestFound {
		ctx.Table.Update(bestMoveIdx)
	}
	ctx.Game.Update(bestMoveIdx)
	return bestChild, bestFound
}

func (n *RAVE) Expand(ctx *Context[RAVE]) *RAVE {
	moveIdx := ctx.Game.LastMoveIdx()
	return ctx.Table.Store(moveIdx, func(nn *RAVE) { ResetRAVE(nn, ctx.Game) })
}

func (n *RAVE) updateMC(val float32) {
	n.mcMean = (n.mcMean*n.mcCount + val) / (n.mcCount + 1)
	n.mcCount++
}

// updateRAVE folds every move played below this node by the given player
// into its AMAF table.
func (n *RAVE) updateRAVE(outcome float64, player int, taken takenMoves) {
	val := playerValue(outcome, player)
	for piece, positions := range taken[player] {
		rm, rc := n.rMean[piece], n.rCount[piece]
		if rm == nil {
			continue
		}
		for _, pos := range positions {
			rm[pos] = (rm[pos]*rc[pos] + val) / (rc[pos] + 1)
			rc[pos]++
		}
	}
}

// takenMoves buckets moves played below a node by player, then by piece:
// taken[player][piece] is the list of positions played.
type takenMoves [2]map[int][]int

func newTakenMoves() takenMoves {
	return takenMoves{make(map[int][]int), make(map[int][]int)}
}

func (t takenMoves) add(mv game.Move) {
	t[mv.Player][mv.Piece] = append(t[mv.Player][mv.Piece], mv.Pos)
}

// prevMove returns the move that will be undone by the next game.Undo call.
func prevMove(g game.Game) game.Move {
	d := g.CurrentDepth()
	return g.MovesSince(d - 1)[0]
}

// Backprop mirrors UCT.Backprop's structure but additionally gathers, while
// walking up, every move played below each node (bucketed by player) and
// folds them into that ancestor's AMAF table. Order per ancestor matches
// the reference exactly: updateRAVE using the next-player perspective
// before undoing, then game.Undo, then updateMC using the parent's-own-
// player perspective, then recording the just-undone move for the next
// ancestor up.
func (n *RAVE) Backprop(ctx *Context[RAVE], outcome float64, leafDepth int) {
	g := ctx.Game
	taken := newTakenMoves()

	for g.CurrentDepth() != leafDepth {
		mv := prevMove(g)
		g.Undo()
		taken.add(mv)
	}

	current := n
	for {
		current.updateRAVE(outcome, g.NextPlayer(), taken)

		parent, ok := ctx.Table.Backward()
		if !ok {
			break
		}

		mv := prevMove(g)
		g.Undo()

		current.updateMC(playerValue(outcome, g.NextPlayer()))
		taken.add(mv)

		current = parent
	}

	current.mcCount++
}
