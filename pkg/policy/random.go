package policy

import (
	"math/rand"

	"github.com/aenteas/omega/pkg/game"
)

// Random samples uniformly from the legal moves at each simulation step.
// Grounded on original_source's RandomPolicy.
type Random struct {
	rnd *rand.Rand
}

func NewRandom(seed int64) *Random {
	return &Random{rnd: rand.New(rand.NewSource(seed))}
}

// Select draws a uniform legal move and applies it, matching the original's
// RandomPolicy::select() contract (select() itself advances the game).
func (p *Random) Select(g game.Game) (moveIdx, childIdx int) {
	moves := g.ValidMoves()
	childIdx = p.rnd.Intn(len(moves))
	mv := moves[childIdx]
	moveIdx = g.ToMoveIdx(mv.Piece, mv.Pos)
	g.Update(moveIdx)
	return moveIdx, childIdx
}

func (p *Random) Simulate(g game.Game) float64 {
	for !g.End() {
		p.Select(g)
	}
	return g.Outcome()
}

func (p *Random) Reset() {}
