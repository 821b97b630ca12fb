package policy

import (
	"math/rand"

	"github.com/aenteas/omega/pkg/game"
	"github.com/chewxy/math32"
	"gonum.org/v1/gonum/stat/sampleuv"
)

const (
	mastTemp = 5.0
	mastW    = 0.98
)

// MAST (move-average sampling technique) learns a per-depth, per-player
// score for every move index across playouts and draws simulation moves by
// a softmax over those scores instead of uniformly. Grounded on
// original_source's MastPolicy; sampling uses gonum's sampleuv.Weighted in
// place of a hand-rolled cumulative-sum draw.
type MAST struct {
	rnd    *rand.Rand
	scores [][2][]float32 // [depth][player][moveIdx]
	from   int
}

// NewMAST allocates a table for maxTurns plies and totalMoves move indices
// (game.TotalValidMoveNum()), seeding every entry at the neutral 0.5.
func NewMAST(seed int64, maxTurns, totalMoves int) *MAST {
	scores := make([][2][]float32, maxTurns)
	for d := range scores {
		for player := 0; player < 2; player++ {
			row := make([]float32, totalMoves)
			for i := range row {
				row[i] = 0.5
			}
			scores[d][player] = row
		}
	}
	return &MAST{rnd: rand.New(rand.NewSource(seed)), scores: scores}
}

// Select draws a move by softmax weight and applies it, matching the
// original's MastPolicy::select() contract (select() itself advances the
// game).
func (p *MAST) Select(g game.Game) (moveIdx, childIdx int) {
	moves := g.ValidMoves()
	depth := g.CurrentDepth()
	player := g.NextPlayer()
	row := p.scores[depth][player]

	weights := make([]float64, len(moves))
	for i, mv := range moves {
		mi := g.ToMoveIdx(mv.Piece, mv.Pos)
		weights[i] = float64(math32.Exp(row[mi] / mastTemp))
	}

	idx, ok := sampleuv.NewWeighted(weights, p.rnd).Take()
	if !ok {
		idx = 0
	}
	mv := moves[idx]
	moveIdx = g.ToMoveIdx(mv.Piece, mv.Pos)
	g.Update(moveIdx)
	return moveIdx, idx
}

func (p *MAST) Simulate(g game.Game) float64 {
	for !g.End() {
		p.Select(g)
	}
	outcome := g.Outcome()
	p.learn(g, outcome)
	return outcome
}

// learn updates every move played since the search root with an
// exponential moving average toward its player-perspective outcome value.
func (p *MAST) learn(g game.Game, outcome float64) {
	moves := g.MovesSince(p.from)
	for i, mv := range moves {
		depth := p.from + i
		val := float32(outcome) + float32(mv.Player)*(1-2*float32(outcome))
		mi := g.ToMoveIdx(mv.Piece, mv.Pos)
		cell := &p.scores[depth][mv.Player][mi]
		*cell = mastW*(*cell) + (1-mastW)*val
	}
}

// Reset advances the learning cursor by one ply; called once each time the
// search root moves forward (an opponent move or a committed best move).
func (p *MAST) Reset() { p.from++ }

// Score returns the current learned value for a given ply/player/move
// index, exposed for testing the moving-average bound law.
func (p *MAST) Score(depth, player, moveIdx int) float32 {
	return p.scores[depth][player][moveIdx]
}
