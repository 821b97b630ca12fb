package game

import (
	"github.com/hashicorp/go-multierror"
)

const pieceNum = 2

// Omega is the hexagonal stone-placement game: on each ply the player to
// move places a piece of the turn's colour on any empty cell; at game end
// each player's score is the product of same-colour connected-group sizes,
// grouped by piece colour rather than by which player placed the stone.
//
// Grounded on original_source's Omega2 class; checkpoint/selectRoot replace
// the original's two-instance assign() pattern with an internal snapshot,
// and the taken/valid move freelists are the index-addressed moveList.
type Omega struct {
	boardSize int
	cellNum   int

	neighbours [][]int

	moves *moveList

	// mark flips meaning every call to computeScores, so hexagon visitation
	// state never needs an O(cellNum) reset between calls.
	hexMark  []bool
	mark     bool
	bfsQueue []int

	numSteps int // remaining plies before the game ends
	maxTurns int

	nextPlayer int
	nextPiece  int
	depth      int

	history []Move

	root omegaSnapshot
}

type omegaSnapshot struct {
	moves      moveListSnapshot
	hexMark    []bool
	mark       bool
	numSteps   int
	nextPlayer int
	nextPiece  int
	depth      int
	history    []Move
}

// NewOmega builds a board of the given radius (boardSize >= 2). Returns a
// ConfigError if the board is too small to play a single full turn.
func NewOmega(boardSize int) (*Omega, error) {
	if boardSize < 2 {
		return nil, multierror.Append(nil, ConfigError{Reason: "boardSize must be at least 2"}).ErrorOrNil()
	}

	cellNum := computeCellNum(boardSize)
	_, neighbours := buildTopology(boardSize)

	maxTurns := cellNum - cellNum%4 // every player gets an equal number of placements

	g := &Omega{
		boardSize:  boardSize,
		cellNum:    cellNum,
		neighbours: neighbours,
		moves:      newMoveList(cellNum),
		hexMark:    make([]bool, cellNum),
		mark:       true,
		bfsQueue:   make([]int, maxTurns),
		numSteps:   maxTurns,
		maxTurns:   maxTurns,
		history:    make([]Move, maxTurns),
	}
	g.Checkpoint()
	return g, nil
}

func (g *Omega) PieceNum() int { return pieceNum }

func (g *Omega) ValidMoves() []Move {
	moves := make([]Move, 0, g.moves.emptySize)
	g.moves.walkEmpty(func(pos int) {
		moves = append(moves, Move{Player: g.nextPlayer, Piece: g.nextPiece, Pos: pos})
	})
	return moves
}

func (g *Omega) CurrentDepth() int { return g.depth }

func (g *Omega) NextPlayer() int { return g.nextPlayer }

func (g *Omega) ToMoveIdx(piece, pos int) int { return pos + piece*g.cellNum }
func (g *Omega) ToPos(m int) int              { return m % g.cellNum }
func (g *Omega) ToPiece(m int) int            { return m / g.cellNum }

func (g *Omega) Update(m int) {
	pos := g.ToPos(m)
	g.moves.add(g.nextPlayer, g.nextPiece, pos)
	g.hexMark[pos] = g.mark

	g.history[g.depth] = Move{Player: g.nextPlayer, Piece: g.nextPiece, Pos: pos}

	g.numSteps--
	g.depth++
	g.nextPiece = g.depth & 1
	g.nextPlayer = (g.depth & 2) >> 1
}

func (g *Omega) Undo() {
	_, _, pos := g.moves.lastTaken()
	g.moves.undo(pos)

	g.numSteps++
	g.depth--
	g.nextPiece = g.depth & 1
	g.nextPlayer = (g.depth & 2) >> 1
}

func (g *Omega) End() bool {
	return g.numSteps == 0 || g.depth >= g.maxTurns
}

// Outcome computes the group-product scores for both piece colours and
// compares them; defined only when End() holds.
func (g *Omega) Outcome() float64 {
	scores := g.computeScores()
	switch {
	case scores[0] > scores[1]:
		return 1.0
	case scores[0] < scores[1]:
		return 0.0
	default:
		return 0.5
	}
}

func (g *Omega) computeScores() [2]float64 {
	var playerScores [2]float64
	playerScores[0], playerScores[1] = 1, 1

	start, end := 0, 0
	g.moves.walkTaken(func(player, piece, pos int) {
		if g.hexMark[pos] != g.mark {
			return
		}
		groupSize := 0
		g.hexMark[pos] = !g.mark
		g.bfsQueue[end] = pos
		end++
		groupSize++

		for end-start > 0 {
			cur := g.bfsQueue[start]
			for _, nb := range g.neighbours[cur] {
				if g.hexMark[nb] == g.mark && g.taken(nb).piece == piece {
					g.hexMark[nb] = !g.mark
					g.bfsQueue[end] = nb
					end++
					groupSize++
				}
			}
			start++
		}
		playerScores[piece] *= float64(groupSize)
	})

	g.moves.walkEmpty(func(pos int) {
		g.hexMark[pos] = !g.mark
	})

	g.mark = !g.mark
	return playerScores
}

func (g *Omega) taken(pos int) moveNode {
	return g.moves.nodes[pos]
}

func (g *Omega) SelectRoot() {
	g.moves.restore(g.root.moves)
	copy(g.hexMark, g.root.hexMark)
	g.mark = g.root.mark
	g.numSteps = g.root.numSteps
	g.nextPlayer = g.root.nextPlayer
	g.nextPiece = g.root.nextPiece
	g.depth = g.root.depth
	copy(g.history, g.root.history)
}

func (g *Omega) Checkpoint() {
	hexMark := make([]bool, len(g.hexMark))
	copy(hexMark, g.hexMark)
	history := make([]Move, len(g.history))
	copy(history, g.history)

	g.root = omegaSnapshot{
		moves:      g.moves.snapshot(),
		hexMark:    hexMark,
		mark:       g.mark,
		numSteps:   g.numSteps,
		nextPlayer: g.nextPlayer,
		nextPiece:  g.nextPiece,
		depth:      g.depth,
		history:    history,
	}
}

func (g *Omega) AvailablePieces() []int { return []int{g.nextPiece} }

func (g *Omega) PieceMaxMoveNum(piece int) int { return g.cellNum }

func (g *Omega) LastMoveIdx() int {
	_, piece, pos := g.moves.lastTaken()
	return g.ToMoveIdx(piece, pos)
}

func (g *Omega) MovesSince(from int) []Move {
	return g.history[from:g.depth]
}

func (g *Omega) TotalValidMoveNum() int { return g.cellNum * pieceNum }
func (g *Omega) MaxValidMoveNum() int   { return g.cellNum }
func (g *Omega) MaxTurnNum() int        { return g.maxTurns }

func (g *Omega) NumExpectedMoves() int {
	if g.numSteps <= 0 {
		return 1
	}
	return g.numSteps
}

// ConfigError indicates an invalid construction argument.
type ConfigError struct {
	Reason string
}

func (e ConfigError) Error() string {
	return "invalid configuration: " + e.Reason
}
