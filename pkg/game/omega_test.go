package game_test

import (
	"testing"

	"github.com/aenteas/omega/pkg/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOmega_RejectsTooSmallBoard(t *testing.T) {
	_, err := game.NewOmega(1)
	require.Error(t, err)

	var ce game.ConfigError
	assert.ErrorAs(t, err, &ce)
}

func TestOmega_MoveIdxBijection(t *testing.T) {
	g, err := game.NewOmega(3)
	require.NoError(t, err)

	for piece := 0; piece < g.PieceNum(); piece++ {
		for pos := 0; pos < g.MaxValidMoveNum(); pos++ {
			m := g.ToMoveIdx(piece, pos)
			assert.Equal(t, piece, g.ToPiece(m))
			assert.Equal(t, pos, g.ToPos(m))
		}
	}
}

func TestOmega_TurnOrderIsTwoPiecesPerPlayer(t *testing.T) {
	g, err := game.NewOmega(3)
	require.NoError(t, err)

	var pieces, players []int
	for i := 0; i < 6; i++ {
		pieces = append(pieces, g.AvailablePieces()[0])
		players = append(players, g.NextPlayer())

		moves := g.ValidMoves()
		require.NotEmpty(t, moves)
		g.Update(g.ToMoveIdx(moves[0].Piece, moves[0].Pos))
	}

	assert.Equal(t, []int{0, 1, 0, 1, 0, 1}, pieces)
	assert.Equal(t, []int{0, 0, 1, 1, 0, 0}, players)
}

func TestOmega_UpdateUndoIsInverse(t *testing.T) {
	g, err := game.NewOmega(3)
	require.NoError(t, err)

	before := g.ValidMoves()
	depthBefore := g.CurrentDepth()
	playerBefore := g.NextPlayer()

	m := g.ToMoveIdx(before[0].Piece, before[0].Pos)
	g.Update(m)
	g.Undo()

	assert.Equal(t, depthBefore, g.CurrentDepth())
	assert.Equal(t, playerBefore, g.NextPlayer())
	assert.ElementsMatch(t, before, g.ValidMoves())
}

func TestOmega_SelectRootRestoresCheckpoint(t *testing.T) {
	g, err := game.NewOmega(3)
	require.NoError(t, err)

	moves := g.ValidMoves()
	g.Update(g.ToMoveIdx(moves[0].Piece, moves[0].Pos))
	g.Checkpoint()

	rootDepth := g.CurrentDepth()
	rootMoves := g.ValidMoves()

	more := g.ValidMoves()
	g.Update(g.ToMoveIdx(more[0].Piece, more[0].Pos))
	more = g.ValidMoves()
	g.Update(g.ToMoveIdx(more[0].Piece, more[0].Pos))

	g.SelectRoot()

	assert.Equal(t, rootDepth, g.CurrentDepth())
	assert.ElementsMatch(t, rootMoves, g.ValidMoves())
}

func TestOmega_EndAfterLastFullRound(t *testing.T) {
	g, err := game.NewOmega(2)
	require.NoError(t, err)

	for !g.End() {
		moves := g.ValidMoves()
		require.NotEmpty(t, moves)
		g.Update(g.ToMoveIdx(moves[0].Piece, moves[0].Pos))
	}

	outcome := g.Outcome()
	assert.GreaterOrEqual(t, outcome, 0.0)
	assert.LessOrEqual(t, outcome, 1.0)
}

func TestOmega_MovesSinceTracksDepthWindow(t *testing.T) {
	g, err := game.NewOmega(3)
	require.NoError(t, err)

	from := g.CurrentDepth()
	for i := 0; i < 3; i++ {
		moves := g.ValidMoves()
		g.Update(g.ToMoveIdx(moves[0].Piece, moves[0].Pos))
	}

	since := g.MovesSince(from)
	assert.Len(t, since, 3)
}

func TestOmega_TotalValidMoveNumCoversBothPieces(t *testing.T) {
	g, err := game.NewOmega(3)
	require.NoError(t, err)

	assert.Equal(t, g.MaxValidMoveNum()*g.PieceNum(), g.TotalValidMoveNum())
}
