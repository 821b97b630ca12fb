package node_test

import (
	"testing"

	"github.com/aenteas/omega/pkg/node"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// With every root child unvisited, every candidate carries the same
// optimistic mean and the same per-child visit count, so actionScoreUCT
// ties across the board; Select must then pick the first move in
// iteration order and report it as not found (never yet stored in the
// table).
func TestUCT_SelectOnAllUnvisitedChildrenPicksFirstByIterationOrder(t *testing.T) {
	g, _, ctx := newUCTFixture(t)

	moves := g.ValidMoves()
	require.NotEmpty(t, moves)
	want := g.ToMoveIdx(moves[0].Piece, moves[0].Pos)

	root := &node.UCT{}
	node.ResetUCT(root, g)

	_, found := root.Select(ctx)

	assert.False(t, found, "no child has been stored yet")
	assert.Equal(t, want, g.LastMoveIdx(), "ties must break toward the first move in iteration order")
}
