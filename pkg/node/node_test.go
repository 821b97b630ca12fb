package node_test

import (
	"testing"

	"github.com/aenteas/omega/pkg/game"
	"github.com/aenteas/omega/pkg/node"
	"github.com/aenteas/omega/pkg/policy"
	"github.com/aenteas/omega/pkg/tt"
	"github.com/aenteas/omega/pkg/zobrist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUCTFixture(t *testing.T) (*game.Omega, *tt.TwoSlot[node.UCT], *node.Context[node.UCT]) {
	t.Helper()

	g, err := game.NewOmega(2)
	require.NoError(t, err)

	zt, err := zobrist.NewTable(g.TotalValidMoveNum(), 12, 7)
	require.NoError(t, err)

	table, err := tt.NewTwoSlot[node.UCT](zt, g.MaxTurnNum(), func(n *node.UCT) { node.ResetUCT(n, g) })
	require.NoError(t, err)

	ctx := &node.Context[node.UCT]{Game: g, Table: table, Policy: policy.NewRandom(1)}
	return g, table, ctx
}

func TestUCT_OnePlayoutSelectExpandSimulateBackprop(t *testing.T) {
	g, table, ctx := newUCTFixture(t)

	current := table.Root()

	leafDepth := g.CurrentDepth()
	for {
		child, found := current.Select(ctx)
		if !found {
			break
		}
		current = child
		leafDepth = g.CurrentDepth()
		if g.End() {
			break
		}
	}

	// Like the driver, capture the leaf depth at the bottom of selection,
	// before Expand's seeding step advances the game one more ply.
	leafDepth = g.CurrentDepth()
	leaf := current
	if !g.End() {
		leaf = current.Expand(ctx)
	}

	p := policy.NewRandom(2)
	outcome := p.Simulate(g)

	leaf.Backprop(ctx, outcome, leafDepth)

	assert.Equal(t, 0, g.CurrentDepth(), "backprop must undo back to the search root")
}

func newRAVEFixture(t *testing.T) (*game.Omega, *tt.TwoSlot[node.RAVE], *node.Context[node.RAVE]) {
	t.Helper()

	g, err := game.NewOmega(2)
	require.NoError(t, err)

	zt, err := zobrist.NewTable(g.TotalValidMoveNum(), 12, 9)
	require.NoError(t, err)

	table, err := tt.NewTwoSlot[node.RAVE](zt, g.MaxTurnNum(), func(n *node.RAVE) { node.ResetRAVE(n, g) })
	require.NoError(t, err)

	ctx := &node.Context[node.RAVE]{Game: g, Table: table, Policy: policy.NewRandom(1)}
	return g, table, ctx
}

func TestRAVE_OnePlayoutSelectExpandSimulateBackprop(t *testing.T) {
	g, table, ctx := newRAVEFixture(t)

	current := table.Root()

	leafDepth := g.CurrentDepth()
	for {
		child, found := current.Select(ctx)
		if !found {
			break
		}
		current = child
		leafDepth = g.CurrentDepth()
		if g.End() {
			break
		}
	}

	leaf := current
	if !g.End() {
		leaf = current.Expand(ctx)
		leafDepth = g.CurrentDepth()
	}

	p := policy.NewRandom(2)
	outcome := p.Simulate(g)

	leaf.Backprop(ctx, outcome, leafDepth)

	assert.Equal(t, 0, g.CurrentDepth(), "backprop must undo back to the search root")
}
