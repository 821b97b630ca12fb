package tt_test

import (
	"testing"

	"github.com/aenteas/omega/pkg/tt"
	"github.com/aenteas/omega/pkg/zobrist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statNode struct {
	visits int
}

// VisitCount uses a value receiver (not *statNode) so statNode itself, not
// just *statNode, satisfies tt.Visitable - required by T Visitable generic
// instantiation.
func (n statNode) VisitCount() float64 { return float64(n.visits) }

func newStatNode(n *statNode) { *n = statNode{} }

func TestTwoSlot_StoreThenSelectFindsChild(t *testing.T) {
	zt, err := zobrist.NewTable(8, 6, 1)
	require.NoError(t, err)

	table, err := tt.NewTwoSlot[statNode](zt, 8, newStatNode)
	require.NoError(t, err)

	_, found := table.Select(3)
	assert.False(t, found)

	table.Store(3, newStatNode)
	table.Backward() // Store committed move 3; step back to the root to look the child up
	child, found := table.Select(3)
	require.True(t, found)
	assert.NotNil(t, child)
}

func TestTwoSlot_BackwardDrainsPathToRoot(t *testing.T) {
	zt, err := zobrist.NewTable(8, 6, 2)
	require.NoError(t, err)

	table, err := tt.NewTwoSlot[statNode](zt, 8, newStatNode)
	require.NoError(t, err)

	table.Store(1, newStatNode)
	table.Store(4, newStatNode)

	steps := 0
	for {
		_, ok := table.Backward()
		if !ok {
			break
		}
		steps++
	}

	assert.Equal(t, 2, steps, "one Backward per Store call until the root is reached")

	// a further Backward at the root is a no-op, not a panic.
	_, ok := table.Backward()
	assert.False(t, ok)
}

func TestTwoSlot_UpdateRootIsMonotone(t *testing.T) {
	zt, err := zobrist.NewTable(8, 6, 3)
	require.NoError(t, err)

	table, err := tt.NewTwoSlot[statNode](zt, 8, newStatNode)
	require.NoError(t, err)

	prev := table.RootDepth()
	for i := 0; i < 5; i++ {
		table.UpdateRoot(i, newStatNode)
		assert.Greater(t, table.RootDepth(), prev)
		prev = table.RootDepth()
	}
}

func TestTwoSlot_ResourceExhaustedOnOversizedTable(t *testing.T) {
	// hashCodeSize large enough that 2^B exceeds the table's sanity bound.
	zt, err := zobrist.NewTable(4, 31, 4)
	require.NoError(t, err)

	_, err = tt.NewTwoSlot[statNode](zt, 8, newStatNode)
	require.Error(t, err)

	var re tt.ErrResourceExhausted
	assert.ErrorAs(t, err, &re)
}
