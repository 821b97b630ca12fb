package tt_test

import (
	"testing"

	"github.com/aenteas/omega/pkg/tt"
	"github.com/aenteas/omega/pkg/zobrist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecycling_ConstructsWhenLoadFactorAndBudgetAreValid(t *testing.T) {
	zt, err := zobrist.NewTable(200, 8, 1) // 2^8 = 256 buckets
	require.NoError(t, err)

	_, err = tt.NewRecycling[statNode](zt, 30, 50, newStatNode) // 2*50 <= 256, 50 >= 31
	assert.NoError(t, err)
}

func TestRecycling_RejectsLoadFactorAboveHalf(t *testing.T) {
	zt, err := zobrist.NewTable(4, 8, 2) // 2^8 = 256 buckets
	require.NoError(t, err)

	_, err = tt.NewRecycling[statNode](zt, 8, 200, newStatNode) // 2*200 > 256
	require.Error(t, err)

	var ce tt.ConfigError
	assert.ErrorAs(t, err, &ce)
}

func TestRecycling_RejectsBudgetSmallerThanMaxDepth(t *testing.T) {
	zt, err := zobrist.NewTable(4, 8, 3)
	require.NoError(t, err)

	_, err = tt.NewRecycling[statNode](zt, 30, 10, newStatNode) // budget < maxDepth+1
	require.Error(t, err)

	var ce tt.ConfigError
	assert.ErrorAs(t, err, &ce)
}

func TestRecycling_StoreThenSelectFindsChild(t *testing.T) {
	zt, err := zobrist.NewTable(16, 8, 4) // 2^8 = 256 buckets
	require.NoError(t, err)

	table, err := tt.NewRecycling[statNode](zt, 8, 20, newStatNode)
	require.NoError(t, err)

	_, found := table.Select(5)
	assert.False(t, found)

	table.Store(5, newStatNode)
	table.Backward() // Store committed move 5; step back to the root to look the child up
	_, found = table.Select(5)
	assert.True(t, found)
}

func TestRecycling_UpdateRootIsMonotoneAndDrainsPath(t *testing.T) {
	zt, err := zobrist.NewTable(16, 8, 5)
	require.NoError(t, err)

	table, err := tt.NewRecycling[statNode](zt, 8, 20, newStatNode)
	require.NoError(t, err)

	prev := table.RootDepth()
	for i := 0; i < 6; i++ {
		table.UpdateRoot(i, newStatNode)
		assert.Greater(t, table.RootDepth(), prev)
		prev = table.RootDepth()

		// path/depth are reset to the new root baseline: an immediate
		// Backward call must report nothing left to unwind.
		_, ok := table.Backward()
		assert.False(t, ok)
	}
}

func TestRecycling_BackwardDrainsPathToRoot(t *testing.T) {
	zt, err := zobrist.NewTable(16, 8, 6)
	require.NoError(t, err)

	table, err := tt.NewRecycling[statNode](zt, 8, 20, newStatNode)
	require.NoError(t, err)

	table.Store(1, newStatNode)
	table.Store(2, newStatNode)

	steps := 0
	for {
		_, ok := table.Backward()
		if !ok {
			break
		}
		steps++
	}
	assert.Equal(t, 2, steps)
}
