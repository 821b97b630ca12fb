package tt_test

import (
	"testing"

	"github.com/aenteas/omega/pkg/tt"
	"github.com/aenteas/omega/pkg/zobrist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Two distinct move sequences reaching the same position (m1 then m2, vs m2
// then m1 - XOR commutes) must collide on the same (code, key) fingerprint
// and therefore share the same stored node: Select after either ordering
// returns the identical pointer, so per-node statistics (visit counts)
// accumulate across both paths instead of being split.
func TestTwoSlot_TranspositionsShareTheSameNode(t *testing.T) {
	zt, err := zobrist.NewTable(8, 10, 5)
	require.NoError(t, err)

	table, err := tt.NewTwoSlot[statNode](zt, 8, newStatNode)
	require.NoError(t, err)

	m1, m2 := 1, 4

	// Path A: root -m1-> -m2-> child.
	table.Store(m1, newStatNode)
	viaA := table.Store(m2, newStatNode)

	// Rewind to the root.
	_, ok := table.Backward()
	require.True(t, ok)
	_, ok = table.Backward()
	require.True(t, ok)

	// Path B: root -m2-> -m1-> child. The second hop should already exist.
	table.Store(m2, newStatNode)
	viaB, found := table.Select(m1)

	require.True(t, found, "the transposed position must already be in the table")
	assert.Same(t, viaA, viaB, "both orderings of the same moves must resolve to one shared node")
}
