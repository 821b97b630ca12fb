package scheduler_test

import (
	"testing"
	"time"

	"github.com/aenteas/omega/pkg/game"
	"github.com/aenteas/omega/pkg/node"
	"github.com/aenteas/omega/pkg/scheduler"
	"github.com/aenteas/omega/pkg/tt"
	"github.com/aenteas/omega/pkg/zobrist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTableFixture(t *testing.T) (*game.Omega, *tt.TwoSlot[node.UCT]) {
	t.Helper()
	g, err := game.NewOmega(2)
	require.NoError(t, err)
	zt, err := zobrist.NewTable(g.TotalValidMoveNum(), 12, 3)
	require.NoError(t, err)
	table, err := tt.NewTwoSlot[node.UCT](zt, g.MaxTurnNum(), func(n *node.UCT) { node.ResetUCT(n, g) })
	require.NoError(t, err)
	return g, table
}

func TestParabolic_RejectsInvalidFreqAndReserveTime(t *testing.T) {
	g, table := newTableFixture(t)

	_, err := scheduler.NewParabolic[node.UCT](g, table, 0.9, 1, 2000*time.Millisecond)
	require.Error(t, err)

	_, err = scheduler.NewParabolic[node.UCT](g, table, 0.9, 100, 0)
	require.Error(t, err)
}

func TestParabolic_ScheduleSetsAPositiveBudget(t *testing.T) {
	g, table := newTableFixture(t)

	s, err := scheduler.NewParabolic[node.UCT](g, table, 0.9, 2, 200*time.Millisecond)
	require.NoError(t, err)

	s.Schedule(5 * time.Second)
	// freq=2: the first call never reads the clock; the second compares the
	// elapsed time against the budget.
	s.Finish()
	assert.False(t, s.Finish(), "a generous budget should not stop the search at the first sampled playout")
}

func TestParabolic_FinishesImmediatelyWhenBudgetIsExhausted(t *testing.T) {
	g, table := newTableFixture(t)

	s, err := scheduler.NewParabolic[node.UCT](g, table, 0.9, 2, 2000*time.Millisecond)
	require.NoError(t, err)

	// timeLeft below reserveTime collapses the budget to ~0.
	s.Schedule(1 * time.Millisecond)
	// freq=2 means Finish only samples every second call.
	s.Finish()
	assert.True(t, s.Finish())
}

func TestEven_RejectsInvalidConstructionArgs(t *testing.T) {
	g, _ := newTableFixture(t)

	_, err := scheduler.NewEven(g, 1, 2000*time.Millisecond)
	require.Error(t, err)

	_, err = scheduler.NewEven(g, 100, 0)
	require.Error(t, err)
}

func TestEven_DividesRemainingTimeAcrossExpectedMoves(t *testing.T) {
	g, _ := newTableFixture(t)

	s, err := scheduler.NewEven(g, 2, 200*time.Millisecond)
	require.NoError(t, err)

	// 4800ms over 4 expected moves is 1200ms per move; the second call is
	// the first one that compares the elapsed time against it.
	s.Schedule(5 * time.Second)
	s.Finish()
	assert.False(t, s.Finish())
}
