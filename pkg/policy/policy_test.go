package policy_test

import (
	"testing"

	"github.com/aenteas/omega/pkg/game"
	"github.com/aenteas/omega/pkg/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandom_SimulatePlaysToEndAndReturnsValidOutcome(t *testing.T) {
	g, err := game.NewOmega(2)
	require.NoError(t, err)

	p := policy.NewRandom(1)
	outcome := p.Simulate(g)

	assert.True(t, g.End())
	assert.Contains(t, []float64{0.0, 0.5, 1.0}, outcome)
}

func TestMAST_SimulatePlaysToEndAndReturnsValidOutcome(t *testing.T) {
	g, err := game.NewOmega(2)
	require.NoError(t, err)

	p := policy.NewMAST(1, g.MaxTurnNum(), g.TotalValidMoveNum())
	outcome := p.Simulate(g)

	assert.True(t, g.End())
	assert.Contains(t, []float64{0.0, 0.5, 1.0}, outcome)
}

func TestMAST_LearnedScoresStayWithinUnitInterval(t *testing.T) {
	g, err := game.NewOmega(2)
	require.NoError(t, err)

	p := policy.NewMAST(1, g.MaxTurnNum(), g.TotalValidMoveNum())
	for i := 0; i < 20; i++ {
		g2, err := game.NewOmega(2)
		require.NoError(t, err)
		outcome := p.Simulate(g2)
		assert.GreaterOrEqual(t, outcome, 0.0)
		assert.LessOrEqual(t, outcome, 1.0)
		p.Reset()
	}

	for depth := 0; depth < g.MaxTurnNum(); depth++ {
		for player := 0; player < 2; player++ {
			for mi := 0; mi < g.TotalValidMoveNum(); mi++ {
				score := p.Score(depth, player, mi)
				assert.GreaterOrEqual(t, score, float32(0))
				assert.LessOrEqual(t, score, float32(1))
			}
		}
	}
}
