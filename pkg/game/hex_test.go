package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeCellNum(t *testing.T) {
	// boardSize=2: a 7-cell single-ring hex board (centre + 6 neighbours).
	assert.Equal(t, 7, computeCellNum(2))
}

func TestBuildTopology_NeighbourCountsAndSymmetry(t *testing.T) {
	boardSize := 3
	axes, neighbours := buildTopology(boardSize)
	cellNum := computeCellNum(boardSize)

	assert.Len(t, axes, cellNum)
	assert.Len(t, neighbours, cellNum)

	for i, nbs := range neighbours {
		assert.LessOrEqual(t, len(nbs), 6)
		for _, j := range nbs {
			assert.Contains(t, neighbours[j], i, "neighbour relation must be symmetric")
		}
	}
}
