package mcts

import (
	"fmt"

	"github.com/awalterschulze/gographviz"
)

// DOT renders the root and its immediate children (the only nodes directly
// reachable without re-running selection) as a Graphviz DOT graph, for
// offline inspection of a small search tree. Must be called with the game
// at the search root; not on the search hot path.
func (d *Driver[N, PN]) DOT() (string, error) {
	g := gographviz.NewGraph()
	if err := g.SetName("mcts"); err != nil {
		return "", fmt.Errorf("dot: %w", err)
	}
	if err := g.SetDir(true); err != nil {
		return "", fmt.Errorf("dot: %w", err)
	}

	rootLabel := fmt.Sprintf("%q", fmt.Sprintf("root\\nvisits=%.0f", d.root.VisitCount()))
	if err := g.AddNode("mcts", "root", map[string]string{"label": rootLabel}); err != nil {
		return "", fmt.Errorf("dot: %w", err)
	}

	game := d.ctx.Game
	for i, mv := range game.ValidMoves() {
		moveIdx := game.ToMoveIdx(mv.Piece, mv.Pos)
		child, found := d.ctx.Table.Select(moveIdx)
		if !found {
			continue
		}

		name := fmt.Sprintf("c%d", i)
		label := fmt.Sprintf("%q", fmt.Sprintf("piece=%d pos=%d\\nvisits=%.0f", mv.Piece, mv.Pos, child.VisitCount()))
		if err := g.AddNode("mcts", name, map[string]string{"label": label}); err != nil {
			return "", fmt.Errorf("dot: %w", err)
		}
		if err := g.AddEdge("root", name, true, nil); err != nil {
			return "", fmt.Errorf("dot: %w", err)
		}
	}

	return g.String(), nil
}
