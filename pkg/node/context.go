package node

import (
	"github.com/aenteas/omega/pkg/game"
	"github.com/aenteas/omega/pkg/policy"
	"github.com/aenteas/omega/pkg/tt"
)

// Context bundles the collaborators threaded through every node call: the
// shared game, its transposition table, and the simulation policy used to
// seed a freshly expanded leaf. Both UCT and RAVE instantiate this with
// their own node type, rather than each declaring a bespoke context -
// per spec.md §9's "no global/static node state" note, the driver owns and
// passes this explicitly instead of nodes reaching for package state.
type Context[N tt.Visitable] struct {
	Game   game.Game
	Table  tt.Table[N]
	Policy policy.Policy
}
