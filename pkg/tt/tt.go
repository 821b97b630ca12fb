// Package tt implements the two Zobrist-keyed transposition table variants
// used by the MCTS driver to share exploration-node statistics across
// transposing search paths: a simple two-slot replacement table and a
// budgeted, leaf-recycling LRU table.
//
// Grounded on original_source's ZHashTableBase/ZHashTable/RZHashTable
// family; the CRTP base-class hierarchy there is replaced by a generic
// Table[T] interface parameterised over the node payload, per spec.md's
// redesign note on CRTP and raw pointer graphs.
package tt

// Visitable is the capability a node payload must expose so a table can
// implement its own depth/visit-count replacement policy without coupling
// to the concrete exploration-node type (pkg/node's UCT-group or RAVE
// nodes both satisfy it).
type Visitable interface {
	VisitCount() float64
}

// Table is the capability set the MCTS driver depends on, common to both
// the two-slot and the recycling variants.
type Table[T Visitable] interface {
	// Select looks up the child reached by applying move m to the current
	// state, without mutating table state. Returns false if absent.
	Select(m int) (*T, bool)
	// Update commits move m: advances the Zobrist state, records the child
	// on the backpropagation path, and increments depth. The child must
	// already exist (as reported by Select).
	Update(m int)
	// Store commits move m for a child not yet present, placing a freshly
	// initialised node (possibly evicting another, per the table's
	// replacement policy) and returning it.
	Store(m int, init func(*T)) *T
	// UpdateRoot re-roots the table at move m, adopting or creating the new
	// root node, and advances RootDepth by exactly one.
	UpdateRoot(m int, init func(*T)) *T
	// Backward undoes the most recent Update/Store, restoring the Zobrist
	// state to the parent and returning the parent node. Returns false once
	// the root has been reached (path drained, state at root).
	Backward() (*T, bool)
	// SetupExploration resets any helper/scratch state used during a
	// playout; called once backpropagation reaches the root.
	SetupExploration()
	// RootDepth is the depth of the search root, non-decreasing across
	// UpdateRoot calls.
	RootDepth() int
	// Root returns the node currently installed as the search root.
	Root() *T
}

// ConfigError indicates an invalid construction argument.
type ConfigError struct {
	Reason string
}

func (e ConfigError) Error() string {
	return "invalid configuration: " + e.Reason
}

// ErrResourceExhausted is raised at construction when the requested table
// size is unrepresentable in memory, per spec.md's ResourceExhausted error
// category.
type ErrResourceExhausted struct {
	Reason string
}

func (e ErrResourceExhausted) Error() string {
	return "resource exhausted: " + e.Reason + " (parameters likely request more memory than available)"
}

// maxTableSize bounds hashCodeSize so a construction request that would
// allocate an implausible number of buckets fails fast with
// ErrResourceExhausted instead of attempting the allocation.
const maxTableSize = 1 << 30

func init() {
	var _ Table[visitCounter] = (*TwoSlot[visitCounter])(nil)
	var _ Table[visitCounter] = (*Recycling[visitCounter])(nil)
}

// visitCounter is a minimal Visitable used only to pin the interface
// satisfaction checks above at compile time.
type visitCounter float64

func (v visitCounter) VisitCount() float64 { return float64(v) }
