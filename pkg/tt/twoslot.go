package tt

import "github.com/aenteas/omega/pkg/zobrist"

type hashNode[T Visitable] struct {
	impl  T
	key   uint64
	code  uint64
	depth int
}

type bucket[T Visitable] [2]*hashNode[T]

// TwoSlot is the simple two-slot-per-bucket replacement table: each bucket
// holds up to two hash nodes; a third collision evicts the slot judged
// least useful by the Replacement Rule (unreachable above root, else
// deeper, else fewer visits), per spec.md §4.2.
//
// Grounded on original_source's ZHashTable; the evicted slot's raw-pointer
// swap-to-helper trick is kept (so an evicted ancestor remains reachable
// for the rest of the current playout's backpropagation) but the
// backpropagation path is an explicit slice rather than parent pointers.
type TwoSlot[T Visitable] struct {
	zt    *zobrist.Table
	state zobrist.State

	buckets []bucket[T]
	helper  *hashNode[T]
	rp      *hashNode[T] // fallback returned by Select once a node has been evicted this playout

	rootNode  *hashNode[T]
	rootDepth int
	depth     int
	path      []*hashNode[T]
}

// NewTwoSlot builds a table sized 2^B buckets from the Zobrist table's
// mask, seeding the root payload via newNode.
func NewTwoSlot[T Visitable](zt *zobrist.Table, maxDepth int, newNode func(*T)) (*TwoSlot[T], error) {
	size := zt.Mask() + 1
	if size > maxTableSize {
		return nil, ErrResourceExhausted{Reason: "hashCodeSize requests an oversized bucket array"}
	}

	root := &hashNode[T]{}
	newNode(&root.impl)

	return &TwoSlot[T]{
		zt:       zt,
		buckets:  make([]bucket[T], size),
		helper:   &hashNode[T]{},
		rootNode: root,
		path:     make([]*hashNode[T], 0, maxDepth+1),
	}, nil
}

func (t *TwoSlot[T]) RootDepth() int { return t.rootDepth }

func (t *TwoSlot[T]) Root() *T { return &t.rootNode.impl }

func (t *TwoSlot[T]) lookupAt(code, key uint64) *hashNode[T] {
	b := &t.buckets[code]
	for _, n := range b {
		if n != nil && n.key == key {
			return n
		}
	}
	return nil
}

func (t *TwoSlot[T]) lookupChild(m int) *hashNode[T] {
	code := t.state.Code ^ t.zt.Code(m)
	key := t.state.Key ^ t.zt.Key(m)
	if n := t.lookupAt(code, key); n != nil {
		return n
	}
	return t.rp
}

func (t *TwoSlot[T]) Select(m int) (*T, bool) {
	n := t.lookupChild(m)
	if n == nil {
		return nil, false
	}
	return &n.impl, true
}

func (t *TwoSlot[T]) Update(m int) {
	n := t.lookupChild(m)
	t.state = t.zt.Apply(t.state, m)
	t.depth++
	t.path = append(t.path, n)
}

// place installs a node at (code, key) per the Replacement Rule, swapping
// any evicted slot into the helper scratch node.
func (t *TwoSlot[T]) place(code, key uint64, depth int, init func(*T)) *hashNode[T] {
	b := &t.buckets[code]
	var target *hashNode[T]
	switch {
	case b[0] == nil:
		b[0] = &hashNode[T]{}
		target = b[0]
	case b[1] == nil:
		b[1] = &hashNode[T]{}
		target = b[1]
	default:
		i := t.replacementSlot(b)
		b[i], t.helper = t.helper, b[i]
		target = b[i]
		t.rp = t.helper
	}
	target.key, target.code, target.depth = key, code, depth
	init(&target.impl)
	return target
}

// replacementSlot implements the ordered Replacement Rule: a slot above
// (or at) the current root is unreachable and evicted first; otherwise the
// deeper slot; ties broken by the smaller visit count.
func (t *TwoSlot[T]) replacementSlot(b *bucket[T]) int {
	if b[0].depth <= t.rootDepth {
		return 0
	}
	if b[1].depth <= t.rootDepth {
		return 1
	}
	if b[0].depth != b[1].depth {
		if b[0].depth > b[1].depth {
			return 0
		}
		return 1
	}
	if b[0].impl.VisitCount() < b[1].impl.VisitCount() {
		return 0
	}
	return 1
}

func (t *TwoSlot[T]) Store(m int, init func(*T)) *T {
	t.state = t.zt.Apply(t.state, m)
	t.depth++
	target := t.place(t.state.Code, t.state.Key, t.depth, init)
	t.path = append(t.path, target)
	return &target.impl
}

func (t *TwoSlot[T]) UpdateRoot(m int, init func(*T)) *T {
	t.state = t.zt.Apply(t.state, m)
	code, key := t.state.Code, t.state.Key

	target := t.lookupAt(code, key)
	if target == nil {
		target = t.place(code, key, t.rootDepth+1, init)
	}

	t.rootDepth++
	t.depth = t.rootDepth
	t.rootNode = target
	t.rp = nil
	t.path = t.path[:0]
	return &target.impl
}

func (t *TwoSlot[T]) Backward() (*T, bool) {
	if t.depth <= t.rootDepth {
		t.SetupExploration()
		return nil, false
	}

	t.path = t.path[:len(t.path)-1]
	t.depth--

	var parent *hashNode[T]
	if len(t.path) == 0 {
		parent = t.rootNode
	} else {
		parent = t.path[len(t.path)-1]
	}
	t.state = zobrist.State{Code: parent.code, Key: parent.key}
	return &parent.impl, true
}

func (t *TwoSlot[T]) SetupExploration() {
	t.rp = nil
}
