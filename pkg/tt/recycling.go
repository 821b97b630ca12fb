package tt

import (
	"fmt"

	"github.com/aenteas/omega/pkg/zobrist"
)

type rNode[T Visitable] struct {
	impl T
	key  uint64
	code uint64
}

// Recycling is the budgeted, leaf-recycling LRU transposition table: open
// addressing with linear probing over a 2^B bucket array, backed by a
// fixed-capacity arena LRU list that evicts the least-recently-visited
// leaf when the budget is full. Grounded on original_source's
// RZHashTable/ParallelList; the "no-tombstone" deletion-shift loop and
// insertion-target cursor are carried over exactly, per spec.md §4.3.
type Recycling[T Visitable] struct {
	zt    *zobrist.Table
	state zobrist.State

	fifo  *arenaList[rNode[T]]
	table []int // bucket -> fifo index, or -1 when vacant

	target int    // insertion-target cursor: new nodes splice in just before it
	code   uint64 // last linear-probe result, reused by a following Store

	rootDepth int
	depth     int
	path      []int
}

// NewRecycling builds a table with 2^B buckets (from zt's mask) and a
// budget-sized LRU arena. Returns ConfigError if the load factor would
// exceed 0.5 or the budget can't hold a full selection path, and
// ErrResourceExhausted if the bucket array would be implausibly large.
func NewRecycling[T Visitable](zt *zobrist.Table, maxDepth, budget int, newNode func(*T)) (*Recycling[T], error) {
	tableSize := int(zt.Mask()) + 1
	if tableSize < 2*budget {
		return nil, ConfigError{Reason: "load factor should not exceed 0.5"}
	}
	if budget < maxDepth+1 {
		return nil, ConfigError{Reason: fmt.Sprintf("budget should be greater than %d", maxDepth)}
	}
	if tableSize > maxTableSize {
		return nil, ErrResourceExhausted{Reason: "hashCodeSize requests an oversized bucket array"}
	}

	fifo := newArenaList[rNode[T]](budget)
	table := make([]int, tableSize)
	for i := range table {
		table[i] = -1
	}

	r := &Recycling[T]{
		zt:    zt,
		fifo:  fifo,
		table: table,
		path:  make([]int, 0, maxDepth+1),
	}

	rootIdx := fifo.back()
	newNode(&fifo.data[rootIdx].impl)
	fifo.data[rootIdx].code, fifo.data[rootIdx].key = 0, 0
	table[0] = rootIdx
	r.target = rootIdx

	return r, nil
}

func (r *Recycling[T]) RootDepth() int { return r.rootDepth }

func (r *Recycling[T]) Root() *T { return &r.fifo.data[r.fifo.back()].impl }

func (r *Recycling[T]) mask() uint64 { return r.zt.Mask() }

// probe linearly scans buckets starting at code until it finds key or an
// empty slot; it returns the arena index (or -1) and the final probed
// bucket position, which the caller caches in r.code for a following Store
// to reuse without re-probing.
func (r *Recycling[T]) probe(code, key uint64) (idx int, finalCode uint64, found bool) {
	for r.table[code] != -1 {
		if r.fifo.data[r.table[code]].key == key {
			return r.table[code], code, true
		}
		code = (code + 1) & r.mask()
	}
	return -1, code, false
}

func (r *Recycling[T]) Select(m int) (*T, bool) {
	c := r.state.Code ^ r.zt.Code(m)
	key := r.state.Key ^ r.zt.Key(m)
	idx, finalCode, found := r.probe(c, key)
	r.code = finalCode
	if !found {
		return nil, false
	}
	return &r.fifo.data[idx].impl, true
}

func (r *Recycling[T]) Update(m int) {
	r.state = r.zt.Apply(r.state, m)
	idx, _, found := r.probe(r.state.Code, r.state.Key)
	if !found {
		return
	}
	r.target = r.fifo.splice(idx, r.target)
	r.path = append(r.path, idx)
	r.depth++
}

func (r *Recycling[T]) Store(m int, init func(*T)) *T {
	_, found := r.Select(m) // sets r.code to the eventual bucket position
	r.state = r.zt.Apply(r.state, m)
	r.depth++

	if found {
		idx := r.table[r.code]
		r.path = append(r.path, idx)
		return &r.fifo.data[idx].impl
	}

	victim := r.fifo.spliceFront(r.target)
	r.path = append(r.path, victim)

	// An arena slot that was never published holds no bucket: the probe
	// from its stale code then stops at an empty bucket instead.
	targetCode := r.fifo.data[victim].code
	for r.table[targetCode] != victim && r.table[targetCode] != -1 {
		targetCode = (targetCode + 1) & r.mask()
	}
	published := r.table[targetCode] == victim
	sourceCode := (targetCode + 1) & r.mask()

	r.fifo.data[victim].key, r.fifo.data[victim].code = r.state.Key, r.state.Code
	init(&r.fifo.data[victim].impl)
	r.table[r.code] = victim

	if !published {
		return &r.fifo.data[victim].impl
	}

	// deletion-shift loop: no tombstones, shift any entry whose home bucket
	// still lies between target and source back into the vacated target.
	for r.table[sourceCode] != -1 {
		home := r.fifo.data[r.table[sourceCode]].code
		var between bool
		if sourceCode < targetCode {
			between = home <= targetCode && home > sourceCode
		} else {
			between = home <= targetCode || home > sourceCode
		}
		if between {
			r.table[targetCode] = r.table[sourceCode]
			targetCode = sourceCode
		}
		sourceCode = (sourceCode + 1) & r.mask()
	}
	r.table[targetCode] = -1

	return &r.fifo.data[victim].impl
}

func (r *Recycling[T]) UpdateRoot(m int, init func(*T)) *T {
	c := r.state.Code ^ r.zt.Code(m)
	key := r.state.Key ^ r.zt.Key(m)
	hit, _, found := r.probe(c, key)

	r.fifo.spliceRoot() // old root becomes the next eviction candidate

	var rootIdx int
	if found {
		r.state = r.zt.Apply(r.state, m)
		rootIdx = hit
	} else {
		r.target = r.fifo.end()
		r.Store(m, init)
		rootIdx = r.table[r.code]
	}

	r.target = r.fifo.splice(rootIdx, r.fifo.end())
	r.rootDepth++
	r.depth = r.rootDepth
	r.path = r.path[:0]

	return &r.fifo.data[rootIdx].impl
}

func (r *Recycling[T]) Backward() (*T, bool) {
	if r.depth <= r.rootDepth {
		r.SetupExploration()
		return nil, false
	}

	r.path = r.path[:len(r.path)-1]
	r.depth--

	var parentIdx int
	if len(r.path) == 0 {
		parentIdx = r.fifo.back() // the last list position is always the root
	} else {
		parentIdx = r.path[len(r.path)-1]
	}

	parent := &r.fifo.data[parentIdx]
	r.state = zobrist.State{Code: parent.code, Key: parent.key}
	return &parent.impl, true
}

func (r *Recycling[T]) SetupExploration() {
	r.target = r.fifo.back()
}
