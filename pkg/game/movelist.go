package game

const nilIdx = -1

// moveNode is one board position's slot in the arena; it lives in exactly
// one of the empty/taken doubly-linked chains at a time, addressed by index
// rather than pointer (spec.md's redesign note on raw pointer graphs).
type moveNode struct {
	player, piece int
	pos           int
	prev, next    int
}

type emptyLink struct {
	prev, next int
}

// moveList is an arena-backed free list over the cellNum board positions,
// giving O(1) add/remove between an "empty" and a "taken" chain. Grounded on
// original_source's Moves class; undo relies on moves always being undone in
// exact LIFO order of application, so the pre-removal empty-chain links are
// simply pushed and popped off a stack rather than re-derived.
type moveList struct {
	nodes []moveNode

	emptyHead, emptyTail int
	takenHead, takenTail int
	emptySize, takenSize int

	saved []emptyLink
}

func newMoveList(cellNum int) *moveList {
	ml := &moveList{
		nodes:     make([]moveNode, cellNum),
		emptyHead: 0,
		emptyTail: cellNum - 1,
		takenHead: nilIdx,
		takenTail: nilIdx,
		emptySize: cellNum,
		saved:     make([]emptyLink, 0, cellNum),
	}
	for i := 0; i < cellNum; i++ {
		ml.nodes[i] = moveNode{pos: i, prev: i - 1, next: i + 1}
	}
	ml.nodes[0].prev = nilIdx
	ml.nodes[cellNum-1].next = nilIdx
	return ml
}

// add moves pos from the empty chain onto the tail of the taken chain,
// stamping it with player/piece.
func (ml *moveList) add(player, piece, pos int) {
	n := &ml.nodes[pos]
	ml.saved = append(ml.saved, emptyLink{prev: n.prev, next: n.next})

	if n.prev != nilIdx {
		ml.nodes[n.prev].next = n.next
	} else {
		ml.emptyHead = n.next
	}
	if n.next != nilIdx {
		ml.nodes[n.next].prev = n.prev
	} else {
		ml.emptyTail = n.prev
	}
	ml.emptySize--

	n.player = player
	n.piece = piece

	n.prev = ml.takenTail
	n.next = nilIdx
	if ml.takenTail != nilIdx {
		ml.nodes[ml.takenTail].next = pos
	} else {
		ml.takenHead = pos
	}
	ml.takenTail = pos
	ml.takenSize++
}

// undo reverses the most recent add of pos, which must currently be the
// tail of the taken chain.
func (ml *moveList) undo(pos int) {
	n := &ml.nodes[pos]

	if n.prev != nilIdx {
		ml.nodes[n.prev].next = nilIdx
	} else {
		ml.takenHead = nilIdx
	}
	ml.takenTail = n.prev
	ml.takenSize--

	saved := ml.saved[len(ml.saved)-1]
	ml.saved = ml.saved[:len(ml.saved)-1]

	n.prev, n.next = saved.prev, saved.next
	if n.prev != nilIdx {
		ml.nodes[n.prev].next = pos
	} else {
		ml.emptyHead = pos
	}
	if n.next != nilIdx {
		ml.nodes[n.next].prev = pos
	} else {
		ml.emptyTail = pos
	}
	ml.emptySize++
}

func (ml *moveList) walkEmpty(fn func(pos int)) {
	for i := ml.emptyHead; i != nilIdx; i = ml.nodes[i].next {
		fn(i)
	}
}

func (ml *moveList) walkTaken(fn func(player, piece, pos int)) {
	for i := ml.takenHead; i != nilIdx; i = ml.nodes[i].next {
		n := ml.nodes[i]
		fn(n.player, n.piece, n.pos)
	}
}

func (ml *moveList) lastTaken() (player, piece, pos int) {
	n := ml.nodes[ml.takenTail]
	return n.player, n.piece, n.pos
}

// snapshot is a deep, POD copy of the list's arena and chain state, used by
// Omega's checkpoint/selectRoot pair.
type moveListSnapshot struct {
	nodes                []moveNode
	emptyHead, emptyTail int
	takenHead, takenTail int
	emptySize, takenSize int
}

func (ml *moveList) snapshot() moveListSnapshot {
	nodes := make([]moveNode, len(ml.nodes))
	copy(nodes, ml.nodes)
	return moveListSnapshot{
		nodes:     nodes,
		emptyHead: ml.emptyHead,
		emptyTail: ml.emptyTail,
		takenHead: ml.takenHead,
		takenTail: ml.takenTail,
		emptySize: ml.emptySize,
		takenSize: ml.takenSize,
	}
}

func (ml *moveList) restore(s moveListSnapshot) {
	copy(ml.nodes, s.nodes)
	ml.emptyHead, ml.emptyTail = s.emptyHead, s.emptyTail
	ml.takenHead, ml.takenTail = s.takenHead, s.takenTail
	ml.emptySize, ml.takenSize = s.emptySize, s.takenSize
	ml.saved = ml.saved[:0]
}
