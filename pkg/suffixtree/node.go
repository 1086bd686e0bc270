package suffixtree

import (
	"github.com/flier/rlz/internal/debug"
	"github.com/flier/rlz/pkg/alphabet"
)

// id is an arena-local node reference. noID (-1) means "no node"; the root
// is always allocated first and so always has id 0.
type id int32

const noID id = -1

// node is one vertex of the suffix tree, stored by value in the arena's
// backing slice. Children are addressed by id rather than pointer so the
// whole tree lives in one contiguous, GC-friendly allocation.
type node struct {
	parent     id
	children   map[alphabet.Label]id
	suffixLink id

	start int
	// end is the fixed end offset of the edge above this node. Leaves
	// instead track the tree's single shared end counter, since during
	// construction every leaf's edge grows in lockstep (Ukkonen's trick for
	// avoiding O(n) per-extension leaf updates).
	end int
	leaf bool

	suffixIndex int // -1 until the post-build DFS assigns it
}

func newNode(parent id, start int) node {
	return node{
		parent:      parent,
		children:    make(map[alphabet.Label]id),
		suffixLink:  noID,
		start:       start,
		suffixIndex: -1,
	}
}

func newLeaf(parent id, start int) node {
	n := newNode(parent, start)
	n.leaf = true

	return n
}

// arena is the flat backing store for every node in the tree.
type arena struct {
	nodes []node
}

func newArena() *arena {
	return &arena{nodes: make([]node, 0, 256)}
}

func (a *arena) alloc(n node) id {
	a.nodes = append(a.nodes, n)

	return id(len(a.nodes) - 1)
}

func (a *arena) get(i id) *node {
	debug.Assert(i >= 0 && int(i) < len(a.nodes), "node id %d out of range for arena of size %d", i, len(a.nodes))

	return &a.nodes[i]
}

func (n *node) end1(sharedEnd int) int {
	if n.leaf {
		return sharedEnd
	}

	return n.end
}

func (n *node) length(sharedEnd int) int { return n.end1(sharedEnd) - n.start }
