package suffixtree

import "github.com/flier/rlz/internal/debug"

// build runs Ukkonen's online construction over t.labels, producing a fully
// linked generalized suffix tree in t.arena rooted at t.root.
//
// This is a direct port of the classic active-point formulation: activeNode/
// activeEdge/activeLength track where the next suffix to extend currently
// ends, remaining counts how many suffixes are still owed an extension in
// the current phase, and lastNewNode threads suffix links between internal
// nodes created within the same phase.
func (t *Tree) build() {
	n := len(t.labels)
	t.root = t.arena.alloc(newNode(noID, -1))

	activeNode := t.root
	activeEdge := -1
	activeLength := 0
	remaining := 0
	lastNewNode := noID

	for i := 0; i < n; i++ {
		t.sharedEnd = i
		lastNewNode = noID
		remaining++

		debug.Log(nil, "build", "phase %d: label %v, remaining %d", i, t.labels[i], remaining)

		for remaining > 0 {
			if activeLength == 0 {
				activeEdge = i
			}

			cur := t.labels[activeEdge]

			childID, ok := t.arena.get(activeNode).children[cur]
			if !ok {
				// Rule 1/2a: no outgoing edge for cur yet, so extend by a
				// fresh leaf straight off activeNode.
				leaf := t.arena.alloc(newLeaf(activeNode, i))
				t.arena.get(activeNode).children[cur] = leaf

				if lastNewNode != noID {
					t.arena.get(lastNewNode).suffixLink = activeNode
					lastNewNode = noID
				}
			} else {
				edgeLen := t.arena.get(childID).length(t.sharedEnd)

				if activeLength >= edgeLen {
					// Walk down past this whole edge before testing rule 3.
					activeEdge += edgeLen
					activeLength -= edgeLen
					activeNode = childID

					continue
				}

				splitStart := t.arena.get(childID).start

				if t.labels[splitStart+activeLength] == t.labels[i] {
					// Rule 3: the suffix is already implicit in the tree.
					// Nothing to add; just extend the active point and move
					// on to the next phase (show-stopper).
					if lastNewNode != noID && activeNode != t.root {
						t.arena.get(lastNewNode).suffixLink = activeNode
						lastNewNode = noID
					}

					activeLength++

					break
				}

				// Rule 2b: split the edge and hang a new leaf off the split.
				splitEnd := splitStart + activeLength
				split := t.arena.alloc(newNode(activeNode, splitStart))
				t.arena.get(split).end = splitEnd
				t.arena.get(split).suffixLink = t.root

				leaf := t.arena.alloc(newLeaf(split, i))

				child := t.arena.get(childID)
				child.parent = split
				child.start = splitEnd
				childLabel := t.labels[splitEnd]

				splitNode := t.arena.get(split)
				splitNode.children[childLabel] = childID
				splitNode.children[t.labels[i]] = leaf

				t.arena.get(activeNode).children[cur] = split

				if lastNewNode != noID {
					t.arena.get(lastNewNode).suffixLink = split
				}

				lastNewNode = split
			}

			remaining--

			switch {
			case activeNode == t.root && activeLength > 0:
				activeLength--
				activeEdge = i - remaining + 1
			case activeNode != t.root:
				activeNode = t.arena.get(activeNode).suffixLink
			}
		}
	}

	t.assignSuffixIndices()
}

type dfsFrame struct {
	node   id
	height int
}

// assignSuffixIndices computes, for every non-root node, the offset in
// t.labels where the suffix spelled out by the path from the root to that
// node's edge begins: node.start minus the depth of the path up to (but not
// including) that edge. height is threaded root-down and updated once per
// node, by adding that node's own edge length, then passed unchanged to
// every child.
func (t *Tree) assignSuffixIndices() {
	stack := []dfsFrame{{t.root, 0}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		nd := t.arena.get(f.node)

		newHeight := f.height

		if f.node != t.root {
			nd.suffixIndex = nd.start - f.height
			newHeight = f.height + nd.length(t.sharedEnd)
		}

		for _, childID := range nd.children {
			stack = append(stack, dfsFrame{childID, newHeight})
		}
	}
}
