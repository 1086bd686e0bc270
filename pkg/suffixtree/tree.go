// Package suffixtree builds a generalized suffix tree over a reference byte
// string using Ukkonen's linear-time online algorithm, then answers
// longest-match and suffix-containment queries against it.
//
// Nodes live in a single flat arena addressed by integer id rather than by
// pointer, so the whole tree is one contiguous, GC-friendly allocation with
// no cycles for the garbage collector to chase.
package suffixtree

import "github.com/flier/rlz/pkg/alphabet"

// Tree is a suffix tree built once, over a fixed reference string, and
// queried many times afterward. It is safe for concurrent read-only queries
// (Find, LongestSubstring, ContainsSuffix) once New has returned; it is not
// safe to mutate.
type Tree struct {
	arena  *arena
	labels []alphabet.Label

	root      id
	sharedEnd int

	// dataLen is the number of real (non-sentinel) bytes in the reference,
	// i.e. len(labels)-1.
	dataLen int
}

// New builds a suffix tree over data. The tree owns a sentinel-terminated
// copy of data's labels; data itself is never retained.
func New(data []byte) *Tree {
	labels := make([]alphabet.Label, len(data)+1)
	for i, b := range data {
		labels[i] = alphabet.Byte(b)
	}
	labels[len(data)] = alphabet.Sentinel

	t := &Tree{
		arena:   newArena(),
		labels:  labels,
		dataLen: len(data),
	}
	t.build()

	return t
}

// Len returns the number of real (non-sentinel) bytes the tree was built
// over.
func (t *Tree) Len() int { return t.dataLen }

// labelsIn returns the byte slice of labels spanning half-open [start,end).
func (t *Tree) labelsIn(start, end int) []alphabet.Label { return t.labels[start:end] }
