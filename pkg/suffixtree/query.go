package suffixtree

import (
	"github.com/flier/rlz/pkg/alphabet"
	"github.com/flier/rlz/pkg/opt"
)

// Find descends the tree matching the longest possible prefix of b against
// reference labels, and returns the matched span as a Range over the
// reference bytes.
//
// It returns opt.None if b's first byte has no matching child at the root,
// i.e. that byte never occurs in the reference at all. Any other amount of
// match - including a match shorter than len(b) because b ran past what the
// reference contains - returns opt.Some with the matched Range; callers
// compare Range.Len() against len(b) to see whether all of b matched.
//
// Find panics if b is empty: silently returning None for an empty query
// would be indistinguishable from "no match" at the call site and would
// mask a caller bug rather than surface it.
func (t *Tree) Find(b []byte) opt.Option[Range] {
	if len(b) == 0 {
		panic("suffixtree: Find called with empty query")
	}

	cur := t.root
	matched := 0
	matchStart := 0

	for matched < len(b) {
		label := alphabet.Byte(b[matched])

		childID, ok := t.arena.get(cur).children[label]
		if !ok {
			if matched == 0 {
				return opt.None[Range]()
			}

			break
		}

		child := t.arena.get(childID)
		matchStart = child.suffixIndex

		edgeLen := child.length(t.sharedEnd)

		walked := 0
		for walked < edgeLen && matched < len(b) &&
			t.labels[child.start+walked] == alphabet.Byte(b[matched]) {
			walked++
			matched++
		}

		if walked < edgeLen {
			break
		}

		cur = childID
	}

	return opt.Some(Range{Start: matchStart, End: matchStart + matched})
}

// ContainsSuffix reports whether b is a suffix of the reference string, i.e.
// b matches some root-to-leaf path exactly followed immediately by that
// leaf's terminating sentinel. An empty b is never a suffix.
func (t *Tree) ContainsSuffix(b []byte) bool {
	if len(b) == 0 {
		return false
	}

	r := t.Find(b)
	if r.IsNone() {
		return false
	}

	rng := r.Unwrap()
	if rng.Len() != len(b) {
		return false
	}

	next := rng.End
	if next >= len(t.labels) {
		return false
	}

	return t.labels[next].IsSentinel()
}

// LongestSubstring returns the longest substring of the reference that
// repeats, i.e. appears starting at two or more distinct positions: the
// deepest internal (non-leaf, non-root) node's path label. It returns
// opt.None if the reference has no repeated substring at all.
func (t *Tree) LongestSubstring() opt.Option[Range] {
	bestNode := noID
	bestDepth := 0

	var walk func(n id, depth int)
	walk = func(n id, depth int) {
		nd := t.arena.get(n)

		if nd.leaf {
			return
		}

		if n != t.root && depth > bestDepth {
			bestDepth = depth
			bestNode = n
		}

		for _, childID := range nd.children {
			child := t.arena.get(childID)
			walk(childID, depth+child.length(t.sharedEnd))
		}
	}

	walk(t.root, 0)

	if bestNode == noID {
		return opt.None[Range]()
	}

	nd := t.arena.get(bestNode)

	return opt.Some(Range{Start: nd.suffixIndex, End: nd.suffixIndex + bestDepth})
}
