package rlz

import (
	"github.com/flier/rlz/pkg/rlzerr"
	"github.com/flier/rlz/pkg/suffixtree"
)

// Archive is a reference string plus the factorization of every input
// sequence against it. It is built once and is read-only afterward: decode,
// random access, and memory accounting never mutate it.
type Archive[I Index] struct {
	Reference []byte
	Sequences []EncodedSequence[I]
}

// BuildTree constructs the suffix tree over ref. Exposed separately from
// NewArchive so a caller can build the tree once and pass it to
// NewArchiveFromTree, or query it directly, without a full archive build.
func BuildTree(ref []byte) *suffixtree.Tree { return suffixtree.New(ref) }

// NewArchive builds the suffix tree over ref and factorizes every input
// against it, in one call.
func NewArchive[I Index](ref []byte, inputs []Named) (*Archive[I], error) {
	return NewArchiveFromTree[I](BuildTree(ref), ref, inputs)
}

// NewArchiveFromTree factorizes inputs against an already-built tree over
// ref. The tree is only read, never retained by the returned Archive: once
// this call returns, the tree is eligible for collection (Phase A/B
// boundary).
func NewArchiveFromTree[I Index](tree *suffixtree.Tree, ref []byte, inputs []Named) (*Archive[I], error) {
	if len(inputs) == 0 {
		return nil, rlzerr.New(rlzerr.EmptyInput, "no input sequences supplied")
	}

	if !fitsIndex[I](len(ref)) {
		return nil, rlzerr.Newf(rlzerr.IndexConversion, "reference length %d overflows the chosen index width", len(ref))
	}

	seqs := make([]EncodedSequence[I], len(inputs))

	if err := factorizeAll[I](tree, inputs, seqs); err != nil {
		return nil, err
	}

	return &Archive[I]{Reference: ref, Sequences: seqs}, nil
}

// fitsIndex reports whether n fits in I without wraparound.
func fitsIndex[I Index](n int) bool {
	if n < 0 {
		return false
	}

	var max I

	max--

	return uint64(n) <= uint64(max)
}

func (a *Archive[I]) sequence(name string) (*EncodedSequence[I], error) {
	for i := range a.Sequences {
		if a.Sequences[i].Name == name {
			return &a.Sequences[i], nil
		}
	}

	return nil, rlzerr.Newf(rlzerr.DecodeBoundsViolation, "no sequence named %q in this archive", name)
}
