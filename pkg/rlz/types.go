// Package rlz implements Relative Lempel-Ziv factorization of a batch of
// similar byte sequences against one shared reference string, and answers
// decode and random-access queries against the result without needing to
// rebuild the suffix tree the factorization was computed from.
package rlz

import "github.com/flier/rlz/pkg/reference"

// Named is the unit of input and output throughout this package: a byte
// sequence with the name it should be reported under.
type Named = reference.Named

// Index is the integer width a Factor's offsets and cumulative counter are
// stored in. uint32 covers references and sequences up to 4 GiB; callers
// with larger data instantiate Archive[uint64] explicitly.
type Index interface {
	~uint32 | ~uint64
}

// Factor is one record of a factorized sequence: bytes [Start, End) of the
// reference, contributing decoded output starting at cumulative offset Cum
// in the sequence it belongs to.
type Factor[I Index] struct {
	Cum   I
	Start I
	End   I
}

// Len returns the number of decoded bytes this factor contributes.
func (f Factor[I]) Len() I { return f.End - f.Start }
