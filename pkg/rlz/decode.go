package rlz

import (
	"sort"

	"github.com/flier/rlz/pkg/rlzerr"
)

// Decode reconstructs the full original bytes of the named sequence by
// concatenating its factors' reference slices in order.
func (a *Archive[I]) Decode(name string) ([]byte, error) {
	seq, err := a.sequence(name)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, seq.RawLen())

	for _, f := range seq.Factors {
		start, end := int(f.Start), int(f.End)

		if start < 0 || end > len(a.Reference) || start > end {
			return nil, rlzerr.Newf(rlzerr.DecodeBoundsViolation,
				"factor [%d,%d) out of bounds for reference of length %d", start, end, len(a.Reference))
		}

		out = append(out, a.Reference[start:end]...)
	}

	return out, nil
}

// ByteAt returns the single decoded byte at offset x of the named sequence,
// without reconstructing the rest of the sequence: it binary searches the
// strictly increasing Cum column for the factor covering x.
func (a *Archive[I]) ByteAt(name string, x I) (byte, error) {
	seq, err := a.sequence(name)
	if err != nil {
		return 0, err
	}

	factors := seq.Factors
	n := len(factors)

	idx := sort.Search(n, func(i int) bool { return factors[i].Cum > x }) - 1
	if idx < 0 || idx >= n {
		return 0, rlzerr.Newf(rlzerr.DecodeBoundsViolation,
			"offset %v out of bounds for sequence %q of length %v", x, name, seq.RawLen())
	}

	f := factors[idx]
	pos := int(f.Start) + int(x-f.Cum)

	if pos < int(f.Start) || pos >= int(f.End) || pos >= len(a.Reference) {
		return 0, rlzerr.Newf(rlzerr.DecodeBoundsViolation,
			"factor [%d,%d) does not cover offset %v", f.Start, f.End, x)
	}

	return a.Reference[pos], nil
}
