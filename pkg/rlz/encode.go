package rlz

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/flier/rlz/internal/debug"
	"github.com/flier/rlz/internal/xsync"
	"github.com/flier/rlz/pkg/rlzerr"
	"github.com/flier/rlz/pkg/suffixtree"
	"github.com/flier/rlz/pkg/untrust"
)

// EncodedSequence is one input's factorization: the ordered factor records
// whose referenced reference slices concatenate back to the original bytes.
type EncodedSequence[I Index] struct {
	Name    string
	Factors []Factor[I]
}

// RawLen returns the decoded length of this sequence, derived from its last
// factor rather than stored redundantly.
func (s EncodedSequence[I]) RawLen() I {
	if len(s.Factors) == 0 {
		return 0
	}

	last := s.Factors[len(s.Factors)-1]

	return last.Cum + last.Len()
}

// factorizeAll factorizes every input against tree concurrently, one
// worker-slot per input index, writing into position-disjoint slots of out
// so no lock is needed beyond the completion barrier. Output order always
// matches input order regardless of which worker finished first.
func factorizeAll[I Index](tree *suffixtree.Tree, inputs []Named, out []EncodedSequence[I]) error {
	workers := runtime.GOMAXPROCS(0)
	if workers > len(inputs) {
		workers = len(inputs)
	}

	if workers < 1 {
		workers = 1
	}

	type job struct {
		idx int
		in  Named
	}

	jobs := make(chan job)
	errs := make(chan error, len(inputs))

	pool := xsync.Pool[[]Factor[I]]{
		New:   func() *[]Factor[I] { s := make([]Factor[I], 0, 64); return &s },
		Reset: func(s *[]Factor[I]) { *s = (*s)[:0] },
	}

	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)

		go func(worker int) {
			defer wg.Done()

			for j := range jobs {
				scratch := pool.Get()

				debug.Log(nil, "rlz.factorizeAll", "worker %d: factorizing %q (%d bytes)",
					worker, j.in.Name, len(j.in.Bytes))

				factors, err := factorizeOne[I](tree, j.in.Bytes, *scratch)
				if err != nil {
					errs <- fmt.Errorf("%s: %w", j.in.Name, err)
					pool.Put(scratch)

					continue
				}

				out[j.idx] = EncodedSequence[I]{Name: j.in.Name, Factors: factors}

				pool.Put(scratch)
			}
		}(w)
	}

	for i, in := range inputs {
		jobs <- job{idx: i, in: in}
	}

	close(jobs)
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			return err
		}
	}

	return nil
}

// factorizeOne walks data against tree, repeatedly matching the longest
// prefix of the unconsumed remainder, and returns the resulting factor
// list. scratch is reused as the backing array when it has enough capacity,
// but the returned slice is always freshly owned - never aliased back into
// a pool buffer that might be reset by another caller.
func factorizeOne[I Index](tree *suffixtree.Tree, data []byte, scratch []Factor[I]) ([]Factor[I], error) {
	input := untrust.Input(data)
	if input.Empty() {
		return nil, nil
	}

	factors := scratch[:0]

	var cum int

	raw := input.AsSliceLessSafe()

	for cum < len(raw) {
		r := tree.Find(raw[cum:])
		if r.IsNone() {
			return nil, rlzerr.Newf(rlzerr.AlphabetGap,
				"byte %#x at offset %d has no match in the reference", raw[cum], cum)
		}

		rng := r.Unwrap()

		if !fitsIndex[I](rng.Start) || !fitsIndex[I](rng.End) || !fitsIndex[I](cum) {
			return nil, rlzerr.Newf(rlzerr.IndexConversion,
				"factor offset at cum=%d overflows the chosen index width", cum)
		}

		factors = append(factors, Factor[I]{
			Cum:   I(cum),
			Start: I(rng.Start),
			End:   I(rng.End),
		})

		cum += rng.Len()
	}

	return append([]Factor[I](nil), factors...), nil
}
