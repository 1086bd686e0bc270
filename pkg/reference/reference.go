// Package reference builds the shared reference string that every input
// sequence is later factorized against.
package reference

import (
	"math/rand"
	"sort"
	"sync"

	"github.com/dolthub/maphash"

	"github.com/flier/rlz/internal/debug"
	"github.com/flier/rlz/internal/xsync"
	"github.com/flier/rlz/pkg/res"
	"github.com/flier/rlz/pkg/rlzerr"
	"github.com/flier/rlz/pkg/suffixtree"
)

// Named pairs an input sequence with the name it should be reported under
// (e.g. a source file name), so strategy diagnostics and CLI output can
// identify which input drove a decision.
type Named struct {
	Name  string
	Bytes []byte
}

// Strategy selects how the reference string is assembled from a batch of
// inputs.
type Strategy int

const (
	// FixedIndices concatenates the inputs at caller-chosen indices, in the
	// order given, and is the default strategy.
	FixedIndices Strategy = iota

	// ReferenceMerge greedily grows the reference by repeatedly folding in
	// whichever input currently compresses worst against it, until the
	// overall compression ratio stops improving.
	ReferenceMerge
)

// Config controls reference construction.
type Config struct {
	Strategy Strategy

	// Indices selects which inputs (by position) seed FixedIndices. Defaults
	// to []int{0} when empty.
	Indices []int

	// ExtraAlphabet is an optional string of bytes to fold into the
	// reference up front, before the generic alphabet-coverage scan runs.
	ExtraAlphabet []byte

	// Rand seeds ReferenceMerge's initial-input choice when Indices is
	// empty. A caller-supplied source keeps the strategy reproducible;
	// reference.Build never reads from an ungoverned global RNG.
	Rand *rand.Rand

	// MaxIterations bounds the ReferenceMerge hill-climb. Zero means
	// len(inputs) (the loop can never usefully run longer than that, since
	// every iteration folds in one previously-unmerged input).
	MaxIterations int
}

// bytesPerFactor is this package's working estimate of a factor record's
// encoded cost, used only to rank candidate references against each other
// during the merge hill-climb; pkg/rlz computes the real figure once a
// reference is chosen.
const bytesPerFactor = 12

// Build assembles a reference string for inputs according to cfg.
func Build(inputs []Named, cfg Config) res.Result[[]byte] {
	if len(inputs) == 0 {
		return res.Err[[]byte](rlzerr.New(rlzerr.EmptyInput, "no input sequences supplied"))
	}

	switch cfg.Strategy {
	case FixedIndices:
		return buildFixed(inputs, cfg)
	case ReferenceMerge:
		return buildMerge(inputs, cfg)
	default:
		return res.Err[[]byte](rlzerr.Newf(rlzerr.InvalidStrategy, "unknown reference strategy %d", cfg.Strategy))
	}
}

func buildFixed(inputs []Named, cfg Config) res.Result[[]byte] {
	indices := cfg.Indices
	if len(indices) == 0 {
		indices = []int{0}
	}

	var ref []byte

	for _, idx := range indices {
		if idx < 0 || idx >= len(inputs) {
			return res.Err[[]byte](rlzerr.Newf(rlzerr.InvalidStrategy,
				"fixed index %d out of range for %d inputs", idx, len(inputs)))
		}

		ref = append(ref, inputs[idx].Bytes...)
	}

	return res.Ok(coverAlphabet(ref, inputs, cfg.ExtraAlphabet))
}

// coverAlphabet appends, in encounter order, any byte that occurs in some
// input but not yet in ref, so a suffix tree built over the result can never
// fail to match an input's first byte.
func coverAlphabet(ref []byte, inputs []Named, extra []byte) []byte {
	var present [256]bool

	for _, b := range ref {
		present[b] = true
	}

	for _, b := range extra {
		if !present[b] {
			ref = append(ref, b)
			present[b] = true
		}
	}

	for _, in := range inputs {
		for _, b := range in.Bytes {
			if !present[b] {
				ref = append(ref, b)
				present[b] = true
			}
		}
	}

	return ref
}

type ratioResult struct {
	name  string
	ratio float64
	hash  uint64
}

// buildMerge grows the reference by repeatedly folding in the input that
// currently compresses worst against it (largest compressed/raw ratio, per
// analysis.rs's worst_reference_string), rebuilding and re-measuring after
// each merge, and stopping as soon as the overall ratio stops strictly
// improving.
func buildMerge(inputs []Named, cfg Config) res.Result[[]byte] {
	maxIter := cfg.MaxIterations
	if maxIter <= 0 {
		maxIter = len(inputs)
	}

	seed := 0
	if len(cfg.Indices) > 0 {
		seed = cfg.Indices[0]
	} else if cfg.Rand != nil {
		seed = cfg.Rand.Intn(len(inputs))
	}

	if seed < 0 || seed >= len(inputs) {
		return res.Err[[]byte](rlzerr.Newf(rlzerr.InvalidStrategy,
			"reference-merge seed %d out of range for %d inputs", seed, len(inputs)))
	}

	var merged xsync.Set[int]
	merged.Store(seed)

	ref := coverAlphabet(append([]byte(nil), inputs[seed].Bytes...), inputs, cfg.ExtraAlphabet)
	bestRatio := overallRatio(ref, inputs)

	hasher := maphash.NewHasher[string]()

	mergedCount := 1

	for iter := 0; iter < maxIter && mergedCount < len(inputs); iter++ {
		tree := suffixtree.New(ref)

		var (
			wg            sync.WaitGroup
			worstObserved xsync.AtomicFloat64
		)

		ratios := xsync.Map[string, ratioResult]{}

		for _, in := range inputs {
			if merged.Load(indexOf(inputs, in.Name)) {
				continue
			}

			in := in

			wg.Add(1)

			go func() {
				defer wg.Done()

				ratio := inputRatio(tree, in.Bytes)
				ratios.Store(in.Name, ratioResult{name: in.Name, ratio: ratio, hash: hasher.Hash(in.Name)})

				for {
					cur := worstObserved.Load()
					if ratio <= cur || worstObserved.BitwiseCompareAndSwap(cur, ratio) {
						break
					}
				}
			}()
		}

		wg.Wait()

		var candidates []ratioResult

		for _, r := range ratios.All() {
			candidates = append(candidates, r)
		}

		if len(candidates) == 0 {
			break
		}

		sort.Slice(candidates, func(i, j int) bool {
			if candidates[i].ratio != candidates[j].ratio {
				return candidates[i].ratio > candidates[j].ratio
			}

			return candidates[i].hash < candidates[j].hash
		})

		worst := candidates[0]
		worstIdx := indexOf(inputs, worst.name)

		trial := coverAlphabet(append(append([]byte(nil), ref...), inputs[worstIdx].Bytes...), inputs, cfg.ExtraAlphabet)
		trialRatio := overallRatio(trial, inputs)

		debug.Log(nil, "reference.buildMerge", "iter %d: worst observed ratio %.4f, folding %q in, ratio %.4f -> %.4f",
			iter, worstObserved.Load(), worst.name, bestRatio, trialRatio)

		if trialRatio >= bestRatio {
			break
		}

		ref = trial
		bestRatio = trialRatio
		merged.Store(worstIdx)
		mergedCount++
	}

	return res.Ok(ref)
}

func indexOf(inputs []Named, name string) int {
	for i, in := range inputs {
		if in.Name == name {
			return i
		}
	}

	return -1
}

// inputRatio estimates compressed/raw for a single input against tree,
// using bytesPerFactor as the per-factor cost.
func inputRatio(tree *suffixtree.Tree, data []byte) float64 {
	if len(data) == 0 {
		return 0
	}

	factors := 0
	i := 0

	for i < len(data) {
		r := tree.Find(data[i:])
		if r.IsNone() {
			// Byte absent from the reference entirely; count it as its own
			// pathological single-byte factor for ranking purposes.
			i++
			factors++

			continue
		}

		matched := r.Unwrap().Len()
		if matched == 0 {
			matched = 1
		}

		i += matched
		factors++
	}

	return float64(factors*bytesPerFactor) / float64(len(data))
}

// overallRatio estimates compressed/raw across the whole batch: reference
// size plus every input's factor-table cost, divided by total raw bytes.
func overallRatio(ref []byte, inputs []Named) float64 {
	tree := suffixtree.New(ref)

	compressed := len(ref)
	raw := 0

	for _, in := range inputs {
		raw += len(in.Bytes)
		compressed += int(inputRatio(tree, in.Bytes) * float64(len(in.Bytes)))
	}

	if raw == 0 {
		return 0
	}

	return float64(compressed) / float64(raw)
}
