package rlz

// Usage reports the memory footprint of an Archive, mirroring the source's
// MemoryUsage breakdown: a reference, a factor table, and the random-access
// index riding along inside each factor record rather than as a separate
// structure.
type Usage struct {
	ReferenceSize    int
	FactorTableSize  int
	RandomAccessSize int
}

// CompressedSize is the reference plus the factor tables, before accounting
// for random-access support.
func (u Usage) CompressedSize() int { return u.ReferenceSize + u.FactorTableSize }

// TotalMemory is the compressed size plus the random-access index.
func (u Usage) TotalMemory() int { return u.CompressedSize() + u.RandomAccessSize }

// CompressionRate is TotalMemory/raw, i.e. the ratio including random-access
// support.
func (u Usage) CompressionRate(rawSize int) float64 {
	if rawSize == 0 {
		return 0
	}

	return float64(u.TotalMemory()) / float64(rawSize)
}

// CompressionRateWithoutIndex is CompressedSize/raw, excluding random-access
// support.
func (u Usage) CompressionRateWithoutIndex(rawSize int) float64 {
	if rawSize == 0 {
		return 0
	}

	return float64(u.CompressedSize()) / float64(rawSize)
}

// Memory computes a's memory footprint. Each Factor record embeds its own
// cumulative offset, so RandomAccessSize equals FactorTableSize: there is no
// separate index structure to account for.
func (a *Archive[I]) Memory() Usage {
	var factorCount int

	for _, s := range a.Sequences {
		factorCount += len(s.Factors)
	}

	recordSize := factorRecordSize[I]()
	factorTableSize := factorCount * recordSize

	return Usage{
		ReferenceSize:    len(a.Reference),
		FactorTableSize:  factorTableSize,
		RandomAccessSize: factorTableSize,
	}
}

// RawSize sums the decoded length of every sequence in a, for use with
// Usage.CompressionRate.
func (a *Archive[I]) RawSize() int {
	var total int

	for _, s := range a.Sequences {
		total += int(s.RawLen())
	}

	return total
}

// factorRecordSize returns the in-memory size, in bytes, of one Factor[I]
// record: three I-width fields.
func factorRecordSize[I Index]() int {
	var zero I

	switch any(zero).(type) {
	case uint64:
		return 3 * 8
	default:
		return 3 * 4
	}
}
