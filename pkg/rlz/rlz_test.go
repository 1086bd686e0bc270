package rlz_test

import (
	"testing"

	"github.com/flier/rlz/pkg/rlz"
	"github.com/flier/rlz/pkg/rlzerr"
)

func TestRoundTrip(t *testing.T) {
	ref := []byte("banana bandana banjo")
	inputs := []rlz.Named{
		{Name: "s1", Bytes: []byte("banana")},
		{Name: "s2", Bytes: []byte("bandana")},
		{Name: "s3", Bytes: []byte("banjo")},
	}

	archive, err := rlz.NewArchive[uint32](ref, inputs)
	if err != nil {
		t.Fatalf("NewArchive: %v", err)
	}

	for _, in := range inputs {
		got, err := archive.Decode(in.Name)
		if err != nil {
			t.Fatalf("Decode(%q): %v", in.Name, err)
		}

		if string(got) != string(in.Bytes) {
			t.Fatalf("Decode(%q): got %q, want %q", in.Name, got, in.Bytes)
		}
	}
}

func TestRandomAccess(t *testing.T) {
	ref := []byte("mississippi river")
	inputs := []rlz.Named{
		{Name: "a", Bytes: []byte("mississippi")},
	}

	archive, err := rlz.NewArchive[uint32](ref, inputs)
	if err != nil {
		t.Fatalf("NewArchive: %v", err)
	}

	for i, want := range []byte("mississippi") {
		got, err := archive.ByteAt("a", uint32(i))
		if err != nil {
			t.Fatalf("ByteAt(%d): %v", i, err)
		}

		if got != want {
			t.Fatalf("ByteAt(%d): got %q, want %q", i, got, want)
		}
	}
}

func TestByteAtOutOfBounds(t *testing.T) {
	ref := []byte("banana")
	inputs := []rlz.Named{{Name: "a", Bytes: []byte("banana")}}

	archive, err := rlz.NewArchive[uint32](ref, inputs)
	if err != nil {
		t.Fatalf("NewArchive: %v", err)
	}

	if _, err := archive.ByteAt("a", 999); err == nil {
		t.Fatal("ByteAt: expected error for out-of-bounds offset")
	}

	if _, err := archive.Decode("nope"); err == nil {
		t.Fatal("Decode: expected error for unknown sequence name")
	}
}

func TestAlphabetGap(t *testing.T) {
	ref := []byte("banana")
	inputs := []rlz.Named{{Name: "a", Bytes: []byte("bananaZ")}}

	_, err := rlz.NewArchive[uint32](ref, inputs)
	if err == nil {
		t.Fatal("NewArchive: expected AlphabetGap error")
	}

	if !rlzerr.Is(err, rlzerr.AlphabetGap) {
		t.Fatalf("NewArchive: expected AlphabetGap, got %v", err)
	}
}

func TestEmptyInputRejected(t *testing.T) {
	_, err := rlz.NewArchive[uint32]([]byte("banana"), nil)
	if !rlzerr.Is(err, rlzerr.EmptyInput) {
		t.Fatalf("NewArchive: expected EmptyInput, got %v", err)
	}
}

func TestMemoryAccounting(t *testing.T) {
	ref := []byte("banana bandana")
	inputs := []rlz.Named{
		{Name: "a", Bytes: []byte("banana")},
		{Name: "b", Bytes: []byte("bandana")},
	}

	archive, err := rlz.NewArchive[uint32](ref, inputs)
	if err != nil {
		t.Fatalf("NewArchive: %v", err)
	}

	usage := archive.Memory()
	if usage.ReferenceSize != len(ref) {
		t.Fatalf("ReferenceSize: got %d, want %d", usage.ReferenceSize, len(ref))
	}

	if usage.RandomAccessSize != usage.FactorTableSize {
		t.Fatalf("RandomAccessSize: got %d, want %d (== FactorTableSize)", usage.RandomAccessSize, usage.FactorTableSize)
	}

	raw := archive.RawSize()
	if raw != len("banana")+len("bandana") {
		t.Fatalf("RawSize: got %d, want %d", raw, len("banana")+len("bandana"))
	}

	rate := usage.CompressionRate(raw)
	rateNoIdx := usage.CompressionRateWithoutIndex(raw)

	if rate < rateNoIdx {
		t.Fatalf("CompressionRate (%f) should be >= CompressionRateWithoutIndex (%f)", rate, rateNoIdx)
	}
}

func TestBuildTreeThenArchiveFromTree(t *testing.T) {
	ref := []byte("banana")
	inputs := []rlz.Named{{Name: "a", Bytes: []byte("banana")}}

	tree := rlz.BuildTree(ref)

	archive, err := rlz.NewArchiveFromTree[uint32](tree, ref, inputs)
	if err != nil {
		t.Fatalf("NewArchiveFromTree: %v", err)
	}

	got, err := archive.Decode("a")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if string(got) != "banana" {
		t.Fatalf("Decode: got %q, want %q", got, "banana")
	}
}
