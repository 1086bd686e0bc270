// Package alphabet defines the edge-label alphabet used throughout the
// suffix tree: raw reference bytes, plus the single sentinel symbol that
// terminates the reference string and sorts before every byte value.
package alphabet

import "fmt"

// Label is a single edge symbol in the suffix tree: either a literal
// reference byte (0-255) or the Sentinel (-1). The underlying int16 keeps
// Label cheap to use as a map key and to compare.
type Label int16

// Sentinel terminates the reference string. It sorts before every real
// byte, so every suffix of the reference - including the empty one - has a
// unique path to a leaf.
const Sentinel Label = -1

// Byte wraps a literal reference byte as a Label.
func Byte(b byte) Label { return Label(b) }

// IsSentinel reports whether l is the sentinel rather than a literal byte.
func (l Label) IsSentinel() bool { return l == Sentinel }

// Value returns the literal byte value of l. It panics if l is the
// sentinel.
func (l Label) Value() byte {
	if l == Sentinel {
		panic("alphabet: Value called on the sentinel label")
	}

	return byte(l)
}

func (l Label) String() string {
	if l == Sentinel {
		return "$"
	}

	if l >= 0x20 && l < 0x7f {
		return string(rune(l))
	}

	return fmt.Sprintf("\\x%02x", byte(l))
}
