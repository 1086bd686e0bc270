// Package normalize applies the small filtering pass a batch of ingested
// sequences goes through before being handed to the reference builder: drop
// header/comment lines, then drop whole sequences that don't fit the
// allowed alphabet or are too short to be useful.
package normalize

import (
	"bytes"

	"github.com/flier/rlz/pkg/reference"
)

// StripLines removes every line of data that starts with prefix (e.g. a
// FASTA ">" header line), joining what remains with no separator.
func StripLines(data []byte, prefix string) []byte {
	if prefix == "" {
		return data
	}

	var out bytes.Buffer

	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimRight(line, "\r")
		if bytes.HasPrefix(line, []byte(prefix)) {
			continue
		}

		out.Write(line)
	}

	return out.Bytes()
}

// Config controls which sequences Filter keeps.
type Config struct {
	// Allowed is the set of bytes a sequence may contain. A nil/empty set
	// disables the alphabet check entirely.
	Allowed []byte

	// MinLength discards any sequence shorter than this many bytes.
	MinLength int
}

// Filter drops any sequence in inputs that contains a byte outside cfg's
// allowed set, or that is shorter than cfg.MinLength, preserving the
// relative order of what remains.
func Filter(inputs []reference.Named, cfg Config) []reference.Named {
	var allowed [256]bool

	checkAlphabet := len(cfg.Allowed) > 0
	for _, b := range cfg.Allowed {
		allowed[b] = true
	}

	out := make([]reference.Named, 0, len(inputs))

	for _, in := range inputs {
		if len(in.Bytes) < cfg.MinLength {
			continue
		}

		if checkAlphabet && !withinAlphabet(in.Bytes, &allowed) {
			continue
		}

		out = append(out, in)
	}

	return out
}

func withinAlphabet(data []byte, allowed *[256]bool) bool {
	for _, b := range data {
		if !allowed[b] {
			return false
		}
	}

	return true
}
