// Package rlzerr defines the error taxonomy shared by the reference builder
// and the RLZ archive: the small set of ways a batch factorization can be
// rejected or can discover its own corruption.
package rlzerr

import "fmt"

// Kind identifies which of the core's five failure modes an [Error] reports.
type Kind int

const (
	// EmptyInput is returned when the caller supplies zero sequences.
	EmptyInput Kind = iota

	// InvalidStrategy is returned for an unrecognized reference-builder
	// strategy selector.
	InvalidStrategy

	// AlphabetGap is returned when the longest-substring query cannot find
	// any match for the head of some remaining suffix, because the
	// reference does not cover that byte.
	AlphabetGap

	// IndexConversion is returned when a reference or decoded-sequence
	// length does not fit the chosen factor index width.
	IndexConversion

	// DecodeBoundsViolation is returned when a factor's (start, end) range
	// falls outside the reference, which indicates archive corruption.
	DecodeBoundsViolation
)

func (k Kind) String() string {
	switch k {
	case EmptyInput:
		return "EmptyInput"
	case InvalidStrategy:
		return "InvalidStrategy"
	case AlphabetGap:
		return "AlphabetGap"
	case IndexConversion:
		return "IndexConversion"
	case DecodeBoundsViolation:
		return "DecodeBoundsViolation"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is the concrete error type returned by the core. Every failure kind
// listed in Kind is surfaced to the caller wrapped in one of these; none are
// recoverable internally.
type Error struct {
	Kind Kind
	Msg  string
	Err  error // optional wrapped cause
}

func New(kind Kind, msg string) *Error { return &Error{Kind: kind, Msg: msg} }

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, err error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("rlz: %s: %s: %v", e.Kind, e.Msg, e.Err)
	}

	return fmt.Sprintf("rlz: %s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether the first *Error in err's Unwrap chain has the given
// kind. Kind itself is not an error, so errors.Is cannot match against it;
// callers write rlzerr.Is(err, rlzerr.AlphabetGap) instead.
func Is(err error, kind Kind) bool {
	var e *Error
	for err != nil {
		if ae, ok := err.(*Error); ok {
			e = ae
			break
		}

		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}

		err = u.Unwrap()
	}

	return e != nil && e.Kind == kind
}
