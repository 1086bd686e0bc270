package rlz

import "github.com/flier/rlz/pkg/rlzerr"

// Error kinds re-exported from pkg/rlzerr so callers of this package never
// need to import it directly.
const (
	ErrKindEmptyInput            = rlzerr.EmptyInput
	ErrKindInvalidStrategy       = rlzerr.InvalidStrategy
	ErrKindAlphabetGap           = rlzerr.AlphabetGap
	ErrKindIndexConversion       = rlzerr.IndexConversion
	ErrKindDecodeBoundsViolation = rlzerr.DecodeBoundsViolation
)

// IsKind reports whether err is a rlzerr.Error of the given kind. It exists
// so callers outside this module's internal packages can branch on error
// kind without importing pkg/rlzerr themselves.
func IsKind(err error, kind rlzerr.Kind) bool { return rlzerr.Is(err, kind) }
