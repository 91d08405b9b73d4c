package shroud

import (
	"errors"
	"fmt"
)

// Entry decoding failures. Position failures wrap ErrInvalidPosition,
// so errors.Is(err, ErrInvalidPosition) holds for all of them.
var (
	ErrMissingSegments    = errors.New("missing segments")
	ErrInvalidPosition    = errors.New("invalid position")
	ErrInvalidRadius      = errors.New("invalid radius")
	ErrInvalidMaxDistance = errors.New("invalid max distance")

	ErrEmptyPosition      = fmt.Errorf("%w: empty", ErrInvalidPosition)
	ErrMissingRegionToken = fmt.Errorf("%w: missing region token", ErrInvalidPosition)
	ErrInvalidRegionToken = fmt.Errorf("%w: invalid region token", ErrInvalidPosition)
	ErrMissingBrackets    = fmt.Errorf("%w: missing brackets", ErrInvalidPosition)
	ErrInvalidCoordinates = fmt.Errorf("%w: invalid coordinates", ErrInvalidPosition)
	ErrInvalidOrientation = fmt.Errorf("%w: invalid orientation", ErrInvalidPosition)
)

// Diagnostic describes one entry skipped during Parse.
type Diagnostic struct {
	Index int    // position of the entry among non-empty entries
	Entry string // trimmed entry text as it appeared in the input
	Err   error
}

// Kind returns the failure class name used in logs and metric labels.
func (d Diagnostic) Kind() string {
	return FailureKind(d.Err)
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("entry %d %q: %v", d.Index, d.Entry, d.Err)
}

// FailureKind maps a decoding error to its failure class name.
// Unknown errors map to "Unknown".
func FailureKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingSegments):
		return "MissingSegments"
	case errors.Is(err, ErrInvalidPosition):
		return "InvalidPosition"
	case errors.Is(err, ErrInvalidRadius):
		return "InvalidRadius"
	case errors.Is(err, ErrInvalidMaxDistance):
		return "InvalidMaxDistance"
	default:
		return "Unknown"
	}
}
