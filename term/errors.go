package term

import "errors"

// Sentinel errors Handle/Key can return. An incomplete control sequence
// is never surfaced this way; it is recovered internally by caching
// the parser's incomplete tail until more input arrives.
var (
	// ErrWrite wraps a failure writing to the caller-supplied output
	// sink (device-attribute replies, key encodings). It propagates to
	// the caller of Handle/Key.
	ErrWrite = errors.New("term: write to output sink failed")

	// ErrResource reports that a backing allocation (grid row, sixel
	// image buffer) could not be made. Handle, Key and Paste do not
	// return it.
	ErrResource = errors.New("term: resource allocation failed")
)

// ParseError reports a malformed control sequence encountered while
// handling input. The recovery policy is: log it, skip the rest of the
// current Handle call's input, and preserve all state applied so far.
// ParseError is never returned from Handle, only logged.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string { return "term: parse error: " + e.Reason }
