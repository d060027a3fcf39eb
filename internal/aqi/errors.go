package aqi

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Breakpoint table errors, reported by Table.Validate.
var (
	// ErrEmptyTable indicates a table with no breakpoints.
	ErrEmptyTable = constError("empty breakpoint table")

	// ErrMalformedTable indicates inverted, overlapping or unordered ranges.
	ErrMalformedTable = constError("malformed breakpoint table")
)
