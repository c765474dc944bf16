package state

import "errors"

// Protocol-level error kinds. Higher layers wrap these with context and
// match them with errors.Is.
var (
	// ErrNotReady marks required state that has not been fetched yet.
	ErrNotReady = errors.New("state not fetched")

	// ErrMalformedState marks a snapshot whose bytes do not decode into the
	// expected fixed layout.
	ErrMalformedState = errors.New("malformed state")

	// ErrZeroValue marks a conversion step that rounded to a degenerate
	// zero amount.
	ErrZeroValue = errors.New("zero value")

	// ErrValueLoss marks a swap whose output SOL value exceeds its input
	// SOL value, which would drain the pool.
	ErrValueLoss = errors.New("pool would lose SOL value")

	// ErrOverflow marks arithmetic or index overflow, including list
	// indices that do not fit the u32 wire encoding.
	ErrOverflow = errors.New("overflow")
)
