package spool

import "errors"

// Mirror-level error kinds. Protocol-level kinds (ErrNotReady,
// ErrMalformedState, ErrZeroValue, ErrValueLoss, ErrOverflow) live in
// internal/state; ErrUnresolvable lives in internal/pricing.
var (
	// ErrNotFound marks an LST mint that is not on the pool's supported
	// list.
	ErrNotFound = errors.New("lst not on list")

	// ErrUnsupported marks a listed LST with no bound value calculator.
	ErrUnsupported = errors.New("lst not supported")
)
