package life

import "errors"

var (
	// ErrInvalidSize is returned when a grid would have no rows, no columns,
	// or rows of differing length.
	ErrInvalidSize = errors.New("life: invalid grid size")

	// ErrOutOfRange is returned by direct position lookups outside the grid.
	// Only neighbor lookups wrap; indexed access never does.
	ErrOutOfRange = errors.New("life: position out of range")

	// ErrAlreadyStarted is returned when a second controller is requested for
	// the same automaton.
	ErrAlreadyStarted = errors.New("life: controller already started")
)
