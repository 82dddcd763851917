package board

import "errors"

var (
	// ErrTaskNotFound is returned when an operation names a task id the board does not hold.
	ErrTaskNotFound = errors.New("task not found")
	ErrInvalidEnum  = errors.New("invalid enum value")
)
