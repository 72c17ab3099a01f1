package application

import "errors"

var (
	// ErrBroadcastInProgress is returned when a broadcast is requested while a
	// previous one is still waiting for its remote calls.
	ErrBroadcastInProgress = errors.New("a status update is already in progress")

	// ErrNotFound is returned when a preset or workspace ID does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidMove is returned when a preset move references an index out of range.
	ErrInvalidMove = errors.New("invalid preset move")
)
