package game

import "errors"

// Sentinel errors surfaced to callers. Handlers map these onto
// HTTP status codes; everything else is treated as internal.
var (
	// ErrNotFound indicates the requested session or segment does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidState indicates the operation is not legal in the
	// session's current state, such as playing a finished game.
	ErrInvalidState = errors.New("invalid state")

	// ErrInvalidInput indicates the caller's input could not be
	// resolved against the session, such as an unknown choice.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict indicates a stale turn token, meaning the caller's
	// view of the session is behind the stored state.
	ErrConflict = errors.New("conflict")
)
