package vtgrid

import "errors"

var (
	// ErrSessionClosed is returned by writes to a session that is closing
	// or has stopped.
	ErrSessionClosed = errors.New("session closed")
	// ErrSessionStarted is returned when Run is called more than once.
	ErrSessionStarted = errors.New("session already started")
	// ErrPTY wraps every read, write or resize failure of the pseudo
	// terminal. It is the only error that ends a running session.
	ErrPTY = errors.New("pty failure")
	// ErrInvalidSize rejects configured grid sizes below 2x1.
	ErrInvalidSize = errors.New("invalid terminal size")
)
