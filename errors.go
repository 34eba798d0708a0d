package memento

import "errors"

var (
	// ErrConnectionReset is returned when the peer closes the connection
	// after a partial response was received but before it completed.
	ErrConnectionReset = errors.New("memento: connection reset by peer")

	// ErrConnectionClosed is returned when a command is issued on a
	// connection that was closed, locally or by a previous fatal error.
	ErrConnectionClosed = errors.New("memento: connection closed")
)
