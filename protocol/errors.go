package protocol

import (
	"errors"
	"fmt"
)

var (
	// ErrKeyTooLong is returned when a user-supplied key exceeds MaxKeyLength.
	ErrKeyTooLong = errors.New("memento: key is too long")

	// ErrMalformedResponse is returned when a reply line has the wrong shape:
	// unexpected token, wrong field count, or a non-numeric field where a
	// number was required.
	ErrMalformedResponse = errors.New("memento: malformed response")
)

func malformedf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedResponse, fmt.Sprintf(format, args...))
}
