package protocol

import (
	"fmt"
	"strings"
)

// MaxKeyLength is the maximum key length in bytes accepted by memcached.
const MaxKeyLength = 250

// Key is a validated cache key. The zero value is the empty key.
type Key struct {
	value string
}

// NewKey validates raw user input as a key. Keys longer than MaxKeyLength
// are rejected before any bytes hit the wire.
func NewKey(value string) (Key, error) {
	if len(value) > MaxKeyLength {
		return Key{}, fmt.Errorf("%w: %d bytes", ErrKeyTooLong, len(value))
	}
	return Key{value: value}, nil
}

// ParseKey builds a Key from raw input or from a server reply line. A line
// whose first token is VALUE yields the server-echoed key (the second
// token) and skips the length check: the server already accepted that key.
func ParseKey(value string) (Key, error) {
	if fields := strings.Fields(value); len(fields) > 0 && fields[0] == replyValue {
		if len(fields) < 2 {
			return Key{}, malformedf("VALUE line %q is missing a key", value)
		}
		return Key{value: fields[1]}, nil
	}
	return NewKey(value)
}

func (k Key) String() string {
	return k.value
}
