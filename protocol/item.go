package protocol

import "time"

// NoTTL represents an infinite TTL (no expiration).
const NoTTL = 0

// Item is a value to store, with an optional expiration.
type Item struct {
	value string
	ttl   time.Duration
}

// Expires builds an item that expires ttl after it is stored.
func Expires(value string, ttl time.Duration) Item {
	return Item{value: value, ttl: ttl}
}

// Timeless builds an item that never expires.
func Timeless(value string) Item {
	return Item{value: value}
}

// Seconds returns the TTL in whole seconds for wire encoding, 0 when the
// item never expires.
func (i Item) Seconds() uint64 {
	if i.ttl <= 0 {
		return NoTTL
	}
	return uint64(i.ttl / time.Second)
}

func (i Item) String() string {
	return i.value
}
