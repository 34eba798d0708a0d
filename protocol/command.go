package protocol

import (
	"bytes"
	"strconv"
)

// Verb names a text-protocol operation.
type Verb string

const (
	VerbSet     Verb = "set"
	VerbAdd     Verb = "add"
	VerbReplace Verb = "replace"
	VerbAppend  Verb = "append"
	VerbPrepend Verb = "prepend"
	VerbGet     Verb = "get"
	VerbGets    Verb = "gets"
	VerbIncr    Verb = "incr"
	VerbDecr    Verb = "decr"
	VerbDelete  Verb = "delete"
	VerbStats   Verb = "stats"
	VerbVersion Verb = "version"
	VerbQuit    Verb = "quit"
)

const crlf = "\r\n"

// Command is one protocol request. Commands are immutable once built and
// encode to the same bytes every time, so re-sending one is safe.
type Command struct {
	verb  Verb
	keys  []Key
	item  Item
	delta uint64
}

// NewSet stores an item under key, unconditionally.
func NewSet(key Key, item Item) *Command { return storeCommand(VerbSet, key, item) }

// NewAdd stores an item only if the key does not exist yet.
func NewAdd(key Key, item Item) *Command { return storeCommand(VerbAdd, key, item) }

// NewReplace stores an item only if the key already exists.
func NewReplace(key Key, item Item) *Command { return storeCommand(VerbReplace, key, item) }

// NewAppend appends the item's value to an existing entry.
func NewAppend(key Key, item Item) *Command { return storeCommand(VerbAppend, key, item) }

// NewPrepend prepends the item's value to an existing entry.
func NewPrepend(key Key, item Item) *Command { return storeCommand(VerbPrepend, key, item) }

func storeCommand(verb Verb, key Key, item Item) *Command {
	return &Command{verb: verb, keys: []Key{key}, item: item}
}

// NewGet retrieves a single key.
func NewGet(key Key) *Command {
	return &Command{verb: VerbGet, keys: []Key{key}}
}

// NewGets retrieves several keys in one round trip.
func NewGets(keys ...Key) *Command {
	return &Command{verb: VerbGets, keys: append([]Key(nil), keys...)}
}

// NewIncr increments the counter stored under key by delta.
func NewIncr(key Key, delta uint64) *Command {
	return &Command{verb: VerbIncr, keys: []Key{key}, delta: delta}
}

// NewDecr decrements the counter stored under key by delta.
func NewDecr(key Key, delta uint64) *Command {
	return &Command{verb: VerbDecr, keys: []Key{key}, delta: delta}
}

// NewDelete removes the entry stored under key.
func NewDelete(key Key) *Command {
	return &Command{verb: VerbDelete, keys: []Key{key}}
}

// NewStats requests server statistics.
func NewStats() *Command { return &Command{verb: VerbStats} }

// NewVersion requests the server version.
func NewVersion() *Command { return &Command{verb: VerbVersion} }

// NewQuit asks the server to close the connection.
func NewQuit() *Command { return &Command{verb: VerbQuit} }

// Verb returns the operation this command performs.
func (c *Command) Verb() Verb { return c.verb }

// arithmetic reports whether the reply may be a bare counter line.
func (c *Command) arithmetic() bool {
	return c.verb == VerbIncr || c.verb == VerbDecr
}

// Encode produces the exact wire bytes for the command, CRLF-terminated.
// Store-family commands emit a header line and the raw payload line; the
// declared length is the byte length of the payload, untrimmed.
func (c *Command) Encode() []byte {
	var buf bytes.Buffer

	buf.WriteString(string(c.verb))

	switch c.verb {
	case VerbSet, VerbAdd, VerbReplace, VerbAppend, VerbPrepend:
		payload := c.item.String()
		buf.WriteByte(' ')
		buf.WriteString(c.keys[0].String())
		buf.WriteString(" 0 ")
		buf.WriteString(strconv.FormatUint(c.item.Seconds(), 10))
		buf.WriteByte(' ')
		buf.WriteString(strconv.Itoa(len(payload)))
		buf.WriteString(crlf)
		buf.WriteString(payload)

	case VerbGet, VerbGets:
		for _, key := range c.keys {
			buf.WriteByte(' ')
			buf.WriteString(key.String())
		}

	case VerbIncr, VerbDecr:
		buf.WriteByte(' ')
		buf.WriteString(c.keys[0].String())
		buf.WriteByte(' ')
		buf.WriteString(strconv.FormatUint(c.delta, 10))

	case VerbDelete:
		buf.WriteByte(' ')
		buf.WriteString(c.keys[0].String())
	}

	buf.WriteString(crlf)
	return buf.Bytes()
}
