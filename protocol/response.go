package protocol

import (
	"strconv"
	"strings"
)

// Server reply tokens.
const (
	replyStored    = "STORED"
	replyNotStored = "NOT_STORED"
	replyExists    = "EXISTS"
	replyNotFound  = "NOT_FOUND"
	replyDeleted   = "DELETED"
	replyTouched   = "TOUCHED"
	replyError     = "ERROR"
	replyEnd       = "END"
	replyValue     = "VALUE"
	replyStat      = "STAT"
	replyVersion   = "VERSION"
)

// ResponseType identifies the shape of a server reply.
type ResponseType int

const (
	// TypeNoResponse means the connection closed before any byte arrived.
	TypeNoResponse ResponseType = iota
	TypeStored
	TypeNotStored
	TypeExists
	TypeNotFound
	TypeDeleted
	TypeTouched
	TypeError
	TypeValue
	TypeValues
	TypeStats
	TypeCounter
	TypeVersion
)

var responseTypeNames = map[ResponseType]string{
	TypeNoResponse: "NoResponse",
	TypeStored:     "Stored",
	TypeNotStored:  "NotStored",
	TypeExists:     "Exists",
	TypeNotFound:   "NotFound",
	TypeDeleted:    "Deleted",
	TypeTouched:    "Touched",
	TypeError:      "Error",
	TypeValue:      "Value",
	TypeValues:     "Values",
	TypeStats:      "Stats",
	TypeCounter:    "Counter",
	TypeVersion:    "Version",
}

func (t ResponseType) String() string {
	if name, ok := responseTypeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// Entry is one key/item pair from a VALUE block.
type Entry struct {
	Key  Key
	Item Item
}

// Response is a decoded server reply. Type selects which payload fields
// are meaningful.
type Response struct {
	Type    ResponseType
	Entry   Entry   // TypeValue
	Entries []Entry // TypeValues, server order
	Stats   []Stat  // TypeStats, server order
	Counter uint64  // TypeCounter
	Version string  // TypeVersion
}

// Build turns complete reply lines into a response for the command that
// produced them. The returned count is how many of the given lines belong
// to the response; (nil, 0, nil) means the reply is not complete yet and
// more bytes are needed. Implementations must not mutate lines.
type Build func(lines []string, cmd *Command) (*Response, int, error)

// BuildResponse is the default Build: it classifies the first token of the
// first line, honoring the originating command where the protocol alone is
// ambiguous (bare counter replies, get versus gets block shapes).
func BuildResponse(lines []string, cmd *Command) (*Response, int, error) {
	if len(lines) == 0 {
		return nil, 0, nil
	}

	first, rest, _ := strings.Cut(lines[0], " ")

	switch first {
	case replyStored:
		return &Response{Type: TypeStored}, 1, nil
	case replyNotStored:
		return &Response{Type: TypeNotStored}, 1, nil
	case replyExists:
		return &Response{Type: TypeExists}, 1, nil
	case replyNotFound:
		return &Response{Type: TypeNotFound}, 1, nil
	case replyDeleted:
		return &Response{Type: TypeDeleted}, 1, nil
	case replyTouched:
		return &Response{Type: TypeTouched}, 1, nil
	case replyError:
		return &Response{Type: TypeError}, 1, nil
	case replyEnd:
		// A lone END is an empty get result.
		return &Response{Type: TypeNotFound}, 1, nil
	case replyVersion:
		return &Response{Type: TypeVersion, Version: rest}, 1, nil
	case replyValue:
		return buildValues(lines, cmd)
	case replyStat:
		return buildStats(lines)
	}

	if first != "" && cmd.arithmetic() {
		counter, err := strconv.ParseUint(first, 10, 64)
		if err != nil {
			return nil, 0, malformedf("counter reply %q is not a number", first)
		}
		return &Response{Type: TypeCounter, Counter: counter}, 1, nil
	}

	// Unrecognized token: treat as not-yet-complete so protocol extensions
	// keep the connection readable instead of failing hard.
	return nil, 0, nil
}

// buildValues assembles a VALUE block. The block is complete only once the
// END terminator line has arrived; until then nothing is consumed.
func buildValues(lines []string, cmd *Command) (*Response, int, error) {
	end := terminatorIndex(lines)
	if end < 0 {
		return nil, 0, nil
	}

	body := lines[:end]
	if len(body)%2 != 0 {
		return nil, 0, malformedf("VALUE block has %d lines, want header/payload pairs", len(body))
	}

	entries := make([]Entry, 0, len(body)/2)
	for i := 0; i < len(body); i += 2 {
		if err := checkValueHeader(body[i]); err != nil {
			return nil, 0, err
		}
		key, err := ParseKey(body[i])
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, Entry{Key: key, Item: Timeless(body[i+1])})
	}

	if cmd.Verb() == VerbGet {
		if len(entries) != 1 {
			return nil, 0, malformedf("get reply carries %d values, want exactly 1", len(entries))
		}
		return &Response{Type: TypeValue, Entry: entries[0]}, end + 1, nil
	}
	return &Response{Type: TypeValues, Entries: entries}, end + 1, nil
}

// checkValueHeader validates a "VALUE <key> <flags> <bytes>" header line.
func checkValueHeader(line string) error {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return malformedf("VALUE header %q has %d fields, want 4", line, len(fields))
	}
	if _, err := strconv.ParseUint(fields[2], 10, 32); err != nil {
		return malformedf("VALUE header flags %q is not a number", fields[2])
	}
	if _, err := strconv.ParseUint(fields[3], 10, 64); err != nil {
		return malformedf("VALUE header length %q is not a number", fields[3])
	}
	return nil
}

// buildStats assembles a STAT block, terminated by END like a VALUE block.
func buildStats(lines []string) (*Response, int, error) {
	end := terminatorIndex(lines)
	if end < 0 {
		return nil, 0, nil
	}

	stats := make([]Stat, 0, end)
	for _, line := range lines[:end] {
		stat, err := ParseStat(line)
		if err != nil {
			return nil, 0, err
		}
		stats = append(stats, stat)
	}
	return &Response{Type: TypeStats, Stats: stats}, end + 1, nil
}

func terminatorIndex(lines []string) int {
	for i, line := range lines {
		if line == replyEnd {
			return i
		}
	}
	return -1
}
