package protocol

import "bytes"

const initialBufferSize = 4096

var crlfBytes = []byte(crlf)

// Decoder accumulates raw transport bytes and decodes them into complete
// responses. Bytes belonging to a response are consumed only once that
// response is complete; anything after it stays buffered for the next
// decode. A Decoder belongs to exactly one connection and is not safe for
// concurrent use.
type Decoder struct {
	buf    []byte
	filled int
}

func NewDecoder() *Decoder {
	return &Decoder{buf: make([]byte, initialBufferSize)}
}

// Writable returns the spare capacity to read transport bytes into. The
// buffer doubles whenever it is fully occupied, so the returned slice is
// never empty.
func (d *Decoder) Writable() []byte {
	if d.filled == len(d.buf) {
		grown := make([]byte, len(d.buf)*2)
		copy(grown, d.buf[:d.filled])
		d.buf = grown
	}
	return d.buf[d.filled:]
}

// Commit marks the first n bytes of the writable region as filled.
func (d *Decoder) Commit(n int) {
	d.filled += n
}

// Buffered reports how many bytes are accumulated but not yet consumed.
func (d *Decoder) Buffered() int {
	return d.filled
}

// TryDecode attempts to decode one complete response for cmd from the
// accumulated bytes. It returns nil with no error when more bytes are
// needed; partial lines are never interpreted. On success, exactly the
// bytes of the decoded response are dropped from the buffer.
func (d *Decoder) TryDecode(cmd *Command, build Build) (*Response, error) {
	lines, ends := splitLines(d.buf[:d.filled])

	resp, used, err := build(lines, cmd)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, nil
	}

	if used > 0 {
		consumed := ends[used-1]
		d.filled = copy(d.buf, d.buf[consumed:d.filled])
	}
	return resp, nil
}

// splitLines extracts the complete CRLF-terminated lines from b. It returns
// the lines with their terminators stripped and, for each, the offset just
// past its terminator. Trailing bytes with no terminator are ignored.
func splitLines(b []byte) ([]string, []int) {
	var (
		lines []string
		ends  []int
	)
	off := 0
	for {
		i := bytes.Index(b[off:], crlfBytes)
		if i < 0 {
			return lines, ends
		}
		lines = append(lines, string(b[off:off+i]))
		off += i + len(crlfBytes)
		ends = append(ends, off)
	}
}
