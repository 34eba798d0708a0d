package memento

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"go.uber.org/multierr"

	"github.com/memento-cache/memento/protocol"
)

// Conn is the duplex byte stream a Connection drives. *net.TCPConn
// satisfies it; tests use a scripted implementation.
type Conn interface {
	io.ReadWriteCloser
	SetDeadline(t time.Time) error
}

// Connection drives the protocol codec over a single duplex byte stream.
// The protocol is strictly half-duplex: one request is written, then its
// response is decoded to completion before the next request may start. A
// mutex enforces the single in-flight request.
type Connection struct {
	conn   Conn
	writer *bufio.Writer
	dec    *protocol.Decoder

	mu     sync.Mutex
	closed bool
}

// NewConnection wraps an established byte stream.
func NewConnection(conn Conn) *Connection {
	return &Connection{
		conn:   conn,
		writer: bufio.NewWriter(conn),
		dec:    protocol.NewDecoder(),
	}
}

// DialConnection connects to a memcached server over TCP.
func DialConnection(ctx context.Context, addr string) (*Connection, error) {
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("memento: dial %s: %w", addr, err)
	}
	return NewConnection(conn), nil
}

// Execute writes the encoded command, flushes it fully, then reads until
// build produces a complete response. There is no internal timeout: a
// context deadline, when present, is mapped onto the stream deadline;
// cancelling otherwise requires closing the connection.
func (c *Connection) Execute(ctx context.Context, cmd *protocol.Command, build protocol.Build) (*protocol.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrConnectionClosed
	}

	if deadline, ok := ctx.Deadline(); ok {
		c.conn.SetDeadline(deadline)
	} else {
		c.conn.SetDeadline(time.Time{})
	}

	if _, err := c.writer.Write(cmd.Encode()); err != nil {
		c.closed = true
		return nil, fmt.Errorf("memento: write: %w", err)
	}
	if err := c.writer.Flush(); err != nil {
		c.closed = true
		return nil, fmt.Errorf("memento: flush: %w", err)
	}

	return c.readResponse(cmd, build)
}

// readResponse alternates decode attempts with transport reads until the
// response completes or the peer closes the stream. A close before any byte
// arrived yields a NoResponse result; a close mid-response is a reset.
func (c *Connection) readResponse(cmd *protocol.Command, build protocol.Build) (*protocol.Response, error) {
	eof := false
	for {
		resp, err := c.dec.TryDecode(cmd, build)
		if err != nil {
			return nil, err
		}
		if resp != nil {
			return resp, nil
		}

		if eof {
			c.closed = true
			if c.dec.Buffered() == 0 {
				return &protocol.Response{Type: protocol.TypeNoResponse}, nil
			}
			return nil, ErrConnectionReset
		}

		n, err := c.conn.Read(c.dec.Writable())
		c.dec.Commit(n)
		if err != nil {
			if errors.Is(err, io.EOF) {
				// Decode whatever arrived with the EOF, then classify.
				eof = true
				continue
			}
			c.closed = true
			return nil, fmt.Errorf("memento: read: %w", err)
		}
	}
}

// Close closes the underlying stream. Closing an already-closed connection
// is a no-op.
func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	return multierr.Append(c.writer.Flush(), c.conn.Close())
}
