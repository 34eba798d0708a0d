// Package testutils provides a scripted connection for exercising the
// protocol codec without a real socket.
package testutils

import (
	"bytes"
	"strings"
	"time"
)

// ConnMock is a scripted duplex stream. Reads drain the pre-configured
// response data; once it is exhausted, Read reports EOF, which the
// connection loop sees as the peer closing.
type ConnMock struct {
	readBuf  *bytes.Buffer
	writeBuf *bytes.Buffer
	chunk    int
	closed   bool
}

// NewConnMock creates a scripted connection serving the given responses.
func NewConnMock(responses ...string) *ConnMock {
	return &ConnMock{
		readBuf:  bytes.NewBufferString(strings.Join(responses, "")),
		writeBuf: &bytes.Buffer{},
	}
}

// NewFragmentedConnMock creates a scripted connection that serves at most
// chunk bytes per Read, simulating fragmented socket reads.
func NewFragmentedConnMock(chunk int, responses ...string) *ConnMock {
	m := NewConnMock(responses...)
	m.chunk = chunk
	return m
}

func (m *ConnMock) Read(b []byte) (int, error) {
	if m.chunk > 0 && len(b) > m.chunk {
		b = b[:m.chunk]
	}
	return m.readBuf.Read(b)
}

func (m *ConnMock) Write(b []byte) (int, error) {
	return m.writeBuf.Write(b)
}

func (m *ConnMock) Close() error {
	m.closed = true
	return nil
}

func (m *ConnMock) SetDeadline(t time.Time) error { return nil }

// WrittenRequest returns the raw bytes written so far.
func (m *ConnMock) WrittenRequest() string {
	return m.writeBuf.String()
}

// Closed reports whether Close was called.
func (m *ConnMock) Closed() bool {
	return m.closed
}
