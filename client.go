// Package memento is a client for the memcached text protocol over a single
// TCP connection: one request in flight at a time, one typed response per
// command. Higher layers wanting concurrency should hold one Client per
// concurrent caller rather than share one.
package memento

import (
	"context"

	"go.uber.org/zap"

	"github.com/memento-cache/memento/protocol"
)

// Client is a memcached client owning exactly one connection.
type Client struct {
	conn *Connection
	log  *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLogger attaches a logger; command dispatch is logged at debug level.
// The default is a nop logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New builds a client over an established connection.
func New(conn *Connection, opts ...Option) *Client {
	c := &Client{conn: conn, log: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Dial connects to a memcached server and returns a client for it.
func Dial(ctx context.Context, addr string, opts ...Option) (*Client, error) {
	conn, err := DialConnection(ctx, addr)
	if err != nil {
		return nil, err
	}
	return New(conn, opts...), nil
}

// Set stores item under key, replacing any existing value.
func (c *Client) Set(ctx context.Context, key protocol.Key, item protocol.Item) (*protocol.Response, error) {
	return c.Do(ctx, protocol.NewSet(key, item))
}

// Add stores item under key only if the key does not exist yet.
func (c *Client) Add(ctx context.Context, key protocol.Key, item protocol.Item) (*protocol.Response, error) {
	return c.Do(ctx, protocol.NewAdd(key, item))
}

// Replace stores item under key only if the key already exists.
func (c *Client) Replace(ctx context.Context, key protocol.Key, item protocol.Item) (*protocol.Response, error) {
	return c.Do(ctx, protocol.NewReplace(key, item))
}

// Append appends the item's value to the entry stored under key.
func (c *Client) Append(ctx context.Context, key protocol.Key, item protocol.Item) (*protocol.Response, error) {
	return c.Do(ctx, protocol.NewAppend(key, item))
}

// Prepend prepends the item's value to the entry stored under key.
func (c *Client) Prepend(ctx context.Context, key protocol.Key, item protocol.Item) (*protocol.Response, error) {
	return c.Do(ctx, protocol.NewPrepend(key, item))
}

// Get retrieves the entry stored under key.
func (c *Client) Get(ctx context.Context, key protocol.Key) (*protocol.Response, error) {
	return c.Do(ctx, protocol.NewGet(key))
}

// Gets retrieves several keys in one round trip. Entries come back in
// server order.
func (c *Client) Gets(ctx context.Context, keys ...protocol.Key) (*protocol.Response, error) {
	return c.Do(ctx, protocol.NewGets(keys...))
}

// Increment increments the counter stored under key by delta.
func (c *Client) Increment(ctx context.Context, key protocol.Key, delta uint64) (*protocol.Response, error) {
	return c.Do(ctx, protocol.NewIncr(key, delta))
}

// Decrement decrements the counter stored under key by delta.
func (c *Client) Decrement(ctx context.Context, key protocol.Key, delta uint64) (*protocol.Response, error) {
	return c.Do(ctx, protocol.NewDecr(key, delta))
}

// Delete removes the entry stored under key.
func (c *Client) Delete(ctx context.Context, key protocol.Key) (*protocol.Response, error) {
	return c.Do(ctx, protocol.NewDelete(key))
}

// Stats requests server statistics.
func (c *Client) Stats(ctx context.Context) (*protocol.Response, error) {
	return c.Do(ctx, protocol.NewStats())
}

// Version requests the server version.
func (c *Client) Version(ctx context.Context) (*protocol.Response, error) {
	return c.Do(ctx, protocol.NewVersion())
}

// Quit asks the server to close the connection.
func (c *Client) Quit(ctx context.Context) (*protocol.Response, error) {
	return c.Do(ctx, protocol.NewQuit())
}

// Do sends cmd and decodes its reply with the default response builder.
func (c *Client) Do(ctx context.Context, cmd *protocol.Command) (*protocol.Response, error) {
	return c.Call(ctx, cmd, protocol.BuildResponse)
}

// Call sends cmd and decodes its reply with build. This is the seam for
// substituting an alternate response decoder without touching the encoder
// or the connection loop.
func (c *Client) Call(ctx context.Context, cmd *protocol.Command, build protocol.Build) (*protocol.Response, error) {
	c.log.Debug("sending command", zap.String("verb", string(cmd.Verb())))
	resp, err := c.conn.Execute(ctx, cmd, build)
	if err != nil {
		c.log.Debug("command failed", zap.String("verb", string(cmd.Verb())), zap.Error(err))
		return nil, err
	}
	return resp, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}
