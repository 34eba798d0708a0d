package memento

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/memento-cache/memento/internal/testutils"
	"github.com/memento-cache/memento/protocol"
)

func newTestClient(responses ...string) (*Client, *testutils.ConnMock) {
	mock := testutils.NewConnMock(responses...)
	return New(NewConnection(mock)), mock
}

func TestClientSet(t *testing.T) {
	client, mock := newTestClient("STORED\r\n")

	resp, err := client.Set(context.Background(), key(t, "x"), protocol.Expires("y", 2*time.Second))
	require.NoError(t, err)
	require.Equal(t, protocol.TypeStored, resp.Type)
	require.Equal(t, "set x 0 2 1\r\ny\r\n", mock.WrittenRequest())
}

func TestClientStoreFamily(t *testing.T) {
	tests := []struct {
		name string
		call func(*Client, context.Context, protocol.Key, protocol.Item) (*protocol.Response, error)
		want string
	}{
		{"add", (*Client).Add, "add x 0 0 1\r\ny\r\n"},
		{"replace", (*Client).Replace, "replace x 0 0 1\r\ny\r\n"},
		{"append", (*Client).Append, "append x 0 0 1\r\ny\r\n"},
		{"prepend", (*Client).Prepend, "prepend x 0 0 1\r\ny\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, mock := newTestClient("NOT_STORED\r\n")

			resp, err := tt.call(client, context.Background(), key(t, "x"), protocol.Timeless("y"))
			require.NoError(t, err)
			require.Equal(t, protocol.TypeNotStored, resp.Type)
			require.Equal(t, tt.want, mock.WrittenRequest())
		})
	}
}

func TestClientGet(t *testing.T) {
	client, mock := newTestClient("VALUE x 0 3\r\nlol\r\nEND\r\n")

	resp, err := client.Get(context.Background(), key(t, "x"))
	require.NoError(t, err)
	require.Equal(t, protocol.TypeValue, resp.Type)
	require.Equal(t, "lol", resp.Entry.Item.String())
	require.Equal(t, "get x\r\n", mock.WrittenRequest())
}

func TestClientGetMiss(t *testing.T) {
	client, _ := newTestClient("END\r\n")

	resp, err := client.Get(context.Background(), key(t, "x"))
	require.NoError(t, err)
	require.Equal(t, protocol.TypeNotFound, resp.Type)
}

func TestClientGets(t *testing.T) {
	client, mock := newTestClient("VALUE x 0 3\r\nlol\r\nVALUE y 0 2\r\nhi\r\nEND\r\n")

	resp, err := client.Gets(context.Background(), key(t, "x"), key(t, "y"))
	require.NoError(t, err)
	require.Equal(t, protocol.TypeValues, resp.Type)
	require.Len(t, resp.Entries, 2)
	require.Equal(t, "gets x y\r\n", mock.WrittenRequest())
}

func TestClientIncrementDecrement(t *testing.T) {
	client, mock := newTestClient("7\r\n")

	resp, err := client.Increment(context.Background(), key(t, "x"), 1)
	require.NoError(t, err)
	require.Equal(t, &protocol.Response{Type: protocol.TypeCounter, Counter: 7}, resp)
	require.Equal(t, "incr x 1\r\n", mock.WrittenRequest())

	client, mock = newTestClient("6\r\n")
	resp, err = client.Decrement(context.Background(), key(t, "x"), 1)
	require.NoError(t, err)
	require.Equal(t, uint64(6), resp.Counter)
	require.Equal(t, "decr x 1\r\n", mock.WrittenRequest())
}

func TestClientDelete(t *testing.T) {
	client, mock := newTestClient("DELETED\r\n")

	resp, err := client.Delete(context.Background(), key(t, "x"))
	require.NoError(t, err)
	require.Equal(t, protocol.TypeDeleted, resp.Type)
	require.Equal(t, "delete x\r\n", mock.WrittenRequest())
}

func TestClientStats(t *testing.T) {
	client, mock := newTestClient("STAT pid 1234\r\nSTAT version 1.6.0\r\nEND\r\n")

	resp, err := client.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, protocol.TypeStats, resp.Type)
	require.Equal(t, []protocol.Stat{
		{Field: protocol.StatPid, Count: 1234},
		{Field: protocol.StatVersion, Text: "1.6.0"},
	}, resp.Stats)
	require.Equal(t, "stats\r\n", mock.WrittenRequest())
}

func TestClientVersion(t *testing.T) {
	client, mock := newTestClient("VERSION 1.6.0\r\n")

	resp, err := client.Version(context.Background())
	require.NoError(t, err)
	require.Equal(t, "1.6.0", resp.Version)
	require.Equal(t, "version\r\n", mock.WrittenRequest())
}

func TestClientQuit(t *testing.T) {
	client, mock := newTestClient()

	resp, err := client.Quit(context.Background())
	require.NoError(t, err)
	require.Equal(t, protocol.TypeNoResponse, resp.Type)
	require.Equal(t, "quit\r\n", mock.WrittenRequest())
}

func TestClientCallCustomBuilder(t *testing.T) {
	client, _ := newTestClient("BANANA\r\n")

	// A substitute builder can decode replies the default one does not know.
	build := func(lines []string, cmd *protocol.Command) (*protocol.Response, int, error) {
		if len(lines) == 0 {
			return nil, 0, nil
		}
		return &protocol.Response{Type: protocol.TypeVersion, Version: lines[0]}, 1, nil
	}

	resp, err := client.Call(context.Background(), protocol.NewVersion(), build)
	require.NoError(t, err)
	require.Equal(t, "BANANA", resp.Version)
}
