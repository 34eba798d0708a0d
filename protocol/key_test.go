package protocol

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewKey(t *testing.T) {
	key, err := NewKey("x")
	require.NoError(t, err)
	require.Equal(t, "x", key.String())

	key, err = NewKey(strings.Repeat("k", MaxKeyLength))
	require.NoError(t, err)
	require.Len(t, key.String(), MaxKeyLength)
}

func TestNewKeyTooLong(t *testing.T) {
	_, err := NewKey(strings.Repeat("k", MaxKeyLength+1))
	require.ErrorIs(t, err, ErrKeyTooLong)
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"raw key", "x", "x"},
		{"server-echoed key", "VALUE x 0 3", "x"},
		{"server-echoed long key", "VALUE " + strings.Repeat("k", 300) + " 0 3", strings.Repeat("k", 300)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := ParseKey(tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.want, key.String())
		})
	}
}

func TestParseKeyTooLong(t *testing.T) {
	_, err := ParseKey(strings.Repeat("k", 300))
	require.ErrorIs(t, err, ErrKeyTooLong)
}

func TestParseKeyValueLineWithoutKey(t *testing.T) {
	_, err := ParseKey("VALUE")
	require.ErrorIs(t, err, ErrMalformedResponse)
}
