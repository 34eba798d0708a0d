package protocol

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestItemSeconds(t *testing.T) {
	require.Equal(t, uint64(0), Timeless("y").Seconds())
	require.Equal(t, uint64(2), Expires("y", 2*time.Second).Seconds())
	require.Equal(t, uint64(90), Expires("y", 90*time.Second).Seconds())

	// Sub-second TTLs round down to whole seconds.
	require.Equal(t, uint64(1), Expires("y", 1500*time.Millisecond).Seconds())
}

func TestItemString(t *testing.T) {
	require.Equal(t, "hello world", Timeless("hello world").String())
}
