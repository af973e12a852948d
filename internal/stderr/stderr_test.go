//go:build !windows

package stderr

import (
	"bytes"
	"syscall"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapture_ForwardsLinesToLog(t *testing.T) {
	var buf bytes.Buffer
	c, err := Start(zerolog.New(&buf))
	require.NoError(t, err)

	// Write to fd 2 directly, the way C libraries do.
	_, err = syscall.Write(2, []byte("ALSA lib pcm.c: underrun occurred\n\n   \n"))
	require.NoError(t, err)
	c.Stop()

	out := buf.String()
	assert.Contains(t, out, "ALSA lib pcm.c: underrun occurred")
	assert.Contains(t, out, `"source":"stderr"`)
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("\n")), "blank lines are dropped")
}

func TestCapture_NilIsSafe(t *testing.T) {
	var c *Capture
	c.Stop()
}
