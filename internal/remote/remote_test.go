package remote

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/presto/internal/playback"
)

type recorder struct {
	mu   sync.Mutex
	cmds []playback.Command
	err  error
}

func (r *recorder) Send(cmd playback.Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.cmds = append(r.cmds, cmd)
	return nil
}

func (r *recorder) sent() []playback.Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]playback.Command(nil), r.cmds...)
}

type fixed playback.Snapshot

func (f fixed) Load() playback.Snapshot { return playback.Snapshot(f) }

var (
	stopped = fixed{Index: -1}
	playing = fixed{Index: 3, Elapsed: 42*time.Second + 700*time.Millisecond, Playing: true}
	paused  = fixed{Index: 3, Elapsed: 10 * time.Second}
)

func newController(s fixed, catalogLen int) (*Controller, *recorder) {
	r := &recorder{}
	c := New(r, s, catalogLen)
	c.SetSelected(func() int { return 7 })
	return c, r
}

func TestController_Requests(t *testing.T) {
	tests := []struct {
		name    string
		state   fixed
		tracks  int
		request func(*Controller) error
		want    []playback.Command
	}{
		{"play when stopped starts selection", stopped, 10, (*Controller).Play, []playback.Command{playback.Play{Index: 7}}},
		{"play when playing restarts selection", playing, 10, (*Controller).Play, []playback.Command{playback.Play{Index: 7}}},
		{"play when paused resumes", paused, 10, (*Controller).Play, []playback.Command{playback.TogglePause{}}},
		{"play with empty catalog", stopped, 0, (*Controller).Play, nil},
		{"pause when playing", playing, 10, (*Controller).Pause, []playback.Command{playback.TogglePause{}}},
		{"pause when paused", paused, 10, (*Controller).Pause, nil},
		{"pause when stopped", stopped, 10, (*Controller).Pause, nil},
		{"playpause when stopped", stopped, 10, (*Controller).PlayPause, []playback.Command{playback.Play{Index: 7}}},
		{"playpause when playing", playing, 10, (*Controller).PlayPause, []playback.Command{playback.TogglePause{}}},
		{"playpause when paused", paused, 10, (*Controller).PlayPause, []playback.Command{playback.TogglePause{}}},
		{"playpause stopped empty catalog", stopped, 0, (*Controller).PlayPause, nil},
		{"stop", playing, 10, (*Controller).Stop, []playback.Command{playback.Stop{}}},
		{"next", playing, 10, (*Controller).Next, []playback.Command{playback.Next{}}},
		{"next with empty catalog", stopped, 0, (*Controller).Next, nil},
		{"prev", playing, 10, (*Controller).Prev, []playback.Command{playback.Prev{}}},
		{"prev with empty catalog", stopped, 0, (*Controller).Prev, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, r := newController(tt.state, tt.tracks)
			require.NoError(t, tt.request(c))
			assert.Equal(t, tt.want, r.sent())
		})
	}
}

func TestController_Seek(t *testing.T) {
	tests := []struct {
		name   string
		offset time.Duration
		want   []playback.Command
	}{
		{"forward", 5 * time.Second, []playback.Command{playback.SeekBy{Seconds: 5}}},
		{"backward", -3 * time.Second, []playback.Command{playback.SeekBy{Seconds: -3}}},
		{"fraction truncated", 2500 * time.Millisecond, []playback.Command{playback.SeekBy{Seconds: 2}}},
		{"below a second", 400 * time.Millisecond, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, r := newController(playing, 10)
			require.NoError(t, c.Seek(tt.offset))
			assert.Equal(t, tt.want, r.sent())
		})
	}
}

func TestController_SetPosition(t *testing.T) {
	c, r := newController(playing, 10)
	require.NoError(t, c.SetPosition(60*time.Second))
	require.NoError(t, c.SetPosition(0))
	assert.Equal(t, []playback.Command{
		playback.SeekBy{Seconds: 18},
		playback.SeekBy{Seconds: -42},
	}, r.sent())

	c, r = newController(stopped, 10)
	require.NoError(t, c.SetPosition(time.Minute))
	assert.Empty(t, r.sent())
}

func TestController_Modes(t *testing.T) {
	state := fixed{Index: -1, Loop: playback.LoopAll}
	c, r := newController(state, 10)

	require.NoError(t, c.SetLoopMode(playback.LoopAll))
	require.NoError(t, c.SetLoopMode(playback.LoopOne))
	require.NoError(t, c.SetShuffle(false))
	require.NoError(t, c.SetShuffle(true))

	assert.Equal(t, []playback.Command{
		playback.SetLoopMode{Mode: playback.LoopOne},
		playback.ToggleShuffle{},
	}, r.sent())
}

func TestController_Quit(t *testing.T) {
	c, r := newController(playing, 10)
	require.NoError(t, c.Quit(), "no hook registered")

	called := 0
	c.OnQuit(func() { called++ })
	require.NoError(t, c.Quit())
	assert.Equal(t, 1, called)
	assert.Empty(t, r.sent(), "quit is handled by the hook, not the engine")
}

func TestController_DefaultSelection(t *testing.T) {
	r := &recorder{}
	c := New(r, stopped, 10)
	require.NoError(t, c.Play())
	assert.Equal(t, []playback.Command{playback.Play{Index: 0}}, r.sent())
}

func TestController_SendError(t *testing.T) {
	c, r := newController(playing, 10)
	r.err = playback.ErrClosed
	err := c.Stop()
	assert.True(t, errors.Is(err, playback.ErrClosed))
}
