//go:build linux

package mpris

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/presto/internal/library"
	"github.com/llehouerou/presto/internal/playback"
	"github.com/llehouerou/presto/internal/remote"
)

type recorder struct{ cmds []playback.Command }

func (r *recorder) Send(cmd playback.Command) error {
	r.cmds = append(r.cmds, cmd)
	return nil
}

type snapshot struct{ s playback.Snapshot }

func (s *snapshot) Load() playback.Snapshot { return s.s }

func newPlayer(t *testing.T, s playback.Snapshot) (*playerAdapter, *recorder, []library.Track) {
	t.Helper()
	dir := t.TempDir()
	catalog := []library.Track{
		{Path: filepath.Join(dir, "a.mp3"), Title: "A", Artist: "X", Album: "L", Duration: 3 * time.Minute},
		{Path: filepath.Join(dir, "b.mp3"), Title: "B"},
	}
	r := &recorder{}
	snap := &snapshot{s: s}
	ctrl := remote.New(r, snap, len(catalog))
	return &playerAdapter{ctrl: ctrl, playback: snap, catalog: catalog}, r, catalog
}

func TestPlayer_PlaybackStatus(t *testing.T) {
	tests := []struct {
		snap playback.Snapshot
		want types.PlaybackStatus
	}{
		{playback.Snapshot{Index: -1}, types.PlaybackStatusStopped},
		{playback.Snapshot{Index: 0, Playing: true}, types.PlaybackStatusPlaying},
		{playback.Snapshot{Index: 0}, types.PlaybackStatusPaused},
	}
	for _, tt := range tests {
		p, _, _ := newPlayer(t, tt.snap)
		got, err := p.PlaybackStatus()
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestPlayer_Metadata(t *testing.T) {
	p, _, catalog := newPlayer(t, playback.Snapshot{Index: 0, Playing: true})
	meta, err := p.Metadata()
	require.NoError(t, err)

	assert.Equal(t, dbus.ObjectPath("/org/mpris/MediaPlayer2/track/0"), meta.TrackId)
	assert.Equal(t, "A", meta.Title)
	assert.Equal(t, []string{"X"}, meta.Artist)
	assert.Equal(t, "L", meta.Album)
	assert.Equal(t, "file://"+catalog[0].Path, meta.Url)
	assert.Equal(t, types.Microseconds(180_000_000), meta.Length)
	assert.Empty(t, meta.ArtUrl)
}

func TestPlayer_MetadataUnknownArtist(t *testing.T) {
	p, _, _ := newPlayer(t, playback.Snapshot{Index: 1, Playing: true})
	meta, err := p.Metadata()
	require.NoError(t, err)
	assert.Equal(t, "B", meta.Title)
	assert.Nil(t, meta.Artist)
}

func TestPlayer_MetadataStopped(t *testing.T) {
	p, _, _ := newPlayer(t, playback.Snapshot{Index: -1})
	meta, err := p.Metadata()
	require.NoError(t, err)
	assert.Equal(t, types.Metadata{}, meta)
}

func TestPlayer_Position(t *testing.T) {
	p, _, _ := newPlayer(t, playback.Snapshot{Index: 0, Elapsed: 1500 * time.Millisecond, Playing: true})
	pos, err := p.Position()
	require.NoError(t, err)
	assert.Equal(t, int64(1_500_000), pos)
}

func TestPlayer_Controls(t *testing.T) {
	p, r, _ := newPlayer(t, playback.Snapshot{Index: 0, Elapsed: 20 * time.Second, Playing: true})

	require.NoError(t, p.PlayPause())
	require.NoError(t, p.Next())
	require.NoError(t, p.Previous())
	require.NoError(t, p.Stop())
	require.NoError(t, p.Seek(types.Microseconds(10_000_000)))
	require.NoError(t, p.SetPosition("/org/mpris/MediaPlayer2/track/0", types.Microseconds(5_000_000)))

	assert.Equal(t, []playback.Command{
		playback.TogglePause{},
		playback.Next{},
		playback.Prev{},
		playback.Stop{},
		playback.SeekBy{Seconds: 10},
		playback.SeekBy{Seconds: -15},
	}, r.cmds)
}

func TestPlayer_LoopAndShuffle(t *testing.T) {
	p, r, _ := newPlayer(t, playback.Snapshot{Index: -1, Loop: playback.LoopAll})

	status, err := p.LoopStatus()
	require.NoError(t, err)
	assert.Equal(t, types.LoopStatusPlaylist, status)

	require.NoError(t, p.SetLoopStatus(types.LoopStatusTrack))
	require.NoError(t, p.SetLoopStatus(types.LoopStatusPlaylist))
	require.NoError(t, p.SetShuffle(true))

	assert.Equal(t, []playback.Command{
		playback.SetLoopMode{Mode: playback.LoopOne},
		playback.ToggleShuffle{},
	}, r.cmds)
}

func TestRoot_Quit(t *testing.T) {
	ctrl := remote.New(&recorder{}, &snapshot{s: playback.Snapshot{Index: -1}}, 0)
	quit := false
	ctrl.OnQuit(func() { quit = true })

	root := &rootAdapter{ctrl: ctrl}
	require.NoError(t, root.Quit())
	assert.True(t, quit)

	can, err := root.CanQuit()
	require.NoError(t, err)
	assert.True(t, can)

	id, err := root.Identity()
	require.NoError(t, err)
	assert.Equal(t, "presto", id)
}
