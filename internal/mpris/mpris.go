//go:build linux

// Package mpris exposes the player on the session bus as
// org.mpris.MediaPlayer2.presto so desktop media keys and tools like
// playerctl can drive it.
package mpris

import (
	"fmt"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/llehouerou/presto/internal/library"
	"github.com/llehouerou/presto/internal/playback"
	"github.com/llehouerou/presto/internal/remote"
)

// Name is the bus name suffix and the reported identity.
const Name = "presto"

// Adapter connects the playback engine to MPRIS over D-Bus.
type Adapter struct {
	server *server.Server
	log    zerolog.Logger
}

// New creates and starts a new MPRIS adapter. Requests are delegated to
// ctrl; properties are answered from the snapshot and the catalog.
func New(ctrl *remote.Controller, pb playback.Reader[playback.Snapshot], catalog []library.Track) (*Adapter, error) {
	a := &Adapter{
		log: zlog.With().Str("component", "mpris").Logger(),
	}
	a.server = server.NewServer(Name,
		&rootAdapter{ctrl: ctrl},
		&playerAdapter{ctrl: ctrl, playback: pb, catalog: catalog},
	)

	go func() {
		if err := a.server.Listen(); err != nil {
			a.log.Warn().Err(err).Msg("mpris server stopped")
		}
	}()
	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct {
	ctrl *remote.Controller
}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

func (r *rootAdapter) Quit() error {
	return r.ctrl.Quit()
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return true, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return Name, nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/flac", "audio/wav", "audio/ogg"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter and the
// loop status and shuffle extensions.
type playerAdapter struct {
	ctrl     *remote.Controller
	playback playback.Reader[playback.Snapshot]
	catalog  []library.Track
}

func (p *playerAdapter) Next() error {
	return p.ctrl.Next()
}

func (p *playerAdapter) Previous() error {
	return p.ctrl.Prev()
}

func (p *playerAdapter) Pause() error {
	return p.ctrl.Pause()
}

func (p *playerAdapter) PlayPause() error {
	return p.ctrl.PlayPause()
}

func (p *playerAdapter) Stop() error {
	return p.ctrl.Stop()
}

func (p *playerAdapter) Play() error {
	return p.ctrl.Play()
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	return p.ctrl.Seek(time.Duration(offset) * time.Microsecond)
}

func (p *playerAdapter) SetPosition(_ string, position types.Microseconds) error {
	return p.ctrl.SetPosition(time.Duration(position) * time.Microsecond)
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	switch p.playback.Load().State() {
	case playback.StatePlaying:
		return types.PlaybackStatusPlaying, nil
	case playback.StatePaused:
		return types.PlaybackStatusPaused, nil
	case playback.StateStopped:
		return types.PlaybackStatusStopped, nil
	}
	return types.PlaybackStatusStopped, nil
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	s := p.playback.Load()
	if !s.HasTrack() || s.Index >= len(p.catalog) {
		return types.Metadata{}, nil
	}
	track := p.catalog[s.Index]

	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(s.Index)),
		Length:  types.Microseconds(track.Duration.Microseconds()),
		Title:   track.Title,
		Album:   track.Album,
		Url:     "file://" + track.Path,
	}
	if track.Artist != "" {
		meta.Artist = []string{track.Artist}
	}
	if artPath := library.FindCover(track.Path); artPath != "" {
		meta.ArtUrl = "file://" + artPath
	}
	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetVolume(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Position() (int64, error) {
	return p.playback.Load().Elapsed.Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return len(p.catalog) > 0, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return len(p.catalog) > 0, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return len(p.catalog) > 0, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

// LoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) LoopStatus() (types.LoopStatus, error) {
	switch p.playback.Load().Loop {
	case playback.LoopOne:
		return types.LoopStatusTrack, nil
	case playback.LoopAll:
		return types.LoopStatusPlaylist, nil
	case playback.NoLoop:
		return types.LoopStatusNone, nil
	}
	return types.LoopStatusNone, nil
}

// SetLoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) SetLoopStatus(status types.LoopStatus) error {
	switch status {
	case types.LoopStatusNone:
		return p.ctrl.SetLoopMode(playback.NoLoop)
	case types.LoopStatusTrack:
		return p.ctrl.SetLoopMode(playback.LoopOne)
	case types.LoopStatusPlaylist:
		return p.ctrl.SetLoopMode(playback.LoopAll)
	}
	return nil
}

// Shuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) Shuffle() (bool, error) {
	return p.playback.Load().Shuffle, nil
}

// SetShuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) SetShuffle(shuffle bool) error {
	return p.ctrl.SetShuffle(shuffle)
}

func formatTrackID(index int) string {
	return fmt.Sprintf("/org/mpris/MediaPlayer2/track/%d", index)
}
