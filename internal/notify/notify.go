// Package notify provides desktop notifications via D-Bus.
package notify

import (
	"strings"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/llehouerou/presto/internal/library"
	"github.com/llehouerou/presto/internal/playback"
)

// Urgency is the freedesktop notification urgency hint.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// Notification contains data for a desktop notification.
type Notification struct {
	Title      string  // Summary text (required)
	Body       string  // Body text (optional, supports basic markup)
	Icon       string  // Path to image file or icon name (optional)
	Timeout    int32   // ms, -1 = server default, 0 = never expire
	ReplacesID uint32  // 0 = new notification, >0 = replace existing
	Urgency    Urgency // Low, Normal, Critical
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify sends a notification and returns its ID.
	// Returns 0 and nil error if notifications are disabled or unavailable.
	Notify(n Notification) (uint32, error)
	// Close closes a notification by ID.
	Close(id uint32) error
}

// stubNotifier drops notifications. It stands in when no notification
// service can be reached.
type stubNotifier struct{}

func (stubNotifier) Notify(Notification) (uint32, error) { return 0, nil }
func (stubNotifier) Close(uint32) error                  { return nil }

// Options configures a NowPlaying watcher.
type Options struct {
	ShowAlbumArt bool
	Timeout      int32
}

// NowPlaying posts a notification for every track change. Each one
// replaces the previous, so at most one is on screen.
type NowPlaying struct {
	notifier Notifier
	opts     Options
	lastID   uint32
	log      zerolog.Logger
}

func NewNowPlaying(n Notifier, opts Options) *NowPlaying {
	return &NowPlaying{
		notifier: n,
		opts:     opts,
		log:      zlog.With().Str("component", "notify").Logger(),
	}
}

// Run posts notifications for tracks until done is closed.
func (w *NowPlaying) Run(tracks <-chan playback.TrackChange, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case ev := <-tracks:
			w.send(ev.Track)
		}
	}
}

func (w *NowPlaying) send(t library.Track) {
	if w.notifier == nil {
		return
	}
	n := Notification{
		Title:      lo.CoalesceOrEmpty(t.Title, t.Display),
		Body:       strings.Join(lo.Compact([]string{t.Artist, t.Album}), " · "),
		Timeout:    w.opts.Timeout,
		ReplacesID: w.lastID,
		Urgency:    UrgencyLow,
	}
	if w.opts.ShowAlbumArt {
		n.Icon = library.FindCover(t.Path)
	}

	id, err := w.notifier.Notify(n)
	if err != nil {
		w.log.Debug().Err(err).Str("path", t.Path).Msg("now playing notification failed")
		return
	}
	w.lastID = id
}
