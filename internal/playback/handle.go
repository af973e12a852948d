package playback

import (
	"slices"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/llehouerou/presto/internal/library"
	"github.com/llehouerou/presto/internal/player"
)

// Handle is the caller side of a running engine. It is safe for
// concurrent use.
type Handle struct {
	inbox    *inbox
	playback *cell[Snapshot]
	order    *cell[[]int]
	subs     *subscribers
	settings Settings

	out       player.Output
	ownsOut   bool
	wg        sync.WaitGroup
	done      chan struct{}
	closeOnce sync.Once
}

// Open initializes the audio device and starts an engine on it.
// It fails when no output device is available.
func Open(catalog []library.Track, settings Settings, sampleRate int, opts Options) (*Handle, error) {
	out, err := player.NewSpeaker(sampleRate)
	if err != nil {
		return nil, errors.Wrap(err, "open audio output")
	}
	h := New(catalog, settings, out, opts)
	h.ownsOut = true
	return h, nil
}

// New starts the control loop and the elapsed-time ticker on out.
// The catalog must not be modified afterwards.
func New(catalog []library.Track, settings Settings, out player.Output, opts Options) *Handle {
	e := &engine{
		catalog:      slices.Clip(catalog),
		settings:     settings,
		out:          out,
		log:          zlog.With().Str("component", "playback").Logger(),
		inbox:        newInbox(),
		playback:     newSnapshotCell(LoopAll),
		subs:         &subscribers{},
		index:        -1,
		paused:       true,
		shuffleOrder: identity(len(catalog)),
		queue:        identity(len(catalog)),
	}
	e.order = newOrderCell(e.shuffleOrder)
	e.setLoopMode(opts.Loop)
	if opts.Shuffle {
		e.toggleShuffle()
	}

	h := &Handle{
		inbox:    e.inbox,
		playback: e.playback,
		order:    e.order,
		subs:     e.subs,
		settings: settings,
		out:      out,
		done:     make(chan struct{}),
	}

	stopTicker := make(chan struct{})
	h.wg.Go(func() {
		runTicker(e.playback, stopTicker)
	})
	h.wg.Go(func() {
		defer close(h.done)
		defer e.subs.closeAll()
		defer close(stopTicker)
		defer e.inbox.close()
		e.run()
	})
	return h
}

// Send enqueues cmd without blocking. It fails with ErrClosed once the
// engine has shut down.
func (h *Handle) Send(cmd Command) error {
	return h.inbox.send(cmd)
}

// Playback returns a read handle to the current snapshot.
func (h *Handle) Playback() Reader[Snapshot] {
	return h.playback
}

// ShuffleOrder returns a read handle to the current shuffle order.
func (h *Handle) ShuffleOrder() Reader[[]int] {
	return h.order
}

// Subscribe creates a new event subscription. Its Done channel is closed
// when the engine stops.
func (h *Handle) Subscribe() *Subscription {
	return h.subs.add()
}

// Done is closed once the control loop has terminated.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Shutdown fades out over fade, stops the control loop and waits for it
// and the ticker to exit. Later calls only wait.
func (h *Handle) Shutdown(fade time.Duration) {
	h.closeOnce.Do(func() {
		// Already closed means the loop is gone or going; just wait.
		_ = h.Send(Quit{FadeOut: fade})
		h.wg.Wait()
		if h.ownsOut {
			if err := h.out.Close(); err != nil {
				zlog.Warn().Err(err).Msg("closing audio output")
			}
		}
	})
	h.wg.Wait()
}

// Close shuts down with the configured quit fade-out.
func (h *Handle) Close() error {
	h.Shutdown(h.settings.QuitFadeOut)
	return nil
}
