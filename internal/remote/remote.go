// Package remote translates transport-level control requests (media keys,
// MPRIS, UI shortcuts) into playback engine commands.
package remote

import (
	"sync"
	"time"

	"github.com/llehouerou/presto/internal/playback"
)

// Sender accepts engine commands. *playback.Handle implements it.
type Sender interface {
	Send(cmd playback.Command) error
}

// Controller answers control requests against the current snapshot.
// It is safe for concurrent use.
type Controller struct {
	sender     Sender
	playback   playback.Reader[playback.Snapshot]
	catalogLen int

	mu       sync.Mutex
	selected func() int
	onQuit   func()
}

// New creates a controller for a catalog of catalogLen tracks.
func New(sender Sender, pb playback.Reader[playback.Snapshot], catalogLen int) *Controller {
	return &Controller{
		sender:     sender,
		playback:   pb,
		catalogLen: catalogLen,
	}
}

// SetSelected registers the function returning the catalog index the user
// has selected. Play requests from a stopped state start that track.
func (c *Controller) SetSelected(fn func() int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = fn
}

// OnQuit registers the function run by Quit.
func (c *Controller) OnQuit(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onQuit = fn
}

func (c *Controller) selection() int {
	c.mu.Lock()
	fn := c.selected
	c.mu.Unlock()
	if fn == nil {
		return 0
	}
	return fn()
}

// State returns the engine state as last published.
func (c *Controller) State() playback.State {
	return c.playback.Load().State()
}

// Play resumes a paused track, otherwise starts the selected one.
func (c *Controller) Play() error {
	if c.State() == playback.StatePaused {
		return c.sender.Send(playback.TogglePause{})
	}
	if c.catalogLen == 0 {
		return nil
	}
	return c.sender.Send(playback.Play{Index: c.selection()})
}

// Pause pauses only when something is playing.
func (c *Controller) Pause() error {
	if c.State() != playback.StatePlaying {
		return nil
	}
	return c.sender.Send(playback.TogglePause{})
}

// PlayPause starts the selected track when stopped, otherwise toggles pause.
func (c *Controller) PlayPause() error {
	if c.State() == playback.StateStopped {
		if c.catalogLen == 0 {
			return nil
		}
		return c.sender.Send(playback.Play{Index: c.selection()})
	}
	return c.sender.Send(playback.TogglePause{})
}

func (c *Controller) Stop() error {
	return c.sender.Send(playback.Stop{})
}

func (c *Controller) Next() error {
	if c.catalogLen == 0 {
		return nil
	}
	return c.sender.Send(playback.Next{})
}

func (c *Controller) Prev() error {
	if c.catalogLen == 0 {
		return nil
	}
	return c.sender.Send(playback.Prev{})
}

// Seek moves the position by offset, truncated to whole seconds.
func (c *Controller) Seek(offset time.Duration) error {
	secs := int(offset / time.Second)
	if secs == 0 {
		return nil
	}
	return c.sender.Send(playback.SeekBy{Seconds: secs})
}

// SetPosition seeks to an absolute position in the loaded track.
func (c *Controller) SetPosition(pos time.Duration) error {
	s := c.playback.Load()
	if !s.HasTrack() {
		return nil
	}
	return c.Seek(max(0, pos) - s.Elapsed.Truncate(time.Second))
}

// SetLoopMode switches the loop mode if it differs from the current one.
func (c *Controller) SetLoopMode(m playback.LoopMode) error {
	if c.playback.Load().Loop == m {
		return nil
	}
	return c.sender.Send(playback.SetLoopMode{Mode: m})
}

// SetShuffle toggles shuffle when on differs from the current setting.
func (c *Controller) SetShuffle(on bool) error {
	if c.playback.Load().Shuffle == on {
		return nil
	}
	return c.sender.Send(playback.ToggleShuffle{})
}

// Quit runs the registered quit hook. The hook owns the shutdown.
func (c *Controller) Quit() error {
	c.mu.Lock()
	fn := c.onQuit
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
	return nil
}
