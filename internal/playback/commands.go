package playback

import "time"

// Command is a request processed by the control loop.
// The set of implementations is closed to this package.
type Command interface {
	command()
}

// Play starts the catalog track at Index, queueing it alone if it is
// not already part of the queue.
type Play struct{ Index int }

// Stop unloads the current track.
type Stop struct{}

// TogglePause pauses or resumes the loaded track.
type TogglePause struct{}

// ToggleShuffle flips shuffle and reorders the existing queue.
type ToggleShuffle struct{}

// SetQueue replaces the queue with the sanitized, ordered candidates.
type SetQueue struct{ Indices []int }

// SetLoopMode changes the loop mode without touching playback.
type SetLoopMode struct{ Mode LoopMode }

// Next skips forward in the queue.
type Next struct{}

// Prev skips backward in the queue.
type Prev struct{}

// SeekBy moves the play position by a signed number of seconds.
type SeekBy struct{ Seconds int }

// Quit fades out and terminates the control loop.
type Quit struct{ FadeOut time.Duration }

func (Play) command()          {}
func (Stop) command()          {}
func (TogglePause) command()   {}
func (ToggleShuffle) command() {}
func (SetQueue) command()      {}
func (SetLoopMode) command()   {}
func (Next) command()          {}
func (Prev) command()          {}
func (SeekBy) command()        {}
func (Quit) command()          {}
