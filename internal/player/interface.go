// internal/player/interface.go
package player

import "time"

// Output opens sinks against an audio device.
type Output interface {
	// Open decodes path and returns a paused sink positioned at startAt.
	// Offsets past the end of the track are clamped to the end.
	Open(path string, startAt time.Duration) (Sink, error)
	Close() error
}

// Sink is one prepared decode of a single track.
// Volume is a linear gain between 0 and 1.
type Sink interface {
	Play()
	Pause()
	Stop()
	SetVolume(level float64)
	Volume() float64
	// Drained reports whether the decoded audio has been fully consumed.
	Drained() bool
}

// Verify implementations at compile time.
var (
	_ Output = (*Speaker)(nil)
	_ Output = (*MockOutput)(nil)
	_ Sink   = (*speakerSink)(nil)
	_ Sink   = (*MockSink)(nil)
)
