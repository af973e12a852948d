package playback

import (
	"time"

	"github.com/llehouerou/presto/internal/library"
)

// Operations reported in ErrorEvent.Op.
const (
	OpPlay = "play"
	OpSeek = "seek"
)

// StateChange is emitted when the derived playback state changes.
type StateChange struct {
	Previous State
	Current  State
}

// TrackChange is emitted whenever a track starts from the beginning,
// including a loop-one replay. Seeks do not emit it.
type TrackChange struct {
	PreviousIndex int // -1 if nothing was loaded
	Index         int
	Track         library.Track
}

// QueueChange is emitted when queue membership or order changes.
type QueueChange struct {
	Queue    []int
	Position int
}

// ModeChange is emitted when loop mode or shuffle changes.
type ModeChange struct {
	Loop    LoopMode
	Shuffle bool
}

// PositionChange is emitted after a seek.
type PositionChange struct {
	Position time.Duration
}

// ErrorEvent is emitted when a track cannot be played or seeked.
// The engine recovers on its own; the event is informational.
type ErrorEvent struct {
	Op    string // OpPlay or OpSeek
	Index int
	Path  string
	Err   error
}
