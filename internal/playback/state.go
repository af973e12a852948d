// internal/playback/state.go
package playback

import (
	"time"

	"github.com/cockroachdb/errors"
)

// State represents the playback state.
type State int

const (
	StateStopped State = iota
	StatePlaying
	StatePaused
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if a track is loaded (playing or paused).
func (s State) IsActive() bool {
	return s == StatePlaying || s == StatePaused
}

// LoopMode governs auto-advance and manual-skip wraparound at queue
// boundaries. The zero value is LoopAll.
type LoopMode int

const (
	LoopAll LoopMode = iota
	LoopOne
	NoLoop
)

// String returns the canonical mode name.
func (m LoopMode) String() string {
	switch m {
	case LoopAll:
		return "loop-all"
	case LoopOne:
		return "loop-one"
	case NoLoop:
		return "no-loop"
	default:
		return "unknown"
	}
}

// Next returns the following mode in the cycle NoLoop -> LoopAll -> LoopOne -> NoLoop.
func (m LoopMode) Next() LoopMode {
	switch m {
	case NoLoop:
		return LoopAll
	case LoopAll:
		return LoopOne
	default:
		return NoLoop
	}
}

func (m LoopMode) Valid() bool {
	return m == LoopAll || m == LoopOne || m == NoLoop
}

// ParseLoopMode accepts the canonical names returned by String.
func ParseLoopMode(s string) (LoopMode, error) {
	for _, m := range []LoopMode{LoopAll, LoopOne, NoLoop} {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, errors.Newf("unknown loop mode %q", s)
}

// Settings are the transition parameters fixed at construction.
type Settings struct {
	Crossfade      time.Duration
	CrossfadeSteps int
	QuitFadeOut    time.Duration
}

// DefaultSettings returns a 250ms crossfade in 10 steps and a 500ms quit fade.
func DefaultSettings() Settings {
	return Settings{
		Crossfade:      250 * time.Millisecond,
		CrossfadeSteps: 10,
		QuitFadeOut:    500 * time.Millisecond,
	}
}

func (s Settings) steps() int {
	return max(s.CrossfadeSteps, 1)
}

// Options configure the engine's initial modes.
type Options struct {
	Loop    LoopMode
	Shuffle bool
}
