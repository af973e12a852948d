// Package icons holds the glyphs used for playback indicators.
package icons

import "github.com/llehouerou/presto/internal/playback"

// Style represents the icon style to use.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icons holds the icon characters for the current style.
type Icons struct {
	Playing string
	Paused  string
	Stopped string
	Shuffle string
	LoopAll string
	LoopOne string
	NoLoop  string
}

var (
	nerdIcons = Icons{
		Playing: "\uf04b",     // nf-fa-play
		Paused:  "\uf04c",     // nf-fa-pause
		Stopped: "\uf04d",     // nf-fa-stop
		Shuffle: "\U000f049f", // nf-md-shuffle
		LoopAll: "\U000f0456", // nf-md-repeat
		LoopOne: "\U000f0458", // nf-md-repeat_once
		NoLoop:  "\U000f0457", // nf-md-repeat_off
	}

	unicodeIcons = Icons{
		Playing: "▶",
		Paused:  "⏸",
		Stopped: "■",
		Shuffle: "🔀",
		LoopAll: "🔁",
		LoopOne: "🔂",
		NoLoop:  "➡",
	}

	// noneIcons spells modes out with their config names.
	noneIcons = Icons{
		Playing: "▶",
		Paused:  "⏸",
		Stopped: "■",
		Shuffle: "shuffle",
		LoopAll: playback.LoopAll.String(),
		LoopOne: playback.LoopOne.String(),
		NoLoop:  playback.NoLoop.String(),
	}

	// current holds the active icon set
	current = noneIcons
)

// Init initializes the icons based on the style.
// Call this once at startup with the config value.
func Init(style string) {
	switch Style(style) {
	case StyleNerd:
		current = nerdIcons
	case StyleUnicode:
		current = unicodeIcons
	default:
		current = noneIcons
	}
}

// State returns the indicator for a playback state.
func State(s playback.State) string {
	switch s {
	case playback.StatePlaying:
		return current.Playing
	case playback.StatePaused:
		return current.Paused
	default:
		return current.Stopped
	}
}

// Loop returns the indicator for a loop mode.
func Loop(m playback.LoopMode) string {
	switch m {
	case playback.LoopOne:
		return current.LoopOne
	case playback.NoLoop:
		return current.NoLoop
	default:
		return current.LoopAll
	}
}

// Shuffle returns the shuffle icon.
func Shuffle() string {
	return current.Shuffle
}
