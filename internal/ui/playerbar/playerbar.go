// Package playerbar renders the now-playing panel at the bottom of the screen.
package playerbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/llehouerou/presto/internal/icons"
	"github.com/llehouerou/presto/internal/library"
	"github.com/llehouerou/presto/internal/playback"
	"github.com/llehouerou/presto/internal/ui/render"
)

// Time fields accepted in Fields.Time.
const (
	TimeElapsed   = "elapsed"
	TimeTotal     = "total"
	TimeRemaining = "remaining"
)

// Height is the player bar height: border, track line, progress line, border.
const Height = 4

// Fields selects what the bar shows.
type Fields struct {
	Track    []string // library track fields, e.g. "display", "artist"
	TrackSep string
	Time     []string // TimeElapsed, TimeTotal, TimeRemaining
	TimeSep  string
}

// State holds everything needed to render the player bar.
type State struct {
	State    playback.State
	Track    library.Track
	Position time.Duration
	Loop     playback.LoopMode
	Shuffle  bool
}

// NewState builds a State from a snapshot. track is ignored when the
// snapshot has nothing loaded.
func NewState(s playback.Snapshot, track library.Track) State {
	st := State{
		State:   s.State(),
		Loop:    s.Loop,
		Shuffle: s.Shuffle,
	}
	if s.HasTrack() {
		st.Track = track
		st.Position = s.Elapsed
		if track.Duration > 0 {
			st.Position = min(st.Position, track.Duration)
		}
	}
	return st
}

// Render returns the player bar for the given width.
func Render(s State, f Fields, width int) string {
	inner := max(width-6, 0) // border and padding

	title := "Nothing playing"
	if s.State != playback.StateStopped {
		title = render.Sanitize(trackText(s.Track, f))
	}
	modes := modeText(s)
	top := render.Row(
		titleStyle().Render(render.Truncate(title, max(inner-lipgloss.Width(modes)-1, 0))),
		metaStyle().Render(modes),
		inner,
	)

	bottom := RenderProgressBar(s.Position, s.Track.Duration, inner, s.State, timeText(s, f))

	return barStyle().Padding(0, 2).Width(width - 2).Render(top + "\n" + bottom)
}

func trackText(t library.Track, f Fields) string {
	fields := f.Track
	if len(fields) == 0 {
		fields = []string{library.FieldDisplay}
	}
	parts := lo.FilterMap(fields, func(name string, _ int) (string, bool) {
		v := strings.TrimSpace(t.Field(name))
		return v, v != ""
	})
	if len(parts) == 0 {
		return t.Title
	}
	return strings.Join(parts, f.TrackSep)
}

func timeText(s State, f Fields) string {
	fields := f.Time
	if len(fields) == 0 {
		fields = []string{TimeElapsed, TimeTotal}
	}
	parts := lo.FilterMap(fields, func(name string, _ int) (string, bool) {
		switch name {
		case TimeElapsed:
			return formatDuration(s.Position), true
		case TimeTotal:
			return formatDuration(s.Track.Duration), true
		case TimeRemaining:
			return "-" + formatDuration(max(s.Track.Duration-s.Position, 0)), true
		}
		return "", false
	})
	return strings.Join(parts, f.TimeSep)
}

func modeText(s State) string {
	if s.Shuffle {
		return icons.Shuffle() + " · " + icons.Loop(s.Loop)
	}
	return icons.Loop(s.Loop)
}

func formatDuration(d time.Duration) string {
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", m, s)
}
