package ui

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/presto/internal/icons"
	"github.com/llehouerou/presto/internal/keymap"
	"github.com/llehouerou/presto/internal/library"
	"github.com/llehouerou/presto/internal/playback"
	"github.com/llehouerou/presto/internal/ui/playerbar"
	"github.com/llehouerou/presto/internal/ui/render"
	"github.com/llehouerou/presto/internal/ui/styles"
)

// helpActions are the list actions advertised on the status line.
var helpActions = []keymap.Action{
	keymap.ActionFilter,
	keymap.ActionSelect,
	keymap.ActionPlayPause,
	keymap.ActionPrevTrack,
	keymap.ActionNextTrack,
	keymap.ActionToggleShuffle,
	keymap.ActionCycleLoop,
	keymap.ActionQuit,
}

// View implements tea.Model.
func (m Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}
	s := styles.T().S()
	width := m.Width()

	var b strings.Builder
	b.WriteString(s.Header.Render(render.Center(render.Truncate(m.cfg.HeaderText, width), width)))
	b.WriteByte('\n')

	d := m.display()
	height := m.listHeight()
	for row := range height {
		pos := m.offset + row
		if pos < len(d) {
			b.WriteString(m.renderRow(d[pos], width))
		} else if pos == 0 {
			b.WriteString(s.Subtle.Render(render.Pad(emptyText(m), width)))
		}
		b.WriteByte('\n')
	}

	if m.showFilter() {
		b.WriteString(render.Truncate(m.filter.View(), width))
		b.WriteByte('\n')
	}

	if m.status != "" {
		b.WriteString(s.Error.Render(render.Truncate(m.status, width)))
	} else {
		b.WriteString(s.Subtle.Render(render.Truncate(keymap.Help(m.keys, helpActions...), width)))
	}
	b.WriteByte('\n')

	b.WriteString(playerbar.Render(playerbar.NewState(m.snap, m.nowPlaying()), m.barFields(), width))
	return b.String()
}

func emptyText(m Model) string {
	if len(m.catalog) == 0 {
		return "No audio files found"
	}
	return "No match"
}

func (m Model) showFilter() bool {
	return m.filtering || m.filter.Value() != ""
}

func (m Model) listHeight() int {
	overhead := HeaderHeight + StatusHeight + playerbar.Height
	if m.showFilter() {
		overhead += FilterHeight
	}
	return m.ListHeight(overhead)
}

func (m Model) renderRow(idx, width int) string {
	s := styles.T().S()
	playing := m.snap.HasTrack() && m.snap.Index == idx

	marker := "  "
	style := s.Base
	if playing {
		marker = icons.State(playback.StatePlaying) + " "
		style = s.Playing
	}
	if idx == m.Selected() {
		style = style.Background(styles.T().BgCursor)
	}

	label := render.Sanitize(m.catalog[idx].Display)
	text := render.Truncate(label, width-lipgloss.Width(marker))

	var positions []int
	if q := strings.TrimSpace(m.filter.Value()); q != "" {
		positions, _ = FuzzyMatch(label, q)
		if text != label {
			// The last visible rune is the ellipsis.
			limit := utf8.RuneCountInString(text) - 1
			positions = cut(positions, limit)
		}
	}

	row := render.Highlight(text, positions, style, s.Match.Inherit(style))
	pad := max(width-lipgloss.Width(marker)-lipgloss.Width(text), 0)
	return style.Render(marker) + row + style.Render(strings.Repeat(" ", pad))
}

func cut(positions []int, limit int) []int {
	for i, p := range positions {
		if p >= limit {
			return positions[:i]
		}
	}
	return positions
}

func (m Model) nowPlaying() library.Track {
	if m.snap.HasTrack() && m.snap.Index < len(m.catalog) {
		return m.catalog[m.snap.Index]
	}
	return library.Track{}
}

func (m Model) barFields() playerbar.Fields {
	return playerbar.Fields{
		Track:    m.cfg.NowPlayingTrackFields,
		TrackSep: m.cfg.NowPlayingTrackSeparator,
		Time:     m.cfg.NowPlayingTimeFields,
		TimeSep:  m.cfg.NowPlayingTimeSeparator,
	}
}

// scrollToSelected keeps the cursor ScrollMargin rows away from the edges
// of the list when possible.
func (m *Model) scrollToSelected() {
	d := m.display()
	height := m.listHeight()
	if height <= 0 || len(d) == 0 {
		m.offset = 0
		return
	}
	pos := max(slices.Index(d, m.Selected()), 0)
	margin := min(ScrollMargin, (height-1)/2)

	if pos < m.offset+margin {
		m.offset = max(pos-margin, 0)
	}
	if pos >= m.offset+height-margin {
		m.offset = pos - height + margin + 1
	}
	m.offset = min(max(m.offset, 0), max(len(d)-height, 0))
}
