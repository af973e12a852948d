package ui

import (
	"path/filepath"
	"slices"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/presto/internal/errmsg"
	"github.com/llehouerou/presto/internal/keymap"
	"github.com/llehouerou/presto/internal/playback"
)

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	key := msg.String()

	prefix := m.pendingKey
	m.pendingKey = ""
	action := m.keys.ResolveSequence(prefix, key)
	if action == "" && prefix != "" {
		action = m.keys.Resolve(key)
	}
	if action == "" && m.keys.IsPrefix(key) {
		m.pendingKey = key
		return m, nil
	}

	switch action {
	case keymap.ActionQuit:
		return m, tea.Quit

	case keymap.ActionFilter:
		m.filtering = true
		m.follow = false
		m.pendingFollow = -1
		m.dirty = true
		m.ensureSelectedVisible()
		return m, m.filter.Focus()

	case keymap.ActionToggleShuffle:
		want := !m.snap.Shuffle
		m.send(playback.ToggleShuffle{})
		m.snap.Shuffle = want
		m.dirty = true
		if want {
			m.reselect = &want
		} else {
			m.reselect = nil
			if d := m.display(); len(d) > 0 {
				m.setSelected(d[0])
			}
		}

	case keymap.ActionCycleLoop:
		mode := m.snap.Loop.Next()
		m.send(playback.SetLoopMode{Mode: mode})
		m.snap.Loop = mode

	case keymap.ActionJumpPlaying:
		if m.snap.HasTrack() {
			m.setSelected(m.snap.Index)
		}

	case keymap.ActionJumpStart:
		m.follow = false
		if d := m.display(); len(d) > 0 {
			m.setSelected(d[0])
		}

	case keymap.ActionJumpEnd:
		m.follow = false
		if d := m.display(); len(d) > 0 {
			m.setSelected(d[len(d)-1])
		}

	case keymap.ActionMoveDown:
		m.follow = false
		m.move(1)

	case keymap.ActionMoveUp:
		m.follow = false
		m.move(-1)

	case keymap.ActionSelect:
		m.playSelected()

	case keymap.ActionPlayPause:
		m.followOn()
		m.request(m.ctrl.PlayPause)

	case keymap.ActionNextTrack:
		m.followOn()
		m.request(m.ctrl.Next)

	case keymap.ActionPrevTrack:
		m.followOn()
		m.request(m.ctrl.Prev)

	case keymap.ActionSeekForward:
		m.send(playback.SeekBy{Seconds: m.scrub})

	case keymap.ActionSeekBack:
		m.send(playback.SeekBy{Seconds: -m.scrub})
	}
	return m, nil
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.filterKeys.Resolve(msg.String()) {
	case keymap.ActionClearFilter:
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.dirty = true
		m.ensureSelectedVisible()
		return m, nil

	case keymap.ActionSelect:
		if len(m.display()) == 0 {
			return m, nil
		}
		m.filtering = false
		m.filter.Blur()
		m.playSelected()
		return m, nil

	case keymap.ActionMoveDown:
		m.move(1)
		return m, nil

	case keymap.ActionMoveUp:
		m.move(-1)
		return m, nil

	case keymap.ActionQuit:
		return m, tea.Quit
	}

	before := m.filter.Value()
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() != before {
		m.dirty = true
		m.ensureSelectedVisible()
	}
	return m, cmd
}

// move steps the cursor through the display order, wrapping at both ends.
func (m *Model) move(delta int) {
	d := m.display()
	if len(d) == 0 {
		return
	}
	pos := slices.Index(d, m.Selected())
	switch {
	case pos < 0 && delta > 0:
		pos = 0
	case pos < 0:
		pos = len(d) - 1
	default:
		pos = ((pos+delta)%len(d) + len(d)) % len(d)
	}
	m.setSelected(d[pos])
}

// playSelected starts the selected track unless it is already playing.
func (m *Model) playSelected() {
	if len(m.catalog) == 0 {
		return
	}
	sel := m.Selected()
	if m.snap.State() == playback.StatePlaying && m.snap.Index == sel {
		return
	}
	m.follow = true
	m.pendingFollow = sel
	m.send(playback.Play{Index: sel})
}

func (m *Model) followOn() {
	if !m.filtering {
		m.follow = true
	}
}

func (m *Model) request(fn func() error) {
	if err := fn(); err != nil {
		m.log.Debug().Err(err).Msg("control request dropped")
	}
}

func formatError(ev playback.ErrorEvent) string {
	name := ""
	if ev.Path != "" {
		name = filepath.Base(ev.Path)
	}
	return errmsg.FormatWith(errmsg.PlaybackOp(ev.Op), name, ev.Err)
}
