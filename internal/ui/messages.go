package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/presto/internal/playback"
)

// TickMsg is sent periodically to refresh playback state.
type TickMsg time.Time

// QuitMsg asks the UI to exit. Remote controls send it through the program.
type QuitMsg struct{}

// ErrorMsg carries an engine error event to the status line.
type ErrorMsg playback.ErrorEvent

// ClosedMsg is sent when the engine has stopped.
type ClosedMsg struct{}

// TickCmd returns a command that sends TickMsg after TickInterval.
func TickCmd() tea.Cmd {
	return tea.Tick(TickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// WatchEvents returns a command that waits for the next engine error or
// for the engine to stop. Other events are left to the tick.
func (m Model) WatchEvents() tea.Cmd {
	if m.events == nil {
		return nil
	}
	sub := m.events
	return func() tea.Msg {
		select {
		case e := <-sub.Error:
			return ErrorMsg(e)
		case <-sub.Done:
			return ClosedMsg{}
		}
	}
}
