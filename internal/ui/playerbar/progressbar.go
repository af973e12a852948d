package playerbar

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/presto/internal/icons"
	"github.com/llehouerou/presto/internal/playback"
)

var (
	filledBlock = "▓"
	emptyBlock  = "░"
)

// RenderProgressBar renders a block-style progress bar.
// Format: ▶  ▓▓▓▓▓░░░░░  1:23 / 4:56
func RenderProgressBar(position, duration time.Duration, width int, state playback.State, times string) string {
	status := statusSymbol(state)

	fixedWidth := lipgloss.Width(status) + 2 + 2 + lipgloss.Width(times)
	barWidth := width - fixedWidth

	if barWidth < 3 {
		// Too narrow for bar, just show times
		return status + "  " + progressTimeStyle().Render(times)
	}

	var ratio float64
	if duration > 0 {
		ratio = float64(position) / float64(duration)
	}
	filled := min(int(float64(barWidth)*ratio), barWidth)

	bar := progressBarFilled().Render(strings.Repeat(filledBlock, filled)) +
		progressBarEmpty().Render(strings.Repeat(emptyBlock, barWidth-filled))

	return status + "  " + bar + "  " + progressTimeStyle().Render(times)
}

func statusSymbol(s playback.State) string {
	return icons.State(s)
}
