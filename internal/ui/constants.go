// Package ui implements the terminal interface: the track list, the fuzzy
// filter and the player bar.
package ui

import "time"

const (
	// ScrollMargin is the number of items to keep visible above/below the cursor.
	ScrollMargin = 3

	// HeaderHeight is the title line above the list.
	HeaderHeight = 1

	// StatusHeight is the error/help line below the list.
	StatusHeight = 1

	// FilterHeight is the filter input line, shown while a filter is set.
	FilterHeight = 1

	// TickInterval is how often the snapshot is polled for redraw.
	TickInterval = 100 * time.Millisecond

	// StatusTimeout is how long an error stays on the status line.
	StatusTimeout = 8 * time.Second
)
