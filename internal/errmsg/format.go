// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Startup
	OpConfigLoad    Op = "load configuration"
	OpLogInit       Op = "initialize logging"
	OpAudioInit     Op = "open audio output"
	OpRemoteStart   Op = "start media controls"
	OpStderrCapture Op = "capture audio library output"
	OpUIRun         Op = "run the terminal interface"

	// Library
	OpLibraryScan Op = "scan library"

	// Playback
	OpPlaybackStart Op = "start playback"
	OpPlaybackSeek  Op = "seek"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}

// PlaybackOp maps an engine error operation ("play", "seek") to an Op.
func PlaybackOp(op string) Op {
	if op == "seek" {
		return OpPlaybackSeek
	}
	return OpPlaybackStart
}
