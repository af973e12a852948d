// internal/playback/state_test.go
package playback

import (
	"testing"
	"time"
)

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateStopped, "Stopped"},
		{StatePlaying, "Playing"},
		{StatePaused, "Paused"},
		{State(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestState_IsActive(t *testing.T) {
	tests := []struct {
		state State
		want  bool
	}{
		{StateStopped, false},
		{StatePlaying, true},
		{StatePaused, true},
	}
	for _, tt := range tests {
		if got := tt.state.IsActive(); got != tt.want {
			t.Errorf("%v.IsActive() = %v, want %v", tt.state, got, tt.want)
		}
	}
}

func TestLoopMode_NextCycles(t *testing.T) {
	tests := []struct {
		from LoopMode
		want LoopMode
	}{
		{NoLoop, LoopAll},
		{LoopAll, LoopOne},
		{LoopOne, NoLoop},
	}
	for _, tt := range tests {
		if got := tt.from.Next(); got != tt.want {
			t.Errorf("%v.Next() = %v, want %v", tt.from, got, tt.want)
		}
	}

	for _, start := range []LoopMode{NoLoop, LoopAll, LoopOne} {
		m := start
		for range 3 {
			m = m.Next()
		}
		if m != start {
			t.Errorf("three cycles from %v ended at %v", start, m)
		}
	}
}

func TestLoopMode_ZeroValueIsLoopAll(t *testing.T) {
	var m LoopMode
	if m != LoopAll {
		t.Errorf("zero LoopMode = %v, want loop-all", m)
	}
}

func TestParseLoopMode(t *testing.T) {
	for _, m := range []LoopMode{NoLoop, LoopAll, LoopOne} {
		got, err := ParseLoopMode(m.String())
		if err != nil {
			t.Fatalf("ParseLoopMode(%q) error = %v", m.String(), err)
		}
		if got != m {
			t.Errorf("ParseLoopMode(%q) = %v", m.String(), got)
		}
	}
	if _, err := ParseLoopMode("sometimes"); err == nil {
		t.Error("expected error for unknown mode")
	}
	if LoopMode(42).Valid() {
		t.Error("LoopMode(42) reported valid")
	}
}

func TestSnapshot_State(t *testing.T) {
	tests := []struct {
		name string
		snap Snapshot
		want State
	}{
		{"empty", Snapshot{Index: -1}, StateStopped},
		{"playing", Snapshot{Index: 2, Playing: true}, StatePlaying},
		{"paused", Snapshot{Index: 2, Elapsed: time.Second}, StatePaused},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.snap.State(); got != tt.want {
				t.Errorf("State() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStepDelay(t *testing.T) {
	tests := []struct {
		d     time.Duration
		steps int
		want  time.Duration
	}{
		{250 * time.Millisecond, 10, 25 * time.Millisecond},
		{0, 10, time.Millisecond},
		{5 * time.Millisecond, 10, time.Millisecond},
		{500 * time.Millisecond, 20, 25 * time.Millisecond},
		{1001 * time.Microsecond, 1, time.Millisecond},
	}
	for _, tt := range tests {
		if got := stepDelay(tt.d, tt.steps); got != tt.want {
			t.Errorf("stepDelay(%v, %d) = %v, want %v", tt.d, tt.steps, got, tt.want)
		}
	}
}

func TestSettings_StepsAtLeastOne(t *testing.T) {
	if got := (Settings{CrossfadeSteps: 0}).steps(); got != 1 {
		t.Errorf("steps() = %d, want 1", got)
	}
	if got := DefaultSettings().steps(); got != 10 {
		t.Errorf("default steps() = %d, want 10", got)
	}
}
