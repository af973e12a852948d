// internal/player/mock.go
package player

import (
	"sync"
	"time"
)

// MockOutput is a test double for Output that records every sink it opens.
type MockOutput struct {
	mu       sync.Mutex
	sinks    []*MockSink
	failures map[string]error
	closed   bool
}

// NewMockOutput creates an empty mock output.
func NewMockOutput() *MockOutput {
	return &MockOutput{failures: make(map[string]error)}
}

func (o *MockOutput) Open(path string, startAt time.Duration) (Sink, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.failures[path]; err != nil {
		return nil, err
	}
	s := &MockSink{Path: path, StartAt: max(startAt, 0), paused: true, volume: 1}
	o.sinks = append(o.sinks, s)
	return s, nil
}

func (o *MockOutput) Close() error {
	o.mu.Lock()
	o.closed = true
	o.mu.Unlock()
	return nil
}

// Test helpers

// Fail makes every subsequent Open of path return err.
func (o *MockOutput) Fail(path string, err error) {
	o.mu.Lock()
	o.failures[path] = err
	o.mu.Unlock()
}

// Sinks returns the sinks opened so far, oldest first.
func (o *MockOutput) Sinks() []*MockSink {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]*MockSink(nil), o.sinks...)
}

// Last returns the most recently opened sink, or nil.
func (o *MockOutput) Last() *MockSink {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.sinks) == 0 {
		return nil
	}
	return o.sinks[len(o.sinks)-1]
}

func (o *MockOutput) Closed() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.closed
}

// MockSink is a test double for Sink.
type MockSink struct {
	Path    string
	StartAt time.Duration

	mu      sync.Mutex
	paused  bool
	stopped bool
	drained bool
	volume  float64
	history []float64
}

func (s *MockSink) Play() {
	s.mu.Lock()
	s.paused = false
	s.mu.Unlock()
}

func (s *MockSink) Pause() {
	s.mu.Lock()
	s.paused = true
	s.mu.Unlock()
}

func (s *MockSink) Stop() {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()
}

func (s *MockSink) SetVolume(level float64) {
	s.mu.Lock()
	s.volume = clampLevel(level)
	s.history = append(s.history, s.volume)
	s.mu.Unlock()
}

func (s *MockSink) Volume() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.volume
}

func (s *MockSink) Drained() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drained
}

func (s *MockSink) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

func (s *MockSink) Stopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

// Volumes returns every level passed to SetVolume, in order.
func (s *MockSink) Volumes() []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]float64(nil), s.history...)
}

// Finish simulates the track running out of audio.
func (s *MockSink) Finish() {
	s.mu.Lock()
	s.drained = true
	s.mu.Unlock()
}
