package player

import (
	"io"
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
)

// speakerSink is one track mixed into the speaker:
// ctrl -> seq(gain -> source, drained callback).
type speakerSink struct {
	ctrl   *beep.Ctrl
	gain   *effects.Gain
	closer io.Closer

	level    float64
	drained  atomic.Bool
	stopOnce sync.Once
}

func newSpeakerSink(src beep.Streamer, closer io.Closer) *speakerSink {
	s := &speakerSink{closer: closer, level: 1}
	s.gain = &effects.Gain{Streamer: src, Gain: 0}
	s.ctrl = &beep.Ctrl{
		Streamer: beep.Seq(s.gain, beep.Callback(func() { s.drained.Store(true) })),
		Paused:   true,
	}
	return s
}

func (s *speakerSink) Play() {
	speaker.Lock()
	s.ctrl.Paused = false
	speaker.Unlock()
}

func (s *speakerSink) Pause() {
	speaker.Lock()
	s.ctrl.Paused = true
	speaker.Unlock()
}

// Stop detaches the sink from the mixer and closes the decoder.
func (s *speakerSink) Stop() {
	s.stopOnce.Do(func() {
		speaker.Lock()
		s.ctrl.Streamer = nil
		speaker.Unlock()
		s.closer.Close()
	})
}

// SetVolume applies a linear gain, clamped to [0, 1].
func (s *speakerSink) SetVolume(level float64) {
	level = clampLevel(level)
	speaker.Lock()
	s.level = level
	s.gain.Gain = level - 1
	speaker.Unlock()
}

func (s *speakerSink) Volume() float64 {
	speaker.Lock()
	defer speaker.Unlock()
	return s.level
}

func (s *speakerSink) Drained() bool {
	return s.drained.Load()
}

func clampLevel(level float64) float64 {
	return min(max(level, 0), 1)
}
