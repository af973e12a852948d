package player

import (
	"math"
	"testing"

	"github.com/gopxl/beep/v2"
)

type closeCounter struct{ n int }

func (c *closeCounter) Close() error {
	c.n++
	return nil
}

// constant emits n frames of full-scale signal.
func constant(n int) beep.Streamer {
	left := n
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if left == 0 {
			return 0, false
		}
		k := min(len(samples), left)
		for i := range k {
			samples[i] = [2]float64{1, 1}
		}
		left -= k
		return k, true
	})
}

func TestSpeakerSink_StartsPaused(t *testing.T) {
	s := newSpeakerSink(constant(8), &closeCounter{})

	buf := make([][2]float64, 8)
	s.ctrl.Stream(buf)
	for i, v := range buf {
		if v[0] != 0 {
			t.Fatalf("sample %d = %v, want silence while paused", i, v[0])
		}
	}
	if s.Drained() {
		t.Error("paused sink reported drained")
	}
}

func TestSpeakerSink_LinearGain(t *testing.T) {
	s := newSpeakerSink(constant(64), &closeCounter{})
	s.Play()

	tests := []float64{1, 0.75, 0.5, 0.1, 0}
	for _, level := range tests {
		s.SetVolume(level)
		buf := make([][2]float64, 4)
		s.ctrl.Stream(buf)
		if math.Abs(buf[0][0]-level) > 1e-9 {
			t.Errorf("level %v: sample = %v", level, buf[0][0])
		}
		if s.Volume() != level {
			t.Errorf("Volume() = %v, want %v", s.Volume(), level)
		}
	}
}

func TestSpeakerSink_VolumeClamped(t *testing.T) {
	s := newSpeakerSink(constant(1), &closeCounter{})

	s.SetVolume(3)
	if s.Volume() != 1 {
		t.Errorf("Volume() = %v, want 1", s.Volume())
	}
	s.SetVolume(-1)
	if s.Volume() != 0 {
		t.Errorf("Volume() = %v, want 0", s.Volume())
	}
}

func TestSpeakerSink_DrainedAtEnd(t *testing.T) {
	s := newSpeakerSink(constant(10), &closeCounter{})
	s.Play()

	buf := make([][2]float64, 16)
	n, _ := s.ctrl.Stream(buf)
	if n < 10 {
		t.Fatalf("streamed %d frames, want at least 10", n)
	}
	if !s.Drained() {
		t.Error("expected sink to be drained after source ran out")
	}
}

func TestSpeakerSink_StopOnce(t *testing.T) {
	c := &closeCounter{}
	s := newSpeakerSink(constant(10), c)
	s.Play()

	s.Stop()
	s.Stop()

	if c.n != 1 {
		t.Errorf("closed %d times, want 1", c.n)
	}
	if _, ok := s.ctrl.Stream(make([][2]float64, 4)); ok {
		t.Error("stopped sink still streaming")
	}
}
