package player

import (
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

// ErrNoDevice marks failures to bring up the audio device.
var ErrNoDevice = errors.New("no audio output device")

// DefaultSampleRate is the device rate used when none is configured.
const DefaultSampleRate = 44100

// Speaker is the Output backed by the system audio device.
// Every sink is mixed into the single beep speaker, so two sinks can
// play at once during a crossfade.
type Speaker struct {
	rate beep.SampleRate

	mu     sync.Mutex
	closed bool
}

// NewSpeaker initializes the audio device at the given sample rate.
func NewSpeaker(sampleRate int) (*Speaker, error) {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	rate := beep.SampleRate(sampleRate)
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "init speaker"), ErrNoDevice)
	}
	return &Speaker{rate: rate}, nil
}

func (s *Speaker) Open(path string, startAt time.Duration) (Sink, error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return nil, errors.New("speaker closed")
	}

	stream, format, err := Decode(path)
	if err != nil {
		return nil, err
	}

	if startAt > 0 {
		pos := min(format.SampleRate.N(startAt), stream.Len())
		if err := stream.Seek(pos); err != nil {
			stream.Close()
			return nil, errors.Wrap(err, "seek")
		}
	}

	var src beep.Streamer = stream
	if format.SampleRate != s.rate {
		src = beep.Resample(4, format.SampleRate, s.rate, stream)
	}

	sink := newSpeakerSink(src, stream)
	speaker.Play(sink.ctrl)
	return sink, nil
}

// Close silences and releases the device. Further opens fail.
func (s *Speaker) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	speaker.Clear()
	speaker.Close()
	return nil
}
