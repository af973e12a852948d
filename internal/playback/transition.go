package playback

import (
	"time"

	"github.com/cockroachdb/errors"

	"github.com/llehouerou/presto/internal/player"
)

// quitFadeSteps is the number of volume steps in the shutdown fade.
const quitFadeSteps = 20

// stepDelay spreads d over steps, never less than a millisecond per step.
func stepDelay(d time.Duration, steps int) time.Duration {
	return max(time.Millisecond, (d / time.Duration(steps)).Truncate(time.Millisecond))
}

// playTrack switches output to catalog track i from the start.
// The new sink is opened before the current one is touched, so a failure
// leaves playback as it was.
func (e *engine) playTrack(i int) error {
	track := e.catalog[i]
	next, err := e.out.Open(track.Path, 0)
	if err != nil {
		return errors.Wrapf(err, "open %s", track.Path)
	}

	prev := e.sink
	if prev != nil && !e.paused && e.settings.Crossfade > 0 {
		e.crossfade(prev, next)
	} else {
		if prev != nil {
			prev.Stop()
		}
		next.SetVolume(1)
		next.Play()
	}

	previous := e.index
	e.sink = next
	e.index = i
	e.paused = false
	e.accumulated = 0
	e.startedAt = time.Now()

	e.playback.Update(func(s *Snapshot) {
		s.Index = i
		s.Elapsed = 0
		s.Playing = true
	})
	e.subs.track(TrackChange{PreviousIndex: previous, Index: i, Track: track})
	e.log.Debug().Int("index", i).Str("path", track.Path).Msg("track started")
	return nil
}

// crossfade plays next against prev with opposing linear ramps, then
// stops prev. It blocks the control loop for the crossfade duration.
func (e *engine) crossfade(prev, next player.Sink) {
	steps := e.settings.steps()
	delay := stepDelay(e.settings.Crossfade, steps)

	prev.SetVolume(1)
	next.SetVolume(0)
	next.Play()
	for step := 1; step <= steps; step++ {
		t := float64(step) / float64(steps)
		prev.SetVolume(1 - t)
		next.SetVolume(t)
		time.Sleep(delay)
	}
	prev.Stop()
}

// stopTrack unloads the current track and publishes an empty snapshot.
func (e *engine) stopTrack() {
	if e.sink != nil {
		e.sink.Stop()
		e.sink = nil
	}
	e.index = -1
	e.paused = true
	e.accumulated = 0
	e.startedAt = time.Time{}

	e.playback.Update(func(s *Snapshot) {
		s.Index = -1
		s.Elapsed = 0
		s.Playing = false
	})
}

// fadeOutAndStop ramps the active sink to silence in quitFadeSteps steps
// and stops it. A zero fade silences immediately.
func (e *engine) fadeOutAndStop(fade time.Duration) {
	if e.sink == nil {
		return
	}
	if fade <= 0 {
		e.sink.SetVolume(0)
	} else {
		delay := stepDelay(fade, quitFadeSteps)
		for step := 1; step <= quitFadeSteps; step++ {
			e.sink.SetVolume(1 - float64(step)/quitFadeSteps)
			time.Sleep(delay)
		}
	}
	e.sink.Stop()
	e.sink = nil
}
