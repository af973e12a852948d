package playback

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/samber/lo/mutable"

	"github.com/llehouerou/presto/internal/library"
	"github.com/llehouerou/presto/internal/player"
)

// pollInterval bounds how long the control loop waits for a command
// before checking for end of track.
const pollInterval = 200 * time.Millisecond

// engine is the control loop state. Every field is owned by the loop
// goroutine; other goroutines only see the shared cells.
type engine struct {
	catalog  []library.Track
	settings Settings
	out      player.Output
	log      zerolog.Logger

	inbox    *inbox
	playback *cell[Snapshot]
	order    *cell[[]int]
	subs     *subscribers

	sink        player.Sink
	index       int
	paused      bool
	startedAt   time.Time
	accumulated time.Duration

	shuffle      bool
	shuffleOrder []int
	queue        []int
	queuePos     int
	loop         LoopMode
}

func (e *engine) run() {
	for {
		cmd, ok := e.inbox.receive(pollInterval)
		if !ok {
			e.autoAdvance()
			continue
		}
		if e.handle(cmd) {
			return
		}
	}
}

// handle applies one command and reports whether the loop must exit.
func (e *engine) handle(cmd Command) bool {
	before := e.state()
	defer func() {
		if after := e.state(); after != before {
			e.subs.state(before, after)
		}
	}()

	e.log.Debug().Type("command", cmd).Msg("command")

	switch c := cmd.(type) {
	case Play:
		e.play(c.Index)
	case Stop:
		e.stopTrack()
	case TogglePause:
		e.togglePause()
	case ToggleShuffle:
		e.toggleShuffle()
	case SetQueue:
		e.setQueue(c.Indices)
	case SetLoopMode:
		e.setLoopMode(c.Mode)
	case Next:
		e.skip(1)
	case Prev:
		e.skip(-1)
	case SeekBy:
		e.seekBy(c.Seconds)
	case Quit:
		e.fadeOutAndStop(c.FadeOut)
		e.paused = true
		e.playback.Update(func(s *Snapshot) { s.Playing = false })
		return true
	default:
		e.log.Error().Type("command", cmd).Msg("unknown command")
	}
	return false
}

func (e *engine) state() State {
	switch {
	case e.sink == nil:
		return StateStopped
	case e.paused:
		return StatePaused
	default:
		return StatePlaying
	}
}

// elapsed is the local position of the loaded track.
func (e *engine) elapsed() time.Duration {
	d := e.accumulated
	if !e.startedAt.IsZero() {
		d += time.Since(e.startedAt)
	}
	return d
}

func (e *engine) play(i int) {
	if i < 0 || i >= len(e.catalog) {
		e.fail(OpPlay, i, errors.Newf("track %d out of range", i))
		return
	}

	if pos := lo.IndexOf(e.queue, i); pos >= 0 {
		e.queuePos = pos
	} else {
		e.queue = []int{i}
		e.queuePos = 0
		e.subs.queue(e.queue, e.queuePos)
	}
	e.playQueued(e.queuePos, 1)
}

// playQueued plays the queue entry at pos. Entries that fail to open are
// skipped in direction dir, wrapping only under LoopAll, and each entry is
// tried at most once. Playback stops if nothing could be started.
func (e *engine) playQueued(pos, dir int) {
	for range len(e.queue) {
		i := e.queue[pos]
		err := e.playTrack(i)
		if err == nil {
			e.queuePos = pos
			return
		}
		e.fail(OpPlay, i, err)

		next, ok := e.step(pos, dir)
		if !ok {
			break
		}
		pos = next
	}
	e.stopTrack()
}

// step moves pos by dir within the queue, wrapping only under LoopAll.
func (e *engine) step(pos, dir int) (int, bool) {
	n := len(e.queue)
	next := pos + dir
	if next >= 0 && next < n {
		return next, true
	}
	if e.loop != LoopAll || n == 0 {
		return pos, false
	}
	return (next%n + n) % n, true
}

// skip is manual navigation. It never repeats the current slot under
// LoopOne and is a no-op at a boundary unless looping all.
func (e *engine) skip(dir int) {
	if len(e.queue) == 0 {
		return
	}
	cur := 0
	if e.index >= 0 && e.queuePos < len(e.queue) {
		cur = e.queuePos
	}
	next, ok := e.step(cur, dir)
	if !ok {
		return
	}
	e.playQueued(next, dir)
}

func (e *engine) togglePause() {
	if e.sink == nil {
		return
	}
	if e.paused {
		e.sink.Play()
		e.paused = false
		e.startedAt = time.Now()
	} else {
		e.sink.Pause()
		e.paused = true
		e.accumulated = e.elapsed()
		e.startedAt = time.Time{}
	}
	playing := !e.paused
	e.playback.Update(func(s *Snapshot) { s.Playing = playing })
}

func (e *engine) toggleShuffle() {
	e.shuffle = !e.shuffle
	e.shuffleOrder = identity(len(e.catalog))
	if e.shuffle {
		mutable.Shuffle(e.shuffleOrder)
	}
	e.order.Store(append([]int(nil), e.shuffleOrder...))

	e.queue = Reduce(e.queue, len(e.catalog), e.shuffle, e.shuffleOrder)
	e.relocate()

	shuffle := e.shuffle
	e.playback.Update(func(s *Snapshot) { s.Shuffle = shuffle })
	e.subs.mode(e.loop, e.shuffle)
	e.subs.queue(e.queue, e.queuePos)
}

func (e *engine) setQueue(candidates []int) {
	e.queue = Reduce(candidates, len(e.catalog), e.shuffle, e.shuffleOrder)
	e.relocate()
	e.subs.queue(e.queue, e.queuePos)
}

// relocate points the queue position at the loaded track, or at 0 when
// nothing is loaded or the track is no longer queued.
func (e *engine) relocate() {
	e.queuePos = 0
	if e.index < 0 {
		return
	}
	if pos := lo.IndexOf(e.queue, e.index); pos >= 0 {
		e.queuePos = pos
	}
}

func (e *engine) setLoopMode(m LoopMode) {
	if !m.Valid() {
		e.log.Error().Int("mode", int(m)).Msg("ignoring invalid loop mode")
		return
	}
	e.loop = m
	e.playback.Update(func(s *Snapshot) { s.Loop = m })
	e.subs.mode(e.loop, e.shuffle)
}

// seekBy rebuilds the sink for the loaded track at the new offset,
// keeping the pause state. If the rebuild fails the old sink keeps playing.
func (e *engine) seekBy(seconds int) {
	if e.sink == nil || e.index < 0 {
		return
	}
	cur := e.elapsed().Truncate(time.Second)
	target := max(0, cur+time.Duration(seconds)*time.Second)

	track := e.catalog[e.index]
	next, err := e.out.Open(track.Path, target)
	if err != nil {
		e.fail(OpSeek, e.index, errors.Wrapf(err, "open %s", track.Path))
		return
	}

	e.sink.Stop()
	e.sink = next
	next.SetVolume(1)
	e.accumulated = target
	if e.paused {
		e.startedAt = time.Time{}
	} else {
		next.Play()
		e.startedAt = time.Now()
	}

	e.playback.Update(func(s *Snapshot) { s.Elapsed = target })
	e.subs.position(target)
}

// autoAdvance runs on poll timeouts and moves on once the loaded track
// has run out of audio.
func (e *engine) autoAdvance() {
	if e.sink == nil || e.paused || !e.sink.Drained() {
		return
	}

	before := e.state()
	defer func() {
		if after := e.state(); after != before {
			e.subs.state(before, after)
		}
	}()

	switch e.loop {
	case LoopOne:
		if err := e.playTrack(e.index); err != nil {
			e.fail(OpPlay, e.index, err)
			e.stopTrack()
		}
	case LoopAll:
		if len(e.queue) == 0 {
			return
		}
		e.playQueued((e.queuePos+1)%len(e.queue), 1)
	case NoLoop:
		if e.queuePos+1 < len(e.queue) {
			e.playQueued(e.queuePos+1, 1)
		} else {
			e.stopTrack()
		}
	}
}

func (e *engine) fail(op string, i int, err error) {
	ev := ErrorEvent{Op: op, Index: i, Err: err}
	if i >= 0 && i < len(e.catalog) {
		ev.Path = e.catalog[i].Path
	}
	e.log.Warn().Err(err).Str("op", op).Int("index", i).Msg("track unavailable, skipped")
	e.subs.err(ev)
}
