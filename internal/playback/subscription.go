package playback

import (
	"sync"
	"time"
)

const eventBufferSize = 16

// Subscription provides event channels for a subscriber.
// Events are dropped when a channel's buffer is full.
type Subscription struct {
	StateChanged    <-chan StateChange
	TrackChanged    <-chan TrackChange
	PositionChanged <-chan PositionChange
	QueueChanged    <-chan QueueChange
	ModeChanged     <-chan ModeChange
	Error           <-chan ErrorEvent
	Done            <-chan struct{}

	// Internal write channels
	stateCh    chan StateChange
	trackCh    chan TrackChange
	positionCh chan PositionChange
	queueCh    chan QueueChange
	modeCh     chan ModeChange
	errorCh    chan ErrorEvent
	doneCh     chan struct{}
}

func newSubscription() *Subscription {
	s := &Subscription{
		stateCh:    make(chan StateChange, eventBufferSize),
		trackCh:    make(chan TrackChange, eventBufferSize),
		positionCh: make(chan PositionChange, eventBufferSize),
		queueCh:    make(chan QueueChange, eventBufferSize),
		modeCh:     make(chan ModeChange, eventBufferSize),
		errorCh:    make(chan ErrorEvent, eventBufferSize),
		doneCh:     make(chan struct{}),
	}
	s.StateChanged = s.stateCh
	s.TrackChanged = s.trackCh
	s.PositionChanged = s.positionCh
	s.QueueChanged = s.queueCh
	s.ModeChanged = s.modeCh
	s.Error = s.errorCh
	s.Done = s.doneCh
	return s
}

func (s *Subscription) close() {
	close(s.doneCh)
}

func trySend[E any](ch chan E, e E) {
	select {
	case ch <- e:
	default:
	}
}

// subscribers fans events out to every live subscription.
type subscribers struct {
	mu     sync.Mutex
	subs   []*Subscription
	closed bool
}

func (b *subscribers) add() *Subscription {
	sub := newSubscription()
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		sub.close()
		return sub
	}
	b.subs = append(b.subs, sub)
	return sub
}

func (b *subscribers) each(fn func(*Subscription)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, sub := range b.subs {
		fn(sub)
	}
}

func (b *subscribers) state(prev, cur State) {
	b.each(func(s *Subscription) { trySend(s.stateCh, StateChange{Previous: prev, Current: cur}) })
}

func (b *subscribers) track(e TrackChange) {
	b.each(func(s *Subscription) { trySend(s.trackCh, e) })
}

func (b *subscribers) position(pos time.Duration) {
	b.each(func(s *Subscription) { trySend(s.positionCh, PositionChange{Position: pos}) })
}

// queue sends each subscriber its own copy of the queue.
func (b *subscribers) queue(queue []int, pos int) {
	b.each(func(s *Subscription) {
		trySend(s.queueCh, QueueChange{Queue: append([]int(nil), queue...), Position: pos})
	})
}

func (b *subscribers) mode(loop LoopMode, shuffle bool) {
	b.each(func(s *Subscription) { trySend(s.modeCh, ModeChange{Loop: loop, Shuffle: shuffle}) })
}

func (b *subscribers) err(e ErrorEvent) {
	b.each(func(s *Subscription) { trySend(s.errorCh, e) })
}

func (b *subscribers) closeAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for _, sub := range b.subs {
		sub.close()
	}
	b.subs = nil
}
