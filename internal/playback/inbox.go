package playback

import (
	"sync"
	"time"

	"github.com/cockroachdb/errors"
)

// ErrClosed is returned by Send once the control loop has terminated.
var ErrClosed = errors.New("playback engine closed")

// inbox is an unbounded FIFO of commands with a single consumer.
// Sends never block.
type inbox struct {
	mu     sync.Mutex
	items  []Command
	closed bool
	ready  chan struct{}
}

func newInbox() *inbox {
	return &inbox{ready: make(chan struct{}, 1)}
}

func (b *inbox) send(cmd Command) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrClosed
	}
	b.items = append(b.items, cmd)
	b.mu.Unlock()

	select {
	case b.ready <- struct{}{}:
	default:
	}
	return nil
}

// receive returns the oldest command, or false if none arrived within timeout.
func (b *inbox) receive(timeout time.Duration) (Command, bool) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		if cmd, ok := b.pop(); ok {
			return cmd, true
		}
		select {
		case <-b.ready:
		case <-timer.C:
			return nil, false
		}
	}
}

func (b *inbox) pop() (Command, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.items) == 0 {
		return nil, false
	}
	cmd := b.items[0]
	b.items[0] = nil
	b.items = b.items[1:]
	return cmd, true
}

// close rejects further sends and drops anything pending.
func (b *inbox) close() {
	b.mu.Lock()
	b.closed = true
	b.items = nil
	b.mu.Unlock()
}
