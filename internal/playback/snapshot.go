package playback

import (
	"slices"
	"sync"
	"time"
)

// Snapshot is the externally observable playback state.
// Index is -1 when nothing is loaded, in which case Elapsed is zero and
// Playing is false.
type Snapshot struct {
	Index   int
	Elapsed time.Duration
	Playing bool
	Loop    LoopMode
	Shuffle bool
}

// HasTrack reports whether a track is loaded.
func (s Snapshot) HasTrack() bool {
	return s.Index >= 0
}

// State derives the playback state from the snapshot.
func (s Snapshot) State() State {
	switch {
	case !s.HasTrack():
		return StateStopped
	case s.Playing:
		return StatePlaying
	default:
		return StatePaused
	}
}

// Reader is a read-only view of a shared value.
// Load returns a copy that the caller owns.
type Reader[T any] interface {
	Load() T
}

// cell is a lock-guarded value with copy-out reads.
type cell[T any] struct {
	mu    sync.Mutex
	v     T
	clone func(T) T
}

func newCell[T any](v T, clone func(T) T) *cell[T] {
	return &cell[T]{v: v, clone: clone}
}

func (c *cell[T]) Load() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.clone != nil {
		return c.clone(c.v)
	}
	return c.v
}

func (c *cell[T]) Store(v T) {
	c.mu.Lock()
	c.v = v
	c.mu.Unlock()
}

// Update applies fn to the value under the lock.
func (c *cell[T]) Update(fn func(*T)) {
	c.mu.Lock()
	fn(&c.v)
	c.mu.Unlock()
}

func newSnapshotCell(loop LoopMode) *cell[Snapshot] {
	return newCell(Snapshot{Index: -1, Loop: loop}, nil)
}

func newOrderCell(order []int) *cell[[]int] {
	return newCell(slices.Clone(order), slices.Clone[[]int])
}
