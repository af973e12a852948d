package playback

import (
	"testing"
	"testing/synctest"
	"time"

	"github.com/cockroachdb/errors"
)

func TestNewSubscription_ChannelsReadable(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		subs := &subscribers{}
		sub := subs.add()

		subs.state(StateStopped, StatePlaying)
		subs.track(TrackChange{PreviousIndex: -1, Index: 1})
		subs.position(30 * time.Second)
		subs.queue([]int{4, 2}, 1)
		subs.mode(LoopOne, true)
		subs.err(ErrorEvent{Op: OpPlay, Index: 3, Err: errors.New("boom")})

		e := <-sub.StateChanged
		if e.Previous != StateStopped || e.Current != StatePlaying {
			t.Errorf("StateChanged = %+v, want Stopped -> Playing", e)
		}

		tr := <-sub.TrackChanged
		if tr.Index != 1 || tr.PreviousIndex != -1 {
			t.Errorf("TrackChanged = %+v", tr)
		}

		pos := <-sub.PositionChanged
		if pos.Position != 30*time.Second {
			t.Errorf("PositionChanged.Position = %v, want 30s", pos.Position)
		}

		q := <-sub.QueueChanged
		if q.Position != 1 || len(q.Queue) != 2 || q.Queue[0] != 4 {
			t.Errorf("QueueChanged = %+v", q)
		}

		m := <-sub.ModeChanged
		if m.Loop != LoopOne || !m.Shuffle {
			t.Errorf("ModeChanged = %+v", m)
		}

		ev := <-sub.Error
		if ev.Op != OpPlay || ev.Index != 3 {
			t.Errorf("Error = %+v", ev)
		}
	})
}

func TestSubscription_QueueIsCopied(t *testing.T) {
	subs := &subscribers{}
	sub := subs.add()

	queue := []int{1, 2, 3}
	subs.queue(queue, 0)
	queue[0] = 99

	q := <-sub.QueueChanged
	if q.Queue[0] != 1 {
		t.Errorf("subscriber saw caller mutation: %v", q.Queue)
	}
}

func TestSubscription_CloseAllSignalsDone(t *testing.T) {
	synctest.Test(t, func(_ *testing.T) {
		subs := &subscribers{}
		a, b := subs.add(), subs.add()
		subs.closeAll()
		subs.closeAll()
		<-a.Done
		<-b.Done
	})
}

func TestSubscription_AddAfterCloseIsDone(t *testing.T) {
	subs := &subscribers{}
	subs.closeAll()

	sub := subs.add()
	select {
	case <-sub.Done:
	default:
		t.Error("subscription added after close should be done")
	}
}

func TestSubscription_NonBlocking_DropsWhenFull(t *testing.T) {
	subs := &subscribers{}
	sub := subs.add()

	for range eventBufferSize + 5 {
		subs.state(StatePlaying, StatePaused)
	}

	count := 0
	for {
		select {
		case <-sub.StateChanged:
			count++
		default:
			goto done
		}
	}
done:
	if count != eventBufferSize {
		t.Errorf("received %d events, want %d (buffer size)", count, eventBufferSize)
	}
}
