package playback

import "time"

// tickInterval is the elapsed-time resolution published to observers.
const tickInterval = 500 * time.Millisecond

// runTicker adds tickInterval to the published elapsed time on every tick
// while playing. It touches no other field.
func runTicker(playback *cell[Snapshot], stop <-chan struct{}) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			playback.Update(func(s *Snapshot) {
				if s.Playing {
					s.Elapsed += tickInterval
				}
			})
		case <-stop:
			return
		}
	}
}
