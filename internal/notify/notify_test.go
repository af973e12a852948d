package notify

import (
	"os"
	"path/filepath"
	"testing"
	"testing/synctest"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/presto/internal/library"
	"github.com/llehouerou/presto/internal/playback"
)

// mockNotifier records notifications for testing.
type mockNotifier struct {
	notifications []Notification
	lastID        uint32
	err           error
}

func (m *mockNotifier) Notify(n Notification) (uint32, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.lastID++
	m.notifications = append(m.notifications, n)
	return m.lastID, nil
}

func (m *mockNotifier) Close(_ uint32) error {
	return nil
}

func TestUrgencyValues(t *testing.T) {
	assert.Equal(t, Urgency(0), UrgencyLow)
	assert.Equal(t, Urgency(1), UrgencyNormal)
	assert.Equal(t, Urgency(2), UrgencyCritical)
}

func TestNowPlaying_Send(t *testing.T) {
	mock := &mockNotifier{}
	w := NewNowPlaying(mock, Options{Timeout: 5000})

	w.send(library.Track{
		Path:   "/music/artist/album/song.mp3",
		Title:  "Test Song",
		Artist: "Test Artist",
		Album:  "Test Album",
	})

	require.Len(t, mock.notifications, 1)
	n := mock.notifications[0]
	assert.Equal(t, "Test Song", n.Title)
	assert.Equal(t, "Test Artist · Test Album", n.Body)
	assert.Equal(t, int32(5000), n.Timeout)
	assert.Equal(t, UrgencyLow, n.Urgency)
	assert.Empty(t, n.Icon)
	assert.Zero(t, n.ReplacesID)
}

func TestNowPlaying_BodySkipsMissingFields(t *testing.T) {
	mock := &mockNotifier{}
	w := NewNowPlaying(mock, Options{})

	w.send(library.Track{Title: "Song", Album: "Album"})
	w.send(library.Track{Display: "only display"})

	require.Len(t, mock.notifications, 2)
	assert.Equal(t, "Album", mock.notifications[0].Body)
	assert.Equal(t, "only display", mock.notifications[1].Title)
	assert.Empty(t, mock.notifications[1].Body)
}

func TestNowPlaying_ReplacesPrevious(t *testing.T) {
	mock := &mockNotifier{}
	w := NewNowPlaying(mock, Options{})

	w.send(library.Track{Title: "one"})
	w.send(library.Track{Title: "two"})

	require.Len(t, mock.notifications, 2)
	assert.Zero(t, mock.notifications[0].ReplacesID)
	assert.Equal(t, uint32(1), mock.notifications[1].ReplacesID)
	assert.Equal(t, uint32(2), w.lastID)
}

func TestNowPlaying_FailureKeepsLastID(t *testing.T) {
	mock := &mockNotifier{}
	w := NewNowPlaying(mock, Options{})
	w.send(library.Track{Title: "one"})

	mock.err = errors.New("bus gone")
	w.send(library.Track{Title: "two"})

	assert.Equal(t, uint32(1), w.lastID)
}

func TestNowPlaying_NilNotifier(_ *testing.T) {
	w := NewNowPlaying(nil, Options{})
	w.send(library.Track{Title: "x"})
}

func TestNowPlaying_AlbumArt(t *testing.T) {
	dir := t.TempDir()
	cover := filepath.Join(dir, "cover.jpg")
	require.NoError(t, os.WriteFile(cover, []byte("img"), 0o644))

	mock := &mockNotifier{}
	w := NewNowPlaying(mock, Options{ShowAlbumArt: true})
	w.send(library.Track{Title: "x", Path: filepath.Join(dir, "song.mp3")})

	require.Len(t, mock.notifications, 1)
	assert.Equal(t, cover, mock.notifications[0].Icon)
}

func TestNowPlaying_Run(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		mock := &mockNotifier{}
		w := NewNowPlaying(mock, Options{})
		tracks := make(chan playback.TrackChange)
		done := make(chan struct{})
		exited := make(chan struct{})

		go func() {
			w.Run(tracks, done)
			close(exited)
		}()

		tracks <- playback.TrackChange{PreviousIndex: -1, Index: 0, Track: library.Track{Title: "a"}}
		tracks <- playback.TrackChange{PreviousIndex: 0, Index: 1, Track: library.Track{Title: "b"}}
		close(done)
		synctest.Wait()

		select {
		case <-exited:
		default:
			t.Fatal("Run did not return after done")
		}
		require.Len(t, mock.notifications, 2)
		assert.Equal(t, "b", mock.notifications[1].Title)
	})
}
