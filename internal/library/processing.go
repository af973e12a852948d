package library

import (
	"cmp"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/llehouerou/presto/internal/player"
)

const numWorkers = 8

// Scan builds the catalog from the audio files under root, sorted by
// display string without regard to case.
func Scan(root string, s Settings) ([]Track, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Wrapf(err, "scan %s", root)
	}
	if !info.IsDir() {
		return nil, errors.Newf("scan %s: not a directory", root)
	}

	log := zlog.With().Str("component", "library").Logger()
	files := discoverFiles(root, s)
	log.Debug().Str("root", root).Int("files", len(files)).Msg("discovered")

	tracks := processFiles(files, s)
	slices.SortStableFunc(tracks, func(a, b Track) int {
		return cmp.Or(
			cmp.Compare(strings.ToLower(a.Display), strings.ToLower(b.Display)),
			cmp.Compare(a.Path, b.Path),
		)
	})

	log.Info().Str("root", root).Int("tracks", len(tracks)).Msg("library scanned")
	return tracks, nil
}

// processFiles reads tags and durations in parallel.
func processFiles(files []string, s Settings) []Track {
	tracks := make([]Track, len(files))
	workCh := make(chan int, len(files))
	for i := range files {
		workCh <- i
	}
	close(workCh)

	var wg sync.WaitGroup
	for range numWorkers {
		wg.Go(func() {
			for i := range workCh {
				tracks[i] = readTrack(files[i], s)
			}
		})
	}
	wg.Wait()
	return tracks
}

// readTrack never fails: missing tags leave fields empty, the title falls
// back to the file name and an undecodable file has zero duration.
func readTrack(path string, s Settings) Track {
	t := Track{Path: path}

	title, artist, album, err := readTags(path)
	if err != nil {
		zlog.Debug().Err(err).Str("path", path).Msg("no tags")
	}
	t.Title, t.Artist, t.Album = title, artist, album
	if t.Title == "" {
		t.Title = stem(path)
	}

	if d, err := player.Probe(path); err == nil {
		t.Duration = d
	}

	t.Display = DisplayFromFields(t, s.DisplayFields, s.DisplaySeparator)
	return t
}
