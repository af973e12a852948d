package library

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/dhowden/tag"
)

// readTags returns title, artist and album from the file's tags.
// Missing values are empty.
func readTags(path string) (title, artist, album string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return "", "", "", err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		// dhowden/tag has issues with some UTF-16 encoded ID3 tags
		if strings.EqualFold(filepath.Ext(path), ".mp3") {
			return readID3v2(path)
		}
		return "", "", "", err
	}
	return strings.TrimSpace(m.Title()), strings.TrimSpace(m.Artist()), strings.TrimSpace(m.Album()), nil
}

func readID3v2(path string) (title, artist, album string, err error) {
	t, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return "", "", "", err
	}
	defer t.Close()
	return strings.TrimSpace(t.Title()), strings.TrimSpace(t.Artist()), strings.TrimSpace(t.Album()), nil
}
