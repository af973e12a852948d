package library

import (
	"path/filepath"
	"strings"
	"time"
)

// Track describes one audio file of the catalog.
type Track struct {
	Path     string
	Title    string
	Artist   string
	Album    string
	Duration time.Duration
	Display  string
}

// Fields accepted in Settings.DisplayFields. FieldDisplay only makes
// sense once Display has been computed.
const (
	FieldDisplay  = "display"
	FieldTitle    = "title"
	FieldArtist   = "artist"
	FieldAlbum    = "album"
	FieldFilename = "filename"
	FieldPath     = "path"
)

// Settings control which files are scanned and how tracks are labelled.
type Settings struct {
	Extensions    []string
	FollowLinks   bool
	IncludeHidden bool
	Recursive     bool
	// MaxDepth limits how many directory levels are entered; files directly
	// under the root are at depth 1. Zero means unlimited.
	MaxDepth         int
	DisplayFields    []string
	DisplaySeparator string
}

// DefaultSettings scans mp3, flac, wav and ogg files everywhere below the
// root and labels them "artist - title".
func DefaultSettings() Settings {
	return Settings{
		Extensions:       []string{"mp3", "flac", "wav", "ogg"},
		FollowLinks:      true,
		IncludeHidden:    true,
		Recursive:        true,
		DisplayFields:    []string{FieldArtist, FieldTitle},
		DisplaySeparator: " - ",
	}
}

// Field returns the named attribute of t, or "" for unknown names.
func (t Track) Field(name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case FieldDisplay:
		return t.Display
	case FieldTitle:
		return t.Title
	case FieldArtist:
		return t.Artist
	case FieldAlbum:
		return t.Album
	case FieldFilename:
		return filepath.Base(t.Path)
	case FieldPath:
		return t.Path
	}
	return ""
}

// DisplayFromFields joins the non-empty fields with sep,
// falling back to the title.
func DisplayFromFields(t Track, fields []string, sep string) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if v := strings.TrimSpace(t.Field(f)); v != "" {
			parts = append(parts, v)
		}
	}
	if len(parts) == 0 {
		return t.Title
	}
	return strings.Join(parts, sep)
}

// stem is the file name without extension.
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
