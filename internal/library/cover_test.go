package library

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("fake"), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestFindCover(t *testing.T) {
	dir := t.TempDir()
	coverPath := filepath.Join(dir, "cover.jpg")
	writeFile(t, coverPath)

	got := FindCover(filepath.Join(dir, "track.mp3"))
	if got != coverPath {
		t.Errorf("FindCover() = %q, want %q", got, coverPath)
	}
}

func TestFindCover_NotFound(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "notes.txt"))
	writeFile(t, filepath.Join(dir, "cover.gif"))

	got := FindCover(filepath.Join(dir, "track.mp3"))
	if got != "" {
		t.Errorf("FindCover() = %q, want empty string", got)
	}
}

func TestFindCover_MissingDir(t *testing.T) {
	got := FindCover(filepath.Join(t.TempDir(), "gone", "track.mp3"))
	if got != "" {
		t.Errorf("FindCover() = %q, want empty string", got)
	}
}

func TestFindCover_Priority(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "front.jpg"))
	writeFile(t, filepath.Join(dir, "folder.png"))
	writeFile(t, filepath.Join(dir, "folder.jpg"))

	want := filepath.Join(dir, "folder.jpg")
	got := FindCover(filepath.Join(dir, "track.mp3"))
	if got != want {
		t.Errorf("FindCover() = %q, want %q (higher priority)", got, want)
	}
}

func TestFindCover_CaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	want := filepath.Join(dir, "Cover.JPG")
	writeFile(t, want)

	got := FindCover(filepath.Join(dir, "track.mp3"))
	if got != want {
		t.Errorf("FindCover() = %q, want %q", got, want)
	}
}

func TestCoverRank(t *testing.T) {
	tests := []struct {
		name string
		want int
	}{
		{"cover.jpg", 0},
		{"cover.png", 2},
		{"folder.jpg", 3},
		{"FRONT.PNG", 11},
		{"cover", -1},
		{"back.jpg", -1},
	}
	for _, tt := range tests {
		if got := coverRank(tt.name); got != tt.want {
			t.Errorf("coverRank(%q) = %d, want %d", tt.name, got, tt.want)
		}
	}
}
