package library

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
)

// coverStems and coverExts rank album art candidates: stem first, then
// extension.
var (
	coverStems = []string{"cover", "folder", "album", "front"}
	coverExts  = []string{".jpg", ".jpeg", ".png"}
)

// FindCover looks for album art next to the track, matching names
// case-insensitively. Returns the art path, or "" if none is found.
func FindCover(trackPath string) string {
	dir := filepath.Dir(trackPath)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}

	best, bestRank := "", -1
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		r := coverRank(e.Name())
		if r < 0 {
			continue
		}
		if bestRank < 0 || r < bestRank {
			best, bestRank = e.Name(), r
		}
	}
	if bestRank < 0 {
		return ""
	}
	return filepath.Join(dir, best)
}

// coverRank returns the priority of name (lower is better) or -1.
func coverRank(name string) int {
	lower := strings.ToLower(name)
	ext := filepath.Ext(lower)
	s := lo.IndexOf(coverStems, strings.TrimSuffix(lower, ext))
	x := lo.IndexOf(coverExts, ext)
	if s < 0 || x < 0 {
		return -1
	}
	return s*len(coverExts) + x
}
