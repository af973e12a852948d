package library

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
)

// discoverFiles walks root and returns the audio files found.
// Unreadable entries are skipped.
func discoverFiles(root string, s Settings) []string {
	exts := normalizeExtensions(s.Extensions)
	maxDepth := s.MaxDepth
	if !s.Recursive {
		maxDepth = 1
	}

	var files []string
	visited := make(map[string]bool)

	var walk func(dir string, depth int)
	walk = func(dir string, depth int) {
		if real, err := filepath.EvalSymlinks(dir); err == nil {
			if visited[real] {
				return
			}
			visited[real] = true
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			return
		}
		for _, entry := range entries {
			name := entry.Name()
			if !s.IncludeHidden && strings.HasPrefix(name, ".") {
				continue
			}
			path := filepath.Join(dir, name)

			isDir := entry.IsDir()
			if entry.Type()&os.ModeSymlink != 0 {
				if !s.FollowLinks {
					continue
				}
				info, err := os.Stat(path)
				if err != nil {
					continue
				}
				isDir = info.IsDir()
			}

			if isDir {
				if maxDepth == 0 || depth+1 < maxDepth {
					walk(path, depth+1)
				}
				continue
			}
			if exts[strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))] {
				files = append(files, path)
			}
		}
	}
	walk(root, 0)
	return files
}

// normalizeExtensions lowercases and strips leading dots.
func normalizeExtensions(exts []string) map[string]bool {
	return lo.SliceToMap(exts, func(e string) (string, bool) {
		return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(e), ".")), true
	})
}

// IsAudioFile reports whether path has one of the given extensions.
func IsAudioFile(path string, exts []string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	return ext != "" && normalizeExtensions(exts)[ext]
}
