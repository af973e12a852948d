package ui

import (
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"

	"github.com/llehouerou/presto/internal/ui/render"
)

// FuzzyMatch reports whether query is a case-insensitive subsequence of
// title and returns the matched rune positions in title.
// An empty query matches everything with no positions.
func FuzzyMatch(title, query string) ([]int, bool) {
	return matchLower(strings.ToLower(title), strings.ToLower(query))
}

func matchLower(title, query string) ([]int, bool) {
	if query == "" {
		return nil, true
	}
	positions := make([]int, 0, utf8.RuneCountInString(query))
	q := []rune(query)
	i := 0
	for pos, r := range []rune(title) {
		if r == q[i] {
			positions = append(positions, pos)
			i++
			if i == len(q) {
				return positions, true
			}
		}
	}
	return nil, false
}

// DisplayOrder returns the catalog indices to show: the shuffle order when
// shuffle is on, catalog order otherwise, keeping only entries whose
// lowercase label matches query.
func DisplayOrder(lower []string, shuffle bool, order []int, query string) []int {
	n := len(lower)
	base := lo.Range(n)
	if shuffle && len(order) == n {
		base = order
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return base
	}
	return lo.Filter(base, func(i int, _ int) bool {
		if i < 0 || i >= n {
			return false
		}
		_, ok := matchLower(lower[i], query)
		return ok
	})
}

// lowerLabels precomputes the lowercase display strings used for matching.
func lowerLabels(labels []string) []string {
	return lo.Map(labels, func(s string, _ int) string {
		return strings.ToLower(render.Sanitize(s))
	})
}
