package playback

import (
	"cmp"
	"math"
	"slices"

	"github.com/samber/lo"
)

// Reduce turns candidate catalog indices into a play queue.
//
// Indices outside [0, catalogLen) are dropped. Without shuffle the result is
// in ascending index order. With shuffle it follows each index's rank in
// order; indices missing from order sort last, keeping their relative order.
// Duplicates are preserved.
func Reduce(candidates []int, catalogLen int, shuffle bool, order []int) []int {
	queue := lo.Filter(candidates, func(i int, _ int) bool {
		return i >= 0 && i < catalogLen
	})

	if !shuffle {
		slices.Sort(queue)
		return queue
	}

	rank := make(map[int]int, len(order))
	for r, i := range order {
		if _, seen := rank[i]; !seen {
			rank[i] = r
		}
	}
	rankOf := func(i int) int {
		if r, ok := rank[i]; ok {
			return r
		}
		return math.MaxInt
	}
	slices.SortStableFunc(queue, func(a, b int) int {
		return cmp.Compare(rankOf(a), rankOf(b))
	})
	return queue
}

// identity returns 0..n-1.
func identity(n int) []int {
	return lo.Range(n)
}
