// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ranking

import (
	"cmp"
	"slices"
)

// Resolve orders items by descending score. Equal scores keep their input
// order, and ranks are 1..N by position with no shared ranks. Items absent
// from scores count as zero. Resolve does not modify its arguments.
func Resolve(items []Item, scores Scores) []Ranked {
	ranked := make([]Ranked, len(items))
	for i, item := range items {
		ranked[i] = Ranked{Item: item, Score: scores[item.ID]}
	}

	slices.SortStableFunc(ranked, func(a, b Ranked) int {
		return cmp.Compare(b.Score, a.Score)
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

// Top returns at most n leading rows. n <= 0 returns all rows.
func Top(ranked []Ranked, n int) []Ranked {
	if n <= 0 || n >= len(ranked) {
		return ranked
	}
	return ranked[:n]
}
