// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ranking

// PairCount returns C(n,2).
func PairCount(n int) int {
	if n < 2 {
		return 0
	}
	return n * (n - 1) / 2
}

// GeneratePairs returns every unordered pair of items, ordered by input
// position: (0,1), (0,2), ..., (1,2), ... Fewer than two items yield an
// empty slice.
func GeneratePairs(items []Item) []Pair {
	pairs := make([]Pair, 0, PairCount(len(items)))
	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			pairs = append(pairs, Pair{A: items[i], B: items[j]})
		}
	}
	return pairs
}
