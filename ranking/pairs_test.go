// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ranking

import (
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeItems(n int) []Item {
	items := make([]Item, n)
	for i := range items {
		items[i] = Item{ID: IntID(int64(i + 1)), Title: fmt.Sprintf("Item %d", i+1)}
	}
	return items
}

func TestGeneratePairs_Count(t *testing.T) {
	for n := 0; n <= 12; n++ {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			items := makeItems(n)
			pairs := GeneratePairs(items)

			assert.Len(t, pairs, PairCount(n))
			if n < 2 {
				assert.Empty(t, pairs)
				return
			}
			assert.Equal(t, n*(n-1)/2, len(pairs))

			seen := make(map[[2]ItemID]bool)
			for _, p := range pairs {
				require.NotEqual(t, p.A.ID, p.B.ID, "item paired with itself")
				key := [2]ItemID{p.A.ID, p.B.ID}
				rev := [2]ItemID{p.B.ID, p.A.ID}
				require.False(t, seen[key] || seen[rev], "pair %v repeated", key)
				seen[key] = true
			}
		})
	}
}

func TestGeneratePairs_Order(t *testing.T) {
	items := makeItems(4)
	pairs := GeneratePairs(items)

	want := [][2]int64{{1, 2}, {1, 3}, {1, 4}, {2, 3}, {2, 4}, {3, 4}}
	require.Len(t, pairs, len(want))
	for i, p := range pairs {
		a, _ := p.A.ID.Int()
		b, _ := p.B.ID.Int()
		assert.Equal(t, want[i], [2]int64{a, b})
	}
}

func TestGeneratePairs_DoesNotMutateInput(t *testing.T) {
	items := makeItems(5)
	before := slices.Clone(items)
	GeneratePairs(items)
	assert.Equal(t, before, items)
}

func TestShuffle_IsPermutation(t *testing.T) {
	rng := NewSeededRand(42)
	in := make([]int, 50)
	for i := range in {
		in[i] = i
	}
	out := slices.Clone(in)
	Shuffle(rng, out)

	assert.ElementsMatch(t, in, out)
	assert.NotEqual(t, in, out, "50 elements shuffled into identity order")
}

func TestShuffle_ShortSlices(t *testing.T) {
	rng := NewSeededRand(1)

	var empty []int
	Shuffle(rng, empty)
	assert.Empty(t, empty)

	one := []int{7}
	Shuffle(rng, one)
	assert.Equal(t, []int{7}, one)
}

func TestShuffle_CoversAllPermutations(t *testing.T) {
	rng := NewSeededRand(7)
	counts := make(map[[3]int]int)
	for i := 0; i < 6000; i++ {
		s := []int{0, 1, 2}
		Shuffle(rng, s)
		counts[[3]int{s[0], s[1], s[2]}]++
	}

	require.Len(t, counts, 6)
	for perm, n := range counts {
		// expected 1000 each
		assert.InDelta(t, 1000, n, 200, "permutation %v drawn %d times", perm, n)
	}
}

func TestPresenter_Orient(t *testing.T) {
	items := makeItems(2)
	pair := Pair{A: items[0], B: items[1]}
	pr := NewPresenter(NewSeededRand(3))

	var firstA, firstB int
	for i := 0; i < 400; i++ {
		slots := pr.Orient(pair)
		require.NotEqual(t, slots.First.ID, slots.Second.ID)
		require.True(t, pair.Contains(slots.First.ID))
		require.True(t, pair.Contains(slots.Second.ID))
		if slots.First.ID == pair.A.ID {
			firstA++
		} else {
			firstB++
		}
	}
	assert.Greater(t, firstA, 100)
	assert.Greater(t, firstB, 100)
}
