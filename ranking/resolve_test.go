// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ranking

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	items := makeItems(3)
	scores := Scores{IntID(1): 1, IntID(2): 0, IntID(3): 2}

	got := Resolve(items, scores)

	require.Len(t, got, 3)
	assert.Equal(t, Ranked{Rank: 1, Item: items[2], Score: 2}, got[0])
	assert.Equal(t, Ranked{Rank: 2, Item: items[0], Score: 1}, got[1])
	assert.Equal(t, Ranked{Rank: 3, Item: items[1], Score: 0}, got[2])
}

func TestResolve_TiesKeepInputOrder(t *testing.T) {
	items := makeItems(5)
	scores := Scores{IntID(1): 1, IntID(2): 3, IntID(3): 1, IntID(4): 3, IntID(5): 1}

	got := Resolve(items, scores)

	var order []string
	for _, r := range got {
		order = append(order, r.Item.ID.String())
	}
	assert.Equal(t, []string{"2", "4", "1", "3", "5"}, order)
	for i, r := range got {
		assert.Equal(t, i+1, r.Rank, "tied items must not share a rank")
	}
}

func TestResolve_Idempotent(t *testing.T) {
	items := makeItems(6)
	scores := Scores{IntID(1): 2, IntID(2): 2, IntID(3): 5, IntID(4): 0, IntID(5): 4, IntID(6): 2}
	itemsBefore := slices.Clone(items)

	first := Resolve(items, scores)
	second := Resolve(items, scores)

	assert.Equal(t, first, second)
	assert.Equal(t, itemsBefore, items)
	require.Len(t, first, len(items))

	ranks := make([]int, len(first))
	for i, r := range first {
		ranks[i] = r.Rank
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, ranks)
}

func TestResolve_MissingScoresCountAsZero(t *testing.T) {
	items := makeItems(2)
	got := Resolve(items, Scores{IntID(2): 1})

	assert.Equal(t, IntID(2), got[0].Item.ID)
	assert.Equal(t, 0, got[1].Score)
}

func TestTop(t *testing.T) {
	ranked := Resolve(makeItems(12), Scores{})

	assert.Len(t, Top(ranked, 10), 10)
	assert.Len(t, Top(ranked, 0), 12)
	assert.Len(t, Top(ranked, 20), 12)
}
