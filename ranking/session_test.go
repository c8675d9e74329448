// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ranking

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStart_InsufficientItems(t *testing.T) {
	for _, n := range []int{0, 1} {
		s := NewSession()
		err := s.Start(makeItems(n))

		var insufficient *InsufficientItemsError
		require.ErrorAs(t, err, &insufficient)
		assert.Equal(t, n, insufficient.Count)
		assert.ErrorIs(t, err, ErrInsufficientItems)
		assert.Equal(t, StateEmpty, s.State())
	}
}

func TestStart_DuplicateIDs(t *testing.T) {
	items := []Item{{ID: IntID(1), Title: "A"}, {ID: IntID(1), Title: "B"}}
	err := NewSession().Start(items)
	assert.ErrorIs(t, err, ErrDuplicateItem)
}

func TestStart_InitialState(t *testing.T) {
	for _, n := range []int{2, 3, 8} {
		s := NewSession(WithRand(NewSeededRand(uint64(n))))
		require.NoError(t, s.Start(makeItems(n)))

		scores := s.Scores()
		assert.Len(t, scores, n)
		for id, v := range scores {
			assert.Zero(t, v, "score for %s", id)
		}

		p := s.Progress()
		assert.Equal(t, n*(n-1)/2, p.Total)
		assert.Equal(t, 1, p.Judged, "first pair is presented by Start")
		assert.Equal(t, 0, p.Recorded)
		assert.Equal(t, StateInProgress, p.State)

		_, ok := s.Current()
		assert.True(t, ok)
	}
}

func TestJudge_Scenario(t *testing.T) {
	items := []Item{
		{ID: IntID(1), Title: "A"},
		{ID: IntID(2), Title: "B"},
		{ID: IntID(3), Title: "C"},
	}
	s := NewSession()
	require.NoError(t, s.Start(items))
	require.Equal(t, 3, s.Progress().Total)

	choose := map[[2]int64]int64{{1, 2}: 1, {1, 3}: 3, {2, 3}: 3}
	for s.State() != StateComplete {
		pair, ok := s.Current()
		require.True(t, ok)
		a, _ := pair.A.ID.Int()
		b, _ := pair.B.ID.Int()
		require.NoError(t, s.Judge(IntID(choose[[2]int64{a, b}])))
	}

	assert.Equal(t, Scores{IntID(1): 1, IntID(2): 0, IntID(3): 2}, s.Scores())

	result, err := s.Result()
	require.NoError(t, err)
	assert.Equal(t, []Ranked{
		{Rank: 1, Item: items[2], Score: 2},
		{Rank: 2, Item: items[0], Score: 1},
		{Rank: 3, Item: items[1], Score: 0},
	}, result)
}

func TestJudge_EachJudgmentAddsOnePoint(t *testing.T) {
	s := NewSession(WithRand(NewSeededRand(9)))
	items := makeItems(7)
	require.NoError(t, s.Start(items))
	total := s.Progress().Total

	seenPairs := make(map[[2]ItemID]bool)
	for i := 0; i < total; i++ {
		before := s.Scores()
		pair, ok := s.Current()
		require.True(t, ok)

		key := [2]ItemID{pair.A.ID, pair.B.ID}
		require.False(t, seenPairs[key], "pair presented twice")
		seenPairs[key] = true

		choice := pair.B.ID
		if i%2 == 0 {
			choice = pair.A.ID
		}
		require.NoError(t, s.Judge(choice))

		after := s.Scores()
		changed := 0
		for id, v := range after {
			if v != before[id] {
				changed++
				assert.Equal(t, before[id]+1, v)
				assert.Equal(t, choice, id)
			}
		}
		assert.Equal(t, 1, changed)
		assert.Equal(t, i+1, s.Progress().Recorded)
	}

	assert.Equal(t, StateComplete, s.State())
	assert.Len(t, seenPairs, total)

	sum := 0
	for _, v := range s.Scores() {
		sum += v
	}
	assert.Equal(t, total, sum, "points are conserved")

	p := s.Progress()
	assert.Equal(t, total, p.Judged)
	assert.Equal(t, total, p.Recorded)
}

func TestJudge_InvalidChoiceLeavesStateAlone(t *testing.T) {
	s := NewSession(WithRand(NewSeededRand(5)))
	require.NoError(t, s.Start(makeItems(4)))

	pair, _ := s.Current()
	var outsider ItemID
	for _, item := range s.Items() {
		if !pair.Contains(item.ID) {
			outsider = item.ID
			break
		}
	}
	before := s.Scores()
	progress := s.Progress()

	tests := []struct {
		name   string
		id     ItemID
		reason string
	}{
		{"member of another pair", outsider, "not in the current pair"},
		{"unknown id", StringID("nope"), "unknown item"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Judge(tt.id)

			var invalid *InvalidChoiceError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.reason, invalid.Reason)
			assert.True(t, errors.Is(err, ErrInvalidChoice))

			assert.Equal(t, before, s.Scores())
			assert.Equal(t, progress, s.Progress())
			current, _ := s.Current()
			assert.Equal(t, pair, current)
		})
	}
}

func TestJudge_AfterComplete(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.Start(makeItems(2)))
	pair, _ := s.Current()
	require.NoError(t, s.Judge(pair.A.ID))
	require.Equal(t, StateComplete, s.State())

	err := s.Judge(pair.A.ID)
	assert.ErrorIs(t, err, ErrInvalidChoice)
	assert.Equal(t, 1, s.Scores()[pair.A.ID])
}

func TestJudge_EmptySession(t *testing.T) {
	err := NewSession().Judge(IntID(1))
	assert.ErrorIs(t, err, ErrInvalidChoice)
}

func TestResult_NotComplete(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.Start(makeItems(3)))

	_, err := s.Result()
	assert.ErrorIs(t, err, ErrNotComplete)
}

func TestReset(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.Start(makeItems(4)))
	pair, _ := s.Current()
	require.NoError(t, s.Judge(pair.A.ID))

	s.Reset()

	assert.Equal(t, StateEmpty, s.State())
	assert.Equal(t, Progress{State: StateEmpty}, s.Progress())
	assert.Empty(t, s.Scores())
	_, ok := s.Current()
	assert.False(t, ok)

	// a reset session can be started again
	require.NoError(t, s.Start(makeItems(3)))
	assert.Equal(t, 3, s.Progress().Total)
}

func TestObserver(t *testing.T) {
	var events []Event
	s := NewSession(WithObserver(func(ev Event) { events = append(events, ev) }))
	require.NoError(t, s.Start(makeItems(3)))

	for s.State() != StateComplete {
		pair, _ := s.Current()
		require.NoError(t, s.Judge(pair.B.ID))
	}

	require.Len(t, events, 4)
	for i, ev := range events[:3] {
		assert.Equal(t, EventPairReady, ev.Type)
		require.NotNil(t, ev.Pair)
		assert.Equal(t, i+1, ev.Progress.Judged)
	}
	last := events[3]
	assert.Equal(t, EventComplete, last.Type)
	assert.Nil(t, last.Pair)
	assert.Len(t, last.Result, 3)
}

func TestJudge_Concurrent(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.Start(makeItems(10)))
	total := s.Progress().Total

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for s.State() != StateComplete {
				pair, ok := s.Current()
				if !ok {
					return
				}
				// losing a race to another worker is an InvalidChoiceError
				_ = s.Judge(pair.A.ID)
			}
		}()
	}
	wg.Wait()

	sum := 0
	for _, v := range s.Scores() {
		sum += v
	}
	assert.Equal(t, total, sum)
	assert.Equal(t, StateComplete, s.State())
}

func TestProgressString(t *testing.T) {
	assert.Equal(t, "Choice 3 of 10", Progress{Judged: 3, Total: 10}.String())
}
