// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ranking

import (
	crand "crypto/rand"
	"math/rand/v2"
	"sync"
)

// NewRand returns a ChaCha8 generator seeded from crypto/rand. Its 256-bit
// seed is enough for every permutation of any realistic pair list.
func NewRand() *rand.Rand {
	var seed [32]byte
	if _, err := crand.Read(seed[:]); err != nil {
		panic("ranking: crypto/rand unavailable: " + err.Error())
	}
	return rand.New(rand.NewChaCha8(seed))
}

// NewSeededRand returns a deterministic generator for tests and replays.
func NewSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Shuffle permutes s in place with a Fisher-Yates walk from the last index
// down to 1.
func Shuffle[T any](rng *rand.Rand, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

// Slots is the display assignment of a pair.
type Slots struct {
	First  Item `json:"first"`
	Second Item `json:"second"`
}

// Presenter decides which member of a pair is shown first. The draw only
// affects display; scoring never looks at it.
type Presenter struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewPresenter returns a Presenter. A nil rng uses NewRand.
func NewPresenter(rng *rand.Rand) *Presenter {
	if rng == nil {
		rng = NewRand()
	}
	return &Presenter{rng: rng}
}

// Orient makes one random binary draw for p.
func (pr *Presenter) Orient(p Pair) Slots {
	pr.mu.Lock()
	flip := pr.rng.IntN(2) == 1
	pr.mu.Unlock()

	if flip {
		return Slots{First: p.B, Second: p.A}
	}
	return Slots{First: p.A, Second: p.B}
}
