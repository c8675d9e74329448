// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ranking

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
)

// State is the lifecycle position of a Session.
type State int

const (
	StateEmpty State = iota
	StateInProgress
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateInProgress:
		return "in_progress"
	case StateComplete:
		return "complete"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// MarshalText lets State appear as a string in JSON.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Progress is a point-in-time view of how far a session has got.
// Judged is 1-based: while pair K of Total is on screen, Judged is K.
// Recorded counts judgments already made.
type Progress struct {
	Judged   int   `json:"judged"`
	Recorded int   `json:"recorded"`
	Total    int   `json:"total"`
	State    State `json:"state"`
}

func (p Progress) String() string {
	return fmt.Sprintf("Choice %d of %d", p.Judged, p.Total)
}

// EventType names a session transition.
type EventType string

const (
	EventPairReady EventType = "pair_ready"
	EventComplete  EventType = "complete"
)

// Event is emitted to the observer after every transition.
type Event struct {
	Type     EventType `json:"type"`
	Pair     *Pair     `json:"pair,omitempty"`
	Progress Progress  `json:"progress"`
	Result   []Ranked  `json:"result,omitempty"`
}

// Option configures a Session.
type Option func(*Session)

// WithRand sets the generator used to shuffle the pair queue.
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) { s.rng = rng }
}

// WithObserver registers fn to receive events. fn runs while the session
// lock is held and must not call back into the session.
func WithObserver(fn func(Event)) Option {
	return func(s *Session) { s.observer = fn }
}

// Session owns the pair queue, the current pair and the score table of one
// ranking run.
type Session struct {
	mu       sync.Mutex
	rng      *rand.Rand
	observer func(Event)

	items    []Item
	members  map[ItemID]struct{}
	queue    []Pair
	current  *Pair
	scores   Scores
	total    int
	judged   int
	recorded int
	state    State
	result   []Ranked
}

// NewSession returns an empty session.
func NewSession(opts ...Option) *Session {
	s := &Session{}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = NewRand()
	}
	return s
}

// Start loads items, builds and shuffles the pair queue and presents the
// first pair. Any previous run is discarded.
func (s *Session) Start(items []Item) error {
	if len(items) < 2 {
		return &InsufficientItemsError{Count: len(items)}
	}
	if err := CheckUnique(items); err != nil {
		return err
	}

	pairs := GeneratePairs(items)
	if len(pairs) == 0 {
		return &InsufficientItemsError{Count: len(items), Pairs: 0}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.clear()
	s.items = slices.Clone(items)
	s.members = make(map[ItemID]struct{}, len(items))
	s.scores = make(Scores, len(items))
	for _, item := range items {
		s.members[item.ID] = struct{}{}
		s.scores[item.ID] = 0
	}

	Shuffle(s.rng, pairs)
	s.queue = pairs
	s.total = len(pairs)
	s.state = StateInProgress

	s.presentNext()
	return nil
}

// presentNext pops the next pair from the end of the queue, or completes
// the session when the queue is empty. Caller holds s.mu.
func (s *Session) presentNext() {
	if len(s.queue) == 0 {
		s.current = nil
		s.state = StateComplete
		s.result = Resolve(s.items, s.scores)
		s.emit(Event{Type: EventComplete, Progress: s.progress(), Result: slices.Clone(s.result)})
		return
	}

	last := len(s.queue) - 1
	pair := s.queue[last]
	s.queue = s.queue[:last]
	s.current = &pair
	s.judged++
	s.emit(Event{Type: EventPairReady, Pair: &pair, Progress: s.progress()})
}

// Judge records that id won the current pair and immediately presents the
// next pair. There is no confirm step and no undo.
//
// An id that is not a member of the current pair, or a call with no pair on
// screen, returns *InvalidChoiceError and changes nothing; the same pair
// stays current.
func (s *Session) Judge(id ItemID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return &InvalidChoiceError{ID: id, Reason: "no pair is being judged"}
	}
	if !s.current.Contains(id) {
		if _, known := s.members[id]; !known {
			return &InvalidChoiceError{ID: id, Reason: "unknown item"}
		}
		return &InvalidChoiceError{ID: id, Reason: "not in the current pair"}
	}

	s.scores[id]++
	s.recorded++
	s.presentNext()
	return nil
}

// Current returns the pair being judged.
func (s *Session) Current() (Pair, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return Pair{}, false
	}
	return *s.current, true
}

// State returns the lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Progress returns judged and total counts.
func (s *Session) Progress() Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress()
}

func (s *Session) progress() Progress {
	return Progress{Judged: s.judged, Recorded: s.recorded, Total: s.total, State: s.state}
}

// Scores returns a copy of the score table.
func (s *Session) Scores() Scores {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(Scores, len(s.scores))
	for id, n := range s.scores {
		out[id] = n
	}
	return out
}

// Items returns a copy of the loaded items in input order.
func (s *Session) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// Result returns the ranking once the session is complete.
func (s *Session) Result() ([]Ranked, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateComplete {
		return nil, ErrNotComplete
	}
	return slices.Clone(s.result), nil
}

// Reset discards everything and returns the session to the empty state.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clear()
}

func (s *Session) clear() {
	s.items = nil
	s.members = nil
	s.queue = nil
	s.current = nil
	s.scores = nil
	s.total = 0
	s.judged = 0
	s.recorded = 0
	s.state = StateEmpty
	s.result = nil
}

func (s *Session) emit(ev Event) {
	if s.observer != nil {
		s.observer(ev)
	}
}
