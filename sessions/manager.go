// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sessions

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/danielhkuo/quickly-rank/auth"
	"github.com/danielhkuo/quickly-rank/csvio"
	"github.com/danielhkuo/quickly-rank/db"
	"github.com/danielhkuo/quickly-rank/metrics"
	"github.com/danielhkuo/quickly-rank/ranking"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrTooManyItems    = errors.New("too many items")
	ErrNoJournal       = errors.New("journal not configured")
)

// Sources recorded for a started session.
const (
	SourceJSON   = "json"
	SourceCSV    = "csv"
	SourceSample = "sample"
)

const subscriberBuffer = 16

// Snapshot is a consistent view of one session.
type Snapshot struct {
	ID       string
	Source   string
	Filename string
	Progress ranking.Progress
	// Current is nil once the session is complete.
	Current *ranking.Slots
}

// Event is a session transition with the pair placement already drawn.
type Event struct {
	ranking.Event
	Current *ranking.Slots
}

// Journal is everything the database holds for one session.
type Journal struct {
	Status    string
	Items     []ranking.Item
	Judgments []db.JudgmentRecord
	Result    []ranking.Ranked
}

type Option func(*Manager)

// WithMaxItems caps the number of items a session may hold. Zero means no
// limit.
func WithMaxItems(n int) Option {
	return func(m *Manager) { m.maxItems = n }
}

// WithRandSource sets the generator factory for pair shuffling and slot
// placement. Tests pass a seeded source.
func WithRandSource(fn func() *rand.Rand) Option {
	return func(m *Manager) { m.newRand = fn }
}

// Manager owns every live ranking session of the server.
//
// Lock order: entry.op, then the session's own lock, then entry.mu. The
// session observer takes entry.mu while the session lock is held, so
// nothing may call into the session while holding entry.mu.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*entry

	store    *db.Store
	metrics  *metrics.Collector
	tracer   trace.Tracer
	newRand  func() *rand.Rand
	maxItems int
}

type entry struct {
	id        string
	source    string
	filename  string
	session   *ranking.Session
	presenter *ranking.Presenter

	// op serialises mutations so the journaled pair is the judged pair.
	op sync.Mutex

	mu     sync.Mutex
	slots  *ranking.Slots
	subs   map[chan Event]struct{}
	closed bool
}

// NewManager creates a Manager. store and collector may be nil.
func NewManager(store *db.Store, collector *metrics.Collector, opts ...Option) *Manager {
	m := &Manager{
		sessions: make(map[string]*entry),
		store:    store,
		metrics:  collector,
		tracer:   otel.Tracer("quickly-rank/sessions"),
		newRand:  ranking.NewRand,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start creates a session over items and presents its first pair.
// An empty filename exports as ranked_items.csv.
func (m *Manager) Start(ctx context.Context, source, filename string, items []ranking.Item) (Snapshot, error) {
	ctx, span := m.tracer.Start(ctx, "sessions.Start")
	defer span.End()
	span.SetAttributes(
		attribute.String("session.source", source),
		attribute.Int("session.items", len(items)),
	)

	if m.maxItems > 0 && len(items) > m.maxItems {
		err := fmt.Errorf("%w: %d items, limit is %d", ErrTooManyItems, len(items), m.maxItems)
		span.SetStatus(codes.Error, err.Error())
		return Snapshot{}, err
	}

	e := &entry{
		id:        auth.NewSessionID(),
		source:    source,
		filename:  filename,
		presenter: ranking.NewPresenter(m.newRand()),
		subs:      make(map[chan Event]struct{}),
	}
	e.session = ranking.NewSession(
		ranking.WithRand(m.newRand()),
		ranking.WithObserver(e.observe),
	)

	if err := e.session.Start(items); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Snapshot{}, err
	}

	m.mu.Lock()
	m.sessions[e.id] = e
	m.mu.Unlock()

	snap := e.snapshot()
	span.SetAttributes(
		attribute.String("session.id", e.id),
		attribute.Int("session.pairs", snap.Progress.Total),
	)
	m.metrics.SessionStarted(source)

	if m.store != nil {
		jctx := context.WithoutCancel(ctx)
		if err := m.store.CreateSession(jctx, e.id, filename, items, snap.Progress.Total); err != nil {
			slog.Error("failed to journal session", "session_id", e.id, "error", err)
		}
	}

	slog.Info("session started",
		"session_id", e.id,
		"source", source,
		"items", len(items),
		"pairs", snap.Progress.Total,
	)
	span.SetStatus(codes.Ok, "session started")
	return snap, nil
}

// Import parses a CSV upload and starts a session over its rows. Skipped
// rows come back as warnings alongside the snapshot.
func (m *Manager) Import(ctx context.Context, filename string, r io.Reader) (Snapshot, []string, error) {
	ctx, span := m.tracer.Start(ctx, "sessions.Import")
	defer span.End()
	span.SetAttributes(attribute.String("import.filename", filename))

	res, err := csvio.Import(ctx, r)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Snapshot{}, nil, err
	}

	m.metrics.RowsSkipped(len(res.Warnings))
	span.SetAttributes(
		attribute.Int("import.items", len(res.Items)),
		attribute.Int("import.skipped", len(res.Warnings)),
	)

	if err := res.InsufficientError(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Snapshot{}, res.Warnings, err
	}

	snap, err := m.Start(ctx, SourceCSV, filename, res.Items)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Snapshot{}, res.Warnings, err
	}
	span.SetStatus(codes.Ok, "import completed")
	return snap, res.Warnings, nil
}

// Get returns the current view of a session.
func (m *Manager) Get(id string) (Snapshot, error) {
	e, err := m.lookup(id)
	if err != nil {
		return Snapshot{}, err
	}

	e.op.Lock()
	defer e.op.Unlock()
	return e.snapshot(), nil
}

// Judge records that itemID won the pair on screen and returns the view of
// the next pair, or the completed session.
func (m *Manager) Judge(ctx context.Context, id string, itemID ranking.ItemID) (Snapshot, error) {
	ctx, span := m.tracer.Start(ctx, "sessions.Judge")
	defer span.End()
	span.SetAttributes(
		attribute.String("session.id", id),
		attribute.String("judgment.item_id", itemID.String()),
	)

	e, err := m.lookup(id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Snapshot{}, err
	}

	e.op.Lock()
	pair, _ := e.session.Current()
	err = e.session.Judge(itemID)
	snap := e.snapshot()
	e.op.Unlock()

	if err != nil {
		m.metrics.Judgment(metrics.OutcomeRejected)
		span.SetStatus(codes.Error, err.Error())
		return snap, err
	}
	m.metrics.Judgment(metrics.OutcomeAccepted)
	span.SetAttributes(attribute.Int("judgment.seq", snap.Progress.Recorded))

	jctx := context.WithoutCancel(ctx)
	if m.store != nil {
		if err := m.store.RecordJudgment(jctx, id, snap.Progress.Recorded, pair, itemID); err != nil {
			slog.Error("failed to journal judgment", "session_id", id, "seq", snap.Progress.Recorded, "error", err)
		}
	}

	if snap.Progress.State == ranking.StateComplete {
		m.complete(jctx, e, span)
	}

	span.SetStatus(codes.Ok, "judgment recorded")
	return snap, nil
}

func (m *Manager) complete(ctx context.Context, e *entry, span trace.Span) {
	m.metrics.SessionCompleted()
	span.AddEvent("session.complete")
	slog.Info("session complete", "session_id", e.id)

	if m.store == nil {
		return
	}
	ranked, err := e.session.Result()
	if err != nil {
		return
	}
	snapshotID, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate snapshot id", "session_id", e.id, "error", err)
		return
	}
	if err := m.store.SaveSnapshot(ctx, snapshotID, e.id, ranked); err != nil {
		slog.Error("failed to journal result", "session_id", e.id, "error", err)
	}
}

// Result returns the final ranking. It wraps ranking.ErrNotComplete while
// pairs remain.
func (m *Manager) Result(id string) ([]ranking.Ranked, Snapshot, error) {
	e, err := m.lookup(id)
	if err != nil {
		return nil, Snapshot{}, err
	}

	e.op.Lock()
	defer e.op.Unlock()

	snap := e.snapshot()
	ranked, err := e.session.Result()
	if err != nil {
		return nil, snap, fmt.Errorf("session %s: %w", id, err)
	}
	return ranked, snap, nil
}

// Reset discards a session: the engine returns to empty, subscribers are
// closed and the journal rows are deleted.
func (m *Manager) Reset(ctx context.Context, id string) error {
	m.mu.Lock()
	e, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}

	e.op.Lock()
	e.session.Reset()
	e.op.Unlock()
	e.closeSubscribers()

	m.metrics.SessionRemoved()

	if m.store != nil {
		if err := m.store.DeleteSession(context.WithoutCancel(ctx), id); err != nil {
			slog.Error("failed to delete journal", "session_id", id, "error", err)
		}
	}

	slog.Info("session reset", "session_id", id)
	return nil
}

// Subscribe returns a channel of session events. The channel is closed by
// cancel or when the session is reset. Slow readers miss events rather than
// stall judging.
func (m *Manager) Subscribe(id string) (<-chan Event, func(), error) {
	e, err := m.lookup(id)
	if err != nil {
		return nil, nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil, nil, ErrSessionNotFound
	}

	ch := make(chan Event, subscriberBuffer)
	e.subs[ch] = struct{}{}

	cancel := func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if _, ok := e.subs[ch]; ok {
			delete(e.subs, ch)
			close(ch)
		}
	}
	return ch, cancel, nil
}

// Journal reads back what the database recorded for a session.
func (m *Manager) Journal(ctx context.Context, id string) (Journal, error) {
	if _, err := m.lookup(id); err != nil {
		return Journal{}, err
	}
	if m.store == nil {
		return Journal{}, ErrNoJournal
	}

	var (
		j   Journal
		err error
	)
	if j.Status, err = m.store.SessionStatus(ctx, id); err != nil {
		return Journal{}, err
	}
	if j.Items, err = m.store.Items(ctx, id); err != nil {
		return Journal{}, err
	}
	if j.Judgments, err = m.store.Judgments(ctx, id); err != nil {
		return Journal{}, err
	}
	j.Result, err = m.store.Snapshot(ctx, id)
	if err != nil && !errors.Is(err, db.ErrNotFound) {
		return Journal{}, err
	}
	return j, nil
}

// Len reports how many sessions are live.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *Manager) lookup(id string) (*entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return e, nil
}

// observe runs under the session lock for every transition.
func (e *entry) observe(ev ranking.Event) {
	var slots *ranking.Slots
	if ev.Type == ranking.EventPairReady && ev.Pair != nil {
		s := e.presenter.Orient(*ev.Pair)
		slots = &s
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.slots = slots
	out := Event{Event: ev, Current: slots}
	for ch := range e.subs {
		select {
		case ch <- out:
		default:
			slog.Warn("dropping event for slow subscriber", "session_id", e.id, "type", ev.Type)
		}
	}
}

// snapshot must not be called with e.mu held.
func (e *entry) snapshot() Snapshot {
	progress := e.session.Progress()

	e.mu.Lock()
	defer e.mu.Unlock()

	snap := Snapshot{
		ID:       e.id,
		Source:   e.source,
		Filename: e.filename,
		Progress: progress,
	}
	if e.slots != nil {
		s := *e.slots
		snap.Current = &s
	}
	return snap
}

func (e *entry) closeSubscribers() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.closed = true
	for ch := range e.subs {
		delete(e.subs, ch)
		close(ch)
	}
}
