// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/quickly-rank/ranking"
)

// ErrNotFound is returned when a session has no journal rows.
var ErrNotFound = errors.New("not found")

// Store journals ranking sessions. The in-memory session stays the source
// of truth; the journal only lives as long as the session does.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// JudgmentRecord is one journaled judgment.
type JudgmentRecord struct {
	Seq    int
	ItemA  string
	ItemB  string
	Chosen string
}

// CreateSession records a started session and its items.
func (s *Store) CreateSession(ctx context.Context, sessionID, source string, items []ranking.Item, totalPairs int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO ranking_session (id, source, total_pairs, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, sessionID, source, totalPairs, ranking.StateInProgress.String(), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	for i, item := range items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO session_item (session_id, position, item_id, id_is_int, title, description, image_url)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, sessionID, i, item.ID.String(), item.ID.IsInt(), item.Title, item.Description, item.ImageURL)
		if err != nil {
			return fmt.Errorf("failed to insert item %s: %w", item.ID, err)
		}
	}

	return tx.Commit()
}

// RecordJudgment appends one judgment.
func (s *Store) RecordJudgment(ctx context.Context, sessionID string, seq int, pair ranking.Pair, chosen ranking.ItemID) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO judgment (session_id, seq, item_a, item_b, chosen, judged_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, sessionID, seq, pair.A.ID.String(), pair.B.ID.String(), chosen.String(), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to insert judgment: %w", err)
	}
	return nil
}

// SaveSnapshot stores the final ranking and marks the session complete.
func (s *Store) SaveSnapshot(ctx context.Context, snapshotID, sessionID string, ranked []ranking.Ranked) error {
	payload, err := json.Marshal(ranked)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	_, err = tx.ExecContext(ctx, `
		UPDATE ranking_session
		SET status = $1, completed_at = $2
		WHERE id = $3
	`, ranking.StateComplete.String(), now, sessionID)
	if err != nil {
		return fmt.Errorf("failed to complete session: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO result_snapshot (id, session_id, computed_at, payload)
		VALUES ($1, $2, $3, $4)
	`, snapshotID, sessionID, now, string(payload))
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}

	return tx.Commit()
}

// Judgments returns the journaled judgments of a session in order.
func (s *Store) Judgments(ctx context.Context, sessionID string) ([]JudgmentRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, item_a, item_b, chosen
		FROM judgment
		WHERE session_id = $1
		ORDER BY seq
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query judgments: %w", err)
	}
	defer rows.Close()

	var records []JudgmentRecord
	for rows.Next() {
		var r JudgmentRecord
		if err := rows.Scan(&r.Seq, &r.ItemA, &r.ItemB, &r.Chosen); err != nil {
			return nil, fmt.Errorf("failed to scan judgment: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Items returns the journaled items of a session in input order.
func (s *Store) Items(ctx context.Context, sessionID string) ([]ranking.Item, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT item_id, id_is_int, title, description, image_url
		FROM session_item
		WHERE session_id = $1
		ORDER BY position
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	var items []ranking.Item
	for rows.Next() {
		var (
			id    string
			isInt bool
			item  ranking.Item
		)
		if err := rows.Scan(&id, &isInt, &item.Title, &item.Description, &item.ImageURL); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		if isInt {
			item.ID = ranking.ParseItemID(id)
		} else {
			item.ID = ranking.StringID(id)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Snapshot returns the stored ranking of a completed session.
func (s *Store) Snapshot(ctx context.Context, sessionID string) ([]ranking.Ranked, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `
		SELECT payload FROM result_snapshot
		WHERE session_id = $1
		ORDER BY computed_at DESC
		LIMIT 1
	`, sessionID).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot: %w", err)
	}

	var ranked []ranking.Ranked
	if err := json.Unmarshal([]byte(payload), &ranked); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot payload: %w", err)
	}
	return ranked, nil
}

// DeleteSession removes every row of a session. Child rows are deleted
// explicitly because SQLite does not enforce foreign keys by default.
func (s *Store) DeleteSession(ctx context.Context, sessionID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM result_snapshot WHERE session_id = $1`,
		`DELETE FROM judgment WHERE session_id = $1`,
		`DELETE FROM session_item WHERE session_id = $1`,
		`DELETE FROM ranking_session WHERE id = $1`,
	} {
		if _, err := tx.ExecContext(ctx, stmt, sessionID); err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}
	}

	return tx.Commit()
}

// SessionStatus returns the journaled status of a session.
func (s *Store) SessionStatus(ctx context.Context, sessionID string) (string, error) {
	var status string
	err := s.db.QueryRowContext(ctx, `SELECT status FROM ranking_session WHERE id = $1`, sessionID).Scan(&status)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query session: %w", err)
	}
	return status, nil
}
