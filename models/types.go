// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"github.com/danielhkuo/quickly-rank/ranking"
)

// Request types

// An empty Items list starts a session on the built-in sample deck.
type CreateSessionRequest struct {
	Items []ItemRequest `json:"items" validate:"omitempty,dive"`
}

type ItemRequest struct {
	ID          *ranking.ItemID `json:"id" validate:"required"`
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description"`
	ImageURL    string          `json:"imageUrl"`
}

func NewCreateSessionRequest(items []ranking.Item) CreateSessionRequest {
	req := CreateSessionRequest{Items: make([]ItemRequest, len(items))}
	for i, item := range items {
		id := item.ID
		req.Items[i] = ItemRequest{ID: &id, Title: item.Title, Description: item.Description, ImageURL: item.ImageURL}
	}
	return req
}

// RankingItems converts a validated request into session items.
func (r CreateSessionRequest) RankingItems() []ranking.Item {
	items := make([]ranking.Item, len(r.Items))
	for i, in := range r.Items {
		items[i] = ranking.Item{ID: *in.ID, Title: in.Title, Description: in.Description, ImageURL: in.ImageURL}
	}
	return items
}

type JudgeRequest struct {
	ItemID *ranking.ItemID `json:"item_id" validate:"required"`
}

// Response types

type CreateSessionResponse struct {
	SessionID  string   `json:"session_id"`
	SessionKey string   `json:"session_key"`
	Source     string   `json:"source"`
	Warnings   []string `json:"warnings,omitempty"`
	SessionResponse
}

type SessionResponse struct {
	Progress     ranking.Progress `json:"progress"`
	ProgressText string           `json:"progress_text"`
	Current      *ranking.Slots   `json:"current,omitempty"`
}

type ResultsResponse struct {
	SessionID string           `json:"session_id"`
	Total     int              `json:"total"`
	Rankings  []ranking.Ranked `json:"rankings"`
}

type JudgmentView struct {
	Seq    int    `json:"seq"`
	ItemA  string `json:"item_a"`
	ItemB  string `json:"item_b"`
	Chosen string `json:"chosen"`
}

type JournalResponse struct {
	SessionID string           `json:"session_id"`
	Status    string           `json:"status"`
	Items     []ranking.Item   `json:"items"`
	Judgments []JudgmentView   `json:"judgments"`
	Rankings  []ranking.Ranked `json:"rankings,omitempty"`
}

// EventMessage is one WebSocket frame on /sessions/{id}/events.
type EventMessage struct {
	Type         ranking.EventType `json:"type"`
	Progress     ranking.Progress  `json:"progress"`
	ProgressText string            `json:"progress_text"`
	Current      *ranking.Slots    `json:"current,omitempty"`
	Rankings     []ranking.Ranked  `json:"rankings,omitempty"`
}

// Error response

type ErrorResponse struct {
	Error    string   `json:"error"`
	Message  string   `json:"message,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}
