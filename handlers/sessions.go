// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path"

	"github.com/danielhkuo/quickly-rank/auth"
	"github.com/danielhkuo/quickly-rank/cliparse"
	"github.com/danielhkuo/quickly-rank/deck"
	"github.com/danielhkuo/quickly-rank/middleware"
	"github.com/danielhkuo/quickly-rank/models"
	"github.com/danielhkuo/quickly-rank/ranking"
	"github.com/danielhkuo/quickly-rank/sessions"
)

// SessionKeyHeader carries the key returned by CreateSession.
const SessionKeyHeader = "X-Session-Key"

// defaultUploadName is used when a CSV upload has no ?filename=.
const defaultUploadName = "items.csv"

type SessionHandler struct {
	mgr *sessions.Manager
	cfg cliparse.Config
}

func NewSessionHandler(mgr *sessions.Manager, cfg cliparse.Config) *SessionHandler {
	return &SessionHandler{mgr: mgr, cfg: cfg}
}

// CreateSession handles POST /sessions
//
// A text/csv body is imported; ?filename= names the file for the export.
// A JSON body carries items directly. An empty body or an empty item list
// uses the sample deck.
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes)

	var (
		snap     sessions.Snapshot
		warnings []string
		err      error
	)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "text/csv", "text/plain":
		filename := path.Base(r.URL.Query().Get("filename"))
		if filename == "." || filename == "/" {
			filename = defaultUploadName
		}
		snap, warnings, err = h.mgr.Import(r.Context(), filename, r.Body)
	default:
		var req models.CreateSessionRequest
		if err := middleware.ParseJSONBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
			if statusFor(err) == http.StatusRequestEntityTooLarge {
				writeError(w, err, "create session")
				return
			}
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
		if err := models.Validate(req); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}

		if len(req.Items) == 0 {
			snap, err = h.mgr.Start(r.Context(), sessions.SourceSample, deck.SampleName, deck.Sample())
		} else {
			snap, err = h.mgr.Start(r.Context(), sessions.SourceJSON, "", req.RankingItems())
		}
	}
	if err != nil {
		writeErrorWithWarnings(w, err, "create session", warnings)
		return
	}

	slog.Info("session created",
		"session_id", snap.ID,
		"source", snap.Source,
		"client", auth.HashIP(middleware.GetClientIP(r), h.cfg.SessionKeySalt),
		"warnings", len(warnings),
	)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateSessionResponse{
		SessionID:       snap.ID,
		SessionKey:      auth.GenerateSessionKey(snap.ID, h.cfg.SessionKeySalt),
		Source:          snap.Source,
		Warnings:        warnings,
		SessionResponse: sessionResponse(snap),
	})
}

// GetSession handles GET /sessions/{id}
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	snap, err := h.mgr.Get(id)
	if err != nil {
		writeError(w, err, "get session")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, sessionResponse(snap))
}

// Judge handles POST /sessions/{id}/judgments
func (h *SessionHandler) Judge(w http.ResponseWriter, r *http.Request) {
	id, ok := h.authorize(w, r)
	if !ok {
		return
	}

	var req models.JudgeRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := models.Validate(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	snap, err := h.mgr.Judge(r.Context(), id, *req.ItemID)
	if err != nil {
		writeError(w, err, "judge")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, sessionResponse(snap))
}

// ResetSession handles DELETE /sessions/{id}
func (h *SessionHandler) ResetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := h.authorize(w, r)
	if !ok {
		return
	}

	if err := h.mgr.Reset(r.Context(), id); err != nil {
		writeError(w, err, "reset session")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// authorize checks the session key of a mutating request.
func (h *SessionHandler) authorize(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := sessionID(w, r)
	if !ok {
		return "", false
	}

	key := r.Header.Get(SessionKeyHeader)
	if err := auth.ValidateSessionKey(id, key, h.cfg.SessionKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid session key")
		return "", false
	}
	return id, true
}

// sessionID reads and normalizes the {id} path value. Anything that is not
// a session ID is reported as not found.
func sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, err := auth.ParseSessionID(r.PathValue("id"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusNotFound, sessions.ErrSessionNotFound.Error())
		return "", false
	}
	return id, true
}

func sessionResponse(snap sessions.Snapshot) models.SessionResponse {
	return models.SessionResponse{
		Progress:     snap.Progress,
		ProgressText: progressText(snap.Progress),
		Current:      snap.Current,
	}
}

func progressText(p ranking.Progress) string {
	if p.State == ranking.StateComplete {
		return "Complete"
	}
	return p.String()
}
