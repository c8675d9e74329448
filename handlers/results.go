// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/quickly-rank/cliparse"
	"github.com/danielhkuo/quickly-rank/csvio"
	"github.com/danielhkuo/quickly-rank/middleware"
	"github.com/danielhkuo/quickly-rank/models"
	"github.com/danielhkuo/quickly-rank/ranking"
	"github.com/danielhkuo/quickly-rank/sessions"
)

type ResultsHandler struct {
	mgr *sessions.Manager
	cfg cliparse.Config
}

func NewResultsHandler(mgr *sessions.Manager, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{mgr: mgr, cfg: cfg}
}

// GetResults handles GET /sessions/{id}/results
// Optional ?top=N trims the list to the first N ranks.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	top := 0
	if v := r.URL.Query().Get("top"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "top must be a positive integer")
			return
		}
		top = n
	}

	ranked, _, err := h.mgr.Result(id)
	if err != nil {
		writeError(w, err, "get results")
		return
	}

	total := len(ranked)
	if top > 0 {
		ranked = ranking.Top(ranked, top)
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResultsResponse{
		SessionID: id,
		Total:     total,
		Rankings:  ranked,
	})
}

// Export handles GET /sessions/{id}/export
func (h *ResultsHandler) Export(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	ranked, snap, err := h.mgr.Result(id)
	if err != nil {
		writeError(w, err, "export")
		return
	}

	// Render first so a failure can still become a JSON error
	var buf bytes.Buffer
	if err := csvio.Export(&buf, ranked); err != nil {
		writeError(w, err, "export")
		return
	}

	filename := csvio.ExportFilename(snap.Filename)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write export", "session_id", id, "error", err)
	}
}

// GetJournal handles GET /sessions/{id}/journal
func (h *ResultsHandler) GetJournal(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	j, err := h.mgr.Journal(r.Context(), id)
	if err != nil {
		writeError(w, err, "get journal")
		return
	}

	resp := models.JournalResponse{
		SessionID: id,
		Status:    j.Status,
		Items:     j.Items,
		Judgments: make([]models.JudgmentView, 0, len(j.Judgments)),
		Rankings:  j.Result,
	}
	for _, rec := range j.Judgments {
		resp.Judgments = append(resp.Judgments, models.JudgmentView{
			Seq:    rec.Seq,
			ItemA:  rec.ItemA,
			ItemB:  rec.ItemB,
			Chosen: rec.Chosen,
		})
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}
