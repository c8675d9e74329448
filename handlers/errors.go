// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickly-rank/csvio"
	"github.com/danielhkuo/quickly-rank/middleware"
	"github.com/danielhkuo/quickly-rank/models"
	"github.com/danielhkuo/quickly-rank/ranking"
	"github.com/danielhkuo/quickly-rank/sessions"
)

// statusFor maps a domain error to its HTTP status.
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, sessions.ErrSessionNotFound), errors.Is(err, sessions.ErrNoJournal):
		return http.StatusNotFound
	case errors.Is(err, csvio.ErrImportFormat), errors.Is(err, csvio.ErrRead), errors.Is(err, ranking.ErrDuplicateItem):
		return http.StatusBadRequest
	case errors.Is(err, ranking.ErrInsufficientItems), errors.Is(err, sessions.ErrTooManyItems):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ranking.ErrInvalidChoice), errors.Is(err, ranking.ErrNotComplete):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError sends err as an ErrorResponse. Unknown errors are logged and
// hidden behind a generic message.
func writeError(w http.ResponseWriter, err error, op string) {
	writeErrorWithWarnings(w, err, op, nil)
}

// writeErrorWithWarnings is writeError for imports, whose skipped-row
// warnings explain a rejection as often as the error does.
func writeErrorWithWarnings(w http.ResponseWriter, err error, op string, warnings []string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "op", op, "error", err)
		middleware.ErrorResponse(w, status, "Internal error")
		return
	}
	middleware.JSONResponse(w, status, models.ErrorResponse{
		Error:    http.StatusText(status),
		Message:  err.Error(),
		Warnings: warnings,
	})
}
