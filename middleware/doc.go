// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path) and completion (status, duration_ms).

# Metrics

WithMetrics observes request latency by mux pattern, so
/sessions/{id} is one series no matter how many sessions exist:

	wrap := middleware.WithMetrics(collector)
	mux.HandleFunc("GET /sessions/{id}", wrap(handler))

The status recorder shared by both wrappers supports Hijack, so the
WebSocket route can be wrapped like any other.

# Rate Limiting

RateLimiter keeps a golang.org/x/time/rate token bucket per client, keyed by
auth.HashIP. Requests over the limit get 429 with Retry-After:

	rl := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst, cfg.SessionKeySalt)
	mux.HandleFunc("POST /sessions", rl.Limit(handler))

A rate of zero disables limiting.

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, DELETE, OPTIONS with headers Content-Type and
X-Session-Key, and exposes Content-Disposition for CSV downloads.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

	var req models.JudgeRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)
*/
package middleware
