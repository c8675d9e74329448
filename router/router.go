// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/quickly-rank/cliparse"
	"github.com/danielhkuo/quickly-rank/handlers"
	"github.com/danielhkuo/quickly-rank/metrics"
	"github.com/danielhkuo/quickly-rank/middleware"
	"github.com/danielhkuo/quickly-rank/sessions"
)

// NewRouter registers every endpoint. collector may be nil, in which case
// /metrics is not served.
func NewRouter(mgr *sessions.Manager, cfg cliparse.Config, collector *metrics.Collector) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(mgr, cfg)
	resultsHandler := handlers.NewResultsHandler(mgr, cfg)
	eventsHandler := handlers.NewEventsHandler(mgr)

	limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst, cfg.SessionKeySalt)
	observe := middleware.WithMetrics(collector)
	wrap := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(observe(limiter.Limit(h)))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	if collector != nil {
		mux.Handle("GET /metrics", collector.Handler())
	}

	// Session lifecycle (mutations require X-Session-Key)
	mux.HandleFunc("POST /sessions", wrap(sessionHandler.CreateSession))
	mux.HandleFunc("GET /sessions/{id}", wrap(sessionHandler.GetSession))
	mux.HandleFunc("POST /sessions/{id}/judgments", wrap(sessionHandler.Judge))
	mux.HandleFunc("DELETE /sessions/{id}", wrap(sessionHandler.ResetSession))

	// Results
	mux.HandleFunc("GET /sessions/{id}/results", wrap(resultsHandler.GetResults))
	mux.HandleFunc("GET /sessions/{id}/export", wrap(resultsHandler.Export))
	mux.HandleFunc("GET /sessions/{id}/journal", wrap(resultsHandler.GetJournal))

	// Live events
	mux.HandleFunc("GET /sessions/{id}/events", wrap(eventsHandler.Stream))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("quickly-rank API v1"))
	})

	return mux
}
