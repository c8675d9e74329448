// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Quickly Rank API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(mgr, cfg, collector)

# Endpoints

Health and metrics:

	GET /health
	GET /metrics   (only when a collector is given)

Sessions (mutations require X-Session-Key):

	POST   /sessions                - Start from JSON items, a CSV body or the sample deck
	GET    /sessions/{id}           - Progress and the pair on screen
	POST   /sessions/{id}/judgments - Pick the winner of the current pair
	DELETE /sessions/{id}           - Reset and discard the session

Results (public):

	GET /sessions/{id}/results - Final ranking, ?top=N for the first N
	GET /sessions/{id}/export  - Ranking as a CSV download
	GET /sessions/{id}/journal - What the database recorded

Events:

	GET /sessions/{id}/events - WebSocket stream of pair_ready and complete

# Middleware

Every session route is wrapped, outermost first, in request logging,
latency metrics and the per-client rate limiter.
*/
package router
