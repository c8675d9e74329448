// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the quickly-rank command.

quickly-rank orders a list of items by asking, for every pair, which of the
two you prefer. Each answer is a win for the chosen item; the final ranking
sorts by wins, keeping input order between equal scores.

# Commands

	quickly-rank judge [deck]   rank a deck in the terminal
	quickly-rank serve [flags]  run the HTTP API
	quickly-rank sample [file]  write the built-in sample deck

# Judging in the Terminal

A deck is CSV with the header id,title,description,imageUrl, or YAML/TOML
with an items list. Without a deck the built-in sample is used:

	quickly-rank judge movies.csv
	quickly-rank judge --ui off < answers.txt

The --ui flag picks the Bubble Tea interface (on), numbered prompts (off),
or whichever fits the terminal (auto). The finished ranking is written to
ranked_<deck> unless -o names another path.

# Starting the Server

The server reads environment variables (and .env) with flags on top:

	SESSION_KEY_SALT=dev-salt quickly-rank serve

Or with flags:

	quickly-rank serve -p 3318 -t postgres -d "postgres://..." -session-salt dev-salt

# Configuration

Required settings:

  - SESSION_KEY_SALT (-session-salt): Secret for session key HMAC

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): Journal database (default: in-memory SQLite)
  - LOG_FORMAT (-log-format): text or json
  - METRICS_ENABLED (-metrics): Expose /metrics
  - RATE_LIMIT, RATE_BURST (-rate, -burst): Per-client request limit
  - MAX_ITEMS (-max-items): Largest accepted item set
  - MAX_UPLOAD_BYTES (-max-upload): Largest accepted request body

# Architecture

  - ranking: Pair generation, sessions and result resolution
  - csvio: CSV import and export
  - deck: Deck files and the sample deck
  - sessions: Concurrent session registry with journaling
  - handlers: HTTP request handlers (sessions, results, events)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, metrics, rate limiting, JSON helpers
  - models: Request/response types and validation
  - auth: Session IDs and keys
  - db: Journal schema and store
  - metrics: Prometheus collectors
  - tui: Bubble Tea judging interface
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
