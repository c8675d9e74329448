// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Quickly Rank API.

# Handler Types

Each handler is a struct holding the session manager and config:

  - SessionHandler: create, read, judge and reset sessions
  - ResultsHandler: final ranking, CSV export and the journal
  - EventsHandler: WebSocket stream of session transitions

Handlers are built once and registered by the router:

	sessionHandler := handlers.NewSessionHandler(mgr, cfg)

# Session Lifecycle

	POST   /sessions                 → CreateSession (returns session_key)
	GET    /sessions/{id}            → GetSession
	POST   /sessions/{id}/judgments  → Judge
	DELETE /sessions/{id}            → ResetSession
	GET    /sessions/{id}/results    → GetResults (409 until complete)
	GET    /sessions/{id}/export     → Export (text/csv attachment)
	GET    /sessions/{id}/journal    → GetJournal
	GET    /sessions/{id}/events     → Stream (WebSocket)

CreateSession accepts a JSON body of items, a text/csv body (the name for
the export comes from ?filename=), or nothing at all for the sample deck.
Judge and ResetSession require the X-Session-Key header.

Judging is immediate: a valid choice advances to the next pair in the same
response, and there is no undo. A choice outside the pair on screen is
rejected with 409 and the pair stays.

# Errors

Domain errors map to statuses in one place (statusFor):

	ImportFormatError, ReadError, duplicate ids  400
	unknown session                              404
	InvalidChoiceError, result before complete   409
	upload over MAX_UPLOAD_BYTES                 413
	InsufficientItemsError, over MAX_ITEMS       422
*/
package handlers
