// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request and response types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateSessionRequest: items (empty means the sample deck)
  - JudgeRequest: item_id (number or string, matching the item)

Validate runs the go-playground/validator tags on a decoded request and
names failing fields by their JSON names.

# Response Types

Types for JSON responses:

  - CreateSessionResponse: session_id, session_key, source, warnings, plus
    the SessionResponse fields
  - SessionResponse: progress, progress_text ("Choice K of N"), current
  - ResultsResponse: session_id, total, rankings
  - JournalResponse: status, items, judgments, rankings as journaled
  - EventMessage: one WebSocket frame (pair_ready or complete)
  - ErrorResponse: error, message

# Pair Placement

The current pair is a ranking.Slots: first and second. The placement is
drawn once per pair, so a client that polls GET /sessions/{id} sees the
same layout until it judges.

# Item IDs

Item IDs keep the type they were given: numeric text from a CSV file and
JSON numbers become integer IDs, anything else stays a string. A JudgeRequest
with "item_id": "3" therefore matches item 3 the same as "item_id": 3.
*/
package models
