// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and journals ranking sessions.

# Connecting

Open accepts "sqlite" (modernc.org/sqlite) or "postgres" (lib/pq):

	conn, err := db.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		log.Fatal(err)
	}
	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call CreateSchema multiple times - uses IF NOT EXISTS for all tables
and indexes. The SQL is portable between both drivers.

# Tables

  - ranking_session: one row per started session
  - session_item: items in input order
  - judgment: one row per accepted judgment
  - result_snapshot: final ranking as JSON

# Relationships

	ranking_session 1──* session_item
	ranking_session 1──* judgment
	ranking_session 1──* result_snapshot

# Journal Lifetime

Rows exist only while the session does. Store.DeleteSession removes them
when a session is reset.
*/
package db
