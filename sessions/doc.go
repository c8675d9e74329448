// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package sessions keeps the live ranking sessions of the server.

A Manager maps session IDs to a ranking.Session plus the presentation state
that goes with it: the first/second placement of the pair on screen and the
event subscribers. Every accepted judgment is journaled to the db package;
a journal failure is logged and never touches the in-memory session.

	mgr := sessions.NewManager(db.NewStore(conn), metrics.New(),
		sessions.WithMaxItems(cfg.MaxItems))

	snap, err := mgr.Start(ctx, sessions.SourceJSON, "", items)
	snap, err = mgr.Judge(ctx, snap.ID, snap.Current.First.ID)

# Tracing

Start, Import and Judge open spans on the global OpenTelemetry tracer. No
provider is installed by default, so spans are no-ops until one is.

# Events

Subscribe returns a buffered channel. Events are dropped for a subscriber
whose buffer is full, and the channel is closed when the session is reset.
*/
package sessions
