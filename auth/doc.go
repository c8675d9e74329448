// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides session identifiers and session keys.

# Session IDs

Session IDs are random UUIDs from google/uuid:

	id := auth.NewSessionID()
	id, err := auth.ParseSessionID(r.PathValue("id"))

ParseSessionID rejects anything that is not a UUID before it reaches a
map lookup or a SQL query.

# Session Keys

Session keys use HMAC-SHA256 to create deterministic, verifiable keys:

	key := auth.GenerateSessionKey(sessionID, salt)
	err := auth.ValidateSessionKey(sessionID, key, salt)

The key is URL-safe base64 encoded without padding and is returned once
when the session is created. Clients send it back in the X-Session-Key
header on every mutating request. Since it's deterministic, the server
never stores it.

# ID Generation

Random hex IDs for journal rows:

	id, err := auth.GenerateID(16)  // 32 hex characters

# IP Hashing

Request logs carry a salted hash instead of the client address:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
