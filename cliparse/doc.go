// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration
for the serve command.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[2:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Journal database (default: in-memory SQLite)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - SessionKeySalt: Secret for session key HMAC (required)
  - LogFormat: text or json (default: text)
  - MetricsEnabled: Serve /metrics (default: true)
  - RateLimit, RateBurst: Per-client token bucket (default: 20/s, burst 40)
  - MaxItems: Largest accepted item list (default: 200)
  - MaxUploadBytes: Largest accepted CSV body (default: 1 MiB)

# Precedence

Values are resolved in this order, highest first:

 1. CLI flags
 2. Environment variables (parsed with caarlos0/env)
 3. A .env file, loaded by LoadDotEnv without overriding the environment
 4. envDefault tags on Config

# CLI Flags

	-p             Server port                    PORT
	-d             Database URL                   DATABASE_URL
	-t             Database type                  DATABASE_TYPE
	-session-salt  Session key salt               SESSION_KEY_SALT
	-log-format    text or json                   LOG_FORMAT
	-metrics       Expose /metrics                METRICS_ENABLED
	-rate          Requests per second            RATE_LIMIT
	-burst         Rate limiter burst             RATE_BURST
	-max-items     Maximum items per session      MAX_ITEMS
	-max-upload    Maximum import size in bytes   MAX_UPLOAD_BYTES

# Validation

Validate checks the struct tags with go-playground/validator and names each
failing field by its environment variable:

	invalid configuration: SESSION_KEY_SALT: failed "required"
*/
package cliparse
