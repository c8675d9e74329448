// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Port           int     `env:"PORT" envDefault:"3318" validate:"min=1,max=65535"`
	DatabaseURL    string  `env:"DATABASE_URL" envDefault:"file::memory:?cache=shared" validate:"required"`
	DatabaseType   string  `env:"DATABASE_TYPE" envDefault:"sqlite" validate:"oneof=sqlite postgres"`
	SessionKeySalt string  `env:"SESSION_KEY_SALT" validate:"required"`
	LogFormat      string  `env:"LOG_FORMAT" envDefault:"text" validate:"oneof=text json"`
	MetricsEnabled bool    `env:"METRICS_ENABLED" envDefault:"true"`
	RateLimit      float64 `env:"RATE_LIMIT" envDefault:"20" validate:"min=0"`
	RateBurst      int     `env:"RATE_BURST" envDefault:"40" validate:"min=1"`
	MaxItems       int     `env:"MAX_ITEMS" envDefault:"200" validate:"min=2"`
	MaxUploadBytes int64   `env:"MAX_UPLOAD_BYTES" envDefault:"1048576" validate:"min=1024"`
}

var validate = validator.New()

// LoadDotEnv loads variables from the given .env files (default ".env")
// without overriding ones already set. A missing file is not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// ParseFlags reads the environment, then applies flags on top and validates
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	// Environment first; flags below default to whatever it produced
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("invalid environment: %w", err)
	}

	fs := flag.NewFlagSet("quickly-rank serve", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", cfg.Port, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", cfg.DatabaseURL, "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", cfg.DatabaseType, "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.SessionKeySalt, "session-salt", cfg.SessionKeySalt, "Session key salt (prefer env)")

	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text or json)")
	fs.BoolVar(&cfg.MetricsEnabled, "metrics", cfg.MetricsEnabled, "Expose /metrics")
	fs.Float64Var(&cfg.RateLimit, "rate", cfg.RateLimit, "Requests per second per client (0 disables)")
	fs.IntVar(&cfg.RateBurst, "burst", cfg.RateBurst, "Rate limiter burst")
	fs.IntVar(&cfg.MaxItems, "max-items", cfg.MaxItems, "Maximum items per session")
	fs.Int64Var(&cfg.MaxUploadBytes, "max-upload", cfg.MaxUploadBytes, "Maximum import size in bytes")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks cfg against its struct tags and reports every failing
// field by its environment variable name.
func Validate(cfg Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q", envName(fe.StructField()), fe.Tag()))
	}
	return errors.New("invalid configuration: " + strings.Join(msgs, "; "))
}

func envName(field string) string {
	switch field {
	case "Port":
		return "PORT"
	case "DatabaseURL":
		return "DATABASE_URL"
	case "DatabaseType":
		return "DATABASE_TYPE"
	case "SessionKeySalt":
		return "SESSION_KEY_SALT"
	case "LogFormat":
		return "LOG_FORMAT"
	case "RateLimit":
		return "RATE_LIMIT"
	case "RateBurst":
		return "RATE_BURST"
	case "MaxItems":
		return "MAX_ITEMS"
	case "MaxUploadBytes":
		return "MAX_UPLOAD_BYTES"
	default:
		return field
	}
}
