// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseFlags_EnvVars(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("SESSION_KEY_SALT", "test-salt")
	t.Setenv("MAX_ITEMS", "50")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "postgres" {
		t.Errorf("expected database type postgres, got %s", cfg.DatabaseType)
	}
	if cfg.MaxItems != 50 {
		t.Errorf("expected max items 50, got %d", cfg.MaxItems)
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	t.Setenv("SESSION_KEY_SALT", "s")

	cfg, err := ParseFlags(nil)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 3318 {
		t.Errorf("expected default port 3318, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected default database type sqlite, got %s", cfg.DatabaseType)
	}
	if cfg.LogFormat != "text" || !cfg.MetricsEnabled {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	t.Setenv("PORT", "9000")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-session-salt", "s1", "-log-format", "json"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("expected json log format, got %s", cfg.LogFormat)
	}
}

func TestParseFlags_MissingSalt(t *testing.T) {
	t.Setenv("SESSION_KEY_SALT", "")

	_, err := ParseFlags(nil)
	if err == nil {
		t.Fatal("expected error when SESSION_KEY_SALT is missing")
	}
	if !strings.Contains(err.Error(), "SESSION_KEY_SALT") {
		t.Errorf("error should name SESSION_KEY_SALT, got %v", err)
	}
}

func TestParseFlags_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad database type", []string{"-t", "mysql"}, "DATABASE_TYPE"},
		{"bad port", []string{"-p", "70000"}, "PORT"},
		{"bad log format", []string{"-log-format", "xml"}, "LOG_FORMAT"},
		{"too few items", []string{"-max-items", "1"}, "MAX_ITEMS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SESSION_KEY_SALT", "s")
			_, err := ParseFlags(tt.args)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error mentioning %s, got %v", tt.want, err)
			}
		})
	}
}

func TestParseFlags_InvalidEnv(t *testing.T) {
	t.Setenv("PORT", "not-a-number")

	if _, err := ParseFlags(nil); err == nil {
		t.Fatal("expected error for invalid PORT env variable")
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("SESSION_KEY_SALT=from-dotenv\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SESSION_KEY_SALT", "")
	os.Unsetenv("SESSION_KEY_SALT")

	if err := LoadDotEnv(path); err != nil {
		t.Fatal(err)
	}
	if got := os.Getenv("SESSION_KEY_SALT"); got != "from-dotenv" {
		t.Errorf("expected value from .env, got %q", got)
	}

	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("missing .env should be ignored, got %v", err)
	}
}
