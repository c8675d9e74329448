// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestGenerateID(t *testing.T) {
	tests := []struct {
		name    string
		byteLen int
		wantLen int // hex encoded length = byteLen * 2
	}{
		{"8 bytes", 8, 16},
		{"16 bytes", 16, 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := GenerateID(tt.byteLen)
			if err != nil {
				t.Fatalf("GenerateID() error = %v", err)
			}
			if len(id) != tt.wantLen {
				t.Errorf("GenerateID() length = %d, want %d", len(id), tt.wantLen)
			}
			for _, c := range id {
				if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
					t.Errorf("GenerateID() contains invalid hex char: %c", c)
				}
			}
		})
	}

	id1, _ := GenerateID(16)
	id2, _ := GenerateID(16)
	if id1 == id2 {
		t.Error("GenerateID() produced duplicate IDs (extremely unlikely)")
	}
}

func TestNewSessionID(t *testing.T) {
	id := NewSessionID()

	parsed, err := ParseSessionID(id)
	if err != nil {
		t.Fatalf("ParseSessionID(%q) error = %v", id, err)
	}
	if parsed != id {
		t.Errorf("ParseSessionID() = %q, want %q", parsed, id)
	}
	if NewSessionID() == id {
		t.Error("NewSessionID() produced duplicate IDs")
	}
}

func TestParseSessionID_Normalizes(t *testing.T) {
	upper := "6BA7B810-9DAD-11D1-80B4-00C04FD430C8"

	got, err := ParseSessionID(upper)
	if err != nil {
		t.Fatalf("ParseSessionID() error = %v", err)
	}
	if got != strings.ToLower(upper) {
		t.Errorf("ParseSessionID() = %q, want lower case", got)
	}
}

func TestParseSessionID_Invalid(t *testing.T) {
	for _, id := range []string{"", "abc", "../etc/passwd"} {
		_, err := ParseSessionID(id)
		if !errors.Is(err, ErrInvalidSessionID) {
			t.Errorf("ParseSessionID(%q) error = %v, want ErrInvalidSessionID", id, err)
		}
	}
}

func TestGenerateSessionKey(t *testing.T) {
	key := GenerateSessionKey("session-1", "salt")

	if key == "" {
		t.Fatal("GenerateSessionKey() returned empty string")
	}
	if key != GenerateSessionKey("session-1", "salt") {
		t.Error("GenerateSessionKey() is not deterministic")
	}
	if key == GenerateSessionKey("session-2", "salt") {
		t.Error("GenerateSessionKey() produced same key for different sessions")
	}
	if key == GenerateSessionKey("session-1", "other") {
		t.Error("GenerateSessionKey() produced same key for different salts")
	}
	if strings.ContainsAny(key, "+/=") {
		t.Errorf("GenerateSessionKey() should be URL-safe without padding, got %s", key)
	}
}

func TestValidateSessionKey(t *testing.T) {
	salt := "test-salt"
	sessionID := "session-123"
	validKey := GenerateSessionKey(sessionID, salt)

	tests := []struct {
		name      string
		sessionID string
		key       string
		wantErr   error
	}{
		{"valid key", sessionID, validKey, nil},
		{"wrong key", sessionID, "wrong-key", ErrInvalidSessionKey},
		{"empty key", sessionID, "", ErrInvalidSessionKey},
		{"key for other session", "session-456", validKey, ErrInvalidSessionKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSessionKey(tt.sessionID, tt.key, salt)
			if err != tt.wantErr {
				t.Errorf("ValidateSessionKey() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestHashIP(t *testing.T) {
	hash := HashIP("192.168.1.1", "salt")

	if len(hash) != 16 {
		t.Errorf("HashIP() length = %d, want 16", len(hash))
	}
	if hash != HashIP("192.168.1.1", "salt") {
		t.Error("HashIP() is not deterministic")
	}
	if hash == HashIP("192.168.1.2", "salt") {
		t.Error("HashIP() produced same hash for different IPs")
	}
	if hash == HashIP("192.168.1.1", "other-salt") {
		t.Error("HashIP() produced same hash for different salts")
	}
}
