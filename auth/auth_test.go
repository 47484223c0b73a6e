// Copyright (c) 2025 EcoConnect.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"strings"
	"testing"
	"time"
)

func TestGenerateID(t *testing.T) {
	id, err := GenerateID(16)
	if err != nil {
		t.Fatal(err)
	}

	if len(id) != 32 {
		t.Errorf("expected 32 hex chars, got %d", len(id))
	}

	// Two IDs should never collide
	other, err := GenerateID(16)
	if err != nil {
		t.Fatal(err)
	}
	if id == other {
		t.Error("expected distinct IDs")
	}
}

func TestGenerateAddress(t *testing.T) {
	addr, err := GenerateAddress()
	if err != nil {
		t.Fatal(err)
	}

	if !strings.HasPrefix(addr, "0x") {
		t.Errorf("expected 0x prefix, got %s", addr)
	}
	if len(addr) != 42 {
		t.Errorf("expected 42 chars (0x + 40 hex), got %d", len(addr))
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatal(err)
	}

	if err := CheckPassword(hash, "correct horse battery staple"); err != nil {
		t.Errorf("expected matching password to verify: %v", err)
	}

	if err := CheckPassword(hash, "wrong password"); err != ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSessionTokenRoundTrip(t *testing.T) {
	token, expiresAt, err := IssueSessionToken("0xabc123", "agent", "secret", time.Now())
	if err != nil {
		t.Fatal(err)
	}

	if time.Until(expiresAt) > SessionTTL || time.Until(expiresAt) < SessionTTL-time.Minute {
		t.Errorf("expected expiry about %v out, got %v", SessionTTL, time.Until(expiresAt))
	}

	session, err := ParseSessionToken(token, "secret")
	if err != nil {
		t.Fatal(err)
	}

	if session.Address != "0xabc123" {
		t.Errorf("expected address 0xabc123, got %s", session.Address)
	}
	if session.Role != "agent" {
		t.Errorf("expected role agent, got %s", session.Role)
	}
}

func TestSessionTokenWrongSecret(t *testing.T) {
	token, _, err := IssueSessionToken("0xabc123", "user", "secret", time.Now())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ParseSessionToken(token, "other-secret"); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestSessionTokenExpired(t *testing.T) {
	// Issued 25 hours ago, past the 24h TTL
	token, _, err := IssueSessionToken("0xabc123", "user", "secret", time.Now().Add(-25*time.Hour))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ParseSessionToken(token, "secret"); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestSessionTokenGarbage(t *testing.T) {
	if _, err := ParseSessionToken("not-a-token", "secret"); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}
