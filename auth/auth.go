// Copyright (c) 2025 EcoConnect.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidToken       = errors.New("invalid session token")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// SessionTTL is how long an issued session token stays valid.
const SessionTTL = 24 * time.Hour

// GenerateID creates a random hex ID of the specified byte length.
// Claim IDs use 16 bytes so they cannot be guessed or enumerated.
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateAddress creates a random wallet-style address (0x + 20 bytes hex)
// for accounts registered without an external wallet.
func GenerateAddress() (string, error) {
	b := make([]byte, 20)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate address: %w", err)
	}
	return "0x" + hex.EncodeToString(b), nil
}

// HashPassword creates a bcrypt hash of the password for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compares a password against its stored bcrypt hash.
func CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// Session is the authenticated principal carried by a session token.
type Session struct {
	Address string
	Role    string
}

type sessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// IssueSessionToken creates a signed 24h session token for the principal.
func IssueSessionToken(address, role, secret string, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(SessionTTL)
	claims := sessionClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   address,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, expiresAt, nil
}

// ParseSessionToken validates a session token and returns the principal.
// Expired, malformed, or wrongly-signed tokens all return ErrInvalidToken.
func ParseSessionToken(tokenString, secret string) (Session, error) {
	var claims sessionClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return Session{}, ErrInvalidToken
	}
	if claims.Subject == "" {
		return Session{}, ErrInvalidToken
	}

	return Session{Address: claims.Subject, Role: claims.Role}, nil
}
