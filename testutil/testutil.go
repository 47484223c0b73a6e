// Copyright (c) 2025 EcoConnect.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ecoconnect/server/auth"
	"github.com/ecoconnect/server/cliparse"
	"github.com/ecoconnect/server/db"
	"github.com/ecoconnect/server/models"
)

// SetupTestDB creates a fresh in-memory SQLite database with the full
// schema. Each call gets its own database; the single pooled connection
// keeps the in-memory store alive for the test's lifetime.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	name, err := auth.GenerateID(8)
	if err != nil {
		t.Fatalf("Failed to generate test database name: %v", err)
	}

	conn, err := sql.Open("sqlite", "file:"+name+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          4000,
		DatabaseURL:   "file::memory:",
		DatabaseType:  "sqlite",
		SessionSecret: "test-session-secret",
		AgentAddress:  cliparse.DefaultAgentAddress,
	}
}

// CreateTestAccount inserts an account and returns its address.
// role should be "user" or "agent". The password is always "password123".
func CreateTestAccount(t *testing.T, dbConn *sql.DB, username, role string) string {
	t.Helper()

	address, err := auth.GenerateAddress()
	if err != nil {
		t.Fatalf("Failed to generate address: %v", err)
	}

	hash, err := auth.HashPassword("password123")
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	_, err = dbConn.Exec(`
		INSERT INTO account (address, username, email, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, address, username, username+"@example.com", hash, role, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test account: %v", err)
	}

	return address
}

// SessionFor issues a session token for the principal.
func SessionFor(t *testing.T, cfg cliparse.Config, address, role string) string {
	t.Helper()

	token, _, err := auth.IssueSessionToken(address, role, cfg.SessionSecret, time.Now())
	if err != nil {
		t.Fatalf("Failed to issue session token: %v", err)
	}

	return token
}

// CreateTestClaim inserts a pending claim and returns its ID.
func CreateTestClaim(t *testing.T, dbConn *sql.DB, submitter, category string, weightKg float64) string {
	t.Helper()

	id, err := auth.GenerateID(16)
	if err != nil {
		t.Fatalf("Failed to generate claim ID: %v", err)
	}

	_, err = dbConn.Exec(`
		INSERT INTO collection_claim (id, submitter, category, weight_kg, state, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, id, submitter, category, weightKg, models.StatePending, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test claim: %v", err)
	}

	return id
}

// CreateVerifiedClaim inserts an already-verified claim with an explicit
// verification time, for dashboard ordering tests.
func CreateVerifiedClaim(t *testing.T, dbConn *sql.DB, submitter, agent, category string, weightKg float64, points int64, verifiedAt time.Time) string {
	t.Helper()

	id, err := auth.GenerateID(16)
	if err != nil {
		t.Fatalf("Failed to generate claim ID: %v", err)
	}

	_, err = dbConn.Exec(`
		INSERT INTO collection_claim (id, submitter, category, weight_kg, state, verified_by, points_awarded, submitted_at, verified_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, id, submitter, category, weightKg, models.StateVerified, agent, points, verifiedAt.Add(-time.Hour), verifiedAt)
	if err != nil {
		t.Fatalf("Failed to create verified claim: %v", err)
	}

	return id
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
