// Copyright (c) 2025 EcoConnect.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ecoconnect/server/auth"
	"github.com/ecoconnect/server/models"
)

func TestJSONResponse(t *testing.T) {
	w := httptest.NewRecorder()
	JSONResponse(w, http.StatusCreated, map[string]string{"hello": "world"})

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %s", ct)
	}
	if !strings.Contains(w.Body.String(), `"hello":"world"`) {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestErrorResponse(t *testing.T) {
	w := httptest.NewRecorder()
	ErrorResponse(w, http.StatusNotFound, "claim missing")

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "claim missing") {
		t.Errorf("expected message in body, got %s", w.Body.String())
	}
}

func TestDomainErrorResponseMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("%w: bad weight", models.ErrInvalidInput), http.StatusBadRequest},
		{fmt.Errorf("%w: not an agent", models.ErrUnauthorized), http.StatusForbidden},
		{fmt.Errorf("%w: claim x", models.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: claim x is verified", models.ErrInvalidState), http.StatusConflict},
		{fmt.Errorf("%w: timeout", models.ErrAuthorizationUnavailable), http.StatusServiceUnavailable},
		{fmt.Errorf("%w: connection refused", models.ErrLedgerUnavailable), http.StatusServiceUnavailable},
		{errors.New("something else entirely"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		DomainErrorResponse(w, tc.err)
		if w.Code != tc.status {
			t.Errorf("%v: expected %d, got %d", tc.err, tc.status, w.Code)
		}
	}
}

func TestSessionFromRequest(t *testing.T) {
	token, _, err := auth.IssueSessionToken("0xabc", models.RoleAgent, "secret", time.Now())
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("GET", "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	session, err := SessionFromRequest(req, "secret")
	if err != nil {
		t.Fatal(err)
	}
	if session.Address != "0xabc" || session.Role != models.RoleAgent {
		t.Errorf("unexpected session: %+v", session)
	}

	// Missing header
	req = httptest.NewRequest("GET", "/auth/me", nil)
	if _, err := SessionFromRequest(req, "secret"); err != auth.ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken for missing header, got %v", err)
	}

	// Not a bearer token
	req = httptest.NewRequest("GET", "/auth/me", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	if _, err := SessionFromRequest(req, "secret"); err != auth.ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken for non-bearer auth, got %v", err)
	}
}

func TestCORS(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	handler := CORS(inner)

	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("expected origin echoed back, got %s", got)
	}
	if w.Code != http.StatusTeapot {
		t.Errorf("expected inner handler to run, got %d", w.Code)
	}

	// Preflight short-circuits
	req = httptest.NewRequest("OPTIONS", "/claims", nil)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 for preflight, got %d", w.Code)
	}
}

func TestWithLogging(t *testing.T) {
	called := false
	handler := WithLogging(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest("GET", "/health", nil))

	if !called {
		t.Error("expected wrapped handler to be called")
	}
	if w.Code != http.StatusNoContent {
		t.Errorf("expected status to pass through, got %d", w.Code)
	}
}
