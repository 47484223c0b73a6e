// Copyright (c) 2025 EcoConnect.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ecoconnect/server/auth"
	"github.com/ecoconnect/server/models"
)

// WithLogging wraps a handler with request logging
func WithLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Log request
		slog.Info("request started",
			"method", r.Method,
			"path", r.URL.Path,
			"remote", r.RemoteAddr,
		)

		// Call the next handler
		next(w, r)

		// Log completion
		duration := time.Since(start)
		slog.Info("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", duration.Milliseconds(),
		)
	}
}

// JSONResponse writes a JSON response
func JSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// ErrorResponse writes a JSON error response
func ErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	JSONResponse(w, statusCode, models.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}

// DomainErrorResponse maps a domain error to its HTTP status and writes it.
// The status tells the caller whether to fix input (400), refresh a stale
// view (409), give up (403/404), or retry later (503).
func DomainErrorResponse(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrUnauthorized):
		ErrorResponse(w, http.StatusForbidden, err.Error())
	case errors.Is(err, models.ErrNotFound):
		ErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrInvalidState):
		ErrorResponse(w, http.StatusConflict, err.Error())
	case errors.Is(err, models.ErrAuthorizationUnavailable), errors.Is(err, models.ErrLedgerUnavailable):
		ErrorResponse(w, http.StatusServiceUnavailable, err.Error())
	default:
		slog.Error("unhandled domain error", "error", err)
		ErrorResponse(w, http.StatusInternalServerError, "Internal error")
	}
}

// ParseJSONBody parses the request body into the given struct
func ParseJSONBody(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return nil
}

// SessionFromRequest extracts and validates the bearer session token,
// returning the authenticated principal.
func SessionFromRequest(r *http.Request, secret string) (auth.Session, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return auth.Session{}, auth.ErrInvalidToken
	}

	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return auth.Session{}, auth.ErrInvalidToken
	}

	return auth.ParseSessionToken(token, secret)
}

// CORS middleware allows cross-origin requests from the frontend
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		// Handle preflight requests
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
