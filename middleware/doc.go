// Copyright (c) 2025 EcoConnect.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and response helpers.

# Request Logging

WithLogging wraps a handler with slog request/completion logging:

	mux.HandleFunc("POST /claims", middleware.WithLogging(handler.Submit))

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "weight_kg must be positive")
	middleware.DomainErrorResponse(w, err) // maps sentinel errors to statuses

DomainErrorResponse is the single place where the domain error taxonomy
becomes HTTP: invalid input 400, unauthorized 403, not found 404, stale
state 409, dependency outage 503. Anything unrecognized logs and returns
500.

# Sessions

SessionFromRequest validates the Authorization bearer token and returns
the authenticated principal:

	session, err := middleware.SessionFromRequest(r, cfg.SessionSecret)

# CORS

CORS wraps the whole mux to allow browser clients from other origins and
answer preflight requests.
*/
package middleware
