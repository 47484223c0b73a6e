// Copyright (c) 2025 EcoConnect.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "errors"

// Domain error taxonomy. Every failure surfaced by the core wraps one of
// these sentinels so callers can tell "fix your input" (ErrInvalidInput)
// from "this is final" (ErrInvalidState, ErrUnauthorized) from "try again
// later" (ErrAuthorizationUnavailable, ErrLedgerUnavailable).
var (
	// ErrInvalidInput marks a malformed submission (bad category, non-positive
	// weight). Caller error; not retried.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound marks an unknown claim or account identifier.
	ErrNotFound = errors.New("not found")

	// ErrInvalidState marks a settlement attempt on a claim that is no longer
	// pending. The caller's view was stale; refresh, don't retry.
	ErrInvalidState = errors.New("claim not in pending state")

	// ErrUnauthorized marks a caller without the agent role.
	ErrUnauthorized = errors.New("principal is not an authorized agent")

	// ErrAuthorizationUnavailable marks an authorization-store outage. It is
	// never conflated with ErrUnauthorized: an unreachable registry blocks the
	// action instead of denying the agent.
	ErrAuthorizationUnavailable = errors.New("authorization store unavailable")

	// ErrLedgerUnavailable marks a claim or balance store outage. Safe to
	// retry with backoff.
	ErrLedgerUnavailable = errors.New("ledger unavailable")
)
