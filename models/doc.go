// Copyright (c) 2025 EcoConnect.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the domain types and shared error taxonomy for the
EcoConnect API.

# Claim Lifecycle

A CollectionClaim moves through exactly one transition:

	pending → verified   (points awarded, balance credited)
	pending → rejected   (reason recorded, no points)

Both terminal states are final. VerifiedBy and VerifiedAt are set exactly
once, at the transition out of pending; PointsAwarded is present iff the
claim is verified.

# Roles

Principals are opaque wallet-style addresses. Accounts carry a role of
"user" or "agent". Agent authorization is decided by the registry package,
which also honors the distinguished fallback agent address.

# Errors

The five sentinel errors in errors.go form the complete failure taxonomy
surfaced by the ledger, registry, and engine packages. Handlers map them to
HTTP status codes:

	ErrInvalidInput             → 400
	ErrUnauthorized             → 403
	ErrNotFound                 → 404
	ErrInvalidState             → 409
	ErrAuthorizationUnavailable → 503
	ErrLedgerUnavailable        → 503
*/
package models
