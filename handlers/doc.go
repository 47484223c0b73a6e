// Copyright (c) 2025 EcoConnect.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the EcoConnect API.

# Handler Types

Each handler is a struct with its dependencies injected via constructor:

  - AccountHandler: Registration, login, session introspection, balances
  - ClaimHandler: Claim submission and retrieval
  - VerificationHandler: Pending queue, verify, reject
  - DashboardHandler: Recent activity, aggregate stats, agent report

# Claim Lifecycle

Claims progress through exactly one transition: pending → verified|rejected

	POST /claims              → Submit (session principal is the submitter)
	GET  /claims/{id}         → Get
	GET  /claims/mine         → Mine
	GET  /verification/pending → Pending (agents only)
	POST /claims/{id}/verify  → Verify (engine settles + credits points)
	POST /claims/{id}/reject  → Reject (reason required, no points)

Authenticated operations carry an Authorization: Bearer session token from
POST /auth/login. Handlers establish who is asking; the verification engine
re-checks agent authorization before any mutation.

# Error Mapping

Domain failures pass through middleware.DomainErrorResponse, so a stale
verify returns 409, an unknown claim 404, a non-agent 403, and a registry
or ledger outage 503 - each distinguishable by the caller.
*/
package handlers
