// Copyright (c) 2025 EcoConnect.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the EcoConnect API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg, ledger, registry, engine)

# Endpoints

Health:

	GET /health

Accounts and sessions:

	POST /auth/register               - Create account (issues an address)
	POST /auth/login                  - Issue a 24h session token
	GET  /auth/me                     - Session introspection
	GET  /accounts/{address}/balance  - Point balance

Claims (session required to submit/list):

	POST /claims         - Submit a collection claim
	GET  /claims/mine    - Session principal's claim history
	GET  /claims/{id}    - One claim by ID

Verification (agent session required):

	GET  /verification/pending  - Pending queue, oldest first
	POST /claims/{id}/verify    - Settle verified, award points
	POST /claims/{id}/reject    - Settle rejected with a reason

Dashboard (public projections):

	GET /dashboard/recent  - Recently verified claims
	GET /dashboard/stats   - Aggregate totals (?agent= or ?submitter=)
	GET /dashboard/report  - Plain-text agent report (agent session)

# Handler Initialization

The router creates handler instances with dependency injection; all
handlers receive the configuration, and each takes only the collaborators
it uses (store, registry, engine).
*/
package router
