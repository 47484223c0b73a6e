// Copyright (c) 2025 EcoConnect.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the EcoConnect API server.

EcoConnect connects waste collectors ("users") and verifying field agents:
users submit collection claims, agents verify or reject them, and verified
claims award points to the collector's balance.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=file:ecoconnect.db SESSION_SECRET=... go run main.go

Or with flags:

	go run main.go -p 4000 -d "postgres://..." -t postgres

# Configuration

Required settings:

  - DATABASE_URL (-d): Database connection string
  - SESSION_SECRET (-session-secret): Secret for session token signing

Optional settings:

  - PORT (-p): Server port (default: 4000)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - AGENT_ADDRESS (-agent-address): Fallback agent address
  - REWARD_RATES_FILE (-rates): Reward rate table YAML file

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (accounts, claims, verification, dashboard)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers, session extraction
  - models: Domain types and the shared error taxonomy
  - auth: Identifiers, password hashing, session tokens
  - registry: Agent authorization (role flag OR fallback address)
  - ledger: Claim history, point balances, credit outbox
  - reward: Category-rate point calculator
  - engine: Verification state machine and credit reconciler
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
