// Copyright (c) 2025 EcoConnect.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Portable across SQLite and PostgreSQL: no server-side functions beyond
// CURRENT_TIMESTAMP, timestamps always written by the application.
const schema = `
-- Accounts (identity/auth records; role drives agent authorization)
CREATE TABLE IF NOT EXISTS account (
    address TEXT PRIMARY KEY,
    username TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    role TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('user', 'agent')),
    total_waste_reported REAL NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_account_email ON account(email);

-- Point balances (separate ledger; written only through atomic increments)
CREATE TABLE IF NOT EXISTS point_balance (
    address TEXT PRIMARY KEY,
    balance INTEGER NOT NULL DEFAULT 0 CHECK (balance >= 0)
);

-- Collection claims (append-only history; never deleted)
CREATE TABLE IF NOT EXISTS collection_claim (
    id TEXT PRIMARY KEY,
    submitter TEXT NOT NULL,
    category TEXT NOT NULL CHECK (category IN ('plastic', 'metal', 'paper', 'other')),
    weight_kg REAL NOT NULL CHECK (weight_kg > 0),
    state TEXT NOT NULL DEFAULT 'pending' CHECK (state IN ('pending', 'verified', 'rejected')),
    verified_by TEXT,
    points_awarded INTEGER CHECK (points_awarded >= 0),
    reject_reason TEXT,
    submitted_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    verified_at TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_claim_state ON collection_claim(state);
CREATE INDEX IF NOT EXISTS idx_claim_submitter ON collection_claim(submitter);
CREATE INDEX IF NOT EXISTS idx_claim_verified_by ON collection_claim(verified_by);

-- Credit outbox (durable obligations from verified settlement to balance credit)
CREATE TABLE IF NOT EXISTS pending_credit (
    id TEXT PRIMARY KEY,
    claim_id TEXT NOT NULL UNIQUE REFERENCES collection_claim(id),
    recipient TEXT NOT NULL,
    points INTEGER NOT NULL CHECK (points >= 0),
    attempts INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    completed_at TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_pending_credit_open ON pending_credit(completed_at);
`
