// Copyright (c) 2025 EcoConnect.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - account: Identity records with role flags ('user' or 'agent')
  - point_balance: Point totals per principal, one logical ledger apart
    from claim history
  - collection_claim: Claim records and their lifecycle state
  - pending_credit: Outbox of point credits owed after verified settlement

# Relationships

	collection_claim 1──1 pending_credit (verified claims only)
	account 1──1 point_balance (by address; balances may exist for
	             wallet-only principals with no account row)

Claims are append-only: rows are never deleted, and the state CHECK plus
the conditional settlement UPDATE in the ledger package enforce the
one-transition lifecycle.

# Indexes

  - account.email (unique)
  - collection_claim.state (pending-queue scans)
  - collection_claim.submitter, collection_claim.verified_by (dashboards)
  - pending_credit.completed_at (reconciler scans)
*/
package db
