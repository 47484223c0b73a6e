// Copyright (c) 2025 EcoConnect.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ledger is the durable store behind the verification workflow.

Two logical ledgers live here. The collection_claim table is the
authoritative, append-only claim history; the point_balance table is the
authoritative point total per principal. The balance is written only
through CreditPoints/ApplyCredit, which are single atomic increments - the
verification engine is the sole caller, so "engine is the only writer" is
enforced by interface rather than convention.

# Settlement

Settle is the one operation that needs exclusivity. It runs a conditional

	UPDATE ... WHERE id = $1 AND state = 'pending'

inside a transaction and treats zero affected rows as a lost race
(ErrInvalidState). Linearizable per claim; different claims never contend.

# Credit outbox

A verified settlement inserts a pending_credit row in the same transaction
as the state transition. The balance credit is then applied (ApplyCredit)
as a separate step; if the process dies in between, the obligation is
durable and the engine's reconciler retries it until it lands. Obligations
are logged on every retry and never discarded.
*/
package ledger
