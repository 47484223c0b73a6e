// Copyright (c) 2025 EcoConnect.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package engine implements the verification state machine.

# Verify

Verify(agent, claimID) runs the settlement pipeline:

 1. Load the claim (ErrNotFound if absent)
 2. Guard on pending state (ErrInvalidState - a second verify on a settled
    claim is an error, not a no-op, so the caller learns their action had
    no further effect)
 3. Authorize the agent via the registry (ErrUnauthorized; an outage is
    ErrAuthorizationUnavailable, which blocks instead of denying)
 4. Compute the reward
 5. Settle the claim (linearizable per claim in the ledger)
 6. Credit the submitter's balance

Steps 1-4 mutate nothing; a failure there is all-or-nothing. Step 6 runs
after the settlement committed, so it is the one partial-failure window in
the design. The ledger records the credit as a durable outbox row inside
the settlement transaction; if the immediate credit fails, the reconciler
(RunReconciler) retries it with exponential backoff until it lands.

Reject follows the same pipeline without the reward or the credit.

# Events

Settlements are announced to subscribers registered with Subscribe, which
returns an explicit unsubscribe function. Delivery is at-least-once: a
reconciled credit re-announces its claim, so consumers must be idempotent
on (ClaimID, State).
*/
package engine
