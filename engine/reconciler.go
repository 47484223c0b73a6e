// Copyright (c) 2025 EcoConnect.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/ecoconnect/server/models"
)

const reconcilerBatchSize = 100

// RunReconciler retries unfinished credit obligations until ctx is
// cancelled. Each sweep lists open outbox rows and applies them with
// exponential backoff; an obligation that keeps failing is logged and
// picked up again on the next sweep - never discarded.
func (e *Engine) RunReconciler(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.reconcileOnce(ctx)
		}
	}
}

func (e *Engine) reconcileOnce(ctx context.Context) {
	credits, err := e.ledger.ListUnappliedCredits(ctx, reconcilerBatchSize)
	if err != nil {
		slog.Error("reconciler failed to list pending credits", "error", err)
		return
	}

	for _, credit := range credits {
		bo := backoff.NewExponentialBackOff()
		bo.InitialInterval = 100 * time.Millisecond
		bo.MaxElapsedTime = 5 * time.Second

		apply := func() error {
			return e.ledger.ApplyCredit(ctx, credit.ID)
		}

		if err := backoff.Retry(apply, backoff.WithContext(bo, ctx)); err != nil {
			if recErr := e.ledger.RecordCreditFailure(ctx, credit.ID); recErr != nil {
				slog.Error("failed to record credit failure", "credit_id", credit.ID, "error", recErr)
			}
			slog.Warn("credit still pending after retries",
				"credit_id", credit.ID,
				"claim_id", credit.ClaimID,
				"recipient", credit.Recipient,
				"points", credit.Points,
				"attempts", credit.Attempts+1,
				"error", err,
			)
			continue
		}

		slog.Info("reconciled pending credit",
			"credit_id", credit.ID,
			"claim_id", credit.ClaimID,
			"recipient", credit.Recipient,
			"points", credit.Points,
		)

		e.subs.publish(Event{
			ClaimID:   credit.ClaimID,
			State:     models.StateVerified,
			Submitter: credit.Recipient,
			Points:    credit.Points,
		})
	}
}
