// Copyright (c) 2025 EcoConnect.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ecoconnect/server/models"
)

// CreditPoints adds points to a principal's balance as a single upsert
// increment. Additive and commutative: concurrent credits to the same
// principal from different claims never lose an update.
func (l *Ledger) CreditPoints(ctx context.Context, principal string, points int64) error {
	if points < 0 {
		return fmt.Errorf("%w: credit must be non-negative, got %d", models.ErrInvalidInput, points)
	}

	_, err := l.db.ExecContext(ctx, `
		INSERT INTO point_balance (address, balance)
		VALUES ($1, $2)
		ON CONFLICT (address) DO UPDATE SET balance = balance + excluded.balance
	`, principal, points)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrLedgerUnavailable, err)
	}

	return nil
}

// GetBalance returns the principal's point balance. Principals with no
// balance row have a zero balance, not an error.
func (l *Ledger) GetBalance(ctx context.Context, principal string) (int64, error) {
	var balance int64
	err := l.db.QueryRowContext(ctx, `
		SELECT balance FROM point_balance WHERE address = $1
	`, principal).Scan(&balance)

	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %v", models.ErrLedgerUnavailable, err)
	}

	return balance, nil
}

// ApplyCredit completes an outbox obligation: the balance increment and the
// outbox completion mark commit together. Idempotent on the credit ID - a
// credit already marked complete is not applied again.
func (l *Ledger) ApplyCredit(ctx context.Context, creditID string) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrLedgerUnavailable, err)
	}
	defer tx.Rollback()

	var recipient string
	var points int64
	var completedAt sql.NullTime
	err = tx.QueryRowContext(ctx, `
		SELECT recipient, points, completed_at FROM pending_credit WHERE id = $1
	`, creditID).Scan(&recipient, &points, &completedAt)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: credit %s", models.ErrNotFound, creditID)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrLedgerUnavailable, err)
	}
	if completedAt.Valid {
		return nil
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO point_balance (address, balance)
		VALUES ($1, $2)
		ON CONFLICT (address) DO UPDATE SET balance = balance + excluded.balance
	`, recipient, points)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrLedgerUnavailable, err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE pending_credit
		SET attempts = attempts + 1, completed_at = $1
		WHERE id = $2
	`, time.Now().UTC(), creditID)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrLedgerUnavailable, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", models.ErrLedgerUnavailable, err)
	}

	return nil
}

// RecordCreditFailure bumps the attempt counter of an unfinished credit so
// operators can see how long an obligation has been retrying.
func (l *Ledger) RecordCreditFailure(ctx context.Context, creditID string) error {
	_, err := l.db.ExecContext(ctx, `
		UPDATE pending_credit
		SET attempts = attempts + 1
		WHERE id = $1 AND completed_at IS NULL
	`, creditID)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrLedgerUnavailable, err)
	}
	return nil
}

// ListUnappliedCredits returns outstanding credit obligations, oldest first,
// for the reconciler to retry.
func (l *Ledger) ListUnappliedCredits(ctx context.Context, limit int) ([]models.PendingCredit, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT id, claim_id, recipient, points, attempts, created_at, completed_at
		FROM pending_credit
		WHERE completed_at IS NULL
		ORDER BY created_at ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrLedgerUnavailable, err)
	}
	defer rows.Close()

	credits := []models.PendingCredit{}
	for rows.Next() {
		var credit models.PendingCredit
		var completedAt sql.NullTime
		if err := rows.Scan(&credit.ID, &credit.ClaimID, &credit.Recipient, &credit.Points,
			&credit.Attempts, &credit.CreatedAt, &completedAt); err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrLedgerUnavailable, err)
		}
		if completedAt.Valid {
			credit.CompletedAt = &completedAt.Time
		}
		credits = append(credits, credit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrLedgerUnavailable, err)
	}

	return credits, nil
}
