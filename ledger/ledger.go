// Copyright (c) 2025 EcoConnect.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ecoconnect/server/auth"
	"github.com/ecoconnect/server/models"
)

// Ledger is the durable store of collection claims, point balances, and
// credit obligations. Claim history and point balances are two logical
// ledgers: the claim table is authoritative for history, the balance table
// for point totals.
type Ledger struct {
	db *sql.DB
}

// New creates a ledger over the given database.
func New(db *sql.DB) *Ledger {
	return &Ledger{db: db}
}

// Submit creates a new claim in pending state. Fails with ErrInvalidInput
// if the weight is not positive or the category is unrecognized.
func (l *Ledger) Submit(ctx context.Context, submitter, category string, weightKg float64) (models.CollectionClaim, error) {
	if submitter == "" {
		return models.CollectionClaim{}, fmt.Errorf("%w: submitter is required", models.ErrInvalidInput)
	}
	if !models.ValidCategory(category) {
		return models.CollectionClaim{}, fmt.Errorf("%w: unknown category %q", models.ErrInvalidInput, category)
	}
	if weightKg <= 0 {
		return models.CollectionClaim{}, fmt.Errorf("%w: weight must be positive, got %v", models.ErrInvalidInput, weightKg)
	}

	id, err := auth.GenerateID(16)
	if err != nil {
		return models.CollectionClaim{}, fmt.Errorf("failed to generate claim ID: %w", err)
	}

	now := time.Now().UTC()

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return models.CollectionClaim{}, fmt.Errorf("%w: %v", models.ErrLedgerUnavailable, err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO collection_claim (id, submitter, category, weight_kg, state, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, id, submitter, category, weightKg, models.StatePending, now)
	if err != nil {
		return models.CollectionClaim{}, fmt.Errorf("%w: %v", models.ErrLedgerUnavailable, err)
	}

	// Track the submitter's reported total if they have an account record.
	// Wallet-only principals have no row; that's fine.
	_, err = tx.ExecContext(ctx, `
		UPDATE account SET total_waste_reported = total_waste_reported + $1 WHERE address = $2
	`, weightKg, submitter)
	if err != nil {
		return models.CollectionClaim{}, fmt.Errorf("%w: %v", models.ErrLedgerUnavailable, err)
	}

	if err := tx.Commit(); err != nil {
		return models.CollectionClaim{}, fmt.Errorf("%w: %v", models.ErrLedgerUnavailable, err)
	}

	return models.CollectionClaim{
		ID:          id,
		Submitter:   submitter,
		Category:    category,
		WeightKg:    weightKg,
		State:       models.StatePending,
		SubmittedAt: now,
	}, nil
}

// Get returns the claim with the given ID, or ErrNotFound.
func (l *Ledger) Get(ctx context.Context, id string) (models.CollectionClaim, error) {
	row := l.db.QueryRowContext(ctx, `
		SELECT id, submitter, category, weight_kg, state,
		       verified_by, points_awarded, reject_reason, submitted_at, verified_at
		FROM collection_claim
		WHERE id = $1
	`, id)

	claim, err := scanClaim(row)
	if err == sql.ErrNoRows {
		return models.CollectionClaim{}, fmt.Errorf("%w: claim %s", models.ErrNotFound, id)
	}
	if err != nil {
		return models.CollectionClaim{}, fmt.Errorf("%w: %v", models.ErrLedgerUnavailable, err)
	}

	return claim, nil
}

// ListPending returns all pending claims, oldest first. First-come-first-
// served fairness for agents working the queue.
func (l *Ledger) ListPending(ctx context.Context) ([]models.CollectionClaim, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT id, submitter, category, weight_kg, state,
		       verified_by, points_awarded, reject_reason, submitted_at, verified_at
		FROM collection_claim
		WHERE state = $1
		ORDER BY submitted_at ASC, id ASC
	`, models.StatePending)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrLedgerUnavailable, err)
	}
	defer rows.Close()

	return collectClaims(rows)
}

// ListRecentVerified returns up to limit verified claims, newest first.
func (l *Ledger) ListRecentVerified(ctx context.Context, limit int) ([]models.CollectionClaim, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT id, submitter, category, weight_kg, state,
		       verified_by, points_awarded, reject_reason, submitted_at, verified_at
		FROM collection_claim
		WHERE state = $1
		ORDER BY verified_at DESC, id DESC
		LIMIT $2
	`, models.StateVerified, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrLedgerUnavailable, err)
	}
	defer rows.Close()

	return collectClaims(rows)
}

// ListBySubmitter returns all claims from one submitter, newest first.
func (l *Ledger) ListBySubmitter(ctx context.Context, submitter string) ([]models.CollectionClaim, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT id, submitter, category, weight_kg, state,
		       verified_by, points_awarded, reject_reason, submitted_at, verified_at
		FROM collection_claim
		WHERE submitter = $1
		ORDER BY submitted_at DESC, id DESC
	`, submitter)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrLedgerUnavailable, err)
	}
	defer rows.Close()

	return collectClaims(rows)
}

// Settle atomically transitions a pending claim to verified (with points)
// or rejected (with a reason). The transition is guarded by a conditional
// UPDATE on state='pending': under concurrent settlement attempts on the
// same claim, exactly one succeeds and the rest observe ErrInvalidState.
// A verified settlement records the point credit as a pending_credit row in
// the same transaction, so the obligation survives a crash between
// settlement and balance credit.
func (l *Ledger) Settle(ctx context.Context, id, verifier, outcome string, points int64, reason string) (models.CollectionClaim, models.PendingCredit, error) {
	if outcome != models.StateVerified && outcome != models.StateRejected {
		return models.CollectionClaim{}, models.PendingCredit{}, fmt.Errorf("%w: invalid settlement outcome %q", models.ErrInvalidInput, outcome)
	}

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return models.CollectionClaim{}, models.PendingCredit{}, fmt.Errorf("%w: %v", models.ErrLedgerUnavailable, err)
	}
	defer tx.Rollback()

	var submitter, state string
	err = tx.QueryRowContext(ctx, `
		SELECT submitter, state FROM collection_claim WHERE id = $1
	`, id).Scan(&submitter, &state)
	if err == sql.ErrNoRows {
		return models.CollectionClaim{}, models.PendingCredit{}, fmt.Errorf("%w: claim %s", models.ErrNotFound, id)
	}
	if err != nil {
		return models.CollectionClaim{}, models.PendingCredit{}, fmt.Errorf("%w: %v", models.ErrLedgerUnavailable, err)
	}
	if state != models.StatePending {
		return models.CollectionClaim{}, models.PendingCredit{}, fmt.Errorf("%w: claim %s is %s", models.ErrInvalidState, id, state)
	}

	now := time.Now().UTC()

	var pointsValue interface{}
	var reasonValue interface{}
	if outcome == models.StateVerified {
		pointsValue = points
	} else {
		reasonValue = reason
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE collection_claim
		SET state = $1, verified_by = $2, points_awarded = $3, reject_reason = $4, verified_at = $5
		WHERE id = $6 AND state = $7
	`, outcome, verifier, pointsValue, reasonValue, now, id, models.StatePending)
	if err != nil {
		return models.CollectionClaim{}, models.PendingCredit{}, fmt.Errorf("%w: %v", models.ErrLedgerUnavailable, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return models.CollectionClaim{}, models.PendingCredit{}, fmt.Errorf("%w: %v", models.ErrLedgerUnavailable, err)
	}
	if affected == 0 {
		// Another settlement won the race between our read and write.
		return models.CollectionClaim{}, models.PendingCredit{}, fmt.Errorf("%w: claim %s", models.ErrInvalidState, id)
	}

	var credit models.PendingCredit
	if outcome == models.StateVerified {
		credit = models.PendingCredit{
			ID:        uuid.NewString(),
			ClaimID:   id,
			Recipient: submitter,
			Points:    points,
			CreatedAt: now,
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO pending_credit (id, claim_id, recipient, points, attempts, created_at)
			VALUES ($1, $2, $3, $4, 0, $5)
		`, credit.ID, credit.ClaimID, credit.Recipient, credit.Points, now)
		if err != nil {
			return models.CollectionClaim{}, models.PendingCredit{}, fmt.Errorf("%w: %v", models.ErrLedgerUnavailable, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return models.CollectionClaim{}, models.PendingCredit{}, fmt.Errorf("%w: %v", models.ErrLedgerUnavailable, err)
	}

	claim, err := l.Get(ctx, id)
	if err != nil {
		return models.CollectionClaim{}, models.PendingCredit{}, err
	}

	return claim, credit, nil
}
