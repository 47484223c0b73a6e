// Copyright (c) 2025 EcoConnect.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"database/sql"
	"fmt"

	"context"

	"github.com/ecoconnect/server/models"
)

// StatsFilter narrows aggregate stats to one agent or one submitter.
// Zero value means no filter.
type StatsFilter struct {
	Agent     string
	Submitter string
}

// Stats folds over verified claims and returns dashboard totals. A snapshot
// read: concurrent settlements may or may not be reflected.
func (l *Ledger) Stats(ctx context.Context, filter StatsFilter) (models.AggregateStats, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(weight_kg), 0), COALESCE(SUM(points_awarded), 0)
		FROM collection_claim
		WHERE state = $1`
	args := []interface{}{models.StateVerified}

	if filter.Agent != "" {
		query += ` AND verified_by = $2`
		args = append(args, filter.Agent)
	} else if filter.Submitter != "" {
		query += ` AND submitter = $2`
		args = append(args, filter.Submitter)
	}

	var stats models.AggregateStats
	err := l.db.QueryRowContext(ctx, query, args...).Scan(
		&stats.TotalVerified, &stats.TotalWasteKg, &stats.TotalPointsAwarded,
	)
	if err != nil {
		return models.AggregateStats{}, fmt.Errorf("%w: %v", models.ErrLedgerUnavailable, err)
	}

	return stats, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanClaim(row rowScanner) (models.CollectionClaim, error) {
	var claim models.CollectionClaim
	var verifiedBy, rejectReason sql.NullString
	var pointsAwarded sql.NullInt64
	var verifiedAt sql.NullTime

	err := row.Scan(
		&claim.ID, &claim.Submitter, &claim.Category, &claim.WeightKg, &claim.State,
		&verifiedBy, &pointsAwarded, &rejectReason, &claim.SubmittedAt, &verifiedAt,
	)
	if err != nil {
		return models.CollectionClaim{}, err
	}

	if verifiedBy.Valid {
		claim.VerifiedBy = &verifiedBy.String
	}
	if pointsAwarded.Valid {
		claim.PointsAwarded = &pointsAwarded.Int64
	}
	if rejectReason.Valid {
		claim.RejectReason = &rejectReason.String
	}
	if verifiedAt.Valid {
		claim.VerifiedAt = &verifiedAt.Time
	}

	return claim, nil
}

func collectClaims(rows *sql.Rows) ([]models.CollectionClaim, error) {
	claims := []models.CollectionClaim{}
	for rows.Next() {
		claim, err := scanClaim(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrLedgerUnavailable, err)
		}
		claims = append(claims, claim)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrLedgerUnavailable, err)
	}
	return claims, nil
}
