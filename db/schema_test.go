// Copyright (c) 2025 EcoConnect.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db_test

import (
	"testing"

	"github.com/ecoconnect/server/models"
	"github.com/ecoconnect/server/testutil"
)

func TestCreateSchemaIsIdempotent(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	// SetupTestDB already ran CreateSchema; all tables should exist
	for _, table := range []string{"account", "point_balance", "collection_claim", "pending_credit"} {
		var count int
		if err := conn.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&count); err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}

func TestClaimConstraints(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	user := testutil.CreateTestAccount(t, conn, "ConstraintUser", models.RoleUser)

	// Non-positive weight is rejected at the schema level too
	_, err := conn.Exec(`
		INSERT INTO collection_claim (id, submitter, category, weight_kg, state, submitted_at)
		VALUES ('c1', $1, 'plastic', 0, 'pending', CURRENT_TIMESTAMP)
	`, user)
	if err == nil {
		t.Error("expected CHECK violation for zero weight")
	}

	// Unknown state is rejected
	_, err = conn.Exec(`
		INSERT INTO collection_claim (id, submitter, category, weight_kg, state, submitted_at)
		VALUES ('c2', $1, 'plastic', 1, 'limbo', CURRENT_TIMESTAMP)
	`, user)
	if err == nil {
		t.Error("expected CHECK violation for unknown state")
	}
}

func TestBalanceNeverNegative(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	_, err := conn.Exec(`INSERT INTO point_balance (address, balance) VALUES ('0xabc', -10)`)
	if err == nil {
		t.Error("expected CHECK violation for negative balance")
	}
}

func TestPendingCreditOnePerClaim(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	user := testutil.CreateTestAccount(t, conn, "CreditUser", models.RoleUser)
	claim := testutil.CreateTestClaim(t, conn, user, models.CategoryPaper, 1)

	_, err := conn.Exec(`
		INSERT INTO pending_credit (id, claim_id, recipient, points, attempts, created_at)
		VALUES ('pc1', $1, $2, 5, 0, CURRENT_TIMESTAMP)
	`, claim, user)
	if err != nil {
		t.Fatal(err)
	}

	// A second obligation for the same claim violates the unique constraint
	_, err = conn.Exec(`
		INSERT INTO pending_credit (id, claim_id, recipient, points, attempts, created_at)
		VALUES ('pc2', $1, $2, 5, 0, CURRENT_TIMESTAMP)
	`, claim, user)
	if err == nil {
		t.Error("expected unique violation for a second credit on one claim")
	}
}
