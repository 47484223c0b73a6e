// Copyright (c) 2025 EcoConnect.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ecoconnect/server/ledger"
	"github.com/ecoconnect/server/models"
	"github.com/ecoconnect/server/testutil"
)

func TestSubmitClaim(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()
	cfg := testutil.GetTestConfig()
	h := NewClaimHandler(cfg, ledger.New(db))

	user := testutil.CreateTestAccount(t, db, "Submitter", models.RoleUser)
	token := testutil.SessionFor(t, cfg, user, models.RoleUser)

	req := testutil.MakeRequest("POST", "/claims", models.SubmitClaimRequest{
		Category: models.CategoryPlastic,
		WeightKg: 5,
	}, map[string]string{"Authorization": "Bearer " + token})
	w := httptest.NewRecorder()
	h.Submit(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)

	var claim models.CollectionClaim
	testutil.AssertJSON(t, w, &claim)
	if claim.Submitter != user {
		t.Errorf("expected submitter to be the session principal %s, got %s", user, claim.Submitter)
	}
	if claim.State != models.StatePending {
		t.Errorf("expected pending state, got %s", claim.State)
	}
}

func TestSubmitClaimRequiresSession(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()
	cfg := testutil.GetTestConfig()
	h := NewClaimHandler(cfg, ledger.New(db))

	req := testutil.MakeRequest("POST", "/claims", models.SubmitClaimRequest{
		Category: models.CategoryPlastic,
		WeightKg: 5,
	}, nil)
	w := httptest.NewRecorder()
	h.Submit(w, req)
	testutil.AssertStatus(t, w, http.StatusUnauthorized)
}

func TestSubmitClaimInvalidInput(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()
	cfg := testutil.GetTestConfig()
	h := NewClaimHandler(cfg, ledger.New(db))

	user := testutil.CreateTestAccount(t, db, "BadSubmitter", models.RoleUser)
	token := testutil.SessionFor(t, cfg, user, models.RoleUser)
	headers := map[string]string{"Authorization": "Bearer " + token}

	cases := []models.SubmitClaimRequest{
		{Category: "glass", WeightKg: 5},
		{Category: models.CategoryPlastic, WeightKg: 0},
		{Category: models.CategoryPlastic, WeightKg: -1},
	}

	for _, body := range cases {
		w := httptest.NewRecorder()
		h.Submit(w, testutil.MakeRequest("POST", "/claims", body, headers))
		if w.Code != http.StatusBadRequest {
			t.Errorf("%+v: expected 400, got %d", body, w.Code)
		}
	}
}

func TestGetClaim(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()
	cfg := testutil.GetTestConfig()
	h := NewClaimHandler(cfg, ledger.New(db))

	user := testutil.CreateTestAccount(t, db, "Owner", models.RoleUser)
	id := testutil.CreateTestClaim(t, db, user, models.CategoryMetal, 3)

	req := testutil.MakeRequest("GET", "/claims/"+id, nil, nil)
	req.SetPathValue("id", id)
	w := httptest.NewRecorder()
	h.Get(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var claim models.CollectionClaim
	testutil.AssertJSON(t, w, &claim)
	if claim.ID != id {
		t.Errorf("expected claim %s, got %s", id, claim.ID)
	}
}

func TestGetClaimNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()
	cfg := testutil.GetTestConfig()
	h := NewClaimHandler(cfg, ledger.New(db))

	req := testutil.MakeRequest("GET", "/claims/no-such-claim", nil, nil)
	req.SetPathValue("id", "no-such-claim")
	w := httptest.NewRecorder()
	h.Get(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestMineListsOnlyOwnClaims(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()
	cfg := testutil.GetTestConfig()
	h := NewClaimHandler(cfg, ledger.New(db))

	alice := testutil.CreateTestAccount(t, db, "MineAlice", models.RoleUser)
	bob := testutil.CreateTestAccount(t, db, "MineBob", models.RoleUser)
	testutil.CreateTestClaim(t, db, alice, models.CategoryPlastic, 1)
	testutil.CreateTestClaim(t, db, alice, models.CategoryPaper, 2)
	testutil.CreateTestClaim(t, db, bob, models.CategoryMetal, 3)

	token := testutil.SessionFor(t, cfg, alice, models.RoleUser)
	req := testutil.MakeRequest("GET", "/claims/mine", nil, map[string]string{
		"Authorization": "Bearer " + token,
	})
	w := httptest.NewRecorder()
	h.Mine(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ClaimListResponse
	testutil.AssertJSON(t, w, &resp)
	if len(resp.Claims) != 2 {
		t.Fatalf("expected 2 claims, got %d", len(resp.Claims))
	}
	for _, claim := range resp.Claims {
		if claim.Submitter != alice {
			t.Errorf("expected only alice's claims, got submitter %s", claim.Submitter)
		}
	}
}
