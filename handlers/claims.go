// Copyright (c) 2025 EcoConnect.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/ecoconnect/server/cliparse"
	"github.com/ecoconnect/server/ledger"
	"github.com/ecoconnect/server/middleware"
	"github.com/ecoconnect/server/models"
)

type ClaimHandler struct {
	cfg    cliparse.Config
	ledger *ledger.Ledger
}

func NewClaimHandler(cfg cliparse.Config, l *ledger.Ledger) *ClaimHandler {
	return &ClaimHandler{cfg: cfg, ledger: l}
}

// Submit handles POST /claims
// The session principal becomes the claim's submitter.
func (h *ClaimHandler) Submit(w http.ResponseWriter, r *http.Request) {
	session, err := middleware.SessionFromRequest(r, h.cfg.SessionSecret)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Valid session required")
		return
	}

	var req models.SubmitClaimRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	claim, err := h.ledger.Submit(r.Context(), session.Address, req.Category, req.WeightKg)
	if err != nil {
		middleware.DomainErrorResponse(w, err)
		return
	}

	slog.Info("claim submitted",
		"claim_id", claim.ID,
		"submitter", claim.Submitter,
		"category", claim.Category,
		"weight_kg", claim.WeightKg,
	)

	middleware.JSONResponse(w, http.StatusCreated, claim)
}

// Get handles GET /claims/{id}
// Claim IDs are unguessable random tokens, so claims are readable by ID.
func (h *ClaimHandler) Get(w http.ResponseWriter, r *http.Request) {
	claimID := r.PathValue("id")
	if claimID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "claim id is required")
		return
	}

	claim, err := h.ledger.Get(r.Context(), claimID)
	if err != nil {
		middleware.DomainErrorResponse(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, claim)
}

// Mine handles GET /claims/mine
// Returns the session principal's claim history, newest first.
func (h *ClaimHandler) Mine(w http.ResponseWriter, r *http.Request) {
	session, err := middleware.SessionFromRequest(r, h.cfg.SessionSecret)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Valid session required")
		return
	}

	claims, err := h.ledger.ListBySubmitter(r.Context(), session.Address)
	if err != nil {
		middleware.DomainErrorResponse(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ClaimListResponse{Claims: claims})
}
