// Copyright (c) 2025 EcoConnect.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/ecoconnect/server/cliparse"
	"github.com/ecoconnect/server/engine"
	"github.com/ecoconnect/server/ledger"
	"github.com/ecoconnect/server/middleware"
	"github.com/ecoconnect/server/models"
	"github.com/ecoconnect/server/registry"
)

type VerificationHandler struct {
	cfg      cliparse.Config
	engine   *engine.Engine
	ledger   *ledger.Ledger
	registry *registry.Registry
}

func NewVerificationHandler(cfg cliparse.Config, e *engine.Engine, l *ledger.Ledger, r *registry.Registry) *VerificationHandler {
	return &VerificationHandler{cfg: cfg, engine: e, ledger: l, registry: r}
}

// Pending handles GET /verification/pending
// Returns the pending queue, oldest first, for agents to work through.
func (h *VerificationHandler) Pending(w http.ResponseWriter, r *http.Request) {
	session, err := middleware.SessionFromRequest(r, h.cfg.SessionSecret)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Valid session required")
		return
	}

	authorized, err := h.registry.IsAuthorizedAgent(r.Context(), session.Address)
	if err != nil {
		middleware.DomainErrorResponse(w, err)
		return
	}
	if !authorized {
		middleware.ErrorResponse(w, http.StatusForbidden, "Agent role required")
		return
	}

	claims, err := h.ledger.ListPending(r.Context())
	if err != nil {
		middleware.DomainErrorResponse(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ClaimListResponse{Claims: claims})
}

// Verify handles POST /claims/{id}/verify
// The engine re-checks authorization before any mutation; the handler only
// establishes who is asking.
func (h *VerificationHandler) Verify(w http.ResponseWriter, r *http.Request) {
	session, err := middleware.SessionFromRequest(r, h.cfg.SessionSecret)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Valid session required")
		return
	}

	claimID := r.PathValue("id")
	if claimID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "claim id is required")
		return
	}

	claim, err := h.engine.Verify(r.Context(), session.Address, claimID)
	if err != nil {
		middleware.DomainErrorResponse(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, claim)
}

// Reject handles POST /claims/{id}/reject
func (h *VerificationHandler) Reject(w http.ResponseWriter, r *http.Request) {
	session, err := middleware.SessionFromRequest(r, h.cfg.SessionSecret)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Valid session required")
		return
	}

	claimID := r.PathValue("id")
	if claimID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "claim id is required")
		return
	}

	var req models.RejectClaimRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Reason == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "reason is required")
		return
	}

	claim, err := h.engine.Reject(r.Context(), session.Address, claimID, req.Reason)
	if err != nil {
		middleware.DomainErrorResponse(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, claim)
}
