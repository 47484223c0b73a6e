// Copyright (c) 2025 EcoConnect.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/ecoconnect/server/cliparse"
	"github.com/ecoconnect/server/ledger"
	"github.com/ecoconnect/server/middleware"
	"github.com/ecoconnect/server/models"
	"github.com/ecoconnect/server/registry"
)

const defaultRecentLimit = 10
const maxRecentLimit = 100

type DashboardHandler struct {
	cfg      cliparse.Config
	ledger   *ledger.Ledger
	registry *registry.Registry
}

func NewDashboardHandler(cfg cliparse.Config, l *ledger.Ledger, r *registry.Registry) *DashboardHandler {
	return &DashboardHandler{cfg: cfg, ledger: l, registry: r}
}

// Recent handles GET /dashboard/recent
// Returns recently verified claims, newest first. Optional ?limit= up to 100.
func (h *DashboardHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit := defaultRecentLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
		if limit > maxRecentLimit {
			limit = maxRecentLimit
		}
	}

	claims, err := h.ledger.ListRecentVerified(r.Context(), limit)
	if err != nil {
		middleware.DomainErrorResponse(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ClaimListResponse{Claims: claims})
}

// Stats handles GET /dashboard/stats
// Aggregate totals over verified claims, optionally filtered by ?agent= or
// ?submitter= (agent wins if both are given).
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	filter := ledger.StatsFilter{
		Agent:     r.URL.Query().Get("agent"),
		Submitter: r.URL.Query().Get("submitter"),
	}

	stats, err := h.ledger.Stats(r.Context(), filter)
	if err != nil {
		middleware.DomainErrorResponse(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, stats)
}

// Report handles GET /dashboard/report
// Plain-text activity report for the requesting agent.
func (h *DashboardHandler) Report(w http.ResponseWriter, r *http.Request) {
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

	stats, err := h.ledger.Stats(r.Context(), ledger.StatsFilter{Agent: session.Address})
	if err != nil {
		middleware.DomainErrorResponse(w, err)
		return
	}

	recent, err := h.ledger.ListRecentVerified(r.Context(), defaultRecentLimit)
	if err != nil {
		middleware.DomainErrorResponse(w, err)
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "EcoConnect agent activity report\n")
	fmt.Fprintf(&b, "Agent:    %s\n", session.Address)
	fmt.Fprintf(&b, "Date:     %s\n\n", time.Now().UTC().Format(time.RFC1123))
	fmt.Fprintf(&b, "Verified collections: %s\n", humanize.Comma(stats.TotalVerified))
	fmt.Fprintf(&b, "Waste verified:       %s kg\n", humanize.CommafWithDigits(stats.TotalWasteKg, 1))
	fmt.Fprintf(&b, "Points awarded:       %s\n\n", humanize.Comma(stats.TotalPointsAwarded))

	fmt.Fprintf(&b, "Recent verifications (all agents):\n")
	if len(recent) == 0 {
		fmt.Fprintf(&b, "  none\n")
	}
	for _, claim := range recent {
		points := int64(0)
		if claim.PointsAwarded != nil {
			points = *claim.PointsAwarded
		}
		when := ""
		if claim.VerifiedAt != nil {
			when = humanize.Time(*claim.VerifiedAt)
		}
		fmt.Fprintf(&b, "  %s  %-7s  %s kg  %s pts  %s\n",
			claim.ID[:8],
			claim.Category,
			humanize.CommafWithDigits(claim.WeightKg, 1),
			humanize.Comma(points),
			when,
		)
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(b.String()))
}
