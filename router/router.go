// Copyright (c) 2025 EcoConnect.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/ecoconnect/server/cliparse"
	"github.com/ecoconnect/server/engine"
	"github.com/ecoconnect/server/handlers"
	"github.com/ecoconnect/server/ledger"
	"github.com/ecoconnect/server/middleware"
	"github.com/ecoconnect/server/registry"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, l *ledger.Ledger, reg *registry.Registry, eng *engine.Engine) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	accountHandler := handlers.NewAccountHandler(db, cfg, l, reg)
	claimHandler := handlers.NewClaimHandler(cfg, l)
	verificationHandler := handlers.NewVerificationHandler(cfg, eng, l, reg)
	dashboardHandler := handlers.NewDashboardHandler(cfg, l, reg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Accounts and sessions
	mux.HandleFunc("POST /auth/register", middleware.WithLogging(accountHandler.Register))
	mux.HandleFunc("POST /auth/login", middleware.WithLogging(accountHandler.Login))
	mux.HandleFunc("GET /auth/me", middleware.WithLogging(accountHandler.Me))
	mux.HandleFunc("GET /accounts/{address}/balance", middleware.WithLogging(accountHandler.Balance))

	// Claim submission (users)
	mux.HandleFunc("POST /claims", middleware.WithLogging(claimHandler.Submit))
	mux.HandleFunc("GET /claims/mine", middleware.WithLogging(claimHandler.Mine))
	mux.HandleFunc("GET /claims/{id}", middleware.WithLogging(claimHandler.Get))

	// Verification workflow (agents)
	mux.HandleFunc("GET /verification/pending", middleware.WithLogging(verificationHandler.Pending))
	mux.HandleFunc("POST /claims/{id}/verify", middleware.WithLogging(verificationHandler.Verify))
	mux.HandleFunc("POST /claims/{id}/reject", middleware.WithLogging(verificationHandler.Reject))

	// Dashboard projections
	mux.HandleFunc("GET /dashboard/recent", middleware.WithLogging(dashboardHandler.Recent))
	mux.HandleFunc("GET /dashboard/stats", middleware.WithLogging(dashboardHandler.Stats))
	mux.HandleFunc("GET /dashboard/report", middleware.WithLogging(dashboardHandler.Report))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ecoconnect API v1"))
	})

	return mux
}
