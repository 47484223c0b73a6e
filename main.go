// Copyright (c) 2025 EcoConnect.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/ecoconnect/server/cliparse"
	"github.com/ecoconnect/server/db"
	"github.com/ecoconnect/server/engine"
	"github.com/ecoconnect/server/ledger"
	"github.com/ecoconnect/server/middleware"
	"github.com/ecoconnect/server/registry"
	"github.com/ecoconnect/server/reward"
	"github.com/ecoconnect/server/router"
)

const reconcileInterval = 30 * time.Second

func main() {
	var err error

	// Load .env if present (secrets live there in dev)
	_ = godotenv.Load()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the database
	driver := "sqlite"
	if cfg.DatabaseType == "postgres" {
		driver = "postgres"
	}
	dbConn, err := sql.Open(driver, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready")

	// Reward rate table
	rates := reward.DefaultRates()
	if cfg.RatesFile != "" {
		rates, err = reward.LoadRates(cfg.RatesFile)
		if err != nil {
			slog.Error("failed to load reward rates", "file", cfg.RatesFile, "error", err)
			os.Exit(1)
		}
		slog.Info("Reward rates loaded", "file", cfg.RatesFile)
	}

	// Core components
	collectionLedger := ledger.New(dbConn)
	agentRegistry := registry.New(dbConn, cfg.AgentAddress)
	verificationEngine := engine.New(collectionLedger, agentRegistry, reward.NewCalculator(rates))

	// Settlement notifications for downstream consumers
	unsubscribe := verificationEngine.Subscribe(func(event engine.Event) {
		slog.Info("settlement event",
			"claim_id", event.ClaimID,
			"state", event.State,
			"submitter", event.Submitter,
			"points", event.Points,
		)
	})
	defer unsubscribe()

	// Retry unfinished balance credits in the background
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go verificationEngine.RunReconciler(ctx, reconcileInterval)

	// Create router
	mux := router.NewRouter(dbConn, cfg, collectionLedger, agentRegistry, verificationEngine)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		cancel()
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
