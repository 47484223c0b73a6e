// Copyright (c) 2025 EcoConnect.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ecoconnect/server/auth"
	"github.com/ecoconnect/server/cliparse"
	"github.com/ecoconnect/server/ledger"
	"github.com/ecoconnect/server/middleware"
	"github.com/ecoconnect/server/models"
	"github.com/ecoconnect/server/registry"
)

type AccountHandler struct {
	db       *sql.DB
	cfg      cliparse.Config
	ledger   *ledger.Ledger
	registry *registry.Registry
}

func NewAccountHandler(db *sql.DB, cfg cliparse.Config, l *ledger.Ledger, r *registry.Registry) *AccountHandler {
	return &AccountHandler{db: db, cfg: cfg, ledger: l, registry: r}
}

// Register handles POST /auth/register
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input
	if req.Username == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username is required")
		return
	}
	if req.Email == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "email is required")
		return
	}
	if len(req.Password) < 8 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}
	if req.Role == "" {
		req.Role = models.RoleUser
	}
	if req.Role != models.RoleUser && req.Role != models.RoleAgent {
		middleware.ErrorResponse(w, http.StatusBadRequest, "role must be user or agent")
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	address, err := auth.GenerateAddress()
	if err != nil {
		slog.Error("failed to generate address", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	_, err = h.db.Exec(`
		INSERT INTO account (address, username, email, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, address, req.Username, req.Email, passwordHash, req.Role, time.Now().UTC())

	if err != nil {
		// Check if it's a uniqueness violation
		if strings.Contains(err.Error(), "UNIQUE constraint failed") ||
			strings.Contains(err.Error(), "duplicate key value") {
			middleware.ErrorResponse(w, http.StatusConflict, "Email already registered")
			return
		}
		slog.Error("failed to insert account", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	slog.Info("account registered", "address", address, "role", req.Role)

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterResponse{
		Address:  address,
		Username: req.Username,
		Role:     req.Role,
	})
}

// Login handles POST /auth/login
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Email == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "email and password are required")
		return
	}

	var address, passwordHash, role string
	err := h.db.QueryRow(`
		SELECT address, password_hash, role FROM account WHERE email = $1
	`, req.Email).Scan(&address, &passwordHash, &role)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		slog.Error("failed to query account", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if err := auth.CheckPassword(passwordHash, req.Password); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, expiresAt, err := auth.IssueSessionToken(address, role, h.cfg.SessionSecret, time.Now())
	if err != nil {
		slog.Error("failed to issue session token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	slog.Info("session issued", "address", address)

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		Token:     token,
		Address:   address,
		Role:      role,
		ExpiresAt: expiresAt,
	})
}

// Me handles GET /auth/me
// Returns the session principal and its effective agent authorization.
func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	session, err := middleware.SessionFromRequest(r, h.cfg.SessionSecret)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Valid session required")
		return
	}

	isAgent, err := h.registry.IsAuthorizedAgent(r.Context(), session.Address)
	if err != nil {
		middleware.DomainErrorResponse(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SessionResponse{
		Address: session.Address,
		Role:    session.Role,
		IsAgent: isAgent,
	})
}

// Balance handles GET /accounts/{address}/balance
func (h *AccountHandler) Balance(w http.ResponseWriter, r *http.Request) {
	address := r.PathValue("address")
	if address == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "address is required")
		return
	}

	balance, err := h.ledger.GetBalance(r.Context(), address)
	if err != nil {
		middleware.DomainErrorResponse(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.BalanceResponse{
		Address: address,
		Balance: balance,
	})
}
