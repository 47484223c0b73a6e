// Copyright (c) 2025 EcoConnect.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package registry answers agent-authorization queries.
//
// A principal is an authorized agent if its account carries the agent role
// OR it equals the distinguished fallback agent address. The two predicates
// are combined here, in one place, so the fallback exception stays auditable
// instead of leaking into every caller.
package registry

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ecoconnect/server/models"
)

// Registry decides whether a principal may verify collections.
type Registry struct {
	db            *sql.DB
	fallbackAgent string
}

// New creates a registry over the account store. fallbackAgent is the
// distinguished address that is always authorized regardless of registry
// contents.
func New(db *sql.DB, fallbackAgent string) *Registry {
	return &Registry{db: db, fallbackAgent: fallbackAgent}
}

// IsAuthorizedAgent reports whether the principal is flagged as an agent in
// the account store or equals the fallback agent address. A store lookup
// failure propagates as ErrAuthorizationUnavailable, never as a false
// result: an outage must block the action, not deny a legitimate agent.
func (r *Registry) IsAuthorizedAgent(ctx context.Context, principal string) (bool, error) {
	// Addresses compare case-insensitively (hex casing is cosmetic).
	if strings.EqualFold(principal, r.fallbackAgent) {
		return true, nil
	}

	var role string
	err := r.db.QueryRowContext(ctx, `
		SELECT role FROM account WHERE address = $1
	`, principal).Scan(&role)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %v", models.ErrAuthorizationUnavailable, err)
	}

	return role == models.RoleAgent, nil
}
