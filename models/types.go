// Copyright (c) 2025 EcoConnect.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Claim state constants
const (
	StatePending  = "pending"
	StateVerified = "verified"
	StateRejected = "rejected"
)

// Waste category constants
const (
	CategoryPlastic = "plastic"
	CategoryMetal   = "metal"
	CategoryPaper   = "paper"
	CategoryOther   = "other"
)

// Account role constants
const (
	RoleUser  = "user"
	RoleAgent = "agent"
)

// ValidCategory reports whether the category is one of the closed set.
func ValidCategory(category string) bool {
	switch category {
	case CategoryPlastic, CategoryMetal, CategoryPaper, CategoryOther:
		return true
	}
	return false
}

// Request types

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SubmitClaimRequest struct {
	Category string  `json:"category"`
	WeightKg float64 `json:"weight_kg"`
}

type RejectClaimRequest struct {
	Reason string `json:"reason"`
}

// Response types

type RegisterResponse struct {
	Address  string `json:"address"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	Address   string    `json:"address"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

type SessionResponse struct {
	Address string `json:"address"`
	Role    string `json:"role"`
	IsAgent bool   `json:"is_agent"`
}

type BalanceResponse struct {
	Address string `json:"address"`
	Balance int64  `json:"balance"`
}

type ClaimListResponse struct {
	Claims []CollectionClaim `json:"claims"`
}

// Domain types

// CollectionClaim is one reported batch of waste. A claim is created in
// pending state and settled exactly once: verified with a point award, or
// rejected with a reason. Settled claims are immutable audit records.
type CollectionClaim struct {
	ID            string     `json:"id"`
	Submitter     string     `json:"submitter"`
	Category      string     `json:"category"`
	WeightKg      float64    `json:"weight_kg"`
	State         string     `json:"state"`
	VerifiedBy    *string    `json:"verified_by,omitempty"`
	PointsAwarded *int64     `json:"points_awarded,omitempty"`
	RejectReason  *string    `json:"reject_reason,omitempty"`
	SubmittedAt   time.Time  `json:"submitted_at"`
	VerifiedAt    *time.Time `json:"verified_at,omitempty"`
}

// Account is a registered principal in the account store.
type Account struct {
	Address            string    `json:"address"`
	Username           string    `json:"username"`
	Email              string    `json:"email"`
	PasswordHash       string    `json:"-"` // Never expose in JSON
	Role               string    `json:"role"`
	TotalWasteReported float64   `json:"total_waste_reported"`
	CreatedAt          time.Time `json:"created_at"`
}

// PendingCredit is a durable point-credit obligation created at verified
// settlement and cleared once the balance ledger has been credited.
type PendingCredit struct {
	ID          string     `json:"id"`
	ClaimID     string     `json:"claim_id"`
	Recipient   string     `json:"recipient"`
	Points      int64      `json:"points"`
	Attempts    int        `json:"attempts"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// AggregateStats are the dashboard totals folded over verified claims.
type AggregateStats struct {
	TotalVerified      int64   `json:"total_verified"`
	TotalWasteKg       float64 `json:"total_waste_kg"`
	TotalPointsAwarded int64   `json:"total_points_awarded"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
