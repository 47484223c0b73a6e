// Copyright (c) 2025 EcoConnect.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ecoconnect/server/ledger"
	"github.com/ecoconnect/server/models"
	"github.com/ecoconnect/server/registry"
	"github.com/ecoconnect/server/reward"
)

// Engine runs the verification state machine. It is the only component
// that settles claims and credits balances.
type Engine struct {
	ledger   *ledger.Ledger
	registry *registry.Registry
	calc     reward.Calculator
	subs     *subscriptions
}

// New creates an engine over its three collaborators.
func New(l *ledger.Ledger, r *registry.Registry, calc reward.Calculator) *Engine {
	return &Engine{
		ledger:   l,
		registry: r,
		calc:     calc,
		subs:     newSubscriptions(),
	}
}

// Verify settles a pending claim as verified and credits the submitter.
//
// Order matters: the claim is loaded (ErrNotFound), its state checked
// (ErrInvalidState), the agent authorized (ErrUnauthorized), and the reward
// computed before any mutation, so every failure up to that point leaves no
// state behind. After the settlement commits, the credit is a durable
// outbox obligation: a failure here is logged and left to the reconciler,
// never surfaced as a failed verification.
func (e *Engine) Verify(ctx context.Context, agent, claimID string) (models.CollectionClaim, error) {
	claim, err := e.ledger.Get(ctx, claimID)
	if err != nil {
		return models.CollectionClaim{}, err
	}
	if claim.State != models.StatePending {
		return models.CollectionClaim{}, fmt.Errorf("%w: claim %s is %s", models.ErrInvalidState, claimID, claim.State)
	}

	authorized, err := e.registry.IsAuthorizedAgent(ctx, agent)
	if err != nil {
		return models.CollectionClaim{}, err
	}
	if !authorized {
		return models.CollectionClaim{}, fmt.Errorf("%w: %s", models.ErrUnauthorized, agent)
	}

	points, err := e.calc.Compute(claim.Category, claim.WeightKg)
	if err != nil {
		return models.CollectionClaim{}, err
	}

	settled, credit, err := e.ledger.Settle(ctx, claimID, agent, models.StateVerified, points, "")
	if err != nil {
		return models.CollectionClaim{}, err
	}

	if err := e.ledger.ApplyCredit(ctx, credit.ID); err != nil {
		// Settlement is committed; the obligation is durable. The
		// reconciler retries until the balance is credited.
		slog.Warn("balance credit deferred to reconciler",
			"claim_id", claimID,
			"credit_id", credit.ID,
			"recipient", credit.Recipient,
			"points", points,
			"error", err,
		)
	}

	slog.Info("claim verified",
		"claim_id", claimID,
		"agent", agent,
		"submitter", settled.Submitter,
		"points", points,
	)

	e.subs.publish(Event{
		ClaimID:   settled.ID,
		State:     settled.State,
		Submitter: settled.Submitter,
		Agent:     agent,
		Points:    points,
	})

	return settled, nil
}

// Reject settles a pending claim as rejected. Same guards as Verify; no
// reward, no balance credit.
func (e *Engine) Reject(ctx context.Context, agent, claimID, reason string) (models.CollectionClaim, error) {
	claim, err := e.ledger.Get(ctx, claimID)
	if err != nil {
		return models.CollectionClaim{}, err
	}
	if claim.State != models.StatePending {
		return models.CollectionClaim{}, fmt.Errorf("%w: claim %s is %s", models.ErrInvalidState, claimID, claim.State)
	}

	authorized, err := e.registry.IsAuthorizedAgent(ctx, agent)
	if err != nil {
		return models.CollectionClaim{}, err
	}
	if !authorized {
		return models.CollectionClaim{}, fmt.Errorf("%w: %s", models.ErrUnauthorized, agent)
	}

	settled, _, err := e.ledger.Settle(ctx, claimID, agent, models.StateRejected, 0, reason)
	if err != nil {
		return models.CollectionClaim{}, err
	}

	slog.Info("claim rejected",
		"claim_id", claimID,
		"agent", agent,
		"submitter", settled.Submitter,
		"reason", reason,
	)

	e.subs.publish(Event{
		ClaimID:   settled.ID,
		State:     settled.State,
		Submitter: settled.Submitter,
		Agent:     agent,
	})

	return settled, nil
}

// Subscribe registers a handler for settlement events and returns its
// unsubscribe function.
func (e *Engine) Subscribe(handler func(Event)) (unsubscribe func()) {
	return e.subs.subscribe(handler)
}
