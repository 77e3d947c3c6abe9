// Package workspace composes the adjuster's review surface: the resolved
// claim, its documents, the authored investigation scenario and the live
// pipeline run. Decision actions (approve, settle, close) flow back into the
// claim repository through guarded status transitions.
package workspace

import (
	"context"
	"errors"
	"fmt"

	"github.com/geekyharshvinfo-lgtm/agentic-claims/commbus"
	"github.com/geekyharshvinfo-lgtm/agentic-claims/coreengine/applog"
	"github.com/geekyharshvinfo-lgtm/agentic-claims/coreengine/claims"
	"github.com/geekyharshvinfo-lgtm/agentic-claims/coreengine/config"
	"github.com/geekyharshvinfo-lgtm/agentic-claims/coreengine/observability"
	"github.com/geekyharshvinfo-lgtm/agentic-claims/coreengine/scenario"
	"github.com/geekyharshvinfo-lgtm/agentic-claims/coreengine/sequencer"
)

var (
	ErrClaimNotFound    = errors.New("claim not found")
	ErrDecisionNotReady = errors.New("decision not ready: pipeline run has not finished")
	ErrOverCap          = errors.New("amount exceeds coverage cap")
)

// View is everything the review surface needs for one claim, assembled in a
// single read. DecisionReady gates the settlement card: it is true only when
// the pipeline run for this claim walked every stage to completion.
type View struct {
	Claim         claims.Claim
	Documents     []Document
	Scenario      *scenario.Scenario
	Run           sequencer.Snapshot
	DecisionReady bool
}

// Workspace wires the claim repository, scenario store and sequencer behind
// the decision-gating contract.
type Workspace struct {
	repo   *claims.Repository
	store  *scenario.Store
	seq    *sequencer.Sequencer
	bus    sequencer.Publisher
	logger applog.Logger
}

// New creates a Workspace. bus may be nil, in which case decision actions do
// not emit events.
func New(repo *claims.Repository, store *scenario.Store, seq *sequencer.Sequencer, logger applog.Logger, bus sequencer.Publisher) *Workspace {
	if logger == nil {
		logger = applog.Nop()
	}
	return &Workspace{
		repo:   repo,
		store:  store,
		seq:    seq,
		bus:    bus,
		logger: logger.Bind("component", "workspace"),
	}
}

// Open resolves the claim and starts a pipeline run for it, cancelling any
// run from a previously opened claim. Opening a New claim moves it to
// Investigating: the pipeline run is the investigation. Returns the initial
// view; the run is still in flight unless the claim fast-pathed.
func (w *Workspace) Open(claimID string) (View, error) {
	c, ok := w.repo.Get(claimID)
	if !ok {
		return View{}, fmt.Errorf("%w: %s", ErrClaimNotFound, claimID)
	}
	w.seq.Start(claimID, c.Status)
	if c.Status == claims.StatusNew {
		if _, err := w.transition(claimID, claims.StatusInvestigating, "open", claims.Patch{}); err != nil {
			return View{}, err
		}
	}
	w.logger.Info("workspace_opened", "claim_id", claimID, "status", string(c.Status))
	return w.View(claimID)
}

// View assembles the current state for the claim without touching the run.
// DecisionReady is true only when the sequencer's current run belongs to
// this claim and is finished.
func (w *Workspace) View(claimID string) (View, error) {
	c, ok := w.repo.Get(claimID)
	if !ok {
		return View{}, fmt.Errorf("%w: %s", ErrClaimNotFound, claimID)
	}
	run := w.seq.Snapshot()
	return View{
		Claim:         c,
		Documents:     SampleDocuments(),
		Scenario:      w.store.Resolve(claimID),
		Run:           run,
		DecisionReady: run.ClaimID == claimID && run.Finished(),
	}, nil
}

// Close releases the workspace, cancelling any run in flight.
func (w *Workspace) Close() {
	w.seq.Reset()
}

// Approve records the approved settlement amount and moves the claim to
// Ready to Approve. Requires the pipeline run for this claim to be finished
// and the amount to be within the coverage cap.
func (w *Workspace) Approve(claimID string, amount int) (claims.Claim, error) {
	v, err := w.View(claimID)
	if err != nil {
		return claims.Claim{}, err
	}
	if !v.DecisionReady {
		return claims.Claim{}, fmt.Errorf("%w: claim %s", ErrDecisionNotReady, claimID)
	}
	if limit := config.Get().CoverageCapRupees; amount > limit {
		return claims.Claim{}, fmt.Errorf("%w: %d > %d", ErrOverCap, amount, limit)
	}
	return w.transition(claimID, claims.StatusReadyToApprove, "approve", claims.Patch{
		ApprovedAmount: &amount,
	})
}

// Settle disburses against an approved claim and moves it to Settled. The
// disbursed amount may not exceed the approved amount.
func (w *Workspace) Settle(claimID string, amount int) (claims.Claim, error) {
	c, ok := w.repo.Get(claimID)
	if !ok {
		return claims.Claim{}, fmt.Errorf("%w: %s", ErrClaimNotFound, claimID)
	}
	if err := claims.CheckTransition(c.Status, claims.StatusSettled); err != nil {
		return claims.Claim{}, err
	}
	if amount > c.ApprovedAmount {
		return claims.Claim{}, fmt.Errorf("%w: disbursed %d > approved %d",
			claims.ErrInvalidAmounts, amount, c.ApprovedAmount)
	}
	return w.transition(claimID, claims.StatusSettled, "settle", claims.Patch{
		DisbursedAmount: &amount,
	})
}

// CloseClaim moves the claim to the terminal Closed status.
func (w *Workspace) CloseClaim(claimID string) (claims.Claim, error) {
	return w.transition(claimID, claims.StatusClosed, "close", claims.Patch{})
}

// transition applies a guarded status change plus the patch.
func (w *Workspace) transition(claimID string, to claims.Status, action string, p claims.Patch) (claims.Claim, error) {
	c, ok := w.repo.Get(claimID)
	if !ok {
		return claims.Claim{}, fmt.Errorf("%w: %s", ErrClaimNotFound, claimID)
	}
	if err := claims.CheckTransition(c.Status, to); err != nil {
		return claims.Claim{}, err
	}
	p.Status = &to
	if _, err := w.repo.Update(claimID, p); err != nil {
		return claims.Claim{}, err
	}
	observability.RecordClaimMutation("update")

	updated, _ := w.repo.Get(claimID)
	w.logger.Info("claim_transitioned",
		"claim_id", claimID, "from", string(c.Status), "to", string(to), "action", action)
	if w.bus != nil {
		_ = w.bus.Publish(context.Background(), &commbus.ClaimUpdated{
			ClaimID:   claimID,
			NewStatus: string(to),
			Action:    action,
		})
	}
	return updated, nil
}
