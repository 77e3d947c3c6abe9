// Package claims provides the claim domain model and the in-memory claim
// repository that owns the working set.
package claims

import (
	"errors"
	"fmt"
)

// Status is the claim lifecycle status.
type Status string

const (
	// StatusNew is a freshly filed claim awaiting assignment.
	StatusNew Status = "New"
	// StatusInvestigating means the pipeline or an adjuster is working the claim.
	StatusInvestigating Status = "Investigating"
	// StatusReadyToApprove means the decision is finalized and awaiting payout.
	StatusReadyToApprove Status = "Ready to Approve"
	// StatusClosed is terminal: no further activity.
	StatusClosed Status = "Closed"
	// StatusSettled means the approved amount has been disbursed.
	StatusSettled Status = "Settled"
)

// Statuses returns every valid claim status.
func Statuses() []Status {
	return []Status{StatusNew, StatusInvestigating, StatusReadyToApprove, StatusClosed, StatusSettled}
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusInvestigating, StatusReadyToApprove, StatusClosed, StatusSettled:
		return true
	}
	return false
}

// Terminal reports whether the status admits no further transitions besides
// closure.
func (s Status) Terminal() bool {
	return s == StatusClosed
}

// SLARisk is the service-level-agreement breach risk tier for a claim.
type SLARisk string

const (
	SLALow    SLARisk = "Low"
	SLAMedium SLARisk = "Medium"
	SLAHigh   SLARisk = "High"
)

// Valid reports whether r is a known SLA risk tier.
func (r SLARisk) Valid() bool {
	return r == SLALow || r == SLAMedium || r == SLAHigh
}

// Claim is a single insurance claim record.
//
// EstimatedAmount is a numeric string and the approved/disbursed amounts are
// integers; this mirrors the record shape the UI boundary depends on.
// Amounts are rupees.
type Claim struct {
	ID              string  `json:"id"`
	ClaimantName    string  `json:"claimantName"`
	Status          Status  `json:"status"`
	Vehicle         string  `json:"vehicle"`
	FNOLDate        string  `json:"fnolDate"`
	SLARisk         SLARisk `json:"slaRisk"`
	EstimatedAmount string  `json:"estimatedAmount"`
	ApprovedAmount  int     `json:"approvedAmount"`
	DisbursedAmount int     `json:"disbursedAmount"`
}

// Sentinel errors for repository operations.
var (
	ErrNotFound       = errors.New("claim not found")
	ErrDuplicateID    = errors.New("duplicate claim id")
	ErrInvalidAmounts = errors.New("invalid claim amounts")
	ErrBadTransition  = errors.New("invalid status transition")
)

// Validate checks the claim's structural invariants: identifier present,
// known enums, non-negative amounts and disbursed <= approved.
func (c *Claim) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("claim id is required")
	}
	if !c.Status.Valid() {
		return fmt.Errorf("claim %s: unknown status %q", c.ID, c.Status)
	}
	if !c.SLARisk.Valid() {
		return fmt.Errorf("claim %s: unknown sla risk %q", c.ID, c.SLARisk)
	}
	if c.ApprovedAmount < 0 || c.DisbursedAmount < 0 {
		return fmt.Errorf("claim %s: %w: amounts must be non-negative", c.ID, ErrInvalidAmounts)
	}
	if c.DisbursedAmount > c.ApprovedAmount {
		return fmt.Errorf("claim %s: %w: disbursed %d exceeds approved %d",
			c.ID, ErrInvalidAmounts, c.DisbursedAmount, c.ApprovedAmount)
	}
	return nil
}

// transitionTable is the allowed status graph. The original system left
// transitions unguarded; the table makes the lifecycle explicit.
var transitionTable = map[Status][]Status{
	StatusNew:            {StatusInvestigating, StatusClosed},
	StatusInvestigating:  {StatusReadyToApprove, StatusClosed},
	StatusReadyToApprove: {StatusSettled, StatusClosed},
	StatusSettled:        {StatusClosed},
	StatusClosed:         {},
}

// CanTransition reports whether a claim may move from one status to another.
// A no-op transition (from == to) is always allowed.
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	for _, next := range transitionTable[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CheckTransition returns ErrBadTransition if the move is not allowed.
func CheckTransition(from, to Status) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrBadTransition, from, to)
	}
	return nil
}
