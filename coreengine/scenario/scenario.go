// Package scenario provides the authored investigation content: the
// per-claim bundle of six agent stage records, the final decision fields and
// the inter-agent transcript. Content is data, not computation — nothing in
// this package generates text.
package scenario

import (
	"fmt"

	"github.com/geekyharshvinfo-lgtm/agentic-claims/coreengine/typeutil"
)

// StageKind identifies one phase of the six-step investigation pipeline.
type StageKind string

const (
	StageDocumentIngest   StageKind = "document_ingest"
	StageVision           StageKind = "vision"
	StageDocumentAnalysis StageKind = "document_analysis"
	StageLiability        StageKind = "liability"
	StageFraud            StageKind = "fraud"
	StagePayout           StageKind = "payout"
)

// PipelineOrder returns the fixed six-stage pipeline order. Stages run
// sequentially: vision needs ingested documents, liability needs vision and
// document analysis, payout needs liability and fraud.
func PipelineOrder() []StageKind {
	return []StageKind{
		StageDocumentIngest,
		StageVision,
		StageDocumentAnalysis,
		StageLiability,
		StageFraud,
		StagePayout,
	}
}

// StageCount is the fixed pipeline length.
const StageCount = 6

// StageStatus is the lifecycle status of one stage within a run.
type StageStatus string

const (
	StageQueued    StageStatus = "queued"
	StageRunning   StageStatus = "running"
	StageCompleted StageStatus = "completed"
	StageError     StageStatus = "error"
)

// StageRecord is one agent stage's authored output plus its live status.
// A Scenario carries the records with Status unset; a sequencer run owns a
// copy and drives the status field.
type StageRecord struct {
	Kind              StageKind      `json:"type"`
	Status            StageStatus    `json:"status,omitempty"`
	Summary           string         `json:"summary"`
	DetailedReasoning string         `json:"detailedReasoning"`
	Timestamp         string         `json:"timestamp"` // relative, mm:ss into the run
	Confidence        *float64       `json:"confidence,omitempty"`
	Data              map[string]any `json:"data,omitempty"`

	// FailMessage scripts a failure for this stage. When non-empty the
	// sequencer marks the stage error and halts the run. No shipped
	// scenario uses it.
	FailMessage string `json:"failMessage,omitempty"`
}

// DataFloat reads a numeric value out of the stage payload.
func (r *StageRecord) DataFloat(key string) (float64, bool) {
	return typeutil.SafeFloat64(r.Data[key])
}

// DataInt reads an integer value out of the stage payload.
func (r *StageRecord) DataInt(key string) (int, bool) {
	return typeutil.SafeInt(r.Data[key])
}

// DataString reads a string value out of the stage payload.
func (r *StageRecord) DataString(key string) (string, bool) {
	return typeutil.SafeString(r.Data[key])
}

// Liability is the fault determination for a claim.
type Liability string

const (
	LiabilityClaimantAtFault   Liability = "Claimant At-Fault"
	LiabilityThirdPartyAtFault Liability = "Third-Party At-Fault"
	LiabilitySharedFault       Liability = "Shared Fault"
	LiabilityNoFault           Liability = "No-Fault"
)

// Valid reports whether l is a known liability determination.
func (l Liability) Valid() bool {
	switch l {
	case LiabilityClaimantAtFault, LiabilityThirdPartyAtFault, LiabilitySharedFault, LiabilityNoFault:
		return true
	}
	return false
}

// Determination carries the liability outcome and its one-line rationale.
type Determination struct {
	Assessment  Liability `json:"assessment"`
	Description string    `json:"description"`
}

// Payout is the recommended settlement.
type Payout struct {
	Amount    int    `json:"amount"` // rupees
	Breakdown string `json:"breakdown"`
}

// Message is one entry of the inter-agent conversation transcript.
type Message struct {
	Stage     StageKind `json:"agentType"`
	Text      string    `json:"message"`
	Timestamp string    `json:"timestamp"` // relative, mm:ss into the run
}

// FNOLSummary is the first-notice-of-loss digest shown in the workspace.
type FNOLSummary struct {
	Location     string `json:"location"`
	IncidentTime string `json:"incidentTime"`
	FNOLTime     string `json:"fnolTime"`
	Description  string `json:"description"`
	Weather      string `json:"weather"`
	Injuries     string `json:"injuries"`
}

// Evidence is one scored evidence item for the explainability panel.
type Evidence struct {
	Source      string  `json:"source"`
	Description string  `json:"description"`
	MatchScore  float64 `json:"matchScore"`
}

// HistoricalCase is a prior-case match surfaced by fraud analysis.
type HistoricalCase struct {
	CaseID      string `json:"caseId"`
	Description string `json:"description"`
}

// VerificationItem is one manual follow-up task for the adjuster.
type VerificationItem struct {
	Task      string `json:"task"`
	Completed bool   `json:"completed"`
}

// Scenario is the full authored bundle for one claim identifier. Scenarios
// are immutable at runtime: the sequencer copies stage records into a run
// and never writes back.
type Scenario struct {
	ClaimID      string             `json:"claimId"`
	FNOL         FNOLSummary        `json:"fnolSummary"`
	Stages       []StageRecord      `json:"stages"`
	Liability    Determination      `json:"liability"`
	Payout       Payout             `json:"payout"`
	Confidence   float64            `json:"confidence"`
	Transcript   []Message          `json:"transcript"`
	Evidence     []Evidence         `json:"evidence,omitempty"`
	Historical   []HistoricalCase   `json:"historicalMatches,omitempty"`
	Verification []VerificationItem `json:"verificationChecklist,omitempty"`
}

// Validate checks the scenario's structural invariants: exactly six stages
// in canonical pipeline order, bounded confidences, non-negative payout.
func (s *Scenario) Validate() error {
	if s.ClaimID == "" {
		return fmt.Errorf("scenario claim id is required")
	}
	if len(s.Stages) != StageCount {
		return fmt.Errorf("scenario %s: expected %d stages, got %d", s.ClaimID, StageCount, len(s.Stages))
	}
	for i, want := range PipelineOrder() {
		if s.Stages[i].Kind != want {
			return fmt.Errorf("scenario %s: stage %d is %q, pipeline order requires %q",
				s.ClaimID, i, s.Stages[i].Kind, want)
		}
		if c := s.Stages[i].Confidence; c != nil && (*c < 0 || *c > 1) {
			return fmt.Errorf("scenario %s: stage %q confidence %v outside [0,1]",
				s.ClaimID, want, *c)
		}
	}
	if !s.Liability.Assessment.Valid() {
		return fmt.Errorf("scenario %s: unknown liability %q", s.ClaimID, s.Liability.Assessment)
	}
	if s.Payout.Amount < 0 {
		return fmt.Errorf("scenario %s: negative payout %d", s.ClaimID, s.Payout.Amount)
	}
	if s.Confidence < 0 || s.Confidence > 1 {
		return fmt.Errorf("scenario %s: confidence %v outside [0,1]", s.ClaimID, s.Confidence)
	}
	for i, m := range s.Transcript {
		if !knownStage(m.Stage) {
			return fmt.Errorf("scenario %s: transcript entry %d references unknown stage %q",
				s.ClaimID, i, m.Stage)
		}
	}
	return nil
}

// CloneStages returns a fresh copy of the stage records with every status
// set as given. Payload maps are shared; authored content is read-only.
func (s *Scenario) CloneStages(status StageStatus) []StageRecord {
	out := make([]StageRecord, len(s.Stages))
	copy(out, s.Stages)
	for i := range out {
		out[i].Status = status
	}
	return out
}

func knownStage(k StageKind) bool {
	for _, want := range PipelineOrder() {
		if k == want {
			return true
		}
	}
	return false
}

func confidence(v float64) *float64 { return &v }
