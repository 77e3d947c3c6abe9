package workspace

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geekyharshvinfo-lgtm/agentic-claims/coreengine/applog"
	"github.com/geekyharshvinfo-lgtm/agentic-claims/coreengine/claims"
	"github.com/geekyharshvinfo-lgtm/agentic-claims/coreengine/config"
	"github.com/geekyharshvinfo-lgtm/agentic-claims/coreengine/scenario"
	"github.com/geekyharshvinfo-lgtm/agentic-claims/coreengine/sequencer"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func newTestWorkspace(t *testing.T) (*Workspace, *claims.Repository) {
	t.Helper()

	repo := claims.NewRepository(applog.Nop())
	require.NoError(t, repo.Add(claims.Claim{
		ID:              "AC-2025-00124",
		ClaimantName:    "Rahul Sharma",
		Status:          claims.StatusNew,
		Vehicle:         "2018 Honda City (MH02AB1234)",
		FNOLDate:        "15 Oct 2025, 23:42",
		SLARisk:         claims.SLAHigh,
		EstimatedAmount: "45000",
	}))
	require.NoError(t, repo.Add(claims.Claim{
		ID:              "AC-2025-00123",
		ClaimantName:    "Priya Patel",
		Status:          claims.StatusReadyToApprove,
		Vehicle:         "2020 Maruti Swift (DL08CD5544)",
		FNOLDate:        "14 Oct 2025, 18:10",
		SLARisk:         claims.SLALow,
		EstimatedAmount: "85000",
		ApprovedAmount:  85000,
	}))

	store, err := scenario.NewStore(applog.Nop())
	require.NoError(t, err)

	seq := sequencer.New(store, config.Timing{})
	t.Cleanup(seq.Reset)

	return New(repo, store, seq, applog.Nop(), nil), repo
}

func openAndFinish(t *testing.T, ws *Workspace, claimID string) View {
	t.Helper()
	_, err := ws.Open(claimID)
	require.NoError(t, err)

	var view View
	require.Eventually(t, func() bool {
		view, err = ws.View(claimID)
		require.NoError(t, err)
		return view.DecisionReady
	}, 2*time.Second, time.Millisecond)
	return view
}

// =============================================================================
// GATING
// =============================================================================

func TestOpenUnknownClaim(t *testing.T) {
	ws, _ := newTestWorkspace(t)
	_, err := ws.Open("AC-2025-99999")
	assert.ErrorIs(t, err, ErrClaimNotFound)
}

func TestOpenMovesNewClaimToInvestigating(t *testing.T) {
	ws, repo := newTestWorkspace(t)

	view, err := ws.Open("AC-2025-00124")
	require.NoError(t, err)
	assert.Equal(t, claims.StatusInvestigating, view.Claim.Status)

	stored, _ := repo.Get("AC-2025-00124")
	assert.Equal(t, claims.StatusInvestigating, stored.Status)
}

func TestViewComposesClaimScenarioAndRun(t *testing.T) {
	ws, _ := newTestWorkspace(t)

	view, err := ws.Open("AC-2025-00124")
	require.NoError(t, err)
	assert.Equal(t, "AC-2025-00124", view.Claim.ID)
	assert.Equal(t, "AC-2025-00124", view.Scenario.ClaimID)
	assert.Len(t, view.Documents, 9)
	assert.Equal(t, "AC-2025-00124", view.Run.ClaimID)
}

func TestDecisionGateOpensWhenRunFinishes(t *testing.T) {
	ws, _ := newTestWorkspace(t)
	view := openAndFinish(t, ws, "AC-2025-00124")

	assert.True(t, view.DecisionReady)
	assert.True(t, view.Run.Finished())
}

func TestDecisionGateClosedForDifferentClaim(t *testing.T) {
	ws, _ := newTestWorkspace(t)
	openAndFinish(t, ws, "AC-2025-00124")

	// The other claim's view must not inherit the finished run.
	view, err := ws.View("AC-2025-00123")
	require.NoError(t, err)
	assert.False(t, view.DecisionReady)
}

func TestFastPathClaimIsImmediatelyReady(t *testing.T) {
	ws, _ := newTestWorkspace(t)

	view, err := ws.Open("AC-2025-00123")
	require.NoError(t, err)
	assert.True(t, view.DecisionReady, "finalized claim skips simulation")
	assert.True(t, view.Run.FastPath)
}

// =============================================================================
// DECISION ACTIONS
// =============================================================================

func TestApproveRequiresFinishedRun(t *testing.T) {
	ws, _ := newTestWorkspace(t)

	_, err := ws.Approve("AC-2025-00124", 42200)
	assert.ErrorIs(t, err, ErrDecisionNotReady)
}

func TestApproveRecordsAmountAndStatus(t *testing.T) {
	ws, repo := newTestWorkspace(t)
	openAndFinish(t, ws, "AC-2025-00124")

	updated, err := ws.Approve("AC-2025-00124", 42200)
	require.NoError(t, err)
	assert.Equal(t, claims.StatusReadyToApprove, updated.Status)
	assert.Equal(t, 42200, updated.ApprovedAmount)

	stored, _ := repo.Get("AC-2025-00124")
	assert.Equal(t, 42200, stored.ApprovedAmount)
}

func TestApproveEnforcesCoverageCap(t *testing.T) {
	config.Reset()
	ws, _ := newTestWorkspace(t)
	openAndFinish(t, ws, "AC-2025-00124")

	_, err := ws.Approve("AC-2025-00124", config.Get().CoverageCapRupees+1)
	assert.ErrorIs(t, err, ErrOverCap)
}

func TestSettleWithinApprovedAmount(t *testing.T) {
	ws, _ := newTestWorkspace(t)
	openAndFinish(t, ws, "AC-2025-00124")

	_, err := ws.Approve("AC-2025-00124", 42200)
	require.NoError(t, err)

	updated, err := ws.Settle("AC-2025-00124", 42200)
	require.NoError(t, err)
	assert.Equal(t, claims.StatusSettled, updated.Status)
	assert.Equal(t, 42200, updated.DisbursedAmount)
}

func TestSettleRejectsOverDisbursement(t *testing.T) {
	ws, _ := newTestWorkspace(t)
	openAndFinish(t, ws, "AC-2025-00124")

	_, err := ws.Approve("AC-2025-00124", 42200)
	require.NoError(t, err)

	_, err = ws.Settle("AC-2025-00124", 50000)
	assert.ErrorIs(t, err, claims.ErrInvalidAmounts)
}

func TestSettleRequiresApprovedStatus(t *testing.T) {
	ws, _ := newTestWorkspace(t)
	openAndFinish(t, ws, "AC-2025-00124")

	// Still Investigating: the transition guard rejects the settle.
	_, err := ws.Settle("AC-2025-00124", 1000)
	assert.ErrorIs(t, err, claims.ErrBadTransition)
}

func TestCloseClaimFromAnyActiveStatus(t *testing.T) {
	ws, repo := newTestWorkspace(t)
	openAndFinish(t, ws, "AC-2025-00124")

	updated, err := ws.CloseClaim("AC-2025-00124")
	require.NoError(t, err)
	assert.Equal(t, claims.StatusClosed, updated.Status)

	// Closed is terminal: nothing moves it back.
	_, err = ws.Settle("AC-2025-00124", 100)
	assert.Error(t, err)

	stored, _ := repo.Get("AC-2025-00124")
	assert.Equal(t, claims.StatusClosed, stored.Status)
}
