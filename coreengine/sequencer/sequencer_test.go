package sequencer

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/geekyharshvinfo-lgtm/agentic-claims/commbus"
	"github.com/geekyharshvinfo-lgtm/agentic-claims/coreengine/applog"
	"github.com/geekyharshvinfo-lgtm/agentic-claims/coreengine/claims"
	"github.com/geekyharshvinfo-lgtm/agentic-claims/coreengine/config"
	"github.com/geekyharshvinfo-lgtm/agentic-claims/coreengine/scenario"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// =============================================================================
// TEST HELPERS
// =============================================================================

// recordingBus captures published events in order.
type recordingBus struct {
	mu     sync.Mutex
	events []commbus.Message
}

func (b *recordingBus) Publish(ctx context.Context, event commbus.Message) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
	return nil
}

func (b *recordingBus) snapshot() []commbus.Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]commbus.Message, len(b.events))
	copy(out, b.events)
	return out
}

func (b *recordingBus) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.events)
}

// fastTiming keeps a full six-stage run under a few milliseconds.
func fastTiming() config.Timing {
	return config.Timing{
		InitialDelayMS: 0,
		DwellBaseMS:    0,
		DwellJitterMS:  0,
		StagePauseMS:   0,
	}
}

func newTestSequencer(t *testing.T, opts ...scenario.StoreOption) (*Sequencer, *recordingBus) {
	t.Helper()
	store, err := scenario.NewStore(applog.Nop(), opts...)
	require.NoError(t, err)

	bus := &recordingBus{}
	seq := New(store, fastTiming(),
		WithBus(bus),
		WithRand(rand.New(rand.NewSource(1))))
	t.Cleanup(seq.Reset)
	return seq, bus
}

func waitFinished(t *testing.T, seq *Sequencer) Snapshot {
	t.Helper()
	require.Eventually(t, func() bool {
		return seq.Snapshot().Finished()
	}, 2*time.Second, time.Millisecond)
	return seq.Snapshot()
}

// waitRunEnd blocks until the RunCompleted event for runID reaches the bus.
// State flips finished slightly before the event publishes, so event
// assertions must wait on the event itself.
func waitRunEnd(t *testing.T, bus *recordingBus, runID string) *commbus.RunCompleted {
	t.Helper()
	var done *commbus.RunCompleted
	require.Eventually(t, func() bool {
		for _, ev := range bus.snapshot() {
			if rc, ok := ev.(*commbus.RunCompleted); ok && rc.RunID == runID {
				done = rc
				return true
			}
		}
		return false
	}, 2*time.Second, time.Millisecond)
	return done
}

// =============================================================================
// RUN ORDERING
// =============================================================================

func TestRunWalksStagesInOrder(t *testing.T) {
	seq, bus := newTestSequencer(t)

	runID := seq.Start(scenario.DefaultClaimID, claims.StatusNew)
	require.NotEmpty(t, runID)

	final := waitFinished(t, seq)
	waitRunEnd(t, bus, runID)
	require.Len(t, final.Stages, scenario.StageCount)
	for i, want := range scenario.PipelineOrder() {
		assert.Equal(t, want, final.Stages[i].Kind)
		assert.Equal(t, scenario.StageCompleted, final.Stages[i].Status)
	}
	assert.Equal(t, scenario.StageCount-1, final.Index)
	assert.False(t, final.Running)

	// Events must interleave strictly: started(0), completed(0), started(1)...
	var sequence []string
	for _, ev := range bus.snapshot() {
		switch e := ev.(type) {
		case *commbus.StageStarted:
			sequence = append(sequence, "start:"+e.StageKind)
		case *commbus.StageCompleted:
			sequence = append(sequence, "done:"+e.StageKind)
			assert.Equal(t, string(scenario.StageCompleted), e.Status)
		}
	}
	var want []string
	for _, k := range scenario.PipelineOrder() {
		want = append(want, "start:"+string(k), "done:"+string(k))
	}
	assert.Equal(t, want, sequence)
}

func TestRunEmitsLifecycleEvents(t *testing.T) {
	seq, bus := newTestSequencer(t)

	runID := seq.Start(scenario.DefaultClaimID, claims.StatusNew)
	waitFinished(t, seq)
	done := waitRunEnd(t, bus, runID)

	events := bus.snapshot()
	require.NotEmpty(t, events)

	started, ok := events[0].(*commbus.RunStarted)
	require.True(t, ok, "first event must be RunStarted")
	assert.Equal(t, runID, started.RunID)
	assert.False(t, started.FastPath)

	assert.Equal(t, runID, done.RunID)
	assert.Equal(t, RunCompleted, done.Status)
}

// =============================================================================
// FAST PATH
// =============================================================================

func TestFastPathCompletesImmediately(t *testing.T) {
	seq, bus := newTestSequencer(t)

	seq.Start(scenario.DefaultClaimID, claims.StatusReadyToApprove)

	// No waiting: the run is already finished when Start returns.
	snap := seq.Snapshot()
	assert.True(t, snap.Finished())
	assert.True(t, snap.FastPath)
	assert.False(t, snap.Running)
	for _, st := range snap.Stages {
		assert.Equal(t, scenario.StageCompleted, st.Status)
	}

	// No per-stage events, only run lifecycle.
	events := bus.snapshot()
	require.Len(t, events, 2)
	started := events[0].(*commbus.RunStarted)
	assert.True(t, started.FastPath)
	done := events[1].(*commbus.RunCompleted)
	assert.Equal(t, RunCompleted, done.Status)
}

// =============================================================================
// CANCELLATION
// =============================================================================

func TestResetCancelsPendingRun(t *testing.T) {
	store, err := scenario.NewStore(applog.Nop())
	require.NoError(t, err)
	bus := &recordingBus{}
	// Long dwell keeps the run in flight while we cancel it.
	seq := New(store, config.Timing{InitialDelayMS: 1, DwellBaseMS: 60000},
		WithBus(bus))
	defer seq.Reset()

	runID := seq.Start(scenario.DefaultClaimID, claims.StatusNew)
	seq.Reset()

	snap := seq.Snapshot()
	assert.Empty(t, snap.RunID)
	assert.False(t, snap.Running)
	assert.Empty(t, snap.Stages)

	// The cancelled run's callbacks must never fire against the idle state.
	before := bus.count()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, before, bus.count())

	var cancelled *commbus.RunCompleted
	for _, ev := range bus.snapshot() {
		if rc, ok := ev.(*commbus.RunCompleted); ok {
			cancelled = rc
		}
	}
	require.NotNil(t, cancelled)
	assert.Equal(t, runID, cancelled.RunID)
	assert.Equal(t, RunCancelled, cancelled.Status)
}

func TestResetIdempotent(t *testing.T) {
	seq, bus := newTestSequencer(t)
	seq.Reset()
	seq.Reset()
	assert.Zero(t, bus.count())
}

func TestStartSupersedesRunInFlight(t *testing.T) {
	store, err := scenario.NewStore(applog.Nop())
	require.NoError(t, err)
	bus := &recordingBus{}
	seq := New(store, config.Timing{InitialDelayMS: 1, DwellBaseMS: 60000},
		WithBus(bus))
	defer seq.Reset()

	first := seq.Start("AC-2025-00123", claims.StatusNew)

	// Supersede with a fast run before the first stage can complete.
	seq.mu.Lock()
	seq.timing = fastTiming()
	seq.mu.Unlock()
	second := seq.Start(scenario.DefaultClaimID, claims.StatusNew)
	require.NotEqual(t, first, second)

	final := waitFinished(t, seq)
	waitRunEnd(t, bus, second)
	assert.Equal(t, second, final.RunID)
	assert.Equal(t, scenario.DefaultClaimID, final.ClaimID)

	// Nothing from the first run may appear after its cancellation.
	sawCancel := false
	for _, ev := range bus.snapshot() {
		switch e := ev.(type) {
		case *commbus.RunCompleted:
			if e.RunID == first {
				assert.Equal(t, RunCancelled, e.Status)
				sawCancel = true
			}
		case *commbus.StageCompleted:
			assert.Equal(t, second, e.RunID, "stale callback leaked into new run")
		}
	}
	assert.True(t, sawCancel)
}

// =============================================================================
// SCRIPTED FAILURE
// =============================================================================

// failingScenario derives a scenario whose third stage is scripted to fail.
func failingScenario(t *testing.T) *scenario.Scenario {
	t.Helper()
	base, err := scenario.NewStore(applog.Nop())
	require.NoError(t, err)

	sc := *base.Fallback()
	sc.ClaimID = "AC-TEST-FAIL"
	sc.Stages = base.Fallback().CloneStages("")
	sc.Stages[2].FailMessage = "document checksum mismatch"
	return &sc
}

func TestScriptedFailureHaltsRun(t *testing.T) {
	seq, bus := newTestSequencer(t, scenario.WithExtraScenarios(failingScenario(t)))

	runID := seq.Start("AC-TEST-FAIL", claims.StatusNew)
	done := waitRunEnd(t, bus, runID)
	assert.Equal(t, RunErrored, done.Status)

	snap := seq.Snapshot()
	assert.False(t, snap.Running)
	assert.False(t, snap.Finished())
	assert.Equal(t, scenario.StageError, snap.Stages[2].Status)
	assert.Equal(t, scenario.StageQueued, snap.Stages[3].Status, "run must halt at the failed stage")
}

// =============================================================================
// SNAPSHOT SEMANTICS
// =============================================================================

func TestSnapshotIsACopy(t *testing.T) {
	seq, _ := newTestSequencer(t)
	seq.Start(scenario.DefaultClaimID, claims.StatusReadyToApprove)

	snap := seq.Snapshot()
	snap.Stages[0].Status = scenario.StageError

	assert.Equal(t, scenario.StageCompleted, seq.Snapshot().Stages[0].Status)
}

func TestSnapshotIdleBeforeFirstRun(t *testing.T) {
	seq, _ := newTestSequencer(t)
	snap := seq.Snapshot()
	assert.Empty(t, snap.RunID)
	assert.Equal(t, -1, snap.Index)
	assert.False(t, snap.Finished())
}
