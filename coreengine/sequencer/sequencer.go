// Package sequencer drives the six-stage agent pipeline for one claim at a
// time. A run walks the authored stage records through queued -> running ->
// completed on a timer chain; starting a new run or resetting cancels the
// chain mid-flight without leaking a stale callback into the new run.
package sequencer

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/geekyharshvinfo-lgtm/agentic-claims/commbus"
	"github.com/geekyharshvinfo-lgtm/agentic-claims/coreengine/applog"
	"github.com/geekyharshvinfo-lgtm/agentic-claims/coreengine/claims"
	"github.com/geekyharshvinfo-lgtm/agentic-claims/coreengine/config"
	"github.com/geekyharshvinfo-lgtm/agentic-claims/coreengine/observability"
	"github.com/geekyharshvinfo-lgtm/agentic-claims/coreengine/scenario"
)

// RunStatus labels how a run ended.
const (
	RunCompleted = "completed"
	RunCancelled = "cancelled"
	RunErrored   = "error"
)

// Publisher is the slice of the comm bus the sequencer needs.
type Publisher interface {
	Publish(ctx context.Context, event commbus.Message) error
}

// Snapshot is a point-in-time copy of the sequencer state. Stage records are
// copied; callers may hold a snapshot across run boundaries.
type Snapshot struct {
	RunID    string
	ClaimID  string
	Running  bool
	FastPath bool
	Index    int // index of the last stage started, -1 before the first
	Stages   []scenario.StageRecord
}

// Finished reports whether the snapshot shows a run that walked every stage
// to completion. Cancelled, errored and in-flight runs are not finished.
func (s Snapshot) Finished() bool {
	if s.Running || len(s.Stages) == 0 || s.Index != len(s.Stages)-1 {
		return false
	}
	for _, st := range s.Stages {
		if st.Status != scenario.StageCompleted {
			return false
		}
	}
	return true
}

// Sequencer owns at most one pipeline run at a time.
type Sequencer struct {
	store  *scenario.Store
	timing config.Timing
	bus    Publisher
	logger applog.Logger
	tracer trace.Tracer

	mu        sync.Mutex
	rng       *rand.Rand
	token     string // current run id, "" when idle
	claimID   string
	fastPath  bool
	stages    []scenario.StageRecord
	index     int
	running   bool
	pending   *time.Timer
	startedAt time.Time
	stageAt   time.Time
	span      trace.Span
}

// Option configures a Sequencer.
type Option func(*Sequencer)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l applog.Logger) Option {
	return func(s *Sequencer) { s.logger = l }
}

// WithBus sets the event publisher. Without one, no events are emitted.
func WithBus(bus Publisher) Option {
	return func(s *Sequencer) { s.bus = bus }
}

// WithRand sets the jitter source. Defaults to a time-seeded source.
func WithRand(rng *rand.Rand) Option {
	return func(s *Sequencer) { s.rng = rng }
}

// New creates an idle Sequencer over the given scenario store.
func New(store *scenario.Store, timing config.Timing, opts ...Option) *Sequencer {
	s := &Sequencer{
		store:  store,
		timing: timing,
		logger: applog.Nop(),
		tracer: otel.Tracer("sequencer"),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		index:  -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Bind("component", "sequencer")
	return s
}

// Start begins a run for the claim, cancelling any run already in flight.
// The claim's current status decides the path: claims already ready to
// approve complete every stage instantly, everything else walks the timer
// chain. Returns the new run id.
func (s *Sequencer) Start(claimID string, current claims.Status) string {
	s.mu.Lock()

	events := s.resetLocked()

	scn := s.store.Resolve(claimID)
	token := "run_" + uuid.NewString()[:8]
	s.token = token
	s.claimID = claimID
	s.index = -1
	s.startedAt = time.Now()
	s.fastPath = current == claims.StatusReadyToApprove

	_, s.span = s.tracer.Start(context.Background(), "pipeline.run",
		trace.WithAttributes(
			attribute.String("claim.id", claimID),
			attribute.Bool("run.fast_path", s.fastPath),
		))

	if s.fastPath {
		s.stages = scn.CloneStages(scenario.StageCompleted)
		s.index = len(s.stages) - 1
		s.running = false
		events = append(events,
			&commbus.RunStarted{RunID: token, ClaimID: claimID, FastPath: true},
			&commbus.RunCompleted{RunID: token, ClaimID: claimID, Status: RunCompleted, DurationMS: 0})
		observability.RecordPipelineRun(RunCompleted, 0)
		s.span.End()
		s.span = nil
		s.logger.Info("run_completed_fast_path", "run_id", token, "claim_id", claimID)
	} else {
		s.stages = scn.CloneStages(scenario.StageQueued)
		s.running = true
		events = append(events,
			&commbus.RunStarted{RunID: token, ClaimID: claimID, FastPath: false})
		s.logger.Info("run_started", "run_id", token, "claim_id", claimID)
	}
	fastPath := s.fastPath

	s.mu.Unlock()
	s.publish(events)

	// The first stage is armed only after RunStarted went out, so stage
	// events can never precede it. A Reset racing in between invalidates
	// the token and the callback no-ops.
	if !fastPath {
		s.mu.Lock()
		if s.token == token {
			s.pending = time.AfterFunc(s.timing.InitialDelay(), func() {
				s.beginStage(token, 0)
			})
		}
		s.mu.Unlock()
	}
	return token
}

// Reset cancels any run in flight and returns the sequencer to idle.
// Resetting an idle sequencer is a no-op.
func (s *Sequencer) Reset() {
	s.mu.Lock()
	events := s.resetLocked()
	s.mu.Unlock()
	s.publish(events)
}

// Snapshot returns a copy of the current state.
func (s *Sequencer) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	stages := make([]scenario.StageRecord, len(s.stages))
	copy(stages, s.stages)
	return Snapshot{
		RunID:    s.token,
		ClaimID:  s.claimID,
		Running:  s.running,
		FastPath: s.fastPath,
		Index:    s.index,
		Stages:   stages,
	}
}

// resetLocked tears down the current run. Caller holds s.mu. Returns events
// to publish after the lock is released.
func (s *Sequencer) resetLocked() []commbus.Message {
	var events []commbus.Message
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
	if s.running {
		events = append(events, &commbus.RunCompleted{
			RunID:      s.token,
			ClaimID:    s.claimID,
			Status:     RunCancelled,
			DurationMS: int(time.Since(s.startedAt).Milliseconds()),
		})
		observability.RecordPipelineRun(RunCancelled, int(time.Since(s.startedAt).Milliseconds()))
		s.logger.Info("run_cancelled", "run_id", s.token, "claim_id", s.claimID)
	}
	if s.span != nil {
		s.span.End()
		s.span = nil
	}
	s.token = ""
	s.claimID = ""
	s.fastPath = false
	s.stages = nil
	s.index = -1
	s.running = false
	return events
}

// beginStage flips stage i to running and schedules its completion. The
// token guard makes a callback from a cancelled run a silent no-op.
func (s *Sequencer) beginStage(token string, i int) {
	s.mu.Lock()
	if token != s.token || i >= len(s.stages) {
		s.mu.Unlock()
		return
	}
	s.stages[i].Status = scenario.StageRunning
	s.index = i
	s.stageAt = time.Now()
	stage := s.stages[i]

	if s.span != nil {
		s.span.AddEvent("stage.started", trace.WithAttributes(
			attribute.String("stage", string(stage.Kind)),
			attribute.Int("stage.index", i),
		))
	}
	observability.RecordStageTransition(string(stage.Kind), string(scenario.StageRunning))

	dwell := s.timing.DwellBase() + time.Duration(s.rng.Int63n(int64(s.timing.DwellJitter())+1))
	events := []commbus.Message{&commbus.StageStarted{
		RunID:      token,
		ClaimID:    s.claimID,
		StageKind:  string(stage.Kind),
		StageIndex: i,
		Summary:    stage.Summary,
	}}
	s.mu.Unlock()
	s.publish(events)

	// Completion is armed only after StageStarted went out, keeping the
	// event stream strictly ordered even at zero dwell.
	s.mu.Lock()
	if s.token == token {
		s.pending = time.AfterFunc(dwell, func() {
			s.completeStage(token, i)
		})
	}
	s.mu.Unlock()
}

// completeStage finishes stage i and chains the next stage, the run end, or
// a scripted failure halt.
func (s *Sequencer) completeStage(token string, i int) {
	s.mu.Lock()
	if token != s.token || i >= len(s.stages) {
		s.mu.Unlock()
		return
	}

	stage := &s.stages[i]
	dwellMS := int(time.Since(s.stageAt).Milliseconds())
	observability.RecordStageDwell(string(stage.Kind), dwellMS)

	var events []commbus.Message
	failed := stage.FailMessage != ""

	if failed {
		stage.Status = scenario.StageError
		stage.Summary = stage.FailMessage
	} else {
		stage.Status = scenario.StageCompleted
	}
	observability.RecordStageTransition(string(stage.Kind), string(stage.Status))

	ev := &commbus.StageCompleted{
		RunID:      token,
		ClaimID:    s.claimID,
		StageKind:  string(stage.Kind),
		StageIndex: i,
		Status:     string(stage.Status),
		Summary:    stage.Summary,
		Confidence: stage.Confidence,
		DurationMS: dwellMS,
	}
	if failed {
		msg := stage.FailMessage
		ev.Error = &msg
	}
	events = append(events, ev)

	if s.span != nil {
		s.span.AddEvent("stage.completed", trace.WithAttributes(
			attribute.String("stage", string(stage.Kind)),
			attribute.String("stage.status", string(stage.Status)),
		))
	}

	switch {
	case failed:
		s.running = false
		s.pending = nil
		runMS := int(time.Since(s.startedAt).Milliseconds())
		events = append(events, &commbus.RunCompleted{
			RunID: token, ClaimID: s.claimID, Status: RunErrored, DurationMS: runMS,
		})
		observability.RecordPipelineRun(RunErrored, runMS)
		if s.span != nil {
			s.span.End()
			s.span = nil
		}
		s.logger.Warn("run_errored",
			"run_id", token, "claim_id", s.claimID, "stage", string(stage.Kind))
	case i == len(s.stages)-1:
		s.running = false
		s.pending = nil
		runMS := int(time.Since(s.startedAt).Milliseconds())
		events = append(events, &commbus.RunCompleted{
			RunID: token, ClaimID: s.claimID, Status: RunCompleted, DurationMS: runMS,
		})
		observability.RecordPipelineRun(RunCompleted, runMS)
		if s.span != nil {
			s.span.End()
			s.span = nil
		}
		s.logger.Info("run_completed", "run_id", token, "claim_id", s.claimID, "duration_ms", runMS)
	}
	chainNext := !failed && i < len(s.stages)-1

	s.mu.Unlock()
	s.publish(events)

	if chainNext {
		s.mu.Lock()
		if s.token == token {
			s.pending = time.AfterFunc(s.timing.StagePause(), func() {
				s.beginStage(token, i+1)
			})
		}
		s.mu.Unlock()
	}
}

func (s *Sequencer) publish(events []commbus.Message) {
	if s.bus == nil {
		return
	}
	ctx := context.Background()
	for _, ev := range events {
		if err := s.bus.Publish(ctx, ev); err != nil {
			s.logger.Warn("event_publish_failed",
				"event_type", commbus.GetMessageType(ev), "error", err.Error())
		}
	}
}
