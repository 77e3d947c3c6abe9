// Message definitions for the claims review bus, organized by domain:
// pipeline run lifecycle, claim mutations, and engine queries.
package commbus

// MessageCategory represents message routing categories.
type MessageCategory string

const (
	// MessageCategoryEvent is fire-and-forget fan-out to all subscribers.
	MessageCategoryEvent MessageCategory = "event"
	// MessageCategoryQuery is request-response with a single handler.
	MessageCategoryQuery MessageCategory = "query"
	// MessageCategoryCommand is fire-and-forget with a single handler.
	MessageCategoryCommand MessageCategory = "command"
)

// HealthStatus represents canonical health status values.
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusDegraded  HealthStatus = "degraded"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// =============================================================================
// PIPELINE RUN EVENTS
// =============================================================================

// RunStarted is emitted when the sequencer begins a pipeline run.
// Subscribers: activity feed, telemetry.
type RunStarted struct {
	RunID     string `json:"run_id"`
	ClaimID   string `json:"claim_id"`
	FastPath  bool   `json:"fast_path"` // finalized claim, simulation skipped
	StageKind string `json:"stage_kind,omitempty"`
}

// Category implements the Message interface.
func (m *RunStarted) Category() string { return string(MessageCategoryEvent) }

// StageStarted is emitted when a stage enters the running state.
type StageStarted struct {
	RunID      string `json:"run_id"`
	ClaimID    string `json:"claim_id"`
	StageKind  string `json:"stage_kind"`
	StageIndex int    `json:"stage_index"`
	Summary    string `json:"summary"`
}

// Category implements the Message interface.
func (m *StageStarted) Category() string { return string(MessageCategoryEvent) }

// StageCompleted is emitted when a stage finishes (completed or error).
type StageCompleted struct {
	RunID      string   `json:"run_id"`
	ClaimID    string   `json:"claim_id"`
	StageKind  string   `json:"stage_kind"`
	StageIndex int      `json:"stage_index"`
	Status     string   `json:"status"` // "completed" or "error"
	Summary    string   `json:"summary"`
	Confidence *float64 `json:"confidence,omitempty"`
	DurationMS int      `json:"duration_ms"`
	Error      *string  `json:"error,omitempty"`
}

// Category implements the Message interface.
func (m *StageCompleted) Category() string { return string(MessageCategoryEvent) }

// RunCompleted is emitted when a run finishes, whether by reaching the last
// stage, by fast path, or by a scripted stage failure.
type RunCompleted struct {
	RunID      string `json:"run_id"`
	ClaimID    string `json:"claim_id"`
	Status     string `json:"status"` // "completed", "cancelled" or "error"
	DurationMS int    `json:"duration_ms"`
}

// Category implements the Message interface.
func (m *RunCompleted) Category() string { return string(MessageCategoryEvent) }

// =============================================================================
// CLAIM EVENTS
// =============================================================================

// ClaimCreated is emitted after a claim is added to the repository.
type ClaimCreated struct {
	ClaimID string `json:"claim_id"`
	Status  string `json:"status"`
	Source  string `json:"source"` // "form", "import", "seed"
}

// Category implements the Message interface.
func (m *ClaimCreated) Category() string { return string(MessageCategoryEvent) }

// ClaimUpdated is emitted after a claim mutation (approve, settle, close,
// field edit).
type ClaimUpdated struct {
	ClaimID   string `json:"claim_id"`
	NewStatus string `json:"new_status"`
	Action    string `json:"action"` // "approve", "settle", "close", "edit"
}

// Category implements the Message interface.
func (m *ClaimUpdated) Category() string { return string(MessageCategoryEvent) }

// ClaimRemoved is emitted after a claim is deleted.
type ClaimRemoved struct {
	ClaimID string `json:"claim_id"`
}

// Category implements the Message interface.
func (m *ClaimRemoved) Category() string { return string(MessageCategoryEvent) }

// =============================================================================
// QUERIES
// =============================================================================

// GetClaim asks the repository owner for a claim record by id.
// Response: the claim record, or nil if unknown.
type GetClaim struct {
	ClaimID string `json:"claim_id"`
}

// Category implements the Message interface.
func (m *GetClaim) Category() string { return string(MessageCategoryQuery) }

// IsQuery implements the Query interface.
func (m *GetClaim) IsQuery() {}

// GetRunSnapshot asks the sequencer owner for the current run snapshot.
// Response: the snapshot value.
type GetRunSnapshot struct{}

// Category implements the Message interface.
func (m *GetRunSnapshot) Category() string { return string(MessageCategoryQuery) }

// IsQuery implements the Query interface.
func (m *GetRunSnapshot) IsQuery() {}

// HealthCheckRequest asks a component for its health.
// Response: HealthCheckResponse.
type HealthCheckRequest struct {
	Component string `json:"component"`
}

// Category implements the Message interface.
func (m *HealthCheckRequest) Category() string { return string(MessageCategoryQuery) }

// IsQuery implements the Query interface.
func (m *HealthCheckRequest) IsQuery() {}

// HealthCheckResponse is the reply to a HealthCheckRequest.
type HealthCheckResponse struct {
	Component string       `json:"component"`
	Status    HealthStatus `json:"status"`
	Detail    string       `json:"detail,omitempty"`
}
