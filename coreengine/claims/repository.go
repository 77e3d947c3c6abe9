package claims

import (
	"fmt"
	"sync"

	"github.com/geekyharshvinfo-lgtm/agentic-claims/coreengine/applog"
)

// Repository is the in-memory claim collection, ordered newest-first.
//
// The repository is the single owner of the working set: views never mutate
// claims directly, they go through Add/Update/Remove. List and Get return
// copies, so callers always hold snapshots, never live handles.
//
// Thread-safe. The conceptual model is a single logical writer, but event
// fan-out runs handlers on goroutines, so access is mutex-guarded.
type Repository struct {
	mu     sync.RWMutex
	claims []Claim
	index  map[string]int // id -> position in claims
	logger applog.Logger
}

// NewRepository creates an empty Repository.
func NewRepository(logger applog.Logger) *Repository {
	if logger == nil {
		logger = applog.Nop()
	}
	return &Repository{
		claims: make([]Claim, 0),
		index:  make(map[string]int),
		logger: logger.Bind("component", "claims_repository"),
	}
}

// Add inserts a claim at the front of the collection (newest-first).
// Duplicate identifiers are rejected with ErrDuplicateID.
func (r *Repository) Add(c Claim) error {
	if err := c.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.index[c.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateID, c.ID)
	}

	r.claims = append([]Claim{c}, r.claims...)
	r.reindexLocked()
	r.logger.Debug("claim_added", "claim_id", c.ID, "status", string(c.Status))
	return nil
}

// Patch is a partial claim update. Nil fields are left untouched.
type Patch struct {
	ClaimantName    *string
	Status          *Status
	Vehicle         *string
	FNOLDate        *string
	SLARisk         *SLARisk
	EstimatedAmount *string
	ApprovedAmount  *int
	DisbursedAmount *int
}

// Update merges the patch into the matching claim. Returns false (no-op) if
// the id is unknown. The merged claim must still satisfy Validate; an
// invalid merge is rejected and the stored claim is unchanged.
func (r *Repository) Update(id string, p Patch) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pos, ok := r.index[id]
	if !ok {
		return false, nil
	}

	merged := r.claims[pos]
	if p.ClaimantName != nil {
		merged.ClaimantName = *p.ClaimantName
	}
	if p.Status != nil {
		merged.Status = *p.Status
	}
	if p.Vehicle != nil {
		merged.Vehicle = *p.Vehicle
	}
	if p.FNOLDate != nil {
		merged.FNOLDate = *p.FNOLDate
	}
	if p.SLARisk != nil {
		merged.SLARisk = *p.SLARisk
	}
	if p.EstimatedAmount != nil {
		merged.EstimatedAmount = *p.EstimatedAmount
	}
	if p.ApprovedAmount != nil {
		merged.ApprovedAmount = *p.ApprovedAmount
	}
	if p.DisbursedAmount != nil {
		merged.DisbursedAmount = *p.DisbursedAmount
	}

	if err := merged.Validate(); err != nil {
		return false, err
	}

	r.claims[pos] = merged
	r.logger.Debug("claim_updated", "claim_id", id, "status", string(merged.Status))
	return true, nil
}

// Remove deletes the matching claim. No-op (false) if the id is unknown.
func (r *Repository) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	pos, ok := r.index[id]
	if !ok {
		return false
	}

	r.claims = append(r.claims[:pos], r.claims[pos+1:]...)
	r.reindexLocked()
	r.logger.Debug("claim_removed", "claim_id", id)
	return true
}

// Get returns a copy of the matching claim.
func (r *Repository) Get(id string) (Claim, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pos, ok := r.index[id]
	if !ok {
		return Claim{}, false
	}
	return r.claims[pos], true
}

// List returns a snapshot of the full ordered collection, newest-first.
func (r *Repository) List() []Claim {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Claim, len(r.claims))
	copy(out, r.claims)
	return out
}

// Len returns the number of claims held.
func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.claims)
}

// reindexLocked rebuilds the id index. Callers hold the write lock.
func (r *Repository) reindexLocked() {
	r.index = make(map[string]int, len(r.claims))
	for i, c := range r.claims {
		r.index[c.ID] = i
	}
}
