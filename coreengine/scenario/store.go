package scenario

import (
	"fmt"
	"sort"

	"github.com/geekyharshvinfo-lgtm/agentic-claims/coreengine/applog"
)

// Store is the read-only scenario lookup table. It is content authored ahead
// of time; there are no mutation operations.
type Store struct {
	scenarios map[string]*Scenario
	fallback  *Scenario
	logger    applog.Logger

	// onFallback, when set, is invoked for every lookup that substituted
	// the fallback scenario. Used for metrics.
	onFallback func(claimID string)

	extra []*Scenario
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithFallbackHook registers a callback fired on every fallback substitution.
func WithFallbackHook(fn func(claimID string)) StoreOption {
	return func(s *Store) { s.onFallback = fn }
}

// WithExtraScenarios registers additional scenarios alongside the authored
// content. They are validated like authored ones and may not reuse an
// authored claim id.
func WithExtraScenarios(scenarios ...*Scenario) StoreOption {
	return func(s *Store) { s.extra = append(s.extra, scenarios...) }
}

// NewStore builds the store from the authored content table, validating
// every scenario. The fallback is the DefaultClaimID scenario.
func NewStore(logger applog.Logger, opts ...StoreOption) (*Store, error) {
	if logger == nil {
		logger = applog.Nop()
	}

	s := &Store{
		scenarios: make(map[string]*Scenario),
		logger:    logger.Bind("component", "scenario_store"),
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, sc := range append(authoredScenarios(), s.extra...) {
		if err := sc.Validate(); err != nil {
			return nil, fmt.Errorf("authored scenario invalid: %w", err)
		}
		if _, dup := s.scenarios[sc.ClaimID]; dup {
			return nil, fmt.Errorf("duplicate authored scenario for %s", sc.ClaimID)
		}
		s.scenarios[sc.ClaimID] = sc
	}

	fb, ok := s.scenarios[DefaultClaimID]
	if !ok {
		return nil, fmt.Errorf("fallback scenario %s missing from authored content", DefaultClaimID)
	}
	s.fallback = fb

	return s, nil
}

// Resolve returns the scenario for the claim id, or the designated fallback
// when no exact match exists. The substitution is deliberate policy: an
// unrecognized claim replays the default investigation rather than erroring.
func (s *Store) Resolve(claimID string) *Scenario {
	if sc, ok := s.scenarios[claimID]; ok {
		return sc
	}
	s.logger.Warn("scenario_fallback", "claim_id", claimID, "fallback", s.fallback.ClaimID)
	if s.onFallback != nil {
		s.onFallback(claimID)
	}
	return s.fallback
}

// Has reports whether an exact scenario exists for the claim id.
func (s *Store) Has(claimID string) bool {
	_, ok := s.scenarios[claimID]
	return ok
}

// Fallback returns the designated default scenario.
func (s *Store) Fallback() *Scenario {
	return s.fallback
}

// IDs returns the claim identifiers with authored scenarios, sorted.
func (s *Store) IDs() []string {
	out := make([]string, 0, len(s.scenarios))
	for id := range s.scenarios {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
