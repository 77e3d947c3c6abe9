// Package config provides engine configuration for the claims review core.
//
// This module contains ONLY configuration relevant to pipeline replay and
// decision thresholds:
//   - Stage timing (dwell, jitter, pauses)
//   - Review thresholds
//   - Policy amounts
//
// Presentation concerns (themes, layout) do not belong here.
package config

import (
	"fmt"
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Timing controls how the sequencer paces a pipeline run.
//
// All values are milliseconds so they round-trip through YAML and JSON as
// plain integers.
type Timing struct {
	// InitialDelayMS precedes the very first stage transition so a fresh
	// workspace does not flash straight into a running stage.
	InitialDelayMS int `json:"initial_delay_ms" yaml:"initial_delay_ms"`

	// DwellBaseMS is the minimum time a stage spends running.
	DwellBaseMS int `json:"dwell_base_ms" yaml:"dwell_base_ms"`

	// DwellJitterMS is the upper bound of the random addition to DwellBaseMS.
	DwellJitterMS int `json:"dwell_jitter_ms" yaml:"dwell_jitter_ms"`

	// StagePauseMS separates a stage completing from the next stage starting.
	StagePauseMS int `json:"stage_pause_ms" yaml:"stage_pause_ms"`
}

// InitialDelay returns the pre-start delay as a duration.
func (t Timing) InitialDelay() time.Duration { return time.Duration(t.InitialDelayMS) * time.Millisecond }

// DwellBase returns the base dwell as a duration.
func (t Timing) DwellBase() time.Duration { return time.Duration(t.DwellBaseMS) * time.Millisecond }

// DwellJitter returns the dwell jitter bound as a duration.
func (t Timing) DwellJitter() time.Duration { return time.Duration(t.DwellJitterMS) * time.Millisecond }

// StagePause returns the inter-stage pause as a duration.
func (t Timing) StagePause() time.Duration { return time.Duration(t.StagePauseMS) * time.Millisecond }

// EngineConfig holds engine configuration.
//
// Infrastructure endpoints (metrics address, trace collector) are wiring
// decisions made by the binary, not by the engine.
type EngineConfig struct {
	// Stage Timing
	Timing Timing `json:"timing" yaml:"timing"`

	// Review Thresholds
	FraudReviewThreshold    float64 `json:"fraud_review_threshold" yaml:"fraud_review_threshold"`       // SIU review above this risk score
	HighConfidenceThreshold float64 `json:"high_confidence_threshold" yaml:"high_confidence_threshold"` // fast-track above this

	// Policy Amounts (rupees)
	CoverageCapRupees int `json:"coverage_cap_rupees" yaml:"coverage_cap_rupees"` // approved amount may not exceed this
	DeductibleRupees  int `json:"deductible_rupees" yaml:"deductible_rupees"`

	// Startup Behavior
	SeedClaims bool `json:"seed_claims" yaml:"seed_claims"` // populate the repository with synthetic claims

	// Logging
	LogLevel string `json:"log_level" yaml:"log_level"`
}

// DefaultEngineConfig returns an EngineConfig with default values.
//
// The timing defaults reproduce the authored pacing: 2-3s dwell per stage,
// a 500ms inter-stage pause and a 1s pre-start delay.
func DefaultEngineConfig() *EngineConfig {
	return &EngineConfig{
		Timing: Timing{
			InitialDelayMS: 1000,
			DwellBaseMS:    2000,
			DwellJitterMS:  1000,
			StagePauseMS:   500,
		},
		FraudReviewThreshold:    0.5,
		HighConfidenceThreshold: 0.9,
		CoverageCapRupees:       500000,
		DeductibleRupees:        5000,
		SeedClaims:              true,
		LogLevel:                "info",
	}
}

// Validate checks the configuration for values the engine cannot run with.
func (c *EngineConfig) Validate() error {
	if c.Timing.InitialDelayMS < 0 || c.Timing.DwellBaseMS < 0 ||
		c.Timing.DwellJitterMS < 0 || c.Timing.StagePauseMS < 0 {
		return fmt.Errorf("timing values must be non-negative")
	}
	if c.FraudReviewThreshold < 0 || c.FraudReviewThreshold > 1 {
		return fmt.Errorf("fraud_review_threshold must be in [0,1], got %v", c.FraudReviewThreshold)
	}
	if c.HighConfidenceThreshold < 0 || c.HighConfidenceThreshold > 1 {
		return fmt.Errorf("high_confidence_threshold must be in [0,1], got %v", c.HighConfidenceThreshold)
	}
	if c.CoverageCapRupees < 0 {
		return fmt.Errorf("coverage_cap_rupees must be non-negative")
	}
	if c.DeductibleRupees < 0 {
		return fmt.Errorf("deductible_rupees must be non-negative")
	}
	return nil
}

// LoadFile reads an EngineConfig from a YAML file. Fields absent from the
// file keep their defaults.
func LoadFile(path string) (*EngineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := DefaultEngineConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// =============================================================================
// Global Accessor
// =============================================================================

var (
	globalMu     sync.RWMutex
	globalConfig = DefaultEngineConfig()
)

// Get returns the global engine configuration.
func Get() *EngineConfig {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalConfig
}

// Set replaces the global engine configuration. Intended for bootstrap and
// tests; nil is ignored.
func Set(cfg *EngineConfig) {
	if cfg == nil {
		return
	}
	globalMu.Lock()
	defer globalMu.Unlock()
	globalConfig = cfg
}

// Reset restores the global configuration to defaults.
func Reset() {
	Set(DefaultEngineConfig())
}
