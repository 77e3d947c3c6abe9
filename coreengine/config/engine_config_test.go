package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultEngineConfig(t *testing.T) {
	cfg := DefaultEngineConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 1000, cfg.Timing.InitialDelayMS)
	assert.Equal(t, 2000, cfg.Timing.DwellBaseMS)
	assert.Equal(t, 1000, cfg.Timing.DwellJitterMS)
	assert.Equal(t, 500, cfg.Timing.StagePauseMS)
	assert.Equal(t, 500000, cfg.CoverageCapRupees)
	assert.True(t, cfg.SeedClaims)
}

func TestTimingDurations(t *testing.T) {
	tm := Timing{InitialDelayMS: 1000, DwellBaseMS: 2000, DwellJitterMS: 1000, StagePauseMS: 500}
	assert.Equal(t, time.Second, tm.InitialDelay())
	assert.Equal(t, 2*time.Second, tm.DwellBase())
	assert.Equal(t, time.Second, tm.DwellJitter())
	assert.Equal(t, 500*time.Millisecond, tm.StagePause())
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := DefaultEngineConfig()
	cfg.Timing.DwellBaseMS = -1
	assert.Error(t, cfg.Validate())

	cfg = DefaultEngineConfig()
	cfg.FraudReviewThreshold = 1.5
	assert.Error(t, cfg.Validate())

	cfg = DefaultEngineConfig()
	cfg.CoverageCapRupees = -1
	assert.Error(t, cfg.Validate())
}

func TestLoadFileMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
timing:
  dwell_base_ms: 10
coverage_cap_rupees: 750000
log_level: debug
`), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Timing.DwellBaseMS)
	assert.Equal(t, 750000, cfg.CoverageCapRupees)
	assert.Equal(t, "debug", cfg.LogLevel)
	// Untouched fields keep their defaults.
	assert.Equal(t, 500, cfg.Timing.StagePauseMS)
	assert.True(t, cfg.SeedClaims)
}

func TestLoadFileRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fraud_review_threshold: 2.0\n"), 0o644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestGlobalAccessor(t *testing.T) {
	defer Reset()

	custom := DefaultEngineConfig()
	custom.CoverageCapRupees = 123456
	Set(custom)
	assert.Equal(t, 123456, Get().CoverageCapRupees)

	Set(nil) // ignored
	assert.Equal(t, 123456, Get().CoverageCapRupees)

	Reset()
	assert.Equal(t, 500000, Get().CoverageCapRupees)
}
