package config

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMappingsValid(t *testing.T) {
	m := DefaultMappings()
	require.NoError(t, m.Validate())

	assert.Equal(t, "West Coast", m.StateRegion["CA"])
	assert.Equal(t, "Enterprise Software", m.IndustrySector["Computer Software"])
	assert.Equal(t, "Data & Analytics", m.SICSector["7374"])
	assert.True(t, math.IsInf(m.DealSizeBuckets[len(m.DealSizeBuckets)-1].Upper, 1))
}

func TestMappingsRejectInvertedBucket(t *testing.T) {
	m := DefaultMappings()
	m.DealSizeBuckets[0].Lower = 2_000_000

	err := m.Validate()
	require.Error(t, err)
}

func TestMappingsBucketsAreContiguousHalfOpen(t *testing.T) {
	m := DefaultMappings()
	for i := 1; i < len(m.DealSizeBuckets); i++ {
		assert.Equal(t, m.DealSizeBuckets[i-1].Upper, m.DealSizeBuckets[i].Lower,
			"bucket %q should start where %q ends", m.DealSizeBuckets[i].Name, m.DealSizeBuckets[i-1].Name)
	}
}

func TestConfigValidation(t *testing.T) {
	cfg := Config{
		Logging:  LoggingConfig{Level: "info", Format: "json"},
		Pipeline: PipelineConfig{MaxConcurrency: 4},
	}
	require.NoError(t, cfg.validate())

	cfg.Logging.Level = "verbose"
	require.Error(t, cfg.validate())
}
