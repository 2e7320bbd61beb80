package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"formdcli/internal/config"
)

func TestRegionForKnownAndUnknownStates(t *testing.T) {
	table := config.DefaultMappings().StateRegion

	region, isUS := RegionFor("CA", table)
	assert.Equal(t, "West Coast", region)
	assert.True(t, isUS)

	region, isUS = RegionFor("TX", table)
	assert.Equal(t, "Southwest", region)
	assert.True(t, isUS)

	// Foreign country codes share the field and fall back to International
	region, isUS = RegionFor("X0", table)
	assert.Equal(t, InternationalRegion, region)
	assert.False(t, isUS)
}

func TestNormalizeState(t *testing.T) {
	assert.Equal(t, "CA", NormalizeState(" ca "))
	assert.Equal(t, "NY", NormalizeState("ny"))
	assert.Equal(t, "", NormalizeState("  "))
}

func TestSectorForTwoTierLookup(t *testing.T) {
	m := config.DefaultMappings()

	tests := []struct {
		name     string
		industry string
		sic      string
		expected string
	}{
		{"primary hit", "Computer Software", "", "Enterprise Software"},
		{"primary hit ignores sic", "Biotechnology", "7372", "Biotech"},
		{"primary Other retried via sic", "Other", "7374", "Data & Analytics"},
		{"primary miss retried via sic", "Novel Industry", "6022", "Fintech"},
		{"primary Other, sic miss stays Other", "Other", "9999", "Other"},
		{"primary miss, no sic", "Novel Industry", "", "Other"},
		{"pooled fund maps to investment fund sector", "Pooled Investment Fund", "", "Investment Fund"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SectorFor(tt.industry, tt.sic, m.IndustrySector, m.SICSector))
		})
	}
}

func TestParseBoolLiteralIsExactMatch(t *testing.T) {
	assert.True(t, ParseBoolLiteral("true"))

	// Only the exact lowercase literal counts; this governs downstream
	// signal flags and is deliberately not case-insensitive.
	for _, raw := range []string{"True", "TRUE", "true ", " true", "1", "yes", "false", ""} {
		assert.False(t, ParseBoolLiteral(raw), "raw %q", raw)
	}
}
