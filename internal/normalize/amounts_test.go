package normalize

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formdcli/internal/config"
)

func testParser() AmountParser {
	return NewAmountParser(config.DefaultMappings().IndefiniteValues)
}

func TestFilterableSentinelsMapToInfinity(t *testing.T) {
	p := testParser()

	for _, raw := range []string{"Indefinite", "INDEFINITE", "indefinite", "Unlimited", "UNLIMITED", "", "  "} {
		t.Run("sentinel_"+raw, func(t *testing.T) {
			assert.True(t, math.IsInf(p.Filterable(raw), 1), "filterable %q should be +Inf", raw)
			assert.True(t, math.IsNaN(p.Arithmetic(raw)), "arithmetic %q should be missing", raw)
		})
	}
}

func TestBothModesAgreeOnNumericStrings(t *testing.T) {
	p := testParser()

	tests := []struct {
		raw      string
		expected float64
	}{
		{"1000000", 1_000_000},
		{"1,000,000", 1_000_000},
		{"2,500,000.50", 2_500_000.50},
		{" 750000 ", 750_000},
		{"0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, p.Filterable(tt.raw))
			assert.Equal(t, tt.expected, p.Arithmetic(tt.raw))
		})
	}
}

func TestJunkParsesToMissingNeverPanics(t *testing.T) {
	p := testParser()

	for _, raw := range []string{"N/A", "abc", "$5,000,000", "1.2.3"} {
		assert.True(t, math.IsNaN(p.Filterable(raw)), "filterable %q", raw)
		assert.True(t, math.IsNaN(p.Arithmetic(raw)), "arithmetic %q", raw)
	}
}

func TestCategorizeDealSizeBoundariesAreLowerInclusive(t *testing.T) {
	buckets := config.DefaultMappings().DealSizeBuckets

	tests := []struct {
		amount   float64
		expected string
	}{
		{0, "Micro (<$1M)"},
		{999_999.99, "Micro (<$1M)"},
		// Exact boundary belongs to the bucket whose lower bound equals it
		{1_000_000, "Seed ($1-5M)"},
		{5_000_000, "Series A ($5-10M)"},
		{10_000_000, "Series B ($10-25M)"},
		{25_000_000, "Series C ($25-50M)"},
		{50_000_000, "Growth ($50-100M)"},
		{100_000_000, "Large ($100M+)"},
		{5_000_000_000, "Large ($100M+)"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, CategorizeDealSize(tt.amount, buckets), "amount %.2f", tt.amount)
	}
}

func TestCategorizeDealSizeInfinityIsUnknownNotTopBucket(t *testing.T) {
	buckets := config.DefaultMappings().DealSizeBuckets

	// +Inf would satisfy the unbounded top bucket's naive range check; it
	// must still land in Unknown.
	assert.Equal(t, UnknownDealSize, CategorizeDealSize(math.Inf(1), buckets))
	assert.Equal(t, UnknownDealSize, CategorizeDealSize(math.NaN(), buckets))
	assert.Equal(t, UnknownDealSize, CategorizeDealSize(-1, buckets))
}

func TestIndefiniteStringBucketsAsUnknown(t *testing.T) {
	p := testParser()
	buckets := config.DefaultMappings().DealSizeBuckets

	amount := p.Filterable("Indefinite")
	require.True(t, math.IsInf(amount, 1))
	assert.Equal(t, UnknownDealSize, CategorizeDealSize(amount, buckets))
}
