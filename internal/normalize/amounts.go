package normalize

import (
	"math"
	"strconv"
	"strings"

	"formdcli/internal/config"
)

// AmountParser parses dollar-amount fields that may contain a numeric string,
// an "Indefinite"/"Unlimited" sentinel, or nothing at all. Two modes exist
// because the sentinel means different things at different use sites:
//
//   - Filterable: sentinel parses to +Inf so an uncapped raise compares as
//     larger than any finite deal in range checks and bucketing.
//   - Arithmetic: sentinel parses to missing (NaN) so sums, means, and
//     ratios are never corrupted by an infinity.
//
// Both modes agree on valid numeric strings, including thousands separators.
type AmountParser struct {
	sentinels map[string]bool
}

// NewAmountParser builds a parser from the configured sentinel token list.
// Tokens are matched against the trimmed, upper-cased field value.
func NewAmountParser(tokens []string) AmountParser {
	sentinels := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		sentinels[strings.ToUpper(strings.TrimSpace(tok))] = true
	}
	return AmountParser{sentinels: sentinels}
}

// Filterable parses an amount with sentinels mapping to +Inf.
// Non-numeric, non-sentinel values parse to NaN, never an error.
func (p AmountParser) Filterable(raw string) float64 {
	val := strings.ToUpper(strings.TrimSpace(raw))
	if p.sentinels[val] {
		return math.Inf(1)
	}
	if f, ok := parseNumeric(val); ok {
		return f
	}
	return math.NaN()
}

// Arithmetic parses an amount with sentinels mapping to NaN (missing)
func (p AmountParser) Arithmetic(raw string) float64 {
	val := strings.ToUpper(strings.TrimSpace(raw))
	if p.sentinels[val] {
		return math.NaN()
	}
	if f, ok := parseNumeric(val); ok {
		return f
	}
	return math.NaN()
}

// parseNumeric parses a numeric string, accepting thousands separators
func parseNumeric(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// parseFloatOrZero parses a plain numeric field, defaulting missing or
// malformed values to zero. Used for counts and compensation fields where
// the analysis treats absence as zero.
func parseFloatOrZero(raw string) float64 {
	if f, ok := parseNumeric(strings.TrimSpace(raw)); ok {
		return f
	}
	return 0
}

// parseIntOrZero is parseFloatOrZero truncated to an int
func parseIntOrZero(raw string) int {
	return int(parseFloatOrZero(raw))
}

// UnknownDealSize is the bucket for amounts that cannot be placed in any
// ordinary range: missing, infinite, or outside every configured bucket.
const UnknownDealSize = "Unknown"

// CategorizeDealSize maps a filterable-mode amount onto the configured
// half-open buckets. An infinite amount is deliberately excluded from the
// ordinary buckets even though the unbounded top bucket's range check would
// otherwise match it.
func CategorizeDealSize(amount float64, buckets []config.DealSizeBucket) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return UnknownDealSize
	}
	for _, b := range buckets {
		if amount >= b.Lower && amount < b.Upper {
			return b.Name
		}
	}
	return UnknownDealSize
}
