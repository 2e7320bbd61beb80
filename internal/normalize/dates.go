package normalize

import (
	"strings"
	"time"

	"formdcli/pkg/contracts/domain"
)

// filingDateLayouts covers the date string conventions observed across
// filing years, tried in order. Month names match case-insensitively, so
// "31-DEC-2025" parses under the "2-Jan-2006" layout.
var filingDateLayouts = []string{
	"2-Jan-2006",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"2-Jan-06",
}

// reconstructedDay is the mid-month day used for reconstructed dates
const reconstructedDay = 15

// ParseFilingDate parses a raw filing-date string under the mixed-format
// policy. When no layout matches, it falls back to reconstructing an
// approximate date from the batch period: the middle month of the quarter,
// day 15. The returned provenance tells the two apart so downstream
// consumers can weight confidence; a zero time with DateMissing is returned
// only when the period itself is malformed.
func ParseFilingDate(raw string, p domain.Period) (time.Time, domain.DateProvenance) {
	val := strings.TrimSpace(raw)
	if val != "" {
		for _, layout := range filingDateLayouts {
			if ts, err := time.Parse(layout, val); err == nil {
				return ts, domain.DateParsed
			}
		}
	}

	if !p.IsValid() {
		return time.Time{}, domain.DateMissing
	}
	reconstructed := time.Date(p.Year, time.Month(p.MidMonth()), reconstructedDay, 0, 0, 0, 0, time.UTC)
	return reconstructed, domain.DateReconstructed
}

// parseSaleDate parses an offering sale date, returning the zero time when
// the field is empty or unparseable. Sale dates get no period fallback; an
// unknown sale date stays unknown.
func parseSaleDate(raw string) time.Time {
	val := strings.TrimSpace(raw)
	if val == "" {
		return time.Time{}
	}
	for _, layout := range filingDateLayouts {
		if ts, err := time.Parse(layout, val); err == nil {
			return ts
		}
	}
	return time.Time{}
}

// quarterOf returns the calendar quarter (1-4) of a month
func quarterOf(month time.Month) int {
	return (int(month)-1)/3 + 1
}
