package normalize

import "strings"

// InternationalRegion is the fallback region for state codes not present in
// the state-to-region table (foreign country codes share the field).
const InternationalRegion = "International"

// OtherSector is the fallback sector for industries that resolve nowhere
const OtherSector = "Other"

// NormalizeState trims and upper-cases a state or country code
func NormalizeState(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// RegionFor maps a normalized state code to its region. Codes outside the
// known table map to "International"; membership in the table doubles as the
// US-entity test.
func RegionFor(state string, stateRegion map[string]string) (region string, isUS bool) {
	if r, ok := stateRegion[state]; ok {
		return r, true
	}
	return InternationalRegion, false
}

// SectorFor standardizes a raw industry group string into a sector through
// the two-tier lookup: the primary industry table first, then, when that
// misses or lands on the generic "Other" sector, a second chance through the
// SIC code table, before defaulting to "Other".
func SectorFor(industry, sicCode string, industrySector, sicSector map[string]string) string {
	sector, ok := industrySector[industry]
	if ok && sector != OtherSector {
		return sector
	}

	if sicCode != "" {
		if s, ok := sicSector[sicCode]; ok {
			return s
		}
	}

	if ok {
		return sector
	}
	return OtherSector
}

// ParseBoolLiteral reports whether a field holds the exact affirmative
// literal. Source booleans are encoded as case-sensitive "true"/"false"
// strings; only the exact lowercase "true" counts, everything else
// (including missing) is false. This exact-match policy governs downstream
// signal flags and must not be loosened to case-insensitive matching.
func ParseBoolLiteral(raw string) bool {
	return raw == "true"
}

// containsFold reports whether s contains substr, ignoring case
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
