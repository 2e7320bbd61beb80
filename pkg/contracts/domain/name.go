package domain

import "strings"

// NormalizeEntityName trims and upper-cases an entity name for exact-match
// comparison. Follow-on detection and target dedup both key on this form, so
// any change here shifts repeat-filing counts.
func NormalizeEntityName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
