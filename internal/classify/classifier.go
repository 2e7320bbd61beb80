package classify

import (
	"context"
	"log/slog"
	"strings"

	"formdcli/internal/config"
	"formdcli/pkg/contracts/domain"
)

// DefaultSubcategory is assigned when a record matches the thesis but no
// sub-category pattern group fires.
const DefaultSubcategory = "General Tech/SaaS"

// Classification holds the signal flags and sub-category for one record.
// Subcategory is empty unless IsMatch is set.
type Classification struct {
	HasAISignal     bool   `json:"has_ai_signal"`
	HasSaaSSignal   bool   `json:"has_saas_signal"`
	HasTechIndustry bool   `json:"has_tech_industry"`
	IsMatch         bool   `json:"is_match"`
	Subcategory     string `json:"subcategory"`
}

// Classifier evaluates thesis signals against entity names and industry
// taxonomy. It is stateless after construction and safe for concurrent use.
type Classifier struct {
	thesis config.Thesis
	logger *slog.Logger
}

// NewClassifier creates a classifier for the given thesis
func NewClassifier(thesis config.Thesis, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{thesis: thesis, logger: logger}
}

// Classify evaluates one record. Funds never classify regardless of name
// or industry signals.
func (c *Classifier) Classify(rec domain.AnalyticalRecord) Classification {
	if rec.IsFund {
		return Classification{}
	}

	name := strings.ToUpper(rec.EntityName)

	cls := Classification{
		HasAISignal:     c.hasAISignal(name),
		HasSaaSSignal:   containsAny(name, c.thesis.SaaSKeywords),
		HasTechIndustry: containsExact(rec.IndustryGroup, c.thesis.TechIndustryTypes),
	}
	cls.IsMatch = cls.HasAISignal || cls.HasSaaSSignal || cls.HasTechIndustry
	if cls.IsMatch {
		cls.Subcategory = c.subcategory(name)
	}
	return cls
}

// ClassifyAll classifies every record and logs the signal distribution
func (c *Classifier) ClassifyAll(ctx context.Context, records []domain.AnalyticalRecord) []Classification {
	results := make([]Classification, len(records))
	matches, aiHits, subcategories := 0, 0, make(map[string]int)
	for i, rec := range records {
		results[i] = c.Classify(rec)
		if results[i].IsMatch {
			matches++
			subcategories[results[i].Subcategory]++
		}
		if results[i].HasAISignal {
			aiHits++
		}
	}

	c.logger.InfoContext(ctx, "classified records",
		"records", len(records),
		"thesis_matches", matches,
		"ai_signals", aiHits,
		"subcategories", len(subcategories),
	)
	for sub, count := range subcategories {
		c.logger.DebugContext(ctx, "subcategory distribution", "subcategory", sub, "count", count)
	}
	return results
}

// hasAISignal combines the multi-word keyword family with the standalone
// "AI" acronym match. The denylist suppresses only the acronym signal: a
// name like "CHAIRWORKS AI LABS" still matches through the keyword family
// if it carries one, but a bare "CHAIRWORKS INC" never matches on the "AI"
// inside "CHAIR".
func (c *Classifier) hasAISignal(upperName string) bool {
	if containsAny(upperName, c.thesis.AIKeywords) {
		return true
	}
	if !hasStandaloneToken(upperName, "AI") {
		return false
	}
	return !containsAny(upperName, c.thesis.AcronymDenylist)
}

// subcategory returns the first sub-category whose pattern group matches.
// Rule order is part of the thesis contract, so evaluation never reorders.
func (c *Classifier) subcategory(upperName string) string {
	for _, rule := range c.thesis.Subcategories {
		if containsAny(upperName, rule.Patterns) {
			return rule.Name
		}
	}
	return DefaultSubcategory
}

// hasStandaloneToken reports whether token occurs in s bounded by non-letter
// characters on both sides.
func hasStandaloneToken(s, token string) bool {
	for start := 0; ; {
		idx := strings.Index(s[start:], token)
		if idx < 0 {
			return false
		}
		idx += start
		end := idx + len(token)
		before := idx == 0 || !isLetter(s[idx-1])
		after := end == len(s) || !isLetter(s[end])
		if before && after {
			return true
		}
		start = idx + 1
	}
}

func isLetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func containsExact(s string, values []string) bool {
	for _, v := range values {
		if s == v {
			return true
		}
	}
	return false
}
