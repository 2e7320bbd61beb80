package scoring

import (
	"context"
	"fmt"
	"sort"

	"formdcli/internal/classify"
	"formdcli/pkg/contracts/domain"
)

// ScoredTarget is one ranked output row: the joined record, its
// classification, its score breakdown, and its final rank.
type ScoredTarget struct {
	domain.AnalyticalRecord
	Classification classify.Classification `json:"classification"`
	Score          Score                   `json:"score"`
	Rank           int                     `json:"rank"`
}

// UniverseEntry is one row of the full-universe listing: the latest filing
// per entity with its classification, unranked and unfiltered by score.
type UniverseEntry struct {
	domain.AnalyticalRecord
	Classification classify.Classification `json:"classification"`
}

// GenerateTargets produces the ranked target list. Candidates are thesis
// matches (funds never match) filed at or after the recent year floor; when
// that pool is empty the floor widens to the fallback year. Candidates are
// scored, sorted descending by total, deduplicated by normalized entity name
// keeping the first (highest) row, filtered to the minimum score, and
// truncated to the configured cap.
func (e *Engine) GenerateTargets(ctx context.Context, records []domain.AnalyticalRecord, classifications []classify.Classification) ([]ScoredTarget, error) {
	if len(records) != len(classifications) {
		return nil, fmt.Errorf("record/classification length mismatch: %d vs %d", len(records), len(classifications))
	}

	yearFloor := e.thesis.RecentYearFloor
	candidates := e.candidatePool(records, classifications, yearFloor)
	if len(candidates) == 0 {
		yearFloor = e.thesis.FallbackYearFloor
		candidates = e.candidatePool(records, classifications, yearFloor)
		e.logger.WarnContext(ctx, "no candidates at recent year floor, widening pool",
			"recent_floor", e.thesis.RecentYearFloor,
			"fallback_floor", yearFloor,
			"candidates", len(candidates),
		)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score.Total > candidates[j].Score.Total
	})

	seen := make(map[string]struct{}, len(candidates))
	targets := make([]ScoredTarget, 0, e.thesis.TopTargets)
	for _, cand := range candidates {
		name := cand.NormalizedName()
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		if cand.Score.Total < e.thesis.MinTargetScore {
			continue
		}
		cand.Rank = len(targets) + 1
		targets = append(targets, cand)
		if len(targets) == e.thesis.TopTargets {
			break
		}
	}

	e.logger.InfoContext(ctx, "generated target list",
		"candidates", len(candidates),
		"targets", len(targets),
		"year_floor", yearFloor,
		"min_score", e.thesis.MinTargetScore,
	)
	return targets, nil
}

// candidatePool scores every thesis match at or after the year floor
func (e *Engine) candidatePool(records []domain.AnalyticalRecord, classifications []classify.Classification, yearFloor int) []ScoredTarget {
	candidates := make([]ScoredTarget, 0, len(records))
	for i, rec := range records {
		cls := classifications[i]
		if !cls.IsMatch {
			continue
		}
		if rec.FilingYear < yearFloor {
			continue
		}
		candidates = append(candidates, ScoredTarget{
			AnalyticalRecord: rec,
			Classification:   cls,
			Score:            e.Score(rec, cls),
		})
	}
	return candidates
}

// FullUniverse lists the latest filing per entity across every period,
// classified but neither scored nor filtered. Entities without a name are
// excluded; ties on filing date keep the earlier row.
func (e *Engine) FullUniverse(ctx context.Context, records []domain.AnalyticalRecord, classifications []classify.Classification) ([]UniverseEntry, error) {
	if len(records) != len(classifications) {
		return nil, fmt.Errorf("record/classification length mismatch: %d vs %d", len(records), len(classifications))
	}

	latest := make(map[string]UniverseEntry, len(records))
	for i, rec := range records {
		name := rec.NormalizedName()
		if name == "" {
			continue
		}
		entry := UniverseEntry{AnalyticalRecord: rec, Classification: classifications[i]}
		if prev, ok := latest[name]; ok && !prev.FilingDate.Before(rec.FilingDate) {
			continue
		}
		latest[name] = entry
	}

	universe := make([]UniverseEntry, 0, len(latest))
	for _, entry := range latest {
		universe = append(universe, entry)
	}
	sort.Slice(universe, func(i, j int) bool {
		return universe[i].NormalizedName() < universe[j].NormalizedName()
	})

	e.logger.InfoContext(ctx, "built full universe listing",
		"records", len(records),
		"entities", len(universe),
	)
	return universe, nil
}
