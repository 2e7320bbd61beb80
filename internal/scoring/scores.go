package scoring

import (
	"log/slog"
	"math"

	"formdcli/internal/classify"
	"formdcli/internal/config"
	"formdcli/pkg/contracts/domain"
)

// Sub-score ceilings. Each sub-score is clamped to its ceiling before
// weighting; the ceilings match the default weight vector so the default
// total is simply the sum of the sub-scores.
const (
	MaxThesisFitScore = 30.0
	MaxMomentumScore  = 25.0
	MaxDealSizeScore  = 20.0
	MaxQualityScore   = 15.0
	MaxGeographyScore = 10.0
)

// Score bundles the five sub-scores and the weighted total for one record
type Score struct {
	ThesisFit float64 `json:"thesis_fit"`
	DealSize  float64 `json:"deal_size"`
	Geography float64 `json:"geography"`
	Momentum  float64 `json:"momentum"`
	Quality   float64 `json:"quality"`
	Total     float64 `json:"total"`
}

// Engine scores analytical records against a thesis. It is stateless after
// construction and safe for concurrent use.
type Engine struct {
	thesis config.Thesis
	logger *slog.Logger

	targetStates    map[string]struct{}
	secondaryStates map[string]struct{}
	hotSubcats      map[string]struct{}
}

// NewEngine creates a scoring engine for the given thesis
func NewEngine(thesis config.Thesis, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		thesis:          thesis,
		logger:          logger,
		targetStates:    toSet(thesis.TargetStates),
		secondaryStates: toSet(thesis.SecondaryStates),
		hotSubcats:      toSet(thesis.HotSubcategories),
	}
}

// Score computes all five sub-scores and the weighted total for one record
func (e *Engine) Score(rec domain.AnalyticalRecord, cls classify.Classification) Score {
	s := Score{
		ThesisFit: e.ThesisFitScore(cls),
		DealSize:  e.DealSizeScore(rec),
		Geography: e.GeographyScore(rec),
		Momentum:  e.MomentumScore(rec),
		Quality:   e.QualityScore(rec),
	}
	s.Total = e.WeightedTotal(s)
	return s
}

// WeightedTotal combines the sub-scores: each contributes its fraction of
// ceiling times its configured weight, so a weight vector summing to 100
// caps the total at 100.
func (e *Engine) WeightedTotal(s Score) float64 {
	w := e.thesis.Weights
	return s.ThesisFit/MaxThesisFitScore*w.ThesisFit +
		s.DealSize/MaxDealSizeScore*w.DealSize +
		s.Geography/MaxGeographyScore*w.Geography +
		s.Momentum/MaxMomentumScore*w.Momentum +
		s.Quality/MaxQualityScore*w.Quality
}

// ThesisFitScore rewards each independent classification signal: the AI
// family dominates, the SaaS family and the taxonomy signal stack under it,
// and a hot sub-category adds a final bump.
func (e *Engine) ThesisFitScore(cls classify.Classification) float64 {
	score := 0.0
	if cls.HasAISignal {
		score += 20
	}
	if cls.HasSaaSSignal {
		score += 15
	}
	if cls.HasTechIndustry {
		score += 10
	}
	if _, hot := e.hotSubcats[cls.Subcategory]; hot {
		score += 5
	}
	return math.Min(score, MaxThesisFitScore)
}

// DealSizeScore is piecewise over the offering amount: full marks inside the
// ideal range, a linear ramp with a guaranteed floor below it, a moderate
// fixed score up to twice the ideal ceiling, a low fixed score beyond, and
// zero for missing or indefinite amounts.
func (e *Engine) DealSizeScore(rec domain.AnalyticalRecord) float64 {
	amount := rec.TotalOfferingAmount
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return 0
	}

	switch {
	case amount >= e.thesis.IdealMin && amount <= e.thesis.IdealMax:
		return MaxDealSizeScore
	case amount < e.thesis.IdealMin:
		return math.Max(5, 15*amount/e.thesis.IdealMin)
	case amount <= 2*e.thesis.IdealMax:
		return 12
	default:
		return 5
	}
}

// GeographyScore is tiered by state: target tier, secondary tier, a minimal
// floor for everything else, zero when the state is missing.
func (e *Engine) GeographyScore(rec domain.AnalyticalRecord) float64 {
	if rec.State == "" {
		return 0
	}
	if _, ok := e.targetStates[rec.State]; ok {
		return MaxGeographyScore
	}
	if _, ok := e.secondaryStates[rec.State]; ok {
		return 7
	}
	return 3
}

// MomentumScore sums capped contributions from follow-on status, amount-sold
// tiers, and investor-count tiers, then clamps at the ceiling.
func (e *Engine) MomentumScore(rec domain.AnalyticalRecord) float64 {
	score := 0.0
	if rec.IsFollowOn {
		score += 10
	}

	sold := rec.TotalAmountSold
	if !math.IsNaN(sold) {
		switch {
		case sold > 1_000_000:
			score += 7
		case sold > 100_000:
			score += 3
		}
	}

	switch {
	case rec.TotalInvestors >= 10:
		score += 8
	case rec.TotalInvestors >= 3:
		score += 5
	case rec.TotalInvestors >= 1:
		score += 2
	}

	return math.Min(score, MaxMomentumScore)
}

// QualityScore sums capped contributions from intermediary involvement,
// related-person headcount tiers, and the equity security type.
func (e *Engine) QualityScore(rec domain.AnalyticalRecord) float64 {
	score := 0.0
	if rec.HasPlacementAgent || rec.HasRecipients {
		score += 6
	}

	switch {
	case rec.NumRelatedPersons >= 5:
		score += 5
	case rec.NumRelatedPersons >= 2:
		score += 3
	}

	if rec.IsEquity {
		score += 4
	}

	return math.Min(score, MaxQualityScore)
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
