package config

import (
	"fmt"
	"math"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

// Thesis is the externally-supplied investment thesis driving classification
// and scoring. It is loaded once, validated, and passed by value into each
// pipeline stage; stages never mutate it.
type Thesis struct {
	// Target sectors after industry standardization
	TargetSectors []string `yaml:"target_sectors"`

	// Geography tiers. TargetStates score full marks, SecondaryStates score
	// partial marks, everything else scores the minimal floor.
	TargetStates    []string `yaml:"target_states" validate:"required,min=1"`
	SecondaryStates []string `yaml:"secondary_states"`
	TargetRegions   []string `yaml:"target_regions"`

	// Deal size preferences in USD
	MinDealSize float64 `yaml:"min_deal_size" validate:"gte=0"`
	MaxDealSize float64 `yaml:"max_deal_size" validate:"gtefield=MinDealSize"`
	IdealMin    float64 `yaml:"ideal_min" validate:"gte=0"`
	IdealMax    float64 `yaml:"ideal_max" validate:"gtefield=IdealMin"`

	// Classification inputs
	AIKeywords        []string          `yaml:"ai_keywords"`
	SaaSKeywords      []string          `yaml:"saas_keywords"`
	AcronymDenylist   []string          `yaml:"acronym_denylist"`
	TechIndustryTypes []string          `yaml:"tech_industry_types"`
	Subcategories     []SubcategoryRule `yaml:"subcategories"`
	HotSubcategories  []string          `yaml:"hot_subcategories"`

	// Scoring model
	Weights ScoringWeights `yaml:"weights"`

	// Output shaping
	MinTargetScore float64 `yaml:"min_target_score" validate:"gte=0"`
	TopTargets     int     `yaml:"top_targets" validate:"gt=0"`

	// Recency window for the is_recent flag, in days
	RecencyWindowDays int `yaml:"recency_window_days" validate:"gt=0"`

	// Target pool year floors: scored targets come from filings at or after
	// RecentYearFloor, widening to FallbackYearFloor when that pool is empty.
	RecentYearFloor   int `yaml:"recent_year_floor"`
	FallbackYearFloor int `yaml:"fallback_year_floor"`
}

// SubcategoryRule names one sub-category and the entity-name patterns that
// assign it. Rules are tested in order and the first match wins, so rule
// order is part of the configuration contract.
type SubcategoryRule struct {
	Name     string   `yaml:"name" validate:"required"`
	Patterns []string `yaml:"patterns" validate:"required,min=1"`
}

// ScoringWeights is the weight vector applied to the five sub-scores.
// The values are expressed as points out of 100 and must sum to 100.
type ScoringWeights struct {
	ThesisFit float64 `yaml:"thesis_fit" validate:"gte=0"`
	DealSize  float64 `yaml:"deal_size" validate:"gte=0"`
	Geography float64 `yaml:"geography" validate:"gte=0"`
	Momentum  float64 `yaml:"momentum" validate:"gte=0"`
	Quality   float64 `yaml:"quality" validate:"gte=0"`
}

// Total returns the sum of all weights
func (w ScoringWeights) Total() float64 {
	return w.ThesisFit + w.DealSize + w.Geography + w.Momentum + w.Quality
}

// IsValid checks that the weight vector sums to 100 within tolerance
func (w ScoringWeights) IsValid() bool {
	return math.Abs(w.Total()-100) < 0.01
}

// DefaultThesis returns the default AI/SaaS thesis configuration
func DefaultThesis() Thesis {
	return Thesis{
		TargetSectors: []string{
			"Enterprise Software", "Artificial Intelligence", "Fintech",
			"Healthcare IT", "SaaS", "Cybersecurity", "Data & Analytics",
		},
		TargetStates: []string{
			"CA", "NY", "MA", "TX", "WA", "IL", "FL", "CO", "UT", "GA", "NC", "VA",
		},
		SecondaryStates: []string{"DE", "MD", "PA", "NJ", "OR", "AZ", "NV", "MN"},
		TargetRegions:   []string{"West Coast", "Northeast", "Southwest"},

		MinDealSize: 1_000_000,
		MaxDealSize: 50_000_000,
		IdealMin:    5_000_000,
		IdealMax:    25_000_000,

		AIKeywords: []string{
			"ARTIFICIAL INTELLIGENCE", "MACHINE LEARNING", "DEEP LEARNING",
			"NEURAL NETWORK", "COMPUTER VISION", "NATURAL LANGUAGE",
			"GENERATIVE AI", "GENAI", "GPT", "LLM",
			"COGNITIVE", "PREDICTIVE ANALYTICS", "AUTONOMOUS",
			"REINFORCEMENT LEARNING", "CONVERSATIONAL AI",
		},
		SaaSKeywords: []string{
			"SOFTWARE", "SAAS", "CLOUD", " PLATFORM",
			"ANALYTICS", "DATA SCIENCE", "AUTOMATION",
			"CYBERSECURITY", "CYBER SECURITY", "INFOSEC",
			"ROBOTIC", "RPA", "DEVOPS", "API ",
			"FINTECH", "PROPTECH", "EDTECH", "HEALTHTECH",
			"MEDTECH", "MARTECH", "ADTECH", "REGTECH", "LEGALTECH",
			"INSURTECH", "AGTECH", "FOODTECH", "GOVTECH",
			"DIGITAL HEALTH", "TELEHEALTH", "TELEMEDICINE",
		},
		// Names containing these tokens coincidentally contain "AI"; the
		// standalone-acronym signal is suppressed for them. Applies only to
		// the acronym signal, never to the multi-word keyword signals.
		AcronymDenylist: []string{
			"CHAIR", "ACQUI", "DOMAIN", "CERTAIN", "CONTAIN", "REPAIR",
			"AFFAIR", "TRAIL", "NAIF", "CAPITAL", "FUND", "VENTURE", "PARTNER",
		},
		TechIndustryTypes: []string{"Other Technology", "Computers", "Business Services"},
		Subcategories: []SubcategoryRule{
			{Name: "Computer Vision", Patterns: []string{"COMPUTER VISION", "IMAGE RECOGNITION", "OBJECT DETECTION", "VIDEO ANALYTICS"}},
			{Name: "NLP / LLM", Patterns: []string{"NATURAL LANGUAGE", "NLP", "LLM", "GPT", "LANGUAGE MODEL", "CONVERSATIONAL AI", "CHATBOT"}},
			{Name: "Generative AI", Patterns: []string{"GENERATIVE AI", "GENAI", "GEN AI", "DIFFUSION", "FOUNDATION MODEL"}},
			{Name: "ML Platform", Patterns: []string{"MACHINE LEARNING", "ML PLATFORM", "MLOPS", "MODEL TRAINING", "DEEP LEARNING"}},
			{Name: "Autonomous Systems", Patterns: []string{"AUTONOMOUS", "SELF-DRIVING", "SELF DRIVING", "DRONE", "ROBOTIC"}},
			{Name: "Predictive Analytics", Patterns: []string{"PREDICTIVE", "FORECASTING", "ANALYTICS"}},
			{Name: "Cybersecurity AI", Patterns: []string{"CYBERSECURITY", "CYBER SECURITY", "INFOSEC", "THREAT DETECTION"}},
			{Name: "Healthcare AI", Patterns: []string{"DIGITAL HEALTH", "HEALTHTECH", "MEDTECH", "TELEHEALTH", "CLINICAL AI"}},
			{Name: "Fintech AI", Patterns: []string{"FINTECH", "REGTECH", "INSURTECH", "WEALTHTECH"}},
			{Name: "Enterprise SaaS", Patterns: []string{"SOFTWARE", "SAAS", "CLOUD", "PLATFORM", "ENTERPRISE"}},
			{Name: "Data Infrastructure", Patterns: []string{"DATA SCIENCE", "DATA ENGINEERING", "DATA PIPELINE", "DATABASE", "DATA LAKE"}},
			{Name: "DevTools", Patterns: []string{"DEVOPS", "API ", "DEVELOPER", "LOW CODE", "NO CODE"}},
		},
		HotSubcategories: []string{
			"NLP / LLM", "Generative AI", "Computer Vision", "ML Platform", "Cybersecurity AI",
		},

		Weights: ScoringWeights{
			ThesisFit: 30,
			Momentum:  25,
			DealSize:  20,
			Quality:   15,
			Geography: 10,
		},

		MinTargetScore:    15,
		TopTargets:        200,
		RecencyWindowDays: 540,
		RecentYearFloor:   2024,
		FallbackYearFloor: 2023,
	}
}

// LoadThesis loads a thesis configuration from a YAML file, falling back to
// the default thesis when the path is empty. Fields omitted from the file
// keep their defaults.
func LoadThesis(path string) (Thesis, error) {
	thesis := DefaultThesis()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Thesis{}, fmt.Errorf("failed to read thesis file: %w", err)
		}
		if err := yaml.Unmarshal(data, &thesis); err != nil {
			return Thesis{}, fmt.Errorf("failed to parse thesis file: %w", err)
		}
	}

	if err := thesis.Validate(); err != nil {
		return Thesis{}, fmt.Errorf("thesis validation failed: %w", err)
	}

	return thesis, nil
}

// Validate checks structural constraints and the weight-sum invariant
func (t Thesis) Validate() error {
	if err := validator.New().Struct(t); err != nil {
		return err
	}
	if !t.Weights.IsValid() {
		return &ValidationError{Field: "weights", Message: "scoring weights must sum to 100", Value: t.Weights.Total()}
	}
	if t.IdealMin < t.MinDealSize || t.IdealMax > t.MaxDealSize {
		return &ValidationError{
			Field: "ideal_min/ideal_max",
			Message: fmt.Sprintf("ideal range must sit inside deal size range [%.0f, %.0f]",
				t.MinDealSize, t.MaxDealSize),
			Value: fmt.Sprintf("[%.0f, %.0f]", t.IdealMin, t.IdealMax),
		}
	}
	return nil
}
