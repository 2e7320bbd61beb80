package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v2"
)

// DealSizeBucket is one half-open [Lower, Upper) amount range with a display
// name. The top bucket uses +Inf as its upper bound.
type DealSizeBucket struct {
	Name  string  `yaml:"name"`
	Lower float64 `yaml:"lower"`
	Upper float64 `yaml:"upper"`
}

// Mappings holds the standardization tables consumed by field normalization.
// Like Thesis, it is externally supplied data, not logic: every table can be
// swapped through a YAML file without touching the pipeline.
type Mappings struct {
	// IndustrySector is the primary industry-string lookup; SICSector is the
	// supplementary code-based lookup tried when the primary misses or
	// resolves to the generic "Other" sector.
	IndustrySector map[string]string `yaml:"industry_sector"`
	SICSector      map[string]string `yaml:"sic_sector"`

	StateRegion map[string]string `yaml:"state_region"`

	DealSizeBuckets []DealSizeBucket `yaml:"deal_size_buckets"`

	// IndefiniteValues are the sentinel tokens standing in for an uncapped
	// amount. Matching is against the trimmed, upper-cased value.
	IndefiniteValues []string `yaml:"indefinite_values"`

	// PooledFundIndustry is the industry string that marks pooled funds
	PooledFundIndustry string `yaml:"pooled_fund_industry"`
}

// DefaultMappings returns the standard Form D mapping tables
func DefaultMappings() Mappings {
	return Mappings{
		IndustrySector: map[string]string{
			// Technology
			"Computers":                         "Enterprise Software",
			"Computer Software":                 "Enterprise Software",
			"Technology":                        "Enterprise Software",
			"Internet and Information Services": "Enterprise Software",
			"Telecommunications":                "Telecommunications",
			"Electronics":                       "Hardware",

			// Finance
			"Banking and Financial Services": "Fintech",
			"Insurance":                      "Insurtech",
			"Real Estate":                    "Real Estate",

			// Healthcare
			"Health Care":     "Healthcare",
			"Biotechnology":   "Biotech",
			"Pharmaceuticals": "Pharma",

			// Energy & resources
			"Energy":      "Energy",
			"Oil and Gas": "Energy",
			"Mining":      "Mining",
			"Agriculture": "AgTech",

			// Consumer
			"Retailing":         "Consumer",
			"Restaurants":       "Consumer",
			"Consumer Services": "Consumer",

			// Industrial
			"Manufacturing":  "Industrial",
			"Transportation": "Transportation",
			"Construction":   "Construction",

			"Pooled Investment Fund": "Investment Fund",
			"Other":                  "Other",
		},
		SICSector: map[string]string{
			// Technology (7370-7379, 3570-3579)
			"7370": "Enterprise Software",
			"7371": "Enterprise Software",
			"7372": "Enterprise Software",
			"7373": "Enterprise Software",
			"7374": "Data & Analytics",
			"7375": "Enterprise Software",
			"3571": "Hardware",
			"3572": "Hardware",
			"3576": "Hardware",
			"3577": "Hardware",
			"3661": "Telecommunications",

			// Finance (6000-6999)
			"6022": "Fintech",
			"6036": "Fintech",
			"6211": "Fintech",
			"6282": "Fintech",
			"6311": "Insurtech",
			"6531": "Real Estate",

			// Healthcare (8000-8099, 2830-2836, 3840-3851)
			"8000": "Healthcare",
			"8011": "Healthcare",
			"8060": "Healthcare",
			"8071": "Healthcare IT",
			"2834": "Pharma",
			"2836": "Biotech",
			"3841": "Healthcare",
			"3845": "Healthcare",

			// Energy (1311, 1381, 4911-4939)
			"1311": "Energy",
			"1381": "Energy",
			"4911": "Energy",
			"4922": "Energy",
		},
		StateRegion: map[string]string{
			"CA": "West Coast", "OR": "West Coast", "WA": "West Coast",

			"NY": "Northeast", "MA": "Northeast", "CT": "Northeast",
			"NJ": "Northeast", "PA": "Northeast", "NH": "Northeast",
			"VT": "Northeast", "RI": "Northeast", "ME": "Northeast",

			"FL": "Southeast", "GA": "Southeast", "NC": "Southeast",
			"SC": "Southeast", "VA": "Southeast", "TN": "Southeast",
			"AL": "Southeast", "MS": "Southeast", "LA": "Southeast",
			"AR": "Southeast", "KY": "Southeast", "WV": "Southeast",

			"IL": "Midwest", "OH": "Midwest", "MI": "Midwest",
			"IN": "Midwest", "WI": "Midwest", "MN": "Midwest",
			"IA": "Midwest", "MO": "Midwest", "KS": "Midwest",
			"NE": "Midwest", "SD": "Midwest", "ND": "Midwest",

			"TX": "Southwest", "AZ": "Southwest", "NM": "Southwest", "OK": "Southwest",

			"CO": "Mountain West", "UT": "Mountain West", "NV": "Mountain West",
			"ID": "Mountain West", "MT": "Mountain West", "WY": "Mountain West",

			"HI": "Pacific", "AK": "Pacific",
		},
		DealSizeBuckets: []DealSizeBucket{
			{Name: "Micro (<$1M)", Lower: 0, Upper: 1_000_000},
			{Name: "Seed ($1-5M)", Lower: 1_000_000, Upper: 5_000_000},
			{Name: "Series A ($5-10M)", Lower: 5_000_000, Upper: 10_000_000},
			{Name: "Series B ($10-25M)", Lower: 10_000_000, Upper: 25_000_000},
			{Name: "Series C ($25-50M)", Lower: 25_000_000, Upper: 50_000_000},
			{Name: "Growth ($50-100M)", Lower: 50_000_000, Upper: 100_000_000},
			{Name: "Large ($100M+)", Lower: 100_000_000, Upper: math.Inf(1)},
		},
		IndefiniteValues:   []string{"INDEFINITE", "UNLIMITED", ""},
		PooledFundIndustry: "Pooled Investment Fund",
	}
}

// LoadMappings loads mapping tables from a YAML file, falling back to the
// defaults when the path is empty. Tables omitted from the file keep their
// defaults; a bucket list without an unbounded top bucket is rejected.
func LoadMappings(path string) (Mappings, error) {
	m := DefaultMappings()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Mappings{}, fmt.Errorf("failed to read mappings file: %w", err)
		}
		if err := yaml.Unmarshal(data, &m); err != nil {
			return Mappings{}, fmt.Errorf("failed to parse mappings file: %w", err)
		}
	}

	if err := m.Validate(); err != nil {
		return Mappings{}, fmt.Errorf("mappings validation failed: %w", err)
	}

	return m, nil
}

// Validate checks bucket ordering and table presence
func (m Mappings) Validate() error {
	if len(m.DealSizeBuckets) == 0 {
		return fmt.Errorf("deal size buckets are required")
	}
	prev := math.Inf(-1)
	for i, b := range m.DealSizeBuckets {
		if b.Lower >= b.Upper {
			return fmt.Errorf("bucket %q: lower bound %.0f must be below upper bound %.0f", b.Name, b.Lower, b.Upper)
		}
		if b.Lower < prev {
			return fmt.Errorf("bucket %d (%q) out of order", i, b.Name)
		}
		prev = b.Lower
	}
	if len(m.StateRegion) == 0 {
		return fmt.Errorf("state to region table is required")
	}
	if len(m.IndustrySector) == 0 {
		return fmt.Errorf("industry to sector table is required")
	}
	return nil
}
