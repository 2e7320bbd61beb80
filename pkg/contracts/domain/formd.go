package domain

import (
	"math"
	"time"
)

// DateProvenance records how a filing date was obtained. Reconstructed dates
// are approximations derived from the batch period and should be weighted
// accordingly by downstream consumers.
type DateProvenance string

const (
	// DateParsed means the date was parsed directly from the filing field
	DateParsed DateProvenance = "parsed"
	// DateReconstructed means the date was rebuilt from period metadata
	DateReconstructed DateProvenance = "reconstructed"
	// DateMissing means neither parsing nor reconstruction produced a date
	DateMissing DateProvenance = "missing"
)

// Submission represents one filing event from FORMDSUBMISSION.tsv.
// AccessionNumber is the key tying all auxiliary records of a filing together.
type Submission struct {
	AccessionNumber string         `json:"accession_number"`
	SubmissionType  string         `json:"submission_type"`
	RawFilingDate   string         `json:"raw_filing_date"`
	FilingDate      time.Time      `json:"filing_date"`
	DateSource      DateProvenance `json:"date_source"`
	FilingYear      int            `json:"filing_year"`
	FilingMonth     int            `json:"filing_month"`
	FilingQuarter   int            `json:"filing_quarter"`
	SICCode         string         `json:"sic_code"`
	IsAmendment     bool           `json:"is_amendment"`
	Period          Period         `json:"period"`
}

// Issuer represents one issuer row from ISSUERS.tsv. A submission carries one
// primary issuer plus zero or more related issuers under the same key.
type Issuer struct {
	AccessionNumber   string `json:"accession_number"`
	EntityName        string `json:"entity_name"`
	State             string `json:"state"`
	Region            string `json:"region"`
	IsUS              bool   `json:"is_us"`
	City              string `json:"city"`
	ZipCode           string `json:"zip_code"`
	EntityType        string `json:"entity_type"`
	IncorporationYear int    `json:"incorporation_year"`
	IsPrimary         bool   `json:"is_primary"`
	IsLLC             bool   `json:"is_llc"`
	IsCorporation     bool   `json:"is_corporation"`
	IsPartnership     bool   `json:"is_partnership"`
	Period            Period `json:"period"`
}

// Offering represents one offering row from OFFERING.tsv, the central
// analytical unit. Amount fields use two conventions:
//   - filterable amounts (TotalOfferingAmount, TotalRemaining) carry +Inf for
//     the "Indefinite" sentinel and NaN for missing, so comparisons and
//     bucketing treat an uncapped raise as larger than any finite deal;
//   - arithmetic amounts (TotalAmountSold) carry NaN for both, so sums and
//     ratios are never corrupted by an infinity.
type Offering struct {
	AccessionNumber string `json:"accession_number"`

	IndustryGroup string `json:"industry_group"`
	Sector        string `json:"sector"`
	IsFund        bool   `json:"is_fund"`
	FundType      string `json:"fund_type"`

	TotalOfferingAmount float64 `json:"total_offering_amount"`
	TotalAmountSold     float64 `json:"total_amount_sold"`
	TotalRemaining      float64 `json:"total_remaining"`
	FundraisingPct      float64 `json:"fundraising_pct"`
	DealSizeCategory    string  `json:"deal_size_category"`

	IsEquity             bool `json:"is_equity"`
	IsDebt               bool `json:"is_debt"`
	IsPooledFundInterest bool `json:"is_pooled_fund_interest"`

	TotalInvestors    int  `json:"total_investors"`
	HasNonAccredited  bool `json:"has_non_accredited"`
	NumNonAccredited  int  `json:"num_non_accredited"`
	InvestorDiversity float64 `json:"investor_diversity"`

	SalesCommission   float64 `json:"sales_commission"`
	FindersFee        float64 `json:"finders_fee"`
	TotalSalesComp    float64 `json:"total_sales_comp"`
	HasPlacementAgent bool    `json:"has_placement_agent"`

	IsAmendment       bool   `json:"is_amendment"`
	PreviousAccession string `json:"previous_accession"`

	SaleDate       time.Time `json:"sale_date"`
	SaleYetToOccur bool      `json:"sale_yet_to_occur"`
	OverOneYear    bool      `json:"over_one_year"`

	Exemptions string `json:"exemptions"`
	Has506B    bool   `json:"has_506b"`
	Has506C    bool   `json:"has_506c"`
	HasRegD    bool   `json:"has_reg_d"`

	SICCode string `json:"sic_code"`
	Period  Period `json:"period"`
}

// HasFiniteOffering reports whether the offering amount is a known finite value
func (o Offering) HasFiniteOffering() bool {
	return !math.IsNaN(o.TotalOfferingAmount) && !math.IsInf(o.TotalOfferingAmount, 0)
}

// AnalyticalRecord is the joined per-offering row exposed to classification,
// scoring, and export. Exactly one record exists per offering row; issuer and
// submission fields are zero-valued when no matching row was found.
type AnalyticalRecord struct {
	Offering

	// Primary issuer fields
	EntityName        string `json:"entity_name"`
	State             string `json:"state"`
	Region            string `json:"region"`
	IsUS              bool   `json:"is_us"`
	City              string `json:"city"`
	ZipCode           string `json:"zip_code"`
	EntityType        string `json:"entity_type"`
	IncorporationYear int    `json:"incorporation_year"`

	// Submission metadata
	FilingDate    time.Time      `json:"filing_date"`
	DateSource    DateProvenance `json:"date_source"`
	FilingYear    int            `json:"filing_year"`
	FilingQuarter int            `json:"filing_quarter"`

	// Cross-table derived signals
	NumRelatedPersons int  `json:"num_related_persons"`
	HasRecipients     bool `json:"has_recipients"`
	EntityFilingCount int  `json:"entity_filing_count"`
	IsFollowOn        bool `json:"is_follow_on"`
	OfferingAgeDays   int  `json:"offering_age_days"`
	IsActive          bool `json:"is_active"`
	IsRecent          bool `json:"is_recent"`
}

// NormalizedName returns the entity name as used for repeat-filing detection
// and target deduplication. This is exact-match normalization only; two
// differently spelled names for the same company are never linked.
func (r AnalyticalRecord) NormalizedName() string {
	return NormalizeEntityName(r.EntityName)
}
