package normalize

import (
	"context"
	"math"
	"strings"

	"formdcli/internal/ingest"
	"formdcli/pkg/contracts/domain"
)

// maxInvestorDiversity caps the investor diversity metric
const maxInvestorDiversity = 10.0

// CleanOfferings normalizes the offerings table, the most important one for
// analysis: industries standardize to sectors through the two-tier lookup
// (with SIC codes joined in from submissions), amounts parse in both
// filterable and arithmetic modes, and the security/investor/compensation/
// exemption flags are derived.
func (c *Cleaner) CleanOfferings(ctx context.Context, t *ingest.Table, sicByAccession map[string]string) []domain.Offering {
	offerings := make([]domain.Offering, 0, t.NumRows())

	sectorCounts := make(map[string]int)
	bucketCounts := make(map[string]int)
	funds := 0
	for i := 0; i < t.NumRows(); i++ {
		accession := strings.TrimSpace(t.Value(i, "ACCESSIONNUMBER"))

		industry := strings.TrimSpace(t.Value(i, "INDUSTRYGROUPTYPE"))
		if industry == "" {
			industry = OtherSector
		}
		sic := sicByAccession[accession]
		sector := SectorFor(industry, sic, c.mappings.IndustrySector, c.mappings.SICSector)

		offeringAmount := c.amounts.Filterable(t.Value(i, "TOTALOFFERINGAMOUNT"))
		amountSold := c.amounts.Arithmetic(t.Value(i, "TOTALAMOUNTSOLD"))
		remaining := c.amounts.Filterable(t.Value(i, "TOTALREMAINING"))

		fundraisingPct := math.NaN()
		if offeringAmount > 0 && !math.IsInf(offeringAmount, 0) && !math.IsNaN(amountSold) {
			fundraisingPct = amountSold / offeringAmount * 100
		}

		totalInvestors := parseIntOrZero(t.Value(i, "TOTALNUMBERALREADYINVESTED"))
		diversity := 0.0
		if totalInvestors > 0 {
			diversity = math.Min(float64(totalInvestors)/10, maxInvestorDiversity)
		}

		salesCommission := parseFloatOrZero(t.Value(i, "SALESCOMM_DOLLARAMOUNT"))
		findersFee := parseFloatOrZero(t.Value(i, "FINDERSFEE_DOLLARAMOUNT"))
		totalComp := salesCommission + findersFee

		fundType := strings.TrimSpace(t.Value(i, "INVESTMENTFUNDTYPE"))
		if fundType == "" {
			fundType = "N/A"
		}

		exemptions := strings.TrimSpace(t.Value(i, "FEDERALEXEMPTIONS_ITEMS_LIST"))
		has506B := containsFold(exemptions, "06b")
		has506C := containsFold(exemptions, "06c")

		o := domain.Offering{
			AccessionNumber: accession,

			IndustryGroup: industry,
			Sector:        sector,
			IsFund:        t.Value(i, "INDUSTRYGROUPTYPE") == c.mappings.PooledFundIndustry,
			FundType:      fundType,

			TotalOfferingAmount: offeringAmount,
			TotalAmountSold:     amountSold,
			TotalRemaining:      remaining,
			FundraisingPct:      fundraisingPct,
			DealSizeCategory:    CategorizeDealSize(offeringAmount, c.mappings.DealSizeBuckets),

			IsEquity:             ParseBoolLiteral(t.Value(i, "ISEQUITYTYPE")),
			IsDebt:               ParseBoolLiteral(t.Value(i, "ISDEBTTYPE")),
			IsPooledFundInterest: ParseBoolLiteral(t.Value(i, "ISPOOLEDINVESTMENTFUNDTYPE")),

			TotalInvestors:    totalInvestors,
			HasNonAccredited:  ParseBoolLiteral(t.Value(i, "HASNONACCREDITEDINVESTORS")),
			NumNonAccredited:  parseIntOrZero(t.Value(i, "NUMBERNONACCREDITEDINVESTORS")),
			InvestorDiversity: diversity,

			SalesCommission:   salesCommission,
			FindersFee:        findersFee,
			TotalSalesComp:    totalComp,
			HasPlacementAgent: totalComp > 0,

			IsAmendment:       ParseBoolLiteral(t.Value(i, "ISAMENDMENT")),
			PreviousAccession: strings.TrimSpace(t.Value(i, "PREVIOUSACCESSIONNUMBER")),

			SaleDate:       parseSaleDate(t.Value(i, "SALE_DATE")),
			SaleYetToOccur: ParseBoolLiteral(t.Value(i, "YETTOOCCUR")),
			OverOneYear:    ParseBoolLiteral(t.Value(i, "MORETHANONEYEAR")),

			Exemptions: exemptions,
			Has506B:    has506B,
			Has506C:    has506C,
			HasRegD:    has506B || has506C,

			SICCode: sic,
			Period:  rowPeriod(t, i),
		}

		sectorCounts[sector]++
		bucketCounts[o.DealSizeCategory]++
		if o.IsFund {
			funds++
		}
		offerings = append(offerings, o)
	}

	c.logger.InfoContext(ctx, "cleaned offerings table",
		"rows", len(offerings),
		"sectors", len(sectorCounts),
		"investment_funds", funds,
		"operating_companies", len(offerings)-funds,
	)
	for bucket, count := range bucketCounts {
		c.logger.DebugContext(ctx, "deal size distribution", "bucket", bucket, "count", count)
	}

	return offerings
}
