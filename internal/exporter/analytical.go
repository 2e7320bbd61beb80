package exporter

import (
	"context"
	"fmt"
	"log/slog"

	"formdcli/internal/config"
	"formdcli/pkg/contracts/domain"
)

// AnalyticalExporter writes the flat analytical dataset
type AnalyticalExporter struct {
	csvWriter *CSVWriter
	logger    *slog.Logger
}

// NewAnalyticalExporter creates an analytical dataset exporter
func NewAnalyticalExporter(paths *config.Paths, logger *slog.Logger) *AnalyticalExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalyticalExporter{
		csvWriter: NewCSVWriter(paths),
		logger:    logger,
	}
}

// Export streams every analytical record to the given CSV path. The dataset
// routinely runs to hundreds of thousands of rows, so rows are written as
// they are formatted rather than materialized first.
func (e *AnalyticalExporter) Export(ctx context.Context, records []domain.AnalyticalRecord, outputPath string) error {
	stream, err := e.csvWriter.CreateStreamWriter(outputPath, analyticalHeaders())
	if err != nil {
		return fmt.Errorf("failed to create analytical dataset writer: %w", err)
	}

	for i, rec := range records {
		if err := stream.WriteRecord(analyticalRow(rec)); err != nil {
			stream.Close()
			return fmt.Errorf("failed to write analytical record %d: %w", i, err)
		}
	}

	if err := stream.Close(); err != nil {
		return fmt.Errorf("failed to finalize analytical dataset: %w", err)
	}

	e.logger.InfoContext(ctx, "exported analytical dataset",
		"records", len(records),
		"path", outputPath,
	)
	return nil
}

func analyticalHeaders() []string {
	return []string{
		"accession_number", "entity_name", "state", "region", "is_us",
		"city", "entity_type", "incorporation_year",
		"filing_date", "date_source", "filing_year", "filing_quarter", "period",
		"industry_group", "sector", "sic_code", "is_fund", "fund_type",
		"total_offering_amount", "total_amount_sold", "total_remaining",
		"fundraising_pct", "deal_size_category",
		"is_equity", "is_debt", "is_pooled_fund_interest",
		"total_investors", "investor_diversity",
		"sales_commission", "finders_fee", "has_placement_agent",
		"is_amendment", "previous_accession",
		"sale_date", "exemptions", "has_506b", "has_506c", "has_reg_d",
		"num_related_persons", "has_recipients",
		"entity_filing_count", "is_follow_on",
		"offering_age_days", "is_active", "is_recent",
	}
}

func analyticalRow(rec domain.AnalyticalRecord) []string {
	return []string{
		rec.AccessionNumber,
		rec.EntityName,
		rec.State,
		rec.Region,
		formatBool(rec.IsUS),
		rec.City,
		rec.EntityType,
		formatInt(rec.IncorporationYear),
		formatDate(rec.FilingDate),
		string(rec.DateSource),
		formatInt(rec.FilingYear),
		formatInt(rec.FilingQuarter),
		rec.Period.Label(),
		rec.IndustryGroup,
		rec.Sector,
		rec.SICCode,
		formatBool(rec.IsFund),
		rec.FundType,
		formatAmount(rec.TotalOfferingAmount),
		formatAmount(rec.TotalAmountSold),
		formatAmount(rec.TotalRemaining),
		formatFloat(rec.FundraisingPct),
		rec.DealSizeCategory,
		formatBool(rec.IsEquity),
		formatBool(rec.IsDebt),
		formatBool(rec.IsPooledFundInterest),
		formatInt(rec.TotalInvestors),
		formatFloat(rec.InvestorDiversity),
		formatAmount(rec.SalesCommission),
		formatAmount(rec.FindersFee),
		formatBool(rec.HasPlacementAgent),
		formatBool(rec.IsAmendment),
		rec.PreviousAccession,
		formatDate(rec.SaleDate),
		rec.Exemptions,
		formatBool(rec.Has506B),
		formatBool(rec.Has506C),
		formatBool(rec.HasRegD),
		formatInt(rec.NumRelatedPersons),
		formatBool(rec.HasRecipients),
		formatInt(rec.EntityFilingCount),
		formatBool(rec.IsFollowOn),
		formatInt(rec.OfferingAgeDays),
		formatBool(rec.IsActive),
		formatBool(rec.IsRecent),
	}
}
