package exporter

import (
	"context"
	"fmt"
	"log/slog"

	"formdcli/internal/config"
	"formdcli/internal/scoring"
)

// TargetsExporter writes the ranked target list and the full-universe listing
type TargetsExporter struct {
	csvWriter *CSVWriter
	logger    *slog.Logger
}

// NewTargetsExporter creates a target list exporter
func NewTargetsExporter(paths *config.Paths, logger *slog.Logger) *TargetsExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &TargetsExporter{
		csvWriter: NewCSVWriter(paths),
		logger:    logger,
	}
}

// ExportCSV writes the ranked targets as CSV
func (e *TargetsExporter) ExportCSV(ctx context.Context, targets []scoring.ScoredTarget, outputPath string) error {
	records := make([][]string, 0, len(targets))
	for _, target := range targets {
		records = append(records, targetRow(target))
	}

	if err := e.csvWriter.WriteSimpleCSV(outputPath, targetHeaders(), records); err != nil {
		return fmt.Errorf("failed to write targets CSV: %w", err)
	}

	e.logger.InfoContext(ctx, "exported target list",
		"targets", len(targets),
		"path", outputPath,
	)
	return nil
}

// ExportUniverse writes the full-universe listing as CSV
func (e *TargetsExporter) ExportUniverse(ctx context.Context, universe []scoring.UniverseEntry, outputPath string) error {
	headers := []string{
		"entity_name", "state", "region", "sector", "subcategory",
		"has_ai_signal", "has_saas_signal", "has_tech_industry",
		"filing_date", "filing_year", "period",
		"total_offering_amount", "deal_size_category",
		"is_follow_on", "is_active", "is_recent",
	}

	records := make([][]string, 0, len(universe))
	for _, entry := range universe {
		records = append(records, []string{
			entry.EntityName,
			entry.State,
			entry.Region,
			entry.Sector,
			entry.Classification.Subcategory,
			formatBool(entry.Classification.HasAISignal),
			formatBool(entry.Classification.HasSaaSSignal),
			formatBool(entry.Classification.HasTechIndustry),
			formatDate(entry.FilingDate),
			formatInt(entry.FilingYear),
			entry.Period.Label(),
			formatAmount(entry.TotalOfferingAmount),
			entry.DealSizeCategory,
			formatBool(entry.IsFollowOn),
			formatBool(entry.IsActive),
			formatBool(entry.IsRecent),
		})
	}

	if err := e.csvWriter.WriteSimpleCSV(outputPath, headers, records); err != nil {
		return fmt.Errorf("failed to write universe CSV: %w", err)
	}

	e.logger.InfoContext(ctx, "exported full universe listing",
		"entities", len(universe),
		"path", outputPath,
	)
	return nil
}

func targetHeaders() []string {
	return []string{
		"rank", "entity_name", "state", "region", "city",
		"sector", "subcategory",
		"total_score", "thesis_fit_score", "deal_size_score",
		"geography_score", "momentum_score", "quality_score",
		"total_offering_amount", "total_amount_sold", "deal_size_category",
		"total_investors", "num_related_persons", "has_placement_agent",
		"is_follow_on", "is_active", "is_recent",
		"filing_date", "filing_year", "period", "accession_number",
	}
}

func targetRow(target scoring.ScoredTarget) []string {
	return []string{
		formatInt(target.Rank),
		target.EntityName,
		target.State,
		target.Region,
		target.City,
		target.Sector,
		target.Classification.Subcategory,
		formatFloat(target.Score.Total),
		formatFloat(target.Score.ThesisFit),
		formatFloat(target.Score.DealSize),
		formatFloat(target.Score.Geography),
		formatFloat(target.Score.Momentum),
		formatFloat(target.Score.Quality),
		formatAmount(target.TotalOfferingAmount),
		formatAmount(target.TotalAmountSold),
		target.DealSizeCategory,
		formatInt(target.TotalInvestors),
		formatInt(target.NumRelatedPersons),
		formatBool(target.HasPlacementAgent),
		formatBool(target.IsFollowOn),
		formatBool(target.IsActive),
		formatBool(target.IsRecent),
		formatDate(target.FilingDate),
		formatInt(target.FilingYear),
		target.Period.Label(),
		target.AccessionNumber,
	}
}
