package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"formdcli/internal/analytics"
	"formdcli/internal/config"
)

// ReportExporter writes the supplementary trend tables and the data quality
// report.
type ReportExporter struct {
	paths     *config.Paths
	csvWriter *CSVWriter
	logger    *slog.Logger
}

// NewReportExporter creates a report exporter
func NewReportExporter(paths *config.Paths, logger *slog.Logger) *ReportExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportExporter{
		paths:     paths,
		csvWriter: NewCSVWriter(paths),
		logger:    logger,
	}
}

// ExportPeriodTrends writes the per-period filing activity table
func (e *ReportExporter) ExportPeriodTrends(ctx context.Context, trends []analytics.PeriodTrend, outputPath string) error {
	headers := []string{"period", "filings", "amendments", "funds", "capital_sold", "capital_target"}

	records := make([][]string, 0, len(trends))
	for _, trend := range trends {
		records = append(records, []string{
			trend.Period.Label(),
			formatInt(trend.Filings),
			formatInt(trend.Amendments),
			formatInt(trend.Funds),
			formatAmount(trend.CapitalSold),
			formatAmount(trend.CapitalTarget),
		})
	}

	if err := e.csvWriter.WriteSimpleCSV(outputPath, headers, records); err != nil {
		return fmt.Errorf("failed to write period trends: %w", err)
	}

	e.logger.InfoContext(ctx, "exported period trends", "periods", len(trends), "path", outputPath)
	return nil
}

// ExportSectorTrends writes the per-sector deal activity table
func (e *ReportExporter) ExportSectorTrends(ctx context.Context, trends []analytics.SectorTrend, outputPath string) error {
	headers := []string{"sector", "deals", "follow_ons", "capital_sold", "median_deal_size"}

	records := make([][]string, 0, len(trends))
	for _, trend := range trends {
		records = append(records, []string{
			trend.Sector,
			formatInt(trend.Deals),
			formatInt(trend.FollowOns),
			formatAmount(trend.CapitalSold),
			formatAmount(trend.MedianDealSize),
		})
	}

	if err := e.csvWriter.WriteSimpleCSV(outputPath, headers, records); err != nil {
		return fmt.Errorf("failed to write sector trends: %w", err)
	}

	e.logger.InfoContext(ctx, "exported sector trends", "sectors", len(trends), "path", outputPath)
	return nil
}

// WriteQualityReport writes the pre-rendered data quality report text
func (e *ReportExporter) WriteQualityReport(ctx context.Context, report string, outputPath string) error {
	if !filepath.IsAbs(outputPath) {
		outputPath = e.paths.GetReportPath(outputPath)
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}
	if err := os.WriteFile(outputPath, []byte(report), 0644); err != nil {
		return fmt.Errorf("failed to write quality report: %w", err)
	}

	e.logger.InfoContext(ctx, "wrote data quality report", "path", outputPath)
	return nil
}
