package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"formdcli/internal/analytics"
	"formdcli/internal/classify"
	"formdcli/internal/config"
	"formdcli/internal/exporter"
	"formdcli/internal/ingest"
	"formdcli/internal/normalize"
	"formdcli/internal/scoring"
	"formdcli/pkg/contracts/domain"
)

// Pipeline is the application container holding configuration and the shared
// logger. Stages are constructed per run; the container itself carries no
// per-run state.
type Pipeline struct {
	cfg      *config.Config
	paths    *config.Paths
	thesis   config.Thesis
	mappings config.Mappings
	logger   *slog.Logger
	now      time.Time
}

// NewPipeline creates a pipeline container
func NewPipeline(cfg *config.Config, paths *config.Paths, thesis config.Thesis, mappings config.Mappings, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		cfg:      cfg,
		paths:    paths,
		thesis:   thesis,
		mappings: mappings,
		logger:   logger,
		now:      time.Now(),
	}
}

// Dataset bundles the outputs of the build stages that downstream steps need
type Dataset struct {
	Tables  map[string]*ingest.Table
	Records []domain.AnalyticalRecord
}

// BuildDataset runs ingestion, normalization, and the analytical join
func (p *Pipeline) BuildDataset(ctx context.Context) (*Dataset, error) {
	loader := ingest.NewLoader(p.paths.BaseDir, p.logger)
	tables, err := loader.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("consolidation failed: %w", err)
	}

	cleaner := normalize.NewCleaner(p.mappings, p.logger)
	cleaned, err := cleaner.CleanAll(ctx, tables)
	if err != nil {
		return nil, fmt.Errorf("normalization failed: %w", err)
	}

	builder := analytics.NewBuilder(p.now, p.thesis.RecencyWindowDays, p.logger)
	records := builder.Build(ctx, cleaned)

	return &Dataset{Tables: tables, Records: records}, nil
}

// ExportAnalytical writes the analytical dataset, the trend tables, and the
// data quality report.
func (p *Pipeline) ExportAnalytical(ctx context.Context, ds *Dataset) error {
	analyticalExporter := exporter.NewAnalyticalExporter(p.paths, p.logger)
	if err := analyticalExporter.Export(ctx, ds.Records, p.paths.AnalyticalCSV); err != nil {
		return err
	}

	reports := exporter.NewReportExporter(p.paths, p.logger)

	periodTrends := analytics.PeriodTrends(ctx, ds.Records, p.logger)
	if err := reports.ExportPeriodTrends(ctx, periodTrends, "period_trends.csv"); err != nil {
		return err
	}

	sectorTrends := analytics.SectorTrends(ctx, ds.Records, p.logger)
	if err := reports.ExportSectorTrends(ctx, sectorTrends, "sector_trends.csv"); err != nil {
		return err
	}

	quality := ingest.QualityReport(ds.Tables, p.now)
	return reports.WriteQualityReport(ctx, quality, p.paths.QualityReportTXT)
}

// GenerateTargets classifies and scores the records, then exports the ranked
// target list (CSV and XLSX) and the full-universe listing.
func (p *Pipeline) GenerateTargets(ctx context.Context, records []domain.AnalyticalRecord) error {
	classifier := classify.NewClassifier(p.thesis, p.logger)
	classifications := classifier.ClassifyAll(ctx, records)

	engine := scoring.NewEngine(p.thesis, p.logger)
	targets, err := engine.GenerateTargets(ctx, records, classifications)
	if err != nil {
		return fmt.Errorf("target generation failed: %w", err)
	}

	targetsExporter := exporter.NewTargetsExporter(p.paths, p.logger)
	if err := targetsExporter.ExportCSV(ctx, targets, p.paths.TargetsCSV); err != nil {
		return err
	}

	excelExporter := exporter.NewExcelExporter(p.logger)
	if err := excelExporter.ExportTargets(ctx, targets, p.paths.TargetsXLSX); err != nil {
		return err
	}

	universe, err := engine.FullUniverse(ctx, records, classifications)
	if err != nil {
		return fmt.Errorf("universe listing failed: %w", err)
	}
	return targetsExporter.ExportUniverse(ctx, universe, p.paths.UniverseCSV)
}
