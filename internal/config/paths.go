package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains all the application paths.
// This is the single source of truth for file locations in the pipeline.
type Paths struct {
	// BaseDir holds the quarterly extract directories (e.g. 2024Q1_d/)
	BaseDir    string
	ReportsDir string
	LogsDir    string

	// Well-known output files
	AnalyticalCSV    string
	TargetsCSV       string
	TargetsXLSX      string
	UniverseCSV      string
	QualityReportTXT string
}

// NewPaths builds the path set from configuration, resolving relative
// directories against the current working directory.
func NewPaths(cfg PathsConfig) (*Paths, error) {
	base, err := filepath.Abs(cfg.BaseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base dir: %w", err)
	}

	reports := cfg.ReportsDir
	if !filepath.IsAbs(reports) {
		reports = filepath.Join(base, reports)
	}

	logs := cfg.LogsDir
	if !filepath.IsAbs(logs) {
		logs, err = filepath.Abs(logs)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve logs dir: %w", err)
		}
	}

	return &Paths{
		BaseDir:          base,
		ReportsDir:       reports,
		LogsDir:          logs,
		AnalyticalCSV:    filepath.Join(reports, "analytical_dataset.csv"),
		TargetsCSV:       filepath.Join(reports, "target_companies.csv"),
		TargetsXLSX:      filepath.Join(reports, "target_companies.xlsx"),
		UniverseCSV:      filepath.Join(reports, "ai_saas_universe.csv"),
		QualityReportTXT: filepath.Join(reports, "data_quality_report.txt"),
	}, nil
}

// EnsureDirectories creates the output directories if they do not exist
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.ReportsDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetReportPath returns a path inside the reports directory
func (p *Paths) GetReportPath(filename string) string {
	return filepath.Join(p.ReportsDir, filename)
}

// GetLogPath returns a path inside the logs directory
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// FileExists checks if a file exists at the given path
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
