package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"formdcli/internal/app"
	"formdcli/internal/config"
	"formdcli/internal/infrastructure"
	"formdcli/pkg/contracts"
)

func main() {
	dir := flag.String("dir", "", "directory containing quarterly extract directories (defaults to configured base dir)")
	reports := flag.String("reports", "", "output directory for reports (defaults to configured reports dir)")
	thesisFile := flag.String("thesis", "", "thesis YAML file (defaults to configured thesis file, then built-in defaults)")
	mappingsFile := flag.String("mappings", "", "mapping tables YAML file (defaults to built-in tables)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	if *dir != "" {
		cfg.Paths.BaseDir = *dir
	}
	if *reports != "" {
		cfg.Paths.ReportsDir = *reports
	}
	if *thesisFile != "" {
		cfg.Paths.ThesisFile = *thesisFile
	}

	paths, err := config.NewPaths(cfg.Paths)
	if err != nil {
		slog.Error("Failed to resolve paths", "error", err)
		os.Exit(1)
	}
	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	if cfg.Logging.FilePath == "" {
		cfg.Logging.FilePath = paths.GetLogPath("targets.log")
	}
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	thesis, err := config.LoadThesis(cfg.Paths.ThesisFile)
	if err != nil {
		logger.Error("Failed to load thesis config", "error", err)
		os.Exit(1)
	}
	mappings, err := config.LoadMappings(*mappingsFile)
	if err != nil {
		logger.Error("Failed to load mapping tables", "error", err)
		os.Exit(1)
	}

	runID := uuid.NewString()
	ctx := infrastructure.WithRunID(context.Background(), runID)
	ctx, cancel := context.WithTimeout(ctx, cfg.Pipeline.StageTimeout)
	defer cancel()

	logger.InfoContext(ctx, "Starting target generation",
		slog.String("version", contracts.GetVersion()),
		slog.String("run_id", runID),
		slog.String("base_dir", paths.BaseDir),
		slog.Float64("min_score", thesis.MinTargetScore),
		slog.Int("top_targets", thesis.TopTargets))

	start := time.Now()
	pipeline := app.NewPipeline(cfg, paths, thesis, mappings, logger)

	ds, err := pipeline.BuildDataset(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Dataset build failed", "error", err)
		os.Exit(1)
	}
	if err := pipeline.GenerateTargets(ctx, ds.Records); err != nil {
		logger.ErrorContext(ctx, "Target generation failed", "error", err)
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Target generation completed",
		slog.Int("records", len(ds.Records)),
		slog.Duration("elapsed", time.Since(start)),
		slog.String("targets_csv", paths.TargetsCSV),
		slog.String("targets_xlsx", paths.TargetsXLSX))

	fmt.Printf("Target generation complete: %s\n", paths.TargetsCSV)
}
