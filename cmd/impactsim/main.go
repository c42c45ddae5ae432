package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"impactsim/internal/config"
	"impactsim/internal/infrastructure"
	"impactsim/internal/pipeline"
)

func main() {
	// The tool takes no arguments: every run uses the same fixed
	// configuration so outputs are reproducible.
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	// Initialize paths relative to the working directory
	paths, err := config.GetPaths()
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}

	// Structured logs go to a file so stdout carries only progress lines
	cfg.Logging.FilePath = paths.GetLogPath(config.LogFileName)
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	logger.Info("Starting impactsim",
		slog.String("version", config.AppVersion),
		slog.String("base_dir", paths.BaseDir),
		slog.Int("record_count", cfg.Simulation.RecordCount),
		slog.Uint64("seed", cfg.Simulation.Seed))
	paths.LogPathResolution()

	ctx := infrastructure.ContextWithRunID(context.Background())

	runner := pipeline.NewRunner(cfg, paths, os.Stdout, logger)
	result, err := runner.Run(ctx)
	if err != nil {
		infrastructure.WithError(logger, err).Error("Pipeline run failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	printSummary(result)

	infrastructure.LoggerWithContext(ctx).Info("impactsim finished",
		slog.Int("records", result.Dataset.Len()),
		slog.Int("artifacts", len(result.Artifacts)),
		slog.Duration("duration", result.Duration))
}

// printSummary prints the per-sector breakdown after the artifacts are
// written
func printSummary(result *pipeline.Result) {
	fmt.Println("\n=== REVENUE DECLINE BY SECTOR ===")
	fmt.Println("Sector        | Businesses | Avg Decline %")
	fmt.Println("--------------|------------|--------------")

	for _, s := range result.SectorSummaries {
		fmt.Printf("%-13s | %10d | %13.2f\n", s.Sector, s.Businesses, s.MeanDecline)
	}

	fmt.Printf("\nTotal: %d businesses, decline mean %.2f%% (min %.2f%%, max %.2f%%)\n",
		result.Summary.Records,
		result.Summary.MeanDecline,
		result.Summary.MinDecline,
		result.Summary.MaxDecline)
}
