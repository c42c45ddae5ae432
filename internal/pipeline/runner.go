package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"impactsim/internal/analytics"
	"impactsim/internal/config"
	"impactsim/internal/errors"
	"impactsim/internal/exporter"
	"impactsim/internal/infrastructure"
	"impactsim/internal/simulation"
	"impactsim/internal/validation"
)

// Result holds what a completed run produced
type Result struct {
	RunID           string
	Dataset         *simulation.Dataset
	SectorSummaries []analytics.SectorSummary
	Summary         analytics.DatasetSummary
	Artifacts       []string
	Duration        time.Duration
}

// Runner executes the full generation pipeline: simulate the dataset,
// derive the decline metric, export the CSV, render the charts, and
// verify the artifacts on disk. Every step runs sequentially on the
// calling goroutine and the first error aborts the run.
type Runner struct {
	cfg    *config.Config
	paths  *config.Paths
	out    io.Writer
	logger *slog.Logger
}

// NewRunner creates a pipeline runner. Progress lines are written to
// out, which defaults to os.Stdout when nil. If logger is nil,
// slog.Default() is used.
func NewRunner(cfg *config.Config, paths *config.Paths, out io.Writer, logger *slog.Logger) *Runner {
	if out == nil {
		out = os.Stdout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		cfg:    cfg,
		paths:  paths,
		out:    out,
		logger: logger,
	}
}

// Run executes the pipeline steps in order and returns the run result.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	ctx = infrastructure.EnsureRunID(ctx)
	start := time.Now()

	r.logger.InfoContext(ctx, "Starting pipeline run",
		slog.Int("record_count", r.cfg.Simulation.RecordCount),
		slog.Uint64("seed", r.cfg.Simulation.Seed))

	simulator := simulation.NewSimulator(r.cfg.Simulation, infrastructure.WithComponent(r.logger, "simulator"))
	dataset, err := simulator.Run(ctx)
	if err != nil {
		infrastructure.WithError(r.logger, err).ErrorContext(ctx, "Simulation failed")
		return nil, err
	}

	calculator := analytics.NewDeclineCalculator(r.cfg.Simulation, infrastructure.WithComponent(r.logger, "calculator"))
	if err := calculator.Calculate(ctx, dataset); err != nil {
		infrastructure.WithError(r.logger, err).ErrorContext(ctx, "Metric derivation failed")
		return nil, err
	}

	validator := validation.NewArtifactValidator(infrastructure.WithComponent(r.logger, "validator"))

	// The created message is printed only when the directory was absent
	created := !config.FileExists(r.paths.OutputDir)
	if err := r.paths.EnsureDirectories(); err != nil {
		infrastructure.WithError(r.logger, err).ErrorContext(ctx, "Failed to create directories")
		return nil, errors.NewStorageError("failed to create directories", err)
	}
	if err := validator.ValidateOutputDirectory(r.paths.OutputDir); err != nil {
		infrastructure.WithError(r.logger, err).ErrorContext(ctx, "Output directory unavailable")
		return nil, errors.NewStorageError("output directory unavailable", err)
	}
	if created {
		fmt.Fprintf(r.out, "Created output directory: %s\n", r.paths.DisplayPath(r.paths.OutputDir))
	}

	writer := exporter.NewCSVWriter(r.paths)
	if err := writer.WriteDataset(ctx, dataset, r.paths.DatasetCSV); err != nil {
		infrastructure.WithError(r.logger, err).ErrorContext(ctx, "Dataset export failed")
		return nil, err
	}
	fmt.Fprintf(r.out, "Data saved to: %s\n", r.paths.DisplayPath(r.paths.DatasetCSV))

	summaries := calculator.SummarizeBySector(ctx, dataset)
	summary := calculator.Summarize(ctx, dataset)

	renderer := exporter.NewChartRenderer(infrastructure.WithComponent(r.logger, "renderer"))

	if err := renderer.RenderHistogram(ctx, dataset, r.paths.HistogramPNG); err != nil {
		infrastructure.WithError(r.logger, err).ErrorContext(ctx, "Histogram rendering failed")
		return nil, err
	}
	fmt.Fprintf(r.out, "Histogram saved to: %s\n", r.paths.DisplayPath(r.paths.HistogramPNG))

	if err := renderer.RenderBoxplot(ctx, dataset, r.paths.BoxplotPNG); err != nil {
		infrastructure.WithError(r.logger, err).ErrorContext(ctx, "Boxplot rendering failed")
		return nil, err
	}
	fmt.Fprintf(r.out, "Boxplot saved to: %s\n", r.paths.DisplayPath(r.paths.BoxplotPNG))

	if err := renderer.RenderBarChart(ctx, summaries, r.paths.BarplotPNG); err != nil {
		infrastructure.WithError(r.logger, err).ErrorContext(ctx, "Bar plot rendering failed")
		return nil, err
	}
	fmt.Fprintf(r.out, "Bar plot saved to: %s\n", r.paths.DisplayPath(r.paths.BarplotPNG))

	if err := renderer.RenderScatter(ctx, dataset, r.paths.ScatterPNG); err != nil {
		infrastructure.WithError(r.logger, err).ErrorContext(ctx, "Scatter plot rendering failed")
		return nil, err
	}
	fmt.Fprintf(r.out, "Scatter plot saved to: %s\n", r.paths.DisplayPath(r.paths.ScatterPNG))

	if err := validator.ValidateArtifacts(r.paths.OutputDir, r.paths.ArtifactFiles()); err != nil {
		infrastructure.WithError(r.logger, err).ErrorContext(ctx, "Artifact verification failed")
		return nil, errors.NewStorageError("artifact verification failed", err)
	}

	fmt.Fprintf(r.out, "All images have been saved in the '%s' folder. You can now download them from that folder.\n", config.OutputDirName)

	elapsed := time.Since(start)
	r.logger.InfoContext(ctx, "Pipeline run complete",
		slog.Int("records", dataset.Len()),
		slog.Duration("duration", elapsed))

	return &Result{
		RunID:           infrastructure.GetRunID(ctx),
		Dataset:         dataset,
		SectorSummaries: summaries,
		Summary:         summary,
		Artifacts:       r.paths.ArtifactFiles(),
		Duration:        elapsed,
	}, nil
}
