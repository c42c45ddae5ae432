package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains all the application paths
// This is the single source of truth for every file a run produces
type Paths struct {
	BaseDir   string
	OutputDir string
	LogsDir   string

	// Artifact files (fixed names inside the output directory)
	DatasetCSV   string
	HistogramPNG string
	BoxplotPNG   string
	BarplotPNG   string
	ScatterPNG   string
}

// GetPaths returns the application paths relative to the working directory.
// The output folder lands wherever the binary is invoked from, not next to
// the executable.
func GetPaths() (*Paths, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %v", err)
	}
	return NewPaths(wd), nil
}

// NewPaths builds the path set under the given base directory.
// Tests use this with a temporary directory.
func NewPaths(baseDir string) *Paths {
	outputDir := filepath.Join(baseDir, OutputDirName)

	return &Paths{
		BaseDir:   baseDir,
		OutputDir: outputDir,
		LogsDir:   filepath.Join(baseDir, LogsDirName),

		DatasetCSV:   filepath.Join(outputDir, DatasetFileName),
		HistogramPNG: filepath.Join(outputDir, HistogramFileName),
		BoxplotPNG:   filepath.Join(outputDir, BoxplotFileName),
		BarplotPNG:   filepath.Join(outputDir, BarplotFileName),
		ScatterPNG:   filepath.Join(outputDir, ScatterFileName),
	}
}

// EnsureDirectories creates all required directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	directories := []string{
		p.OutputDir,
		p.LogsDir,
	}

	logger := slog.Default()

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %v", dir, err)
		}

		if logger != nil {
			logger.Debug("Ensured directory exists",
				slog.String("directory", dir))
		}
	}

	return nil
}

// ArtifactFiles returns the full artifact path set in render order:
// the dataset table first, then the four charts.
func (p *Paths) ArtifactFiles() []string {
	return []string{
		p.DatasetCSV,
		p.HistogramPNG,
		p.BoxplotPNG,
		p.BarplotPNG,
		p.ScatterPNG,
	}
}

// GetLogPath returns the path for a log file
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// DisplayPath returns a path relative to the base directory for user-facing
// output, falling back to the full path when it cannot be relativized.
func (p *Paths) DisplayPath(path string) string {
	rel, err := filepath.Rel(p.BaseDir, path)
	if err != nil {
		return path
	}
	return rel
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// LogPathResolution logs detailed path resolution information for debugging
func (p *Paths) LogPathResolution() {
	logger := slog.Default()
	if logger == nil {
		return
	}

	logger.Info("Path resolution summary",
		slog.Group("directories",
			slog.String("base", p.BaseDir),
			slog.String("output", p.OutputDir),
			slog.String("logs", p.LogsDir),
		),
		slog.Group("artifacts",
			slog.String("dataset_csv", p.DatasetCSV),
			slog.String("histogram_png", p.HistogramPNG),
			slog.String("boxplot_png", p.BoxplotPNG),
			slog.String("barplot_png", p.BarplotPNG),
			slog.String("scatter_png", p.ScatterPNG),
		))
}
