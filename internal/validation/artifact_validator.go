// Package validation checks the generated artifacts on disk.
//
// After the pipeline has exported the dataset and rendered the charts,
// ArtifactValidator confirms the output directory holds exactly the
// expected files and that each one is a non-empty file of the right
// format. Anything missing, extra, or malformed is reported as an
// error since a partial output directory means the run failed.
package validation

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var pngSignature = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// ArtifactValidator provides validation of exported artifact files
type ArtifactValidator struct {
	logger *slog.Logger
}

// NewArtifactValidator creates a new artifact validator
func NewArtifactValidator(logger *slog.Logger) *ArtifactValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &ArtifactValidator{
		logger: logger,
	}
}

// ValidateOutputDirectory ensures the output directory exists or can be
// created, and is writable
func (v *ArtifactValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	// Verify it's writable by creating a test file
	testFile := filepath.Join(dir, ".write_test")
	file, err := os.Create(testFile)
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("output directory %s is not writable: %w", dir, err)
	}
	file.Close()
	os.Remove(testFile)

	v.logger.Debug("Output directory validated",
		slog.String("directory", dir))
	return nil
}

// ValidateArtifacts checks that dir contains exactly the expected files,
// nothing missing and nothing extra, and that each file passes its
// format check
func (v *ArtifactValidator) ValidateArtifacts(dir string, expectedFiles []string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		v.logger.Error("Failed to read output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to read output directory %s: %w", dir, err)
	}

	found := make(map[string]bool, len(entries))
	for _, entry := range entries {
		found[entry.Name()] = true
	}

	expected := make(map[string]bool, len(expectedFiles))
	var missing []string
	for _, path := range expectedFiles {
		name := filepath.Base(path)
		expected[name] = true
		if !found[name] {
			missing = append(missing, name)
		}
	}

	var extra []string
	for name := range found {
		if !expected[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)

	if len(missing) > 0 {
		v.logger.Error("Expected artifacts are missing",
			slog.String("directory", dir),
			slog.Any("missing", missing))
		return fmt.Errorf("missing artifacts in %s: %s", dir, strings.Join(missing, ", "))
	}
	if len(extra) > 0 {
		v.logger.Error("Unexpected files in output directory",
			slog.String("directory", dir),
			slog.Any("extra", extra))
		return fmt.Errorf("unexpected files in %s: %s", dir, strings.Join(extra, ", "))
	}

	for _, path := range expectedFiles {
		fullPath := path
		if !filepath.IsAbs(path) {
			fullPath = filepath.Join(dir, path)
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".csv":
			if err := v.ValidateCSVFile(fullPath); err != nil {
				return err
			}
		case ".png":
			if err := v.ValidatePNGFile(fullPath); err != nil {
				return err
			}
		default:
			if err := v.ValidateFile(fullPath); err != nil {
				return err
			}
		}
	}

	v.logger.Info("Artifacts validated",
		slog.String("directory", dir),
		slog.Int("files", len(expectedFiles)))
	return nil
}

// ValidateFile checks if a specific file exists, is a regular file, and
// is not empty
func (v *ArtifactValidator) ValidateFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("File does not exist",
			slog.String("file", path))
		return fmt.Errorf("file %s does not exist", path)
	}
	if err != nil {
		v.logger.Error("Failed to stat file",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	if info.IsDir() {
		v.logger.Error("Path is a directory, not a file",
			slog.String("path", path))
		return fmt.Errorf("%s is a directory, not a file", path)
	}
	if info.Size() == 0 {
		v.logger.Error("File is empty",
			slog.String("file", path))
		return fmt.Errorf("file %s is empty", path)
	}

	v.logger.Debug("File validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateCSVFile checks if a file is a valid CSV export: it must exist,
// carry the .csv extension, and hold at least a header line
func (v *ArtifactValidator) ValidateCSVFile(path string) error {
	if err := v.ValidateFile(path); err != nil {
		return err
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".csv" {
		v.logger.Error("File is not a CSV file",
			slog.String("file", path),
			slog.String("extension", ext))
		return fmt.Errorf("file %s is not a CSV file (extension: %s)", path, ext)
	}

	return nil
}

// ValidatePNGFile checks if a file is a valid PNG image by extension and
// signature bytes
func (v *ArtifactValidator) ValidatePNGFile(path string) error {
	if err := v.ValidateFile(path); err != nil {
		return err
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".png" {
		v.logger.Error("File is not a PNG file",
			slog.String("file", path),
			slog.String("extension", ext))
		return fmt.Errorf("file %s is not a PNG file (extension: %s)", path, ext)
	}

	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("File is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return fmt.Errorf("file %s is not readable: %w", path, err)
	}
	defer file.Close()

	header := make([]byte, len(pngSignature))
	if _, err := io.ReadFull(file, header); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			v.logger.Error("File is too short to hold a PNG signature",
				slog.String("file", path))
			return fmt.Errorf("file %s is not a valid PNG image", path)
		}
		v.logger.Error("Failed to read PNG header",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to read PNG header of %s: %w", path, err)
	}
	if !bytes.Equal(header, pngSignature) {
		v.logger.Error("File does not carry a PNG signature",
			slog.String("file", path))
		return fmt.Errorf("file %s is not a valid PNG image", path)
	}

	return nil
}
