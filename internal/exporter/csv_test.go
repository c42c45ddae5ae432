package exporter

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"impactsim/internal/config"
	apperrors "impactsim/internal/errors"
	"impactsim/internal/simulation"
)

func setupTestEnv(t *testing.T) (*CSVWriter, *config.Paths) {
	t.Helper()

	paths := config.NewPaths(t.TempDir())
	require.NoError(t, paths.EnsureDirectories())

	return NewCSVWriter(paths), paths
}

func TestNewCSVWriter(t *testing.T) {
	paths := &config.Paths{}
	writer := NewCSVWriter(paths)

	assert.NotNil(t, writer)
	assert.Equal(t, paths, writer.paths)
}

func TestCSVWriter_WriteCSV(t *testing.T) {
	writer, paths := setupTestEnv(t)

	tests := []struct {
		name     string
		filePath string
		options  WriteOptions
		validate func(t *testing.T, filePath string)
	}{
		{
			name:     "basic write with headers",
			filePath: "basic.csv",
			options: WriteOptions{
				Headers: []string{"business_id", "sector"},
				Records: [][]string{
					{"1", "Retail"},
					{"2", "Hospitality"},
				},
			},
			validate: func(t *testing.T, filePath string) {
				content, err := os.ReadFile(filePath)
				require.NoError(t, err)

				lines := strings.Split(strings.TrimSpace(string(content)), "\n")
				assert.Len(t, lines, 3)
				assert.Equal(t, "business_id,sector", lines[0])
				assert.Equal(t, "1,Retail", lines[1])
				assert.Equal(t, "2,Hospitality", lines[2])
			},
		},
		{
			name:     "write with BOM prefix",
			filePath: "bom.csv",
			options: WriteOptions{
				Headers:   []string{"sector", "decline"},
				Records:   [][]string{{"Retail", "42.5"}},
				BOMPrefix: true,
			},
			validate: func(t *testing.T, filePath string) {
				content, err := os.ReadFile(filePath)
				require.NoError(t, err)

				assert.True(t, bytes.HasPrefix(content, []byte{0xEF, 0xBB, 0xBF}))

				lines := strings.Split(strings.TrimSpace(string(content[3:])), "\n")
				assert.Equal(t, "sector,decline", lines[0])
				assert.Equal(t, "Retail,42.5", lines[1])
			},
		},
		{
			name:     "write without headers",
			filePath: "no_headers.csv",
			options: WriteOptions{
				Records: [][]string{
					{"a", "b"},
					{"c", "d"},
				},
			},
			validate: func(t *testing.T, filePath string) {
				content, err := os.ReadFile(filePath)
				require.NoError(t, err)

				lines := strings.Split(strings.TrimSpace(string(content)), "\n")
				assert.Len(t, lines, 2)
				assert.Equal(t, "a,b", lines[0])
			},
		},
		{
			name:     "empty records writes header only",
			filePath: "empty.csv",
			options: WriteOptions{
				Headers: []string{"col1", "col2"},
				Records: [][]string{},
			},
			validate: func(t *testing.T, filePath string) {
				content, err := os.ReadFile(filePath)
				require.NoError(t, err)

				lines := strings.Split(strings.TrimSpace(string(content)), "\n")
				assert.Len(t, lines, 1)
				assert.Equal(t, "col1,col2", lines[0])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := writer.WriteCSV(tt.filePath, tt.options)
			require.NoError(t, err)

			tt.validate(t, filepath.Join(paths.OutputDir, tt.filePath))
		})
	}
}

func TestCSVWriter_WriteCSV_Append(t *testing.T) {
	writer, paths := setupTestEnv(t)

	err := writer.WriteCSV("append.csv", WriteOptions{
		Headers: []string{"col1", "col2"},
		Records: [][]string{{"first", "row"}},
	})
	require.NoError(t, err)

	err = writer.WriteCSV("append.csv", WriteOptions{
		Records: [][]string{{"second", "row"}},
		Append:  true,
	})
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(paths.OutputDir, "append.csv"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, "col1,col2", lines[0])
	assert.Equal(t, "first,row", lines[1])
	assert.Equal(t, "second,row", lines[2])
}

func TestCSVWriter_WriteCSV_OverwritesExistingFile(t *testing.T) {
	writer, paths := setupTestEnv(t)

	err := writer.WriteCSV("overwrite.csv", WriteOptions{
		Headers: []string{"col"},
		Records: [][]string{{"old1"}, {"old2"}, {"old3"}},
	})
	require.NoError(t, err)

	err = writer.WriteCSV("overwrite.csv", WriteOptions{
		Headers: []string{"col"},
		Records: [][]string{{"new"}},
	})
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(paths.OutputDir, "overwrite.csv"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, "new", lines[1])
}

func TestCSVWriter_WriteCSV_CreatesDirectory(t *testing.T) {
	paths := config.NewPaths(t.TempDir())
	writer := NewCSVWriter(paths)

	// Output directory does not exist yet
	err := writer.WriteCSV("nested.csv", WriteOptions{
		Headers: []string{"col"},
		Records: [][]string{{"val"}},
	})
	require.NoError(t, err)

	assert.True(t, config.FileExists(filepath.Join(paths.OutputDir, "nested.csv")))
}

func TestCSVWriter_WriteCSV_SurfacesFlushError(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("/dev/full not available")
	}

	writer, _ := setupTestEnv(t)

	// A small payload stays in the csv writer's buffer until the final
	// flush, so the only write that can fail is the flush itself
	err := writer.WriteCSV("/dev/full", WriteOptions{
		Headers: []string{"business_id", "sector"},
		Records: [][]string{{"1", "Retail"}},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "flush")
}

func TestCSVWriter_ResolvePath(t *testing.T) {
	writer, paths := setupTestEnv(t)

	t.Run("relative path joins output dir", func(t *testing.T) {
		result := writer.resolvePath("report.csv")
		assert.Equal(t, filepath.Join(paths.OutputDir, "report.csv"), result)
	})

	t.Run("absolute path passes through", func(t *testing.T) {
		abs := filepath.Join(paths.BaseDir, "elsewhere.csv")
		assert.Equal(t, abs, writer.resolvePath(abs))
	})
}

func TestCSVWriter_WriteDataset(t *testing.T) {
	writer, paths := setupTestEnv(t)

	dataset := &simulation.Dataset{
		Records: []simulation.BusinessRecord{
			{ID: 1, Sector: simulation.SectorRetail, PreShockRevenue: 500, PostShockRevenue: 250, DropFactor: 0.5, DeclinePercent: 50},
			{ID: 2, Sector: simulation.SectorHealthcare, PreShockRevenue: 320.5, PostShockRevenue: 320.5, DropFactor: 1, DeclinePercent: 0},
			{ID: 3, Sector: simulation.SectorServices, PreShockRevenue: 100, PostShockRevenue: 30.000000000000004, DropFactor: 0.3, DeclinePercent: 69.99999999999999},
		},
		Seed: 42,
	}

	err := writer.WriteDataset(context.Background(), dataset, config.DatasetFileName)
	require.NoError(t, err)

	file, err := os.Open(filepath.Join(paths.OutputDir, config.DatasetFileName))
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)

	// Header matches the column names byte for byte, no BOM
	assert.Equal(t, DatasetColumns, rows[0])

	// Rows keep insertion order and round-trip exactly
	for i, rec := range dataset.Records {
		row := rows[i+1]
		assert.Equal(t, strconv.Itoa(rec.ID), row[0])
		assert.Equal(t, rec.Sector.String(), row[1])

		pre, err := strconv.ParseFloat(row[2], 64)
		require.NoError(t, err)
		assert.Equal(t, rec.PreShockRevenue, pre)

		post, err := strconv.ParseFloat(row[3], 64)
		require.NoError(t, err)
		assert.Equal(t, rec.PostShockRevenue, post)

		decline, err := strconv.ParseFloat(row[4], 64)
		require.NoError(t, err)
		assert.Equal(t, rec.DeclinePercent, decline)
	}
}

func TestCSVWriter_WriteDataset_OmitsDropFactor(t *testing.T) {
	writer, paths := setupTestEnv(t)

	dataset := &simulation.Dataset{
		Records: []simulation.BusinessRecord{
			{ID: 1, Sector: simulation.SectorRetail, PreShockRevenue: 500, PostShockRevenue: 250, DropFactor: 0.5, DeclinePercent: 50},
		},
	}

	err := writer.WriteDataset(context.Background(), dataset, "no_drop.csv")
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(paths.OutputDir, "no_drop.csv"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, 5, len(strings.Split(lines[0], ",")))
	assert.Equal(t, 5, len(strings.Split(lines[1], ",")))
	assert.NotContains(t, string(content), "drop")
}

func TestCSVWriter_WriteDataset_EmptyDataset(t *testing.T) {
	writer, _ := setupTestEnv(t)

	err := writer.WriteDataset(context.Background(), &simulation.Dataset{}, "empty.csv")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
}

func TestCSVWriter_WriteDataset_StorageError(t *testing.T) {
	paths := config.NewPaths(t.TempDir())
	writer := NewCSVWriter(paths)

	// A file where the output directory should be makes MkdirAll fail
	require.NoError(t, os.WriteFile(paths.OutputDir, []byte("in the way"), 0644))

	dataset := &simulation.Dataset{
		Records: []simulation.BusinessRecord{
			{ID: 1, Sector: simulation.SectorRetail, PreShockRevenue: 500, PostShockRevenue: 250, DeclinePercent: 50},
		},
	}

	err := writer.WriteDataset(context.Background(), dataset, "blocked.csv")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrTypeStorage, appErr.Type)
	assert.Equal(t, "blocked.csv", appErr.Context["path"])
}
