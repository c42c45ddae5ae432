package exporter

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"impactsim/internal/analytics"
	"impactsim/internal/config"
	apperrors "impactsim/internal/errors"
	"impactsim/internal/simulation"
)

var pngMagic = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// chartDataset simulates and derives a small dataset for rendering
func chartDataset(t *testing.T) *simulation.Dataset {
	t.Helper()

	params := config.SimulationConfig{
		RecordCount:   200,
		Seed:          7,
		RevenueMean:   500,
		RevenueStdDev: 150,
		RevenueFloor:  100,
		DropMin:       0.3,
		DropMax:       1.0,
	}

	dataset, err := simulation.NewSimulator(params, nil).Run(context.Background())
	require.NoError(t, err)
	require.NoError(t, analytics.NewDeclineCalculator(params, nil).Calculate(context.Background(), dataset))

	return dataset
}

// assertPNG checks that the file exists and starts with the PNG signature
func assertPNG(t *testing.T, path string) {
	t.Helper()

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Greater(t, len(content), len(pngMagic))
	assert.True(t, bytes.HasPrefix(content, pngMagic), "file is not a PNG")
}

func TestNewChartRenderer_NilLogger(t *testing.T) {
	renderer := NewChartRenderer(nil)
	assert.NotNil(t, renderer)
	assert.NotNil(t, renderer.logger)
}

func TestChartRenderer_RenderHistogram(t *testing.T) {
	renderer := NewChartRenderer(nil)
	dataset := chartDataset(t)
	path := filepath.Join(t.TempDir(), "hist.png")

	err := renderer.RenderHistogram(context.Background(), dataset, path)
	require.NoError(t, err)

	assertPNG(t, path)
}

func TestChartRenderer_RenderHistogram_EmptyDataset(t *testing.T) {
	renderer := NewChartRenderer(nil)
	path := filepath.Join(t.TempDir(), "hist.png")

	err := renderer.RenderHistogram(context.Background(), &simulation.Dataset{}, path)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
	assert.False(t, config.FileExists(path))
}

func TestChartRenderer_RenderBoxplot(t *testing.T) {
	renderer := NewChartRenderer(nil)
	dataset := chartDataset(t)
	path := filepath.Join(t.TempDir(), "box.png")

	err := renderer.RenderBoxplot(context.Background(), dataset, path)
	require.NoError(t, err)

	assertPNG(t, path)
}

func TestChartRenderer_RenderBoxplot_EmptyDataset(t *testing.T) {
	renderer := NewChartRenderer(nil)
	path := filepath.Join(t.TempDir(), "box.png")

	err := renderer.RenderBoxplot(context.Background(), &simulation.Dataset{}, path)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
}

func TestChartRenderer_RenderBoxplot_SkipsEmptySectors(t *testing.T) {
	renderer := NewChartRenderer(nil)
	dataset := &simulation.Dataset{
		Records: []simulation.BusinessRecord{
			{ID: 1, Sector: simulation.SectorRetail, PreShockRevenue: 500, PostShockRevenue: 250, DeclinePercent: 50},
			{ID: 2, Sector: simulation.SectorRetail, PreShockRevenue: 400, PostShockRevenue: 300, DeclinePercent: 25},
			{ID: 3, Sector: simulation.SectorHealthcare, PreShockRevenue: 600, PostShockRevenue: 540, DeclinePercent: 10},
		},
	}
	path := filepath.Join(t.TempDir(), "box.png")

	err := renderer.RenderBoxplot(context.Background(), dataset, path)
	require.NoError(t, err)

	assertPNG(t, path)
}

func TestChartRenderer_RenderBarChart(t *testing.T) {
	renderer := NewChartRenderer(nil)
	dataset := chartDataset(t)

	params := config.SimulationConfig{
		RecordCount:   200,
		Seed:          7,
		RevenueMean:   500,
		RevenueStdDev: 150,
		RevenueFloor:  100,
		DropMin:       0.3,
		DropMax:       1.0,
	}
	summaries := analytics.NewDeclineCalculator(params, nil).SummarizeBySector(context.Background(), dataset)
	require.NotEmpty(t, summaries)

	path := filepath.Join(t.TempDir(), "bar.png")

	err := renderer.RenderBarChart(context.Background(), summaries, path)
	require.NoError(t, err)

	assertPNG(t, path)
}

func TestChartRenderer_RenderBarChart_NoSummaries(t *testing.T) {
	renderer := NewChartRenderer(nil)
	path := filepath.Join(t.TempDir(), "bar.png")

	err := renderer.RenderBarChart(context.Background(), nil, path)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
}

func TestChartRenderer_RenderScatter(t *testing.T) {
	renderer := NewChartRenderer(nil)
	dataset := chartDataset(t)
	path := filepath.Join(t.TempDir(), "scatter.png")

	err := renderer.RenderScatter(context.Background(), dataset, path)
	require.NoError(t, err)

	assertPNG(t, path)
}

func TestChartRenderer_RenderScatter_EmptyDataset(t *testing.T) {
	renderer := NewChartRenderer(nil)
	path := filepath.Join(t.TempDir(), "scatter.png")

	err := renderer.RenderScatter(context.Background(), &simulation.Dataset{}, path)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
}

func TestChartRenderer_RenderAll(t *testing.T) {
	renderer := NewChartRenderer(nil)
	dataset := chartDataset(t)

	params := config.SimulationConfig{
		RecordCount:   200,
		Seed:          7,
		RevenueMean:   500,
		RevenueStdDev: 150,
		RevenueFloor:  100,
		DropMin:       0.3,
		DropMax:       1.0,
	}
	summaries := analytics.NewDeclineCalculator(params, nil).SummarizeBySector(context.Background(), dataset)
	paths := config.NewPaths(t.TempDir())

	err := renderer.RenderAll(context.Background(), dataset, summaries, paths)
	require.NoError(t, err)

	assertPNG(t, paths.HistogramPNG)
	assertPNG(t, paths.BoxplotPNG)
	assertPNG(t, paths.BarplotPNG)
	assertPNG(t, paths.ScatterPNG)
}

func TestChartRenderer_RenderAll_EmptyDataset(t *testing.T) {
	renderer := NewChartRenderer(nil)
	paths := config.NewPaths(t.TempDir())

	err := renderer.RenderAll(context.Background(), &simulation.Dataset{}, nil, paths)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
	assert.False(t, config.FileExists(paths.HistogramPNG))
}

func TestChartRenderer_SaveCreatesDirectory(t *testing.T) {
	renderer := NewChartRenderer(nil)
	dataset := chartDataset(t)
	path := filepath.Join(t.TempDir(), "nested", "charts", "hist.png")

	err := renderer.RenderHistogram(context.Background(), dataset, path)
	require.NoError(t, err)

	assertPNG(t, path)
}

func TestChartRenderer_OverwritesExistingFile(t *testing.T) {
	renderer := NewChartRenderer(nil)
	dataset := chartDataset(t)
	path := filepath.Join(t.TempDir(), "hist.png")

	require.NoError(t, os.WriteFile(path, []byte("stale"), 0644))

	err := renderer.RenderHistogram(context.Background(), dataset, path)
	require.NoError(t, err)

	assertPNG(t, path)
}

func TestSectorColor_AlphaApplied(t *testing.T) {
	opaque := sectorColor(0, 0xFF)
	translucent := sectorColor(0, scatterAlpha)

	assert.Equal(t, uint8(0xFF), opaque.A)
	assert.Equal(t, uint8(scatterAlpha), translucent.A)
	assert.Equal(t, opaque.R, translucent.R)
	assert.Equal(t, opaque.G, translucent.G)
	assert.Equal(t, opaque.B, translucent.B)
}
