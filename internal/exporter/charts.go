package exporter

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"impactsim/internal/analytics"
	"impactsim/internal/config"
	"impactsim/internal/errors"
	"impactsim/internal/simulation"
)

const (
	histogramBins = 30
	kdeGridSize   = 200

	chartWidth  = 10 * vg.Inch
	chartHeight = 6 * vg.Inch

	// scatter points are translucent so dense regions stay readable
	scatterAlpha = 0xB2
)

var (
	boxWidth = vg.Points(40)
	barWidth = vg.Points(40)
)

var (
	colorSkyBlue   = color.NRGBA{R: 0x87, G: 0xCE, B: 0xEB, A: 0xFF}
	colorSteelBlue = color.NRGBA{R: 0x46, G: 0x82, B: 0xB4, A: 0xFF}
	colorRed       = color.NRGBA{R: 0xFF, G: 0x00, B: 0x00, A: 0xFF}

	// one fill per sector, in canonical sector order
	sectorPalette = []color.NRGBA{
		{R: 0x4C, G: 0x72, B: 0xB0, A: 0xFF},
		{R: 0xDD, G: 0x84, B: 0x52, A: 0xFF},
		{R: 0x55, G: 0xA8, B: 0x68, A: 0xFF},
		{R: 0xC4, G: 0x4E, B: 0x52, A: 0xFF},
		{R: 0x81, G: 0x72, B: 0xB3, A: 0xFF},
	}
)

// sectorColor returns the palette color for the ith sector with the
// given opacity
func sectorColor(i int, alpha uint8) color.NRGBA {
	c := sectorPalette[i%len(sectorPalette)]
	c.A = alpha
	return c
}

// ChartRenderer renders the four descriptive charts as PNG files.
// Every chart uses a 10x6 inch canvas and overwrites any existing file
// at its destination path.
type ChartRenderer struct {
	logger *slog.Logger
}

// NewChartRenderer creates a chart renderer.
// If logger is nil, slog.Default() is used.
func NewChartRenderer(logger *slog.Logger) *ChartRenderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChartRenderer{logger: logger}
}

// RenderHistogram draws the frequency histogram of the decline metric
// with a smoothed density curve scaled to the bin counts.
func (r *ChartRenderer) RenderHistogram(ctx context.Context, dataset *simulation.Dataset, path string) error {
	r.logger.InfoContext(ctx, "Rendering decline histogram",
		slog.String("path", path))

	if dataset.Len() == 0 {
		return errors.NewValidationError("no records to plot")
	}
	declines := analytics.Declines(dataset)

	p := plot.New()
	p.Title.Text = "Histogram of Revenue Decline Percentages"
	p.X.Label.Text = "Revenue Decline (%)"
	p.Y.Label.Text = "Count"

	hist, err := plotter.NewHist(plotter.Values(declines), histogramBins)
	if err != nil {
		return errors.NewRenderError("failed to build histogram", err)
	}
	hist.FillColor = colorSkyBlue
	p.Add(hist)

	kde, err := analytics.NewKernelDensity(declines)
	if err != nil {
		return err
	}

	// Scale the density so the curve overlays the counts the way a
	// count histogram with a density estimate is conventionally drawn:
	// density * N * binWidth.
	lo, hi := floats.Min(declines), floats.Max(declines)
	binWidth := (hi - lo) / histogramBins
	scale := float64(dataset.Len()) * binWidth

	gridPoints := kde.Grid(lo, hi, kdeGridSize)
	curve := make(plotter.XYs, len(gridPoints))
	for i, pt := range gridPoints {
		curve[i].X = pt.X
		curve[i].Y = pt.Density * scale
	}

	line, err := plotter.NewLine(curve)
	if err != nil {
		return errors.NewRenderError("failed to build density curve", err)
	}
	line.LineStyle.Color = colorSteelBlue
	line.LineStyle.Width = vg.Points(1.5)
	p.Add(line)

	return r.save(p, path)
}

// RenderBoxplot draws one box-and-whisker of the decline metric per
// sector, in canonical sector order.
func (r *ChartRenderer) RenderBoxplot(ctx context.Context, dataset *simulation.Dataset, path string) error {
	r.logger.InfoContext(ctx, "Rendering decline boxplot by sector",
		slog.String("path", path))

	groups := analytics.DeclinesBySector(dataset)

	p := plot.New()
	p.Title.Text = "Revenue Decline Percentage by Sector"
	p.X.Label.Text = "Sector"
	p.Y.Label.Text = "Revenue Decline (%)"

	labels := make([]string, 0, len(groups))
	for _, sector := range simulation.Sectors() {
		declines := groups[sector]
		if len(declines) == 0 {
			continue
		}

		box, err := plotter.NewBoxPlot(boxWidth, float64(len(labels)), plotter.Values(declines))
		if err != nil {
			return errors.NewRenderError(fmt.Sprintf("failed to build box plot for %s", sector), err)
		}
		box.FillColor = sectorColor(len(labels), 0xFF)
		p.Add(box)
		labels = append(labels, sector.String())
	}

	if len(labels) == 0 {
		return errors.NewValidationError("no sector groups to plot")
	}
	p.NominalX(labels...)

	return r.save(p, path)
}

// RenderBarChart draws one bar per sector whose height is the sector's
// mean decline, taken from the precomputed aggregates.
func (r *ChartRenderer) RenderBarChart(ctx context.Context, summaries []analytics.SectorSummary, path string) error {
	r.logger.InfoContext(ctx, "Rendering mean decline bar chart",
		slog.String("path", path),
		slog.Int("sectors", len(summaries)))

	if len(summaries) == 0 {
		return errors.NewValidationError("no sector aggregates to plot")
	}

	means := make(plotter.Values, len(summaries))
	labels := make([]string, len(summaries))
	for i, s := range summaries {
		means[i] = s.MeanDecline
		labels[i] = s.Sector.String()
	}

	p := plot.New()
	p.Title.Text = "Average Revenue Decline Percentage by Sector"
	p.X.Label.Text = "Sector"
	p.Y.Label.Text = "Average Revenue Decline (%)"

	bars, err := plotter.NewBarChart(means, barWidth)
	if err != nil {
		return errors.NewRenderError("failed to build bar chart", err)
	}
	bars.Color = colorSteelBlue
	p.Add(bars)
	p.NominalX(labels...)

	return r.save(p, path)
}

// RenderScatter draws pre-shock against post-shock revenue, one point
// per record colored by sector, with a dashed y = x reference line from
// the origin to the maximum pre-shock revenue marking "no change".
func (r *ChartRenderer) RenderScatter(ctx context.Context, dataset *simulation.Dataset, path string) error {
	r.logger.InfoContext(ctx, "Rendering revenue scatter plot",
		slog.String("path", path))

	if dataset.Len() == 0 {
		return errors.NewValidationError("no records to plot")
	}

	p := plot.New()
	p.Title.Text = "Pre-COVID vs. Post-COVID Revenue"
	p.X.Label.Text = "Pre-COVID Revenue (thousands)"
	p.Y.Label.Text = "Post-COVID Revenue (thousands)"

	var maxPre float64
	bySector := make(map[simulation.Sector]plotter.XYs)
	for _, rec := range dataset.Records {
		bySector[rec.Sector] = append(bySector[rec.Sector], plotter.XY{
			X: rec.PreShockRevenue,
			Y: rec.PostShockRevenue,
		})
		if rec.PreShockRevenue > maxPre {
			maxPre = rec.PreShockRevenue
		}
	}

	for i, sector := range simulation.Sectors() {
		xys := bySector[sector]
		if len(xys) == 0 {
			continue
		}

		scatter, err := plotter.NewScatter(xys)
		if err != nil {
			return errors.NewRenderError(fmt.Sprintf("failed to build scatter for %s", sector), err)
		}
		scatter.GlyphStyle.Color = sectorColor(i, scatterAlpha)
		scatter.GlyphStyle.Radius = vg.Points(2)
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(scatter)
		p.Legend.Add(sector.String(), scatter)
	}

	reference := plotter.XYs{{X: 0, Y: 0}, {X: maxPre, Y: maxPre}}
	line, err := plotter.NewLine(reference)
	if err != nil {
		return errors.NewRenderError("failed to build reference line", err)
	}
	line.LineStyle.Color = colorRed
	line.LineStyle.Width = vg.Points(1)
	line.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
	p.Add(line)
	p.Legend.Add("No Change", line)

	p.Legend.Top = true
	p.Legend.Left = true

	return r.save(p, path)
}

// RenderAll renders the four charts to their canonical paths in the
// fixed order: histogram, boxplot, bar chart, scatter. The first
// failure aborts the remaining charts.
func (r *ChartRenderer) RenderAll(ctx context.Context, dataset *simulation.Dataset, summaries []analytics.SectorSummary, paths *config.Paths) error {
	if err := r.RenderHistogram(ctx, dataset, paths.HistogramPNG); err != nil {
		return err
	}
	if err := r.RenderBoxplot(ctx, dataset, paths.BoxplotPNG); err != nil {
		return err
	}
	if err := r.RenderBarChart(ctx, summaries, paths.BarplotPNG); err != nil {
		return err
	}
	return r.RenderScatter(ctx, dataset, paths.ScatterPNG)
}

// save writes the rendered plot as a PNG, creating the destination
// directory when missing
func (r *ChartRenderer) save(p *plot.Plot, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("failed to create chart directory", err).
			WithContext("path", path)
	}

	if err := p.Save(chartWidth, chartHeight, path); err != nil {
		return errors.NewRenderError(fmt.Sprintf("failed to save chart %s", filepath.Base(path)), err)
	}

	return nil
}
