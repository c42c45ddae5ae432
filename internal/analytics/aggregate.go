package analytics

import (
	"context"
	"log/slog"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"impactsim/internal/simulation"
)

// SectorSummary aggregates the decline metric for one sector
type SectorSummary struct {
	Sector      simulation.Sector `json:"sector"`
	Businesses  int               `json:"businesses"`
	MeanDecline float64           `json:"mean_decline_percent"`
}

// DatasetSummary describes the derived dataset as a whole
type DatasetSummary struct {
	Records         int
	MeanDecline     float64
	MinDecline      float64
	MaxDecline      float64
	MeanPreRevenue  float64
	MeanPostRevenue float64
}

// SummarizeBySector groups records by sector and computes the per-sector
// mean decline. Sectors appear in canonical order; a sector with no records
// is omitted.
func (c *DeclineCalculator) SummarizeBySector(ctx context.Context, dataset *simulation.Dataset) []SectorSummary {
	groups := DeclinesBySector(dataset)

	summaries := make([]SectorSummary, 0, len(groups))
	for _, sector := range simulation.Sectors() {
		declines := groups[sector]
		if len(declines) == 0 {
			continue
		}
		summaries = append(summaries, SectorSummary{
			Sector:      sector,
			Businesses:  len(declines),
			MeanDecline: stat.Mean(declines, nil),
		})
	}

	c.logger.DebugContext(ctx, "Computed sector aggregates",
		slog.Int("sectors", len(summaries)))

	return summaries
}

// Summarize computes dataset-level statistics for the final report
func (c *DeclineCalculator) Summarize(ctx context.Context, dataset *simulation.Dataset) DatasetSummary {
	if dataset.Len() == 0 {
		return DatasetSummary{}
	}

	declines := Declines(dataset)

	return DatasetSummary{
		Records:         dataset.Len(),
		MeanDecline:     stat.Mean(declines, nil),
		MinDecline:      floats.Min(declines),
		MaxDecline:      floats.Max(declines),
		MeanPreRevenue:  stat.Mean(PreRevenues(dataset), nil),
		MeanPostRevenue: stat.Mean(PostRevenues(dataset), nil),
	}
}

// Declines returns the decline metric column in record order
func Declines(dataset *simulation.Dataset) []float64 {
	out := make([]float64, dataset.Len())
	for i, rec := range dataset.Records {
		out[i] = rec.DeclinePercent
	}
	return out
}

// PreRevenues returns the pre-shock revenue column in record order
func PreRevenues(dataset *simulation.Dataset) []float64 {
	out := make([]float64, dataset.Len())
	for i, rec := range dataset.Records {
		out[i] = rec.PreShockRevenue
	}
	return out
}

// PostRevenues returns the post-shock revenue column in record order
func PostRevenues(dataset *simulation.Dataset) []float64 {
	out := make([]float64, dataset.Len())
	for i, rec := range dataset.Records {
		out[i] = rec.PostShockRevenue
	}
	return out
}

// DeclinesBySector groups decline values by sector, preserving record
// order within each group
func DeclinesBySector(dataset *simulation.Dataset) map[simulation.Sector][]float64 {
	groups := make(map[simulation.Sector][]float64)
	for _, rec := range dataset.Records {
		groups[rec.Sector] = append(groups[rec.Sector], rec.DeclinePercent)
	}
	return groups
}
