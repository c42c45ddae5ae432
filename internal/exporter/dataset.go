package exporter

import (
	"context"
	"log/slog"

	"impactsim/internal/errors"
	"impactsim/internal/simulation"
)

// DatasetColumns lists the exported CSV header in column order.
// The ephemeral drop factor is deliberately absent.
var DatasetColumns = []string{
	"business_id",
	"sector",
	"pre_covid_revenue",
	"post_covid_revenue",
	"decline_percent",
}

// WriteDataset serializes the derived dataset to a CSV file at the given
// path, one row per record in insertion order, overwriting any existing
// file. The file carries no BOM so the header bytes match the column
// names exactly.
func (w *CSVWriter) WriteDataset(ctx context.Context, dataset *simulation.Dataset, path string) error {
	if dataset.Len() == 0 {
		return errors.NewValidationError("cannot export an empty dataset")
	}

	records := make([][]string, dataset.Len())
	for i, rec := range dataset.Records {
		records[i] = []string{
			formatInt(rec.ID),
			rec.Sector.String(),
			formatFloat(rec.PreShockRevenue),
			formatFloat(rec.PostShockRevenue),
			formatFloat(rec.DeclinePercent),
		}
	}

	if err := w.WriteCSV(path, WriteOptions{
		Headers: DatasetColumns,
		Records: records,
	}); err != nil {
		return errors.NewStorageError("failed to write dataset CSV", err).
			WithContext("path", path)
	}

	slog.InfoContext(ctx, "Dataset exported",
		slog.String("path", path),
		slog.Int("records", dataset.Len()))

	return nil
}
