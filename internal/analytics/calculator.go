package analytics

import (
	"context"
	"fmt"
	"log/slog"

	"impactsim/internal/config"
	"impactsim/internal/errors"
	"impactsim/internal/simulation"
)

// declineTolerance absorbs floating-point noise when checking the
// generative bounds on the derived metric.
const declineTolerance = 1e-9

// DeclineCalculator derives the revenue decline metric for a generated
// dataset and verifies the generative invariants afterwards. The expected
// metric bounds follow from the drop factor range: a drop factor in
// [DropMin, DropMax] puts the decline in [(1-DropMax)*100, (1-DropMin)*100].
type DeclineCalculator struct {
	params config.SimulationConfig
	logger *slog.Logger
}

// NewDeclineCalculator creates a calculator for datasets generated with the
// given parameters. If logger is nil, slog.Default() is used.
func NewDeclineCalculator(params config.SimulationConfig, logger *slog.Logger) *DeclineCalculator {
	if logger == nil {
		logger = slog.Default()
	}
	return &DeclineCalculator{
		params: params,
		logger: logger,
	}
}

// Calculate computes DeclinePercent for every record in place, then
// validates the dataset against the generative bounds.
func (c *DeclineCalculator) Calculate(ctx context.Context, dataset *simulation.Dataset) error {
	if dataset.Len() == 0 {
		return errors.NewValidationError("dataset is empty")
	}

	c.logger.InfoContext(ctx, "Deriving revenue decline metric",
		slog.Int("records", dataset.Len()))

	for i := range dataset.Records {
		rec := &dataset.Records[i]
		rec.DeclinePercent = DeclinePercent(rec.PreShockRevenue, rec.PostShockRevenue)
	}

	if err := c.validateRecords(dataset); err != nil {
		return err
	}

	c.logger.InfoContext(ctx, "Decline metric derived",
		slog.Int("records", dataset.Len()))
	return nil
}

// DeclinePercent computes the relative revenue drop as a percentage.
// Generation clamps pre-shock revenue above zero, so the division is safe.
func DeclinePercent(pre, post float64) float64 {
	return (pre - post) / pre * 100
}

// validateRecords checks every record against the invariants the
// generator guarantees: valid sector, revenue at or above the floor,
// decline within the bounds implied by the drop factor range.
func (c *DeclineCalculator) validateRecords(dataset *simulation.Dataset) error {
	minDecline := (1 - c.params.DropMax) * 100
	maxDecline := (1 - c.params.DropMin) * 100

	for _, rec := range dataset.Records {
		if !rec.Sector.IsValid() {
			return errors.NewValidationError(
				fmt.Sprintf("record %d has unknown sector %q", rec.ID, rec.Sector)).
				WithContext("record_id", rec.ID)
		}
		if rec.PreShockRevenue < c.params.RevenueFloor {
			return errors.NewValidationError(
				fmt.Sprintf("record %d pre-shock revenue %.4f below floor %.2f",
					rec.ID, rec.PreShockRevenue, c.params.RevenueFloor)).
				WithContext("record_id", rec.ID)
		}
		if rec.DeclinePercent < minDecline-declineTolerance ||
			rec.DeclinePercent > maxDecline+declineTolerance {
			return errors.NewValidationError(
				fmt.Sprintf("record %d decline %.4f%% outside [%.2f, %.2f]",
					rec.ID, rec.DeclinePercent, minDecline, maxDecline)).
				WithContext("record_id", rec.ID)
		}
	}

	return nil
}
