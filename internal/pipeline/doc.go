// Package pipeline orchestrates a full dataset generation run.
//
// A run is strictly sequential: the simulator draws the records, the
// decline calculator derives the metric, the exporter writes the CSV
// and renders the four charts, and the artifact validator confirms the
// output directory holds exactly the expected files. There is no
// concurrency anywhere in the run and no retry on failure; the first
// error aborts the pipeline and surfaces to the caller.
//
// Progress lines go to the runner's output writer so they can be
// asserted in tests, while structured logs go through slog.
package pipeline
