// Package analytics derives the revenue decline metric from a generated
// dataset and computes the descriptive statistics the exporter and the
// final report consume.
//
// # Responsibilities
//
//   - DeclineCalculator.Calculate attaches decline_percent to every record
//     and validates the generative invariants (sector membership, revenue
//     floor, decline bounds).
//   - SummarizeBySector groups records by sector for the bar chart and the
//     stdout summary table.
//   - Summarize produces dataset-level statistics for the final report.
//   - KernelDensity estimates the smoothed density curve overlaid on the
//     decline histogram.
//
// All computations are single pass over the dataset and free of side
// effects beyond the in-place metric attachment.
package analytics
