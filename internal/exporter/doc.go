// Package exporter writes the simulation artifacts to disk.
//
// This package contains two main components:
//
// CSVWriter: Core CSV writing functionality with support for headers,
// appending, and UTF-8 BOM for Excel compatibility. WriteDataset is the
// dataset-specific entry point that serializes business records in
// insertion order with round-trip float formatting.
//
// ChartRenderer: Renders the four descriptive charts (histogram,
// boxplot, bar chart, scatter plot) as PNG files on 10x6 inch canvases.
//
// Example usage:
//
//	// Export the dataset
//	writer := exporter.NewCSVWriter(paths)
//	err := writer.WriteDataset(ctx, dataset, paths.DatasetCSV)
//
//	// Render a chart
//	renderer := exporter.NewChartRenderer(logger)
//	err = renderer.RenderHistogram(ctx, dataset, paths.HistogramPNG)
package exporter
