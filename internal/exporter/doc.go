// Package exporter writes pipeline datasets as CSV files.
//
// CSVWriter is the low-level writer: it resolves relative names against the
// configured output directory and can prefix files with a UTF-8 BOM for
// Excel. DatasetExporter knows the pipeline's file names and writes the
// cleaned tables, candid_data, the chat statistics and the data-quality
// report in one call.
//
//	exp := exporter.NewDatasetExporter(paths, true, logger)
//	files, err := exp.ExportPrepared(ctx, prepared, report)
package exporter
