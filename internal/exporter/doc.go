// Package exporter writes the flat files of the pipeline.
//
// CSVWriter is the core writer with support for headers, streaming and a
// UTF-8 BOM for Excel. RawStatsWriter streams skater summary pages into the
// raw CSV. WriteGapTable and GapWorkbook export gap tables as CSV and as one
// .xlsx workbook per run.
//
// Example usage:
//
//	w := exporter.NewCSVWriter(paths, logger)
//	raw, err := w.NewRawStatsWriter(paths.RawCSV)
//	...
//	book := exporter.NewGapWorkbook()
//	defer book.Close()
//	book.AddGapTable("count_uta_gaps", table)
//	book.SaveAs(paths.GapWorkbook)
package exporter
