// Package dataprocessing loads the cleaned skater CSV into a domain.Table.
//
// Columns are located by header name. Player, Team, Pos and Season are
// required; a missing metric column is logged and read as absent. Empty
// cells become domain.Missing so aggregates can exclude them per metric.
//
//	table, err := dataprocessing.NewLoader(logger).LoadFile(paths.CleanedCSV)
package dataprocessing
