package exporter

import (
	"nhlvis/pkg/contracts/domain"
)

// GapHeaders is the column header of a gap table export
var GapHeaders = []string{"metric", "team", "scope", "team_value", "league_value", "gap", "team_n", "league_n"}

// GapRecords renders a gap table as CSV cells, one row per metric
func GapRecords(gt domain.GapTable) [][]string {
	records := make([][]string, 0, len(gt.Results))
	for _, r := range gt.Results {
		records = append(records, []string{
			string(r.Metric),
			gt.Team,
			scopeLabel(gt.Scope),
			formatFloat(r.TeamValue),
			formatFloat(r.LeagueValue),
			formatFloat(r.Gap),
			formatInt(r.TeamN),
			formatInt(r.LeagueN),
		})
	}
	return records
}

// WriteGapTable writes one gap table to a CSV file with a BOM for Excel
func (w *CSVWriter) WriteGapTable(filePath string, gt domain.GapTable) error {
	return w.WriteCSV(filePath, WriteOptions{
		Headers:   GapHeaders,
		Records:   GapRecords(gt),
		BOMPrefix: true,
	})
}

func scopeLabel(p domain.Position) string {
	if p == "" {
		return "ALL"
	}
	return string(p)
}
