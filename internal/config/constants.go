package config

import (
	"time"

	"nhlvis/pkg/contracts/domain"
)

// Application constants
const (
	AppName   = "nhlvis"
	EnvPrefix = "NHLVIS"

	// Defaults for the report run
	DefaultTeam     = "UTA"
	DefaultTeamName = "Utah Mammoth"

	// Skater summary service
	DefaultBaseURL     = "https://api.nhle.com/stats/rest/en/skater/summary"
	DefaultPageSize    = 100
	DefaultHTTPTimeout = 30 * time.Second
	FirstSeasonStart   = 2000
	LastSeasonStart    = 2024

	// Rendering
	DefaultDPI = 300

	// File Paths
	DefaultDataDir = "data"
	DefaultLogsDir = "logs"
	DefaultLogFile = "logs/nhlvis.log"

	RawStatsFile     = "nhl_skater_stats.csv"
	CleanedStatsFile = "nhl_players_cleaned.csv"
	GapWorkbookFile  = "gaps.xlsx"
	MetricsTextFile  = "nhlvis.prom"
	TraceFile        = "traces.jsonl"
)

// DefaultSeasons returns the season ids 20002001 through 20242025
func DefaultSeasons() []int {
	seasons := make([]int, 0, LastSeasonStart-FirstSeasonStart+1)
	for y := FirstSeasonStart; y <= LastSeasonStart; y++ {
		seasons = append(seasons, y*10000+y+1)
	}
	return seasons
}

// CountMetrics returns the counting stats of a report run. The slice is
// fresh on every call.
func CountMetrics() []domain.Metric {
	return []domain.Metric{
		domain.MetricGoals,
		domain.MetricAssists,
		domain.MetricPoints,
		domain.MetricShots,
		domain.MetricPenaltyMinutes,
		domain.MetricPlusMinus,
	}
}

// PercentMetrics returns the rate stats of a report run
func PercentMetrics() []domain.Metric {
	return []domain.Metric{domain.MetricShootingPct, domain.MetricFaceoffWinPct}
}

// PlayerMetrics are the default player-vs-league comparison stats
func PlayerMetrics() []domain.Metric {
	return []domain.Metric{domain.MetricPoints, domain.MetricGoals, domain.MetricAssists}
}

func metricCodes(metrics []domain.Metric) []string {
	codes := make([]string, len(metrics))
	for i, m := range metrics {
		codes[i] = string(m)
	}
	return codes
}
