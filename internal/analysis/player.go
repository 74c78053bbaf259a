package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"

	apperrors "nhlvis/internal/errors"
	"nhlvis/pkg/contracts/domain"
)

// SummedMetrics returns the metrics totalled across a player's rows
func SummedMetrics() []domain.Metric {
	return []domain.Metric{
		domain.MetricGamesPlayed, domain.MetricShots, domain.MetricGoals, domain.MetricAssists,
		domain.MetricPoints, domain.MetricPlusMinus, domain.MetricPenaltyMinutes,
		domain.MetricEVGoals, domain.MetricEVPoints, domain.MetricPPGoals, domain.MetricPPPoints,
		domain.MetricSHGoals, domain.MetricSHPoints, domain.MetricOTGoals, domain.MetricGameWinningGoals,
	}
}

// AveragedMetrics returns the metrics taken as the mean of the player's
// valid values
func AveragedMetrics() []domain.Metric {
	return []domain.Metric{domain.MetricTOIPerGame, domain.MetricFaceoffWinPct}
}

// PlayerSummary aggregates a player's rows
type PlayerSummary struct {
	Player        string
	Seasons       string // "min-max"
	Teams         string
	ShootsCatches string
	Positions     string
	Rows          int
	Stats         map[domain.Metric]domain.Stat
}

// Stat returns the aggregated value of m
func (s PlayerSummary) Stat(m domain.Metric) domain.Stat {
	if v, ok := s.Stats[m]; ok {
		return v
	}
	return domain.Missing
}

// PlayerRows returns the rows whose Player equals name, optionally limited
// to seasons
func PlayerRows(table domain.Table, name string, seasons []int) domain.Table {
	wanted := make(map[int]bool, len(seasons))
	for _, s := range seasons {
		wanted[s] = true
	}
	return table.Filter(func(r domain.PlayerSeason) bool {
		if r.Player != name {
			return false
		}
		return len(wanted) == 0 || wanted[r.Season]
	})
}

// SummarizePlayer totals a player's counting stats and recomputes the rates.
// P/GP is P over GP and S% is G over S; both are absent on a zero
// denominator. TOI/GP and FOW% are means of the valid values.
func SummarizePlayer(table domain.Table, name string, seasons []int) (PlayerSummary, error) {
	rows := PlayerRows(table, name, seasons)
	if rows.Empty() {
		return PlayerSummary{}, apperrors.NewNotFoundError(fmt.Sprintf("player %q", name)).
			WithContext("player", name)
	}

	minSeason, maxSeason := rows.Row(0).Season, rows.Row(0).Season
	teams := map[string]bool{}
	sc := map[string]bool{}
	positions := map[string]bool{}
	for _, r := range rows.Rows() {
		if r.Season < minSeason {
			minSeason = r.Season
		}
		if r.Season > maxSeason {
			maxSeason = r.Season
		}
		teams[r.Team] = true
		sc[r.ShootsCatches] = true
		positions[string(r.Position)] = true
	}

	summed := SummedMetrics()
	stats := make(map[domain.Metric]domain.Stat, len(summed)+4)
	for _, m := range summed {
		stats[m] = domain.Known(floats.Sum(rows.Values(m)))
	}
	for _, m := range AveragedMetrics() {
		if values := rows.Values(m); len(values) > 0 {
			stats[m] = domain.Known(Mean(values))
		} else {
			stats[m] = domain.Missing
		}
	}

	stats[domain.MetricPointsPerGame] = ratio(stats[domain.MetricPoints], stats[domain.MetricGamesPlayed])
	stats[domain.MetricShootingPct] = ratio(stats[domain.MetricGoals], stats[domain.MetricShots])

	return PlayerSummary{
		Player:        rows.Row(0).Player,
		Seasons:       fmt.Sprintf("%d-%d", minSeason, maxSeason),
		Teams:         joinSorted(teams),
		ShootsCatches: joinSorted(sc),
		Positions:     joinSorted(positions),
		Rows:          rows.Len(),
		Stats:         stats,
	}, nil
}

func ratio(num, den domain.Stat) domain.Stat {
	if !num.Valid || !den.Valid || den.Value <= 0 {
		return domain.Missing
	}
	v, ok := safeDiv(num.Value, den.Value)
	if !ok {
		return domain.Missing
	}
	return domain.Known(v)
}

func joinSorted(set map[string]bool) string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ",")
}

// Roster returns a team's rows for one season. The team match is a
// case-insensitive substring, so multi-team rows are included.
func Roster(table domain.Table, team string, season int) domain.Table {
	return table.TeamContains(team).ForSeason(season)
}

// ComparisonResult is one metric of a player-vs-league comparison
type ComparisonResult struct {
	Metric      domain.Metric
	PlayerValue float64
	LeagueMean  float64
}

// PlayerComparison holds a player's season values next to the league means
type PlayerComparison struct {
	Player  string
	Season  int
	Results []ComparisonResult
}

// PlayerVsLeague compares the player's first row of season with the mean
// of every row of that season
func PlayerVsLeague(table domain.Table, name string, season int, metrics []domain.Metric) (PlayerComparison, error) {
	seasonRows := table.ForSeason(season)
	playerRows := PlayerRows(seasonRows, name, nil)
	if playerRows.Empty() {
		return PlayerComparison{}, apperrors.NewNotFoundError(fmt.Sprintf("player %q in season %d", name, season)).
			WithContext("player", name).
			WithContext("season", season)
	}

	first := playerRows.Row(0)
	results := make([]ComparisonResult, 0, len(metrics))
	for _, m := range metrics {
		results = append(results, ComparisonResult{
			Metric:      m,
			PlayerValue: first.Stat(m).Float(),
			LeagueMean:  Mean(seasonRows.Values(m)),
		})
	}
	return PlayerComparison{Player: first.Player, Season: season, Results: results}, nil
}

// HighlightCategory classifies a point of a highlight scatter
type HighlightCategory int

const (
	CategoryOther HighlightCategory = iota
	CategoryPlayer
	CategoryTeam
	CategoryPlayerTeam
)

// Highlight size range for GP-scaled points
const (
	MinPointSize = 1.0
	MaxPointSize = 15.0
)

// HighlightOptions selects the axes and the highlighted player and team.
// Season 0 means every season.
type HighlightOptions struct {
	X        domain.Metric
	Y        domain.Metric
	Player   string
	Team     string
	Season   int
	SizeByGP bool
}

// HighlightPoint is one row of a highlight scatter
type HighlightPoint struct {
	Point
	Category HighlightCategory
	Label    string
	Size     float64
}

// HighlightData is the input of a highlight scatter chart
type HighlightData struct {
	X      domain.Metric
	Y      domain.Metric
	Player string
	Team   string
	Points []HighlightPoint
}

// HighlightScatter labels each row as "<player> / <team>", the player, the
// team or "Other". With SizeByGP, sizes are GP min-max scaled into
// [MinPointSize, MaxPointSize]; equal GP everywhere gives the minimum size.
func HighlightScatter(table domain.Table, opts HighlightOptions) HighlightData {
	if opts.X == "" {
		opts.X = domain.MetricGoals
	}
	if opts.Y == "" {
		opts.Y = domain.MetricAssists
	}
	if opts.Season != 0 {
		table = table.ForSeason(opts.Season)
	}
	rows := table.CompleteCases([]domain.Metric{opts.X, opts.Y}).Rows()

	gp := make([]float64, len(rows))
	for i, r := range rows {
		gp[i] = r.GamesPlayed.Float()
	}
	sizes := scaleSizes(gp)

	points := make([]HighlightPoint, len(rows))
	for i, r := range rows {
		cat, label := categorize(r, opts.Player, opts.Team)
		size := MinPointSize
		if opts.SizeByGP {
			size = sizes[i]
		}
		points[i] = HighlightPoint{
			Point:    Point{X: r.Stat(opts.X).Value, Y: r.Stat(opts.Y).Value, Player: r.Player, Team: r.Team},
			Category: cat,
			Label:    label,
			Size:     size,
		}
	}

	return HighlightData{X: opts.X, Y: opts.Y, Player: opts.Player, Team: opts.Team, Points: points}
}

func categorize(r domain.PlayerSeason, player, team string) (HighlightCategory, string) {
	isPlayer := player != "" && r.Player == player
	isTeam := team != "" && r.Team == team
	switch {
	case isPlayer && isTeam:
		return CategoryPlayerTeam, player + " / " + team
	case isPlayer:
		return CategoryPlayer, player
	case isTeam:
		return CategoryTeam, team
	default:
		return CategoryOther, "Other"
	}
}

// scaleSizes maps values linearly onto [MinPointSize, MaxPointSize].
// NaN values get the minimum size.
func scaleSizes(values []float64) []float64 {
	sizes := make([]float64, len(values))
	valid := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			valid = append(valid, v)
		}
	}
	if len(valid) == 0 {
		for i := range sizes {
			sizes[i] = MinPointSize
		}
		return sizes
	}

	lo, hi := floats.Min(valid), floats.Max(valid)
	span := hi - lo
	for i, v := range values {
		if math.IsNaN(v) || span == 0 {
			sizes[i] = MinPointSize
			continue
		}
		sizes[i] = MinPointSize + (v-lo)/span*(MaxPointSize-MinPointSize)
	}
	return sizes
}
