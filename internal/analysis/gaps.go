package analysis

import (
	"nhlvis/pkg/contracts/domain"
)

// TeamVsLeague compares the median of each metric for the team's rows with
// the median over the whole table, team rows included. Team rows are those
// whose Team equals team exactly. A metric with no values on either side
// yields NaN for that side.
func TeamVsLeague(table domain.Table, team string, metrics []domain.Metric, opts Options) domain.GapTable {
	return compareGroups(table, team, "", metrics, opts)
}

// PositionGroupGap is TeamVsLeague restricted to one position code, or to
// the forward group when positionOrGroup is "F" or "forward". The league
// population is the position-filtered table, team rows included.
func PositionGroupGap(table domain.Table, team, positionOrGroup string, metrics []domain.Metric, opts Options) domain.GapTable {
	pos := domain.ParsePositionGroup(positionOrGroup)
	return compareGroups(table.ForPosition(pos), team, pos, metrics, opts)
}

// ForwardGroupGap is PositionGroupGap over C, L and R combined
func ForwardGroupGap(table domain.Table, team string, metrics []domain.Metric, opts Options) domain.GapTable {
	return PositionGroupGap(table, team, string(domain.PositionForward), metrics, opts)
}

func compareGroups(league domain.Table, team string, scope domain.Position, metrics []domain.Metric, opts Options) domain.GapTable {
	if opts.Missing == MissingCompleteCases {
		league = league.CompleteCases(metrics)
	}
	teamRows := league.ForTeam(team)
	sign := opts.sign()

	results := make([]domain.GapResult, 0, len(metrics))
	for _, m := range metrics {
		teamValues := teamRows.Values(m)
		leagueValues := league.Values(m)
		teamMedian := Median(teamValues)
		leagueMedian := Median(leagueValues)

		results = append(results, domain.GapResult{
			Metric:      m,
			TeamValue:   teamMedian,
			LeagueValue: leagueMedian,
			Gap:         sign.Apply(teamMedian, leagueMedian),
			TeamN:       len(teamValues),
			LeagueN:     len(leagueValues),
		})
	}

	return domain.GapTable{
		Team:    team,
		Scope:   scope,
		Sign:    sign,
		Results: results,
	}
}
