package analysis

import (
	apperrors "nhlvis/internal/errors"
	"nhlvis/pkg/contracts/domain"
)

// Point is one skater on a scatter plot
type Point struct {
	X      float64
	Y      float64
	Player string
	Team   string
}

// ScatterData splits a position subset into the team's points and the
// rest of the league
type ScatterData struct {
	Team         string
	Position     domain.Position
	X            domain.Metric
	Y            domain.Metric
	TeamPoints   []Point
	LeaguePoints []Point
}

// Len returns the total number of points
func (s ScatterData) Len() int {
	return len(s.TeamPoints) + len(s.LeaguePoints)
}

// ScatterByPosition returns x/y points for one position or the forward
// group. Rows missing x or y are dropped. It fails with
// ErrNoDataForPosition when the position filter leaves no rows.
func ScatterByPosition(table domain.Table, team, positionOrGroup string, x, y domain.Metric) (ScatterData, error) {
	pos := domain.ParsePositionGroup(positionOrGroup)
	subset := table.ForPosition(pos)
	if subset.Empty() {
		return ScatterData{}, apperrors.ErrNoDataForPosition(positionOrGroup)
	}

	complete := subset.CompleteCases([]domain.Metric{x, y})
	return ScatterData{
		Team:         team,
		Position:     pos,
		X:            x,
		Y:            y,
		TeamPoints:   points(complete.ForTeam(team), x, y),
		LeaguePoints: points(complete.ExcludingTeam(team), x, y),
	}, nil
}

func points(rows domain.Table, x, y domain.Metric) []Point {
	var out []Point
	for _, r := range rows.Rows() {
		out = append(out, Point{
			X:      r.Stat(x).Value,
			Y:      r.Stat(y).Value,
			Player: r.Player,
			Team:   r.Team,
		})
	}
	return out
}
