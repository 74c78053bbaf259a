package chart

import (
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"

	"nhlvis/pkg/contracts/domain"
)

// GapTitle names the team and the scope of a gap chart
func GapTitle(teamName string, scope domain.Position) string {
	title := teamName + " vs League Median"
	switch {
	case scope == "":
		return title
	case scope.IsGroup():
		return title + " — All Forwards"
	default:
		return title + " — " + string(scope)
	}
}

// GapYLabel describes the sign convention on the y axis
func GapYLabel(team string, sign domain.GapSign) string {
	if sign == domain.SignLeagueMinusTeam {
		return fmt.Sprintf("League − %s (median)", team)
	}
	return fmt.Sprintf("%s − League (median)", team)
}

// GapBarChart plots one bar per metric of gt. NaN gaps are drawn as
// zero-height bars so the metric label stays on the axis.
func (r *Renderer) GapBarChart(gt domain.GapTable, teamName string) (*plot.Plot, error) {
	values := make(plotter.Values, len(gt.Results))
	labels := make([]string, len(gt.Results))
	for i, res := range gt.Results {
		labels[i] = string(res.Metric)
		if math.IsNaN(res.Gap) {
			r.logger.Warn("Gap is undefined, drawing empty bar",
				slog.String("team", gt.Team),
				slog.String("scope", string(gt.Scope)),
				slog.String("metric", string(res.Metric)),
				slog.Int("team_n", res.TeamN),
				slog.Int("league_n", res.LeagueN))
			continue
		}
		values[i] = res.Gap
	}

	p := plot.New()
	p.Title.Text = GapTitle(teamName, gt.Scope)
	p.Y.Label.Text = GapYLabel(gt.Team, gt.Sign)

	if len(values) > 0 {
		bars, err := plotter.NewBarChart(values, vg.Points(24))
		if err != nil {
			return nil, err
		}
		bars.Color = ColorBar
		bars.LineStyle.Width = 0
		p.Add(bars)
	}

	zero := plotter.NewFunction(func(float64) float64 { return 0 })
	zero.Color = ColorZeroLine
	zero.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	p.Add(zero)

	p.NominalX(labels...)
	rotateXLabels(p)
	p.Add(plotter.NewGrid())
	return p, nil
}

func rotateXLabels(p *plot.Plot) {
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter
}
