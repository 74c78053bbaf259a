package chart

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"nhlvis/internal/analysis"
)

// PlayerVsLeague draws the player's values next to the league means, one
// group per metric
func (r *Renderer) PlayerVsLeague(cmp analysis.PlayerComparison) (*plot.Plot, error) {
	playerValues := make(plotter.Values, len(cmp.Results))
	leagueValues := make(plotter.Values, len(cmp.Results))
	labels := make([]string, len(cmp.Results))
	for i, res := range cmp.Results {
		labels[i] = string(res.Metric)
		playerValues[i] = finiteOrZero(res.PlayerValue)
		leagueValues[i] = finiteOrZero(res.LeagueMean)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s vs League Averages (%d)", cmp.Player, cmp.Season)
	p.Y.Label.Text = "Value"
	p.Legend.Top = true

	if len(labels) > 0 {
		w := vg.Points(18)

		player, err := plotter.NewBarChart(playerValues, w)
		if err != nil {
			return nil, err
		}
		player.Color = ColorBar
		player.LineStyle.Width = 0
		player.Offset = -w / 2

		league, err := plotter.NewBarChart(leagueValues, w)
		if err != nil {
			return nil, err
		}
		league.Color = ColorComparand
		league.LineStyle.Width = 0
		league.Offset = w / 2

		p.Add(player, league)
		p.Legend.Add("Player", player)
		p.Legend.Add("League Average", league)
	}

	p.NominalX(labels...)
	p.Add(plotter.NewGrid())
	return p, nil
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
