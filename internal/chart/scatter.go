package chart

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"nhlvis/internal/analysis"
)

// ScatterTitle is "<pos>: <y> vs <x>"
func ScatterTitle(data analysis.ScatterData) string {
	return fmt.Sprintf("%s: %s vs %s", data.Position, data.Y, data.X)
}

// PositionScatter plots league points translucent and the team's points
// in red on top
func (r *Renderer) PositionScatter(data analysis.ScatterData, teamLabel string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = ScatterTitle(data)
	p.X.Label.Text = string(data.X)
	p.Y.Label.Text = string(data.Y)
	p.Legend.Top = true

	if err := addPoints(p, data.LeaguePoints, "League", ColorLeague, vg.Points(3)); err != nil {
		return nil, err
	}
	if teamLabel == "" {
		teamLabel = data.Team
	}
	if err := addPoints(p, data.TeamPoints, teamLabel, ColorTeam, vg.Points(3)); err != nil {
		return nil, err
	}
	p.Add(plotter.NewGrid())
	return p, nil
}

func addPoints(p *plot.Plot, points []analysis.Point, label string, c color.Color, radius vg.Length) error {
	if len(points) == 0 {
		return nil
	}
	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i].X = pt.X
		xys[i].Y = pt.Y
	}
	s, err := plotter.NewScatter(xys)
	if err != nil {
		return err
	}
	s.GlyphStyle.Color = c
	s.GlyphStyle.Radius = radius
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(s)
	p.Legend.Add(label, s)
	return nil
}
