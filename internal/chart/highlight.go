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

// CategoryColor returns the point colour of a highlight category. When no
// player and no team are highlighted every point is drawn blue.
func CategoryColor(cat analysis.HighlightCategory, anyHighlight bool) color.Color {
	if !anyHighlight {
		return ColorTeamOnly
	}
	switch cat {
	case analysis.CategoryPlayerTeam:
		return ColorBoth
	case analysis.CategoryPlayer:
		return ColorPlayer
	case analysis.CategoryTeam:
		return ColorTeamOnly
	default:
		return ColorOther
	}
}

// HighlightScatter draws one series per category, Other first so the
// highlighted points stay on top. Point radius follows HighlightPoint.Size.
func (r *Renderer) HighlightScatter(data analysis.HighlightData) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("NHL %s and %s", data.X, data.Y)
	p.X.Label.Text = string(data.X)
	p.Y.Label.Text = string(data.Y)
	p.Legend.Top = true

	anyHighlight := data.Player != "" || data.Team != ""
	order := []analysis.HighlightCategory{
		analysis.CategoryOther, analysis.CategoryTeam, analysis.CategoryPlayer, analysis.CategoryPlayerTeam,
	}

	for _, cat := range order {
		var (
			xys   plotter.XYs
			sizes []float64
			label string
		)
		for _, pt := range data.Points {
			if pt.Category != cat {
				continue
			}
			xys = append(xys, plotter.XY{X: pt.X, Y: pt.Y})
			sizes = append(sizes, pt.Size)
			label = pt.Label
		}
		if len(xys) == 0 {
			continue
		}

		s, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, err
		}
		c := CategoryColor(cat, anyHighlight)
		s.GlyphStyleFunc = func(i int) draw.GlyphStyle {
			return draw.GlyphStyle{
				Color:  c,
				Radius: vg.Points(sizes[i]),
				Shape:  draw.CircleGlyph{},
			}
		}
		s.GlyphStyle = s.GlyphStyleFunc(0)
		p.Add(s)
		p.Legend.Add(label, s)
	}

	p.Add(plotter.NewGrid())
	return p, nil
}
