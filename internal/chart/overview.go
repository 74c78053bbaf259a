package chart

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	svg "github.com/ajstarks/svgo"

	apperrors "nhlvis/internal/errors"
	"nhlvis/pkg/contracts/domain"
)

// Overview layout, in pixels
const (
	overviewWidth   = 900
	panelHeight     = 120
	panelLabelWidth = 200
	overviewMargin  = 20
)

// vmap maps value from [low1, high1] into [low2, high2]
func vmap(value, low1, high1, low2, high2 float64) float64 {
	if high1 == low1 {
		return low2
	}
	return low2 + (high2-low2)*(value-low1)/(high1-low1)
}

// WriteOverview draws every gap table of a run as one row of small bars
// in a single SVG page. Bars above the midline are positive gaps.
func WriteOverview(w io.Writer, teamName string, tables []domain.GapTable) {
	height := overviewMargin*3 + panelHeight*len(tables)
	canvas := svg.New(w)
	canvas.Start(overviewWidth, height)
	canvas.Rect(0, 0, overviewWidth, height, "fill:white")
	canvas.Text(overviewMargin, overviewMargin+8, teamName+" vs League Median", "font-family:sans-serif;font-size:18px;fill:black")

	for i, gt := range tables {
		top := overviewMargin*2 + i*panelHeight
		drawPanel(canvas, gt, top)
	}
	canvas.End()
}

func drawPanel(canvas *svg.SVG, gt domain.GapTable, top int) {
	mid := top + panelHeight/2
	scope := "All skaters"
	if gt.Scope.IsGroup() {
		scope = "All Forwards"
	} else if gt.Scope != "" {
		scope = string(gt.Scope)
	}

	canvas.Gstyle("font-family:sans-serif;font-size:12px")
	canvas.Text(overviewMargin, mid, scope, "fill:gray")
	canvas.Line(panelLabelWidth, mid, overviewWidth-overviewMargin, mid, "stroke:gray;stroke-dasharray:4,3")

	maxAbs := 0.0
	for _, r := range gt.Results {
		if !math.IsNaN(r.Gap) {
			maxAbs = math.Max(maxAbs, math.Abs(r.Gap))
		}
	}

	n := len(gt.Results)
	if n == 0 {
		canvas.Gend()
		return
	}
	slot := (overviewWidth - overviewMargin - panelLabelWidth) / n
	half := float64(panelHeight/2 - 18)
	for j, r := range gt.Results {
		x := panelLabelWidth + j*slot + slot/4
		canvas.Text(x, top+panelHeight-4, string(r.Metric), "fill:black")
		if math.IsNaN(r.Gap) {
			continue
		}
		h := int(vmap(math.Abs(r.Gap), 0, maxAbs, 0, half))
		fill := "fill:rgb(31,119,180)"
		y := mid - h
		if r.Gap < 0 {
			fill = "fill:rgb(214,39,40)"
			y = mid
		}
		canvas.Rect(x, y, slot/2, h, fill)
		canvas.Text(x, y-2, fmt.Sprintf("%+.2f", r.Gap), "fill:gray;font-size:10px")
	}
	canvas.Gend()
}

// SaveOverview writes the overview SVG to path
func SaveOverview(path, teamName string, tables []domain.GapTable) error {
	if len(tables) == 0 {
		return apperrors.NewEmptyDataError("no gap tables to summarize")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewStorageError("create chart directory", err).WithContext("path", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return apperrors.NewStorageError("create overview file", err).WithContext("path", path)
	}
	WriteOverview(f, teamName, tables)
	if err := f.Close(); err != nil {
		return apperrors.NewStorageError("close overview file", err).WithContext("path", path)
	}
	return nil
}
