package chart

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"

	"nhlvis/internal/analysis"
	"nhlvis/internal/config"
	"nhlvis/internal/shared/testutil"
	"nhlvis/pkg/contracts/domain"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func testRenderer(t *testing.T) (*Renderer, *testutil.BufferedSlogHandler) {
	t.Helper()
	logger, handler := testutil.NewTestLogger(t)
	return NewRenderer(Options{Width: 4 * vg.Inch, Height: 3 * vg.Inch, DPI: 72}, logger), handler
}

func assertPNG(t *testing.T, path string) {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, pngMagic), "expected PNG header in %s", path)
}

func sampleGaps() domain.GapTable {
	return analysis.TeamVsLeague(testutil.SampleTable(), "UTA",
		[]domain.Metric{domain.MetricGoals, domain.MetricAssists, domain.MetricFaceoffWinPct},
		analysis.DefaultOptions())
}

func TestGapTitleAndLabel(t *testing.T) {
	tests := []struct {
		scope domain.Position
		want  string
	}{
		{"", "Utah Mammoth vs League Median"},
		{domain.PositionForward, "Utah Mammoth vs League Median — All Forwards"},
		{domain.PositionDefense, "Utah Mammoth vs League Median — D"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GapTitle("Utah Mammoth", tt.scope))
	}
	assert.Equal(t, "UTA − League (median)", GapYLabel("UTA", domain.SignTeamMinusLeague))
	assert.Equal(t, "League − UTA (median)", GapYLabel("UTA", domain.SignLeagueMinusTeam))
}

func TestGapBarChart_NaNRendered(t *testing.T) {
	r, handler := testRenderer(t)
	gt := sampleGaps()
	fow, _ := gt.Lookup(domain.MetricFaceoffWinPct)
	require.True(t, math.IsNaN(fow.Gap))

	p, err := r.GapBarChart(gt, "Utah Mammoth")
	require.NoError(t, err)
	assert.Equal(t, "Utah Mammoth vs League Median", p.Title.Text)
	assert.True(t, handler.ContainsMessage("Gap is undefined, drawing empty bar"))

	path := filepath.Join(t.TempDir(), "docs", "count_uta_gaps.png")
	require.NoError(t, r.Save(p, path))
	assertPNG(t, path)
}

func TestGapBarChart_AllNaN(t *testing.T) {
	r, _ := testRenderer(t)
	gt := analysis.PositionGroupGap(testutil.SampleTable(), "UTA", "D",
		[]domain.Metric{domain.MetricFaceoffWinPct}, analysis.DefaultOptions())

	p, err := r.GapBarChart(gt, "Utah Mammoth")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "D_percentages.png")
	require.NoError(t, r.Save(p, path))
	assertPNG(t, path)
}

func TestSave_VectorFormats(t *testing.T) {
	r, _ := testRenderer(t)
	p, err := r.GapBarChart(sampleGaps(), "Utah Mammoth")
	require.NoError(t, err)

	dir := t.TempDir()
	svgPath := filepath.Join(dir, "gaps.svg")
	require.NoError(t, r.Save(p, svgPath))
	content, err := os.ReadFile(svgPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "<svg")
}

func TestPositionScatter(t *testing.T) {
	r, _ := testRenderer(t)
	data, err := analysis.ScatterByPosition(testutil.SampleTable(), "UTA", "F",
		domain.MetricTOIPerGame, domain.MetricPointsPerGame)
	require.NoError(t, err)

	p, err := r.PositionScatter(data, "Utah")
	require.NoError(t, err)
	assert.Equal(t, "F: P/GP vs TOI/GP", p.Title.Text)
	assert.Equal(t, "TOI/GP", p.X.Label.Text)

	path := filepath.Join(t.TempDir(), "scatter_F_TOI_PGP.png")
	require.NoError(t, r.Save(p, path))
	assertPNG(t, path)
}

func TestHighlightScatter(t *testing.T) {
	r, _ := testRenderer(t)
	data := analysis.HighlightScatter(testutil.SampleTable(), analysis.HighlightOptions{
		Player: "Clayton Keller", Team: "UTA", SizeByGP: true,
	})

	p, err := r.HighlightScatter(data)
	require.NoError(t, err)
	assert.Equal(t, "NHL G and A", p.Title.Text)

	path := filepath.Join(t.TempDir(), "highlight.png")
	require.NoError(t, r.Save(p, path))
	assertPNG(t, path)
}

func TestCategoryColor(t *testing.T) {
	assert.Equal(t, ColorBoth, CategoryColor(analysis.CategoryPlayerTeam, true))
	assert.Equal(t, ColorPlayer, CategoryColor(analysis.CategoryPlayer, true))
	assert.Equal(t, ColorTeamOnly, CategoryColor(analysis.CategoryTeam, true))
	assert.Equal(t, ColorOther, CategoryColor(analysis.CategoryOther, true))
	assert.Equal(t, ColorTeamOnly, CategoryColor(analysis.CategoryOther, false))
}

func TestPlayerVsLeague(t *testing.T) {
	r, _ := testRenderer(t)
	cmp, err := analysis.PlayerVsLeague(testutil.SampleTable(), "Clayton Keller", 2024, config.PlayerMetrics())
	require.NoError(t, err)

	p, err := r.PlayerVsLeague(cmp)
	require.NoError(t, err)
	assert.Equal(t, "Clayton Keller vs League Averages (2024)", p.Title.Text)

	path := filepath.Join(t.TempDir(), "player.png")
	require.NoError(t, r.Save(p, path))
	assertPNG(t, path)
}

func TestWriteOverview(t *testing.T) {
	table := testutil.SampleTable()
	tables := []domain.GapTable{
		sampleGaps(),
		analysis.ForwardGroupGap(table, "UTA", config.CountMetrics(), analysis.DefaultOptions()),
	}

	var buf bytes.Buffer
	WriteOverview(&buf, "Utah Mammoth", tables)
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, "Utah Mammoth vs League Median")
	assert.Contains(t, out, "All Forwards")
	assert.Contains(t, out, "+4.00")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "</svg>"))

	assert.Error(t, SaveOverview(filepath.Join(t.TempDir(), "o.svg"), "x", nil))
	require.NoError(t, SaveOverview(filepath.Join(t.TempDir(), "o.svg"), "x", tables))
}

func TestOptionsFromConfig(t *testing.T) {
	opts := OptionsFromConfig(config.ChartConfig{DPI: 150, Width: 8, Height: 5})
	assert.Equal(t, 8*vg.Inch, opts.Width)
	assert.Equal(t, 5*vg.Inch, opts.Height)
	assert.Equal(t, 150, opts.DPI)

	r := NewRenderer(Options{}, nil)
	assert.Equal(t, DefaultOptions(), r.opts)
}
