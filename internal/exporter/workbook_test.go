package exporter

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "nhlvis/internal/errors"
	"nhlvis/pkg/contracts/domain"
)

func nan() float64 { return math.NaN() }

func sampleGapTable(scope domain.Position) domain.GapTable {
	return domain.GapTable{
		Team:  "UTA",
		Scope: scope,
		Sign:  domain.SignTeamMinusLeague,
		Results: []domain.GapResult{
			{Metric: domain.MetricGoals, TeamValue: 8, LeagueValue: 6, Gap: 2, TeamN: 3, LeagueN: 5},
			{Metric: domain.MetricShootingPct, TeamValue: nan(), LeagueValue: 0.1, Gap: nan(), TeamN: 0, LeagueN: 4},
		},
	}
}

func TestGapWorkbook_SaveAndReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "gaps.xlsx")

	book := NewGapWorkbook()
	require.NoError(t, book.AddGapTable("count_uta_gaps.png", sampleGapTable("")))
	require.NoError(t, book.AddGapTable("C_counts", sampleGapTable(domain.PositionCenter)))
	assert.Equal(t, []string{"count_uta_gaps", "C_counts"}, book.Sheets())
	require.NoError(t, book.SaveAs(path))
	require.NoError(t, book.Close())

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"count_uta_gaps", "C_counts"}, f.GetSheetList())

	rows, err := f.GetRows("C_counts")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, GapHeaders, rows[0])
	assert.Equal(t, "G", rows[1][0])
	assert.Equal(t, "C", rows[1][2])
	assert.Equal(t, "2", rows[1][5])
	assert.Equal(t, "", rows[2][3])

	panes, err := f.GetPanes("count_uta_gaps")
	require.NoError(t, err)
	assert.True(t, panes.Freeze)
	assert.Equal(t, 1, panes.YSplit)
}

func TestGapWorkbook_Errors(t *testing.T) {
	book := NewGapWorkbook()
	defer book.Close()

	err := book.SaveAs(filepath.Join(t.TempDir(), "empty.xlsx"))
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeEmptyData))

	require.NoError(t, book.AddGapTable("F", sampleGapTable(domain.PositionForward)))
	err = book.AddGapTable("f", sampleGapTable(domain.PositionForward))
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
}

func TestSanitizeSheetName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"count_uta_gaps.png", "count_uta_gaps"},
		{"a/b:c", "a_b_c"},
		{"", "gaps"},
		{"forwards_gaps_percentages_with_long_suffix", "forwards_gaps_percentages_with_"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeSheetName(tt.in))
		})
	}
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "0.1250", formatFloat(0.125))
	assert.Equal(t, "-2.0000", formatFloat(-2))
	assert.Equal(t, "", formatFloat(nan()))
	assert.Nil(t, cellValue(nan()))
	assert.Equal(t, 1.5, cellValue(1.5))
}
