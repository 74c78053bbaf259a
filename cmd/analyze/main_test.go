package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nhlvis/internal/config"
	"nhlvis/internal/report"
	"nhlvis/internal/shared/testutil"
)

func TestOverridesApply(t *testing.T) {
	tests := []struct {
		name    string
		o       overrides
		wantErr bool
		check   func(t *testing.T, cfg *config.Config)
	}{
		{
			name: "no flags keeps defaults",
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, config.DefaultTeam, cfg.Analysis.Team)
				assert.Equal(t, "png", cfg.Chart.Format)
			},
		},
		{
			name: "team without name uses abbreviation",
			o:    overrides{team: "ott", sign: "league_minus_team", missing: "complete_cases", format: "SVG"},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "OTT", cfg.Analysis.Team)
				assert.Equal(t, "OTT", cfg.Analysis.TeamName)
				assert.Equal(t, "league_minus_team", cfg.Analysis.Sign)
				assert.Equal(t, "complete_cases", cfg.Analysis.Missing)
				assert.Equal(t, "svg", cfg.Chart.Format)
			},
		},
		{
			name: "positions",
			o:    overrides{positions: "c, d"},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, []string{"C", "D"}, cfg.Analysis.Positions)
			},
		},
		{name: "bad sign", o: overrides{sign: "up"}, wantErr: true},
		{name: "bad format", o: overrides{format: "gif"}, wantErr: true},
		{name: "bad position", o: overrides{positions: "G"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			err := tt.o.apply(cfg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLogReporter(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)
	r := &logReporter{logger: logger}

	r.OnRunStart(report.Request{Team: "UTA"}, 3)
	r.OnChart("count_UTA_gaps.png", 0, 3)
	r.OnRunComplete(report.Summary{Charts: []string{"a", "b"}, GapTables: 2})
	r.OnRunError(errors.New("boom"))

	assert.True(t, handler.ContainsMessage("[1/3] count_UTA_gaps.png"))
	assert.True(t, handler.ContainsAttr("charts", int64(2)))
	assert.True(t, handler.ContainsMessage("Report run aborted"))
}
