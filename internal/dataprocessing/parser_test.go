package dataprocessing

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "nhlvis/internal/errors"
	"nhlvis/internal/shared/testutil"
	"nhlvis/pkg/contracts/domain"
)

const cleanedHeader = "A,EVG,EVP,FOW%,GWG,GP,G,lastName,OTG,PIM,playerId,+/-,P,P/GP,Pos,PPG,PPP,Season,SHG,SHP,S%,S/C,S,Player,Team,TOI/GP"

func TestParse(t *testing.T) {
	input := cleanedHeader + "\n" +
		"20,5,15,0.52,2,82,10,Keller,1,12,8479343,-3,30,0.3659,C,4,12,2024,0,0,0.1,L,100,Clayton Keller,UTA,1150.5\n" +
		"3,,,,,40,3,Bjugstad,,,8475760,,6,0.15,C,,,2024,,,0.1,L,30,Nick Bjugstad,\"TOR,UTA\",\n"

	table, err := NewLoader(nil).Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())

	keller := table.Row(0)
	assert.Equal(t, 8479343, keller.PlayerID)
	assert.Equal(t, "Clayton Keller", keller.Player)
	assert.Equal(t, "UTA", keller.Team)
	assert.Equal(t, domain.PositionCenter, keller.Position)
	assert.Equal(t, 2024, keller.Season)
	assert.Equal(t, domain.Known(10), keller.Goals)
	assert.Equal(t, domain.Known(-3), keller.PlusMinus)
	assert.Equal(t, domain.Known(0.52), keller.FaceoffWinPct)
	assert.Equal(t, domain.Known(1150.5), keller.TOIPerGame)

	bjugstad := table.Row(1)
	assert.Equal(t, "TOR,UTA", bjugstad.Team)
	assert.False(t, bjugstad.FaceoffWinPct.Valid)
	assert.False(t, bjugstad.TOIPerGame.Valid)
	assert.False(t, bjugstad.PlusMinus.Valid)
	assert.Equal(t, domain.Known(6), bjugstad.Points)
}

func TestParse_ColumnOrderIndependent(t *testing.T) {
	input := "Season,Team,Pos,Player,G\n2023,UTA,R,Dylan Guenther,6\n"

	logger, handler := testutil.NewTestLogger(t)
	table, err := NewLoader(logger).Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())
	assert.Equal(t, domain.Known(6), table.Row(0).Goals)
	assert.False(t, table.Row(0).Assists.Valid)
	assert.True(t, handler.ContainsMessage("Metric column missing, values treated as absent"))
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantType apperrors.ErrorType
	}{
		{"missing team column", "Season,Pos,Player\n2024,C,x\n", apperrors.ErrTypeSchema},
		{"bad season", "Season,Team,Pos,Player\n20x4,UTA,C,x\n", apperrors.ErrTypeParsing},
		{"bad metric", "Season,Team,Pos,Player,G\n2024,UTA,C,x,ten\n", apperrors.ErrTypeParsing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoader(nil).Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Equal(t, tt.wantType, apperrors.TypeOf(err))
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clean.csv")
	require.NoError(t, os.WriteFile(path, []byte("Season,Team,Pos,Player,G\n2024,UTA,C,x,1\n"), 0644))

	table, err := NewLoader(nil).LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())

	_, err = NewLoader(nil).LoadFile(filepath.Join(dir, "missing.csv"))
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNotFound))

	empty := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(empty, nil, 0644))
	_, err = NewLoader(nil).LoadFile(empty)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeEmptyData))

	_, err = NewLoader(nil).LoadFile(filepath.Join(dir, "clean.xlsx"))
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
}

func TestParseStat(t *testing.T) {
	tests := []struct {
		cell    string
		want    domain.Stat
		wantErr bool
	}{
		{"12", domain.Known(12), false},
		{" -4 ", domain.Known(-4), false},
		{"0.125", domain.Known(0.125), false},
		{"", domain.Missing, false},
		{"NaN", domain.Missing, false},
		{"abc", domain.Missing, true},
	}
	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			got, err := ParseStat(tt.cell)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
