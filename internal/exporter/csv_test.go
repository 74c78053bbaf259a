package exporter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nhlvis/internal/config"
	apperrors "nhlvis/internal/errors"
	"nhlvis/internal/nhlapi"
	"nhlvis/pkg/contracts/domain"
)

func setupTestEnv(t *testing.T) (*CSVWriter, string) {
	t.Helper()
	tempDir := t.TempDir()
	paths := config.NewPaths(filepath.Join(tempDir, "data"), filepath.Join(tempDir, "logs"))
	return NewCSVWriter(paths, nil), tempDir
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	content = bytes.TrimPrefix(content, utf8BOM)
	records, err := csv.NewReader(bytes.NewReader(content)).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWriteCSV(t *testing.T) {
	tests := []struct {
		name      string
		options   WriteOptions
		wantBOM   bool
		wantLines int
	}{
		{
			name: "headers and records",
			options: WriteOptions{
				Headers: []string{"a", "b"},
				Records: [][]string{{"1", "2"}, {"3", "4"}},
			},
			wantLines: 3,
		},
		{
			name: "with bom",
			options: WriteOptions{
				Headers:   []string{"a"},
				Records:   [][]string{{"1"}},
				BOMPrefix: true,
			},
			wantBOM:   true,
			wantLines: 2,
		},
		{
			name:      "headers only",
			options:   WriteOptions{Headers: []string{"a", "b"}},
			wantLines: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writer, _ := setupTestEnv(t)
			path := filepath.Join("out", "test.csv")

			require.NoError(t, writer.WriteCSV(path, tt.options))

			fullPath := writer.resolvePath(path)
			content, err := os.ReadFile(fullPath)
			require.NoError(t, err)
			assert.Equal(t, tt.wantBOM, bytes.HasPrefix(content, utf8BOM))
			assert.Len(t, readCSV(t, fullPath), tt.wantLines)
		})
	}
}

func TestResolvePath(t *testing.T) {
	writer, tempDir := setupTestEnv(t)

	abs := filepath.Join(tempDir, "abs.csv")
	assert.Equal(t, abs, writer.resolvePath(abs))
	assert.Equal(t, filepath.Join(tempDir, "data", "rel.csv"), writer.resolvePath("rel.csv"))

	bare := NewCSVWriter(nil, nil)
	assert.Equal(t, "rel.csv", bare.resolvePath("rel.csv"))
}

func TestStreamWriter(t *testing.T) {
	writer, tempDir := setupTestEnv(t)
	path := filepath.Join(tempDir, "stream.csv")

	stream, err := writer.CreateStreamWriter(path, []string{"h1", "h2"})
	require.NoError(t, err)
	require.NoError(t, stream.WriteRecord([]string{"a", "b"}))
	require.NoError(t, stream.WriteRecord([]string{"c", "d"}))
	assert.Equal(t, 2, stream.Records())
	require.NoError(t, stream.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.False(t, bytes.HasPrefix(content, utf8BOM), "stage files must not carry a BOM")
	assert.Equal(t, [][]string{{"h1", "h2"}, {"a", "b"}, {"c", "d"}}, readCSV(t, path))
}

func TestCreateStreamWriter_BadDirectory(t *testing.T) {
	writer, tempDir := setupTestEnv(t)
	blocker := filepath.Join(tempDir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	_, err := writer.CreateStreamWriter(filepath.Join(blocker, "nested", "out.csv"), nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeStorage))
}

func TestRawStatsWriter(t *testing.T) {
	writer, tempDir := setupTestEnv(t)
	path := filepath.Join(tempDir, "raw.csv")

	raw, err := writer.NewRawStatsWriter(path)
	require.NoError(t, err)

	goals := 12
	pct := 0.125
	page := []nhlapi.SkaterSummary{
		{PlayerID: 1, SkaterFullName: "Clayton Keller", TeamAbbrevs: "UTA", SeasonID: 20242025, Goals: &goals, ShootingPct: &pct},
		{PlayerID: 2, SkaterFullName: "Dylan Guenther", TeamAbbrevs: "UTA", SeasonID: 20242025},
	}

	var sink nhlapi.Sink = raw
	require.NoError(t, sink.WriteSkaters(page))
	assert.Equal(t, 2, raw.Rows())
	require.NoError(t, raw.Close())

	records := readCSV(t, path)
	require.Len(t, records, 3)
	assert.Equal(t, nhlapi.RawColumns, records[0])
	assert.Len(t, records[1], len(nhlapi.RawColumns))
	assert.Equal(t, page[0].Row(), records[1])
}

func TestRawStatsWriter_Discard(t *testing.T) {
	writer, tempDir := setupTestEnv(t)
	path := filepath.Join(tempDir, "raw.csv")

	raw, err := writer.NewRawStatsWriter(path)
	require.NoError(t, err)
	require.NoError(t, raw.WriteSkaters([]nhlapi.SkaterSummary{{PlayerID: 1}}))
	assert.FileExists(t, path+partialSuffix)
	assert.NoFileExists(t, path, "records stay in the partial file until Close")

	require.NoError(t, raw.Discard())
	assert.NoFileExists(t, path+partialSuffix)
	assert.NoFileExists(t, path)
}

func TestWriteGapTable(t *testing.T) {
	writer, tempDir := setupTestEnv(t)
	path := filepath.Join(tempDir, "gaps", "count_uta_gaps.csv")

	gt := domain.GapTable{
		Team: "UTA",
		Sign: domain.SignTeamMinusLeague,
		Results: []domain.GapResult{
			{Metric: domain.MetricGoals, TeamValue: 8, LeagueValue: 6, Gap: 2, TeamN: 3, LeagueN: 5},
			{Metric: domain.MetricFaceoffWinPct, TeamValue: nan(), LeagueValue: nan(), Gap: nan()},
		},
	}
	require.NoError(t, writer.WriteGapTable(path, gt))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, utf8BOM))

	records := readCSV(t, path)
	require.Len(t, records, 3)
	assert.Equal(t, GapHeaders, records[0])
	assert.Equal(t, []string{"G", "UTA", "ALL", "8.0000", "6.0000", "2.0000", "3", "5"}, records[1])
	assert.Equal(t, []string{"FOW%", "UTA", "ALL", "", "", "", "0", "0"}, records[2])
}
