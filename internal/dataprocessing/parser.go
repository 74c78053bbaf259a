package dataprocessing

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	apperrors "nhlvis/internal/errors"
	"nhlvis/internal/validation"
	"nhlvis/pkg/contracts/domain"
)

// Identity columns of the cleaned CSV
const (
	ColumnPlayerID      = "playerId"
	ColumnPlayer        = "Player"
	ColumnLastName      = "lastName"
	ColumnTeam          = "Team"
	ColumnPosition      = "Pos"
	ColumnShootsCatches = "S/C"
	ColumnSeason        = "Season"
)

var requiredColumns = []string{ColumnPlayer, ColumnTeam, ColumnPosition, ColumnSeason}

// metricSetters maps each cleaned metric column to its record field
var metricSetters = map[domain.Metric]func(*domain.PlayerSeason, domain.Stat){
	domain.MetricGamesPlayed:      func(r *domain.PlayerSeason, s domain.Stat) { r.GamesPlayed = s },
	domain.MetricGoals:            func(r *domain.PlayerSeason, s domain.Stat) { r.Goals = s },
	domain.MetricAssists:          func(r *domain.PlayerSeason, s domain.Stat) { r.Assists = s },
	domain.MetricPoints:           func(r *domain.PlayerSeason, s domain.Stat) { r.Points = s },
	domain.MetricShots:            func(r *domain.PlayerSeason, s domain.Stat) { r.Shots = s },
	domain.MetricPenaltyMinutes:   func(r *domain.PlayerSeason, s domain.Stat) { r.PenaltyMinutes = s },
	domain.MetricPlusMinus:        func(r *domain.PlayerSeason, s domain.Stat) { r.PlusMinus = s },
	domain.MetricEVGoals:          func(r *domain.PlayerSeason, s domain.Stat) { r.EVGoals = s },
	domain.MetricEVPoints:         func(r *domain.PlayerSeason, s domain.Stat) { r.EVPoints = s },
	domain.MetricPPGoals:          func(r *domain.PlayerSeason, s domain.Stat) { r.PPGoals = s },
	domain.MetricPPPoints:         func(r *domain.PlayerSeason, s domain.Stat) { r.PPPoints = s },
	domain.MetricSHGoals:          func(r *domain.PlayerSeason, s domain.Stat) { r.SHGoals = s },
	domain.MetricSHPoints:         func(r *domain.PlayerSeason, s domain.Stat) { r.SHPoints = s },
	domain.MetricOTGoals:          func(r *domain.PlayerSeason, s domain.Stat) { r.OTGoals = s },
	domain.MetricGameWinningGoals: func(r *domain.PlayerSeason, s domain.Stat) { r.GameWinningGoals = s },
	domain.MetricShootingPct:      func(r *domain.PlayerSeason, s domain.Stat) { r.ShootingPct = s },
	domain.MetricFaceoffWinPct:    func(r *domain.PlayerSeason, s domain.Stat) { r.FaceoffWinPct = s },
	domain.MetricTOIPerGame:       func(r *domain.PlayerSeason, s domain.Stat) { r.TOIPerGame = s },
	domain.MetricPointsPerGame:    func(r *domain.PlayerSeason, s domain.Stat) { r.PointsPerGame = s },
}

// Loader reads the cleaned CSV into an immutable table
type Loader struct {
	logger *slog.Logger
	files  *validation.FileValidator
}

// NewLoader creates a loader; a nil logger falls back to slog.Default
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "loader"))
	return &Loader{logger: logger, files: validation.NewFileValidator(logger)}
}

// LoadFile opens and parses the cleaned CSV at path. A missing file is
// NOT_FOUND and an empty one EMPTY_DATA.
func (l *Loader) LoadFile(path string) (domain.Table, error) {
	if err := l.files.ValidateCSVFile(path); err != nil {
		return domain.Table{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return domain.Table{}, apperrors.NewStorageError("open cleaned file", err).WithContext("path", path)
	}
	defer f.Close()

	table, err := l.Parse(f)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			appErr.WithContext("path", path)
		}
		return domain.Table{}, err
	}

	l.logger.Info("Loaded cleaned stats",
		slog.String("path", path),
		slog.Int("rows", table.Len()))
	return table, nil
}

// Parse reads cleaned CSV from r. Columns are located by header name, so
// their order does not matter. Empty cells become missing values.
func (l *Loader) Parse(r io.Reader) (domain.Table, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nil),
	)
	if df.Err != nil {
		return domain.Table{}, apperrors.NewParsingError("read cleaned csv", df.Err)
	}

	columnMap := make(map[string][]string, df.Ncol())
	for _, name := range df.Names() {
		columnMap[name] = df.Col(name).Records()
	}

	for _, col := range requiredColumns {
		if _, ok := columnMap[col]; !ok {
			return domain.Table{}, apperrors.NewSchemaError(fmt.Sprintf("cleaned file has no %q column", col)).
				WithContext("column", col)
		}
	}
	for m := range metricSetters {
		if _, ok := columnMap[string(m)]; !ok {
			l.logger.Warn("Metric column missing, values treated as absent", slog.String("metric", string(m)))
		}
	}

	getString := func(col string, i int) string {
		if values, ok := columnMap[col]; ok {
			return strings.TrimSpace(values[i])
		}
		return ""
	}

	rows := make([]domain.PlayerSeason, df.Nrow())
	for i := range rows {
		season, err := strconv.Atoi(getString(ColumnSeason, i))
		if err != nil {
			return domain.Table{}, parseErr(ColumnSeason, i, getString(ColumnSeason, i), err)
		}

		rec := domain.PlayerSeason{
			Player:        getString(ColumnPlayer, i),
			LastName:      getString(ColumnLastName, i),
			Team:          getString(ColumnTeam, i),
			Position:      domain.Position(getString(ColumnPosition, i)),
			ShootsCatches: getString(ColumnShootsCatches, i),
			Season:        season,
		}
		if id := getString(ColumnPlayerID, i); id != "" {
			if rec.PlayerID, err = strconv.Atoi(id); err != nil {
				return domain.Table{}, parseErr(ColumnPlayerID, i, id, err)
			}
		}

		for m, set := range metricSetters {
			raw := getString(string(m), i)
			stat, err := ParseStat(raw)
			if err != nil {
				return domain.Table{}, parseErr(string(m), i, raw, err)
			}
			set(&rec, stat)
		}
		rows[i] = rec
	}

	return domain.NewTable(rows), nil
}

// ParseStat converts a CSV cell to a Stat; empty and NaN cells are missing
func ParseStat(cell string) (domain.Stat, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" || strings.EqualFold(cell, "nan") {
		return domain.Missing, nil
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return domain.Missing, err
	}
	return domain.Known(v), nil
}

func parseErr(column string, row int, value string, cause error) *apperrors.AppError {
	return apperrors.NewParsingError(fmt.Sprintf("invalid %s value %q on row %d", column, value, row+1), cause).
		WithContext("column", column).
		WithContext("row", row+1)
}
