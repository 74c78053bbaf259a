// Package cleaning turns the raw skater CSV into the canonical player-season
// table.
package cleaning

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	apperrors "nhlvis/internal/errors"
	"nhlvis/internal/nhlapi"
	"nhlvis/internal/validation"
)

// CanonicalColumns is the cleaned column list. Position i renames raw
// column nhlapi.RawColumns[i].
var CanonicalColumns = []string{
	"A", "EVG", "EVP", "FOW%", "GWG", "GP", "G", "lastName", "OTG", "PIM",
	"playerId", "+/-", "P", "P/GP", "Pos", "PPG", "PPP", "Season", "SHG", "SHP",
	"S%", "S/C", "S", "Player", "Team", "TOI/GP",
}

// SeasonColumn is the cleaned column holding the season start year
const SeasonColumn = "Season"

// Result describes one cleaning run
type Result struct {
	Rows     int
	Columns  int
	Warnings int
}

// Cleaner renames raw skater columns and derives the season year
type Cleaner struct {
	logger *slog.Logger
	files  *validation.FileValidator
	tracer trace.Tracer
}

// NewCleaner creates a cleaner; a nil logger falls back to slog.Default
func NewCleaner(logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "cleaner"))
	return &Cleaner{
		logger: logger,
		files:  validation.NewFileValidator(logger),
		tracer: otel.Tracer("nhlvis/cleaning"),
	}
}

// CleanFile reads the raw CSV at rawPath and writes the cleaned CSV to
// cleanPath. A missing raw file is NOT_FOUND and an empty one EMPTY_DATA.
func (c *Cleaner) CleanFile(ctx context.Context, rawPath, cleanPath string) (Result, error) {
	if err := c.files.ValidateCSVFile(rawPath); err != nil {
		return Result{}, err
	}
	if err := c.files.ValidateOutputDirectory(filepath.Dir(cleanPath)); err != nil {
		return Result{}, err
	}

	in, err := os.Open(rawPath)
	if err != nil {
		return Result{}, apperrors.NewStorageError("open raw file", err).WithContext("path", rawPath)
	}
	defer in.Close()

	out, err := os.Create(cleanPath)
	if err != nil {
		return Result{}, apperrors.NewStorageError("create cleaned file", err).WithContext("path", cleanPath)
	}

	res, err := c.Clean(ctx, in, out)
	if cerr := out.Close(); err == nil && cerr != nil {
		err = apperrors.NewStorageError("close cleaned file", cerr).WithContext("path", cleanPath)
	}
	if err != nil {
		os.Remove(cleanPath)
		return Result{}, err
	}

	c.logger.InfoContext(ctx, "Cleaned skater stats",
		slog.String("input", rawPath),
		slog.String("output", cleanPath),
		slog.Int("rows", res.Rows))
	return res, nil
}

// Clean reads raw CSV from r and writes cleaned CSV to w
func (c *Cleaner) Clean(ctx context.Context, r io.Reader, w io.Writer) (Result, error) {
	ctx, span := c.tracer.Start(ctx, "clean")
	defer span.End()

	df, warnings, err := c.Transform(ctx, r)
	if err != nil {
		span.RecordError(err)
		return Result{}, err
	}

	if err := df.WriteCSV(w); err != nil {
		return Result{}, apperrors.NewStorageError("write cleaned csv", err)
	}

	span.SetAttributes(attribute.Int("rows", df.Nrow()))
	return Result{Rows: df.Nrow(), Columns: df.Ncol(), Warnings: warnings}, nil
}

// Transform loads raw CSV as an all-string dataframe, renames it to
// CanonicalColumns and replaces Season with its 4-digit start year
func (c *Cleaner) Transform(ctx context.Context, r io.Reader) (dataframe.DataFrame, int, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nil),
	)
	if df.Err != nil {
		return df, 0, apperrors.NewParsingError("read raw csv", df.Err)
	}

	names := df.Names()
	if len(names) != len(CanonicalColumns) {
		return df, 0, apperrors.NewSchemaError(fmt.Sprintf(
			"raw file has %d columns, expected %d", len(names), len(CanonicalColumns))).
			WithContext("columns", len(names))
	}

	warnings := 0
	for i, name := range names {
		if name != nhlapi.RawColumns[i] {
			warnings++
			c.logger.WarnContext(ctx, "Raw column name differs from expected, renaming by position",
				slog.Int("index", i),
				slog.String("found", name),
				slog.String("expected", nhlapi.RawColumns[i]),
				slog.String("renamed_to", CanonicalColumns[i]))
		}
	}

	if err := df.SetNames(CanonicalColumns...); err != nil {
		return df, warnings, apperrors.NewSchemaError("rename columns: " + err.Error())
	}

	years, err := SeasonYears(df.Col(SeasonColumn).Records())
	if err != nil {
		return df, warnings, err
	}
	df = df.Mutate(series.New(years, series.Int, SeasonColumn))
	if df.Err != nil {
		return df, warnings, apperrors.NewParsingError("replace season column", df.Err)
	}

	return df, warnings, nil
}

// SeasonYears parses the start year from each 8-digit season code
func SeasonYears(codes []string) ([]int, error) {
	years := make([]int, len(codes))
	for i, code := range codes {
		year, err := SeasonYear(code)
		if err != nil {
			return nil, err.WithContext("row", i+1)
		}
		years[i] = year
	}
	return years, nil
}

// SeasonYear returns the integer value of the first four characters of code
func SeasonYear(code string) (int, *apperrors.AppError) {
	if len(code) < 8 {
		return 0, apperrors.NewParsingError(fmt.Sprintf("season code %q is shorter than 8 characters", code), nil).
			WithContext("season", code)
	}
	year, err := strconv.Atoi(code[:4])
	if err != nil {
		return 0, apperrors.NewParsingError(fmt.Sprintf("season code %q has no integer year prefix", code), err).
			WithContext("season", code)
	}
	return year, nil
}
