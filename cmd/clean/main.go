package main

import (
	"context"
	"flag"
	"log/slog"

	"nhlvis/internal/app"
	"nhlvis/internal/cleaning"
	"nhlvis/internal/infrastructure"
)

func main() {
	in := flag.String("in", "", "raw CSV path (defaults to the raw file under the data directory)")
	out := flag.String("out", "", "cleaned CSV path (defaults to the cleaned file under the data directory)")
	flag.Parse()

	application, err := app.New("clean")
	if err != nil {
		app.Exit(nil, "Startup failed", err)
	}
	defer application.Close()

	logger := application.Logger
	rawPath, cleanPath := resolvePaths(*in, *out, application.Paths.RawCSV, application.Paths.CleanedCSV)

	ctx, cancel := application.Context()
	defer cancel()

	err = application.RunStage(ctx, "clean", func(ctx context.Context) error {
		result, err := cleaning.NewCleaner(logger).CleanFile(ctx, rawPath, cleanPath)
		if err != nil {
			return err
		}
		infrastructure.RecordRows(ctx, application.Metrics, "clean", result.Rows)
		logger.InfoContext(ctx, "Cleaned stats written",
			slog.String("path", cleanPath),
			slog.Int("rows", result.Rows),
			slog.Int("columns", result.Columns),
			slog.Int("warnings", result.Warnings))
		return nil
	})
	if err != nil {
		application.Fail("Cleaning failed", err)
	}
}

func resolvePaths(in, out, defaultIn, defaultOut string) (string, string) {
	if in == "" {
		in = defaultIn
	}
	if out == "" {
		out = defaultOut
	}
	return in, out
}
