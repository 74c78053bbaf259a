package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"nhlvis/internal/app"
	"nhlvis/internal/config"
	apperrors "nhlvis/internal/errors"
	"nhlvis/internal/exporter"
	"nhlvis/internal/infrastructure"
	"nhlvis/internal/nhlapi"
	"nhlvis/internal/validation"
)

func main() {
	seasonsFlag := flag.String("seasons", "", "comma separated season ids such as 20232024 (defaults to 20002001-20242025)")
	outPath := flag.String("out", "", "raw CSV path (defaults to the raw file under the data directory)")
	pageSize := flag.Int("page-size", 0, "records per request (defaults to config)")
	rps := flag.Float64("rps", -1, "requests per second, 0 for unpaced (defaults to config)")
	flag.Parse()

	application, err := app.New("ingest")
	if err != nil {
		app.Exit(nil, "Startup failed", err)
	}
	defer application.Close()

	cfg := application.Config
	logger := application.Logger

	if err := applyFlags(cfg, *seasonsFlag, *pageSize, *rps); err != nil {
		application.Fail("Invalid flags", err)
	}
	if *outPath == "" {
		*outPath = application.Paths.RawCSV
	} else if abs, err := filepath.Abs(*outPath); err == nil {
		*outPath = abs
	}

	ctx, cancel := application.Context()
	defer cancel()

	client := nhlapi.NewClient(cfg.API.BaseURL, cfg.API.Timeout,
		nhlapi.WithPageSize(cfg.API.PageSize),
		nhlapi.WithRateLimit(cfg.API.RPS),
		nhlapi.WithLogger(logger),
		nhlapi.WithMetrics(application.Metrics),
	)

	err = application.RunStage(ctx, "ingest", func(ctx context.Context) error {
		raw, err := exporter.NewCSVWriter(application.Paths, logger).NewRawStatsWriter(*outPath)
		if err != nil {
			return err
		}

		fetcher := nhlapi.NewFetcher(client, &consoleReporter{logger: logger}, logger)
		summary, err := ingest(ctx, fetcher, cfg.API.Seasons, raw)
		if err != nil {
			return err
		}

		infrastructure.RecordRows(ctx, application.Metrics, "ingest", summary.Rows)
		logger.InfoContext(ctx, "Raw stats written",
			slog.String("path", raw.Path()),
			slog.Int("seasons", summary.Seasons),
			slog.Int("pages", summary.Pages),
			slog.Int("rows", summary.Rows))
		return nil
	})
	if err != nil {
		application.Fail("Ingestion failed", err)
	}
}

// applyFlags copies the set flags onto cfg and revalidates it
func applyFlags(cfg *config.Config, seasonsFlag string, pageSize int, rps float64) error {
	if seasonsFlag != "" {
		seasons, err := parseSeasons(seasonsFlag)
		if err != nil {
			return err
		}
		cfg.API.Seasons = seasons
	}
	if pageSize > 0 {
		cfg.API.PageSize = pageSize
	}
	if rps >= 0 {
		cfg.API.RPS = rps
	}
	return cfg.Validate()
}

// ingest fetches every season into raw. The raw file only replaces the
// previous one when all pages arrived.
func ingest(ctx context.Context, fetcher *nhlapi.Fetcher, seasons []int, raw *exporter.RawStatsWriter) (nhlapi.Summary, error) {
	summary, err := fetcher.FetchSeasons(ctx, seasons, raw)
	if err != nil {
		raw.Discard()
		return summary, err
	}
	if err := raw.Close(); err != nil {
		return summary, err
	}
	return summary, nil
}

// parseSeasons reads a comma separated list of 8-digit season ids
func parseSeasons(s string) ([]int, error) {
	var seasons []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil || validation.Validator().Var(id, "seasonid") != nil {
			return nil, apperrors.NewAppValidationError(fmt.Sprintf("invalid season id %q", part))
		}
		seasons = append(seasons, id)
	}
	if len(seasons) == 0 {
		return nil, apperrors.NewAppValidationError("no seasons given")
	}
	return seasons, nil
}

type consoleReporter struct {
	logger *slog.Logger
}

func (c *consoleReporter) OnSeasonStart(seasonID int, index int, total int) {
	c.logger.Info(fmt.Sprintf("[%d/%d] Fetching season %d", index+1, total, seasonID))
}

func (c *consoleReporter) OnPage(seasonID int, page int, rows int) {
	c.logger.Debug("Page fetched",
		slog.Int("season", seasonID),
		slog.Int("page", page),
		slog.Int("rows", rows))
}

func (c *consoleReporter) OnSeasonComplete(seasonID int, pages int, rows int) {
	c.logger.Info("Season complete",
		slog.Int("season", seasonID),
		slog.Int("pages", pages),
		slog.Int("rows", rows))
}
