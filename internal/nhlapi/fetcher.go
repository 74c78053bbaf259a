package nhlapi

import (
	"context"
	"log/slog"

	"nhlvis/internal/infrastructure"
)

// PageFetcher is satisfied by Client
type PageFetcher interface {
	FetchSkaterPage(ctx context.Context, seasonID, page int) ([]SkaterSummary, error)
}

// Sink receives each non-empty page as it arrives
type Sink interface {
	WriteSkaters(skaters []SkaterSummary) error
}

// SinkFunc adapts a function to Sink
type SinkFunc func(skaters []SkaterSummary) error

// WriteSkaters calls f
func (f SinkFunc) WriteSkaters(skaters []SkaterSummary) error {
	return f(skaters)
}

// Reporter receives progress callbacks; every method is optional to act on
type Reporter interface {
	OnSeasonStart(seasonID, index, total int)
	OnPage(seasonID, page, rows int)
	OnSeasonComplete(seasonID, pages, rows int)
}

// Summary counts what a run fetched
type Summary struct {
	Seasons int
	Pages   int
	Rows    int
}

// Fetcher walks every page of every requested season, strictly in order
type Fetcher struct {
	client   PageFetcher
	reporter Reporter
	logger   *slog.Logger
}

// NewFetcher creates a fetcher; reporter may be nil
func NewFetcher(client PageFetcher, reporter Reporter, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		client:   client,
		reporter: reporter,
		logger:   infrastructure.WithComponent(logger, "fetcher"),
	}
}

// FetchSeasons requests page 0, 1, 2... of each season until a page comes
// back empty, then moves to the next season. The first error aborts the
// whole run; nothing is retried.
func (f *Fetcher) FetchSeasons(ctx context.Context, seasons []int, sink Sink) (Summary, error) {
	var summary Summary

	for idx, season := range seasons {
		if f.reporter != nil {
			f.reporter.OnSeasonStart(season, idx, len(seasons))
		}

		pages, rows := 0, 0
		for page := 0; ; page++ {
			if err := ctx.Err(); err != nil {
				return summary, err
			}

			skaters, err := f.client.FetchSkaterPage(ctx, season, page)
			if err != nil {
				f.logger.ErrorContext(ctx, "fetch failed",
					slog.Int("season", season),
					slog.Int("page", page),
					slog.String("error", err.Error()))
				return summary, err
			}
			if len(skaters) == 0 {
				break
			}

			if err := sink.WriteSkaters(skaters); err != nil {
				return summary, err
			}

			pages++
			rows += len(skaters)
			summary.Pages++
			summary.Rows += len(skaters)

			f.logger.InfoContext(ctx, "page written",
				slog.Int("season", season),
				slog.Int("page", page+1),
				slog.Int("rows", len(skaters)))
			if f.reporter != nil {
				f.reporter.OnPage(season, page, len(skaters))
			}
		}

		summary.Seasons++
		if f.reporter != nil {
			f.reporter.OnSeasonComplete(season, pages, rows)
		}
	}

	return summary, nil
}
