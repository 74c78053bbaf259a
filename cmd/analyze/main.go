package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"strings"

	"nhlvis/internal/app"
	"nhlvis/internal/chart"
	"nhlvis/internal/config"
	"nhlvis/internal/dataprocessing"
	"nhlvis/internal/infrastructure"
	"nhlvis/internal/report"
)

type overrides struct {
	team      string
	teamName  string
	sign      string
	missing   string
	format    string
	positions string
	in        string
}

func main() {
	var o overrides
	flag.StringVar(&o.team, "team", "", "team abbreviation (defaults to UTA)")
	flag.StringVar(&o.teamName, "team-name", "", "team name used in chart titles")
	flag.StringVar(&o.sign, "sign", "", "team_minus_league or league_minus_team")
	flag.StringVar(&o.missing, "missing", "", "per_metric or complete_cases")
	flag.StringVar(&o.format, "format", "", "chart format: png, svg or pdf")
	flag.StringVar(&o.positions, "positions", "", "comma separated position codes for per-position charts")
	flag.StringVar(&o.in, "in", "", "cleaned CSV path (defaults to the cleaned file under the data directory)")
	flag.Parse()

	application, err := app.New("analyze")
	if err != nil {
		app.Exit(nil, "Startup failed", err)
	}
	defer application.Close()

	cfg := application.Config
	logger := application.Logger
	if err := o.apply(cfg); err != nil {
		application.Fail("Invalid flags", err)
	}

	ctx, cancel := application.Context()
	defer cancel()

	inPath := o.in
	if inPath == "" {
		inPath = application.Paths.CleanedCSV
	}

	err = application.RunStage(ctx, "analyze", func(ctx context.Context) error {
		table, err := dataprocessing.NewLoader(logger).LoadFile(inPath)
		if err != nil {
			return err
		}
		infrastructure.RecordRows(ctx, application.Metrics, "load", table.Len())

		renderer := chart.NewRenderer(chart.OptionsFromConfig(cfg.Chart), logger)
		runner := report.NewRunner(application.Paths, renderer, logger, application.Metrics)
		_, err = runner.Run(ctx, table, report.RequestFromConfig(cfg), &logReporter{logger: logger})
		return err
	})
	if err != nil {
		application.Fail("Analysis failed", err)
	}
}

// apply copies the set flags onto cfg and revalidates it
func (o overrides) apply(cfg *config.Config) error {
	if o.team != "" {
		cfg.Analysis.Team = strings.ToUpper(o.team)
		if o.teamName == "" {
			cfg.Analysis.TeamName = cfg.Analysis.Team
		}
	}
	if o.teamName != "" {
		cfg.Analysis.TeamName = o.teamName
	}
	if o.sign != "" {
		cfg.Analysis.Sign = o.sign
	}
	if o.missing != "" {
		cfg.Analysis.Missing = o.missing
	}
	if o.format != "" {
		cfg.Chart.Format = strings.ToLower(o.format)
	}
	if o.positions != "" {
		cfg.Analysis.Positions = splitList(o.positions)
	}
	return cfg.Validate()
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, strings.ToUpper(part))
		}
	}
	return out
}

type logReporter struct {
	logger *slog.Logger
}

func (l *logReporter) OnRunStart(req report.Request, total int) {
	l.logger.Info("Report run started",
		slog.String("team", req.Team),
		slog.String("sign", string(req.Options.Sign)),
		slog.Int("charts", total))
}

func (l *logReporter) OnChart(name string, index int, total int) {
	l.logger.Info(fmt.Sprintf("[%d/%d] %s", index+1, total, name))
}

func (l *logReporter) OnRunComplete(summary report.Summary) {
	l.logger.Info("Report run complete",
		slog.Int("charts", len(summary.Charts)),
		slog.Int("gap_tables", summary.GapTables),
		slog.String("workbook", summary.Workbook),
		slog.String("overview", summary.Overview))
}

func (l *logReporter) OnRunError(err error) {
	infrastructure.WithError(l.logger, err).Error("Report run aborted")
}
