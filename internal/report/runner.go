package report

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gonum.org/v1/plot"

	"nhlvis/internal/analysis"
	"nhlvis/internal/chart"
	"nhlvis/internal/config"
	"nhlvis/internal/exporter"
	"nhlvis/internal/infrastructure"
	"nhlvis/pkg/contracts/domain"
)

// Reporter receives lifecycle callbacks from the runner
type Reporter interface {
	OnRunStart(req Request, total int)
	OnChart(name string, index int, total int)
	OnRunComplete(summary Summary)
	OnRunError(err error)
}

// Request describes one report run
type Request struct {
	Team           string
	TeamName       string
	CountMetrics   []domain.Metric
	PercentMetrics []domain.Metric
	Positions      []domain.Position
	Options        analysis.Options
	ScatterX       domain.Metric
	ScatterY       domain.Metric
	Format         string // chart file extension without the dot
}

// RequestFromConfig builds a run request from the analysis and chart settings
func RequestFromConfig(cfg *config.Config) Request {
	positions := make([]domain.Position, len(cfg.Analysis.Positions))
	for i, p := range cfg.Analysis.Positions {
		positions[i] = domain.Position(p)
	}
	return Request{
		Team:           cfg.Analysis.Team,
		TeamName:       cfg.Analysis.TeamName,
		CountMetrics:   domain.ParseMetrics(cfg.Analysis.CountMetrics),
		PercentMetrics: domain.ParseMetrics(cfg.Analysis.PercentMetrics),
		Positions:      positions,
		Options: analysis.Options{
			Sign:    domain.GapSign(cfg.Analysis.Sign),
			Missing: analysis.MissingPolicy(cfg.Analysis.Missing),
		},
		ScatterX: domain.Metric(cfg.Analysis.ScatterX),
		ScatterY: domain.Metric(cfg.Analysis.ScatterY),
		Format:   cfg.Chart.Format,
	}
}

// Summary lists what a run produced
type Summary struct {
	Charts    []string
	GapTables int
	Workbook  string
	Overview  string
}

// job is one chart of the run
type job struct {
	name     string
	scope    domain.Position
	metrics  []domain.Metric
	scatter  bool
	position string
}

// Runner computes every gap table of a run, renders its chart and exports it
type Runner struct {
	paths    *config.Paths
	renderer *chart.Renderer
	csv      *exporter.CSVWriter
	logger   *slog.Logger
	metrics  *infrastructure.PipelineMetrics
	tracer   trace.Tracer
}

// NewRunner creates a runner writing under paths
func NewRunner(paths *config.Paths, renderer *chart.Renderer, logger *slog.Logger, metrics *infrastructure.PipelineMetrics) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		paths:    paths,
		renderer: renderer,
		csv:      exporter.NewCSVWriter(paths, logger),
		logger:   logger.With(slog.String("component", "report")),
		metrics:  metrics,
		tracer:   otel.Tracer("nhlvis/report"),
	}
}

// Plan returns the chart file names of a request in run order
func Plan(req Request) []string {
	jobs := plan(req)
	names := make([]string, len(jobs))
	for i, j := range jobs {
		names[i] = j.name
	}
	return names
}

func plan(req Request) []job {
	ext := req.Format
	if ext == "" {
		ext = "png"
	}
	file := func(base string) string { return base + "." + ext }
	team := strings.ToLower(req.Team)

	jobs := []job{
		{name: file(fmt.Sprintf("count_%s_gaps", team)), metrics: req.CountMetrics},
		{name: file(fmt.Sprintf("perc_%s_gaps", team)), metrics: req.PercentMetrics},
		{name: file("forwards_gaps_counts"), scope: domain.PositionForward, metrics: req.CountMetrics},
		{name: file("forwards_gaps_percentages"), scope: domain.PositionForward, metrics: req.PercentMetrics},
	}
	for _, pos := range req.Positions {
		jobs = append(jobs,
			job{name: file(fmt.Sprintf("%s_counts", pos)), scope: pos, metrics: req.CountMetrics},
			job{name: file(fmt.Sprintf("%s_percentages", pos)), scope: pos, metrics: req.PercentMetrics},
		)
	}
	jobs = append(jobs, job{
		name:     file(fmt.Sprintf("scatter_F_%s_%s", metricSlug(req.ScatterX), metricSlug(req.ScatterY))),
		scatter:  true,
		position: string(domain.PositionForward),
	})
	return jobs
}

// metricSlug makes a metric code safe for a file name
func metricSlug(m domain.Metric) string {
	switch m {
	case domain.MetricTOIPerGame:
		return "TOI"
	case domain.MetricPointsPerGame:
		return "PGP"
	case domain.MetricPlusMinus:
		return "PM"
	}
	return strings.NewReplacer("%", "PCT", "/", "").Replace(string(m))
}

// Run executes the request against table. It stops at the first failure; the
// forward scatter fails when the table has no forwards.
func (r *Runner) Run(ctx context.Context, table domain.Table, req Request, reporter Reporter) (Summary, error) {
	ctx, span := r.tracer.Start(ctx, "report", trace.WithAttributes(attribute.String("team", req.Team)))
	defer span.End()

	jobs := plan(req)
	if reporter != nil {
		reporter.OnRunStart(req, len(jobs))
	}

	fail := func(err error) (Summary, error) {
		span.RecordError(err)
		r.logger.ErrorContext(ctx, "Report run failed", slog.String("error", err.Error()))
		if reporter != nil {
			reporter.OnRunError(err)
		}
		return Summary{}, err
	}

	book := exporter.NewGapWorkbook()
	defer book.Close()

	var (
		summary Summary
		tables  []domain.GapTable
	)
	for i, j := range jobs {
		if err := ctx.Err(); err != nil {
			return fail(err)
		}
		if reporter != nil {
			reporter.OnChart(j.name, i, len(jobs))
		}

		if j.scatter {
			if err := r.scatterChart(ctx, table, req, j); err != nil {
				return fail(err)
			}
		} else {
			gt, err := r.gapChart(ctx, table, req, j)
			if err != nil {
				return fail(err)
			}
			if err := book.AddGapTable(j.name, gt); err != nil {
				return fail(err)
			}
			tables = append(tables, gt)
		}
		summary.Charts = append(summary.Charts, r.paths.ChartPath(j.name))
	}

	if len(tables) > 0 {
		if err := book.SaveAs(r.paths.GapWorkbook); err != nil {
			return fail(err)
		}
		summary.Workbook = r.paths.GapWorkbook

		overview := r.paths.ChartPath(fmt.Sprintf("overview_%s.svg", strings.ToLower(req.Team)))
		if err := chart.SaveOverview(overview, teamLabel(req), tables); err != nil {
			return fail(err)
		}
		summary.Overview = overview
	}
	summary.GapTables = len(tables)

	r.logger.InfoContext(ctx, "Report run complete",
		slog.String("team", req.Team),
		slog.Int("charts", len(summary.Charts)),
		slog.Int("gap_tables", summary.GapTables))
	if reporter != nil {
		reporter.OnRunComplete(summary)
	}
	return summary, nil
}

func (r *Runner) gapChart(ctx context.Context, table domain.Table, req Request, j job) (domain.GapTable, error) {
	ctx, span := r.tracer.Start(ctx, "gap_chart", trace.WithAttributes(attribute.String("chart", j.name)))
	defer span.End()

	var gt domain.GapTable
	if j.scope == "" {
		gt = analysis.TeamVsLeague(table, req.Team, j.metrics, req.Options)
	} else {
		gt = analysis.PositionGroupGap(table, req.Team, string(j.scope), j.metrics, req.Options)
	}

	p, err := r.renderer.GapBarChart(gt, teamLabel(req))
	if err != nil {
		return gt, err
	}
	if err := r.save(ctx, p, j.name, "gap"); err != nil {
		return gt, err
	}
	if err := r.csv.WriteGapTable(r.paths.GapCSVPath(j.name), gt); err != nil {
		return gt, err
	}
	infrastructure.RecordRows(ctx, r.metrics, "gaps", len(gt.Results))
	return gt, nil
}

func (r *Runner) scatterChart(ctx context.Context, table domain.Table, req Request, j job) error {
	ctx, span := r.tracer.Start(ctx, "scatter_chart", trace.WithAttributes(attribute.String("chart", j.name)))
	defer span.End()

	data, err := analysis.ScatterByPosition(table, req.Team, j.position, req.ScatterX, req.ScatterY)
	if err != nil {
		return err
	}
	p, err := r.renderer.PositionScatter(data, req.Team)
	if err != nil {
		return err
	}
	return r.save(ctx, p, j.name, "scatter")
}

func (r *Runner) save(ctx context.Context, p *plot.Plot, name, kind string) error {
	path := r.paths.ChartPath(name)
	if err := r.renderer.Save(p, path); err != nil {
		return err
	}
	infrastructure.RecordChart(ctx, r.metrics, kind)
	r.logger.DebugContext(ctx, "Chart written", slog.String("path", path), slog.String("kind", kind))
	return nil
}

func teamLabel(req Request) string {
	if req.TeamName != "" {
		return req.TeamName
	}
	return req.Team
}
