package infrastructure

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	apperrors "nhlvis/internal/errors"
)

// PipelineMetrics holds the instruments shared by every stage
type PipelineMetrics struct {
	PagesFetched    metric.Int64Counter
	RequestDuration metric.Float64Histogram
	RowsWritten     metric.Int64Counter
	ChartsRendered  metric.Int64Counter
	StageDuration   metric.Float64Histogram
	StageErrors     metric.Int64Counter
}

// CreatePipelineMetrics creates the stage instruments on meter
func CreatePipelineMetrics(meter metric.Meter) (*PipelineMetrics, error) {
	pagesFetched, err := meter.Int64Counter(
		"nhl_api_pages_fetched_total",
		metric.WithDescription("Total number of skater summary pages fetched"),
	)
	if err != nil {
		return nil, err
	}

	requestDuration, err := meter.Float64Histogram(
		"nhl_api_request_duration_seconds",
		metric.WithDescription("Skater summary request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	rowsWritten, err := meter.Int64Counter(
		"rows_written_total",
		metric.WithDescription("Total number of rows written to output files"),
	)
	if err != nil {
		return nil, err
	}

	chartsRendered, err := meter.Int64Counter(
		"charts_rendered_total",
		metric.WithDescription("Total number of chart files rendered"),
	)
	if err != nil {
		return nil, err
	}

	stageDuration, err := meter.Float64Histogram(
		"stage_duration_seconds",
		metric.WithDescription("Pipeline stage duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	stageErrors, err := meter.Int64Counter(
		"stage_errors_total",
		metric.WithDescription("Total number of failed pipeline stages"),
	)
	if err != nil {
		return nil, err
	}

	return &PipelineMetrics{
		PagesFetched:    pagesFetched,
		RequestDuration: requestDuration,
		RowsWritten:     rowsWritten,
		ChartsRendered:  chartsRendered,
		StageDuration:   stageDuration,
		StageErrors:     stageErrors,
	}, nil
}

// RecordStage records the duration and outcome of one stage run
func RecordStage(ctx context.Context, m *PipelineMetrics, stage string, duration time.Duration, err error) {
	if m == nil {
		return
	}

	status := "success"
	if err != nil {
		status = "failure"
	}
	m.StageDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("stage", stage),
		attribute.String("status", status),
	))

	if err != nil {
		errType := string(apperrors.TypeOf(err))
		if errType == "" {
			errType = "UNKNOWN"
		}
		m.StageErrors.Add(ctx, 1, metric.WithAttributes(
			attribute.String("stage", stage),
			attribute.String("error_type", errType),
		))
	}
}

// RecordPage records one fetched page
func RecordPage(ctx context.Context, m *PipelineMetrics, season int, duration time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.Int("season", season))
	m.PagesFetched.Add(ctx, 1, attrs)
	m.RequestDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordRows records rows written by a stage
func RecordRows(ctx context.Context, m *PipelineMetrics, stage string, rows int) {
	if m == nil {
		return
	}
	m.RowsWritten.Add(ctx, int64(rows), metric.WithAttributes(attribute.String("stage", stage)))
}

// RecordChart records one rendered chart file
func RecordChart(ctx context.Context, m *PipelineMetrics, kind string) {
	if m == nil {
		return
	}
	m.ChartsRendered.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}
