package infrastructure

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "nhlvis/internal/errors"
	"nhlvis/internal/shared/testutil"
)

func TestInitializeOTel_Disabled(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)

	providers, err := InitializeOTel(nil, logger)
	require.NoError(t, err)

	assert.Nil(t, providers.TracerProvider)
	assert.Nil(t, providers.MeterProvider)
	assert.NotNil(t, providers.Tracer)
	assert.NotNil(t, providers.Meter)

	metrics, err := CreatePipelineMetrics(providers.Meter)
	require.NoError(t, err)
	RecordPage(context.Background(), metrics, 20242025, time.Millisecond)

	assert.NoError(t, providers.WriteMetrics(filepath.Join(t.TempDir(), "x.prom")))
	assert.NoError(t, providers.Shutdown(context.Background()))
}

func TestInitializeOTel_MetricsTextfile(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	metricsFile := filepath.Join(t.TempDir(), "reports", "nhlvis.prom")

	cfg := DefaultOTelConfig()
	cfg.EnableMetrics = true
	cfg.MetricsFile = metricsFile

	providers, err := InitializeOTel(cfg, logger)
	require.NoError(t, err)
	require.NotNil(t, providers.Registry)

	metrics, err := CreatePipelineMetrics(providers.Meter)
	require.NoError(t, err)

	ctx := context.Background()
	RecordPage(ctx, metrics, 20242025, 20*time.Millisecond)
	RecordRows(ctx, metrics, "ingest", 100)
	RecordChart(ctx, metrics, "bar")
	RecordStage(ctx, metrics, "clean", time.Second, apperrors.NewSchemaError("bad"))

	require.NoError(t, providers.Shutdown(ctx))

	content, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	text := string(content)
	assert.Contains(t, text, "nhl_api_pages_fetched_total")
	assert.Contains(t, text, "rows_written_total")
	assert.Contains(t, text, "charts_rendered_total")
	assert.Contains(t, text, `error_type="SCHEMA"`)
}

func TestInitializeOTel_Tracing(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	var spans bytes.Buffer

	cfg := DefaultOTelConfig()
	cfg.EnableTracing = true
	cfg.TraceWriter = &spans

	providers, err := InitializeOTel(cfg, logger)
	require.NoError(t, err)
	require.NotNil(t, providers.TracerProvider)

	ctx, span := providers.Tracer.Start(context.Background(), "ingest")
	assert.NotEmpty(t, TraceIDFromContext(ctx))
	RecordError(ctx, errors.New("boom"))
	span.End()

	require.NoError(t, providers.Shutdown(context.Background()))
	assert.Contains(t, spans.String(), `"Name":"ingest"`)
}

func TestRecordHelpers_NilMetrics(t *testing.T) {
	ctx := context.Background()

	assert.NotPanics(t, func() {
		RecordStage(ctx, nil, "x", time.Second, nil)
		RecordPage(ctx, nil, 1, time.Second)
		RecordRows(ctx, nil, "x", 1)
		RecordChart(ctx, nil, "bar")
		RecordError(ctx, errors.New("no span"))
	})
	assert.Empty(t, TraceIDFromContext(ctx))
}
