package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nhlvis/internal/config"
	apperrors "nhlvis/internal/errors"
	"nhlvis/internal/infrastructure"
)

func testConfig(t *testing.T, telemetry bool) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(dir, "data")
	cfg.Paths.LogsDir = filepath.Join(dir, "logs")
	cfg.Logging.Output = "console"
	cfg.Logging.Level = "error"
	cfg.Telemetry.Enabled = telemetry
	return cfg
}

func newTestApp(t *testing.T, telemetry bool) *Application {
	t.Helper()
	infrastructure.ResetLoggerForTesting()
	t.Cleanup(infrastructure.ResetLoggerForTesting)

	application, err := NewWithConfig(testConfig(t, telemetry), "test")
	require.NoError(t, err)
	return application
}

func TestNewWithConfig(t *testing.T) {
	application := newTestApp(t, false)
	defer application.Close()

	assert.Equal(t, "test", application.Component)
	assert.NotNil(t, application.Logger)
	assert.NotNil(t, application.Metrics)
	assert.DirExists(t, application.Paths.RawDir)
	assert.DirExists(t, application.Paths.GapsDir)
}

func TestContextCarriesRunID(t *testing.T) {
	application := newTestApp(t, false)
	defer application.Close()

	ctx, cancel := application.Context()
	defer cancel()
	assert.NotEmpty(t, infrastructure.GetRunID(ctx))
}

func TestRunStage(t *testing.T) {
	application := newTestApp(t, false)
	defer application.Close()

	called := false
	err := application.RunStage(context.Background(), "clean", func(ctx context.Context) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)

	want := apperrors.NewSchemaError("bad header")
	err = application.RunStage(context.Background(), "clean", func(ctx context.Context) error {
		return want
	})
	assert.Equal(t, want, err)
}

func TestClose_WritesTelemetryFiles(t *testing.T) {
	application := newTestApp(t, true)

	err := application.RunStage(context.Background(), "analyze", func(ctx context.Context) error {
		infrastructure.RecordChart(ctx, application.Metrics, "gap")
		return nil
	})
	require.NoError(t, err)
	application.Close()

	metrics, err := os.ReadFile(application.Paths.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "charts_rendered_total")
	assert.Contains(t, string(metrics), "stage_duration_seconds")

	traces, err := os.ReadFile(application.Paths.TraceFile)
	require.NoError(t, err)
	assert.Contains(t, string(traces), `"Name":"analyze"`)
}

func TestFail_FlushesTelemetry(t *testing.T) {
	application := newTestApp(t, true)

	code := -1
	exit = func(c int) { code = c }
	t.Cleanup(func() { exit = os.Exit })

	err := application.RunStage(context.Background(), "clean", func(ctx context.Context) error {
		return apperrors.NewSchemaError("raw file has 25 columns")
	})
	require.Error(t, err)
	application.Fail("Cleaning failed", err)

	assert.Equal(t, 1, code)

	metrics, err := os.ReadFile(application.Paths.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "stage_errors_total")
	assert.Contains(t, string(metrics), `error_type="SCHEMA"`)

	traces, err := os.ReadFile(application.Paths.TraceFile)
	require.NoError(t, err)
	assert.Contains(t, string(traces), `"Name":"clean"`)

	application.Close()
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "a", firstNonEmpty("", "a", "b"))
	assert.Equal(t, "", firstNonEmpty())
}
