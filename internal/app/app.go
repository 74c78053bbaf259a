package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"nhlvis/internal/config"
	"nhlvis/internal/infrastructure"
	"nhlvis/pkg/contracts"
)

const (
	VERSION = infrastructure.ServiceVersion
	AppName = config.AppName
)

const shutdownTimeout = 5 * time.Second

// exit is swapped in tests
var exit = os.Exit

// Application holds what every command needs: configuration, paths, the
// logger and telemetry
type Application struct {
	Component     string
	Config        *config.Config
	Paths         *config.Paths
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	Metrics       *infrastructure.PipelineMetrics

	closeOnce sync.Once
}

// New loads configuration and builds the application for component
func New(component string) (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return NewWithConfig(cfg, component)
}

// NewWithConfig builds the application from an already loaded configuration
func NewWithConfig(cfg *config.Config, component string) (*Application, error) {
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = infrastructure.WithComponent(logger, component)

	paths := cfg.GetPaths()
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}

	otelCfg := infrastructure.DefaultOTelConfig()
	otelCfg.ServiceName = config.AppName + "-" + component
	if cfg.Telemetry.Enabled {
		otelCfg.EnableTracing = true
		otelCfg.EnableMetrics = true
		otelCfg.TraceFile = firstNonEmpty(cfg.Telemetry.TraceFile, paths.TraceFile)
		otelCfg.MetricsFile = firstNonEmpty(cfg.Telemetry.MetricsFile, paths.MetricsFile)
	}

	providers, err := infrastructure.InitializeOTel(otelCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	metrics, err := infrastructure.CreatePipelineMetrics(providers.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics: %w", err)
	}

	logger.Info("Application starting",
		slog.String("name", AppName),
		slog.String("version", VERSION),
		slog.String("commit", contracts.GitCommit),
		slog.String("data_dir", paths.DataDir),
		slog.Bool("telemetry", cfg.Telemetry.Enabled))

	return &Application{
		Component:     component,
		Config:        cfg,
		Paths:         paths,
		Logger:        logger,
		OTelProviders: providers,
		Metrics:       metrics,
	}, nil
}

// Context returns a run context cancelled on SIGINT or SIGTERM and carrying
// a fresh run id
func (a *Application) Context() (context.Context, context.CancelFunc) {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	return infrastructure.EnsureRunID(ctx), cancel
}

// RunStage runs fn inside a span and records its duration and outcome
func (a *Application) RunStage(ctx context.Context, stage string, fn func(ctx context.Context) error) error {
	ctx, span := a.OTelProviders.Tracer.Start(ctx, stage,
		trace.WithAttributes(attribute.String("component", a.Component)))
	defer span.End()

	start := time.Now()
	a.Logger.InfoContext(ctx, "Stage started", slog.String("stage", stage))

	err := fn(ctx)
	duration := time.Since(start)
	infrastructure.RecordStage(ctx, a.Metrics, stage, duration, err)

	if err != nil {
		infrastructure.RecordError(ctx, err)
		infrastructure.WithError(a.Logger, err).ErrorContext(ctx, "Stage failed",
			slog.String("stage", stage),
			slog.Duration("duration", duration))
		return err
	}

	a.Logger.InfoContext(ctx, "Stage complete",
		slog.String("stage", stage),
		slog.Duration("duration", duration))
	return nil
}

// Close flushes telemetry and closes the log file. Calls after the first
// are no-ops.
func (a *Application) Close() {
	a.closeOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := a.OTelProviders.Shutdown(ctx); err != nil {
			a.Logger.Warn("Telemetry shutdown failed", slog.String("error", err.Error()))
		}
		if err := infrastructure.CloseLogFile(); err != nil {
			a.Logger.Warn("Failed to close log file", slog.String("error", err.Error()))
		}
	})
}

// Fail logs err, flushes telemetry so the failed stage is recorded, and
// terminates with status 1
func (a *Application) Fail(msg string, err error) {
	infrastructure.WithError(a.Logger, err).Error(msg)
	a.Close()
	exit(1)
}

// Exit logs err and terminates with status 1. It is for failures before an
// Application exists; afterwards use Fail.
func Exit(logger *slog.Logger, msg string, err error) {
	if logger == nil {
		logger = slog.Default()
	}
	infrastructure.WithError(logger, err).Error(msg)
	exit(1)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
