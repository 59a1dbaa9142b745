package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/lazyflow/errors"
	"github.com/kbukum/lazyflow/logger"
)

// InitMeter installs a periodic OTLP/HTTP meter provider exporting to
// cfg.Endpoint as the global provider. A zero cfg.Interval keeps the SDK
// default export interval.
func InitMeter(ctx context.Context, cfg Config, svc Service) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, errors.Resource("create", "metric exporter", err)
	}
	res, err := svc.resource()
	if err != nil {
		return nil, errors.Internal(err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if cfg.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.Interval))
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	logger.Debug("meter initialized", logger.Fields(
		"service", svc.Name,
		"endpoint", cfg.Endpoint,
		"interval", cfg.Interval.String(),
	))
	return mp, nil
}

// StageMetrics holds the instruments recorded for pipeline runs and stages.
type StageMetrics struct {
	stageTotal    metric.Int64Counter
	stageDuration metric.Float64Histogram
	stageItems    metric.Int64Histogram
	errorTotal    metric.Int64Counter
	runTotal      metric.Int64Counter
	runDuration   metric.Float64Histogram
}

// NewStageMetrics creates the stage instruments on the given meter.
func NewStageMetrics(meter metric.Meter) (*StageMetrics, error) {
	stageTotal, err := meter.Int64Counter("stage.evaluations",
		metric.WithDescription("Total number of stage evaluations"),
	)
	if err != nil {
		return nil, instrumentError("stage.evaluations", err)
	}

	stageDuration, err := meter.Float64Histogram("stage.duration",
		metric.WithDescription("Duration of stage evaluations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, instrumentError("stage.duration", err)
	}

	stageItems, err := meter.Int64Histogram("stage.items",
		metric.WithDescription("Number of elements produced by a stage"),
	)
	if err != nil {
		return nil, instrumentError("stage.items", err)
	}

	errorTotal, err := meter.Int64Counter("stage.errors",
		metric.WithDescription("Total failed stage evaluations"),
	)
	if err != nil {
		return nil, instrumentError("stage.errors", err)
	}

	runTotal, err := meter.Int64Counter("run.total",
		metric.WithDescription("Total number of pipeline runs"),
	)
	if err != nil {
		return nil, instrumentError("run.total", err)
	}

	runDuration, err := meter.Float64Histogram("run.duration",
		metric.WithDescription("Duration of pipeline runs in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, instrumentError("run.duration", err)
	}

	return &StageMetrics{
		stageTotal:    stageTotal,
		stageDuration: stageDuration,
		stageItems:    stageItems,
		errorTotal:    errorTotal,
		runTotal:      runTotal,
		runDuration:   runDuration,
	}, nil
}

// RecordStage records one stage evaluation.
func (m *StageMetrics) RecordStage(ctx context.Context, stage, kind, status string, duration time.Duration, items int) {
	m.stageTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("stage", stage),
		attribute.String("container", kind),
		attribute.String("status", status),
	))
	attrs := metric.WithAttributes(attribute.String("stage", stage))
	m.stageDuration.Record(ctx, duration.Seconds(), attrs)
	m.stageItems.Record(ctx, int64(items), attrs)
}

// RecordStageError records a failed stage evaluation.
func (m *StageMetrics) RecordStageError(ctx context.Context, stage string) {
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("stage", stage)))
}

// RecordRun records a completed pipeline run.
func (m *StageMetrics) RecordRun(ctx context.Context, command, status string, duration time.Duration) {
	m.runTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("command", command),
		attribute.String("status", status),
	))
	m.runDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("command", command),
	))
}

func instrumentError(name string, err error) error {
	return errors.Internal(err).WithDetail("instrument", name)
}
