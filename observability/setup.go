package observability

import (
	"context"
	stderrors "errors"
	"time"

	"go.opentelemetry.io/otel"
)

// Config is the observability section of a tool configuration.
type Config struct {
	Enabled    bool          `yaml:"enabled" mapstructure:"enabled"`
	Endpoint   string        `yaml:"endpoint" mapstructure:"endpoint" validate:"required_if=Enabled true"`
	Insecure   bool          `yaml:"insecure" mapstructure:"insecure"`
	SampleRate float64       `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gte=0,lte=1"`
	Interval   time.Duration `yaml:"interval" mapstructure:"interval"`
}

// Setup initializes tracing and metrics when enabled and returns the stage
// instruments with a shutdown function. When disabled the instruments record
// on the global (no-op) provider and shutdown does nothing.
func Setup(ctx context.Context, cfg Config, serviceName, version, environment string) (*StageMetrics, func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }
	if !cfg.Enabled {
		m, err := NewStageMetrics(otel.Meter(serviceName))
		return m, noop, err
	}

	svc := Service{Name: serviceName, Version: version, Environment: environment}
	tp, err := InitTracer(ctx, cfg, svc)
	if err != nil {
		return nil, noop, err
	}
	mp, err := InitMeter(ctx, cfg, svc)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, noop, err
	}

	shutdown := func(ctx context.Context) error {
		return stderrors.Join(mp.Shutdown(ctx), tp.Shutdown(ctx))
	}

	m, err := NewStageMetrics(otel.Meter(serviceName))
	if err != nil {
		_ = shutdown(ctx)
		return nil, noop, err
	}
	return m, shutdown, nil
}
