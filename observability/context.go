package observability

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/lazyflow/logger"
)

// RunContext holds observability context for one pipeline run.
type RunContext struct {
	Command   string
	RunID     string
	StartTime time.Time
	Metrics   *StageMetrics
}

// NewRunContext creates a run context with a fresh run ID.
// If metrics is nil, metric recording is silently skipped.
func NewRunContext(command string, metrics *StageMetrics) *RunContext {
	return &RunContext{
		Command:   command,
		RunID:     uuid.NewString(),
		StartTime: time.Now(),
		Metrics:   metrics,
	}
}

type runContextKey struct{}

// WithRunContext stores a RunContext in the context.
func WithRunContext(ctx context.Context, rc *RunContext) context.Context {
	return context.WithValue(ctx, runContextKey{}, rc)
}

// RunContextFromContext retrieves the RunContext from context, or nil.
func RunContextFromContext(ctx context.Context) *RunContext {
	if rc, ok := ctx.Value(runContextKey{}).(*RunContext); ok {
		return rc
	}
	return nil
}

// StartRun starts the run span and tags the context with the run ID, and the
// trace IDs when tracing is enabled, for logging.
func (rc *RunContext) StartRun(ctx context.Context) (context.Context, trace.Span) {
	ctx = WithRunContext(ctx, rc)
	ctx = logger.ContextWithRunID(ctx, rc.RunID)
	ctx, span := StartSpan(ctx, SpanPipelineRun)
	if sc := span.SpanContext(); sc.IsValid() {
		ctx = logger.ContextWithTrace(ctx, sc.TraceID().String(), sc.SpanID().String())
	}
	span.SetAttributes(
		attribute.String(AttrCommand, rc.Command),
		attribute.String(AttrRunID, rc.RunID),
	)
	return ctx, span
}

// EndRun ends the span and records the run metrics.
func (rc *RunContext) EndRun(ctx context.Context, span trace.Span, err error) {
	duration := time.Since(rc.StartTime)
	status := "ok"
	if err != nil {
		status = "error"
		recordSpanError(span, err)
	}

	span.SetAttributes(
		attribute.String(AttrStatus, status),
		attribute.Int64(AttrDurationMs, duration.Milliseconds()),
	)
	span.End()

	if rc.Metrics != nil {
		rc.Metrics.RecordRun(ctx, rc.Command, status, duration)
	}
}

// Duration returns the elapsed time since the run started.
func (rc *RunContext) Duration() time.Duration {
	return time.Since(rc.StartTime)
}
