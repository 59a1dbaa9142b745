package pipeline

import (
	"context"
	"time"

	"github.com/kbukum/lazyflow/logger"
	"github.com/kbukum/lazyflow/observability"
)

// StageRun describes one evaluation of a node. Duration and Items are filled
// in by the evaluation itself.
type StageRun struct {
	ID       string
	Name     string
	Kind     ContainerKind
	Items    int
	Duration time.Duration
}

// Observer wraps the evaluation of a node. Implementations must call eval
// exactly once and return its error unchanged.
type Observer interface {
	Observe(run *StageRun, eval func() error) error
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(run *StageRun, eval func() error) error

// Observe calls f(run, eval).
func (f ObserverFunc) Observe(run *StageRun, eval func() error) error { return f(run, eval) }

// Chain nests observers; the first one is outermost.
func Chain(observers ...Observer) Observer {
	return ObserverFunc(func(run *StageRun, eval func() error) error {
		next := eval
		for i := len(observers) - 1; i >= 0; i-- {
			obs, inner := observers[i], next
			next = func() error { return obs.Observe(run, inner) }
		}
		return next()
	})
}

// LoggingObserver logs every stage evaluation at debug level and failures at
// error level.
func LoggingObserver(log *logger.Logger) Observer {
	return ObserverFunc(func(run *StageRun, eval func() error) error {
		err := eval()
		stageLog := log.WithStage(run.Name)
		fields := map[string]interface{}{
			logger.FieldNode:     run.ID,
			logger.FieldKind:     run.Kind.String(),
			logger.FieldDuration: run.Duration.Milliseconds(),
		}
		if err != nil {
			stageLog.Error("stage failed", logger.MergeWithError(fields, err))
			return err
		}
		fields[logger.FieldItems] = run.Items
		stageLog.Debug("stage evaluated", fields)
		return nil
	})
}

// MetricsObserver records stage evaluations on m.
func MetricsObserver(m *observability.StageMetrics) Observer {
	return ObserverFunc(func(run *StageRun, eval func() error) error {
		err := eval()
		ctx := context.Background()
		status := "ok"
		if err != nil {
			status = "error"
			m.RecordStageError(ctx, run.Name)
		}
		m.RecordStage(ctx, run.Name, run.Kind.String(), status, run.Duration, run.Items)
		return err
	})
}

// TracingObserver opens a span named "{prefix}.{stage}" around every stage
// evaluation, as a child of the span in parent. Upstream stages forced by a
// stage nest inside its span.
func TracingObserver(parent context.Context, prefix string) Observer {
	return ObserverFunc(func(run *StageRun, eval func() error) error {
		ctx, span := observability.StartSpan(parent, prefix+"."+run.Name)
		defer span.End()

		observability.SetSpanAttribute(ctx, observability.AttrStageID, run.ID)
		observability.SetSpanAttribute(ctx, observability.AttrStageKind, run.Kind.String())

		err := eval()
		if err != nil {
			observability.SetSpanError(ctx, err)
			return err
		}
		observability.SetSpanAttribute(ctx, observability.AttrStageItems, run.Items)
		return nil
	})
}

// RegistryObserver appends every stage evaluation to reg for the end-of-run
// summary.
func RegistryObserver(reg *logger.StageRegistry) Observer {
	return ObserverFunc(func(run *StageRun, eval func() error) error {
		err := eval()
		status := "ok"
		if err != nil {
			status = "error"
		}
		reg.Record(logger.StageRecord{
			ID:       run.ID,
			Name:     run.Name,
			Kind:     run.Kind.String(),
			Status:   status,
			Items:    run.Items,
			Duration: run.Duration,
		})
		return err
	})
}
