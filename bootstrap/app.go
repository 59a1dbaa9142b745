package bootstrap

import (
	"context"
	stderrors "errors"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/kbukum/lazyflow/errors"
	"github.com/kbukum/lazyflow/logger"
)

// App runs one finite task with the lifecycle every lazyflow tool shares:
// validated configuration, a logger, start hooks, signal cancellation,
// stop hooks and a stage summary.
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.OnStop(shutdownTelemetry)
//	err = app.RunTask(ctx, func(ctx context.Context) error {
//	    return sink.Out(words, os.Stdout)
//	})
type App[C Config] struct {
	Name    string
	Version string
	Cfg     C
	Logger  *logger.Logger
	Summary *Summary

	gracefulTimeout time.Duration
	signals         []os.Signal

	onStart []Hook
	onStop  []Hook
}

// NewApp applies defaults to cfg, validates it and sets up the logger.
func NewApp[C Config](cfg C, opts ...Option) (*App[C], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	base := cfg.GetServiceConfig()

	app := &App[C]{
		Name:            base.Name,
		Version:         base.Version,
		Cfg:             cfg,
		gracefulTimeout: 10 * time.Second,
		signals:         []os.Signal{os.Interrupt, syscall.SIGTERM},
	}

	o := resolveOptions(opts)
	if o.gracefulTimeout != nil {
		app.gracefulTimeout = *o.gracefulTimeout
	}
	if o.signalsSet {
		app.signals = o.signals
	}
	if o.logger != nil {
		app.Logger = o.logger
	} else {
		logger.Init(&base.Logging)
		app.Logger = logger.GetGlobalLogger()
	}

	app.Summary = NewSummary(base.Name, base.Version)
	return app, nil
}

// RunTask runs start hooks, then task, then stop hooks, and logs the stage
// summary. The task context is canceled on the configured signals.
//
// The task's error wins over a stop hook error. A failed start hook skips
// the task but stop hooks still run.
func (a *App[C]) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	a.Logger.Debug("starting", logger.Fields("name", a.Name, "version", a.Version))

	taskCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	if len(a.signals) > 0 {
		var stop context.CancelFunc
		taskCtx, stop = signal.NotifyContext(taskCtx, a.signals...)
		defer stop()
	}

	var taskErr error
	if err := runHooks(taskCtx, "start", a.onStart); err != nil {
		taskErr = err
	} else {
		taskErr = task(taskCtx)
		if taskErr == nil && stderrors.Is(taskCtx.Err(), context.Canceled) && ctx.Err() == nil {
			a.Logger.Warn("task interrupted by signal")
		}
	}

	stopErr := a.stop()
	a.Summary.Display(a.Logger, taskErr)

	if taskErr != nil {
		return taskErr
	}
	return stopErr
}

// Shutdown runs the stop hooks. Use it when driving the lifecycle manually.
func (a *App[C]) Shutdown() error {
	return a.stop()
}

func (a *App[C]) stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	hooks := slices.Clone(a.onStop)
	slices.Reverse(hooks)
	a.onStop = nil
	if err := runHooks(ctx, "stop", hooks); err != nil {
		a.Logger.Error("shutdown incomplete", logger.ErrorFields("stop", err))
		return errors.Internal(err)
	}
	return nil
}
