// Package bootstrap runs a lazyflow tool's task inside a uniform lifecycle:
// typed configuration with defaults and validation, logger setup, start and
// stop hooks, signal cancellation and an end-of-run stage summary.
//
//	app, err := bootstrap.NewApp(&cfg)
//	if err != nil {
//	    return err
//	}
//	obs := pipeline.RegistryObserver(app.Summary.Stages())
//	return app.RunTask(ctx, func(ctx context.Context) error { ... })
package bootstrap
