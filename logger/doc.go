// Package logger provides structured logging for lazyflow tools using
// zerolog.
//
// It supports JSON and console output, log level configuration, and
// component- and stage-scoped loggers with structured fields. Logs go to
// stderr by default so that stdout stays free for pipeline output.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.WithComponent(logger.ComponentPipeline)
//	log.Info("stage evaluated", logger.StageFields("split", "slice", 42, d))
//
// A StageRegistry collects per-stage evaluation records for an end-of-run
// summary.
package logger
