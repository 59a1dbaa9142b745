package bootstrap

import (
	"time"

	"github.com/kbukum/lazyflow/errors"
	"github.com/kbukum/lazyflow/logger"
)

// Summary collects what a run did for the closing log lines.
type Summary struct {
	name    string
	version string
	started time.Time
	stages  *logger.StageRegistry
}

// NewSummary starts the run clock.
func NewSummary(name, version string) *Summary {
	return &Summary{
		name:    name,
		version: version,
		started: time.Now(),
		stages:  logger.NewStageRegistry(),
	}
}

// Stages returns the registry stage observers record into.
func (s *Summary) Stages() *logger.StageRegistry { return s.stages }

// Elapsed returns the time since the summary was created.
func (s *Summary) Elapsed() time.Duration { return time.Since(s.started) }

// Display logs one line per evaluated stage at debug level and a closing
// line at info level, or error level when the run failed.
func (s *Summary) Display(l *logger.Logger, runErr error) {
	stages := s.stages.Stages()
	for _, st := range stages {
		fields := logger.StageFields(st.Name, st.Kind, st.Items, st.Duration)
		fields[logger.FieldNode] = st.ID
		fields[logger.FieldStatus] = st.Status
		l.Debug("stage", fields)
	}

	fields := logger.Fields(
		"name", s.name,
		"version", s.version,
		"stages", len(stages),
		"failed", s.stages.Failed(),
		logger.FieldDuration, s.Elapsed().Milliseconds(),
	)
	if runErr != nil {
		if appErr, ok := errors.AsAppError(runErr); ok {
			sum := appErr.ToSummary()
			fields["code"] = sum.Code
			fields["fatal"] = sum.Fatal
			for k, v := range sum.Details {
				fields[k] = v
			}
		}
		l.Error("run failed", logger.MergeWithError(fields, runErr))
		return
	}
	l.Info("run complete", fields)
}
