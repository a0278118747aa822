// Package telemetry bridges engine progress reporting onto the logger.
package telemetry

import (
	progrockadapter "go.trai.ch/lineage/internal/adapters/telemetry/progrock"
	"go.trai.ch/lineage/internal/core/ports"
	"go.trai.ch/lineage/pkg/analysis"
)

// NewReporterFor selects the progress front-end. Interactive sessions get the
// vertex recorder with its logger-backed display; everything else gets plain
// per-step log lines.
func NewReporterFor(log ports.Logger, interactive bool) analysis.Reporter {
	if interactive {
		return progrockadapter.NewReporter(progrockadapter.NewLogWriter(log))
	}
	return NewLogReporter(log)
}

// LogReporter implements analysis.Reporter by emitting one log line per step.
type LogReporter struct {
	log ports.Logger
}

var _ analysis.Reporter = (*LogReporter)(nil)

// NewLogReporter creates a reporter backed by the given logger.
func NewLogReporter(log ports.Logger) *LogReporter {
	return &LogReporter{log: log}
}

// StepStarted logs the resolved state for the step.
func (r *LogReporter) StepStarted(name string, state analysis.RunState) analysis.Span {
	switch state {
	case analysis.StateCached:
		r.log.Info("Loaded from cache: " + name)
	case analysis.StateRefreshing:
		r.log.Info("Refreshing: " + name)
	default:
		r.log.Info("Running: " + name)
	}
	return &logSpan{log: r.log}
}

type logSpan struct {
	log ports.Logger
}

// End records a failure; successful steps already logged their state line.
func (s *logSpan) End(err error) {
	if err != nil {
		s.log.Error(err)
	}
}
