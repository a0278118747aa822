package analysis

// RunState describes how the engine resolved a node during a run.
type RunState string

const (
	// StateCached means the node's persisted artifact was reused.
	StateCached RunState = "Cached"
	// StateRunning means the node executed because no artifact existed.
	StateRunning RunState = "Running"
	// StateRefreshing means the node executed because the caller or a
	// recomputed ancestor forced it.
	StateRefreshing RunState = "Refreshing"
)

// Reporter receives step progress. The engine produces no output of its own;
// everything goes through this interface, so tests can substitute a recording
// implementation and libraries a silent one.
type Reporter interface {
	// StepStarted is invoked once per node per run, after the run state has
	// been decided and before it is acted on.
	StepStarted(name string, state RunState) Span
}

// Span closes out a reported step.
type Span interface {
	// End completes the span, recording the step's error if any.
	End(err error)
}

// NopReporter discards all progress. It is the default for roots constructed
// without WithReporter.
type NopReporter struct{}

// StepStarted returns a span that does nothing.
func (NopReporter) StepStarted(string, RunState) Span { return nopSpan{} }

type nopSpan struct{}

func (nopSpan) End(error) {}
