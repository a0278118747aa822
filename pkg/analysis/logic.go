package analysis

import "context"

// Logic is one step implementation. The engine always hands Run a private
// copy of the inherited snapshot; implementations mutate it freely.
//
//go:generate mockgen -source=logic.go -destination=mocks/mock_logic.go -package=mocks
type Logic interface {
	// Name identifies the step. It participates in the fingerprint trace.
	Name() string

	// Source is the exact textual source of the step's behavior. Together
	// with the trace of ancestor names it determines the fingerprint, so it
	// must change whenever the behavior does. It is not recursive: code the
	// step invokes indirectly is invisible here, and callers must force a
	// run when such code changes.
	Source() string

	// Run executes the step against the snapshot. An error aborts the whole
	// run; no artifact is saved and descendants never execute.
	Run(ctx context.Context, snap Snapshot) error
}

// StepFunc is the signature of an in-process step implementation.
type StepFunc func(ctx context.Context, snap Snapshot) error

// NewStep adapts a function into a Logic. Go offers no runtime access to a
// function's source text, so source stands in for it: bump it whenever the
// function's behavior changes, or stale artifacts will be reused.
func NewStep(name, source string, fn StepFunc) Logic {
	return &step{name: name, source: source, fn: fn}
}

type step struct {
	name   string
	source string
	fn     StepFunc
}

func (s *step) Name() string   { return s.name }
func (s *step) Source() string { return s.source }

func (s *step) Run(ctx context.Context, snap Snapshot) error {
	return s.fn(ctx, snap)
}
