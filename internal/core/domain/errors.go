package domain

import "go.trai.ch/zerr"

var (
	// ErrNoRootStep is returned when a pipeline document declares no step tree.
	ErrNoRootStep = zerr.New("pipeline has no root step")

	// ErrMissingStepName is returned when a step declares no name.
	ErrMissingStepName = zerr.New("step name missing")

	// ErrMissingCommand is returned when a step declares no command.
	ErrMissingCommand = zerr.New("step command missing")

	// ErrDuplicateStep is returned when two siblings share a name.
	ErrDuplicateStep = zerr.New("duplicate step name")

	// ErrNoPipelines is returned when a run is requested without any pipeline files.
	ErrNoPipelines = zerr.New("no pipeline files specified")
)
