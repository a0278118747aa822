// Package domain contains the core domain models for pipeline documents.
package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// StepDef declares one step in a pipeline document: a named command plus the
// steps that depend on its output.
type StepDef struct {
	Name    string
	Command []string
	Steps   []StepDef
}

// Pipeline is a pipeline document: a rooted tree of steps and the directory
// its cache artifacts live in. Pipelines sharing a cache directory would
// sweep each other's live artifacts, so every pipeline gets its own.
type Pipeline struct {
	Name     string
	CacheDir string
	Root     StepDef
}

// Validate checks the step tree: every step needs a name and a command, and
// sibling names must be unique so progress output stays unambiguous.
func (p *Pipeline) Validate() error {
	if p.Root.Name == "" && len(p.Root.Command) == 0 && len(p.Root.Steps) == 0 {
		return ErrNoRootStep
	}
	return validateStep(&p.Root)
}

func validateStep(def *StepDef) error {
	if def.Name == "" {
		return zerr.With(ErrMissingStepName, "command", strings.Join(def.Command, " "))
	}
	if len(def.Command) == 0 {
		return zerr.With(ErrMissingCommand, "step", def.Name)
	}

	seen := make(map[string]bool, len(def.Steps))
	for i := range def.Steps {
		child := &def.Steps[i]
		if seen[child.Name] {
			return zerr.With(ErrDuplicateStep, "step", child.Name)
		}
		seen[child.Name] = true
		if err := validateStep(child); err != nil {
			return err
		}
	}
	return nil
}
