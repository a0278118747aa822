// Package shell adapts external commands into analysis step logic.
package shell

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os/exec"
	"strings"

	"go.trai.ch/lineage/internal/core/domain"
	"go.trai.ch/lineage/internal/core/ports"
	"go.trai.ch/lineage/pkg/analysis"
	"go.trai.ch/zerr"
)

// Logic runs a command as an analysis step. The snapshot is piped to the
// command as a JSON object on stdin; if the command prints anything to
// stdout it must be a JSON object, which replaces the snapshot's contents
// (an empty stdout leaves the snapshot as is). Stderr streams to the logger
// line by line.
type Logic struct {
	name    string
	command []string
	log     ports.Logger
}

var _ analysis.Logic = (*Logic)(nil)

// New creates a command-backed step.
func New(name string, command []string, log ports.Logger) *Logic {
	return &Logic{name: name, command: command, log: log}
}

// Name returns the step identifier.
func (l *Logic) Name() string { return l.name }

// Source returns the JSON encoding of the argv vector. It is the exact text
// the fingerprint sees, so the fingerprint changes precisely when the
// executed command changes.
func (l *Logic) Source() string {
	data, _ := json.Marshal(l.command)
	return string(data)
}

// Run executes the command against the snapshot.
func (l *Logic) Run(ctx context.Context, snap analysis.Snapshot) error {
	if len(l.command) == 0 {
		return zerr.With(domain.ErrMissingCommand, "step", l.name)
	}

	input, err := json.Marshal(map[string]any(snap))
	if err != nil {
		return zerr.Wrap(err, "failed to encode snapshot for step input")
	}

	cmd := exec.CommandContext(ctx, l.command[0], l.command[1:]...) //nolint:gosec // user provided command
	cmd.Stdin = bytes.NewReader(input)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &logWriter{log: l.log}

	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return zerr.With(zerr.Wrap(err, "command failed"), "exit_code", exitCode)
	}

	out := bytes.TrimSpace(stdout.Bytes())
	if len(out) == 0 {
		return nil
	}

	next := make(map[string]any)
	if err := json.Unmarshal(out, &next); err != nil {
		return zerr.Wrap(err, "step output is not a JSON object")
	}
	clear(snap)
	for k, v := range next {
		snap[k] = v
	}
	return nil
}

type logWriter struct {
	log ports.Logger
}

func (w *logWriter) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimSuffix(string(p), "\n"), "\n") {
		w.log.Info(line)
	}
	return len(p), nil
}
