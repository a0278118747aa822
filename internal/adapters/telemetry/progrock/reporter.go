// Package progrock provides the Progrock implementation of the progress
// reporter.
package progrock

import (
	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/lineage/pkg/analysis"
)

// Reporter implements analysis.Reporter by recording one vertex per step.
type Reporter struct {
	w   progrock.Writer
	rec *progrock.Recorder
}

var _ analysis.Reporter = (*Reporter)(nil)

// New creates a Reporter with a default tape.
func New() *Reporter {
	return NewReporter(progrock.NewTape())
}

// NewReporter creates a Reporter recording to the given writer.
func NewReporter(w progrock.Writer) *Reporter {
	return &Reporter{
		w:   w,
		rec: progrock.NewRecorder(w),
	}
}

// StepStarted records a vertex for the step; cache hits are marked as such.
func (r *Reporter) StepStarted(name string, state analysis.RunState) analysis.Span {
	v := r.rec.Vertex(digest.FromString(name), name)
	if state == analysis.StateCached {
		v.Cached()
	}
	return &vertexSpan{vertex: v}
}

// Close flushes and closes the recording session.
func (r *Reporter) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

type vertexSpan struct {
	vertex *progrock.VertexRecorder
}

// End completes the vertex.
func (s *vertexSpan) End(err error) {
	s.vertex.Done(err)
}
