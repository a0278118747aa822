package progrock

import (
	"sync"

	"github.com/vito/progrock"
	"go.trai.ch/lineage/internal/core/ports"
	"go.trai.ch/zerr"
)

// LogWriter is the front-end for vertex recordings: it consumes status
// updates and renders one line per vertex through the logger. The recorder
// re-sends a vertex on every state change, so sightings are deduplicated by
// vertex id.
type LogWriter struct {
	log ports.Logger

	mu     sync.Mutex
	seen   map[string]struct{}
	failed map[string]struct{}
}

var _ progrock.Writer = (*LogWriter)(nil)

// NewLogWriter creates a LogWriter emitting to the given logger.
func NewLogWriter(log ports.Logger) *LogWriter {
	return &LogWriter{
		log:    log,
		seen:   make(map[string]struct{}),
		failed: make(map[string]struct{}),
	}
}

// WriteStatus renders newly appeared vertexes and vertex failures.
func (w *LogWriter) WriteStatus(update *progrock.StatusUpdate) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, v := range update.Vertexes {
		if _, ok := w.seen[v.Id]; !ok {
			w.seen[v.Id] = struct{}{}
			if v.Cached {
				w.log.Info("Loaded from cache: " + v.Name)
			} else {
				w.log.Info("Running: " + v.Name)
			}
		}
		if v.Error == nil {
			continue
		}
		if _, ok := w.failed[v.Id]; !ok {
			w.failed[v.Id] = struct{}{}
			w.log.Error(zerr.With(zerr.New(*v.Error), "step", v.Name))
		}
	}
	return nil
}

// Close implements progrock.Writer; the logger needs no teardown.
func (w *LogWriter) Close() error {
	return nil
}
