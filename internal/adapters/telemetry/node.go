package telemetry

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/lineage/internal/adapters/logger"
	"go.trai.ch/lineage/internal/core/ports"
	"go.trai.ch/lineage/pkg/analysis"
	"golang.org/x/term"
)

// NodeID is the unique identifier for the progress reporter Graft node.
const NodeID graft.ID = "adapter.reporter"

func init() {
	graft.Register(graft.Node[analysis.Reporter]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (analysis.Reporter, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewReporterFor(log, term.IsTerminal(int(os.Stderr.Fd()))), nil
		},
	})
}
