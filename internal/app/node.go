package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lineage/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/lineage/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/lineage/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/lineage/internal/core/ports"
	"go.trai.ch/lineage/pkg/analysis"
)

const (
	// NodeID is the unique identifier for the main App Graft node.
	NodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			loader, err := graft.Dep[ports.PipelineLoader](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			reporter, err := graft.Dep[analysis.Reporter](ctx)
			if err != nil {
				return nil, err
			}
			return New(loader, log, reporter), nil
		},
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			application, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: application, Logger: log}, nil
		},
	})
}
