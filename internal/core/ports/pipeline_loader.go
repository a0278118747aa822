package ports

import "go.trai.ch/lineage/internal/core/domain"

// PipelineLoader defines the interface for loading pipeline documents.
//
//go:generate mockgen -source=pipeline_loader.go -destination=mocks/mock_pipeline_loader.go -package=mocks
type PipelineLoader interface {
	// Load reads and validates the pipeline document at the given path.
	Load(path string) (*domain.Pipeline, error)
}
