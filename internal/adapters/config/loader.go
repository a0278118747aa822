// Package config provides the pipeline configuration loader.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/lineage/internal/core/domain"
	"go.trai.ch/lineage/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultCacheDir is used when a pipeline document names no cache directory.
const DefaultCacheDir = ".lineage"

// Loader implements ports.PipelineLoader using YAML files.
type Loader struct{}

var _ ports.PipelineLoader = (*Loader)(nil)

// NewLoader creates a new Loader.
func NewLoader() *Loader { return &Loader{} }

// Load reads and validates the pipeline document at the given path. A
// relative cache_dir resolves against the document's directory, so running
// the same pipeline from different working directories hits the same cache.
func (l *Loader) Load(path string) (*domain.Pipeline, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read pipeline file")
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(err, "failed to parse pipeline file")
	}

	name := file.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	cacheDir := file.CacheDir
	if cacheDir == "" {
		cacheDir = DefaultCacheDir
	}
	if !filepath.IsAbs(cacheDir) {
		cacheDir = filepath.Join(filepath.Dir(path), cacheDir)
	}

	pipe := &domain.Pipeline{
		Name:     name,
		CacheDir: cacheDir,
		Root:     toStepDef(file.Step),
	}
	if err := pipe.Validate(); err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return pipe, nil
}

func toStepDef(dto StepDTO) domain.StepDef {
	def := domain.StepDef{
		Name:    dto.Name,
		Command: dto.Cmd,
	}
	for _, child := range dto.Steps {
		def.Steps = append(def.Steps, toStepDef(child))
	}
	return def
}
