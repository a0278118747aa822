// Package app implements the application layer for lineage.
package app

import (
	"context"
	"os"

	"go.trai.ch/lineage/internal/adapters/shell"
	"go.trai.ch/lineage/internal/core/domain"
	"go.trai.ch/lineage/internal/core/ports"
	"go.trai.ch/lineage/pkg/analysis"
	"go.trai.ch/lineage/pkg/cache"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App wires pipeline loading to tree execution.
type App struct {
	loader   ports.PipelineLoader
	log      ports.Logger
	reporter analysis.Reporter
}

// New creates a new App instance.
func New(loader ports.PipelineLoader, log ports.Logger, reporter analysis.Reporter) *App {
	return &App{
		loader:   loader,
		log:      log,
		reporter: reporter,
	}
}

// Components contains the initialized application components needed by the
// CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
}

// Run executes each pipeline file. Pipelines are independent trees with their
// own cache directories, so they run concurrently; within a tree execution
// stays sequential and depth-first.
func (a *App) Run(ctx context.Context, paths []string, force bool) error {
	if len(paths) == 0 {
		return domain.ErrNoPipelines
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, path := range paths {
		g.Go(func() error {
			return a.runPipeline(ctx, path, force)
		})
	}
	return g.Wait()
}

func (a *App) runPipeline(ctx context.Context, path string, force bool) error {
	pipe, err := a.loader.Load(path)
	if err != nil {
		return zerr.Wrap(err, "failed to load pipeline")
	}

	root := a.buildTree(pipe)
	if _, err := root.Run(ctx, nil, force); err != nil {
		return zerr.With(zerr.Wrap(err, "pipeline execution failed"), "pipeline", pipe.Name)
	}
	return nil
}

// buildTree converts validated step definitions into an analysis tree backed
// by the pipeline's own artifact store.
func (a *App) buildTree(pipe *domain.Pipeline) *analysis.Node {
	store := cache.NewStore(pipe.CacheDir)
	root := analysis.New(
		shell.New(pipe.Root.Name, pipe.Root.Command, a.log),
		store,
		analysis.WithReporter(a.reporter),
	)
	a.attachSteps(root, pipe.Root.Steps)
	return root
}

func (a *App) attachSteps(parent *analysis.Node, defs []domain.StepDef) {
	for _, def := range defs {
		child := parent.Attach(shell.New(def.Name, def.Command, a.log))
		a.attachSteps(child, def.Steps)
	}
}

// Clean removes each pipeline's cache directory entirely.
func (a *App) Clean(_ context.Context, paths []string) error {
	if len(paths) == 0 {
		return domain.ErrNoPipelines
	}

	for _, path := range paths {
		pipe, err := a.loader.Load(path)
		if err != nil {
			return zerr.Wrap(err, "failed to load pipeline")
		}
		if _, err := os.Stat(pipe.CacheDir); err != nil {
			a.log.Warn("cache directory not present: " + pipe.CacheDir)
			continue
		}
		if err := os.RemoveAll(pipe.CacheDir); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to remove cache directory"), "dir", pipe.CacheDir)
		}
		a.log.Info("Removed cache: " + pipe.CacheDir)
	}
	return nil
}
