// Package bootstrap wires configuration, logging and adapters into a
// running asset coordinator for the command binaries.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"rbxasset/internal/adapters/filesystem"
	"rbxasset/internal/adapters/watcher"
	"rbxasset/internal/application"
	"rbxasset/internal/config"
	"rbxasset/internal/logging"
)

// Runtime is a configured coordinator plus the adapters feeding it
type Runtime struct {
	Config      config.Config
	Logger      *slog.Logger
	Coordinator *application.Coordinator
	Watcher     *watcher.Watcher
}

// New loads the configuration for root and builds the runtime. Logs go
// to logOut, which must not be the channel a surface answers on.
func New(root string, logOut io.Writer) (*Runtime, error) {
	cfg, err := config.Load(root)
	if err != nil {
		return nil, err
	}

	logger := logging.New(logOut, cfg.LogLevel)

	locator := filesystem.NewLocator(filesystem.Options{
		MappingFile:      cfg.MappingFile,
		SourceExtensions: cfg.SourceExtensions,
		IgnoreDirs:       cfg.IgnoreDirs,
		Logger:           logger,
	})

	coordinator := application.NewCoordinator(application.CoordinatorOptions{
		Root:      cfg.Root,
		Source:    locator,
		Logger:    logger,
		CacheSize: cfg.CacheSize,
	})

	w := watcher.New(watcher.Options{
		Root:        cfg.Root,
		Pattern:     cfg.WatchPattern,
		MappingFile: cfg.MappingFile,
		IgnoreDirs:  cfg.IgnoreDirs,
		Logger:      logger,
	})

	return &Runtime{
		Config:      cfg,
		Logger:      logger,
		Coordinator: coordinator,
		Watcher:     w,
	}, nil
}

// Start runs the first load and waits for it
func (r *Runtime) Start(ctx context.Context) error {
	if err := r.Coordinator.Start(ctx); err != nil {
		return err
	}
	return r.Coordinator.Wait(ctx)
}

// Serve starts the coordinator, then runs the watcher alongside serve.
// The watcher stops when serve returns. A missing project root only skips
// watching; any other watcher failure cancels the context serve receives.
func (r *Runtime) Serve(ctx context.Context, serve func(ctx context.Context) error) error {
	if err := r.Coordinator.Start(ctx); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := r.Watcher.Watch(ctx, r.Coordinator.HandleEvent)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, fs.ErrNotExist):
			// A missing root leaves the index empty; the surface keeps serving
			r.Logger.Warn("not watching, project root missing", "root", r.Config.Root, "err", err)
			return nil
		default:
			return fmt.Errorf("watcher: %w", err)
		}
	})
	g.Go(func() error {
		defer cancel()
		return serve(ctx)
	})
	return g.Wait()
}
