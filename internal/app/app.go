// Package app implements the application layer for multitool.
package app

import (
	"context"
	"os"
	"runtime"

	"go.trai.ch/multitool/internal/core/domain"
	"go.trai.ch/multitool/internal/core/ports"
	"go.trai.ch/multitool/internal/engine/reconcile"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	store      ports.LockfileStore
	reconciler *reconcile.Reconciler
}

// New creates a new App instance.
func New(store ports.LockfileStore, reconciler *reconcile.Reconciler) *App {
	return &App{
		store:      store,
		reconciler: reconciler,
	}
}

// UpdateOptions configuration for the Update method.
type UpdateOptions struct {
	LockfilePath string
}

// Update refreshes every binary in the lockfile to the latest release of its
// repository and writes the result back. Individual binaries that fail to
// resolve keep their pinned version; a missing or unreadable lockfile is
// fatal.
func (a *App) Update(ctx context.Context, opts UpdateOptions) error {
	path := opts.LockfilePath
	if path == "" {
		path = domain.DefaultLockfilePath
	}

	if _, err := os.Stat(path); err != nil {
		return zerr.With(domain.ErrLockfileNotFound, "path", path)
	}

	lf, err := a.store.Load(path)
	if err != nil {
		return err
	}

	if err := a.reconciler.Reconcile(ctx, lf, runtime.NumCPU()); err != nil {
		return err
	}

	return a.store.Save(path, lf)
}

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
}
