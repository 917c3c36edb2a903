// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/multitool/internal/adapters/github"
	_ "go.trai.ch/multitool/internal/adapters/lockfile"
	_ "go.trai.ch/multitool/internal/adapters/logger"
	// Register app and engine nodes.
	_ "go.trai.ch/multitool/internal/app"
	_ "go.trai.ch/multitool/internal/engine/reconcile"
)
