package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/multitool/internal/adapters/lockfile" //nolint:depguard // Wired in app wiring
	"go.trai.ch/multitool/internal/adapters/logger"   //nolint:depguard // Wired in app wiring
	"go.trai.ch/multitool/internal/core/ports"
	"go.trai.ch/multitool/internal/engine/reconcile"
)

// NodeID is the unique identifier for the App Graft node.
const NodeID graft.ID = "app"

// ComponentsNodeID is the unique identifier for the Components Graft node.
const ComponentsNodeID graft.ID = "app.components"

func init() {
	graft.Register(graft.Node[*App]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			lockfile.NodeID,
			reconcile.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			store, err := graft.Dep[ports.LockfileStore](ctx)
			if err != nil {
				return nil, err
			}

			reconciler, err := graft.Dep[*reconcile.Reconciler](ctx)
			if err != nil {
				return nil, err
			}

			return New(store, reconciler), nil
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

			lg, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: application, Logger: lg}, nil
		},
	})
}
