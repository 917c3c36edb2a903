package reconcile

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/multitool/internal/adapters/github" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/multitool/internal/adapters/logger" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/multitool/internal/core/ports"
)

// NodeID is the unique identifier for the reconciler Graft node.
const NodeID graft.ID = "engine.reconciler"

func init() {
	graft.Register(graft.Node[*Reconciler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			github.ClientNodeID,
			github.HasherNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Reconciler, error) {
			releases, err := graft.Dep[ports.ReleaseSource](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.AssetHasher](ctx)
			if err != nil {
				return nil, err
			}

			lg, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewReconciler(releases, hasher, lg), nil
		},
	})
}
