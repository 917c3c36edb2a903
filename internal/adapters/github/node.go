package github

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/multitool/internal/core/ports"
)

// ClientNodeID is the unique identifier for the release source Graft node.
const ClientNodeID graft.ID = "adapter.github.client"

// HasherNodeID is the unique identifier for the asset hasher Graft node.
const HasherNodeID graft.ID = "adapter.github.hasher"

func init() {
	graft.Register(graft.Node[ports.ReleaseSource]{
		ID:        ClientNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ReleaseSource, error) {
			return NewClient(), nil
		},
	})

	graft.Register(graft.Node[ports.AssetHasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.AssetHasher, error) {
			return NewHasher(), nil
		},
	})
}
