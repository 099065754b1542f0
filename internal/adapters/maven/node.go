package maven

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/m2/internal/core/ports"
)

// NodeID is the unique identifier for the Maven resolver Graft node.
const NodeID graft.ID = "adapter.maven_resolver"

func init() {
	graft.Register(graft.Node[ports.Resolver]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Resolver, error) {
			return New(), nil
		},
	})
}
