package lock

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/m2/internal/core/ports"
)

// NodeID is the unique identifier for the repository locker Graft node.
const NodeID graft.ID = "adapter.repository_locker"

func init() {
	graft.Register(graft.Node[ports.RepositoryLocker]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.RepositoryLocker, error) {
			return New(), nil
		},
	})
}
