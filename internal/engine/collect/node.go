package collect

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/m2/internal/adapters/lock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/m2/internal/core/ports"
	"go.trai.ch/m2/internal/engine/session"
)

// NodeID is the unique identifier for the collection engine Graft node.
const NodeID graft.ID = "engine.collect"

func init() {
	graft.Register(graft.Node[*Engine]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{session.NodeID, lock.NodeID},
		Run: func(ctx context.Context) (*Engine, error) {
			sessions, err := graft.Dep[*session.Factory](ctx)
			if err != nil {
				return nil, err
			}

			locker, err := graft.Dep[ports.RepositoryLocker](ctx)
			if err != nil {
				return nil, err
			}

			return New(sessions, locker), nil
		},
	})
}
