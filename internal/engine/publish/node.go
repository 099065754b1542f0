package publish

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/m2/internal/adapters/content" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/m2/internal/adapters/lock"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/m2/internal/core/ports"
	"go.trai.ch/m2/internal/engine/session"
)

// NodeID is the unique identifier for the publisher Graft node.
const NodeID graft.ID = "engine.publish"

func init() {
	graft.Register(graft.Node[*Publisher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{session.NodeID, lock.NodeID, content.DescriptorsNodeID},
		Run: func(ctx context.Context) (*Publisher, error) {
			sessions, err := graft.Dep[*session.Factory](ctx)
			if err != nil {
				return nil, err
			}

			locker, err := graft.Dep[ports.RepositoryLocker](ctx)
			if err != nil {
				return nil, err
			}

			descriptors, err := graft.Dep[ports.ContentDescriptors](ctx)
			if err != nil {
				return nil, err
			}

			return New(sessions, locker, descriptors), nil
		},
	})
}
