package session

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/m2/internal/adapters/content"            //nolint:depguard // Wired in engine wiring
	"go.trai.ch/m2/internal/adapters/logger"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/m2/internal/adapters/maven"              //nolint:depguard // Wired in engine wiring
	"go.trai.ch/m2/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/m2/internal/core/ports"
)

// NodeID is the unique identifier for the session factory Graft node.
const NodeID graft.ID = "engine.session_factory"

func init() {
	graft.Register(graft.Node[*Factory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			maven.NodeID,
			content.DescriptorsNodeID,
			progrock.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Factory, error) {
			resolver, err := graft.Dep[ports.Resolver](ctx)
			if err != nil {
				return nil, err
			}

			descriptors, err := graft.Dep[ports.ContentDescriptors](ctx)
			if err != nil {
				return nil, err
			}

			reporter, err := graft.Dep[ports.TransferReporter](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewFactory(resolver, descriptors, reporter, log), nil
		},
	})
}
