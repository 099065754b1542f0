package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/m2/internal/adapters/cas"       //nolint:depguard // Wired in app layer
	"go.trai.ch/m2/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/m2/internal/adapters/content"   //nolint:depguard // Wired in app layer
	"go.trai.ch/m2/internal/adapters/lock"      //nolint:depguard // Wired in app layer
	"go.trai.ch/m2/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/m2/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/m2/internal/core/ports"
	"go.trai.ch/m2/internal/engine/collect"
	"go.trai.ch/m2/internal/engine/materialize"
	"go.trai.ch/m2/internal/engine/publish"
	"go.trai.ch/m2/internal/engine/session"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			session.NodeID,
			collect.NodeID,
			materialize.NodeID,
			publish.NodeID,
			content.DescriptorsNodeID,
			content.InvalidatorNodeID,
			cas.NodeID,
			lock.NodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: a, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	var services Services
	if services.Sessions, err = graft.Dep[*session.Factory](ctx); err != nil {
		return nil, err
	}
	if services.Collector, err = graft.Dep[*collect.Engine](ctx); err != nil {
		return nil, err
	}
	if services.Materializer, err = graft.Dep[*materialize.Materializer](ctx); err != nil {
		return nil, err
	}
	if services.Publisher, err = graft.Dep[*publish.Publisher](ctx); err != nil {
		return nil, err
	}

	descriptors, err := graft.Dep[ports.ContentDescriptors](ctx)
	if err != nil {
		return nil, err
	}

	invalidator, err := graft.Dep[*content.Invalidator](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.BuildRecordStore](ctx)
	if err != nil {
		return nil, err
	}

	locker, err := graft.Dep[ports.RepositoryLocker](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, services, descriptors, store, locker, tracer, log).
		WithChangeNotifier(invalidator), nil
}
