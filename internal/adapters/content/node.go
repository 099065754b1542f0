package content

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/m2/internal/adapters/logger"
	"go.trai.ch/m2/internal/core/ports"
)

const (
	// DescriptorsNodeID is the unique identifier for the content descriptor cache Graft node.
	DescriptorsNodeID graft.ID = "adapter.content_descriptors"
	// WatcherNodeID is the unique identifier for the file watcher Graft node.
	WatcherNodeID graft.ID = "adapter.watcher"
	// InvalidatorNodeID is the unique identifier for the descriptor invalidator Graft node.
	InvalidatorNodeID graft.ID = "adapter.content_invalidator"
)

func init() {
	graft.Register(graft.Node[ports.ContentDescriptors]{
		ID:        DescriptorsNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ContentDescriptors, error) {
			return NewDescriptors(), nil
		},
	})

	graft.Register(graft.Node[ports.Watcher]{
		ID:        WatcherNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Watcher, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewWatcher(log)
		},
	})

	graft.Register(graft.Node[*Invalidator]{
		ID:        InvalidatorNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{WatcherNodeID, DescriptorsNodeID},
		Run: func(ctx context.Context) (*Invalidator, error) {
			w, err := graft.Dep[ports.Watcher](ctx)
			if err != nil {
				return nil, err
			}
			d, err := graft.Dep[ports.ContentDescriptors](ctx)
			if err != nil {
				return nil, err
			}
			return NewInvalidator(w, d, DefaultDebounceWindow), nil
		},
	})
}
