package progrock

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/m2/internal/core/ports"
)

// NodeID is the unique identifier for the transfer reporter node.
const NodeID graft.ID = "adapter.transfer_reporter"

func init() {
	graft.Register(graft.Node[ports.TransferReporter]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.TransferReporter, error) {
			return New(), nil
		},
	})
}
