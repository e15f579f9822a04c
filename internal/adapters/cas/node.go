package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/carton/internal/core/ports"
)

// NodeID is the unique identifier for the pack record store Graft node.
const NodeID graft.ID = "adapter.pack_record_store"

func init() {
	graft.Register(graft.Node[ports.PackRecordStoreOpener]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.PackRecordStoreOpener, error) {
			return Opener{}, nil
		},
	})
}
