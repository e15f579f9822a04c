package loader

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/carton/internal/adapters/archive"
	"go.trai.ch/carton/internal/adapters/logger"
	"go.trai.ch/carton/internal/core/ports"
)

// NodeID is the unique identifier for the loader factory Graft node.
const NodeID graft.ID = "adapter.loader_factory"

func init() {
	graft.Register(graft.Node[ports.LoaderFactory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{archive.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.LoaderFactory, error) {
			codec, err := graft.Dep[ports.ArchiveCodec](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewFactory(codec, log), nil
		},
	})
}
