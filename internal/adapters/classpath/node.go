package classpath

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	cfs "go.trai.ch/carton/internal/adapters/fs"
	"go.trai.ch/carton/internal/core/ports"
	"go.trai.ch/zerr"
)

// NodeID is the unique identifier for the classpath opener Graft node.
const NodeID graft.ID = "adapter.classpath_opener"

func init() {
	graft.Register(graft.Node[ports.SourceOpener]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{cfs.WalkerNodeID, cfs.ResolverNodeID},
		Run: func(ctx context.Context) (ports.SourceOpener, error) {
			walker, err := graft.Dep[*cfs.Walker](ctx)
			if err != nil {
				return nil, err
			}
			resolver, err := graft.Dep[*cfs.Resolver](ctx)
			if err != nil {
				return nil, err
			}
			cwd, err := os.Getwd()
			if err != nil {
				return nil, zerr.Wrap(err, "failed to get working directory")
			}
			return NewOpener(resolver, walker, cwd), nil
		},
	})
}
