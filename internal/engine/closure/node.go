package closure

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/carton/internal/adapters/classfile"          //nolint:depguard // Wired in engine wiring
	"go.trai.ch/carton/internal/adapters/logger"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/carton/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/carton/internal/core/ports"
)

// NodeID is the unique identifier for the closure builder Graft node.
const NodeID graft.ID = "engine.closure"

func init() {
	graft.Register(graft.Node[*Builder]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			classfile.NodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: func(ctx context.Context) (*Builder, error) {
			scanner, err := graft.Dep[ports.SymbolScanner](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			tel, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			return NewBuilder(scanner, log, tel), nil
		},
	})
}
