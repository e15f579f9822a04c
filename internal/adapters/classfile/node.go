package classfile

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/carton/internal/core/ports"
)

// NodeID is the unique identifier for the symbol scanner Graft node.
const NodeID graft.ID = "adapter.symbol_scanner"

func init() {
	graft.Register(graft.Node[ports.SymbolScanner]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.SymbolScanner, error) {
			return NewScanner(), nil
		},
	})
}
