package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/carton/internal/adapters/archive"            //nolint:depguard // Wired in app layer
	"go.trai.ch/carton/internal/adapters/cas"                //nolint:depguard // Wired in app layer
	"go.trai.ch/carton/internal/adapters/classpath"          //nolint:depguard // Wired in app layer
	"go.trai.ch/carton/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/carton/internal/adapters/loader"             //nolint:depguard // Wired in app layer
	"go.trai.ch/carton/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/carton/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/carton/internal/core/ports"
	"go.trai.ch/carton/internal/engine/closure"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			classpath.NodeID,
			closure.NodeID,
			archive.NodeID,
			loader.NodeID,
			cas.NodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	cfgLoader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	opener, err := graft.Dep[ports.SourceOpener](ctx)
	if err != nil {
		return nil, err
	}

	builder, err := graft.Dep[*closure.Builder](ctx)
	if err != nil {
		return nil, err
	}

	codec, err := graft.Dep[ports.ArchiveCodec](ctx)
	if err != nil {
		return nil, err
	}

	loaders, err := graft.Dep[ports.LoaderFactory](ctx)
	if err != nil {
		return nil, err
	}

	stores, err := graft.Dep[ports.PackRecordStoreOpener](ctx)
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

	return New(cfgLoader, opener, builder, codec, loaders, stores, log, tel), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	a, err := graft.Dep[*App](ctx)
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

	return &Components{
		App:       a,
		Logger:    log,
		Telemetry: tel,
	}, nil
}
