package prebuilder

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/prebuild/internal/adapters/cas"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/prebuild/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/prebuild/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/prebuild/internal/adapters/shell"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/prebuild/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/prebuild/internal/core/ports"
)

// NodeID is the unique identifier for the orchestrator Graft node.
const NodeID graft.ID = "engine.prebuilder"

func init() {
	graft.Register(graft.Node[*Orchestrator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.ProviderNodeID,
			shell.EngineNodeID,
			fs.ArtifactFSNodeID,
			fs.HasherNodeID,
			cas.NodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Orchestrator, error) {
			provider, err := graft.Dep[ports.OutputGroupProvider](ctx)
			if err != nil {
				return nil, err
			}

			engine, err := graft.Dep[ports.BuildEngine](ctx)
			if err != nil {
				return nil, err
			}

			artifacts, err := graft.Dep[ports.ArtifactFS](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.BuildInfoStore](ctx)
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

			return NewOrchestrator(provider, engine, artifacts, hasher, store, tracer, log), nil
		},
	})
}
