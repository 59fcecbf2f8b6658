package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/prebuild/internal/adapters/logger"
	"go.trai.ch/prebuild/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the executor Graft node.
	NodeID graft.ID = "adapter.executor"
	// EngineNodeID is the unique identifier for the build engine Graft node.
	EngineNodeID graft.ID = "adapter.engine"
)

func init() {
	graft.Register(graft.Node[ports.Executor]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{},
		Run: func(_ context.Context) (ports.Executor, error) {
			return NewExecutor(), nil
		},
	})

	graft.Register(graft.Node[ports.BuildEngine]{
		ID:        EngineNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.BuildEngine, error) {
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewEngine(executor, log), nil
		},
	})
}
