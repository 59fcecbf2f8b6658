package targets

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/prebuild/internal/core/ports"
)

// NodeID is the unique identifier for the target reader Graft node.
const NodeID graft.ID = "adapter.targets"

func init() {
	graft.Register(graft.Node[ports.TargetProvider]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.TargetProvider, error) {
			return NewReader(), nil
		},
	})
}
