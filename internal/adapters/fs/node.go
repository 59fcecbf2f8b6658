package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/prebuild/internal/core/ports"
)

const (
	// WalkerNodeID is the unique identifier for the walker Graft node.
	WalkerNodeID graft.ID = "adapter.fs.walker"
	// HasherNodeID is the unique identifier for the hasher Graft node.
	HasherNodeID graft.ID = "adapter.fs.hasher"
	// ArtifactFSNodeID is the unique identifier for the artifact file system Graft node.
	ArtifactFSNodeID graft.ID = "adapter.fs.artifacts"
	// ProviderNodeID is the unique identifier for the directory provider Graft node.
	ProviderNodeID graft.ID = "adapter.fs.provider"
)

func init() {
	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Walker, error) {
			return NewWalker(), nil
		},
	})

	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{WalkerNodeID},
		Run: func(ctx context.Context) (ports.Hasher, error) {
			walker, err := graft.Dep[*Walker](ctx)
			if err != nil {
				return nil, err
			}
			return NewHasher(walker), nil
		},
	})

	graft.Register(graft.Node[ports.ArtifactFS]{
		ID:        ArtifactFSNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ArtifactFS, error) {
			return NewArtifactFS(), nil
		},
	})

	graft.Register(graft.Node[ports.OutputGroupProvider]{
		ID:        ProviderNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.OutputGroupProvider, error) {
			return NewDirProvider(), nil
		},
	})
}
