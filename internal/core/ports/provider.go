package ports

import (
	"context"

	"go.trai.ch/prebuild/internal/core/domain"
)

// OutputGroupProvider produces the named output groups of a unit.
//
//go:generate mockgen -source=provider.go -destination=mocks/mock_provider.go -package=mocks
type OutputGroupProvider interface {
	// TreeFor returns the tree for a group. Groups that produce nothing
	// return domain.EmptyTree and a nil error.
	TreeFor(ctx context.Context, unit *domain.Unit, group string) (domain.Tree, error)
}
