package ports

import (
	"context"

	"go.trai.ch/prebuild/internal/core/domain"
)

// BuildEngine materializes a composite artifact into a directory.
//
//go:generate mockgen -source=engine.go -destination=mocks/mock_engine.go -package=mocks
type BuildEngine interface {
	// Build materializes the request's composite. The result directory holds
	// one subdirectory per group and must be released by the caller.
	Build(ctx context.Context, req domain.BuildRequest) (domain.BuildResult, error)
}
