package ports

import "go.trai.ch/prebuild/internal/core/domain"

// BuildInfoStore defines the interface for storing and retrieving build records.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type BuildInfoStore interface {
	// Get retrieves the build record for an artifact path.
	// Returns nil, nil if not found.
	Get(root, artifactPath string) (*domain.BuildRecord, error)

	// Put stores the build record.
	Put(root string, record domain.BuildRecord) error
}
