package ports

import "go.trai.ch/prebuild/internal/core/domain"

// TargetProvider reads target descriptors from a targets directory.
//
//go:generate mockgen -source=targets.go -destination=mocks/mock_targets.go -package=mocks
type TargetProvider interface {
	// Targets returns one target per file in dir, in name order.
	// A missing directory yields no targets and no error.
	Targets(dir string) ([]domain.Target, error)

	// Load reads a single target file.
	Load(path string) (domain.Target, error)
}
