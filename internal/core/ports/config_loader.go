package ports

import "go.trai.ch/prebuild/internal/core/domain"

// ConfigLoader defines the interface for loading the workspace configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration reachable from the given working directory
	// and returns the populated unit registry.
	Load(cwd string) (*domain.Workspace, error)
}

// UnitRegistry enumerates the units and sub-applications of a workspace.
// It is implemented by *domain.Workspace.
type UnitRegistry interface {
	ListUnits() []*domain.Unit
	ListSubApps() []domain.ProjectRef
}
