package domain

import (
	"slices"

	"go.trai.ch/zerr"
)

// ProjectRef points at a sub-application whose units join the workspace.
type ProjectRef struct {
	Name string
	Root string
}

// EngineConfig configures the external build command run for each composite.
type EngineConfig struct {
	Command     []string
	Environment map[string]string
}

// Settings holds workspace wide prebuild configuration.
type Settings struct {
	TargetsDir     string
	CachePath      string
	DefaultTargets []string
	Blacklist      []string
	Policy         GroupPolicy
	Engine         EngineConfig
}

// Workspace is the typed registry of units and sub-applications.
type Workspace struct {
	root     string
	settings Settings
	units    []*Unit
	subApps  []ProjectRef
}

// NewWorkspace creates an empty workspace rooted at root.
func NewWorkspace(root string, settings Settings) *Workspace {
	return &Workspace{
		root:     root,
		settings: settings,
	}
}

// Root returns the workspace root directory.
func (w *Workspace) Root() string {
	return w.root
}

// Settings returns the workspace settings.
func (w *Workspace) Settings() Settings {
	return w.settings
}

// AddUnit registers a unit. Units sharing a root with a registered unit are ignored.
func (w *Workspace) AddUnit(u *Unit) error {
	for _, existing := range w.units {
		if existing.Root == u.Root {
			return nil
		}
		if existing.Name == u.Name {
			err := zerr.With(ErrDuplicateUnit, "unit", u.Name)
			err = zerr.With(err, "first_occurrence", existing.Root)
			return zerr.With(err, "duplicate_at", u.Root)
		}
	}
	w.units = append(w.units, u)
	return nil
}

// AddSubApp registers a sub-application.
func (w *Workspace) AddSubApp(ref ProjectRef) {
	for _, existing := range w.subApps {
		if existing.Root == ref.Root {
			return
		}
	}
	w.subApps = append(w.subApps, ref)
}

// ListUnits returns the registered units in registration order, skipping blacklisted ones.
func (w *Workspace) ListUnits() []*Unit {
	units := make([]*Unit, 0, len(w.units))
	for _, u := range w.units {
		if slices.Contains(w.settings.Blacklist, u.Name) {
			continue
		}
		units = append(units, u)
	}
	return units
}

// ListSubApps returns the registered sub-applications.
func (w *Workspace) ListSubApps() []ProjectRef {
	return slices.Clone(w.subApps)
}

// SelectUnits returns the named units, or every listed unit when names is empty.
func (w *Workspace) SelectUnits(names []string) ([]*Unit, error) {
	units := w.ListUnits()
	if len(names) == 0 {
		return units, nil
	}

	selected := make([]*Unit, 0, len(names))
	for _, name := range names {
		idx := slices.IndexFunc(units, func(u *Unit) bool { return u.Name == name })
		if idx < 0 {
			return nil, zerr.With(ErrUnitNotFound, "unit", name)
		}
		selected = append(selected, units[idx])
	}
	return selected, nil
}

// DefaultTarget returns the target used when no explicit targets are given.
func (w *Workspace) DefaultTarget() Target {
	if len(w.settings.DefaultTargets) > 0 {
		return NewListTarget(w.settings.DefaultTargets...)
	}
	return NewListTarget(slices.Clone(DefaultTargetQueries)...)
}
