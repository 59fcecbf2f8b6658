package domain

import (
	"path/filepath"
	"slices"
)

// ConventionalGroupDirs maps well-known output groups to their source directory
// relative to the unit root. Units may override these through Groups.
var ConventionalGroupDirs = map[string]string{
	"addon":              "addon",
	"templates":          filepath.Join("addon", "templates"),
	"addon-test-support": "addon-test-support",
	"app":                "app",
	"styles":             filepath.Join("addon", "styles"),
	"public":             "public",
	"test-support":       "test-support",
	"vendor":             "vendor",
}

// Unit is a buildable package whose output groups can be prebuilt.
type Unit struct {
	// Name is the unit's package name.
	Name string
	// Version may be empty.
	Version string
	// Root is the real path of the unit directory.
	Root string
	// Groups maps declared group names to source directories relative to Root.
	Groups map[string]string
	// PrebuildGroups lists the groups the unit declares as eligible for prebuilding.
	PrebuildGroups []string
	// ExcludedGroups lists the groups the unit forbids from prebuilding.
	ExcludedGroups []string
	// Hooks lists the tree hooks the unit customizes, e.g. "treeForAddon".
	Hooks []string
	// Developing marks a unit that is actively being worked on.
	Developing bool
	// Target is the active target during a build. It is only ever set on a copy.
	Target Target
}

// WithTarget returns a shallow copy of the unit with the given active target.
func (u *Unit) WithTarget(t Target) *Unit {
	c := *u
	c.Target = t
	return &c
}

// Customizes reports whether the unit overrides the named tree hook.
func (u *Unit) Customizes(hook string) bool {
	return slices.Contains(u.Hooks, hook)
}

// Excludes reports whether the unit forbids prebuilding the group.
func (u *Unit) Excludes(group string) bool {
	return slices.Contains(u.ExcludedGroups, group)
}

// GroupDir returns the absolute source directory of a group.
// Declared groups win over the conventional layout.
func (u *Unit) GroupDir(group string) (string, bool) {
	if rel, ok := u.Groups[group]; ok {
		return u.resolve(rel), true
	}
	if rel, ok := ConventionalGroupDirs[group]; ok {
		return u.resolve(rel), true
	}
	return "", false
}

func (u *Unit) resolve(rel string) string {
	if filepath.IsAbs(rel) {
		return filepath.Clean(rel)
	}
	return filepath.Join(u.Root, rel)
}
