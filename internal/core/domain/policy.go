package domain

import (
	"slices"
	"strings"
)

var (
	// DefaultPrebuildGroups are the groups prebuilt when a unit declares none.
	DefaultPrebuildGroups = []string{"addon", "templates", "addon-test-support"}

	// DefaultAlwaysExcluded are the groups that are never prebuilt nor served from cache.
	DefaultAlwaysExcluded = []string{"app", "styles", "public", "test-support"}
)

// GroupSource describes where a group selection came from.
type GroupSource string

const (
	// GroupSourceExplicit means the groups were passed on the command line.
	GroupSourceExplicit GroupSource = "explicit"
	// GroupSourceUnit means the unit declared its prebuild groups.
	GroupSourceUnit GroupSource = "unit"
	// GroupSourceDefault means the safe default groups were used.
	GroupSourceDefault GroupSource = "default"
)

// GroupPolicy decides which output groups are eligible for prebuilding.
type GroupPolicy struct {
	DefaultGroups  []string
	AlwaysExcluded []string
}

// NewGroupPolicy creates a policy. Nil defaults fall back to the built-in list.
// The built-in always-excluded groups can only be extended: alwaysExcluded is
// added to them, never substituted for them.
func NewGroupPolicy(defaults, alwaysExcluded []string) GroupPolicy {
	if defaults == nil {
		defaults = slices.Clone(DefaultPrebuildGroups)
	}
	excluded := slices.Clone(DefaultAlwaysExcluded)
	for _, g := range alwaysExcluded {
		if !slices.Contains(excluded, g) {
			excluded = append(excluded, g)
		}
	}
	return GroupPolicy{
		DefaultGroups:  defaults,
		AlwaysExcluded: excluded,
	}
}

// IsAlwaysExcluded reports whether the group may never be prebuilt.
func (p GroupPolicy) IsAlwaysExcluded(group string) bool {
	return slices.Contains(p.AlwaysExcluded, group)
}

// SafeDefaultGroups returns the default groups that are safe to prebuild for u:
// those whose tree hook the unit does not customize and that the unit does not exclude.
func (p GroupPolicy) SafeDefaultGroups(u *Unit) []string {
	safe := make([]string, 0, len(p.DefaultGroups))
	for _, g := range p.DefaultGroups {
		if u.Customizes(TreeHookName(g)) || u.Excludes(g) || p.IsAlwaysExcluded(g) {
			continue
		}
		safe = append(safe, g)
	}
	return safe
}

// GroupSelection is the outcome of choosing the groups to prebuild for a unit.
type GroupSelection struct {
	Groups  []string
	Dropped []string
	Source  GroupSource
}

// Select chooses the groups to prebuild for u.
// Explicit groups win, then the unit's declared prebuild groups, then the safe defaults.
// Groups the unit excludes or the policy always excludes are dropped in every case.
// It returns ErrNoGroupsConfigured when no source yields a list at all.
func (p GroupPolicy) Select(u *Unit, explicit []string) (GroupSelection, error) {
	var (
		candidates []string
		source     GroupSource
	)

	switch {
	case len(explicit) > 0:
		candidates, source = explicit, GroupSourceExplicit
	case len(u.PrebuildGroups) > 0:
		candidates, source = u.PrebuildGroups, GroupSourceUnit
	case len(p.DefaultGroups) > 0:
		return GroupSelection{Groups: p.SafeDefaultGroups(u), Source: GroupSourceDefault}, nil
	default:
		return GroupSelection{}, ErrNoGroupsConfigured
	}

	sel := GroupSelection{Source: source, Groups: make([]string, 0, len(candidates))}
	for _, g := range candidates {
		switch {
		case p.IsAlwaysExcluded(g) || u.Excludes(g):
			sel.Dropped = append(sel.Dropped, g)
		case slices.Contains(sel.Groups, g):
		default:
			sel.Groups = append(sel.Groups, g)
		}
	}
	return sel, nil
}

// TreeHookName returns the hook a unit defines to customize a group,
// e.g. "addon" becomes "treeForAddon".
func TreeHookName(group string) string {
	if group == "" {
		return "treeFor"
	}
	return "treeFor" + strings.ToUpper(group[:1]) + group[1:]
}
