package domain

// Tree is one named output group produced by a unit.
// The zero Tree is the canonical empty marker.
type Tree struct {
	Group string
	Dir   string
}

// EmptyTree is returned by providers for groups that produce nothing.
var EmptyTree = Tree{}

// IsEmpty reports whether the tree carries no content.
func (t Tree) IsEmpty() bool {
	return t.Dir == ""
}

// Composite is an ordered set of trees, each placed under its group name.
type Composite struct {
	Trees []Tree
}

// IsEmpty reports whether the composite has no trees.
func (c Composite) IsEmpty() bool {
	return len(c.Trees) == 0
}

// Groups returns the group names of the composite in order.
func (c Composite) Groups() []string {
	groups := make([]string, 0, len(c.Trees))
	for _, t := range c.Trees {
		groups = append(groups, t.Group)
	}
	return groups
}

// BuildResult is the materialized output of the build engine.
type BuildResult struct {
	// Dir contains one subdirectory per composite group.
	Dir string
	// Cleanup releases the engine's temporary directory. It may be nil.
	Cleanup func() error
}

// Release runs Cleanup if present.
func (r BuildResult) Release() error {
	if r.Cleanup == nil {
		return nil
	}
	return r.Cleanup()
}

// BuildRequest is everything the build engine needs for one run.
type BuildRequest struct {
	Unit      *Unit
	Composite Composite
	Target    Target
	Engine    EngineConfig
}
