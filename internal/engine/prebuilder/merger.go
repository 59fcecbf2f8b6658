// Package prebuilder builds, stores and serves prebuilt output groups.
package prebuilder

import (
	"context"
	"errors"
	"fmt"

	"go.trai.ch/prebuild/internal/core/domain"
	"go.trai.ch/prebuild/internal/core/ports"
)

// Merger collects a unit's output groups into a composite.
type Merger struct {
	provider ports.OutputGroupProvider
	logger   ports.Logger
}

// NewMerger creates a new Merger.
func NewMerger(provider ports.OutputGroupProvider, logger ports.Logger) *Merger {
	return &Merger{provider: provider, logger: logger}
}

// Merge asks the provider for every group in order and keeps the non-empty
// ones. A group that fails to produce is logged and treated as empty.
// The boolean is false when nothing survived, meaning there is nothing to build.
func (m *Merger) Merge(ctx context.Context, unit *domain.Unit, groups []string) (domain.Composite, bool) {
	var composite domain.Composite
	for _, group := range groups {
		if ctx.Err() != nil {
			return domain.Composite{}, false
		}

		tree, err := m.provider.TreeFor(ctx, unit, group)
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				m.logger.Warn(fmt.Sprintf("skipping group %s of %s: %v", group, unit.Name, err))
			}
			continue
		}
		if tree.IsEmpty() {
			continue
		}

		tree.Group = group
		composite.Trees = append(composite.Trees, tree)
	}
	return composite, !composite.IsEmpty()
}
