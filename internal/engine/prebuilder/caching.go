package prebuilder

import (
	"context"
	"fmt"

	"go.trai.ch/prebuild/internal/core/domain"
	"go.trai.ch/prebuild/internal/core/ports"
)

var _ ports.OutputGroupProvider = (*CachingProvider)(nil)

// CachingProvider serves output groups from prebuilt artifacts and falls back
// to the wrapped provider when no usable artifact exists.
type CachingProvider struct {
	next      ports.OutputGroupProvider
	fs        ports.ArtifactFS
	logger    ports.Logger
	policy    domain.GroupPolicy
	cachePath string
	force     bool
}

// NewCachingProvider wraps next. cachePath is the cache root override used at
// build time. With force set, units under active development are served from
// the cache too.
func NewCachingProvider(
	next ports.OutputGroupProvider,
	fs ports.ArtifactFS,
	logger ports.Logger,
	policy domain.GroupPolicy,
	cachePath string,
	force bool,
) *CachingProvider {
	return &CachingProvider{
		next:      next,
		fs:        fs,
		logger:    logger,
		policy:    policy,
		cachePath: cachePath,
		force:     force,
	}
}

// Eligible reports whether group of unit may be served from the cache at all.
func (p *CachingProvider) Eligible(unit *domain.Unit, group string) bool {
	return !p.policy.IsAlwaysExcluded(group) && (p.force || !unit.Developing)
}

// Lookup returns the prebuilt directory for group, built for the unit's
// active target and version.
func (p *CachingProvider) Lookup(unit *domain.Unit, group string) (string, bool) {
	if !p.Eligible(unit, group) {
		return "", false
	}

	artifact := domain.ArtifactPath(
		domain.CacheRoot(p.cachePath, unit.Root),
		domain.DeriveKey(unit.Target),
		unit.Version,
	)
	dir := domain.GroupPath(artifact, group)
	if !p.fs.IsDir(dir) {
		return "", false
	}
	return dir, true
}

// TreeFor implements ports.OutputGroupProvider.
func (p *CachingProvider) TreeFor(ctx context.Context, unit *domain.Unit, group string) (domain.Tree, error) {
	if dir, ok := p.Lookup(unit, group); ok {
		p.logger.Info(fmt.Sprintf("using prebuilt %s for %s", group, unit.Name))
		return domain.Tree{Group: group, Dir: dir}, nil
	}
	return p.next.TreeFor(ctx, unit, group)
}
