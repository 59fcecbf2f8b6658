package prebuilder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.trai.ch/prebuild/internal/core/domain"
	"go.trai.ch/prebuild/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// BuildOptions configures a prebuild run.
type BuildOptions struct {
	// Policy decides which groups may be prebuilt.
	Policy domain.GroupPolicy
	// Groups overrides the unit's declared or default groups.
	Groups []string
	// CachePath is the absolute cache root override. Relative values are ignored.
	CachePath string
	// DefaultTarget is built when no targets are given.
	DefaultTarget domain.Target
	// Engine configures the build command.
	Engine domain.EngineConfig
	// StoreRoot is the workspace root holding build records. Empty disables records.
	StoreRoot string
	// RunID tags the build records of one run. Generated when empty.
	RunID string
}

// Orchestrator prebuilds units for a list of targets. Units and targets are
// processed strictly one after another, and a failing target never stops the
// ones after it.
type Orchestrator struct {
	merger *Merger
	writer *Writer
	fs     ports.ArtifactFS
	hasher ports.Hasher
	store  ports.BuildInfoStore
	tracer ports.Tracer
	logger ports.Logger

	flight singleflight.Group
	now    func() time.Time
}

// NewOrchestrator creates a new Orchestrator.
func NewOrchestrator(
	provider ports.OutputGroupProvider,
	engine ports.BuildEngine,
	fs ports.ArtifactFS,
	hasher ports.Hasher,
	store ports.BuildInfoStore,
	tracer ports.Tracer,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		merger: NewMerger(provider, logger),
		writer: NewWriter(fs, engine),
		fs:     fs,
		hasher: hasher,
		store:  store,
		tracer: tracer,
		logger: logger,
		now:    time.Now,
	}
}

// Writer returns the cache writer used by the orchestrator.
func (o *Orchestrator) Writer() *Writer {
	return o.writer
}

// BuildAll prebuilds every unit in order. It returns the joined failures of all units.
func (o *Orchestrator) BuildAll(
	ctx context.Context,
	units []*domain.Unit,
	targets []domain.Target,
	opts BuildOptions,
) error {
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}

	ctx, span := o.tracer.Start(ctx, "prebuild",
		ports.WithAttribute("run.id", opts.RunID),
		ports.WithAttribute("units", len(units)),
		ports.WithAttribute("targets", len(targets)),
	)
	defer span.End()

	o.warnSharedArtifacts(units, opts.CachePath)

	var errs []error
	for _, unit := range units {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := o.BuildUnit(ctx, unit, targets, opts); err != nil {
			errs = append(errs, err)
		}
	}

	err := errors.Join(errs...)
	if err != nil {
		span.RecordError(err)
	}
	return err
}

// warnSharedArtifacts reports units that would write the same cache entries:
// same cache root and same version. The unit built last wins.
func (o *Orchestrator) warnSharedArtifacts(units []*domain.Unit, cachePath string) {
	type slot struct{ root, version string }

	owners := make(map[slot][]string, len(units))
	var order []slot
	for _, u := range units {
		s := slot{root: domain.CacheRoot(cachePath, u.Root), version: u.Version}
		if _, ok := owners[s]; !ok {
			order = append(order, s)
		}
		owners[s] = append(owners[s], u.Name)
	}

	for _, s := range order {
		if names := owners[s]; len(names) > 1 {
			o.logger.Warn(fmt.Sprintf("%s share version %s in %s, their artifacts overwrite each other",
				strings.Join(names, ", "), s.version, s.root))
		}
	}
}

// BuildUnit prebuilds one unit for every target in order. Without targets the
// default target is built once and no metadata is written for it.
func (o *Orchestrator) BuildUnit(
	ctx context.Context,
	unit *domain.Unit,
	targets []domain.Target,
	opts BuildOptions,
) error {
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}

	selection, err := opts.Policy.Select(unit, opts.Groups)
	if err != nil {
		err = zerr.With(err, "unit", unit.Name)
		o.logger.Error(err)
		return err
	}
	if len(selection.Dropped) > 0 && selection.Source != domain.GroupSourceDefault {
		o.logger.Warn(fmt.Sprintf("%s: never prebuilding %s", unit.Name, strings.Join(selection.Dropped, ", ")))
	}
	if len(selection.Groups) == 0 {
		o.logger.Warn(fmt.Sprintf("%s: no output groups are safe to prebuild, skipping", unit.Name))
		return nil
	}

	explicit := len(targets) > 0
	if !explicit {
		targets = []domain.Target{opts.DefaultTarget}
	}

	var errs []error
	for _, target := range targets {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := o.buildTarget(ctx, unit.WithTarget(target), selection.Groups, explicit, opts); err != nil {
			o.logger.Error(err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (o *Orchestrator) buildTarget(
	ctx context.Context,
	unit *domain.Unit,
	groups []string,
	explicit bool,
	opts BuildOptions,
) error {
	key := domain.DeriveKey(unit.Target)
	dest := domain.ArtifactPath(domain.CacheRoot(opts.CachePath, unit.Root), key, unit.Version)

	ctx, span := o.tracer.Start(ctx, fmt.Sprintf("prebuild %s (%s)", unit.Name, unit.Target),
		ports.WithAttribute("unit", unit.Name),
		ports.WithAttribute("version", unit.Version),
		ports.WithAttribute("target.key", key),
		ports.WithAttribute("artifact", dest),
		ports.WithAttribute("groups", groups),
	)
	defer span.End()

	_, err, _ := o.flight.Do(dest, func() (any, error) {
		return nil, o.buildArtifact(ctx, unit, groups, dest, explicit, opts)
	})
	if err != nil {
		span.RecordError(err)
		err = zerr.With(err, "unit", unit.Name)
		return zerr.With(err, "target", unit.Target.String())
	}
	return nil
}

func (o *Orchestrator) buildArtifact(
	ctx context.Context,
	unit *domain.Unit,
	groups []string,
	dest string,
	explicit bool,
	opts BuildOptions,
) error {
	release, err := o.fs.Lock(domain.ArtifactLockPath(dest))
	if err != nil {
		return err
	}
	defer release() //nolint:errcheck // a stale lock file is reported on the next run

	if err := o.writer.Invalidate(dest); err != nil {
		return err
	}

	composite, ok := o.merger.Merge(ctx, unit, groups)
	if err := ctx.Err(); err != nil {
		return err
	}
	if !ok {
		o.logger.Warn(fmt.Sprintf("%s: nothing to prebuild for %s", unit.Name, unit.Target))
		return nil
	}

	req := domain.BuildRequest{
		Unit:      unit,
		Composite: composite,
		Target:    unit.Target,
		Engine:    opts.Engine,
	}
	if err := o.writer.Write(ctx, req, dest); err != nil {
		return err
	}
	if explicit {
		if err := o.writer.WriteMetadata(dest, unit.Target); err != nil {
			return errors.Join(err, o.writer.Invalidate(dest))
		}
	}

	o.record(unit, composite, dest, opts)
	o.logger.Info(fmt.Sprintf("prebuilt %s for %s into %s", unit.Name, unit.Target, dest))
	return nil
}

// record stores the build record. Failures only produce a warning since the
// artifact itself is complete.
func (o *Orchestrator) record(unit *domain.Unit, composite domain.Composite, dest string, opts BuildOptions) {
	if opts.StoreRoot == "" {
		return
	}

	digest, err := o.hasher.ComputeDirHash(dest)
	if err != nil {
		o.logger.Warn(fmt.Sprintf("%s: not recording build: %v", unit.Name, err))
		return
	}

	record := domain.BuildRecord{
		Unit:         unit.Name,
		Version:      unit.Version,
		TargetKey:    domain.DeriveKey(unit.Target),
		Target:       unit.Target.String(),
		ArtifactPath: dest,
		Groups:       composite.Groups(),
		Digest:       digest,
		RunID:        opts.RunID,
		BuiltAt:      o.now().UTC(),
	}
	if err := o.store.Put(opts.StoreRoot, record); err != nil {
		o.logger.Warn(fmt.Sprintf("%s: not recording build: %v", unit.Name, err))
	}
}
