// Package app implements the application layer for prebuild.
package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"

	"go.trai.ch/prebuild/internal/adapters/detector"
	"go.trai.ch/prebuild/internal/core/domain"
	"go.trai.ch/prebuild/internal/core/ports"
	"go.trai.ch/prebuild/internal/engine/prebuilder"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	loader       ports.ConfigLoader
	targets      ports.TargetProvider
	orchestrator *prebuilder.Orchestrator
	provider     ports.OutputGroupProvider
	fs           ports.ArtifactFS
	hasher       ports.Hasher
	store        ports.BuildInfoStore
	logger       ports.Logger
	workDir      string
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	targets ports.TargetProvider,
	orchestrator *prebuilder.Orchestrator,
	provider ports.OutputGroupProvider,
	fs ports.ArtifactFS,
	hasher ports.Hasher,
	store ports.BuildInfoStore,
	log ports.Logger,
) *App {
	return &App{
		loader:       loader,
		targets:      targets,
		orchestrator: orchestrator,
		provider:     provider,
		fs:           fs,
		hasher:       hasher,
		store:        store,
		logger:       log,
		workDir:      ".",
	}
}

// WithWorkDir sets the directory the configuration is searched from.
func (a *App) WithWorkDir(dir string) *App {
	a.workDir = dir
	return a
}

// PrebuildOptions configuration for the Prebuild method.
type PrebuildOptions struct {
	TargetsDir string
	CachePath  string
	Groups     []string
	Units      []string
	LogFormat  string
}

// Prebuild builds every selected unit for every target found in the targets
// directory, or once for the default target when there is none.
func (a *App) Prebuild(ctx context.Context, opts PrebuildOptions) error {
	if err := a.configureLogger(opts.LogFormat); err != nil {
		return err
	}

	ws, units, err := a.load(opts.Units)
	if err != nil {
		return err
	}

	targets, err := a.targets.Targets(a.targetsDir(ws, opts.TargetsDir))
	if err != nil {
		return err
	}

	settings := ws.Settings()
	buildOpts := prebuilder.BuildOptions{
		Policy:        settings.Policy,
		Groups:        opts.Groups,
		CachePath:     a.cachePath(ws, opts.CachePath),
		DefaultTarget: ws.DefaultTarget(),
		Engine:        settings.Engine,
		StoreRoot:     ws.Root(),
	}
	if err := a.orchestrator.BuildAll(ctx, units, targets, buildOpts); err != nil {
		return errors.Join(domain.ErrPrebuildFailed, err)
	}
	return nil
}

// ClearOptions configuration for the Clear method.
type ClearOptions struct {
	// TargetsDir limits clearing to the artifacts of these targets. Empty clears everything.
	TargetsDir string
	CachePath  string
	Units      []string
	LogFormat  string
}

// Clear removes prebuilt artifacts of the selected units. Each unit's own
// pre-built directory is removed; in a shared cache root only entries built
// for the units' versions are.
func (a *App) Clear(ctx context.Context, opts ClearOptions) error {
	if err := a.configureLogger(opts.LogFormat); err != nil {
		return err
	}

	ws, units, err := a.load(opts.Units)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var keys []string
	if opts.TargetsDir != "" {
		targets, terr := a.targets.Targets(opts.TargetsDir)
		if terr != nil {
			return terr
		}
		if len(targets) == 0 {
			a.logger.Warn(fmt.Sprintf("no targets found in %s, nothing to clear", opts.TargetsDir))
			return nil
		}
		keys = make([]string, 0, len(targets))
		for _, t := range targets {
			keys = append(keys, domain.DeriveKey(t))
		}
	}

	writer := a.orchestrator.Writer()
	var errs []error
	versions := make([]string, 0, len(units))
	for _, u := range units {
		own := filepath.Join(u.Root, domain.PrebuiltDirName)
		if keys == nil {
			errs = append(errs, writer.Clear([]string{own}))
		} else {
			errs = append(errs, writer.ClearMatching(own, prebuilder.ArtifactFilter{Keys: keys}))
		}
		if !slices.Contains(versions, u.Version) {
			versions = append(versions, u.Version)
		}
	}

	// A shared cache root may hold artifacts of other units or unrelated
	// files, so only the selected units' versions are removed from it.
	if shared := a.cachePath(ws, opts.CachePath); shared != "" {
		filter := prebuilder.ArtifactFilter{Keys: keys, Versions: versions}
		errs = append(errs, writer.ClearMatching(shared, filter))
	}
	err = errors.Join(errs...)

	if err != nil {
		a.logger.Error(err)
		return errors.Join(domain.ErrClearFailed, err)
	}
	a.logger.Info(fmt.Sprintf("cleared prebuilt artifacts of %d units", len(units)))
	return nil
}

// LookupOptions configuration for the Lookup method.
type LookupOptions struct {
	Unit       string
	Group      string
	TargetFile string
	CachePath  string
	// OverrideIsDeveloping serves units under active development from the cache too.
	OverrideIsDeveloping bool
}

// LookupResult is the directory that would be used for an output group.
type LookupResult struct {
	Dir      string
	Prebuilt bool
}

// Lookup resolves an output group through the caching provider, the same way
// a host build would.
func (a *App) Lookup(ctx context.Context, opts LookupOptions) (LookupResult, error) {
	ws, units, err := a.load([]string{opts.Unit})
	if err != nil {
		return LookupResult{}, err
	}

	target := ws.DefaultTarget()
	if opts.TargetFile != "" {
		if target, err = a.targets.Load(opts.TargetFile); err != nil {
			return LookupResult{}, err
		}
	}
	unit := units[0].WithTarget(target)

	caching := prebuilder.NewCachingProvider(
		a.provider,
		a.fs,
		a.logger,
		ws.Settings().Policy,
		a.cachePath(ws, opts.CachePath),
		opts.OverrideIsDeveloping,
	)

	_, prebuilt := caching.Lookup(unit, opts.Group)
	tree, err := caching.TreeFor(ctx, unit, opts.Group)
	if err != nil {
		return LookupResult{}, err
	}
	if tree.IsEmpty() {
		err := zerr.With(domain.ErrGroupEmpty, "unit", unit.Name)
		return LookupResult{}, zerr.With(err, "group", opts.Group)
	}
	return LookupResult{Dir: tree.Dir, Prebuilt: prebuilt}, nil
}

// StatusOptions configuration for the Status method.
type StatusOptions struct {
	TargetsDir string
	CachePath  string
	Units      []string
	// Verify recomputes artifact digests and compares them with the build records.
	Verify bool
}

// Status reports the artifact of every selected unit and target.
func (a *App) Status(ctx context.Context, opts StatusOptions) ([]domain.ArtifactStatus, error) {
	ws, units, err := a.load(opts.Units)
	if err != nil {
		return nil, err
	}

	targets, err := a.targets.Targets(a.targetsDir(ws, opts.TargetsDir))
	if err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		targets = []domain.Target{ws.DefaultTarget()}
	}

	cachePath := a.cachePath(ws, opts.CachePath)
	statuses := make([]domain.ArtifactStatus, 0, len(units)*len(targets))
	for _, unit := range units {
		for _, target := range targets {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			status, err := a.status(ws.Root(), unit, target, cachePath, opts.Verify)
			if err != nil {
				return nil, err
			}
			statuses = append(statuses, status)
		}
	}
	return statuses, nil
}

func (a *App) status(
	root string,
	unit *domain.Unit,
	target domain.Target,
	cachePath string,
	verify bool,
) (domain.ArtifactStatus, error) {
	key := domain.DeriveKey(target)
	path := domain.ArtifactPath(domain.CacheRoot(cachePath, unit.Root), key, unit.Version)

	record, err := a.store.Get(root, path)
	if err != nil {
		return domain.ArtifactStatus{}, err
	}

	status := domain.ArtifactStatus{
		Unit:      unit.Name,
		Version:   unit.Version,
		Target:    target.String(),
		TargetKey: key,
		Path:      path,
		Record:    record,
	}

	exists := a.fs.IsDir(path)
	switch {
	case !exists && record == nil:
		status.State = domain.ArtifactMissing
	case !exists:
		status.State = domain.ArtifactStale
	case record == nil:
		status.State = domain.ArtifactUnrecorded
	case verify:
		digest, err := a.hasher.ComputeDirHash(path)
		if err != nil {
			return domain.ArtifactStatus{}, err
		}
		status.State = domain.ArtifactPresent
		if digest != record.Digest {
			status.State = domain.ArtifactModified
		}
	default:
		status.State = domain.ArtifactPresent
	}
	return status, nil
}

func (a *App) load(unitNames []string) (*domain.Workspace, []*domain.Unit, error) {
	ws, err := a.loader.Load(a.workDir)
	if err != nil {
		return nil, nil, zerr.Wrap(err, "failed to load configuration")
	}

	units, err := ws.SelectUnits(unitNames)
	if err != nil {
		return nil, nil, err
	}
	if len(units) == 0 {
		a.logger.Warn("no units found")
	}
	return ws, units, nil
}

func (a *App) configureLogger(format string) error {
	choice, err := detector.ParseFormat(format)
	if err != nil {
		return err
	}
	mode := detector.ResolveFormat(detector.DetectEnvironment(), choice)
	if l, ok := a.logger.(interface{ SetJSON(bool) }); ok {
		l.SetJSON(mode == detector.FormatJSON)
	}
	return nil
}

func (a *App) targetsDir(ws *domain.Workspace, override string) string {
	if override != "" {
		return override
	}
	return ws.Settings().TargetsDir
}

// cachePath returns the shared cache root. Relative paths are ignored and each
// unit falls back to its own pre-built directory.
func (a *App) cachePath(ws *domain.Workspace, override string) string {
	path := override
	if path == "" {
		path = ws.Settings().CachePath
	}
	if path != "" && !filepath.IsAbs(path) {
		a.logger.Warn(fmt.Sprintf("ignoring relative cache path %q", path))
		return ""
	}
	return path
}
