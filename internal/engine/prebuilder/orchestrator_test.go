package prebuilder_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/prebuild/internal/adapters/cas"
	"go.trai.ch/prebuild/internal/adapters/fs"
	"go.trai.ch/prebuild/internal/adapters/shell"
	"go.trai.ch/prebuild/internal/adapters/telemetry"
	"go.trai.ch/prebuild/internal/core/domain"
	"go.trai.ch/prebuild/internal/core/ports"
	"go.trai.ch/prebuild/internal/core/ports/mocks"
	"go.trai.ch/prebuild/internal/engine/prebuilder"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	orchestrator *prebuilder.Orchestrator
	engine       *faultyEngine
	log          *mocks.MockLogger
	store        *cas.Store
}

// newFixture wires the orchestrator to the real file system adapters and a
// pass-through engine. Log expectations are relaxed unless strict is set.
func newFixture(t *testing.T, strict bool) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	if !strict {
		log.EXPECT().Info(gomock.Any()).AnyTimes()
		log.EXPECT().Warn(gomock.Any()).AnyTimes()
		log.EXPECT().Error(gomock.Any()).AnyTimes()
	}

	engine := &faultyEngine{next: shell.NewEngine(mocks.NewMockExecutor(ctrl), log).WithTempRoot(t.TempDir())}
	store := cas.NewStore()
	orchestrator := prebuilder.NewOrchestrator(
		fs.NewDirProvider(),
		engine,
		fs.NewArtifactFS(),
		fs.NewHasher(fs.NewWalker()),
		store,
		telemetry.NewNoOpTracer(),
		log,
	)
	return &fixture{orchestrator: orchestrator, engine: engine, log: log, store: store}
}

func defaultOptions(cache string) prebuilder.BuildOptions {
	return prebuilder.BuildOptions{
		Policy:        domain.NewGroupPolicy(nil, nil),
		CachePath:     cache,
		DefaultTarget: domain.NewListTarget(domain.DefaultTargetQueries...),
	}
}

func TestOrchestrator_ScenarioPathIsStableAcrossReorder(t *testing.T) {
	f := newFixture(t, false)
	unit := newUnit(t, "foo", "1.2.0", "addon")
	cache := t.TempDir()
	opts := defaultOptions(cache)

	first := domain.NewListTarget("chrome 90", "firefox 88")
	require.NoError(t, f.orchestrator.BuildUnit(context.Background(), unit, []domain.Target{first}, opts))

	expected := filepath.Join(cache, "8bc7d9fb8f48fd948dda50ad8556e6b8-1.2.0")
	assert.DirExists(t, filepath.Join(expected, "addon"))
	assert.FileExists(t, filepath.Join(expected, domain.MetadataFileName))

	reordered := domain.NewListTarget("firefox 88", "chrome 90")
	require.NoError(t, f.orchestrator.BuildUnit(context.Background(), unit, []domain.Target{reordered}, opts))

	entries, err := os.ReadDir(cache)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Base(expected), entries[0].Name())
}

func TestOrchestrator_FailingTargetDoesNotStopOthers(t *testing.T) {
	f := newFixture(t, false)
	unit := newUnit(t, "my-addon", "1.0.0", "addon", "templates")
	cache := t.TempDir()

	targets := []domain.Target{
		domain.NewListTarget("chrome 90"),
		domain.NewListTarget("firefox 88"),
		domain.NewListTarget("safari 14"),
	}
	f.engine.failKey = domain.DeriveKey(targets[1])

	err := f.orchestrator.BuildUnit(context.Background(), unit, targets, defaultOptions(cache))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "engine exploded")

	assert.DirExists(t, filepath.Join(cache, domain.DeriveKey(targets[0])+"-1.0.0", "addon"))
	assert.NoDirExists(t, filepath.Join(cache, domain.DeriveKey(targets[1])+"-1.0.0"))
	assert.DirExists(t, filepath.Join(cache, domain.DeriveKey(targets[2])+"-1.0.0", "templates"))

	assert.Len(t, f.engine.calls, 3, "targets run in order and all are attempted")
	assert.Equal(t, domain.DeriveKey(targets[2]), f.engine.calls[2])
}

func TestOrchestrator_FailingUnitDoesNotStopOthers(t *testing.T) {
	f := newFixture(t, false)
	broken := newUnit(t, "broken", "1.0.0", "addon")
	healthy := newUnit(t, "healthy", "1.0.0", "addon")
	target := domain.NewListTarget("chrome 90")

	// Holding the lock of the broken unit's artifact makes its build fail.
	lock := domain.ArtifactLockPath(domain.ArtifactPath(
		domain.CacheRoot("", broken.Root), domain.DeriveKey(target), broken.Version))
	require.NoError(t, os.MkdirAll(filepath.Dir(lock), 0o750))
	require.NoError(t, os.WriteFile(lock, []byte("1"), 0o600))

	opts := defaultOptions("")
	err := f.orchestrator.BuildAll(context.Background(), []*domain.Unit{broken, healthy}, []domain.Target{target}, opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrArtifactLocked.Error())

	healthyArtifact := domain.ArtifactPath(
		domain.CacheRoot("", healthy.Root), domain.DeriveKey(target), healthy.Version)
	assert.DirExists(t, filepath.Join(healthyArtifact, "addon"))
}

func TestOrchestrator_DefaultTargetWritesNoMetadata(t *testing.T) {
	f := newFixture(t, false)
	unit := newUnit(t, "my-addon", "2.0.0", "addon")
	opts := defaultOptions("relative/is/ignored")

	require.NoError(t, f.orchestrator.BuildUnit(context.Background(), unit, nil, opts))

	artifact := domain.ArtifactPath(
		filepath.Join(unit.Root, domain.PrebuiltDirName), domain.DeriveKey(opts.DefaultTarget), "2.0.0")
	assert.DirExists(t, filepath.Join(artifact, "addon"))
	assert.NoFileExists(t, filepath.Join(artifact, domain.MetadataFileName))
	assert.Len(t, f.engine.calls, 1)
}

func TestOrchestrator_SkipsWhenNoSafeGroups(t *testing.T) {
	f := newFixture(t, true)
	unit := newUnit(t, "custom", "1.0.0", "addon")
	unit.Hooks = []string{"treeForAddon", "treeForTemplates"}
	unit.ExcludedGroups = []string{"addon-test-support"}

	f.log.EXPECT().Warn(gomock.Any()).Do(func(msg string) {
		assert.Contains(t, msg, "no output groups are safe to prebuild")
	})

	err := f.orchestrator.BuildUnit(context.Background(), unit, []domain.Target{domain.NewListTarget("chrome 90")},
		defaultOptions(t.TempDir()))
	require.NoError(t, err)
	assert.Empty(t, f.engine.calls)
}

func TestOrchestrator_NoGroupsConfigured(t *testing.T) {
	f := newFixture(t, true)
	unit := newUnit(t, "bare", "1.0.0", "addon")

	f.log.EXPECT().Error(gomock.Any())

	opts := defaultOptions(t.TempDir())
	opts.Policy = domain.GroupPolicy{DefaultGroups: []string{}, AlwaysExcluded: domain.DefaultAlwaysExcluded}

	err := f.orchestrator.BuildUnit(context.Background(), unit, nil, opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrNoGroupsConfigured.Error())
	assert.Empty(t, f.engine.calls)
}

func TestOrchestrator_NothingToBuild(t *testing.T) {
	f := newFixture(t, true)
	unit := newUnit(t, "empty", "1.0.0")
	cache := t.TempDir()

	f.log.EXPECT().Warn(gomock.Any()).Do(func(msg string) {
		assert.Contains(t, msg, "nothing to prebuild")
	})

	err := f.orchestrator.BuildUnit(context.Background(), unit, []domain.Target{domain.NewListTarget("chrome 90")},
		defaultOptions(cache))
	require.NoError(t, err)
	assert.Empty(t, f.engine.calls)

	entries, err := os.ReadDir(cache)
	require.NoError(t, err)
	assert.Empty(t, entries, "lock must be released")
}

func TestOrchestrator_DropsAlwaysExcludedExplicitGroups(t *testing.T) {
	f := newFixture(t, true)
	unit := newUnit(t, "my-addon", "1.0.0", "addon", "app")
	cache := t.TempDir()

	gomock.InOrder(
		f.log.EXPECT().Warn(gomock.Any()).Do(func(msg string) {
			assert.Contains(t, msg, "never prebuilding app")
		}),
		f.log.EXPECT().Info(gomock.Any()),
	)

	opts := defaultOptions(cache)
	opts.Groups = []string{"addon", "app"}
	target := domain.NewListTarget("chrome 90")
	require.NoError(t, f.orchestrator.BuildUnit(context.Background(), unit, []domain.Target{target}, opts))

	artifact := filepath.Join(cache, domain.DeriveKey(target)+"-1.0.0")
	assert.DirExists(t, filepath.Join(artifact, "addon"))
	assert.NoDirExists(t, filepath.Join(artifact, "app"))
}

func TestOrchestrator_RecordsBuild(t *testing.T) {
	f := newFixture(t, false)
	unit := newUnit(t, "my-addon", "1.0.0", "addon")
	cache := t.TempDir()
	storeRoot := t.TempDir()

	opts := defaultOptions(cache)
	opts.StoreRoot = storeRoot
	opts.RunID = "run-42"
	target := domain.NewListTarget("chrome 90")

	require.NoError(t, f.orchestrator.BuildUnit(context.Background(), unit, []domain.Target{target}, opts))

	artifact := filepath.Join(cache, domain.DeriveKey(target)+"-1.0.0")
	record, err := f.store.Get(storeRoot, artifact)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "my-addon", record.Unit)
	assert.Equal(t, "run-42", record.RunID)
	assert.Equal(t, []string{"addon"}, record.Groups)
	assert.Equal(t, domain.DeriveKey(target), record.TargetKey)

	digest, err := fs.NewHasher(fs.NewWalker()).ComputeDirHash(artifact)
	require.NoError(t, err)
	assert.Equal(t, digest, record.Digest)
}

func TestOrchestrator_CanceledContext(t *testing.T) {
	f := newFixture(t, false)
	unit := newUnit(t, "my-addon", "1.0.0", "addon")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := f.orchestrator.BuildAll(ctx, []*domain.Unit{unit}, []domain.Target{domain.NewListTarget("chrome 90")},
		defaultOptions(t.TempDir()))
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, f.engine.calls)
}

func TestOrchestrator_FailedCopyLeavesNoArtifact(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any())

	artifacts := fs.NewArtifactFS()
	orchestrator := prebuilder.NewOrchestrator(
		fs.NewDirProvider(),
		&brokenOutputEngine{dir: t.TempDir()},
		artifacts,
		fs.NewHasher(fs.NewWalker()),
		cas.NewStore(),
		telemetry.NewNoOpTracer(),
		log,
	)

	unit := newUnit(t, "my-addon", "1.0.0", "addon")
	target := domain.NewListTarget("chrome 90")
	cache := t.TempDir()

	err := orchestrator.BuildUnit(context.Background(), unit, []domain.Target{target}, defaultOptions(cache))
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrArtifactCopyFailed.Error())

	artifact := domain.ArtifactPath(cache, domain.DeriveKey(target), unit.Version)
	assert.NoDirExists(t, artifact)

	provider := prebuilder.NewCachingProvider(mocks.NewMockOutputGroupProvider(ctrl), artifacts, log,
		domain.NewGroupPolicy(nil, nil), cache, false)
	_, hit := provider.Lookup(unit.WithTarget(target), "addon")
	assert.False(t, hit, "a failed build must not be served")
}

func TestOrchestrator_FailedMetadataLeavesNoArtifact(t *testing.T) {
	f := newFixture(t, false)
	unit := newUnit(t, "my-addon", "1.0.0", "addon")
	target := domain.NewListTarget("chrome 90")
	cache := t.TempDir()
	artifact := domain.ArtifactPath(cache, domain.DeriveKey(target), unit.Version)

	// A directory in place of the metadata file makes the write fail after the copy.
	f.engine.next = &metadataBlockingEngine{next: f.engine.next}

	err := f.orchestrator.BuildUnit(context.Background(), unit, []domain.Target{target}, defaultOptions(cache))
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrMetadataWriteFailed.Error())
	assert.NoDirExists(t, artifact)
}

func TestOrchestrator_ConcurrentBuildsShareOneEngineRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	noop := telemetry.NewNoOpTracer()
	entered := make(chan struct{}, 2)
	tracer := mocks.NewMockTracer(ctrl)
	tracer.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, name string, opts ...ports.SpanOption) (context.Context, ports.Span) {
			entered <- struct{}{}
			return noop.Start(ctx, name, opts...)
		}).Times(2)

	engine := &blockingEngine{
		next:    shell.NewEngine(mocks.NewMockExecutor(ctrl), log).WithTempRoot(t.TempDir()),
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	orchestrator := prebuilder.NewOrchestrator(
		fs.NewDirProvider(),
		engine,
		fs.NewArtifactFS(),
		fs.NewHasher(fs.NewWalker()),
		cas.NewStore(),
		tracer,
		log,
	)

	unit := newUnit(t, "my-addon", "1.0.0", "addon")
	target := domain.NewListTarget("chrome 90")
	cache := t.TempDir()
	opts := defaultOptions(cache)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	build := func(i int) {
		defer wg.Done()
		errs[i] = orchestrator.BuildUnit(context.Background(), unit, []domain.Target{target}, opts)
	}

	wg.Add(2)
	go build(0)
	<-entered
	<-engine.started
	go build(1)
	<-entered
	// Let the second caller reach the in-flight build before it finishes.
	time.Sleep(50 * time.Millisecond)
	close(engine.release)
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Equal(t, int32(1), engine.calls.Load())
	assert.DirExists(t, filepath.Join(domain.ArtifactPath(cache, domain.DeriveKey(target), "1.0.0"), "addon"))
}

func TestOrchestrator_WarnsOnSharedArtifacts(t *testing.T) {
	tests := []struct {
		name     string
		shared   bool
		versions []string
		wantWarn bool
	}{
		{name: "shared root same version", shared: true, versions: []string{"1.0.0", "1.0.0"}, wantWarn: true},
		{name: "shared root distinct versions", shared: true, versions: []string{"1.0.0", "2.0.0"}},
		{name: "own roots same version", versions: []string{"1.0.0", "1.0.0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, true)
			var warnings []string
			f.log.EXPECT().Info(gomock.Any()).AnyTimes()
			f.log.EXPECT().Warn(gomock.Any()).Do(func(msg string) {
				warnings = append(warnings, msg)
			}).AnyTimes()

			foo := newUnit(t, "foo", tt.versions[0], "addon")
			bar := newUnit(t, "bar", tt.versions[1], "addon")
			opts := defaultOptions("")
			if tt.shared {
				opts.CachePath = t.TempDir()
			}

			require.NoError(t, f.orchestrator.BuildAll(context.Background(), []*domain.Unit{foo, bar}, nil, opts))

			var found bool
			for _, w := range warnings {
				if strings.Contains(w, "foo, bar share version") {
					found = true
				}
			}
			assert.Equal(t, tt.wantWarn, found, "warnings: %v", warnings)
		})
	}
}

func TestOrchestrator_TracesTargets(t *testing.T) {
	ctrl := gomock.NewController(t)
	tracer := mocks.NewMockTracer(ctrl)
	span := mocks.NewMockSpan(ctrl)
	engine := mocks.NewMockBuildEngine(ctrl)
	provider := mocks.NewMockOutputGroupProvider(ctrl)
	artifacts := mocks.NewMockArtifactFS(ctrl)
	log := mocks.NewMockLogger(ctrl)

	unit := &domain.Unit{Name: "my-addon", Version: "1.0.0", Root: "/units/my-addon"}
	target := domain.NewListTarget("chrome 90")
	dest := domain.ArtifactPath("/cache", domain.DeriveKey(target), "1.0.0")

	tracer.EXPECT().Start(gomock.Any(), "prebuild", gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
			return ctx, span
		})
	tracer.EXPECT().Start(gomock.Any(), "prebuild my-addon (chrome 90)", gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
			return ctx, span
		})
	span.EXPECT().RecordError(gomock.Any()).Times(2)
	span.EXPECT().End().Times(2)

	artifacts.EXPECT().Lock(domain.ArtifactLockPath(dest)).Return(func() error { return nil }, nil)
	artifacts.EXPECT().RemoveAll(dest).Return(nil)
	provider.EXPECT().TreeFor(gomock.Any(), gomock.Any(), "addon").Return(domain.Tree{Dir: "/units/my-addon/addon"}, nil)
	engine.EXPECT().Build(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req domain.BuildRequest) (domain.BuildResult, error) {
			assert.Equal(t, target, req.Target)
			assert.Equal(t, target, req.Unit.Target)
			assert.Equal(t, []string{"addon"}, req.Composite.Groups())
			return domain.BuildResult{}, assert.AnError
		})
	log.EXPECT().Error(gomock.Any())

	orchestrator := prebuilder.NewOrchestrator(provider, engine, artifacts,
		mocks.NewMockHasher(ctrl), mocks.NewMockBuildInfoStore(ctrl), tracer, log)

	opts := prebuilder.BuildOptions{
		Policy:    domain.NewGroupPolicy(nil, nil),
		Groups:    []string{"addon"},
		CachePath: "/cache",
	}
	err := orchestrator.BuildAll(context.Background(), []*domain.Unit{unit}, []domain.Target{target}, opts)
	require.ErrorIs(t, err, assert.AnError)
	assert.True(t, unit.Target.IsZero(), "the shared unit is never mutated")
}
