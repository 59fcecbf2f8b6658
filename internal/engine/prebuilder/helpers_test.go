package prebuilder_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/prebuild/internal/core/domain"
	"go.trai.ch/prebuild/internal/core/ports"
)

// newUnit creates a unit on disk with one index.js per group.
func newUnit(t *testing.T, name, version string, groups ...string) *domain.Unit {
	t.Helper()
	root := t.TempDir()
	for _, group := range groups {
		dir := filepath.Join(root, domain.ConventionalGroupDirs[group])
		require.NoError(t, os.MkdirAll(dir, 0o750))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "index.js"), []byte("// "+group+"\n"), 0o600))
	}
	return &domain.Unit{Name: name, Version: version, Root: root}
}

// faultyEngine fails for one target key and delegates otherwise.
type faultyEngine struct {
	next    ports.BuildEngine
	failKey string
	calls   []string
}

func (e *faultyEngine) Build(ctx context.Context, req domain.BuildRequest) (domain.BuildResult, error) {
	key := domain.DeriveKey(req.Target)
	e.calls = append(e.calls, key)
	if key == e.failKey {
		return domain.BuildResult{}, errors.New("engine exploded")
	}
	return e.next.Build(ctx, req)
}

// brokenOutputEngine emits a complete addon tree next to a symlink whose
// target does not exist, so copying the output fails halfway through.
type brokenOutputEngine struct {
	dir string
}

func (e *brokenOutputEngine) Build(context.Context, domain.BuildRequest) (domain.BuildResult, error) {
	addon := filepath.Join(e.dir, "addon")
	if err := os.MkdirAll(addon, 0o750); err != nil {
		return domain.BuildResult{}, err
	}
	if err := os.WriteFile(filepath.Join(addon, "index.js"), []byte("// addon\n"), 0o600); err != nil {
		return domain.BuildResult{}, err
	}
	if err := os.Symlink(filepath.Join(e.dir, "missing"), filepath.Join(e.dir, "templates")); err != nil {
		return domain.BuildResult{}, err
	}
	return domain.BuildResult{Dir: e.dir}, nil
}

// metadataBlockingEngine adds a directory named like the metadata file to the
// output so that the metadata write after the copy fails.
type metadataBlockingEngine struct {
	next ports.BuildEngine
}

func (e *metadataBlockingEngine) Build(ctx context.Context, req domain.BuildRequest) (domain.BuildResult, error) {
	result, err := e.next.Build(ctx, req)
	if err != nil {
		return result, err
	}
	if err := os.MkdirAll(filepath.Join(result.Dir, domain.MetadataFileName, "blocked"), 0o750); err != nil {
		return result, err
	}
	return result, nil
}

// blockingEngine holds every build until release is closed.
type blockingEngine struct {
	next    ports.BuildEngine
	started chan struct{}
	release chan struct{}
	once    sync.Once
	calls   atomic.Int32
}

func (e *blockingEngine) Build(ctx context.Context, req domain.BuildRequest) (domain.BuildResult, error) {
	e.calls.Add(1)
	e.once.Do(func() { close(e.started) })
	<-e.release
	return e.next.Build(ctx, req)
}
