package prebuilder_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/prebuild/internal/adapters/fs"
	"go.trai.ch/prebuild/internal/adapters/shell"
	"go.trai.ch/prebuild/internal/core/domain"
	"go.trai.ch/prebuild/internal/core/ports/mocks"
	"go.trai.ch/prebuild/internal/engine/prebuilder"
	"go.uber.org/mock/gomock"
)

func newWriter(t *testing.T) *prebuilder.Writer {
	t.Helper()
	ctrl := gomock.NewController(t)
	engine := shell.NewEngine(mocks.NewMockExecutor(ctrl), mocks.NewMockLogger(ctrl)).WithTempRoot(t.TempDir())
	return prebuilder.NewWriter(fs.NewArtifactFS(), engine)
}

func TestWriter_InvalidateThenWriteLeavesNoStaleFiles(t *testing.T) {
	writer := newWriter(t)
	unit := newUnit(t, "my-addon", "1.0.0", "addon")
	dest := filepath.Join(t.TempDir(), "key-1.0.0")

	require.NoError(t, os.MkdirAll(filepath.Join(dest, "addon"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dest, "addon", "stale.js"), []byte("old"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dest, "leftover"), []byte("old"), 0o600))

	require.NoError(t, writer.Invalidate(dest))
	req := domain.BuildRequest{
		Unit:      unit,
		Composite: domain.Composite{Trees: []domain.Tree{{Group: "addon", Dir: filepath.Join(unit.Root, "addon")}}},
	}
	require.NoError(t, writer.Write(context.Background(), req, dest))

	entries, err := os.ReadDir(dest)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "addon", entries[0].Name())

	files, err := os.ReadDir(filepath.Join(dest, "addon"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "index.js", files[0].Name())

	info, err := os.Lstat(filepath.Join(dest, "addon"))
	require.NoError(t, err)
	assert.True(t, info.IsDir(), "staged links must be dereferenced")
}

func TestWriter_WriteEngineFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine := mocks.NewMockBuildEngine(ctrl)
	artifacts := mocks.NewMockArtifactFS(ctrl)

	engine.EXPECT().Build(gomock.Any(), gomock.Any()).Return(domain.BuildResult{}, errors.New("no memory"))

	err := prebuilder.NewWriter(artifacts, engine).Write(context.Background(), domain.BuildRequest{}, "/cache/k-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrEngineFailed.Error())
	assert.Contains(t, err.Error(), "no memory")
}

func TestWriter_WriteCopyFailureReleasesResult(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine := mocks.NewMockBuildEngine(ctrl)
	artifacts := mocks.NewMockArtifactFS(ctrl)

	released := false
	engine.EXPECT().Build(gomock.Any(), gomock.Any()).Return(domain.BuildResult{
		Dir:     "/tmp/out",
		Cleanup: func() error { released = true; return nil },
	}, nil)
	artifacts.EXPECT().CopyDir("/tmp/out", "/cache/k-1").Return(errors.New("disk full"))
	artifacts.EXPECT().RemoveAll("/cache/k-1").Return(nil)

	err := prebuilder.NewWriter(artifacts, engine).Write(context.Background(), domain.BuildRequest{}, "/cache/k-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrArtifactCopyFailed.Error())
	assert.True(t, released)
}

func TestWriter_WriteMetadata(t *testing.T) {
	writer := newWriter(t)
	dest := filepath.Join(t.TempDir(), "key-1.0.0")

	target := domain.Target{
		Path:     "/repo/config/prebuild/modern",
		Content:  []byte("chrome 90\nfirefox 88\n"),
		Browsers: []string{"chrome 90", "firefox 88", "not dead"},
	}
	require.NoError(t, writer.WriteMetadata(dest, target))

	data, err := os.ReadFile(filepath.Join(dest, domain.MetadataFileName))
	require.NoError(t, err)

	var md domain.Metadata
	require.NoError(t, json.Unmarshal(data, &md))
	assert.Equal(t, domain.DeriveKey(target), md.Key)
	assert.Equal(t, "/repo/config/prebuild/modern", md.Source)
	assert.Equal(t, map[string]string{"chrome": "90", "firefox": "88"}, md.Environments)
	assert.Equal(t, []string{"not dead"}, md.Unresolved)
}

func TestWriter_ClearIsIdempotent(t *testing.T) {
	writer := newWriter(t)
	base := t.TempDir()
	a := filepath.Join(base, "a", domain.PrebuiltDirName)
	b := filepath.Join(base, "b", domain.PrebuiltDirName)
	require.NoError(t, os.MkdirAll(filepath.Join(a, "k-1.0.0", "addon"), 0o750))
	require.NoError(t, os.MkdirAll(filepath.Join(b, "k-2.0.0"), 0o750))

	require.NoError(t, writer.Clear([]string{a, b}))
	assert.NoDirExists(t, a)
	assert.NoDirExists(t, b)
	assert.DirExists(t, filepath.Join(base, "a"))

	require.NoError(t, writer.Clear([]string{a, b}))
}

func TestWriter_ClearMatching(t *testing.T) {
	keyA := domain.DeriveKey(domain.NewListTarget("chrome 90"))
	keyB := domain.DeriveKey(domain.NewListTarget("safari 14"))

	tests := []struct {
		name    string
		filter  prebuilder.ArtifactFilter
		removed []string
	}{
		{
			name:    "by key",
			filter:  prebuilder.ArtifactFilter{Keys: []string{keyA}},
			removed: []string{keyA + "-1.0.0", keyA + "-2.0.0"},
		},
		{
			name:    "by version",
			filter:  prebuilder.ArtifactFilter{Versions: []string{"1.0.0"}},
			removed: []string{keyA + "-1.0.0", keyB + "-1.0.0"},
		},
		{
			name:    "by key and version",
			filter:  prebuilder.ArtifactFilter{Keys: []string{keyA}, Versions: []string{"2.0.0"}},
			removed: []string{keyA + "-2.0.0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writer := newWriter(t)
			root := t.TempDir()
			dirs := []string{keyA + "-1.0.0", keyA + "-2.0.0", keyB + "-1.0.0", "notes-1.0.0"}
			for _, name := range dirs {
				require.NoError(t, os.MkdirAll(filepath.Join(root, name), 0o750))
			}
			lock := filepath.Join(root, keyA+"-1.0.0"+domain.LockSuffix)
			require.NoError(t, os.WriteFile(lock, []byte("1"), 0o600))
			require.NoError(t, os.WriteFile(filepath.Join(root, "keep.txt"), []byte("mine"), 0o600))

			require.NoError(t, writer.ClearMatching(root, tt.filter))

			for _, name := range dirs {
				if slices.Contains(tt.removed, name) {
					assert.NoDirExists(t, filepath.Join(root, name))
				} else {
					assert.DirExists(t, filepath.Join(root, name))
				}
			}
			assert.FileExists(t, lock)
			assert.FileExists(t, filepath.Join(root, "keep.txt"))
			assert.DirExists(t, root)
		})
	}

	require.NoError(t, newWriter(t).ClearMatching(filepath.Join(t.TempDir(), "missing"), prebuilder.ArtifactFilter{}))
}
