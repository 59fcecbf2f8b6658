package shell_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/prebuild/internal/adapters/shell"
	"go.trai.ch/prebuild/internal/core/domain"
	"go.trai.ch/prebuild/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func addonTree(t *testing.T) (domain.Tree, *domain.Unit) {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, "addon")
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.js"), []byte("export default 1;\n"), 0o600))
	return domain.Tree{Group: "addon", Dir: dir}, &domain.Unit{Name: "my-addon", Version: "1.2.3", Root: root}
}

func TestEngine_Build_Passthrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine := shell.NewEngine(mocks.NewMockExecutor(ctrl), mocks.NewMockLogger(ctrl)).WithTempRoot(t.TempDir())

	tree, unit := addonTree(t)
	result, err := engine.Build(context.Background(), domain.BuildRequest{
		Unit:      unit,
		Composite: domain.Composite{Trees: []domain.Tree{tree}},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(result.Dir, "addon", "index.js"))
	require.NoError(t, err)
	assert.Equal(t, "export default 1;\n", string(data))

	require.NoError(t, result.Release())
	_, err = os.Stat(result.Dir)
	assert.True(t, os.IsNotExist(err))
}

func TestEngine_Build_RunsCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info("copying").Times(1)

	engine := shell.NewEngine(shell.NewExecutor(), log).WithTempRoot(t.TempDir())

	tree, unit := addonTree(t)
	target := domain.NewListTarget("chrome 90", "firefox 88")
	result, err := engine.Build(context.Background(), domain.BuildRequest{
		Unit:      unit,
		Composite: domain.Composite{Trees: []domain.Tree{tree}},
		Target:    target,
		Engine: domain.EngineConfig{
			Command: []string{"sh", "-c", `echo copying; cp -RL "$PREBUILD_INPUT/." "$PREBUILD_OUTPUT" && ` +
				`printf '%s|%s|%s' "$PREBUILD_TARGET_KEY" "$PREBUILD_BROWSERS" "$PREBUILD_UNIT" > "$PREBUILD_OUTPUT/env"`},
		},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = result.Release() })

	env, err := os.ReadFile(filepath.Join(result.Dir, "env"))
	require.NoError(t, err)
	assert.Equal(t, domain.DeriveKey(target)+"|chrome 90,firefox 88|my-addon", string(env))

	info, err := os.Lstat(filepath.Join(result.Dir, "addon", "index.js"))
	require.NoError(t, err)
	assert.True(t, info.Mode().IsRegular())
}

func TestEngine_Build_CommandFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()

	tempRoot := t.TempDir()
	engine := shell.NewEngine(shell.NewExecutor(), log).WithTempRoot(tempRoot)

	tree, unit := addonTree(t)
	_, err := engine.Build(context.Background(), domain.BuildRequest{
		Unit:      unit,
		Composite: domain.Composite{Trees: []domain.Tree{tree}},
		Engine:    domain.EngineConfig{Command: []string{"sh", "-c", "echo boom; exit 2"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrEngineCommandFailed.Error())

	entries, err := os.ReadDir(tempRoot)
	require.NoError(t, err)
	assert.Empty(t, entries, "scratch directory must be removed on failure")
}

func TestEngine_Build_CanceledContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine := shell.NewEngine(mocks.NewMockExecutor(ctrl), mocks.NewMockLogger(ctrl))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.Build(ctx, domain.BuildRequest{})
	require.ErrorIs(t, err, context.Canceled)
}
