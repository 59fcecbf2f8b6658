package targets_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/prebuild/internal/adapters/targets"
	"go.trai.ch/prebuild/internal/core/domain"
)

func TestReader_Load(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "yaml list",
			content: "- chrome 90\n- firefox 88\n",
			want:    []string{"chrome 90", "firefox 88"},
		},
		{
			name:    "yaml mapping",
			content: "browsers:\n  - chrome 90\n  - ie 11\n",
			want:    []string{"chrome 90", "ie 11"},
		},
		{
			name:    "json mapping",
			content: `{"browsers": ["safari 14"]}`,
			want:    []string{"safari 14"},
		},
		{
			name:    "browserslist lines",
			content: "# desktop\nlast 1 Chrome versions\nfirefox >= 88, safari 14\n\n",
			want:    []string{"last 1 Chrome versions", "firefox >= 88", "safari 14"},
		},
		{
			name:    "empty file",
			content: "",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "target")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			got, err := targets.NewReader().Load(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Browsers)
			assert.Equal(t, path, got.Path)
			assert.Equal(t, []byte(tt.content), got.Content)
			assert.Equal(t, domain.DeriveKey(domain.Target{Path: path, Content: []byte(tt.content)}), domain.DeriveKey(got))
		})
	}
}

func TestReader_LoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := targets.NewReader().Load(filepath.Join(dir, "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrTargetsReadFailed.Error())

	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("node: 14\n"), 0o600))
	_, err = targets.NewReader().Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrTargetParseFailed.Error())
}

func TestReader_Targets(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mobile.yaml"), []byte("- ios_saf 12\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "desktop.yaml"), []byte("- chrome 90\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".DS_Store"), []byte("junk"), 0o600))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o750))

	got, err := targets.NewReader().Targets(dir)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, filepath.Join(dir, "desktop.yaml"), got[0].Path)
	assert.Equal(t, filepath.Join(dir, "mobile.yaml"), got[1].Path)
}

func TestReader_TargetsMissingDir(t *testing.T) {
	got, err := targets.NewReader().Targets(filepath.Join(t.TempDir(), "config", "prebuild"))
	require.NoError(t, err)
	assert.Empty(t, got)
}
