package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pyforgeerrors "github.com/alexisbeaulieu97/pyforge/pkg/errors"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "settings.yaml"))
	require.NoError(t, err)

	assert.True(t, cfg.CreateReadme)
	assert.True(t, cfg.PartialInstallOK)
	assert.False(t, cfg.CreateGit)
	assert.Empty(t, cfg.RecentProjects)
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")

	cfg := Default()
	cfg.LastDir = "/work"
	cfg.Packages = []string{"requests", "numpy==1.24.0"}
	cfg.SelectedPreset = "Data Science"
	cfg.CreateGit = true
	cfg.PartialInstallOK = false
	cfg.RememberProject("/work/demo")

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("last_dir: /elsewhere\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/elsewhere", cfg.LastDir)
	assert.True(t, cfg.CreateReadme)
	assert.True(t, cfg.PartialInstallOK)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\n\t- not yaml"), 0o644))

	cfg, err := Load(path)
	require.Error(t, err)

	var parseErr *pyforgeerrors.ParseError
	assert.True(t, errors.As(err, &parseErr))
	assert.True(t, cfg.CreateReadme, "defaults returned on parse failure")
}

func TestLoad_InvalidPackageRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("packages:\n  - 'pkg;rm -rf /'\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestRememberProject(t *testing.T) {
	cfg := Default()

	cfg.RememberProject("/a")
	cfg.RememberProject("/b")
	cfg.RememberProject("/a")

	assert.Equal(t, []string{"/a", "/b"}, cfg.RecentProjects)

	for i := 0; i < 15; i++ {
		cfg.RememberProject(fmt.Sprintf("/p%d", i))
	}
	assert.Len(t, cfg.RecentProjects, 10)
	assert.Equal(t, "/p14", cfg.RecentProjects[0])
}
