package settings

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/pyforge/internal/validation"
	pyforgeerrors "github.com/alexisbeaulieu97/pyforge/pkg/errors"
)

// maxRecentProjects caps the remembered project list.
const maxRecentProjects = 10

// Settings is the flat operator-preference record persisted between runs.
type Settings struct {
	LastDir          string   `yaml:"last_dir"`
	RecentProjects   []string `yaml:"recent_projects" validate:"max=10"`
	Packages         []string `yaml:"packages" validate:"dive,pkg_spec"`
	SelectedPreset   string   `yaml:"selected_preset"`
	CreateReadme     bool     `yaml:"create_readme"`
	CreateGit        bool     `yaml:"create_git"`
	CleanupOnAbort   bool     `yaml:"cleanup_on_abort"`
	PartialInstallOK bool     `yaml:"partial_install_ok"`
}

// Default returns the settings used when no file exists yet.
func Default() Settings {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	return Settings{
		LastDir:          cwd,
		CreateReadme:     true,
		PartialInstallOK: true,
	}
}

// DefaultPath returns the standard location of the settings file.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "pyforge", "settings.yaml"), nil
}

// Load reads settings from path, merging over defaults so missing keys keep
// their default values. A missing file is not an error.
func Load(path string) (Settings, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, pyforgeerrors.NewParseError(path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), pyforgeerrors.NewParseError(path, err)
	}

	if err := validation.Instance().Struct(&cfg); err != nil {
		return Default(), pyforgeerrors.NewParseError(path, err)
	}

	return cfg, nil
}

// Save writes settings to path, creating parent directories as needed.
func Save(path string, cfg Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// RememberProject prepends path to the recent-project list, deduplicating
// and keeping at most maxRecentProjects entries.
func (s *Settings) RememberProject(path string) {
	recents := []string{path}
	for _, p := range s.RecentProjects {
		if p != path && !slices.Contains(recents, p) {
			recents = append(recents, p)
		}
	}
	if len(recents) > maxRecentProjects {
		recents = recents[:maxRecentProjects]
	}
	s.RecentProjects = recents
}
