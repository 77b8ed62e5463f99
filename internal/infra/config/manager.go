package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/noplagiarism/upptimectl/internal/domain"
)

// Ensure Manager implements domain.ConfigManager.
var _ domain.ConfigManager = (*Manager)(nil)

// Manager manages configuration files.
type Manager struct {
	repoRoot      string // Path to repository root
	globalConfDir string // Path to global config directory (e.g., ~/.config/upptimectl)
}

// NewManager creates a new Manager.
func NewManager(repoRoot string) *Manager {
	return &Manager{
		repoRoot:      repoRoot,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewManagerWithGlobalDir creates a new Manager with a custom global config directory.
// This is useful for testing.
func NewManagerWithGlobalDir(repoRoot, globalConfDir string) *Manager {
	return &Manager{
		repoRoot:      repoRoot,
		globalConfDir: globalConfDir,
	}
}

// GetConfigInfo returns the location and existence of each config file.
func (m *Manager) GetConfigInfo() domain.ConfigInfo {
	var info domain.ConfigInfo
	if m.globalConfDir != "" {
		info.GlobalConfig = fileInfo(filepath.Join(m.globalConfDir, domain.ConfigFileName))
	}
	if m.repoRoot != "" {
		info.RepoConfig = fileInfo(domain.RepoConfigPath(m.repoRoot))
	}
	return info
}

func fileInfo(path string) domain.ConfigFileInfo {
	_, err := os.Stat(path)
	return domain.ConfigFileInfo{Path: path, Exists: err == nil}
}

// InitRepoConfig writes the default configuration to the repository config file.
// An existing file is only replaced when force is set.
func (m *Manager) InitRepoConfig(force bool) error {
	path := domain.RepoConfigPath(m.repoRoot)
	if _, err := os.Stat(path); err == nil && !force {
		return domain.ErrConfigExists
	}

	content, err := m.Render(domain.NewDefaultConfig())
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o600)
}

// Render encodes cfg as TOML in the layout the loader reads.
func (m *Manager) Render(cfg *domain.Config) (string, error) {
	data, err := toml.Marshal(toFile(cfg))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// fileConfig mirrors the on-disk TOML layout.
type fileConfig struct {
	Sync   syncSection       `toml:"sync"`
	Feed   feedSection       `toml:"feed"`
	Icons  map[string]string `toml:"icons"`
	Issues issuesSection     `toml:"issues"`
	Log    logSection        `toml:"log"`
}

type syncSection struct {
	ConfigFile          string   `toml:"config_file"`
	IconKey             string   `toml:"icon_key"`
	Services            []string `toml:"services"`
	ExpectedStatusCodes []int    `toml:"expected_status_codes,multiline"`
}

type feedSection struct {
	URL       string `toml:"url"`
	UserAgent string `toml:"user_agent"`
}

type issuesSection struct {
	Repo           string   `toml:"repo"`
	APIURL         string   `toml:"api_url"`
	TokenEnv       string   `toml:"token_env"`
	StatusLabel    string   `toml:"status_label"`
	ExcludedLabels []string `toml:"excluded_labels"`
	ServicesDir    string   `toml:"services_dir"`
	Comment        string   `toml:"comment"`
	CloseDelay     string   `toml:"close_delay"`
}

type logSection struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

func toFile(cfg *domain.Config) fileConfig {
	return fileConfig{
		Sync: syncSection{
			ConfigFile:          cfg.Sync.ConfigFile,
			IconKey:             string(cfg.Sync.IconKey),
			Services:            cfg.Sync.Services,
			ExpectedStatusCodes: cfg.Sync.ExpectedStatusCodes,
		},
		Feed: feedSection{
			URL:       cfg.Feed.URL,
			UserAgent: cfg.Feed.UserAgent,
		},
		Icons: cfg.Icons,
		Issues: issuesSection{
			Repo:           cfg.Issues.Repo,
			APIURL:         cfg.Issues.APIURL,
			TokenEnv:       cfg.Issues.TokenEnv,
			StatusLabel:    cfg.Issues.StatusLabel,
			ExcludedLabels: cfg.Issues.ExcludedLabels,
			ServicesDir:    cfg.Issues.ServicesDir,
			Comment:        cfg.Issues.Comment,
			CloseDelay:     cfg.Issues.CloseDelay.String(),
		},
		Log: logSection{
			Level: cfg.Log.Level,
			File:  cfg.Log.File,
		},
	}
}
