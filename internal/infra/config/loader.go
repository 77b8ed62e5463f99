// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/noplagiarism/upptimectl/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files.
type Loader struct {
	repoRoot      string // Path to repository root
	globalConfDir string // Path to global config directory (e.g., ~/.config/upptimectl)
}

// NewLoader creates a new Loader.
func NewLoader(repoRoot string) *Loader {
	return &Loader{
		repoRoot:      repoRoot,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory.
// This is useful for testing.
func NewLoaderWithGlobalDir(repoRoot, globalConfDir string) *Loader {
	return &Loader{
		repoRoot:      repoRoot,
		globalConfDir: globalConfDir,
	}
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalConfigDir(configHome)
}

// Load returns the merged configuration (default <- global <- repo).
func (l *Loader) Load() (*domain.Config, error) {
	return l.LoadWithOptions(domain.LoadConfigOptions{})
}

// LoadWithOptions returns the merged configuration with options to ignore sources.
func (l *Loader) LoadWithOptions(opts domain.LoadConfigOptions) (*domain.Config, error) {
	cfg := domain.NewDefaultConfig()

	if !opts.IgnoreGlobal && l.globalConfDir != "" {
		if err := l.applyFile(cfg, filepath.Join(l.globalConfDir, domain.ConfigFileName)); err != nil {
			return nil, err
		}
	}
	if !opts.IgnoreRepo && l.repoRoot != "" {
		if err := l.applyFile(cfg, domain.RepoConfigPath(l.repoRoot)); err != nil {
			return nil, err
		}
	}

	sort.Strings(cfg.Warnings)
	return cfg, nil
}

// applyFile merges a config file onto cfg. A missing file is not an error.
func (l *Loader) applyFile(cfg *domain.Config, path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	if err := mergeRaw(cfg, raw); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// mergeRaw applies the raw TOML map onto cfg and collects warnings.
// Scalars and lists replace the current value; [icons] merges by key.
func mergeRaw(cfg *domain.Config, raw map[string]any) error {
	for section, value := range raw {
		m, ok := value.(map[string]any)
		if !ok {
			cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("unknown key: %s", section))
			continue
		}
		switch section {
		case "sync":
			for k, v := range m {
				switch k {
				case "config_file":
					setString(cfg, section, k, &cfg.Sync.ConfigFile, v)
				case "services":
					if s, ok := toStrings(v); ok {
						cfg.Sync.Services = s
					} else {
						warnType(cfg, section, k, "a list of strings", v)
					}
				case "expected_status_codes":
					if codes, ok := toInts(v); ok {
						cfg.Sync.ExpectedStatusCodes = codes
					} else {
						warnType(cfg, section, k, "a list of integers", v)
					}
				case "icon_key":
					if s, ok := v.(string); ok {
						key := domain.IconKey(s)
						if !key.IsValid() {
							return fmt.Errorf("%w: %q", domain.ErrInvalidIconKey, s)
						}
						cfg.Sync.IconKey = key
					} else {
						warnType(cfg, section, k, "a string", v)
					}
				default:
					cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("unknown key in [sync]: %s", k))
				}
			}
		case "feed":
			for k, v := range m {
				switch k {
				case "url":
					setString(cfg, section, k, &cfg.Feed.URL, v)
				case "user_agent":
					setString(cfg, section, k, &cfg.Feed.UserAgent, v)
				default:
					cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("unknown key in [feed]: %s", k))
				}
			}
		case "icons":
			if cfg.Icons == nil {
				cfg.Icons = make(map[string]string)
			}
			for k, v := range m {
				if s, ok := v.(string); ok {
					cfg.Icons[k] = s
				} else {
					warnType(cfg, section, k, "a string", v)
				}
			}
		case "issues":
			for k, v := range m {
				switch k {
				case "repo":
					setString(cfg, section, k, &cfg.Issues.Repo, v)
				case "api_url":
					setString(cfg, section, k, &cfg.Issues.APIURL, v)
				case "token_env":
					setString(cfg, section, k, &cfg.Issues.TokenEnv, v)
				case "status_label":
					setString(cfg, section, k, &cfg.Issues.StatusLabel, v)
				case "services_dir":
					setString(cfg, section, k, &cfg.Issues.ServicesDir, v)
				case "comment":
					setString(cfg, section, k, &cfg.Issues.Comment, v)
				case "excluded_labels":
					if s, ok := toStrings(v); ok {
						cfg.Issues.ExcludedLabels = s
					} else {
						warnType(cfg, section, k, "a list of strings", v)
					}
				case "close_delay":
					if s, ok := v.(string); ok {
						d, err := time.ParseDuration(s)
						if err != nil {
							return fmt.Errorf("invalid close_delay %q: %w", s, err)
						}
						cfg.Issues.CloseDelay = d
					} else {
						warnType(cfg, section, k, "a duration string", v)
					}
				default:
					cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("unknown key in [issues]: %s", k))
				}
			}
		case "log":
			for k, v := range m {
				switch k {
				case "level":
					setString(cfg, section, k, &cfg.Log.Level, v)
				case "file":
					setString(cfg, section, k, &cfg.Log.File, v)
				default:
					cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("unknown key in [log]: %s", k))
				}
			}
		default:
			cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("unknown section: %s", section))
		}
	}
	return nil
}

func setString(cfg *domain.Config, section, key string, dst *string, v any) {
	if s, ok := v.(string); ok {
		*dst = s
		return
	}
	warnType(cfg, section, key, "a string", v)
}

// warnType records a value that was ignored for having the wrong type.
func warnType(cfg *domain.Config, section, key, want string, v any) {
	cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("ignored [%s] %s: expected %s, got %T", section, key, want, v))
}

func toStrings(v any) ([]string, bool) {
	list, ok := v.([]any)
	if !ok {
		return nil, false
	}
	res := make([]string, 0, len(list))
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		res = append(res, s)
	}
	return res, true
}

func toInts(v any) ([]int, bool) {
	list, ok := v.([]any)
	if !ok {
		return nil, false
	}
	res := make([]int, 0, len(list))
	for _, item := range list {
		n, ok := item.(int64)
		if !ok {
			return nil, false
		}
		res = append(res, int(n))
	}
	return res, true
}
