package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/noplagiarism/upptimectl/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Load_Defaults(t *testing.T) {
	loader := NewLoaderWithGlobalDir(t.TempDir(), t.TempDir())

	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, domain.NewDefaultConfig(), cfg)
}

func TestLoader_Load_RepoConfigOnly(t *testing.T) {
	// Setup
	repoRoot := t.TempDir()
	globalDir := t.TempDir()

	repoConfig := `
[sync]
services = ["rimgo", "breezewiki"]
expected_status_codes = [200, 404]
icon_key = "name"

[feed]
url = "https://feed.example/all.json"

[issues]
repo = "someone/status"
close_delay = "250ms"
excluded_labels = ["status", "maintenance"]

[log]
level = "debug"
`
	require.NoError(t, os.WriteFile(domain.RepoConfigPath(repoRoot), []byte(repoConfig), 0o644))

	// Execute
	cfg, err := NewLoaderWithGlobalDir(repoRoot, globalDir).Load()
	require.NoError(t, err)

	// Verify
	assert.Equal(t, []string{"rimgo", "breezewiki"}, cfg.Sync.Services)
	assert.Equal(t, []int{200, 404}, cfg.Sync.ExpectedStatusCodes)
	assert.Equal(t, domain.IconKeyName, cfg.Sync.IconKey)
	assert.Equal(t, "https://feed.example/all.json", cfg.Feed.URL)
	assert.Equal(t, domain.DefaultUserAgent, cfg.Feed.UserAgent, "unset keys keep defaults")
	assert.Equal(t, "someone/status", cfg.Issues.Repo)
	assert.Equal(t, 250*time.Millisecond, cfg.Issues.CloseDelay)
	assert.Equal(t, []string{"status", "maintenance"}, cfg.Issues.ExcludedLabels)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Empty(t, cfg.Warnings)
}

func TestLoader_Load_MergeRepoOverridesGlobal(t *testing.T) {
	// Setup
	repoRoot := t.TempDir()
	globalDir := t.TempDir()

	globalConfig := `
[issues]
token_env = "GLOBAL_TOKEN"
comment = "global comment"

[icons]
extra = "https://icons.example/extra.png"
`
	repoConfig := `
[issues]
comment = "repo comment"

[icons]
rimgo = "https://icons.example/rimgo.png"
`
	require.NoError(t, os.WriteFile(filepath.Join(globalDir, domain.ConfigFileName), []byte(globalConfig), 0o644))
	require.NoError(t, os.WriteFile(domain.RepoConfigPath(repoRoot), []byte(repoConfig), 0o644))

	// Execute
	cfg, err := NewLoaderWithGlobalDir(repoRoot, globalDir).Load()
	require.NoError(t, err)

	// Verify
	assert.Equal(t, "GLOBAL_TOKEN", cfg.Issues.TokenEnv)
	assert.Equal(t, "repo comment", cfg.Issues.Comment)
	assert.Equal(t, "https://icons.example/extra.png", cfg.Icons["extra"])
	assert.Equal(t, "https://icons.example/rimgo.png", cfg.Icons["rimgo"])
	assert.Equal(t, domain.DefaultIcons()["gothub"], cfg.Icons["gothub"], "icon tables merge by key")
}

func TestLoader_LoadWithOptions_IgnoreRepo(t *testing.T) {
	repoRoot := t.TempDir()
	require.NoError(t, os.WriteFile(domain.RepoConfigPath(repoRoot), []byte("[log]\nlevel = \"error\"\n"), 0o644))

	cfg, err := NewLoaderWithGlobalDir(repoRoot, t.TempDir()).LoadWithOptions(domain.LoadConfigOptions{IgnoreRepo: true})
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultLogLevel, cfg.Log.Level)
}

func TestLoader_Load_UnknownKeysProduceWarnings(t *testing.T) {
	repoRoot := t.TempDir()
	repoConfig := `
[sync]
servces = ["typo"]

[tui]
theme = "dark"
`
	require.NoError(t, os.WriteFile(domain.RepoConfigPath(repoRoot), []byte(repoConfig), 0o644))

	cfg, err := NewLoaderWithGlobalDir(repoRoot, t.TempDir()).Load()
	require.NoError(t, err)

	assert.Equal(t, []string{
		"unknown key in [sync]: servces",
		"unknown section: tui",
	}, cfg.Warnings)
}

func TestLoader_Load_WrongTypesProduceWarnings(t *testing.T) {
	repoRoot := t.TempDir()
	repoConfig := `
[sync]
services = "proxitok"
expected_status_codes = ["200"]

[issues]
close_delay = 5
repo = 42

[icons]
rimgo = true
`
	require.NoError(t, os.WriteFile(domain.RepoConfigPath(repoRoot), []byte(repoConfig), 0o644))

	cfg, err := NewLoaderWithGlobalDir(repoRoot, t.TempDir()).Load()
	require.NoError(t, err)

	defaults := domain.NewDefaultConfig()
	assert.Equal(t, defaults.Sync.Services, cfg.Sync.Services)
	assert.Equal(t, defaults.Issues.CloseDelay, cfg.Issues.CloseDelay)
	assert.Equal(t, []string{
		"ignored [icons] rimgo: expected a string, got bool",
		"ignored [issues] close_delay: expected a duration string, got int64",
		"ignored [issues] repo: expected a string, got int64",
		"ignored [sync] expected_status_codes: expected a list of integers, got []interface {}",
		"ignored [sync] services: expected a list of strings, got string",
	}, cfg.Warnings)
}

func TestLoader_Load_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"bad icon key", "[sync]\nicon_key = \"url\"\n", domain.ErrInvalidIconKey},
		{"bad delay", "[issues]\nclose_delay = \"soon\"\n", nil},
		{"bad toml", "[sync\n", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repoRoot := t.TempDir()
			require.NoError(t, os.WriteFile(domain.RepoConfigPath(repoRoot), []byte(tt.content), 0o644))

			_, err := NewLoaderWithGlobalDir(repoRoot, t.TempDir()).Load()

			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
