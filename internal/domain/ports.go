package domain

import (
	"context"
	"time"
)

// FeedSource fetches the remote instances feed.
type FeedSource interface {
	// Fetch performs one request for the feed. It does not retry.
	Fetch(ctx context.Context) (Feed, error)
}

// SiteStore reads and rewrites the sites of a monitoring config file.
type SiteStore interface {
	// Sites returns the current site records in file order.
	Sites() ([]Site, error)

	// ReplaceSites replaces the whole sites sequence and rewrites the file,
	// leaving every other key and comment in place.
	ReplaceSites(sites []Site) error
}

// IssueTracker provides the tracker operations used to close stale issues.
type IssueTracker interface {
	// ListOpenIssues returns every open issue carrying the label, in tracker order.
	ListOpenIssues(ctx context.Context, label string) ([]Issue, error)

	// GetIssue retrieves an issue by number.
	GetIssue(ctx context.Context, number int) (*Issue, error)

	// Comment posts a comment on an issue.
	Comment(ctx context.Context, number int, body string) error

	// Close transitions an issue to the closed state.
	Close(ctx context.Context, number int) error
}

// ServiceDirectory lists the services currently tracked on disk.
type ServiceDirectory interface {
	// List returns the names of the immediate subdirectories.
	List() ([]string, error)
}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the merged configuration (default <- global <- repo).
	Load() (*Config, error)

	// LoadWithOptions returns the merged configuration, skipping ignored sources.
	LoadWithOptions(opts LoadConfigOptions) (*Config, error)
}

// LoadConfigOptions selects which config sources are skipped.
type LoadConfigOptions struct {
	IgnoreGlobal bool
	IgnoreRepo   bool
}

// ConfigManager manages configuration files.
type ConfigManager interface {
	// GetConfigInfo returns where each config file lives and whether it exists.
	GetConfigInfo() ConfigInfo

	// InitRepoConfig writes a default repository config file.
	InitRepoConfig(force bool) error

	// Render encodes a configuration in the config file format.
	Render(cfg *Config) (string, error)
}

// ConfigInfo describes the config files consulted by the loader.
type ConfigInfo struct {
	GlobalConfig ConfigFileInfo
	RepoConfig   ConfigFileInfo
}

// ConfigFileInfo holds the location and state of one config file.
type ConfigFileInfo struct {
	Path   string
	Exists bool
}

// Logger writes category-tagged log lines.
type Logger interface {
	Debug(category, msg string)
	Info(category, msg string)
	Warn(category, msg string)
	Error(category, msg string)
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debug(_, _ string) {}
func (NopLogger) Info(_, _ string)  {}
func (NopLogger) Warn(_, _ string)  {}
func (NopLogger) Error(_, _ string) {}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// Sleep blocks for d or until ctx is done.
	Sleep(ctx context.Context, d time.Duration) error
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Sleep blocks for d or until ctx is done.
func (RealClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Git provides the repository operations used around config rewrites.
type Git interface {
	// RepoRoot returns the repository root directory.
	RepoRoot() string

	// CurrentBranch returns the name of the checked out branch.
	CurrentBranch() (string, error)

	// HasChanges reports whether the file differs from HEAD.
	HasChanges(path string) (bool, error)
}
