// Package app provides the dependency injection container for the application.
package app

import (
	"fmt"
	"io"
	"os"

	"github.com/noplagiarism/upptimectl/internal/domain"
	"github.com/noplagiarism/upptimectl/internal/infra/config"
	"github.com/noplagiarism/upptimectl/internal/infra/feed"
	"github.com/noplagiarism/upptimectl/internal/infra/git"
	"github.com/noplagiarism/upptimectl/internal/infra/github"
	"github.com/noplagiarism/upptimectl/internal/infra/logging"
	"github.com/noplagiarism/upptimectl/internal/infra/servicedir"
	"github.com/noplagiarism/upptimectl/internal/infra/upptimerc"
	"github.com/noplagiarism/upptimectl/internal/usecase"
)

// Config holds the resolved application paths.
type Config struct {
	RepoRoot    string // Root directory of the git repository
	SitesPath   string // Path to the Upptime config file
	ServicesDir string // Path to the directory holding one subdirectory per service
	LogFile     string // Path to the optional log file (empty when disabled)
}

// newConfig resolves the configured paths against the repository root.
func newConfig(repoRoot string, appConfig *domain.Config) Config {
	cfg := Config{
		RepoRoot:    repoRoot,
		SitesPath:   domain.ResolvePath(repoRoot, appConfig.Sync.ConfigFile),
		ServicesDir: domain.ResolvePath(repoRoot, appConfig.Issues.ServicesDir),
	}
	if appConfig.Log.File != "" {
		cfg.LogFile = domain.ResolvePath(repoRoot, appConfig.Log.File)
	}
	return cfg
}

// TrackerFactory builds an issue tracker for a token.
type TrackerFactory func(token string) (domain.IssueTracker, error)

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Feed          domain.FeedSource
	Sites         domain.SiteStore
	Services      domain.ServiceDirectory
	Clock         domain.Clock
	Git           domain.Git
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager
	Logger        domain.Logger

	// Getenv reads the tracker token from the environment.
	Getenv func(key string) string
	// NewTracker is only called once a token is available.
	NewTracker TrackerFactory

	// Pointer fields
	AppConfig *domain.Config

	// Configuration
	Config Config
}

// New creates a new Container by detecting the git repository from the given directory.
func New(dir string) (*Container, error) {
	// Detect git repository
	gitClient, err := git.NewClient(dir)
	if err != nil {
		return nil, err
	}
	repoRoot := gitClient.RepoRoot()

	configLoader := config.NewLoader(repoRoot)
	appConfig, err := configLoader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := newConfig(repoRoot, appConfig)

	logger := logging.New(os.Stderr, cfg.LogFile, logging.ParseLevel(appConfig.Log.Level))

	return &Container{
		Feed:          feed.NewClient(appConfig.Feed.URL, appConfig.Feed.UserAgent, nil),
		Sites:         upptimerc.New(cfg.SitesPath),
		Services:      servicedir.New(cfg.ServicesDir),
		Clock:         domain.RealClock{},
		Git:           gitClient,
		ConfigLoader:  configLoader,
		ConfigManager: config.NewManager(repoRoot),
		Logger:        logger,
		Getenv:        os.Getenv,
		NewTracker:    newGitHubTracker(appConfig),
		AppConfig:     appConfig,
		Config:        cfg,
	}, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg Config, appConfig *domain.Config, clock domain.Clock, logger domain.Logger) *Container {
	return &Container{
		Clock:     clock,
		Logger:    logger,
		Getenv:    func(string) string { return "" },
		AppConfig: appConfig,
		Config:    cfg,
	}
}

// newGitHubTracker returns a TrackerFactory for the configured repository.
func newGitHubTracker(appConfig *domain.Config) TrackerFactory {
	return func(token string) (domain.IssueTracker, error) {
		client, err := github.NewClient(github.Config{
			BaseURL:   appConfig.Issues.APIURL,
			Token:     token,
			UserAgent: appConfig.Feed.UserAgent,
		})
		if err != nil {
			return nil, err
		}
		return github.NewTracker(client, appConfig.Issues.Repo)
	}
}

// Close releases resources held by the container, such as the log file.
func (c *Container) Close() error {
	if closer, ok := c.Logger.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// UseCase factory methods

// SyncSitesUseCase returns a new SyncSites use case.
func (c *Container) SyncSitesUseCase() *usecase.SyncSites {
	return usecase.NewSyncSites(c.Feed, c.Sites, c.AppConfig, c.Logger)
}

// CloseStaleIssuesUseCase returns a new CloseStaleIssues use case.
// It fails with domain.ErrMissingToken before any tracker is built
// when the token variable is unset.
func (c *Container) CloseStaleIssuesUseCase() (*usecase.CloseStaleIssues, error) {
	tokenEnv := c.AppConfig.Issues.TokenEnv
	token := c.Getenv(tokenEnv)
	if token == "" {
		return nil, fmt.Errorf("%w: please set %s", domain.ErrMissingToken, tokenEnv)
	}

	tracker, err := c.NewTracker(token)
	if err != nil {
		return nil, fmt.Errorf("create tracker: %w", err)
	}
	return usecase.NewCloseStaleIssues(tracker, c.Services, c.Clock, c.Logger, c.AppConfig.Issues), nil
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.ConfigLoader)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}
