package domain

import (
	"path/filepath"
	"strings"
	"time"
)

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Icons    map[string]string // [icons] table: lookup key -> icon URL
	Warnings []string          // Unknown keys found while loading
	Sync     SyncConfig        // [sync] settings
	Feed     FeedConfig        // [feed] settings
	Issues   IssuesConfig      // [issues] settings
	Log      LogConfig         // [log] settings
}

// SyncConfig holds instance synchronizer settings from [sync] section.
type SyncConfig struct {
	ConfigFile          string   // Upptime config path, relative to the repository root
	IconKey             IconKey  // Which key selects an icon from [icons]
	Services            []string // Tracked service identifiers, in output order
	ExpectedStatusCodes []int    // Shared by every generated site
}

// FeedConfig holds remote feed settings from [feed] section.
type FeedConfig struct {
	URL       string // Instances feed URL
	UserAgent string // User-Agent sent with the feed request
}

// IssuesConfig holds issue closer settings from [issues] section.
// Fields are ordered to minimize memory padding.
type IssuesConfig struct {
	Repo           string        // owner/name
	APIURL         string        // Tracker API base URL
	TokenEnv       string        // Environment variable holding the access token
	StatusLabel    string        // Generic label every status issue carries
	ServicesDir    string        // Directory whose subdirectories are the live services
	Comment        string        // Comment posted before closing
	ExcludedLabels []string      // Labels never treated as a service label
	CloseDelay     time.Duration // Delay between consecutive closures
}

// LogConfig holds logging settings from [log] section.
type LogConfig struct {
	Level string // Log level: debug, info, warn, error
	File  string // Optional log file, appended to
}

// Default values.
const (
	DefaultFeedURL     = "https://raw.githubusercontent.com/NoPlagiarism/instances-list/master/instances/all.json"
	DefaultUserAgent   = "@NoPlagiarism / services-personal-upptime"
	DefaultRepo        = "NoPlagiarism/services-personal-upptime"
	DefaultAPIURL      = "https://api.github.com"
	DefaultTokenEnv    = "GH_PAT"
	DefaultStatusLabel = "status"
	DefaultServicesDir = "api"
	DefaultComment     = "Closing due removing from instance list"
	DefaultCloseDelay  = time.Second
	DefaultLogLevel    = "info"
)

// Config file names.
const (
	AppDirName         = "upptimectl"        // Global config directory name
	ConfigFileName     = "config.toml"       // Global config file name
	RootConfigFileName = ".upptimectl.toml"  // Config file name in repository root
	UpptimeConfigName  = ".upptimerc.yml"    // Upptime config file name
)

// RepoConfigPath returns the repository config path.
func RepoConfigPath(repoRoot string) string {
	return filepath.Join(repoRoot, RootConfigFileName)
}

// GlobalConfigDir returns the global config directory path.
// configHome is typically XDG_CONFIG_HOME or ~/.config (resolved by caller).
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, AppDirName)
}

// GlobalConfigPath returns the global config path.
func GlobalConfigPath(configHome string) string {
	return filepath.Join(GlobalConfigDir(configHome), ConfigFileName)
}

// ResolvePath joins a configured path onto the repository root unless it is absolute.
func ResolvePath(repoRoot, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(repoRoot, path)
}

// RepoOwnerName splits an "owner/name" repository reference.
func RepoOwnerName(repo string) (owner, name string, err error) {
	owner, name, ok := strings.Cut(repo, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", ErrInvalidRepo
	}
	return owner, name, nil
}

// DefaultServices returns the services tracked out of the box.
func DefaultServices() []string {
	return []string{
		"proxitok",
		"gothub",
		"wikiless",
		"librarian (discontinued)",
		"anonymousoverflow",
		"libreddit",
		"breezewiki",
		"rimgo",
		"ryd-proxy",
		"cloudtube",
	}
}

// DefaultIcons returns the icon table keyed by tracked service identifier.
func DefaultIcons() map[string]string {
	return map[string]string{
		"proxitok":                 "https://raw.githubusercontent.com/pablouser1/ProxiTok/master/favicon-32x32.png",
		"gothub":                   "https://codeberg.org/gothub/gothub/raw/branch/dev/public/assets/favicon.ico",
		"wikiless":                 "https://gitea.slowb.ro/ticoombs/Wikiless/raw/branch/main/static/wikiless-favicon.ico",
		"librarian (discontinued)": "https://codeberg.org/librarian/librarian/raw/branch/main/static/favicon/mstile-70x70.png",
		"anonymousoverflow":        "https://raw.githubusercontent.com/httpjamesm/AnonymousOverflow/main/public/codecircles.png",
		"libreddit":                "https://raw.githubusercontent.com/libreddit/libreddit/master/static/favicon.png",
		"breezewiki":               "https://gitdab.com/cadence/breezewiki/raw/branch/main/static/breezewiki-icon-color.svg",
		"rimgo":                    "https://codeberg.org/video-prize-ranch/rimgo/raw/branch/main/static/img/rimgo.svg",
		"ryd-proxy":                "https://raw.githubusercontent.com/Anarios/return-youtube-dislike/main/Icons/128x128_transparent.jpg",
		"cloudtube":                "https://git.sr.ht/~cadence/cloudtube/blob/main/html/static/images/favicon-32x32.png",
	}
}

// DefaultExpectedStatusCodes returns the status codes accepted as "up".
// 404 covers RYD-Proxy, 403 covers Cloudflare challenges.
func DefaultExpectedStatusCodes() []int {
	return []int{200, 201, 202, 203, 200, 204, 205, 206, 207, 208, 226, 404, 403}
}

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Icons: DefaultIcons(),
		Sync: SyncConfig{
			ConfigFile:          UpptimeConfigName,
			IconKey:             IconKeyID,
			Services:            DefaultServices(),
			ExpectedStatusCodes: DefaultExpectedStatusCodes(),
		},
		Feed: FeedConfig{
			URL:       DefaultFeedURL,
			UserAgent: DefaultUserAgent,
		},
		Issues: IssuesConfig{
			Repo:           DefaultRepo,
			APIURL:         DefaultAPIURL,
			TokenEnv:       DefaultTokenEnv,
			StatusLabel:    DefaultStatusLabel,
			ServicesDir:    DefaultServicesDir,
			Comment:        DefaultComment,
			ExcludedLabels: []string{DefaultStatusLabel},
			CloseDelay:     DefaultCloseDelay,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}
