// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/noplagiarism/upptimectl/internal/domain"
)

// MockClock is a test double for domain.Clock.
// Sleep advances NowTime instead of blocking.
type MockClock struct {
	NowTime  time.Time
	SleepErr error
	Sleeps   []time.Duration
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// Sleep records d and advances NowTime by it.
func (m *MockClock) Sleep(ctx context.Context, d time.Duration) error {
	if m.SleepErr != nil {
		return m.SleepErr
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	m.Sleeps = append(m.Sleeps, d)
	m.NowTime = m.NowTime.Add(d)
	return nil
}

// MockFeedSource is a test double for domain.FeedSource.
type MockFeedSource struct {
	Feed     domain.Feed
	FetchErr error
	Calls    int
}

// Fetch returns the configured feed.
func (m *MockFeedSource) Fetch(_ context.Context) (domain.Feed, error) {
	m.Calls++
	if m.FetchErr != nil {
		return nil, m.FetchErr
	}
	return m.Feed, nil
}

// MockSiteStore is a test double for domain.SiteStore.
type MockSiteStore struct {
	SitesErr   error
	ReplaceErr error
	Current    []domain.Site
	Writes     int
}

// Sites returns the current sites.
func (m *MockSiteStore) Sites() ([]domain.Site, error) {
	if m.SitesErr != nil {
		return nil, m.SitesErr
	}
	return m.Current, nil
}

// ReplaceSites stores sites and counts the write.
func (m *MockSiteStore) ReplaceSites(sites []domain.Site) error {
	if m.ReplaceErr != nil {
		return m.ReplaceErr
	}
	m.Current = sites
	m.Writes++
	return nil
}

// TrackerCall records one mutating call on MockIssueTracker.
type TrackerCall struct {
	At     time.Time
	Method string // "comment" or "close"
	Body   string
	Number int
}

// MockIssueTracker is a test double for domain.IssueTracker.
// When Clock is set, each recorded call carries its current time.
type MockIssueTracker struct {
	Clock      domain.Clock
	Issues     map[int]*domain.Issue
	ListErr    error
	GetErr     error
	CommentErr error
	CloseErr   map[int]error
	Order      []int // Issue numbers in tracker order; defaults to insertion via AddIssue
	Calls      []TrackerCall
	ListLabels []string
}

// NewMockIssueTracker creates a new MockIssueTracker with initialized maps.
func NewMockIssueTracker() *MockIssueTracker {
	return &MockIssueTracker{
		Issues:   make(map[int]*domain.Issue),
		CloseErr: make(map[int]error),
	}
}

// AddIssue adds an open issue carrying labels.
func (m *MockIssueTracker) AddIssue(number int, labels ...string) {
	m.Issues[number] = &domain.Issue{
		Number: number,
		Title:  fmt.Sprintf("issue %d", number),
		State:  domain.IssueOpen,
		Labels: labels,
	}
	m.Order = append(m.Order, number)
}

// ListOpenIssues returns open issues carrying label in tracker order.
func (m *MockIssueTracker) ListOpenIssues(_ context.Context, label string) ([]domain.Issue, error) {
	m.ListLabels = append(m.ListLabels, label)
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	var issues []domain.Issue
	for _, n := range m.Order {
		issue := m.Issues[n]
		if issue.State != domain.IssueOpen {
			continue
		}
		for _, l := range issue.Labels {
			if l == label {
				issues = append(issues, *issue)
				break
			}
		}
	}
	return issues, nil
}

// GetIssue returns a copy of the issue or an error when it does not exist.
func (m *MockIssueTracker) GetIssue(_ context.Context, number int) (*domain.Issue, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	issue, ok := m.Issues[number]
	if !ok {
		return nil, fmt.Errorf("%w: #%d", domain.ErrIssueNotFound, number)
	}
	c := *issue
	return &c, nil
}

// Comment records a comment call.
func (m *MockIssueTracker) Comment(_ context.Context, number int, body string) error {
	m.record("comment", number, body)
	return m.CommentErr
}

// Close records a close call and marks the issue closed.
func (m *MockIssueTracker) Close(_ context.Context, number int) error {
	m.record("close", number, "")
	if err := m.CloseErr[number]; err != nil {
		return err
	}
	if issue, ok := m.Issues[number]; ok {
		issue.State = domain.IssueClosed
	}
	return nil
}

// Closed returns the numbers passed to Close, in call order.
func (m *MockIssueTracker) Closed() []int {
	var numbers []int
	for _, c := range m.Calls {
		if c.Method == "close" {
			numbers = append(numbers, c.Number)
		}
	}
	return numbers
}

func (m *MockIssueTracker) record(method string, number int, body string) {
	call := TrackerCall{Method: method, Number: number, Body: body}
	if m.Clock != nil {
		call.At = m.Clock.Now()
	}
	m.Calls = append(m.Calls, call)
}

// MockServiceDirectory is a test double for domain.ServiceDirectory.
type MockServiceDirectory struct {
	ListErr  error
	Services []string
}

// List returns the configured services.
func (m *MockServiceDirectory) List() ([]string, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Services, nil
}

// LogEntry is one line recorded by MockLogger.
type LogEntry struct {
	Level    string
	Category string
	Msg      string
}

// MockLogger records log lines for assertions.
type MockLogger struct {
	Entries []LogEntry
	mu      sync.Mutex
}

func (m *MockLogger) Debug(category, msg string) { m.add("DEBUG", category, msg) }
func (m *MockLogger) Info(category, msg string)  { m.add("INFO", category, msg) }
func (m *MockLogger) Warn(category, msg string)  { m.add("WARN", category, msg) }
func (m *MockLogger) Error(category, msg string) { m.add("ERROR", category, msg) }

// Count returns the number of entries at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Entries {
		if e.Level == level {
			n++
		}
	}
	return n
}

func (m *MockLogger) add(level, category, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, LogEntry{Level: level, Category: category, Msg: msg})
}

// MockConfigManager is a test double for domain.ConfigManager.
type MockConfigManager struct {
	InitErr   error
	RenderErr error
	Info      domain.ConfigInfo
	InitForce []bool
}

// GetConfigInfo returns the configured info.
func (m *MockConfigManager) GetConfigInfo() domain.ConfigInfo {
	return m.Info
}

// InitRepoConfig records the call.
func (m *MockConfigManager) InitRepoConfig(force bool) error {
	m.InitForce = append(m.InitForce, force)
	return m.InitErr
}

// Render returns a short fixed rendering.
func (m *MockConfigManager) Render(cfg *domain.Config) (string, error) {
	if m.RenderErr != nil {
		return "", m.RenderErr
	}
	return fmt.Sprintf("[issues]\nrepo = %q\n", cfg.Issues.Repo), nil
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config  *domain.Config
	LoadErr error
}

// Load returns the configured config.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	return m.LoadWithOptions(domain.LoadConfigOptions{})
}

// LoadWithOptions returns the configured config.
func (m *MockConfigLoader) LoadWithOptions(_ domain.LoadConfigOptions) (*domain.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Config, nil
}

// MockGit is a test double for domain.Git.
type MockGit struct {
	StatusErr error
	BranchErr error
	Root      string
	Branch    string
	Changed   []string // Paths reported as changed
}

func (m *MockGit) RepoRoot() string { return m.Root }

func (m *MockGit) CurrentBranch() (string, error) {
	if m.BranchErr != nil {
		return "", m.BranchErr
	}
	return m.Branch, nil
}

func (m *MockGit) HasChanges(path string) (bool, error) {
	if m.StatusErr != nil {
		return false, m.StatusErr
	}
	for _, p := range m.Changed {
		if p == path {
			return true, nil
		}
	}
	return false, nil
}
