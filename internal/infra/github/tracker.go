package github

import (
	"context"
	"fmt"

	"github.com/noplagiarism/upptimectl/internal/domain"
)

// Ensure Tracker implements domain.IssueTracker.
var _ domain.IssueTracker = (*Tracker)(nil)

// listPageSize is the largest page GitHub serves.
const listPageSize = 100

// closeReason marks closures of removed services apart from fixed outages.
const closeReason = "not_planned"

// Tracker binds a Client to one repository.
type Tracker struct {
	client *Client
	owner  string
	repo   string
}

// NewTracker creates a Tracker for an "owner/name" repository.
func NewTracker(client *Client, repository string) (*Tracker, error) {
	owner, repo, err := domain.RepoOwnerName(repository)
	if err != nil {
		return nil, err
	}
	return &Tracker{client: client, owner: owner, repo: repo}, nil
}

// ListOpenIssues returns every open issue carrying the label.
func (t *Tracker) ListOpenIssues(ctx context.Context, label string) ([]domain.Issue, error) {
	it := t.client.ListIssues(t.owner, t.repo, ListIssuesOptions{
		State:   "open",
		Labels:  []string{label},
		PerPage: listPageSize,
	})
	raw, err := it.Collect(ctx)
	if err != nil {
		return nil, trackerErr(err)
	}

	issues := make([]domain.Issue, 0, len(raw))
	for _, issue := range raw {
		issues = append(issues, toDomain(issue))
	}
	return issues, nil
}

// GetIssue retrieves an issue by number.
func (t *Tracker) GetIssue(ctx context.Context, number int) (*domain.Issue, error) {
	issue, err := t.client.GetIssue(ctx, t.owner, t.repo, number)
	if err != nil {
		return nil, trackerErr(err)
	}
	d := toDomain(*issue)
	return &d, nil
}

// Comment posts a comment on an issue.
func (t *Tracker) Comment(ctx context.Context, number int, body string) error {
	_, err := t.client.CreateIssueComment(ctx, t.owner, t.repo, number, body)
	return trackerErr(err)
}

// Close sets the issue state to closed as not planned.
func (t *Tracker) Close(ctx context.Context, number int) error {
	state := string(domain.IssueClosed)
	reason := closeReason
	_, err := t.client.UpdateIssue(ctx, t.owner, t.repo, number, UpdateIssueRequest{
		State:       &state,
		StateReason: &reason,
	})
	return trackerErr(err)
}

// trackerErr tags API errors with the domain errors callers branch on.
func trackerErr(err error) error {
	switch {
	case err == nil:
		return nil
	case IsNotFound(err):
		return fmt.Errorf("%w: %w", domain.ErrIssueNotFound, err)
	case IsRateLimited(err):
		return fmt.Errorf("%w: %w", domain.ErrRateLimited, err)
	default:
		return err
	}
}

func toDomain(issue Issue) domain.Issue {
	return domain.Issue{
		Title:  issue.Title,
		State:  domain.IssueState(issue.State),
		Labels: issue.LabelNames(),
		Number: issue.Number,
	}
}
