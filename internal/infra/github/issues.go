package github

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Label is an issue label.
type Label struct {
	Name string `json:"name"`
}

// Issue is a GitHub issue. Pull requests are returned by the issues
// endpoints too and carry a non-nil PullRequest.
type Issue struct {
	PullRequest *struct{} `json:"pull_request,omitempty"`
	Title       string    `json:"title"`
	State       string    `json:"state"` // "open" or "closed"
	HTMLURL     string    `json:"html_url"`
	Labels      []Label   `json:"labels"`
	Number      int       `json:"number"`
}

// LabelNames returns the label names in API order.
func (i Issue) LabelNames() []string {
	names := make([]string, 0, len(i.Labels))
	for _, l := range i.Labels {
		names = append(names, l.Name)
	}
	return names
}

// Comment is an issue comment.
type Comment struct {
	Body    string `json:"body"`
	HTMLURL string `json:"html_url"`
	ID      int64  `json:"id"`
}

// UpdateIssueRequest contains the fields for updating an issue.
// Only non-nil fields are sent.
type UpdateIssueRequest struct {
	State       *string `json:"state,omitempty"`        // "open" or "closed"
	StateReason *string `json:"state_reason,omitempty"` // "completed" or "not_planned"
}

// ListIssuesOptions controls filtering and pagination for ListIssues.
type ListIssuesOptions struct {
	State   string   // "open", "closed", "all" (default: "open")
	Labels  []string // Issues must carry all of these labels
	PerPage int      // Results per page (max 100, default 30)
}

func (o ListIssuesOptions) queryParams() string {
	q := url.Values{}
	if o.State != "" {
		q.Set("state", o.State)
	}
	if len(o.Labels) > 0 {
		q.Set("labels", strings.Join(o.Labels, ","))
	}
	if o.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(o.PerPage))
	}
	return q.Encode()
}

func repoPath(owner, repo string) string {
	return "/repos/" + url.PathEscape(owner) + "/" + url.PathEscape(repo)
}

// ListIssues returns a paginated iterator over issues in a repository.
func (c *Client) ListIssues(owner, repo string, options ListIssuesOptions) *PageIterator[Issue] {
	path := repoPath(owner, repo) + "/issues"
	if q := options.queryParams(); q != "" {
		path += "?" + q
	}
	return list[Issue](c, path)
}

// GetIssue retrieves a single issue by number.
func (c *Client) GetIssue(ctx context.Context, owner, repo string, number int) (*Issue, error) {
	var issue Issue
	path := fmt.Sprintf("%s/issues/%d", repoPath(owner, repo), number)
	if err := c.get(ctx, path, &issue); err != nil {
		return nil, fmt.Errorf("getting issue %s/%s#%d: %w", owner, repo, number, err)
	}
	return &issue, nil
}

// UpdateIssue updates an existing issue.
func (c *Client) UpdateIssue(ctx context.Context, owner, repo string, number int, request UpdateIssueRequest) (*Issue, error) {
	var issue Issue
	path := fmt.Sprintf("%s/issues/%d", repoPath(owner, repo), number)
	if err := c.patch(ctx, path, request, &issue); err != nil {
		return nil, fmt.Errorf("updating issue %s/%s#%d: %w", owner, repo, number, err)
	}
	return &issue, nil
}

// CreateIssueComment creates a comment on an issue.
func (c *Client) CreateIssueComment(ctx context.Context, owner, repo string, number int, body string) (*Comment, error) {
	var comment Comment
	request := struct {
		Body string `json:"body"`
	}{Body: body}
	path := fmt.Sprintf("%s/issues/%d/comments", repoPath(owner, repo), number)
	if err := c.post(ctx, path, request, &comment); err != nil {
		return nil, fmt.Errorf("creating comment on %s/%s#%d: %w", owner, repo, number, err)
	}
	return &comment, nil
}
