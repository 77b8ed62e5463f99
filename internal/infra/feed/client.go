// Package feed fetches the remote instances catalog.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/noplagiarism/upptimectl/internal/domain"
)

// Ensure Client implements domain.FeedSource.
var _ domain.FeedSource = (*Client)(nil)

// maxFeedSize bounds how much of the response body is read.
const maxFeedSize = 16 << 20

// Client fetches the instances feed over HTTP.
type Client struct {
	httpClient *http.Client
	url        string
	userAgent  string
}

// NewClient creates a new feed client.
// If httpClient is nil, http.DefaultClient is used.
func NewClient(url, userAgent string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient: httpClient,
		url:        url,
		userAgent:  userAgent,
	}
}

// Fetch performs a single GET request for the feed and decodes it.
func (c *Client) Fetch(ctx context.Context) (domain.Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create feed request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", c.url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("GET %s: unexpected status %s", c.url, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedSize))
	if err != nil {
		return nil, fmt.Errorf("read feed: %w", err)
	}

	var feed domain.Feed
	if err := json.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("decode feed: %w", err)
	}
	return feed, nil
}
