package github

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

// PageIterator lazily fetches pages of a paginated endpoint.
// It is not safe for concurrent use.
type PageIterator[T any] struct {
	client  *Client
	nextURL string
}

// list creates a PageIterator for a GET endpoint relative to the base URL.
func list[T any](c *Client, path string) *PageIterator[T] {
	return &PageIterator[T]{client: c, nextURL: c.baseURL + path}
}

// Next fetches the next page. It returns nil, nil when all pages are consumed.
func (it *PageIterator[T]) Next(ctx context.Context) ([]T, error) {
	if it.nextURL == "" {
		return nil, nil
	}

	resp, err := it.client.doRaw(ctx, http.MethodGet, it.nextURL, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
		return nil, parseAPIError(resp.StatusCode, body)
	}

	items := []T{}
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, err
	}

	it.nextURL = parseLinkNext(resp.Header.Get("Link"))
	return items, nil
}

// Collect fetches all remaining pages.
func (it *PageIterator[T]) Collect(ctx context.Context) ([]T, error) {
	var all []T
	for {
		items, err := it.Next(ctx)
		if err != nil {
			return all, err
		}
		if items == nil {
			return all, nil
		}
		all = append(all, items...)
	}
}

// parseLinkNext extracts the rel="next" URL from an RFC 5988 Link header.
//
// Format: <https://api.github.com/...?page=2>; rel="next", <...>; rel="last"
func parseLinkNext(header string) string {
	for _, part := range strings.Split(header, ",") {
		segments := strings.SplitN(strings.TrimSpace(part), ";", 2)
		if len(segments) != 2 {
			continue
		}
		urlPart := strings.TrimSpace(segments[0])
		if !strings.Contains(segments[1], `rel="next"`) {
			continue
		}
		if strings.HasPrefix(urlPart, "<") && strings.HasSuffix(urlPart, ">") {
			return urlPart[1 : len(urlPart)-1]
		}
	}
	return ""
}
