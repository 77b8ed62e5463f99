package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient creates a Client backed by the given TLS test server.
func newTestClient(t *testing.T, server *httptest.Server) *Client {
	t.Helper()
	client, err := NewClient(Config{
		BaseURL:    server.URL,
		Token:      "test-token",
		UserAgent:  "test-agent",
		HTTPClient: server.Client(),
	})
	require.NoError(t, err)
	return client
}

func TestNewClient_HTTPSEnforcement(t *testing.T) {
	_, err := NewClient(Config{BaseURL: "http://api.github.com", Token: "test"})

	require.Error(t, err)
	assert.Equal(t, `github: API client requires HTTPS (got "http://api.github.com")`, err.Error())
}

func TestNewClient_NoToken(t *testing.T) {
	_, err := NewClient(Config{})

	assert.Error(t, err)
}

func TestNewClient_Defaults(t *testing.T) {
	client, err := NewClient(Config{Token: "t", BaseURL: "https://ghe.example/api/v3/"})

	require.NoError(t, err)
	assert.Equal(t, "https://ghe.example/api/v3", client.baseURL)
	assert.Equal(t, http.DefaultClient, client.httpClient)
	assert.Equal(t, "upptimectl", client.userAgent)
}

func TestClient_Headers(t *testing.T) {
	var got http.Header
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		_, _ = w.Write([]byte(`{"number":1,"title":"Test"}`))
	}))
	defer server.Close()

	_, err := newTestClient(t, server).GetIssue(context.Background(), "owner", "repo", 1)
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-token", got.Get("Authorization"))
	assert.Equal(t, "application/vnd.github+json", got.Get("Accept"))
	assert.Equal(t, "2022-11-28", got.Get("X-GitHub-Api-Version"))
	assert.Equal(t, "test-agent", got.Get("User-Agent"))
}

func TestClient_APIError(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Not Found","documentation_url":"https://docs.github.com"}`))
	}))
	defer server.Close()

	_, err := newTestClient(t, server).GetIssue(context.Background(), "owner", "repo", 404)

	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsRateLimited(err))
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Not Found", apiErr.Message)
	assert.Equal(t, "https://docs.github.com", apiErr.DocumentationURL)
}

func TestIsRateLimited(t *testing.T) {
	assert.True(t, IsRateLimited(&APIError{StatusCode: 429, Message: "slow down"}))
	assert.True(t, IsRateLimited(&APIError{StatusCode: 403, Message: "API rate limit exceeded"}))
	assert.False(t, IsRateLimited(&APIError{StatusCode: 403, Message: "Resource not accessible"}))
	assert.False(t, IsRateLimited(assert.AnError))
}

func TestParseAPIError_NonJSONBody(t *testing.T) {
	err := parseAPIError(502, []byte("bad gateway"))

	assert.Equal(t, "github: HTTP 502: bad gateway", err.Error())
}

func TestParseLinkNext(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"empty", "", ""},
		{"next and last", `<https://api.github.com/x?page=2>; rel="next", <https://api.github.com/x?page=5>; rel="last"`, "https://api.github.com/x?page=2"},
		{"last only", `<https://api.github.com/x?page=5>; rel="last"`, ""},
		{"malformed", `https://api.github.com/x?page=2; rel="next"`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLinkNext(tt.header))
		})
	}
}

func TestListIssues_Pagination(t *testing.T) {
	var queries []string
	var server *httptest.Server
	server = httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/owner/repo/issues", r.URL.Path)
		queries = append(queries, r.URL.RawQuery)
		if r.URL.Query().Get("page") == "" {
			w.Header().Set("Link", "<"+server.URL+`/repos/owner/repo/issues?page=2>; rel="next"`)
			_ = json.NewEncoder(w).Encode([]Issue{{Number: 1, Labels: []Label{{Name: "status"}, {Name: "svc1"}}}})
			return
		}
		_ = json.NewEncoder(w).Encode([]Issue{{Number: 2}})
	}))
	defer server.Close()

	client := newTestClient(t, server)
	issues, err := client.ListIssues("owner", "repo", ListIssuesOptions{
		State:   "open",
		Labels:  []string{"status"},
		PerPage: 100,
	}).Collect(context.Background())

	require.NoError(t, err)
	require.Len(t, issues, 2)
	assert.Equal(t, []string{"status", "svc1"}, issues[0].LabelNames())
	assert.Equal(t, 2, issues[1].Number)
	require.Len(t, queries, 2)
	assert.Equal(t, "labels=status&per_page=100&state=open", queries[0])
	assert.Equal(t, "page=2", queries[1])
}

func TestListIssues_ErrorPage(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Bad credentials"}`))
	}))
	defer server.Close()

	_, err := newTestClient(t, server).ListIssues("owner", "repo", ListIssuesOptions{}).Collect(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Bad credentials", apiErr.Message)
}
