package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/noplagiarism/upptimectl/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTracker(t *testing.T, handler http.HandlerFunc) *Tracker {
	t.Helper()
	server := httptest.NewTLSServer(handler)
	t.Cleanup(server.Close)
	tracker, err := NewTracker(newTestClient(t, server), "owner/repo")
	require.NoError(t, err)
	return tracker
}

func TestNewTracker_InvalidRepo(t *testing.T) {
	client, err := NewClient(Config{Token: "t"})
	require.NoError(t, err)

	for _, repo := range []string{"", "owner", "owner/", "/repo", "a/b/c"} {
		_, err := NewTracker(client, repo)
		assert.ErrorIs(t, err, domain.ErrInvalidRepo, repo)
	}
}

func TestTracker_ListOpenIssues(t *testing.T) {
	tracker := newTestTracker(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "open", r.URL.Query().Get("state"))
		assert.Equal(t, "status", r.URL.Query().Get("labels"))
		_ = json.NewEncoder(w).Encode([]Issue{
			{Number: 3, Title: "svc1 down", State: "open", Labels: []Label{{Name: "status"}, {Name: "svc1"}}},
			{Number: 5, Title: "svc3 down", State: "open", Labels: []Label{{Name: "svc3"}, {Name: "status"}}},
		})
	})

	issues, err := tracker.ListOpenIssues(context.Background(), "status")

	require.NoError(t, err)
	assert.Equal(t, []domain.Issue{
		{Number: 3, Title: "svc1 down", State: domain.IssueOpen, Labels: []string{"status", "svc1"}},
		{Number: 5, Title: "svc3 down", State: domain.IssueOpen, Labels: []string{"svc3", "status"}},
	}, issues)
}

func TestTracker_GetIssue(t *testing.T) {
	tracker := newTestTracker(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/owner/repo/issues/42", r.URL.Path)
		_ = json.NewEncoder(w).Encode(Issue{Number: 42, State: "open", Labels: []Label{{Name: "rimgo"}}})
	})

	issue, err := tracker.GetIssue(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, 42, issue.Number)
	assert.Equal(t, []string{"rimgo"}, issue.Labels)
}

func TestTracker_Comment(t *testing.T) {
	var body map[string]string
	tracker := newTestTracker(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/repos/owner/repo/issues/7/comments", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":1,"body":"bye"}`))
	})

	require.NoError(t, tracker.Comment(context.Background(), 7, "bye"))
	assert.Equal(t, map[string]string{"body": "bye"}, body)
}

func TestTracker_Close(t *testing.T) {
	var body map[string]any
	tracker := newTestTracker(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/repos/owner/repo/issues/7", r.URL.Path)
		_ = json.NewDecoder(r.Body).Decode(&body)
		_, _ = w.Write([]byte(`{"number":7,"state":"closed"}`))
	})

	require.NoError(t, tracker.Close(context.Background(), 7))
	assert.Equal(t, map[string]any{"state": "closed", "state_reason": "not_planned"}, body)
}

func TestTracker_CloseError(t *testing.T) {
	tracker := newTestTracker(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"Resource not accessible by integration"}`))
	})

	err := tracker.Close(context.Background(), 7)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.NotErrorIs(t, err, domain.ErrRateLimited)
}

func TestTracker_GetIssueNotFound(t *testing.T) {
	tracker := newTestTracker(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Not Found"}`))
	})

	_, err := tracker.GetIssue(context.Background(), 404)

	assert.ErrorIs(t, err, domain.ErrIssueNotFound)
}

func TestTracker_RateLimited(t *testing.T) {
	tracker := newTestTracker(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"API rate limit exceeded for user ID 1."}`))
	})

	err := tracker.Comment(context.Background(), 7, "bye")
	assert.ErrorIs(t, err, domain.ErrRateLimited)

	_, err = tracker.ListOpenIssues(context.Background(), "status")
	assert.ErrorIs(t, err, domain.ErrRateLimited)
}
