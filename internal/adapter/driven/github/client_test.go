package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/codereviewer/internal/domain/model"
)

// newTestClient creates a Client backed by the given httptest handler.
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClientWithHTTPClient(server.Client(), server.URL+"/")
	require.NoError(t, err)

	return client
}

func TestInspectRepository(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/defra/code-reviewer", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-RateLimit-Remaining", "4999")
		w.Header().Set("X-RateLimit-Limit", "5000")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"full_name":        "defra/code-reviewer",
			"description":      "Reviews code",
			"default_branch":   "main",
			"visibility":       "public",
			"html_url":         "https://github.com/defra/code-reviewer",
			"stargazers_count": 12,
			"archived":         false,
		})
	}))

	info, err := client.InspectRepository(context.Background(), "https://github.com/defra/code-reviewer.git")
	require.NoError(t, err)
	assert.Equal(t, &model.RepositoryInfo{
		FullName:      "defra/code-reviewer",
		Description:   "Reviews code",
		DefaultBranch: "main",
		Visibility:    "public",
		HTMLURL:       "https://github.com/defra/code-reviewer",
		Stars:         12,
	}, info)
}

func TestInspectRepository_NonGitHubHost(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Error("no request expected for non-GitHub URLs")
		w.WriteHeader(http.StatusInternalServerError)
	}))

	info, err := client.InspectRepository(context.Background(), "https://gitlab.com/org/repo")
	require.NoError(t, err)
	assert.Nil(t, info)
}

func TestInspectRepository_NotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Not Found"}`))
	}))

	info, err := client.InspectRepository(context.Background(), "https://github.com/org/missing")
	require.Error(t, err)
	assert.Nil(t, info)
}

func TestParseRepositoryURL(t *testing.T) {
	tests := []struct {
		in    string
		owner string
		repo  string
		ok    bool
	}{
		{"https://github.com/org/repo", "org", "repo", true},
		{"https://github.com/org/repo/", "org", "repo", true},
		{"https://www.github.com/org/repo.git", "org", "repo", true},
		{"https://GitHub.com/org/repo/tree/main/src", "org", "repo", true},
		{"https://github.com/org", "", "", false},
		{"https://github.com/", "", "", false},
		{"https://bitbucket.org/org/repo", "", "", false},
		{"not a url", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			owner, repo, ok := parseRepositoryURL(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.owner, owner)
			assert.Equal(t, tt.repo, repo)
		})
	}
}
