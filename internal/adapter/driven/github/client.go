// Package github implements the RepositoryInspector port using the go-github library.
package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v82/github"
	"github.com/gregjones/httpcache"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"

	"github.com/ericfisherdev/codereviewer/internal/domain/model"
	"github.com/ericfisherdev/codereviewer/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.RepositoryInspector = (*Client)(nil)

// Client looks up repository metadata on GitHub.
type Client struct {
	gh *gh.Client
}

// NewClient creates a GitHub API client with the following transport stack:
//  1. httpcache (ETag-based conditional request caching)
//  2. go-github-ratelimit (secondary rate limit middleware, sleeps on 429)
//  3. go-github (GitHub REST API client, PAT auth when token is set)
//
// Without a token requests are anonymous and subject to the lower public limit.
func NewClient(token string, timeout time.Duration) *Client {
	cacheTransport := httpcache.NewMemoryCacheTransport()
	rateLimitClient := github_ratelimit.NewClient(cacheTransport)
	rateLimitClient.Timeout = timeout

	client := gh.NewClient(rateLimitClient)
	if token != "" {
		client = client.WithAuthToken(token)
	}

	return &Client{gh: client}
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base URL.
// This constructor is intended for testing, allowing injection of an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string) (*Client, error) {
	client := gh.NewClient(httpClient)

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	client.BaseURL = u

	return &Client{gh: client}, nil
}

// InspectRepository returns metadata for a github.com repository URL.
// URLs on any other host, or without an owner/repo path, yield (nil, nil).
func (c *Client) InspectRepository(ctx context.Context, repositoryURL string) (*model.RepositoryInfo, error) {
	owner, repo, ok := parseRepositoryURL(repositoryURL)
	if !ok {
		return nil, nil
	}

	r, resp, err := c.gh.Repositories.Get(ctx, owner, repo)
	logRateLimit(resp, owner+"/"+repo)
	if err != nil {
		return nil, fmt.Errorf("get repository %s/%s: %w", owner, repo, err)
	}

	return &model.RepositoryInfo{
		FullName:      r.GetFullName(),
		Description:   r.GetDescription(),
		DefaultBranch: r.GetDefaultBranch(),
		Visibility:    r.GetVisibility(),
		HTMLURL:       r.GetHTMLURL(),
		Stars:         r.GetStargazersCount(),
		Archived:      r.GetArchived(),
	}, nil
}

// parseRepositoryURL extracts owner and repo from https://github.com/owner/repo
// style URLs, tolerating a trailing slash, a .git suffix and deeper paths.
func parseRepositoryURL(raw string) (owner, repo string, ok bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", "", false
	}

	host := strings.ToLower(u.Hostname())
	if host != "github.com" && host != "www.github.com" {
		return "", "", false
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}

	return parts[0], strings.TrimSuffix(parts[1], ".git"), true
}

func logRateLimit(resp *gh.Response, endpoint string) {
	if resp == nil {
		return
	}

	slog.Debug("github api call",
		"endpoint", endpoint,
		"rate_remaining", resp.Rate.Remaining,
		"rate_limit", resp.Rate.Limit,
	)

	if resp.Rate.Remaining < 10 {
		slog.Warn("github rate limit low",
			"remaining", resp.Rate.Remaining,
			"reset_in", time.Until(resp.Rate.Reset.Time).Round(time.Second),
		)
	}
}
