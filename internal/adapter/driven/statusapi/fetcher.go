// Package statusapi implements the StatusFetcher port against the front end's
// own status endpoint, GET /api/code-reviews/{id}/status.
package statusapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/ericfisherdev/codereviewer/internal/domain/model"
	"github.com/ericfisherdev/codereviewer/internal/domain/port/driven"
	"github.com/ericfisherdev/codereviewer/internal/requestid"
)

// Compile-time interface satisfaction check.
var _ driven.StatusFetcher = (*Fetcher)(nil)

// Fetcher requests review statuses over HTTP.
type Fetcher struct {
	http    *http.Client
	baseURL string
}

// NewFetcher creates a Fetcher for the front end served at baseURL.
// A nil httpClient falls back to http.DefaultClient.
func NewFetcher(httpClient *http.Client, baseURL string) (*Fetcher, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("parsing base URL: %q is not absolute", baseURL)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Fetcher{
		http:    httpClient,
		baseURL: strings.TrimRight(u.Scheme+"://"+u.Host, "/"),
	}, nil
}

type statusResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// FetchStatus returns the review's current status. Non-2xx responses are
// reported as *driven.StatusHTTPError.
func (f *Fetcher) FetchStatus(ctx context.Context, reviewID string) (model.ReviewStatusSnapshot, error) {
	endpoint := f.baseURL + "/api/code-reviews/" + url.PathEscape(reviewID) + "/status"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return model.ReviewStatusSnapshot{}, fmt.Errorf("build status request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if id := requestid.FromContext(ctx); id != "" {
		req.Header.Set(requestid.Header, id)
	}

	resp, err := f.http.Do(req)
	if err != nil {
		return model.ReviewStatusSnapshot{}, fmt.Errorf("fetch status for review %s: %w", reviewID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return model.ReviewStatusSnapshot{}, &driven.StatusHTTPError{ReviewID: reviewID, StatusCode: resp.StatusCode}
	}

	var body statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return model.ReviewStatusSnapshot{}, fmt.Errorf("decode status for review %s: %w", reviewID, err)
	}

	return model.ReviewStatusSnapshot{ID: body.ID, Status: body.Status}, nil
}
