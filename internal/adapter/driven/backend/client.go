// Package backend implements the ReviewAPI port against the code review
// backend REST API (/api/v1).
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gregjones/httpcache"

	"github.com/ericfisherdev/codereviewer/internal/domain/model"
	"github.com/ericfisherdev/codereviewer/internal/domain/port/driven"
	"github.com/ericfisherdev/codereviewer/internal/requestid"
)

// Compile-time interface satisfaction check.
var _ driven.ReviewAPI = (*Client)(nil)

// maxErrorBody caps how much of a failed response is read for diagnostics.
const maxErrorBody = 64 << 10

// Client talks to the backend REST API.
type Client struct {
	http    *http.Client
	baseURL string
	cache   httpcache.Cache
}

// NewClient creates a Client whose transport revalidates cached GET responses
// with ETags, so the list pages and status polling do not refetch unchanged bodies.
// The cache keeps at most defaultCacheEntries responses, and a successful write
// drops the cached listing of the resource it changed.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	cache, err := newBoundedCache(defaultCacheEntries)
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{
		Transport: httpcache.NewTransport(cache),
		Timeout:   timeout,
	}
	client, err := NewClientWithHTTPClient(httpClient, baseURL)
	if err != nil {
		return nil, err
	}
	client.cache = cache
	return client, nil
}

// NewClientWithHTTPClient creates a Client with a custom http.Client.
// Tests use it to point the client at an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("parsing base URL: %q is not absolute", baseURL)
	}

	return &Client{
		http:    httpClient,
		baseURL: strings.TrimRight(u.String(), "/"),
	}, nil
}

// ListCodeReviews returns every code review known to the backend.
func (c *Client) ListCodeReviews(ctx context.Context) ([]model.CodeReview, error) {
	var dtos []codeReviewDTO
	if err := c.do(ctx, http.MethodGet, "/api/v1/code-reviews", nil, &dtos); err != nil {
		return nil, fmt.Errorf("list code reviews: %w", err)
	}

	reviews := make([]model.CodeReview, 0, len(dtos))
	for _, d := range dtos {
		reviews = append(reviews, d.toModel())
	}
	return reviews, nil
}

// GetCodeReview returns one review including its compliance reports.
func (c *Client) GetCodeReview(ctx context.Context, id string) (*model.CodeReview, error) {
	var dto codeReviewDTO
	if err := c.do(ctx, http.MethodGet, "/api/v1/code-reviews/"+url.PathEscape(id), nil, &dto); err != nil {
		return nil, fmt.Errorf("get code review %s: %w", id, err)
	}

	review := dto.toModel()
	return &review, nil
}

// CreateCodeReview starts a review and returns the backend's record of it.
func (c *Client) CreateCodeReview(ctx context.Context, repositoryURL string, standardSetIDs []string) (*model.CodeReview, error) {
	if standardSetIDs == nil {
		standardSetIDs = []string{}
	}
	body := createCodeReviewRequest{
		RepositoryURL: repositoryURL,
		StandardSets:  standardSetIDs,
	}

	var dto codeReviewDTO
	if err := c.do(ctx, http.MethodPost, "/api/v1/code-reviews", body, &dto); err != nil {
		return nil, fmt.Errorf("create code review for %s: %w", repositoryURL, err)
	}
	if dto.ID == "" {
		return nil, fmt.Errorf("create code review for %s: response has no _id", repositoryURL)
	}

	review := dto.toModel()
	return &review, nil
}

// ListClassifications returns all classifications.
func (c *Client) ListClassifications(ctx context.Context) ([]model.Classification, error) {
	var dtos []classificationDTO
	if err := c.do(ctx, http.MethodGet, "/api/v1/classifications", nil, &dtos); err != nil {
		return nil, fmt.Errorf("list classifications: %w", err)
	}

	out := make([]model.Classification, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, model.Classification{
			ID:        d.ID,
			Name:      d.Name,
			CreatedAt: parseTimestamp(d.CreatedAt),
		})
	}
	return out, nil
}

// CreateClassification adds a classification.
func (c *Client) CreateClassification(ctx context.Context, name string) error {
	if err := c.do(ctx, http.MethodPost, "/api/v1/classifications", classificationRequest{Name: name}, nil); err != nil {
		return fmt.Errorf("create classification %q: %w", name, err)
	}
	return nil
}

// DeleteClassification removes a classification.
func (c *Client) DeleteClassification(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/api/v1/classifications/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("delete classification %s: %w", id, err)
	}
	return nil
}

// ListStandardSets returns all standard sets.
func (c *Client) ListStandardSets(ctx context.Context) ([]model.StandardSet, error) {
	var dtos []standardSetDTO
	if err := c.do(ctx, http.MethodGet, "/api/v1/standard-sets", nil, &dtos); err != nil {
		return nil, fmt.Errorf("list standard sets: %w", err)
	}

	out := make([]model.StandardSet, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, model.StandardSet{
			ID:            d.ID,
			Name:          d.Name,
			RepositoryURL: d.RepositoryURL,
			CustomPrompt:  d.CustomPrompt,
			CreatedAt:     parseTimestamp(d.CreatedAt),
		})
	}
	return out, nil
}

// CreateStandardSet adds a standard set. Validation failures come back as an
// *driven.APIError with FieldErrors populated.
func (c *Client) CreateStandardSet(ctx context.Context, input model.StandardSetInput) error {
	body := standardSetRequest{
		Name:          input.Name,
		RepositoryURL: input.RepositoryURL,
		CustomPrompt:  input.CustomPrompt,
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/standard-sets", body, nil); err != nil {
		return fmt.Errorf("create standard set %q: %w", input.Name, err)
	}
	return nil
}

// DeleteStandardSet removes a standard set.
func (c *Client) DeleteStandardSet(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/api/v1/standard-sets/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("delete standard set %s: %w", id, err)
	}
	return nil
}

// do sends one request. A non-nil in is encoded as the JSON body; a non-nil
// out receives the decoded 2xx response. Non-2xx responses become *driven.APIError.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id := requestid.FromContext(ctx); id != "" {
		req.Header.Set(requestid.Header, id)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	slog.Debug("backend request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"cached", resp.Header.Get(httpcache.XFromCache) != "",
		"duration", time.Since(start).Round(time.Millisecond),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if method != http.MethodGet {
		c.invalidate(path)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// invalidate drops cached responses for path and for the collection it
// belongs to, e.g. /api/v1/standard-sets for /api/v1/standard-sets/{id}.
func (c *Client) invalidate(path string) {
	if c.cache == nil {
		return
	}
	c.cache.Delete(c.baseURL + path)

	resource, _, _ := strings.Cut(strings.TrimPrefix(path, "/api/v1/"), "/")
	c.cache.Delete(c.baseURL + "/api/v1/" + resource)
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &driven.APIError{StatusCode: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return apiErr
	}

	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		slog.Debug("backend error body is not JSON", "status", resp.StatusCode, "error", err)
		return apiErr
	}

	apiErr.Message = body.Message
	if len(body.Errors) > 0 {
		var fields map[string]driven.FieldError
		if err := json.Unmarshal(body.Errors, &fields); err == nil && len(fields) > 0 {
			apiErr.FieldErrors = fields
		}
	}
	return apiErr
}
