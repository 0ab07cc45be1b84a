package backend_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/codereviewer/internal/adapter/driven/backend"
	"github.com/ericfisherdev/codereviewer/internal/domain/model"
	"github.com/ericfisherdev/codereviewer/internal/domain/port/driven"
	"github.com/ericfisherdev/codereviewer/internal/requestid"
)

// newTestClient creates a Client backed by the given httptest handler.
func newTestClient(t *testing.T, handler http.Handler) *backend.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := backend.NewClientWithHTTPClient(server.Client(), server.URL+"/")
	require.NoError(t, err)
	return client
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestNewClientWithHTTPClient_RejectsRelativeURL(t *testing.T) {
	_, err := backend.NewClientWithHTTPClient(http.DefaultClient, "localhost:3001")
	require.Error(t, err)

	_, err = backend.NewClientWithHTTPClient(http.DefaultClient, "/api")
	require.Error(t, err)
}

func TestListCodeReviews(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/code-reviews", r.URL.Path)
		writeJSON(t, w, http.StatusOK, []map[string]any{
			{
				"_id":            "r1",
				"repository_url": "https://github.com/org/repo",
				"status":         "in_progress",
				"created_at":     "2024-01-14T14:00:00.000Z",
				"updated_at":     "2024-01-14T15:30:00Z",
			},
		})
	}))

	reviews, err := client.ListCodeReviews(context.Background())
	require.NoError(t, err)
	require.Len(t, reviews, 1)

	got := reviews[0]
	assert.Equal(t, "r1", got.ID)
	assert.Equal(t, "https://github.com/org/repo", got.RepositoryURL)
	assert.Equal(t, "in_progress", got.Status)
	assert.Equal(t, time.Date(2024, 1, 14, 14, 0, 0, 0, time.UTC), got.CreatedAt.UTC())
	assert.Equal(t, time.Date(2024, 1, 14, 15, 30, 0, 0, time.UTC), got.UpdatedAt.UTC())
}

func TestListCodeReviews_EmptyIsNonNil(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusOK, []any{})
	}))

	reviews, err := client.ListCodeReviews(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, reviews)
	assert.Empty(t, reviews)
}

func TestGetCodeReview_WithReports(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/code-reviews/abc", r.URL.Path)
		writeJSON(t, w, http.StatusOK, map[string]any{
			"_id":            "abc",
			"repository_url": "https://github.com/org/repo",
			"status":         "completed",
			"compliance_reports": []map[string]string{
				{"id": "c1", "report": "# Report"},
			},
		})
	}))

	review, err := client.GetCodeReview(context.Background(), "abc")
	require.NoError(t, err)
	require.NotNil(t, review)
	assert.Equal(t, "completed", review.Status)
	assert.Equal(t, []model.ComplianceReport{{ID: "c1", Report: "# Report"}}, review.ComplianceReports)
	assert.True(t, review.CreatedAt.IsZero())
}

func TestGetCodeReview_NotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusNotFound, map[string]string{"message": "Code review not found"})
	}))

	_, err := client.GetCodeReview(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, driven.ErrNotFound)

	var apiErr *driven.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Code review not found", apiErr.Message)
}

func TestGetCodeReview_NonJSONError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))

	_, err := client.GetCodeReview(context.Background(), "abc")

	var apiErr *driven.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Empty(t, apiErr.Message)
	assert.False(t, errors.Is(err, driven.ErrNotFound))
}

func TestGetCodeReview_ForwardsRequestID(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "req-42", r.Header.Get(requestid.Header))
		writeJSON(t, w, http.StatusOK, map[string]string{"_id": "abc", "status": "pending"})
	}))

	ctx := requestid.NewContext(context.Background(), "req-42")
	_, err := client.GetCodeReview(ctx, "abc")
	require.NoError(t, err)
}

func TestGetCodeReview_TransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	client, err := backend.NewClientWithHTTPClient(server.Client(), server.URL)
	require.NoError(t, err)
	server.Close()

	_, err = client.GetCodeReview(context.Background(), "abc")
	require.Error(t, err)

	var apiErr *driven.APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestCreateCodeReview(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/code-reviews", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "https://github.com/org/repo", body["repository_url"])
		assert.Equal(t, []any{"s1", "s2"}, body["standard_sets"])

		writeJSON(t, w, http.StatusCreated, map[string]string{"_id": "new-id", "status": "pending"})
	}))

	review, err := client.CreateCodeReview(context.Background(), "https://github.com/org/repo", []string{"s1", "s2"})
	require.NoError(t, err)
	assert.Equal(t, "new-id", review.ID)
}

func TestCreateCodeReview_NoStandardSetsSendsEmptyArray(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []any{}, body["standard_sets"])
		writeJSON(t, w, http.StatusCreated, map[string]string{"_id": "new-id"})
	}))

	_, err := client.CreateCodeReview(context.Background(), "https://github.com/org/repo", nil)
	require.NoError(t, err)
}

func TestCreateCodeReview_MissingID(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusCreated, map[string]string{})
	}))

	_, err := client.CreateCodeReview(context.Background(), "https://github.com/org/repo", nil)
	require.Error(t, err)
}

func TestClassifications(t *testing.T) {
	var deleted, created string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/classifications", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusOK, []map[string]string{
			{"_id": "c1", "name": "Node.js"},
			{"_id": "c2", "name": "C#"},
		})
	})
	mux.HandleFunc("POST /api/v1/classifications", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		created = body["name"]
		w.WriteHeader(http.StatusCreated)
	})
	mux.HandleFunc("DELETE /api/v1/classifications/{id}", func(w http.ResponseWriter, r *http.Request) {
		deleted = r.PathValue("id")
		w.WriteHeader(http.StatusNoContent)
	})
	client := newTestClient(t, mux)
	ctx := context.Background()

	list, err := client.ListClassifications(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "C#", list[1].Name)

	require.NoError(t, client.CreateClassification(ctx, "Go"))
	assert.Equal(t, "Go", created)

	require.NoError(t, client.DeleteClassification(ctx, "c1"))
	assert.Equal(t, "c1", deleted)
}

func TestStandardSets(t *testing.T) {
	var deleted string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/standard-sets", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusOK, []map[string]string{
			{"_id": "s1", "name": "Node", "repository_url": "https://github.com/org/standards", "custom_prompt": "be strict"},
		})
	})
	mux.HandleFunc("DELETE /api/v1/standard-sets/{id}", func(w http.ResponseWriter, r *http.Request) {
		deleted = r.PathValue("id")
		w.WriteHeader(http.StatusNoContent)
	})
	client := newTestClient(t, mux)
	ctx := context.Background()

	sets, err := client.ListStandardSets(ctx)
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, model.StandardSet{
		ID:            "s1",
		Name:          "Node",
		RepositoryURL: "https://github.com/org/standards",
		CustomPrompt:  "be strict",
	}, sets[0])

	require.NoError(t, client.DeleteStandardSet(ctx, "s1"))
	assert.Equal(t, "s1", deleted)
}

func TestCreateStandardSet_ValidationErrors(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "", body["custom_prompt"])

		writeJSON(t, w, http.StatusBadRequest, map[string]any{
			"message": "Validation failed",
			"errors": map[string]any{
				"repository_url": map[string]string{"field": "repository_url", "message": "Repository is not reachable"},
			},
		})
	}))

	err := client.CreateStandardSet(context.Background(), model.StandardSetInput{
		Name:          "Node",
		RepositoryURL: "https://example.com/nope",
	})

	var apiErr *driven.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Validation failed", apiErr.Message)
	require.Contains(t, apiErr.FieldErrors, "repository_url")
	assert.Equal(t, "Repository is not reachable", apiErr.FieldErrors["repository_url"].Message)
}

func TestCreateStandardSet_ErrorsNotAFieldMap(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusConflict, map[string]any{
			"message": "Already exists",
			"errors":  []string{"duplicate"},
		})
	}))

	err := client.CreateStandardSet(context.Background(), model.StandardSetInput{Name: "Node", RepositoryURL: "https://x"})

	var apiErr *driven.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Already exists", apiErr.Message)
	assert.Nil(t, apiErr.FieldErrors)
}

func TestNewClient_DeleteInvalidatesCachedListing(t *testing.T) {
	var mu sync.Mutex
	names := []string{"Go", "Rust"}
	listHits := 0

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/classifications", func(w http.ResponseWriter, _ *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		listHits++
		body := make([]map[string]string, 0, len(names))
		for i, n := range names {
			body = append(body, map[string]string{"_id": strconv.Itoa(i), "name": n})
		}
		w.Header().Set("Cache-Control", "max-age=300")
		writeJSON(t, w, http.StatusOK, body)
	})
	mux.HandleFunc("DELETE /api/v1/classifications/{id}", func(w http.ResponseWriter, r *http.Request) {
		i, err := strconv.Atoi(r.PathValue("id"))
		require.NoError(t, err)
		mu.Lock()
		names = append(names[:i], names[i+1:]...)
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client, err := backend.NewClient(server.URL, time.Second)
	require.NoError(t, err)
	ctx := context.Background()

	first, err := client.ListClassifications(ctx)
	require.NoError(t, err)
	require.Len(t, first, 2)

	_, err = client.ListClassifications(ctx)
	require.NoError(t, err)
	mu.Lock()
	assert.Equal(t, 1, listHits, "fresh listing is served from cache")
	mu.Unlock()

	require.NoError(t, client.DeleteClassification(ctx, "1"))

	after, err := client.ListClassifications(ctx)
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, "Go", after[0].Name)
	mu.Lock()
	assert.Equal(t, 2, listHits)
	mu.Unlock()
}
