package driven

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/ericfisherdev/codereviewer/internal/domain/model"
)

// ErrNotFound is matched (via errors.Is) by an *APIError carrying a 404.
var ErrNotFound = errors.New("not found")

// FieldError is a validation message the backend attached to one input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError is returned by ReviewAPI implementations when the backend answers
// with a non-2xx status.
type APIError struct {
	StatusCode  int
	Message     string
	FieldErrors map[string]FieldError
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend API responded with status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend API responded with status %d", e.StatusCode)
}

// Is lets errors.Is(err, ErrNotFound) succeed for 404 responses.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// ReviewAPI defines the driven port for the code review backend REST API.
type ReviewAPI interface {
	ListCodeReviews(ctx context.Context) ([]model.CodeReview, error)
	GetCodeReview(ctx context.Context, id string) (*model.CodeReview, error)
	// CreateCodeReview starts a review of repositoryURL against the given
	// standard set IDs and returns the created review.
	CreateCodeReview(ctx context.Context, repositoryURL string, standardSetIDs []string) (*model.CodeReview, error)

	ListClassifications(ctx context.Context) ([]model.Classification, error)
	CreateClassification(ctx context.Context, name string) error
	DeleteClassification(ctx context.Context, id string) error

	ListStandardSets(ctx context.Context) ([]model.StandardSet, error)
	CreateStandardSet(ctx context.Context, input model.StandardSetInput) error
	DeleteStandardSet(ctx context.Context, id string) error
}
