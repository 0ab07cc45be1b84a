package driven

import (
	"context"
	"fmt"

	"github.com/ericfisherdev/codereviewer/internal/domain/model"
)

// StatusFetcher retrieves the current status of a single code review.
type StatusFetcher interface {
	FetchStatus(ctx context.Context, reviewID string) (model.ReviewStatusSnapshot, error)
}

// StatusHTTPError is returned by StatusFetcher implementations for non-2xx responses.
type StatusHTTPError struct {
	ReviewID   string
	StatusCode int
}

func (e *StatusHTTPError) Error() string {
	return fmt.Sprintf("failed to fetch status for review %s: %d", e.ReviewID, e.StatusCode)
}
