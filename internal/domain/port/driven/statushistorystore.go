package driven

import (
	"context"

	"github.com/ericfisherdev/codereviewer/internal/domain/model"
)

// StatusHistoryStore persists observed review statuses.
type StatusHistoryStore interface {
	Append(ctx context.Context, event model.StatusEvent) error
	// Latest returns the most recent event for the review, or (nil, nil) if none.
	Latest(ctx context.Context, reviewID string) (*model.StatusEvent, error)
	// ListByReview returns the review's events ordered oldest first.
	ListByReview(ctx context.Context, reviewID string) ([]model.StatusEvent, error)
}
