package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/ericfisherdev/codereviewer/internal/domain/model"
	"github.com/ericfisherdev/codereviewer/internal/domain/port/driven"
)

// StatusService answers status lookups from the backend and keeps a local
// history of the statuses it has seen.
type StatusService struct {
	api     driven.ReviewAPI
	history driven.StatusHistoryStore
	logger  *slog.Logger
	now     func() time.Time
}

// NewStatusService creates a StatusService. history may be nil, in which
// case nothing is recorded and History always returns an empty slice.
func NewStatusService(api driven.ReviewAPI, history driven.StatusHistoryStore, logger *slog.Logger) *StatusService {
	if logger == nil {
		logger = slog.Default()
	}
	return &StatusService{
		api:     api,
		history: history,
		logger:  logger,
		now:     time.Now,
	}
}

// CurrentStatus fetches the review from the backend and returns its status.
// Backend errors are returned unchanged so callers can inspect *driven.APIError.
func (s *StatusService) CurrentStatus(ctx context.Context, reviewID string) (model.ReviewStatusSnapshot, error) {
	review, err := s.api.GetCodeReview(ctx, reviewID)
	if err != nil {
		return model.ReviewStatusSnapshot{}, err
	}

	id := review.ID
	if id == "" {
		id = reviewID
	}

	s.Observe(ctx, id, review.Status)
	return model.ReviewStatusSnapshot{ID: id, Status: review.Status}, nil
}

// Observe records status for the review when it differs from the latest
// recorded one. Store failures are logged and otherwise ignored.
func (s *StatusService) Observe(ctx context.Context, reviewID, status string) {
	if s.history == nil || reviewID == "" || status == "" {
		return
	}

	latest, err := s.history.Latest(ctx, reviewID)
	if err != nil {
		s.logger.Warn("read status history failed", "review_id", reviewID, "error", err)
		return
	}
	if latest != nil && latest.Status == status {
		return
	}

	event := model.StatusEvent{
		ReviewID:   reviewID,
		Status:     status,
		ObservedAt: s.now().UTC(),
	}
	if err := s.history.Append(ctx, event); err != nil {
		s.logger.Warn("record status change failed", "review_id", reviewID, "status", status, "error", err)
		return
	}

	s.logger.Info("review status changed", "review_id", reviewID, "status", status)
}

// History returns the statuses recorded for a review, oldest first.
func (s *StatusService) History(ctx context.Context, reviewID string) ([]model.StatusEvent, error) {
	if s.history == nil {
		return []model.StatusEvent{}, nil
	}
	events, err := s.history.ListByReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []model.StatusEvent{}
	}
	return events, nil
}
