package application

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/ericfisherdev/codereviewer/internal/domain/model"
	"github.com/ericfisherdev/codereviewer/internal/domain/port/driven"
)

// ReviewDetail is everything the detail page shows about one review.
type ReviewDetail struct {
	Review     model.CodeReview
	History    []model.StatusEvent   // oldest first; never nil
	Repository *model.RepositoryInfo // nil when unknown or the lookup failed
}

// ReviewService assembles review detail from the backend, the local status
// history and the repository host.
type ReviewService struct {
	api       driven.ReviewAPI
	status    *StatusService
	inspector driven.RepositoryInspector
	logger    *slog.Logger
}

// NewReviewService creates a ReviewService. inspector may be nil.
func NewReviewService(
	api driven.ReviewAPI,
	status *StatusService,
	inspector driven.RepositoryInspector,
	logger *slog.Logger,
) *ReviewService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReviewService{
		api:       api,
		status:    status,
		inspector: inspector,
		logger:    logger,
	}
}

// Detail loads a review and enriches it. Only the backend lookup can fail the
// call; its error is returned unchanged. History and repository lookups run
// concurrently and degrade to empty values on failure.
func (s *ReviewService) Detail(ctx context.Context, reviewID string) (*ReviewDetail, error) {
	review, err := s.api.GetCodeReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.ID == "" {
		review.ID = reviewID
	}

	s.status.Observe(ctx, review.ID, review.Status)

	detail := &ReviewDetail{
		Review:  *review,
		History: []model.StatusEvent{},
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		history, err := s.status.History(gctx, review.ID)
		if err != nil {
			s.logger.Warn("load status history failed", "review_id", review.ID, "error", err)
			return nil
		}
		detail.History = history
		return nil
	})

	if s.inspector != nil && review.RepositoryURL != "" {
		g.Go(func() error {
			info, err := s.inspector.InspectRepository(gctx, review.RepositoryURL)
			if err != nil {
				s.logger.Warn("repository lookup failed", "repository_url", review.RepositoryURL, "error", err)
				return nil
			}
			detail.Repository = info
			return nil
		})
	}

	_ = g.Wait()
	return detail, nil
}
