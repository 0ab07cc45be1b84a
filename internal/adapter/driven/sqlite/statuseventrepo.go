package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ericfisherdev/codereviewer/internal/domain/model"
	"github.com/ericfisherdev/codereviewer/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.StatusHistoryStore = (*StatusEventRepo)(nil)

const observedAtLayout = "2006-01-02T15:04:05.000Z"

// StatusEventRepo is the SQLite implementation of driven.StatusHistoryStore.
type StatusEventRepo struct {
	db *DB
}

// NewStatusEventRepo creates a StatusEventRepo backed by the given DB.
func NewStatusEventRepo(db *DB) *StatusEventRepo {
	return &StatusEventRepo{db: db}
}

// Append inserts an event. A zero ObservedAt is stamped by the database.
func (r *StatusEventRepo) Append(ctx context.Context, event model.StatusEvent) error {
	if event.ObservedAt.IsZero() {
		const query = `INSERT INTO status_events (review_id, status) VALUES (?, ?)`
		if _, err := r.db.Writer.ExecContext(ctx, query, event.ReviewID, event.Status); err != nil {
			return fmt.Errorf("append status event for review %s: %w", event.ReviewID, err)
		}
		return nil
	}

	const query = `INSERT INTO status_events (review_id, status, observed_at) VALUES (?, ?, ?)`
	observedAt := event.ObservedAt.UTC().Format(observedAtLayout)
	if _, err := r.db.Writer.ExecContext(ctx, query, event.ReviewID, event.Status, observedAt); err != nil {
		return fmt.Errorf("append status event for review %s: %w", event.ReviewID, err)
	}
	return nil
}

// Latest returns the most recent event for the review, or nil if none exist.
func (r *StatusEventRepo) Latest(ctx context.Context, reviewID string) (*model.StatusEvent, error) {
	const query = `
		SELECT id, review_id, status, observed_at
		FROM status_events
		WHERE review_id = ?
		ORDER BY id DESC
		LIMIT 1`

	event, err := scanStatusEvent(r.db.Writer.QueryRowContext(ctx, query, reviewID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest status event for review %s: %w", reviewID, err)
	}
	return &event, nil
}

// ListByReview returns every event for the review in insertion order.
func (r *StatusEventRepo) ListByReview(ctx context.Context, reviewID string) ([]model.StatusEvent, error) {
	const query = `
		SELECT id, review_id, status, observed_at
		FROM status_events
		WHERE review_id = ?
		ORDER BY id ASC`

	rows, err := r.db.Reader.QueryContext(ctx, query, reviewID)
	if err != nil {
		return nil, fmt.Errorf("list status events for review %s: %w", reviewID, err)
	}
	defer rows.Close()

	events := []model.StatusEvent{}
	for rows.Next() {
		event, err := scanStatusEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan status event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate status events: %w", err)
	}
	return events, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStatusEvent(row rowScanner) (model.StatusEvent, error) {
	var (
		event      model.StatusEvent
		observedAt string
	)
	if err := row.Scan(&event.ID, &event.ReviewID, &event.Status, &observedAt); err != nil {
		return model.StatusEvent{}, err
	}

	t, err := parseTime(observedAt)
	if err != nil {
		return model.StatusEvent{}, fmt.Errorf("parse observed_at for event %d: %w", event.ID, err)
	}
	event.ObservedAt = t
	return event, nil
}

// parseTime accepts the layouts SQLite and this package write timestamps in.
func parseTime(s string) (time.Time, error) {
	formats := []string{
		observedAtLayout,
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05.000",
		time.RFC3339Nano,
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized time format: %s", s)
}
