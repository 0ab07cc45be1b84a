package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/codereviewer/internal/domain/model"
)

func TestStatusEventRepo_AppendAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStatusEventRepo(db)
	ctx := context.Background()

	t0 := time.Date(2024, 1, 14, 14, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Append(ctx, model.StatusEvent{ReviewID: "r1", Status: "pending", ObservedAt: t0}))
	require.NoError(t, repo.Append(ctx, model.StatusEvent{ReviewID: "r2", Status: "started", ObservedAt: t0}))
	require.NoError(t, repo.Append(ctx, model.StatusEvent{ReviewID: "r1", Status: "completed", ObservedAt: t0.Add(time.Minute)}))

	events, err := repo.ListByReview(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, "pending", events[0].Status)
	assert.Equal(t, "completed", events[1].Status)
	assert.Equal(t, t0, events[0].ObservedAt)
	assert.Equal(t, t0.Add(time.Minute), events[1].ObservedAt)
	assert.Less(t, events[0].ID, events[1].ID)
}

func TestStatusEventRepo_ListByReview_Empty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStatusEventRepo(db)

	events, err := repo.ListByReview(context.Background(), "unknown")
	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

func TestStatusEventRepo_Latest(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStatusEventRepo(db)
	ctx := context.Background()

	latest, err := repo.Latest(ctx, "r1")
	require.NoError(t, err)
	assert.Nil(t, latest)

	require.NoError(t, repo.Append(ctx, model.StatusEvent{ReviewID: "r1", Status: "pending"}))
	require.NoError(t, repo.Append(ctx, model.StatusEvent{ReviewID: "r1", Status: "in_progress"}))

	latest, err = repo.Latest(ctx, "r1")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "in_progress", latest.Status)
	assert.Equal(t, "r1", latest.ReviewID)
}

func TestStatusEventRepo_DatabaseStampsZeroTime(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStatusEventRepo(db)
	ctx := context.Background()

	before := time.Now().UTC().Add(-time.Minute)
	require.NoError(t, repo.Append(ctx, model.StatusEvent{ReviewID: "r1", Status: "pending"}))

	latest, err := repo.Latest(ctx, "r1")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.True(t, latest.ObservedAt.After(before), "observed_at %v should be recent", latest.ObservedAt)
}

func TestNewDB_FileBacked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	db, err := NewDB(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, RunMigrations(db.Writer))
	// Second run is a no-op.
	require.NoError(t, RunMigrations(db.Writer))
	assert.Equal(t, path, db.Path())

	repo := NewStatusEventRepo(db)
	require.NoError(t, repo.Append(context.Background(), model.StatusEvent{ReviewID: "r1", Status: "failed"}))

	events, err := repo.ListByReview(context.Background(), "r1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "failed", events[0].Status)
}

func TestNewDB_EmptyPath(t *testing.T) {
	_, err := NewDB("")
	require.Error(t, err)
}

func TestParseTime(t *testing.T) {
	want := time.Date(2024, 1, 14, 14, 0, 0, 0, time.UTC)
	for _, s := range []string{
		"2024-01-14T14:00:00.000Z",
		"2024-01-14T14:00:00Z",
		"2024-01-14 14:00:00",
		"2024-01-14T14:00:00",
	} {
		got, err := parseTime(s)
		require.NoError(t, err, s)
		assert.Equal(t, want, got, s)
	}

	_, err := parseTime("yesterday")
	require.Error(t, err)
}
