package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pagepilot/internal/models"
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func postRow(id, userID int64, status string, scheduledTime time.Time) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "user_id", "content", "media_url", "scheduled_time", "status",
		"platform_post_id", "error_detail", "created_at", "updated_at",
	}).AddRow(id, userID, "hello", "", scheduledTime, status, "", "", now, now)
}

func TestScheduledPostRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewScheduledPostRepository(db)
	ctx := context.Background()

	mock.ExpectQuery("INSERT INTO scheduled_posts").
		WithArgs(int64(7), "hello", "", sqlmock.AnyArg(), models.PostStatusPending).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	id, err := repo.Create(ctx, nil, &models.ScheduledPost{
		UserID:        7,
		Content:       "hello",
		ScheduledTime: time.Now().Add(time.Hour),
		Status:        models.PostStatusPending,
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduledPostRepository_ListDue_OldestFirst(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewScheduledPostRepository(db)
	ctx := context.Background()

	now := time.Now()
	rows := postRow(1, 7, models.PostStatusPending, now.Add(-time.Hour))
	rows.AddRow(int64(2), int64(7), "hello", "", now.Add(-time.Minute), models.PostStatusPending, "", "", now, now)

	mock.ExpectQuery("SELECT (.+) FROM scheduled_posts WHERE status = (.+) ORDER BY scheduled_time ASC").
		WithArgs(models.PostStatusPending, now).
		WillReturnRows(rows)

	posts, err := repo.ListDue(ctx, now)
	assert.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, int64(1), posts[0].ID)
	assert.Equal(t, int64(2), posts[1].ID)
	assert.True(t, posts[0].ScheduledTime.Before(posts[1].ScheduledTime))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduledPostRepository_GetByUserID_OrdersByScheduledTime(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewScheduledPostRepository(db)
	ctx := context.Background()

	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM scheduled_posts WHERE user_id = (.+) ORDER BY scheduled_time ASC").
		WithArgs(int64(7)).
		WillReturnRows(postRow(1, 7, models.PostStatusPending, now.Add(time.Hour)))

	posts, err := repo.GetByUserID(ctx, 7)
	assert.NoError(t, err)
	assert.Len(t, posts, 1)
	assert.Equal(t, int64(7), posts[0].UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduledPostRepository_ClaimPending(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewScheduledPostRepository(db)
	ctx := context.Background()

	mock.ExpectExec("UPDATE scheduled_posts").
		WithArgs(models.PostStatusPublishing, sqlmock.AnyArg(), int64(1), models.PostStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))

	claimed, err := repo.ClaimPending(ctx, 1)
	assert.NoError(t, err)
	assert.True(t, claimed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduledPostRepository_ClaimPending_AlreadyClaimed(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewScheduledPostRepository(db)
	ctx := context.Background()

	mock.ExpectExec("UPDATE scheduled_posts").
		WithArgs(models.PostStatusPublishing, sqlmock.AnyArg(), int64(1), models.PostStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 0))

	claimed, err := repo.ClaimPending(ctx, 1)
	assert.NoError(t, err)
	assert.False(t, claimed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduledPostRepository_CancelPending(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewScheduledPostRepository(db)
	ctx := context.Background()

	mock.ExpectExec("DELETE FROM scheduled_posts").
		WithArgs(int64(1), int64(7), models.PostStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))

	cancelled, err := repo.CancelPending(ctx, 1, 7)
	assert.NoError(t, err)
	assert.True(t, cancelled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduledPostRepository_CancelPending_NotPending(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewScheduledPostRepository(db)
	ctx := context.Background()

	mock.ExpectExec("DELETE FROM scheduled_posts").
		WithArgs(int64(1), int64(7), models.PostStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 0))

	cancelled, err := repo.CancelPending(ctx, 1, 7)
	assert.NoError(t, err)
	assert.False(t, cancelled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduledPostRepository_GetByID_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewScheduledPostRepository(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM scheduled_posts WHERE id").
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	post, err := repo.GetByID(ctx, 99)
	assert.NoError(t, err)
	assert.Nil(t, post)
	assert.NoError(t, mock.ExpectationsWereMet())
}
