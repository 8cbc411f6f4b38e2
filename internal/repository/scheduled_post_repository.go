package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"pagepilot/internal/models"
)

type ScheduledPostRepository interface {
	Create(ctx context.Context, tx *sql.Tx, post *models.ScheduledPost) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.ScheduledPost, error)
	GetByUserID(ctx context.Context, userID int64) ([]*models.ScheduledPost, error)
	CheckByUserID(ctx context.Context, postID, userID int64) (bool, error)
	ListDue(ctx context.Context, now time.Time) ([]*models.ScheduledPost, error)
	ClaimPending(ctx context.Context, id int64) (bool, error)
	MarkPublished(ctx context.Context, id int64, platformPostID string) error
	MarkFailed(ctx context.Context, id int64, errorDetail string) error
	CancelPending(ctx context.Context, id, userID int64) (bool, error)
}

type scheduledPostRepository struct {
	db *sql.DB
}

func NewScheduledPostRepository(db *sql.DB) ScheduledPostRepository {
	return &scheduledPostRepository{db: db}
}

const scheduledPostColumns = `id, user_id, content, media_url, scheduled_time, status, platform_post_id, error_detail, created_at, updated_at`

func scanScheduledPost(row interface{ Scan(...any) error }) (*models.ScheduledPost, error) {
	var post models.ScheduledPost
	err := row.Scan(&post.ID, &post.UserID, &post.Content, &post.MediaURL, &post.ScheduledTime,
		&post.Status, &post.PlatformPostID, &post.ErrorDetail, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *scheduledPostRepository) Create(ctx context.Context, tx *sql.Tx, post *models.ScheduledPost) (int64, error) {
	query := `
		INSERT INTO scheduled_posts (user_id, content, media_url, scheduled_time, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	var err error

	if tx != nil {
		err = tx.QueryRowContext(ctx, query, post.UserID, post.Content, post.MediaURL, post.ScheduledTime, post.Status).Scan(&id)
	} else {
		err = r.db.QueryRowContext(ctx, query, post.UserID, post.Content, post.MediaURL, post.ScheduledTime, post.Status).Scan(&id)
	}
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *scheduledPostRepository) GetByID(ctx context.Context, id int64) (*models.ScheduledPost, error) {
	query := `SELECT ` + scheduledPostColumns + ` FROM scheduled_posts WHERE id = $1`
	post, err := scanScheduledPost(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return post, nil
}

func (r *scheduledPostRepository) GetByUserID(ctx context.Context, userID int64) ([]*models.ScheduledPost, error) {
	query := `SELECT ` + scheduledPostColumns + ` FROM scheduled_posts WHERE user_id = $1 ORDER BY scheduled_time ASC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var posts []*models.ScheduledPost
	for rows.Next() {
		post, err := scanScheduledPost(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func (r *scheduledPostRepository) CheckByUserID(ctx context.Context, postID, userID int64) (bool, error) {
	query := "SELECT 1 FROM scheduled_posts WHERE id = $1 AND user_id = $2"

	var result int
	err := r.db.QueryRowContext(ctx, query, postID, userID).Scan(&result)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}

	return result == 1, nil
}

// ListDue returns pending posts whose scheduled_time has passed, oldest first
// so the longest-waiting post is dispatched before newer ones.
func (r *scheduledPostRepository) ListDue(ctx context.Context, now time.Time) ([]*models.ScheduledPost, error) {
	query := `SELECT ` + scheduledPostColumns + ` FROM scheduled_posts WHERE status = $1 AND scheduled_time <= $2 ORDER BY scheduled_time ASC`
	rows, err := r.db.QueryContext(ctx, query, models.PostStatusPending, now)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var posts []*models.ScheduledPost
	for rows.Next() {
		post, err := scanScheduledPost(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// ClaimPending atomically moves a post from pending to publishing. A false
// return means another worker already claimed it (or it was cancelled), and
// the caller must not dispatch it.
func (r *scheduledPostRepository) ClaimPending(ctx context.Context, id int64) (bool, error) {
	query := `
		UPDATE scheduled_posts
		SET status = $1,
			updated_at = $2
		WHERE id = $3 AND status = $4
	`
	res, err := r.db.ExecContext(ctx, query, models.PostStatusPublishing, time.Now(), id, models.PostStatusPending)
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}
	return affected == 1, nil
}

func (r *scheduledPostRepository) MarkPublished(ctx context.Context, id int64, platformPostID string) error {
	query := `
		UPDATE scheduled_posts
		SET status = $1,
			platform_post_id = $2,
			updated_at = $3
		WHERE id = $4
	`
	_, err := r.db.ExecContext(ctx, query, models.PostStatusPublished, platformPostID, time.Now(), id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *scheduledPostRepository) MarkFailed(ctx context.Context, id int64, errorDetail string) error {
	query := `
		UPDATE scheduled_posts
		SET status = $1,
			error_detail = $2,
			updated_at = $3
		WHERE id = $4
	`
	_, err := r.db.ExecContext(ctx, query, models.PostStatusFailed, errorDetail, time.Now(), id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

// CancelPending deletes a post only while it is still pending and owned by the
// caller. Posts that were claimed, published or failed are left untouched.
func (r *scheduledPostRepository) CancelPending(ctx context.Context, id, userID int64) (bool, error) {
	query := `DELETE FROM scheduled_posts WHERE id = $1 AND user_id = $2 AND status = $3`
	res, err := r.db.ExecContext(ctx, query, id, userID, models.PostStatusPending)
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}
	return affected == 1, nil
}
